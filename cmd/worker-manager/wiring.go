// cmd/worker-manager/wiring.go
package main

import (
	"context"
	"fmt"

	"jobseeker-scoring/internal/common/aws"
	"jobseeker-scoring/internal/common/config"
	"jobseeker-scoring/internal/common/database"
	"jobseeker-scoring/internal/common/logger"
	"jobseeker-scoring/internal/store/collaborators"
	"jobseeker-scoring/internal/store/scores"

	notify "jobseeker-scoring/internal/workers/scoring/notify-score-change"
)

// buildScoreStore selects the score backend. Postgres records get a Redis
// read-through cache when a cache TTL is configured.
func buildScoreStore(ctx context.Context, cfg *config.Config, pg *database.PostgresClient, rdb *database.RedisClient, log logger.Logger) (scores.Store, error) {
	switch cfg.Storage.Scores {
	case config.BackendPostgres:
		store := scores.NewPostgresStore(pg.DB)
		if err := store.Migrate(ctx); err != nil {
			return nil, fmt.Errorf("migrate score tables: %w", err)
		}
		if ttl := cfg.Storage.CacheDuration(); ttl > 0 && rdb != nil {
			return scores.NewCachedStore(store, rdb.Client, ttl, log), nil
		}
		return store, nil
	case config.BackendRedis:
		if rdb == nil {
			return nil, fmt.Errorf("redis score store selected without a redis client")
		}
		return scores.NewRedisStore(rdb.Client), nil
	case config.BackendMemory:
		return scores.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown score store %q", cfg.Storage.Scores)
	}
}

func buildCollaborators(cfg *config.Config, pg *database.PostgresClient, es *database.ElasticsearchClient, log logger.Logger) collaborators.Source {
	var assessments collaborators.AssessmentSource
	if cfg.Collaborators.Assessments == config.BackendPostgres {
		assessments = collaborators.NewPostgresAssessments(pg.DB, log)
	}

	var applications collaborators.ApplicationSource
	switch cfg.Collaborators.Applications {
	case config.BackendPostgres:
		applications = collaborators.NewPostgresApplications(pg.DB, log)
	case config.BackendElasticsearch:
		if es != nil {
			applications = collaborators.NewElasticsearchApplications(es.Client, cfg.Collaborators.ApplicationsIndex, log)
		}
	}

	return collaborators.Combine(assessments, applications)
}

// buildSenders returns nil senders for disabled channels.
func buildSenders(ctx context.Context, cfg *config.Config) (notify.EmailSender, notify.SMSSender, error) {
	var (
		email notify.EmailSender
		sms   notify.SMSSender
	)
	n := cfg.Notifications

	if n.Email.Enabled {
		ses, err := aws.NewSESClient(ctx, n.AWS.Region, n.Email.FromEmail)
		if err != nil {
			return nil, nil, err
		}
		email = ses
	}
	if n.SMS.Enabled {
		sns, err := aws.NewSNSClient(ctx, n.AWS.Region)
		if err != nil {
			return nil, nil, err
		}
		sms = sns
	}
	return email, sms, nil
}
