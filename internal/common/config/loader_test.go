package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalConfig = `
camunda:
  broker_address: localhost:26500
database:
  postgres:
    host: localhost
    database: marketplace
    user: scoring
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

// ==========================
// Loading & Defaults
// ==========================

func TestLoadFromFile_Defaults(t *testing.T) {
	cfg, err := LoadFromFile(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "jobseeker-scoring", cfg.App.Name)
	assert.Equal(t, 10, cfg.Camunda.MaxJobsActive)
	assert.Equal(t, 5432, cfg.Database.Postgres.Port)
	assert.Equal(t, "disable", cfg.Database.Postgres.SSLMode)
	assert.Equal(t, BackendPostgres, cfg.Storage.Scores)
	assert.Equal(t, BackendNone, cfg.Collaborators.Assessments)
	assert.Equal(t, BackendNone, cfg.Collaborators.Applications)
	assert.Equal(t, "applications", cfg.Collaborators.ApplicationsIndex)
	assert.Equal(t, 4, cfg.Engine.BatchConcurrency)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, ":8080", cfg.Observability.MetricsAddress)
	assert.Equal(t, "jobseeker-scoring", cfg.Observability.ServiceName)
	assert.False(t, cfg.UsesRedis())
	assert.False(t, cfg.UsesElasticsearch())
}

func TestLoadFromFile_ExpandsEnvironment(t *testing.T) {
	t.Setenv("SCORING_TEST_DB_HOST", "db.internal")

	cfg, err := LoadFromFile(writeConfig(t, `
camunda:
  broker_address: localhost:26500
database:
  postgres:
    host: ${SCORING_TEST_DB_HOST}
    database: marketplace
    user: scoring
`))
	require.NoError(t, err)
	assert.Equal(t, "db.internal", cfg.Database.Postgres.Host)
}

func TestLoadFromFile_UnsetPlaceholdersBecomeEmpty(t *testing.T) {
	t.Setenv("SCORING_TEST_REDIS_PASSWORD", "")
	t.Setenv("SCORING_TEST_JAEGER", "")
	t.Setenv("SCORING_TEST_ES_URL", "")

	cfg, err := LoadFromFile(writeConfig(t, `
camunda:
  broker_address: localhost:26500
database:
  postgres:
    host: localhost
    database: marketplace
    user: scoring
  redis:
    address: localhost:6379
    password: ${SCORING_TEST_REDIS_PASSWORD}
  elasticsearch:
    addresses:
      - ${SCORING_TEST_ES_URL}
observability:
  jaeger_endpoint: ${SCORING_TEST_JAEGER}
`))
	require.NoError(t, err)
	assert.Empty(t, cfg.Database.Redis.Password)
	assert.Empty(t, cfg.Observability.JaegerEndpoint)
	assert.Empty(t, cfg.Database.Elasticsearch.Addresses)
	assert.Empty(t, cfg.Database.Elasticsearch.GetURL())
}

func TestLoadFromFile_ExpandsListEntries(t *testing.T) {
	t.Setenv("SCORING_TEST_ES_URL", "http://es.internal:9200")

	cfg, err := LoadFromFile(writeConfig(t, minimalConfig+`
  elasticsearch:
    addresses:
      - ${SCORING_TEST_ES_URL}
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"http://es.internal:9200"}, cfg.Database.Elasticsearch.Addresses)
	assert.Equal(t, "http://es.internal:9200", cfg.Database.Elasticsearch.GetURL())
}

func TestLoadFromFile_ShippedConfigWithOptionalVariablesUnset(t *testing.T) {
	t.Setenv("ZEEBE_ADDRESS", "localhost:26500")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_NAME", "marketplace")
	t.Setenv("DB_USER", "scoring")
	t.Setenv("REDIS_ADDRESS", "localhost:6379")
	for _, name := range []string{"REDIS_PASSWORD", "JAEGER_ENDPOINT", "AWS_REGION", "ELASTICSEARCH_URL"} {
		t.Setenv(name, "")
	}

	cfg, err := LoadFromFile("../../../configs/config.yaml")
	require.NoError(t, err)

	assert.True(t, cfg.UsesRedis())
	assert.Empty(t, cfg.Database.Redis.Password)
	assert.Empty(t, cfg.Observability.JaegerEndpoint)
	assert.Empty(t, cfg.Notifications.AWS.Region)
	assert.Empty(t, cfg.Database.Elasticsearch.Addresses)
}

func TestLoadFromFile_WorkerDefaults(t *testing.T) {
	cfg, err := LoadFromFile(writeConfig(t, minimalConfig+`
workers:
  check-job-eligibility:
    enabled: false
`))
	require.NoError(t, err)

	wc := GetWorkerConfig(cfg, "check-job-eligibility")
	assert.False(t, wc.Enabled)
	assert.Equal(t, 5, wc.MaxJobsActive)
	assert.Equal(t, 30000, wc.Timeout)
	assert.False(t, IsWorkerEnabled(cfg, "check-job-eligibility"))

	assert.True(t, IsWorkerEnabled(cfg, "calculate-jobseeker-score"))
	assert.Equal(t, 3, GetWorkerConfig(cfg, "calculate-jobseeker-score").MaxRetries)
}

// ==========================
// Validation
// ==========================

func TestLoadFromFile_Validation(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		errMsg string
	}{
		{
			name:   "missing broker",
			body:   "database:\n  postgres:\n    host: h\n    database: d\n    user: u\n",
			errMsg: "camunda.broker_address is required",
		},
		{
			name:   "unknown score backend",
			body:   minimalConfig + "storage:\n  scores: mongo\n",
			errMsg: "storage.scores",
		},
		{
			name:   "redis store without address",
			body:   minimalConfig + "storage:\n  scores: redis\n",
			errMsg: "database.redis.address is required",
		},
		{
			name:   "cache without redis",
			body:   minimalConfig + "storage:\n  cache_ttl: 60\n",
			errMsg: "database.redis.address is required",
		},
		{
			name:   "elasticsearch applications without address",
			body:   minimalConfig + "collaborators:\n  applications: elasticsearch\n",
			errMsg: "database.elasticsearch",
		},
		{
			name:   "email without sender",
			body:   minimalConfig + "notifications:\n  email:\n    enabled: true\n",
			errMsg: "from_email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestDurations(t *testing.T) {
	assert.Equal(t, 1500*time.Millisecond, GetDuration(1500))
	assert.Equal(t, 5*time.Minute, StorageConfig{CacheTTL: 300}.CacheDuration())
}

func TestPostgresDSN(t *testing.T) {
	p := PostgresConfig{Host: "h", Port: 5432, User: "u", Password: "p", Database: "d", SSLMode: "disable"}
	assert.Equal(t, "host=h port=5432 user=u password=p dbname=d sslmode=disable", p.GetDSN())
}
