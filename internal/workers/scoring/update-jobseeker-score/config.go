// internal/workers/scoring/update-jobseeker-score/config.go
package updatejobseekerscore

import (
	"time"

	"jobseeker-scoring/internal/common/config"
)

type Config struct {
	Timeout          time.Duration
	BatchConcurrency int
}

func LoadConfig(cfg *config.Config) *Config {
	c := &Config{
		Timeout:          config.GetDuration(config.GetWorkerConfig(cfg, TaskType).Timeout),
		BatchConcurrency: cfg.Engine.BatchConcurrency,
	}
	if c.Timeout <= 0 {
		c.Timeout = 60 * time.Second
	}
	if c.BatchConcurrency <= 0 {
		c.BatchConcurrency = 4
	}
	return c
}
