// internal/workers/scoring/calculate-jobseeker-score/config.go
package calculatejobseekerscore

import (
	"time"

	"jobseeker-scoring/internal/common/config"
)

type Config struct {
	Timeout time.Duration
}

func LoadConfig(cfg *config.Config) *Config {
	c := &Config{Timeout: config.GetDuration(config.GetWorkerConfig(cfg, TaskType).Timeout)}
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
	return c
}
