// internal/workers/scoring/notify-score-change/config.go
package notifyscorechange

import (
	"time"

	"jobseeker-scoring/internal/common/config"
)

type Config struct {
	EmailEnabled bool
	SMSEnabled   bool
	Timeout      time.Duration
}

func LoadConfig(cfg *config.Config) *Config {
	c := &Config{
		EmailEnabled: cfg.Notifications.Email.Enabled,
		SMSEnabled:   cfg.Notifications.SMS.Enabled,
		Timeout:      config.GetDuration(config.GetWorkerConfig(cfg, TaskType).Timeout),
	}
	if c.Timeout <= 0 {
		c.Timeout = 15 * time.Second
	}
	return c
}
