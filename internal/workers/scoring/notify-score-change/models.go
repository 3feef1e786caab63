// internal/workers/scoring/notify-score-change/models.go
package notifyscorechange

import (
	"time"

	"jobseeker-scoring/internal/models"
)

// Delivery statuses.
const (
	StatusSent     = "sent"
	StatusSkipped  = "skipped"
	StatusDisabled = "disabled"
)

type Input struct {
	UserID       string      `json:"userId"`
	PreviousTier models.Tier `json:"previousTier,omitempty"`
	CurrentTier  models.Tier `json:"currentTier"`
	TotalScore   float64     `json:"totalScore"`
}

type Output struct {
	NotificationID string     `json:"notificationId,omitempty"`
	Status         string     `json:"status"`
	Channels       []string   `json:"channels,omitempty"`
	SentAt         *time.Time `json:"sentAt,omitempty"`
}
