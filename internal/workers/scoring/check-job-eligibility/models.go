// internal/workers/scoring/check-job-eligibility/models.go
package checkjobeligibility

import "jobseeker-scoring/internal/models"

type Input struct {
	UserID string `json:"userId"`
	JobID  string `json:"jobId,omitempty"`
}

type Output struct {
	CanApply         bool                 `json:"canApply"`
	Reason           string               `json:"reason,omitempty"`
	CurrentScore     float64              `json:"currentScore"`
	RequiredScore    float64              `json:"requiredScore"`
	MissingItems     []models.MissingItem `json:"missingItems,omitempty"`
	MissingItemTexts []string             `json:"missingItemTexts,omitempty"`
	FromCache        bool                 `json:"fromCache"`
}
