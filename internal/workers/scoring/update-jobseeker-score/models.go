// internal/workers/scoring/update-jobseeker-score/models.go
package updatejobseekerscore

import (
	"time"

	"jobseeker-scoring/internal/models"
)

// Input names one user or a batch. userIds wins when both are set.
type Input struct {
	UserID  string   `json:"userId,omitempty"`
	UserIDs []string `json:"userIds,omitempty"`
}

type Output struct {
	UserID              string                  `json:"userId,omitempty"`
	TotalScore          float64                 `json:"totalScore"`
	Breakdown           *models.Breakdown       `json:"breakdown,omitempty"`
	Tier                models.Tier             `json:"tier,omitempty"`
	PreviousTier        models.Tier             `json:"previousTier,omitempty"`
	TierChanged         bool                    `json:"tierChanged"`
	Delta               float64                 `json:"delta"`
	ChangeSummary       string                  `json:"changeSummary,omitempty"`
	MissingItems        []models.MissingItem    `json:"missingItems,omitempty"`
	MissingItemTexts    []string                `json:"missingItemTexts,omitempty"`
	Recommendations     []models.Recommendation `json:"recommendations,omitempty"`
	RecommendationTexts []string                `json:"recommendationTexts,omitempty"`
	LastCalculated      *time.Time              `json:"lastCalculated,omitempty"`

	Batch *BatchSummary `json:"batch,omitempty"`
}

type BatchSummary struct {
	Total     int         `json:"total"`
	Succeeded int         `json:"succeeded"`
	Failed    int         `json:"failed"`
	Results   []BatchItem `json:"results"`
}

type BatchItem struct {
	UserID     string      `json:"userId"`
	TotalScore float64     `json:"totalScore,omitempty"`
	Tier       models.Tier `json:"tier,omitempty"`
	ErrorCode  string      `json:"errorCode,omitempty"`
}
