// internal/workers/scoring/calculate-jobseeker-score/models.go
package calculatejobseekerscore

import "jobseeker-scoring/internal/models"

type Input struct {
	UserID string `json:"userId"`
}

type Output struct {
	UserID              string                  `json:"userId"`
	TotalScore          float64                 `json:"totalScore"`
	Breakdown           models.Breakdown        `json:"breakdown"`
	Tier                models.Tier             `json:"tier"`
	TierLabel           string                  `json:"tierLabel"`
	MissingItems        []models.MissingItem    `json:"missingItems"`
	MissingItemTexts    []string                `json:"missingItemTexts"`
	Recommendations     []models.Recommendation `json:"recommendations"`
	RecommendationTexts []string                `json:"recommendationTexts"`
}
