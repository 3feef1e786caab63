package presentation

import (
	"testing"

	"jobseeker-scoring/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestMissingItemText_EveryCodeRendered(t *testing.T) {
	items := []models.MissingItem{
		models.MissingProfilePicture, models.MissingResume, models.MissingEmailVerification,
		models.MissingBio, models.MissingSkills, models.MissingExperience,
		models.MissingEducation, models.MissingContactNumber, models.MissingAddress,
		models.MissingBirthdate, models.MissingLocation, models.MissingAvailability,
	}
	for _, item := range items {
		text := MissingItemText(item)
		assert.NotEqual(t, string(item), text, "no text for %s", item)
	}
	assert.Len(t, MissingItemTexts(items), len(items))
}

func TestRecommendationText_EveryCodeRendered(t *testing.T) {
	recs := []models.Recommendation{
		models.RecommendCompleteProfile, models.RecommendUploadResume,
		models.RecommendTakeAssessments, models.RecommendIncreaseEngagement,
		models.RecommendImproveAccount, models.RecommendAddProfilePicture,
		models.RecommendAddSkills, models.RecommendChooseCareerPath,
	}
	for _, rec := range recs {
		assert.NotEqual(t, string(rec), RecommendationText(rec), "no text for %s", rec)
	}
}

func TestUnknownCodesFallBack(t *testing.T) {
	assert.Equal(t, "portfolio", MissingItemText("portfolio"))
	assert.Equal(t, "join_webinar", RecommendationText("join_webinar"))
	assert.Empty(t, MissingItemTexts(nil))
}

func TestChangeLine(t *testing.T) {
	tests := []struct {
		delta    float64
		expected string
	}{
		{12.5, "Score increased by 12.5 points"},
		{-3, "Score decreased by 3.0 points"},
		{0, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, ChangeLine(tt.delta))
	}
}

func TestDenialReason(t *testing.T) {
	assert.Equal(t, "Profile score 59.9 is below the required 60.0", DenialReason(59.9, 60))
}

func TestTierLabel(t *testing.T) {
	assert.Equal(t, "Strong", TierLabel(models.TierStrong))
	assert.Equal(t, "Incomplete", TierLabel("unknown"))
}

func TestTierChangeMessage(t *testing.T) {
	assert.Equal(t, "Your profile is now rated Ready", TierChangeSubject(models.TierReady))
	assert.Equal(t,
		"Your profile score is 61.0. Your rating moved from Basic to Ready.",
		TierChangeMessage(models.TierBasic, models.TierReady, 61))
	assert.Equal(t,
		"Your profile score is 42.5, rated Basic.",
		TierChangeMessage("", models.TierBasic, 42.5))
}
