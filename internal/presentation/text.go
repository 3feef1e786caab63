// Package presentation renders scoring codes as user-facing sentences. The
// scoring core never produces text itself.
package presentation

import (
	"fmt"

	"jobseeker-scoring/internal/models"
)

var missingItemText = map[models.MissingItem]string{
	models.MissingProfilePicture:    "Add a profile picture",
	models.MissingResume:            "Upload your resume",
	models.MissingEmailVerification: "Verify your email address",
	models.MissingBio:               "Write a bio of at least 50 characters",
	models.MissingSkills:            "List at least 3 skills",
	models.MissingExperience:        "Describe your experience in at least 100 characters",
	models.MissingEducation:         "Describe your education in at least 50 characters",
	models.MissingContactNumber:     "Add a contact number",
	models.MissingAddress:           "Add your address",
	models.MissingBirthdate:         "Add your date of birth",
	models.MissingLocation:          "Set your location",
	models.MissingAvailability:      "Set your availability",
}

var recommendationText = map[models.Recommendation]string{
	models.RecommendCompleteProfile:    "Complete your profile information to increase visibility to employers",
	models.RecommendUploadResume:       "Upload a professional resume in PDF format",
	models.RecommendTakeAssessments:    "Take skill assessments to showcase your abilities",
	models.RecommendIncreaseEngagement: "Apply to jobs and bookmark learning resources",
	models.RecommendImproveAccount:     "Verify your email and keep your profile up to date",
	models.RecommendAddProfilePicture:  "Add a professional profile picture",
	models.RecommendAddSkills:          "Add at least 5 relevant skills",
	models.RecommendChooseCareerPath:   "Choose a career path to get tailored guidance",
}

// MissingItemText returns the sentence for a missing item. Unknown codes are
// returned verbatim.
func MissingItemText(item models.MissingItem) string {
	if text, ok := missingItemText[item]; ok {
		return text
	}
	return string(item)
}

func RecommendationText(rec models.Recommendation) string {
	if text, ok := recommendationText[rec]; ok {
		return text
	}
	return string(rec)
}

func MissingItemTexts(items []models.MissingItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, MissingItemText(item))
	}
	return out
}

func RecommendationTexts(recs []models.Recommendation) []string {
	out := make([]string, 0, len(recs))
	for _, rec := range recs {
		out = append(out, RecommendationText(rec))
	}
	return out
}

// TierLabel is the display name of a tier.
func TierLabel(tier models.Tier) string {
	switch tier {
	case models.TierExcellent:
		return "Excellent"
	case models.TierStrong:
		return "Strong"
	case models.TierReady:
		return "Ready"
	case models.TierBasic:
		return "Basic"
	default:
		return "Incomplete"
	}
}

// ChangeLine describes a score delta, or returns "" when nothing changed.
func ChangeLine(delta float64) string {
	switch {
	case delta > 0:
		return fmt.Sprintf("Score increased by %.1f points", delta)
	case delta < 0:
		return fmt.Sprintf("Score decreased by %.1f points", -delta)
	default:
		return ""
	}
}

// DenialReason explains why a user may not apply yet.
func DenialReason(current, required float64) string {
	return fmt.Sprintf("Profile score %.1f is below the required %.1f", current, required)
}

func UserNotFoundReason() string {
	return "User not found"
}

// TierChangeSubject is the notification subject for a new tier.
func TierChangeSubject(current models.Tier) string {
	return fmt.Sprintf("Your profile is now rated %s", TierLabel(current))
}

// TierChangeMessage is the notification body for a tier change. previous may be
// empty for a first calculation.
func TierChangeMessage(previous, current models.Tier, total float64) string {
	if previous == "" {
		return fmt.Sprintf("Your profile score is %.1f, rated %s.", total, TierLabel(current))
	}
	return fmt.Sprintf("Your profile score is %.1f. Your rating moved from %s to %s.",
		total, TierLabel(previous), TierLabel(current))
}
