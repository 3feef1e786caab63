// internal/scoring/gaps.go
package scoring

import "jobseeker-scoring/internal/models"

// MaxRecommendations caps the recommendation list.
const MaxRecommendations = 5

// Category floors below which a "category is weak" recommendation is emitted.
const (
	profileCompletenessFloor = 20.0
	resumeDocumentsFloor     = 15.0
	skillsAssessmentsFloor   = 10.0
	platformEngagementFloor  = 5.0
	accountQualityFloor      = 5.0
)

// MissingItems evaluates the profile checklist in its fixed order. It does not
// look at the numeric score.
func MissingItems(u *models.UserRecord) []models.MissingItem {
	if u == nil {
		u = &models.UserRecord{}
	}
	p := u.Profile

	checks := []struct {
		item models.MissingItem
		ok   bool
	}{
		{models.MissingProfilePicture, p.ProfilePicture != ""},
		{models.MissingResume, u.HasResume()},
		{models.MissingEmailVerification, u.EmailVerified},
		{models.MissingBio, textLength(p.Bio) >= 50},
		{models.MissingSkills, len(p.Skills) >= 3},
		{models.MissingExperience, textLength(p.Experience) >= 100},
		{models.MissingEducation, textLength(p.Education) >= 50},
		{models.MissingContactNumber, u.ContactNumber != ""},
		{models.MissingAddress, u.Address != ""},
		{models.MissingBirthdate, u.Birthdate != nil},
		{models.MissingLocation, p.Location != ""},
		{models.MissingAvailability, p.Availability != ""},
	}

	missing := make([]models.MissingItem, 0, len(checks))
	for _, c := range checks {
		if !c.ok {
			missing = append(missing, c.item)
		}
	}
	return missing
}

// Recommendations lists weak-category suggestions first, then specific actions,
// truncated to MaxRecommendations. Order is the only ranking.
func Recommendations(u *models.UserRecord, b models.Breakdown) []models.Recommendation {
	if u == nil {
		u = &models.UserRecord{}
	}

	recs := make([]models.Recommendation, 0, 8)
	if b.ProfileCompleteness < profileCompletenessFloor {
		recs = append(recs, models.RecommendCompleteProfile)
	}
	if b.ResumeDocuments < resumeDocumentsFloor {
		recs = append(recs, models.RecommendUploadResume)
	}
	if b.SkillsAssessments < skillsAssessmentsFloor {
		recs = append(recs, models.RecommendTakeAssessments)
	}
	if b.PlatformEngagement < platformEngagementFloor {
		recs = append(recs, models.RecommendIncreaseEngagement)
	}
	if b.AccountQuality < accountQualityFloor {
		recs = append(recs, models.RecommendImproveAccount)
	}

	if u.Profile.ProfilePicture == "" {
		recs = append(recs, models.RecommendAddProfilePicture)
	}
	if len(u.Profile.Skills) < 5 {
		recs = append(recs, models.RecommendAddSkills)
	}
	if u.CareerPath == nil {
		recs = append(recs, models.RecommendChooseCareerPath)
	}

	if len(recs) > MaxRecommendations {
		recs = recs[:MaxRecommendations]
	}
	return recs
}
