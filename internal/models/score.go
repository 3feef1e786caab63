// internal/models/score.go
package models

import "time"

// Tier is the coarse label derived from a total score.
type Tier string

const (
	TierIncomplete Tier = "incomplete"
	TierBasic      Tier = "basic"
	TierReady      Tier = "ready"
	TierStrong     Tier = "strong"
	TierExcellent  Tier = "excellent"
)

// Breakdown is the five-category decomposition of a total score.
type Breakdown struct {
	ProfileCompleteness float64 `json:"profileCompleteness"`
	ResumeDocuments     float64 `json:"resumeDocuments"`
	SkillsAssessments   float64 `json:"skillsAssessments"`
	PlatformEngagement  float64 `json:"platformEngagement"`
	AccountQuality      float64 `json:"accountQuality"`
}

func (b Breakdown) Sum() float64 {
	return b.ProfileCompleteness + b.ResumeDocuments + b.SkillsAssessments +
		b.PlatformEngagement + b.AccountQuality
}

// MissingItem identifies one failed profile checklist entry.
type MissingItem string

const (
	MissingProfilePicture    MissingItem = "profile_picture"
	MissingResume            MissingItem = "resume"
	MissingEmailVerification MissingItem = "email_verification"
	MissingBio               MissingItem = "bio"
	MissingSkills            MissingItem = "skills"
	MissingExperience        MissingItem = "experience"
	MissingEducation         MissingItem = "education"
	MissingContactNumber     MissingItem = "contact_number"
	MissingAddress           MissingItem = "address"
	MissingBirthdate         MissingItem = "birthdate"
	MissingLocation          MissingItem = "location"
	MissingAvailability      MissingItem = "availability"
)

// Recommendation identifies one suggested next step for the user.
type Recommendation string

const (
	RecommendCompleteProfile    Recommendation = "complete_profile"
	RecommendUploadResume       Recommendation = "upload_resume"
	RecommendTakeAssessments    Recommendation = "take_assessments"
	RecommendIncreaseEngagement Recommendation = "increase_engagement"
	RecommendImproveAccount     Recommendation = "improve_account"
	RecommendAddProfilePicture  Recommendation = "add_profile_picture"
	RecommendAddSkills          Recommendation = "add_skills"
	RecommendChooseCareerPath   Recommendation = "choose_career_path"
)

type HistoryEntry struct {
	ID           string    `json:"id,omitempty"`
	Score        float64   `json:"score"`
	CalculatedAt time.Time `json:"calculatedAt"`
	Changes      []string  `json:"changes"`
}

// ScoreRecord is the persisted score of one user, keyed by user id in the score store.
type ScoreRecord struct {
	UserID          string           `json:"userId"`
	TotalScore      float64          `json:"totalScore"`
	Breakdown       Breakdown        `json:"breakdown"`
	Tier            Tier             `json:"tier"`
	MissingItems    []MissingItem    `json:"missingItems"`
	Recommendations []Recommendation `json:"recommendations"`
	LastCalculated  *time.Time       `json:"lastCalculated,omitempty"`
	History         []HistoryEntry   `json:"history,omitempty"`
}

// Cached reports whether the record has been calculated at least once.
func (r *ScoreRecord) Cached() bool {
	return r != nil && r.LastCalculated != nil
}

type ScoreChange struct {
	PreviousScore float64 `json:"previousScore"`
	PreviousTier  Tier    `json:"previousTier,omitempty"`
	Delta         float64 `json:"delta"`
	TierChanged   bool    `json:"tierChanged"`
}

type ScoreResult struct {
	UserID          string           `json:"userId"`
	TotalScore      float64          `json:"totalScore"`
	Breakdown       Breakdown        `json:"breakdown"`
	Tier            Tier             `json:"tier"`
	MissingItems    []MissingItem    `json:"missingItems"`
	Recommendations []Recommendation `json:"recommendations"`
	LastCalculated  *time.Time       `json:"lastCalculated,omitempty"`
	Change          *ScoreChange     `json:"change,omitempty"`
}

type EligibilityResult struct {
	CanApply      bool          `json:"canApply"`
	Reason        string        `json:"reason,omitempty"`
	CurrentScore  float64       `json:"currentScore"`
	RequiredScore float64       `json:"requiredScore"`
	MissingItems  []MissingItem `json:"missingItems,omitempty"`
	FromCache     bool          `json:"fromCache"`
}
