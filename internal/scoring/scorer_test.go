// internal/scoring/scorer_test.go
package scoring

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"jobseeker-scoring/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time { return testNow }

// ==========================
// Aggregation
// ==========================

func TestTierFor(t *testing.T) {
	tests := []struct {
		total    float64
		expected models.Tier
	}{
		{0, models.TierIncomplete},
		{39.9, models.TierIncomplete},
		{40, models.TierBasic},
		{59.9, models.TierBasic},
		{60, models.TierReady},
		{74.9, models.TierReady},
		{75, models.TierStrong},
		{84.9, models.TierStrong},
		{85, models.TierExcellent},
		{100, models.TierExcellent},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, TierFor(tt.total), "total %.1f", tt.total)
	}
}

func TestTierFor_Monotonic(t *testing.T) {
	rank := map[models.Tier]int{
		models.TierIncomplete: 0,
		models.TierBasic:      1,
		models.TierReady:      2,
		models.TierStrong:     3,
		models.TierExcellent:  4,
	}
	prev := rank[TierFor(0)]
	for v := 0.0; v <= 100.0; v += 0.1 {
		cur := rank[TierFor(Round1(v))]
		assert.GreaterOrEqual(t, cur, prev, "tier dropped at %.1f", v)
		prev = cur
	}
}

func TestTotal(t *testing.T) {
	b := models.Breakdown{
		ProfileCompleteness: 12.5,
		ResumeDocuments:     17,
		SkillsAssessments:   3,
		PlatformEngagement:  1,
		AccountQuality:      2,
	}
	assert.Equal(t, 35.5, Total(b))
	assert.Equal(t, 0.0, Total(models.Breakdown{}))
	assert.Equal(t, 100.0, Total(models.Breakdown{
		ProfileCompleteness: 30, ResumeDocuments: 20, SkillsAssessments: 25,
		PlatformEngagement: 15, AccountQuality: 10,
	}))
}

func TestRound1(t *testing.T) {
	assert.Equal(t, 1.5, Round1(1.45))
	assert.Equal(t, 2.0, Round1(1.96))
	assert.Equal(t, 75.0, Round1(75.0))
}

// ==========================
// Missing Items
// ==========================

func TestMissingItems_CompleteUser(t *testing.T) {
	assert.Empty(t, MissingItems(createCompleteUser()))
}

func TestMissingItems_MinimalUserInChecklistOrder(t *testing.T) {
	expected := []models.MissingItem{
		models.MissingProfilePicture,
		models.MissingResume,
		models.MissingEmailVerification,
		models.MissingBio,
		models.MissingSkills,
		models.MissingExperience,
		models.MissingEducation,
		models.MissingContactNumber,
		models.MissingAddress,
		models.MissingBirthdate,
		models.MissingLocation,
		models.MissingAvailability,
	}
	assert.Equal(t, expected, MissingItems(createMinimalUser()))
}

func TestMissingItems_ThresholdsDifferFromScoring(t *testing.T) {
	u := createCompleteUser()
	u.Profile.Bio = strings.Repeat("b", 49)
	u.Profile.Skills = skills(2)
	u.Profile.Experience = strings.Repeat("e", 99)

	assert.Equal(t, []models.MissingItem{
		models.MissingBio,
		models.MissingSkills,
		models.MissingExperience,
	}, MissingItems(u))
}

// ==========================
// Recommendations
// ==========================

func TestRecommendations(t *testing.T) {
	tests := []struct {
		name      string
		user      *models.UserRecord
		breakdown models.Breakdown
		expected  []models.Recommendation
	}{
		{
			name:      "minimal user truncated to five",
			user:      createMinimalUser(),
			breakdown: models.Breakdown{ProfileCompleteness: 1},
			expected: []models.Recommendation{
				models.RecommendCompleteProfile,
				models.RecommendUploadResume,
				models.RecommendTakeAssessments,
				models.RecommendIncreaseEngagement,
				models.RecommendImproveAccount,
			},
		},
		{
			name: "complete user only lacks assessments",
			user: createCompleteUser(),
			breakdown: models.Breakdown{
				ProfileCompleteness: 30, ResumeDocuments: 20, SkillsAssessments: 5,
				PlatformEngagement: 10, AccountQuality: 10,
			},
			expected: []models.Recommendation{models.RecommendTakeAssessments},
		},
		{
			name: "specific actions follow category suggestions",
			user: func() *models.UserRecord {
				u := createCompleteUser()
				u.Profile.ProfilePicture = ""
				u.Profile.Skills = skills(3)
				u.CareerPath = nil
				return u
			}(),
			breakdown: models.Breakdown{
				ProfileCompleteness: 25, ResumeDocuments: 20, SkillsAssessments: 15,
				PlatformEngagement: 4, AccountQuality: 8,
			},
			expected: []models.Recommendation{
				models.RecommendIncreaseEngagement,
				models.RecommendAddProfilePicture,
				models.RecommendAddSkills,
				models.RecommendChooseCareerPath,
			},
		},
		{
			name: "nothing to recommend",
			user: createCompleteUser(),
			breakdown: models.Breakdown{
				ProfileCompleteness: 30, ResumeDocuments: 20, SkillsAssessments: 25,
				PlatformEngagement: 10, AccountQuality: 10,
			},
			expected: []models.Recommendation{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Recommendations(tt.user, tt.breakdown)
			assert.Equal(t, tt.expected, got)
			assert.LessOrEqual(t, len(got), MaxRecommendations)
		})
	}
}

// ==========================
// Scorer
// ==========================

func TestScorer_CompleteUserWithoutAssessments(t *testing.T) {
	s := NewScorer(WithClock(fixedClock))

	res := s.Score(createCompleteUser(), Related{Applications: 9})

	assert.Equal(t, "user-complete", res.UserID)
	assert.Equal(t, models.Breakdown{
		ProfileCompleteness: 30,
		ResumeDocuments:     20,
		SkillsAssessments:   5,
		PlatformEngagement:  10,
		AccountQuality:      10,
	}, res.Breakdown)
	assert.Equal(t, 75.0, res.TotalScore)
	assert.Equal(t, models.TierStrong, res.Tier)
	assert.Empty(t, res.MissingItems)
	assert.Equal(t, []models.Recommendation{models.RecommendTakeAssessments}, res.Recommendations)
	assert.Nil(t, res.LastCalculated)
	assert.Nil(t, res.Change)
}

func TestScorer_MinimalUser(t *testing.T) {
	s := NewScorer(WithClock(fixedClock))

	res := s.Score(createMinimalUser(), Related{})

	assert.Equal(t, 1.0, res.TotalScore)
	assert.Equal(t, models.TierIncomplete, res.Tier)
	assert.Len(t, res.MissingItems, 12)
	assert.Len(t, res.Recommendations, MaxRecommendations)
}

func TestScorer_UnavailableCollaboratorsScoreZero(t *testing.T) {
	s := NewScorer(WithClock(fixedClock))
	u := createCompleteUser()
	u.CareerPath = nil
	u.BookmarkedResources = nil
	u.Profile.Skills = nil

	b := s.Breakdown(u, Related{})

	assert.Equal(t, 0.0, b.SkillsAssessments)
	assert.Equal(t, 0.0, b.PlatformEngagement)
}

func TestScorer_Idempotent(t *testing.T) {
	s := NewScorer(WithClock(fixedClock))
	u := createCompleteUser()
	rel := Related{Assessments: models.AssessmentSummary{Completed: 3, Certificates: 2}, Applications: 5}

	first := s.Score(u, rel)
	second := s.Score(u, rel)

	assert.Equal(t, first, second)
}

func TestScorer_BoundsAndSumInvariant(t *testing.T) {
	s := NewScorer(WithClock(fixedClock))
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		u, rel := randomUser(rng)
		res := s.Score(u, rel)
		b := res.Breakdown

		require.GreaterOrEqual(t, b.ProfileCompleteness, 0.0)
		require.LessOrEqual(t, b.ProfileCompleteness, MaxProfileCompleteness)
		require.GreaterOrEqual(t, b.ResumeDocuments, 0.0)
		require.LessOrEqual(t, b.ResumeDocuments, MaxResumeDocuments)
		require.GreaterOrEqual(t, b.SkillsAssessments, 0.0)
		require.LessOrEqual(t, b.SkillsAssessments, MaxSkillsAssessments)
		require.GreaterOrEqual(t, b.PlatformEngagement, 0.0)
		require.LessOrEqual(t, b.PlatformEngagement, 10.0)
		require.GreaterOrEqual(t, b.AccountQuality, 0.0)
		require.LessOrEqual(t, b.AccountQuality, MaxAccountQuality)

		require.InDelta(t, Round1(b.Sum()), res.TotalScore, 0.05)
		require.GreaterOrEqual(t, res.TotalScore, 0.0)
		require.LessOrEqual(t, res.TotalScore, MaxTotalScore)
		require.Equal(t, TierFor(res.TotalScore), res.Tier)
		require.LessOrEqual(t, len(res.Recommendations), MaxRecommendations)
	}
}

func randomUser(rng *rand.Rand) (*models.UserRecord, Related) {
	maybe := func(s string) string {
		if rng.Intn(2) == 0 {
			return ""
		}
		return s
	}

	u := &models.UserRecord{
		ID:            "random",
		Role:          models.RoleJobSeeker,
		FirstName:     maybe("Alan"),
		LastName:      maybe("Turing"),
		Email:         maybe("alan@example.com"),
		EmailVerified: rng.Intn(2) == 0,
		ContactNumber: maybe("+15550111"),
		Address:       maybe("Bletchley Park"),
		Profile: models.Profile{
			Bio:            strings.Repeat("b", rng.Intn(80)),
			Skills:         skills(rng.Intn(10)),
			Location:       maybe("Manchester"),
			Availability:   maybe("part-time"),
			Experience:     strings.Repeat("e", rng.Intn(150)),
			Education:      strings.Repeat("d", rng.Intn(80)),
			ProfilePicture: maybe("https://cdn.example.com/p.png"),
		},
		BookmarkedResources: bookmarks(rng.Intn(20)),
	}
	if rng.Intn(2) == 0 {
		u.Profile.Remote = boolPtr(rng.Intn(2) == 0)
	}
	if rng.Intn(2) == 0 {
		u.Birthdate = timePtr(testNow.AddDate(-30, 0, 0))
	}
	if rng.Intn(3) > 0 {
		u.CreatedAt = testNow.Add(-time.Duration(rng.Intn(400)) * day)
		u.UpdatedAt = testNow.Add(-time.Duration(rng.Intn(120)) * day)
	}
	if rng.Intn(2) == 0 {
		u.Resume = &models.Resume{
			CloudinaryURL: "https://res.cloudinary.com/r",
			FileSize:      int64(rng.Intn(40000)),
			FileType:      []string{"application/pdf", "application/msword"}[rng.Intn(2)],
			OriginalName:  maybe("cv-final.pdf"),
		}
	}
	if rng.Intn(2) == 0 {
		u.CareerPath = &models.CareerPath{Title: "Cryptanalyst"}
	}

	completed := rng.Intn(8)
	rel := Related{
		Assessments:  models.AssessmentSummary{Completed: completed, Certificates: rng.Intn(completed + 1)},
		Applications: rng.Intn(12),
	}
	return u, rel
}
