// Package scoring computes the job-seeker profile score. Every function in the
// package is pure: callers fetch the user record and collaborator counts first.
package scoring

import (
	"time"

	"jobseeker-scoring/internal/models"
)

// Related carries the counts read from collaborator stores. The zero value is
// what a user with no reachable collaborators gets.
type Related struct {
	Assessments  models.AssessmentSummary
	Applications int
}

type Scorer struct {
	now func() time.Time
}

type Option func(*Scorer)

// WithClock overrides the time source used for account age and recency.
func WithClock(now func() time.Time) Option {
	return func(s *Scorer) {
		s.now = now
	}
}

func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Breakdown runs the five category scorers.
func (s *Scorer) Breakdown(u *models.UserRecord, rel Related) models.Breakdown {
	return models.Breakdown{
		ProfileCompleteness: ProfileCompleteness(u),
		ResumeDocuments:     ResumeDocuments(u),
		SkillsAssessments:   SkillsAssessments(u, rel.Assessments),
		PlatformEngagement:  PlatformEngagement(u, rel.Applications),
		AccountQuality:      AccountQuality(u, s.now()),
	}
}

// Score produces a full result. LastCalculated is left unset; only persisting
// callers stamp it.
func (s *Scorer) Score(u *models.UserRecord, rel Related) *models.ScoreResult {
	b := s.Breakdown(u, rel)
	total := Total(b)

	res := &models.ScoreResult{
		TotalScore:      total,
		Breakdown:       b,
		Tier:            TierFor(total),
		MissingItems:    MissingItems(u),
		Recommendations: Recommendations(u, b),
	}
	if u != nil {
		res.UserID = u.ID
	}
	return res
}
