// internal/scoring/categories.go
package scoring

import (
	"time"
	"unicode/utf8"

	"jobseeker-scoring/internal/models"
)

const (
	MaxProfileCompleteness = 30.0
	MaxResumeDocuments     = 20.0
	MaxSkillsAssessments   = 25.0
	MaxPlatformEngagement  = 15.0
	MaxAccountQuality      = 10.0

	pdfMimeType = "application/pdf"
	day         = 24 * time.Hour
)

// ProfileCompleteness scores identity and profile fields (max 30).
func ProfileCompleteness(u *models.UserRecord) float64 {
	if u == nil {
		return 0
	}
	p := u.Profile
	score := 0.0

	// Identity (max 10)
	if u.FirstName != "" {
		score += 1
	}
	if u.LastName != "" {
		score += 1
	}
	if u.Email != "" {
		score += 1
		if u.EmailVerified {
			score += 1
		}
	}
	if u.ContactNumber != "" {
		score += 2
	}
	if u.Address != "" {
		score += 2
	}
	if u.Birthdate != nil {
		score += 2
	}

	// Bio and preferences (max 10)
	if bio := textLength(p.Bio); bio >= 50 {
		score += 3
	} else if bio >= 20 {
		score += 1.5
	}
	if p.Location != "" {
		score += 2
	}
	if p.Availability != "" {
		score += 2
	}
	if p.Remote != nil {
		score += 1
	}
	if p.ProfilePicture != "" {
		score += 2
	}

	// Skills, experience, education (max 10)
	if skills := len(p.Skills); skills >= 5 {
		score += 3
	} else if skills >= 3 {
		score += 2
	} else if skills >= 1 {
		score += 1
	}

	if exp := textLength(p.Experience); exp >= 100 {
		score += 4
	} else if exp >= 50 {
		score += 2
	} else if exp > 0 {
		score += 1
	}

	if edu := textLength(p.Education); edu >= 50 {
		score += 3
	} else if edu >= 20 {
		score += 1.5
	} else if edu > 0 {
		score += 0.5
	}

	return clamp(score, 0, MaxProfileCompleteness)
}

// ResumeDocuments scores the uploaded resume (max 20).
func ResumeDocuments(u *models.UserRecord) float64 {
	if u == nil || !u.HasResume() {
		return 0
	}
	r := u.Resume

	score := 15.0
	if r.FileSize > 10000 {
		score += 1
	}
	if r.FileType == pdfMimeType {
		score += 1
	}
	if textLength(r.OriginalName) > 5 {
		score += 1
	}
	// Completeness bonus for having a resume at all
	score += 2

	return clamp(score, 0, MaxResumeDocuments)
}

// SkillsAssessments scores listed skills, completed assessments and earned
// certificates (max 25). A zero summary is what an unavailable assessment source yields.
func SkillsAssessments(u *models.UserRecord, assessments models.AssessmentSummary) float64 {
	if u == nil {
		return 0
	}
	score := float64(min(len(u.Profile.Skills), 5))

	if done := assessments.Completed; done >= 5 {
		score += 10
	} else if done >= 3 {
		score += 6
	} else if done >= 1 {
		score += 3
	}

	if certs := assessments.Certificates; certs >= 4 {
		score += 10
	} else if certs >= 2 {
		score += 6
	} else if certs >= 1 {
		score += 3
	}

	return clamp(score, 0, MaxSkillsAssessments)
}

// PlatformEngagement scores applications, bookmarks and career path selection
// (max 15). Mentorship participation is budgeted at 4 points but not awarded, so
// the reachable ceiling is 10.
func PlatformEngagement(u *models.UserRecord, applications int) float64 {
	if u == nil {
		return 0
	}
	score := 0.0

	if applications >= 8 {
		score += 5
	} else if applications >= 4 {
		score += 4
	} else if applications >= 1 {
		score += 2
	}

	if bookmarks := len(u.BookmarkedResources); bookmarks >= 11 {
		score += 3
	} else if bookmarks >= 6 {
		score += 2
	} else if bookmarks >= 1 {
		score += 1
	}

	if u.CareerPath != nil {
		score += 2
	}

	return clamp(score, 0, MaxPlatformEngagement)
}

// AccountQuality scores verification, account age and recent activity (max 10).
// A smaller gap since the last update scores higher.
func AccountQuality(u *models.UserRecord, now time.Time) float64 {
	if u == nil {
		return 0
	}
	score := 0.0

	if u.EmailVerified {
		score += 5
	}

	if !u.CreatedAt.IsZero() {
		if age := daysBetween(u.CreatedAt, now); age >= 30 {
			score += 2
		} else if age >= 7 {
			score += 1
		}
	}

	if !u.UpdatedAt.IsZero() {
		if idle := daysBetween(u.UpdatedAt, now); idle <= 7 {
			score += 3
		} else if idle <= 30 {
			score += 2
		} else if idle <= 90 {
			score += 1
		}
	}

	return clamp(score, 0, MaxAccountQuality)
}

func textLength(s string) int {
	return utf8.RuneCountInString(s)
}

// daysBetween returns whole days elapsed from since to now, never negative.
func daysBetween(since, now time.Time) int {
	d := now.Sub(since)
	if d < 0 {
		return 0
	}
	return int(d / day)
}

func clamp(value, lo, hi float64) float64 {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
