// Package collaborators reads counts owned by other services. A source that
// cannot answer reports false and the caller scores zero for it.
package collaborators

import (
	"context"

	"jobseeker-scoring/internal/common/metrics"
	"jobseeker-scoring/internal/models"
)

const (
	SourceAssessments  = "assessments"
	SourceApplications = "applications"
)

type AssessmentSource interface {
	Assessments(ctx context.Context, userID string) (models.AssessmentSummary, bool)
}

type ApplicationSource interface {
	Applications(ctx context.Context, userID string) (int, bool)
}

// Source answers both collaborator lookups.
type Source interface {
	AssessmentSource
	ApplicationSource
}

type combined struct {
	AssessmentSource
	ApplicationSource
}

// Combine joins separately configured halves into one Source. A nil half is
// treated as unavailable.
func Combine(assessments AssessmentSource, applications ApplicationSource) Source {
	if assessments == nil {
		assessments = Unavailable{}
	}
	if applications == nil {
		applications = Unavailable{}
	}
	return combined{AssessmentSource: assessments, ApplicationSource: applications}
}

// Unavailable is used when no backing service is configured.
type Unavailable struct{}

func (Unavailable) Assessments(context.Context, string) (models.AssessmentSummary, bool) {
	unavailable(SourceAssessments)
	return models.AssessmentSummary{}, false
}

func (Unavailable) Applications(context.Context, string) (int, bool) {
	unavailable(SourceApplications)
	return 0, false
}

func unavailable(source string) {
	metrics.CollaboratorUnavailable.WithLabelValues(source).Inc()
}
