// internal/store/collaborators/postgres.go
package collaborators

import (
	"context"
	"database/sql"
	"errors"

	"jobseeker-scoring/internal/common/logger"
	"jobseeker-scoring/internal/models"

	"github.com/lib/pq"
)

const undefinedTable = "42P01"

const (
	selectAssessments = `SELECT id, completed, passed, certificate_issued
		FROM assessment_results WHERE user_id = $1`

	countApplications = `SELECT COUNT(*) FROM applications WHERE applicant_id = $1`
)

// PostgresAssessments reads the assessment_results table.
type PostgresAssessments struct {
	db     *sql.DB
	logger logger.Logger
}

func NewPostgresAssessments(db *sql.DB, log logger.Logger) *PostgresAssessments {
	return &PostgresAssessments{db: db, logger: log.WithFields(map[string]interface{}{"source": SourceAssessments})}
}

func (s *PostgresAssessments) Assessments(ctx context.Context, userID string) (models.AssessmentSummary, bool) {
	rows, err := s.db.QueryContext(ctx, selectAssessments, userID)
	if err != nil {
		logLookupFailure(s.logger, userID, err)
		unavailable(SourceAssessments)
		return models.AssessmentSummary{}, false
	}
	defer rows.Close()

	var results []models.AssessmentResult
	for rows.Next() {
		r := models.AssessmentResult{UserID: userID}
		if err := rows.Scan(&r.ID, &r.Completed, &r.Passed, &r.CertificateIssued); err != nil {
			logLookupFailure(s.logger, userID, err)
			unavailable(SourceAssessments)
			return models.AssessmentSummary{}, false
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		logLookupFailure(s.logger, userID, err)
		unavailable(SourceAssessments)
		return models.AssessmentSummary{}, false
	}

	return models.SummarizeAssessments(results), true
}

// PostgresApplications counts rows in the applications table.
type PostgresApplications struct {
	db     *sql.DB
	logger logger.Logger
}

func NewPostgresApplications(db *sql.DB, log logger.Logger) *PostgresApplications {
	return &PostgresApplications{db: db, logger: log.WithFields(map[string]interface{}{"source": SourceApplications})}
}

func (s *PostgresApplications) Applications(ctx context.Context, userID string) (int, bool) {
	var n int
	if err := s.db.QueryRowContext(ctx, countApplications, userID).Scan(&n); err != nil {
		logLookupFailure(s.logger, userID, err)
		unavailable(SourceApplications)
		return 0, false
	}
	return n, true
}

func logLookupFailure(log logger.Logger, userID string, err error) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == undefinedTable {
		log.Warn("collaborator table missing", map[string]interface{}{
			"userId": userID,
			"error":  pqErr.Message,
		})
		return
	}
	log.Error("collaborator lookup failed", map[string]interface{}{
		"userId": userID,
		"error":  err.Error(),
	})
}
