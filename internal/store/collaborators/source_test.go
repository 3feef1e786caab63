package collaborators

import (
	"context"
	"errors"
	"io"
	"net/http"
	"regexp"
	"strings"
	"testing"

	"jobseeker-scoring/internal/common/logger"
	"jobseeker-scoring/internal/common/metrics"
	"jobseeker-scoring/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unavailableCount(source string) float64 {
	return testutil.ToFloat64(metrics.CollaboratorUnavailable.WithLabelValues(source))
}

// ==========================
// Combine / Unavailable
// ==========================

type fixedAssessments models.AssessmentSummary

func (f fixedAssessments) Assessments(context.Context, string) (models.AssessmentSummary, bool) {
	return models.AssessmentSummary(f), true
}

func TestCombine(t *testing.T) {
	src := Combine(fixedAssessments{Completed: 3, Certificates: 1}, nil)

	summary, ok := src.Assessments(context.Background(), "u1")
	assert.True(t, ok)
	assert.Equal(t, models.AssessmentSummary{Completed: 3, Certificates: 1}, summary)

	before := unavailableCount(SourceApplications)
	n, ok := src.Applications(context.Background(), "u1")
	assert.False(t, ok)
	assert.Zero(t, n)
	assert.Equal(t, before+1, unavailableCount(SourceApplications))
}

func TestUnavailable(t *testing.T) {
	summary, ok := Unavailable{}.Assessments(context.Background(), "u1")
	assert.False(t, ok)
	assert.Equal(t, models.AssessmentSummary{}, summary)
}

// ==========================
// Postgres
// ==========================

func TestPostgresAssessments(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(selectAssessments)).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "completed", "passed", "certificate_issued"}).
			AddRow("a1", true, true, true).
			AddRow("a2", true, true, false).
			AddRow("a3", true, false, false).
			AddRow("a4", false, false, false))

	summary, ok := NewPostgresAssessments(db, logger.NewTestLogger(t)).Assessments(context.Background(), "u1")

	assert.True(t, ok)
	assert.Equal(t, models.AssessmentSummary{Completed: 3, Certificates: 1}, summary)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresAssessments_MissingTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(selectAssessments)).
		WithArgs("u1").
		WillReturnError(&pq.Error{Code: undefinedTable, Message: `relation "assessment_results" does not exist`})

	before := unavailableCount(SourceAssessments)
	summary, ok := NewPostgresAssessments(db, logger.NewTestLogger(t)).Assessments(context.Background(), "u1")

	assert.False(t, ok)
	assert.Equal(t, models.AssessmentSummary{}, summary)
	assert.Equal(t, before+1, unavailableCount(SourceAssessments))
}

func TestPostgresApplications(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(mock sqlmock.Sqlmock)
		expected int
		ok       bool
	}{
		{
			name: "counts rows",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(countApplications)).
					WithArgs("u1").
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(9))
			},
			expected: 9,
			ok:       true,
		},
		{
			name: "query error is unavailable",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(countApplications)).
					WithArgs("u1").
					WillReturnError(errors.New("connection refused"))
			},
			expected: 0,
			ok:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			tt.setup(mock)

			n, ok := NewPostgresApplications(db, logger.NewTestLogger(t)).Applications(context.Background(), "u1")

			assert.Equal(t, tt.expected, n)
			assert.Equal(t, tt.ok, ok)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

// ==========================
// Elasticsearch
// ==========================

type countTransport struct {
	status  int
	body    string
	lastReq *http.Request
	reqBody string
}

func (tr *countTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	tr.lastReq = req
	if req.Body != nil {
		b, _ := io.ReadAll(req.Body)
		tr.reqBody = string(b)
	}
	header := http.Header{}
	header.Set("X-Elastic-Product", "Elasticsearch")
	header.Set("Content-Type", "application/json")
	return &http.Response{
		StatusCode: tr.status,
		Header:     header,
		Body:       io.NopCloser(strings.NewReader(tr.body)),
		Request:    req,
	}, nil
}

func newESClient(t *testing.T, tr http.RoundTripper) *elasticsearch.Client {
	t.Helper()
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{"http://es.local:9200"},
		Transport: tr,
	})
	require.NoError(t, err)
	return es
}

func TestElasticsearchApplications(t *testing.T) {
	tr := &countTransport{status: http.StatusOK, body: `{"count":7,"_shards":{"total":1}}`}
	src := NewElasticsearchApplications(newESClient(t, tr), "applications", logger.NewTestLogger(t))

	n, ok := src.Applications(context.Background(), "u1")

	assert.True(t, ok)
	assert.Equal(t, 7, n)
	require.NotNil(t, tr.lastReq)
	assert.Equal(t, "/applications/_count", tr.lastReq.URL.Path)
	assert.JSONEq(t, `{"query":{"term":{"applicantId":"u1"}}}`, tr.reqBody)
}

func TestElasticsearchApplications_IndexMissing(t *testing.T) {
	tr := &countTransport{status: http.StatusNotFound, body: `{"error":{"type":"index_not_found_exception"}}`}
	src := NewElasticsearchApplications(newESClient(t, tr), "applications", logger.NewTestLogger(t))

	before := unavailableCount(SourceApplications)
	n, ok := src.Applications(context.Background(), "u1")

	assert.False(t, ok)
	assert.Zero(t, n)
	assert.Equal(t, before+1, unavailableCount(SourceApplications))
}
