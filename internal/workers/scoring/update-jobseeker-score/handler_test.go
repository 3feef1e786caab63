// internal/workers/scoring/update-jobseeker-score/handler_test.go
package updatejobseekerscore

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"
	"time"

	"jobseeker-scoring/internal/common/config"
	"jobseeker-scoring/internal/common/errors"
	"jobseeker-scoring/internal/common/logger"
	"jobseeker-scoring/internal/common/validation"
	"jobseeker-scoring/internal/engine"
	"jobseeker-scoring/internal/models"
	"jobseeker-scoring/internal/store/scores"
	"jobseeker-scoring/internal/store/users"
	"jobseeker-scoring/pkg/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func seeker(id string, verified bool) *models.UserRecord {
	return &models.UserRecord{
		ID:            id,
		Role:          models.RoleJobSeeker,
		FirstName:     "Lin",
		LastName:      "Chen",
		Email:         "lin@example.com",
		EmailVerified: verified,
		CreatedAt:     testNow.Add(-60 * 24 * time.Hour),
		UpdatedAt:     testNow.Add(-24 * time.Hour),
		Profile: models.Profile{
			Bio:    strings.Repeat("b", 60),
			Skills: []string{"go", "sql", "docker"},
		},
		Resume: &models.Resume{CloudinaryURL: "https://res.cloudinary.com/r.pdf", FileType: "application/pdf"},
	}
}

type fixture struct {
	users   *users.MemoryStore
	scores  *scores.MemoryStore
	handler *Handler
}

func newFixture(t *testing.T, records ...*models.UserRecord) *fixture {
	f := &fixture{users: users.NewMemoryStore(records...), scores: scores.NewMemoryStore()}
	eng := engine.New(f.users, f.scores, nil, logger.NewTestLogger(t),
		engine.WithClock(func() time.Time { return testNow }))
	f.handler = NewHandler(&Config{Timeout: 5 * time.Second, BatchConcurrency: 2}, eng, nil, logger.NewTestLogger(t))
	return f
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_SingleUser(t *testing.T) {
	f := newFixture(t, seeker("u1", true))

	output, err := f.handler.Execute(context.Background(), &Input{UserID: "u1"})

	require.NoError(t, err)
	assert.Equal(t, "u1", output.UserID)
	assert.Nil(t, output.Batch)
	require.NotNil(t, output.LastCalculated)
	assert.Equal(t, testNow, *output.LastCalculated)
	assert.Equal(t, output.TotalScore, output.Delta)
	assert.False(t, output.TierChanged)
	assert.Contains(t, output.ChangeSummary, "Score increased by")

	stored, err := f.scores.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, output.TotalScore, stored.TotalScore)
}

func TestHandler_Execute_TierChange(t *testing.T) {
	f := newFixture(t, seeker("u1", false))
	first, err := f.handler.Execute(context.Background(), &Input{UserID: "u1"})
	require.NoError(t, err)

	f.users.Put(seeker("u1", true))
	second, err := f.handler.Execute(context.Background(), &Input{UserID: "u1"})

	require.NoError(t, err)
	assert.Equal(t, first.Tier, second.PreviousTier)
	assert.Equal(t, first.Tier != second.Tier, second.TierChanged)
	assert.Greater(t, second.Delta, 0.0)
}

func TestHandler_Execute_Batch(t *testing.T) {
	employer := seeker("boss", true)
	employer.Role = models.RoleEmployer
	f := newFixture(t, seeker("u1", true), seeker("u2", false), employer)

	output, err := f.handler.Execute(context.Background(), &Input{UserIDs: []string{"u1", "ghost", "u2", "boss"}})

	require.NoError(t, err)
	require.NotNil(t, output.Batch)
	assert.Equal(t, 4, output.Batch.Total)
	assert.Equal(t, 2, output.Batch.Succeeded)
	assert.Equal(t, 2, output.Batch.Failed)
	assert.Equal(t, "USER_NOT_FOUND", output.Batch.Results[1].ErrorCode)
	assert.Equal(t, "ROLE_MISMATCH", output.Batch.Results[3].ErrorCode)
	assert.NotEmpty(t, output.Batch.Results[0].Tier)
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_Execute_Errors(t *testing.T) {
	f := newFixture(t)

	_, err := f.handler.Execute(context.Background(), nil)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidInput))

	_, err = f.handler.Execute(context.Background(), &Input{})
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidInput))

	_, err = f.handler.Execute(context.Background(), &Input{UserID: "ghost"})
	assert.True(t, errors.HasCode(err, errors.ErrCodeUserNotFound))
}

type brokenUpdater struct{}

func (brokenUpdater) Update(context.Context, string) (*models.ScoreResult, error) {
	return nil, errors.NewScoreStoreFailedError("u1", stderrors.New("read-only replica"))
}

func (brokenUpdater) UpdateMany(context.Context, []string, int) []engine.BatchResult { return nil }

func TestHandler_Execute_StoreFailureIsRetryable(t *testing.T) {
	h := NewHandler(&Config{Timeout: time.Second}, brokenUpdater{}, nil, logger.NewNoOpLogger())

	_, err := h.Execute(context.Background(), &Input{UserID: "u1"})

	stdErr, ok := errors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, 3, errors.ConvertToBPMNError(stdErr).Retries)
}

// ==========================
// Input Schema Tests
// ==========================

func TestInputSchema(t *testing.T) {
	reg, err := registry.LoadRegistry("../../../../configs/activity-registry.json")
	require.NoError(t, err)
	v, err := validation.NewSchemaValidator(reg)
	require.NoError(t, err)

	assert.NoError(t, v.ValidateJSON(TaskType, `{"userId":"u1"}`))
	assert.NoError(t, v.ValidateJSON(TaskType, `{"userIds":["u1","u2"]}`))
	assert.Error(t, v.ValidateJSON(TaskType, `{}`))
	assert.Error(t, v.ValidateJSON(TaskType, `{"userIds":[]}`))
}

func TestLoadConfig(t *testing.T) {
	cfg := &config.Config{Engine: config.EngineConfig{BatchConcurrency: 8}}

	c := LoadConfig(cfg)

	assert.Equal(t, 8, c.BatchConcurrency)
	assert.Equal(t, 30*time.Second, c.Timeout)
}
