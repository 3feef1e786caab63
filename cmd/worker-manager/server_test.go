// cmd/worker-manager/server_test.go
package main

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobseeker-scoring/internal/common/config"
	"jobseeker-scoring/internal/common/database"
	"jobseeker-scoring/internal/common/logger"
	"jobseeker-scoring/internal/store/scores"
)

type pingerStub struct {
	name string
	err  error
}

func (p pingerStub) Name() string { return p.name }

func (p pingerStub) Ping(context.Context) error { return p.err }

func serve(t *testing.T, path string, backends ...database.Pinger) (*httptest.ResponseRecorder, map[string]interface{}) {
	mux := newMux(database.NewChecker(time.Second, backends...), logger.NewTestLogger(t))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var body map[string]interface{}
	if path != "/metrics" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func TestServer_Health(t *testing.T) {
	rec, body := serve(t, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", body["status"])
}

func TestServer_Ready(t *testing.T) {
	rec, body := serve(t, "/ready", pingerStub{name: "postgres"}, pingerStub{name: "zeebe"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ready", body["status"])

	rec, body = serve(t, "/ready", pingerStub{name: "postgres"}, pingerStub{name: "redis", err: stderrors.New("refused")})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "not_ready", body["status"])
	assert.Equal(t, "refused", body["backends"].(map[string]interface{})["redis"])
}

func TestServer_Metrics(t *testing.T) {
	rec, _ := serve(t, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBuildScoreStore_Memory(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Scores: config.BackendMemory}}

	store, err := buildScoreStore(context.Background(), cfg, nil, nil, logger.NewTestLogger(t))

	require.NoError(t, err)
	assert.IsType(t, &scores.MemoryStore{}, store)
}

func TestBuildScoreStore_RedisWithoutClient(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Scores: config.BackendRedis}}

	_, err := buildScoreStore(context.Background(), cfg, nil, nil, logger.NewTestLogger(t))

	assert.Error(t, err)
}

func TestBuildSenders_Disabled(t *testing.T) {
	email, sms, err := buildSenders(context.Background(), &config.Config{})

	require.NoError(t, err)
	assert.Nil(t, email)
	assert.Nil(t, sms)
}

func TestBuildCollaborators_None(t *testing.T) {
	cfg := &config.Config{Collaborators: config.CollaboratorsConfig{
		Assessments:  config.BackendNone,
		Applications: config.BackendNone,
	}}

	src := buildCollaborators(cfg, nil, nil, logger.NewNoOpLogger())

	_, ok := src.Assessments(context.Background(), "user-001")
	assert.False(t, ok)
	_, ok = src.Applications(context.Background(), "user-001")
	assert.False(t, ok)
}
