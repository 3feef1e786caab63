// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"sync"
	"time"

	"jobseeker-scoring/internal/common/config"
	"jobseeker-scoring/internal/common/logger"
	"jobseeker-scoring/internal/common/metrics"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

// JobHandler is implemented by every worker handler.
type JobHandler interface {
	Handle(client worker.JobClient, job entities.Job)
}

// JobRecorder receives one observation per handled job.
type JobRecorder interface {
	RecordJobProcessed(ctx context.Context, taskType, status string)
	RecordJobDuration(ctx context.Context, taskType string, duration time.Duration, status string)
}

// WorkerManager opens one Zeebe job worker per task type and closes them together.
type WorkerManager struct {
	client   zbc.Client
	logger   logger.Logger
	recorder JobRecorder
	mu       sync.Mutex
	workers  map[string]worker.JobWorker
}

func NewWorkerManager(client zbc.Client, log logger.Logger) *WorkerManager {
	return &WorkerManager{
		client:  client,
		logger:  log,
		workers: make(map[string]worker.JobWorker),
	}
}

// WithRecorder exports handled jobs through r in addition to the Prometheus vectors.
func (m *WorkerManager) WithRecorder(r JobRecorder) *WorkerManager {
	m.recorder = r
	return m
}

// Start opens the worker for taskType unless it is disabled in configuration.
func (m *WorkerManager) Start(taskType string, wcfg config.WorkerConfig, handler JobHandler) bool {
	if !wcfg.Enabled {
		m.logger.Info("worker disabled", map[string]interface{}{"taskType": taskType})
		return false
	}

	jobWorker := m.client.NewJobWorker().
		JobType(taskType).
		Handler(m.record(taskType, Instrument(taskType, handler.Handle))).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(config.GetDuration(wcfg.Timeout)).
		Open()

	m.mu.Lock()
	m.workers[taskType] = jobWorker
	m.mu.Unlock()

	m.logger.Info("worker started", map[string]interface{}{
		"taskType":      taskType,
		"maxJobsActive": wcfg.MaxJobsActive,
		"timeout_ms":    wcfg.Timeout,
	})
	return true
}

// TaskTypes lists the running workers.
func (m *WorkerManager) TaskTypes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.workers))
	for taskType := range m.workers {
		out = append(out, taskType)
	}
	return out
}

// Stop closes every worker and waits for in-flight jobs until ctx expires.
func (m *WorkerManager) Stop(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	done := make(chan struct{})
	go func() {
		for taskType, w := range m.workers {
			m.logger.Info("stopping worker", map[string]interface{}{"taskType": taskType})
			w.Close()
			w.AwaitClose()
		}
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		m.logger.Warn("timed out waiting for workers to stop", nil)
	}
}

// Instrument wraps a job handler with the active-jobs gauge. Handlers record
// their own outcome and duration.
func Instrument(taskType string, handle worker.JobHandler) worker.JobHandler {
	return func(client worker.JobClient, job entities.Job) {
		active := metrics.WorkerJobsActive.WithLabelValues(taskType)
		active.Inc()
		defer active.Dec()
		handle(client, job)
	}
}

func (m *WorkerManager) record(taskType string, handle worker.JobHandler) worker.JobHandler {
	if m.recorder == nil {
		return handle
	}
	return func(client worker.JobClient, job entities.Job) {
		start := time.Now()
		handle(client, job)
		ctx := context.Background()
		m.recorder.RecordJobProcessed(ctx, taskType, "handled")
		m.recorder.RecordJobDuration(ctx, taskType, time.Since(start), "handled")
	}
}
