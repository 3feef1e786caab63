// internal/workers/scoring/check-job-eligibility/handler.go
package checkjobeligibility

import (
	"context"
	"encoding/json"
	"time"

	"jobseeker-scoring/internal/common/errors"
	"jobseeker-scoring/internal/common/logger"
	"jobseeker-scoring/internal/common/metrics"
	"jobseeker-scoring/internal/common/validation"
	"jobseeker-scoring/internal/models"
	"jobseeker-scoring/internal/presentation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "check-job-eligibility"
)

type EligibilityChecker interface {
	CanApply(ctx context.Context, userID string) (*models.EligibilityResult, error)
}

type Handler struct {
	config       *Config
	checker      EligibilityChecker
	validator    *validation.SchemaValidator
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, checker EligibilityChecker, validator *validation.SchemaValidator, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		checker:      checker,
		validator:    validator,
		errorHandler: errors.NewErrorHandler(log),
		logger:       log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	if h.validator != nil {
		if err := h.validator.ValidateJSON(TaskType, job.Variables); err != nil {
			h.failJob(client, job, errors.NewInvalidInputError(err.Error()), start)
			return
		}
	}

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, errors.NewInvalidInputError("parse input: "+err.Error()), start)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(client, job, err, start)
		return
	}

	h.completeJob(client, job, output, start)
}

// execute completes with canApply=false for denials, including unknown users.
// Only lookup failures fail the job.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.NewInvalidInputError("userId is required")
	}

	res, err := h.checker.CanApply(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	h.logger.Info("eligibility checked", map[string]interface{}{
		"userId":       input.UserID,
		"jobId":        input.JobID,
		"canApply":     res.CanApply,
		"currentScore": res.CurrentScore,
		"fromCache":    res.FromCache,
	})

	return &Output{
		CanApply:         res.CanApply,
		Reason:           res.Reason,
		CurrentScore:     res.CurrentScore,
		RequiredScore:    res.RequiredScore,
		MissingItems:     res.MissingItems,
		MissingItemTexts: presentation.MissingItemTexts(res.MissingItems),
		FromCache:        res.FromCache,
	}, nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output, start time.Time) {
	metrics.ObserveJob(TaskType, time.Since(start).Seconds(), "")

	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	if _, err := cmd.Send(context.Background()); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, err error, start time.Time) {
	code := string(errors.ErrCodeInternal)
	if stdErr, ok := errors.AsStandardError(err); ok {
		code = string(stdErr.Code)
	}
	metrics.ObserveJob(TaskType, time.Since(start).Seconds(), code)
	h.errorHandler.HandleJobError(context.Background(), client, job, err)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
