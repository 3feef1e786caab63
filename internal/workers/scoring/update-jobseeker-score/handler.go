// internal/workers/scoring/update-jobseeker-score/handler.go
package updatejobseekerscore

import (
	"context"
	"encoding/json"
	"time"

	"jobseeker-scoring/internal/common/errors"
	"jobseeker-scoring/internal/common/logger"
	"jobseeker-scoring/internal/common/metrics"
	"jobseeker-scoring/internal/common/validation"
	"jobseeker-scoring/internal/engine"
	"jobseeker-scoring/internal/models"
	"jobseeker-scoring/internal/presentation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "update-jobseeker-score"
)

type Updater interface {
	Update(ctx context.Context, userID string) (*models.ScoreResult, error)
	UpdateMany(ctx context.Context, userIDs []string, concurrency int) []engine.BatchResult
}

type Handler struct {
	config       *Config
	engine       Updater
	validator    *validation.SchemaValidator
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, updater Updater, validator *validation.SchemaValidator, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		engine:       updater,
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

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, errors.NewInvalidInputError("input cannot be nil")
	}
	if len(input.UserIDs) > 0 {
		return h.executeBatch(ctx, input.UserIDs)
	}
	if input.UserID == "" {
		return nil, errors.NewInvalidInputError("userId or userIds is required")
	}

	res, err := h.engine.Update(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	out := &Output{
		UserID:              res.UserID,
		TotalScore:          res.TotalScore,
		Breakdown:           &res.Breakdown,
		Tier:                res.Tier,
		MissingItems:        res.MissingItems,
		MissingItemTexts:    presentation.MissingItemTexts(res.MissingItems),
		Recommendations:     res.Recommendations,
		RecommendationTexts: presentation.RecommendationTexts(res.Recommendations),
		LastCalculated:      res.LastCalculated,
	}
	if res.Change != nil {
		out.PreviousTier = res.Change.PreviousTier
		out.TierChanged = res.Change.TierChanged
		out.Delta = res.Change.Delta
		out.ChangeSummary = presentation.ChangeLine(res.Change.Delta)
	}

	h.logger.Info("score updated", map[string]interface{}{
		"userId":      input.UserID,
		"totalScore":  res.TotalScore,
		"tier":        res.Tier,
		"delta":       out.Delta,
		"tierChanged": out.TierChanged,
	})
	return out, nil
}

// executeBatch never fails the job. Per-user failures are listed in the summary.
func (h *Handler) executeBatch(ctx context.Context, userIDs []string) (*Output, error) {
	results := h.engine.UpdateMany(ctx, userIDs, h.config.BatchConcurrency)

	summary := &BatchSummary{Total: len(results), Results: make([]BatchItem, 0, len(results))}
	for _, r := range results {
		item := BatchItem{UserID: r.UserID}
		if r.Err != nil {
			summary.Failed++
			item.ErrorCode = string(errors.ErrCodeInternal)
			if stdErr, ok := errors.AsStandardError(r.Err); ok {
				item.ErrorCode = string(stdErr.Code)
			}
		} else {
			summary.Succeeded++
			item.TotalScore = r.Result.TotalScore
			item.Tier = r.Result.Tier
		}
		summary.Results = append(summary.Results, item)
	}

	return &Output{Batch: summary}, nil
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
