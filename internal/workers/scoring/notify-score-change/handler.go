// internal/workers/scoring/notify-score-change/handler.go
package notifyscorechange

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	"jobseeker-scoring/internal/common/errors"
	"jobseeker-scoring/internal/common/logger"
	"jobseeker-scoring/internal/common/metrics"
	"jobseeker-scoring/internal/common/validation"
	"jobseeker-scoring/internal/presentation"
	"jobseeker-scoring/internal/store/users"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "notify-score-change"

	channelEmail = "email"
	channelSMS   = "sms"
)

type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) (string, error)
}

type SMSSender interface {
	SendSMS(ctx context.Context, phone, message string) (string, error)
}

type Handler struct {
	config       *Config
	users        users.Store
	email        EmailSender
	sms          SMSSender
	validator    *validation.SchemaValidator
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

// NewHandler accepts nil senders; a nil sender disables its channel.
func NewHandler(config *Config, userStore users.Store, email EmailSender, sms SMSSender, validator *validation.SchemaValidator, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		users:        userStore,
		email:        email,
		sms:          sms,
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

func (h *Handler) emailEnabled() bool { return h.config.EmailEnabled && h.email != nil }

func (h *Handler) smsEnabled() bool { return h.config.SMSEnabled && h.sms != nil }

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.NewInvalidInputError("userId is required")
	}
	if input.CurrentTier == "" {
		return nil, errors.NewInvalidInputError("currentTier is required")
	}

	if input.PreviousTier == input.CurrentTier {
		return &Output{Status: StatusSkipped}, nil
	}
	if !h.emailEnabled() && !h.smsEnabled() {
		h.logger.Debug("no notification channel enabled", map[string]interface{}{
			"userId": input.UserID,
		})
		return &Output{Status: StatusDisabled}, nil
	}

	user, err := h.users.GetUser(ctx, input.UserID)
	if err != nil {
		if stderrors.Is(err, users.ErrNotFound) {
			return nil, errors.NewUserNotFoundError(input.UserID)
		}
		return nil, errors.NewUserLookupFailedError(input.UserID, err)
	}

	subject := presentation.TierChangeSubject(input.CurrentTier)
	body := presentation.TierChangeMessage(input.PreviousTier, input.CurrentTier, input.TotalScore)

	var channels []string

	if h.emailEnabled() && validation.ValidateEmail(user.Email) {
		msgID, err := h.email.SendEmail(ctx, user.Email, subject, body)
		if err != nil {
			metrics.NotificationsSent.WithLabelValues(channelEmail, "failed").Inc()
			return nil, errors.NewNotificationSendFailedError(channelEmail, err)
		}
		metrics.NotificationsSent.WithLabelValues(channelEmail, StatusSent).Inc()
		channels = append(channels, channelEmail)
		h.logger.Info("tier change email sent", map[string]interface{}{
			"userId":    input.UserID,
			"messageId": msgID,
		})
	}

	if h.smsEnabled() && validation.ValidatePhone(user.ContactNumber) {
		msgID, err := h.sms.SendSMS(ctx, user.ContactNumber, body)
		switch {
		case err != nil && len(channels) > 0:
			// Email already went out; a retry would send it twice.
			metrics.NotificationsSent.WithLabelValues(channelSMS, "failed").Inc()
			h.logger.Warn("tier change sms failed", map[string]interface{}{
				"userId": input.UserID,
				"error":  err.Error(),
			})
		case err != nil:
			metrics.NotificationsSent.WithLabelValues(channelSMS, "failed").Inc()
			return nil, errors.NewNotificationSendFailedError(channelSMS, err)
		default:
			metrics.NotificationsSent.WithLabelValues(channelSMS, StatusSent).Inc()
			channels = append(channels, channelSMS)
			h.logger.Info("tier change sms sent", map[string]interface{}{
				"userId":    input.UserID,
				"messageId": msgID,
			})
		}
	}

	if len(channels) == 0 {
		return &Output{Status: StatusSkipped}, nil
	}

	sentAt := time.Now().UTC()
	return &Output{
		NotificationID: uuid.NewString(),
		Status:         StatusSent,
		Channels:       channels,
		SentAt:         &sentAt,
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
