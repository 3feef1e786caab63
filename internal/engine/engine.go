// Package engine runs score calculations against the user, score and
// collaborator stores. It keeps no mutable state between calls.
package engine

import (
	"context"
	stderrors "errors"
	"time"

	"jobseeker-scoring/internal/common/errors"
	"jobseeker-scoring/internal/common/logger"
	"jobseeker-scoring/internal/common/metrics"
	"jobseeker-scoring/internal/common/observability"
	"jobseeker-scoring/internal/models"
	"jobseeker-scoring/internal/presentation"
	"jobseeker-scoring/internal/scoring"
	"jobseeker-scoring/internal/store/collaborators"
	"jobseeker-scoring/internal/store/scores"
	"jobseeker-scoring/internal/store/users"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	OpCalculate = "calculate"
	OpUpdate    = "update"
	OpCanApply  = "can_apply"
)

type Engine struct {
	users  users.Store
	scores scores.Store
	collab collaborators.Source
	scorer *scoring.Scorer
	now    func() time.Time
	newID  func() string
	tracer trace.Tracer
	logger logger.Logger
}

type Option func(*Engine)

// WithClock sets the time source for both scoring and history timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(e *Engine) {
		e.tracer = t
	}
}

// WithIDGenerator overrides how history entry ids are made.
func WithIDGenerator(newID func() string) Option {
	return func(e *Engine) {
		e.newID = newID
	}
}

func New(u users.Store, s scores.Store, c collaborators.Source, log logger.Logger, opts ...Option) *Engine {
	e := &Engine{
		users:  u,
		scores: s,
		collab: c,
		now:    time.Now,
		newID:  uuid.NewString,
		tracer: observability.Tracer(),
		logger: log,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.collab == nil {
		e.collab = collaborators.Unavailable{}
	}
	e.scorer = scoring.NewScorer(scoring.WithClock(e.now))
	return e
}

// Calculate scores a user without persisting anything.
func (e *Engine) Calculate(ctx context.Context, userID string) (res *models.ScoreResult, err error) {
	ctx, span := e.startSpan(ctx, "engine.Calculate", userID)
	defer func() { endSpan(span, err) }()

	u, err := e.scorableUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	res = e.scorer.Score(u, e.related(ctx, userID))
	metrics.ObserveScore(OpCalculate, string(res.Tier), res.TotalScore)
	span.SetAttributes(attribute.Float64("score.total", res.TotalScore))
	return res, nil
}

// Update recalculates, persists the record and appends one history entry.
func (e *Engine) Update(ctx context.Context, userID string) (res *models.ScoreResult, err error) {
	ctx, span := e.startSpan(ctx, "engine.Update", userID)
	defer func() { endSpan(span, err) }()

	u, err := e.scorableUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	prev, err := e.scores.Get(ctx, userID)
	if err != nil {
		return nil, scoreStoreError(userID, "scores.get", err)
	}

	res = e.scorer.Score(u, e.related(ctx, userID))

	change := &models.ScoreChange{}
	if prev != nil {
		change.PreviousScore = prev.TotalScore
		change.PreviousTier = prev.Tier
		change.TierChanged = prev.Tier != res.Tier
	}
	change.Delta = scoring.Round1(res.TotalScore - change.PreviousScore)

	changes := []string{}
	if line := presentation.ChangeLine(change.Delta); line != "" {
		changes = append(changes, line)
	}

	now := e.now()
	res.LastCalculated = &now
	res.Change = change

	record := &models.ScoreRecord{
		UserID:          userID,
		TotalScore:      res.TotalScore,
		Breakdown:       res.Breakdown,
		Tier:            res.Tier,
		MissingItems:    res.MissingItems,
		Recommendations: res.Recommendations,
		LastCalculated:  &now,
	}
	entry := models.HistoryEntry{
		ID:           e.newID(),
		Score:        res.TotalScore,
		CalculatedAt: now,
		Changes:      changes,
	}

	if err := e.scores.Save(ctx, userID, record, entry, scoring.HistoryLimit); err != nil {
		return nil, scoreStoreError(userID, "scores.save", err)
	}

	metrics.ObserveScore(OpUpdate, string(res.Tier), res.TotalScore)
	span.SetAttributes(
		attribute.Float64("score.total", res.TotalScore),
		attribute.Float64("score.delta", change.Delta),
	)
	return res, nil
}

// CanApply decides whether the user may apply for jobs. It reuses a stored
// score when one exists and never writes. An unknown user is a denial, not an
// error.
func (e *Engine) CanApply(ctx context.Context, userID string) (res *models.EligibilityResult, err error) {
	ctx, span := e.startSpan(ctx, "engine.CanApply", userID)
	defer func() { endSpan(span, err) }()

	u, err := e.users.GetUser(ctx, userID)
	if err != nil {
		if stderrors.Is(err, users.ErrNotFound) {
			metrics.EligibilityDecisions.WithLabelValues("denied", "unknown_user").Inc()
			return &models.EligibilityResult{
				CanApply:      false,
				Reason:        presentation.UserNotFoundReason(),
				CurrentScore:  0,
				RequiredScore: scoring.RequiredScore,
			}, nil
		}
		return nil, errors.NewUserLookupFailedError(userID, err)
	}

	var (
		current   float64
		missing   []models.MissingItem
		fromCache bool
	)

	rec, err := e.scores.Get(ctx, userID)
	if err != nil {
		e.logger.Warn("score store read failed, computing fresh", map[string]interface{}{
			"userId": userID,
			"error":  err.Error(),
		})
		rec = nil
	}

	if rec.Cached() {
		current = rec.TotalScore
		missing = rec.MissingItems
		fromCache = true
	} else {
		fresh := e.scorer.Score(u, e.related(ctx, userID))
		current = fresh.TotalScore
		missing = fresh.MissingItems
	}

	res = &models.EligibilityResult{
		CanApply:      current >= scoring.RequiredScore,
		CurrentScore:  current,
		RequiredScore: scoring.RequiredScore,
		FromCache:     fromCache,
	}
	if !res.CanApply {
		res.Reason = presentation.DenialReason(current, scoring.RequiredScore)
		res.MissingItems = missing
	}

	source := "fresh"
	if fromCache {
		source = "cache"
	}
	outcome := "denied"
	if res.CanApply {
		outcome = "allowed"
	}
	metrics.EligibilityDecisions.WithLabelValues(outcome, source).Inc()
	span.SetAttributes(attribute.Bool("eligibility.can_apply", res.CanApply))

	return res, nil
}

func (e *Engine) scorableUser(ctx context.Context, userID string) (*models.UserRecord, error) {
	u, err := e.users.GetUser(ctx, userID)
	if err != nil {
		if stderrors.Is(err, users.ErrNotFound) {
			return nil, errors.NewUserNotFoundError(userID)
		}
		return nil, errors.NewUserLookupFailedError(userID, err)
	}
	if !u.Role.Scorable() {
		return nil, errors.NewRoleMismatchError(userID, string(u.Role))
	}
	return u, nil
}

// scoreStoreError reports deadline expiry as QUERY_TIMEOUT.
func scoreStoreError(userID, op string, err error) error {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return errors.NewQueryTimeoutError(op)
	}
	return errors.NewScoreStoreFailedError(userID, err)
}

// related reads collaborator counts. Unavailable sources contribute zero.
func (e *Engine) related(ctx context.Context, userID string) scoring.Related {
	var rel scoring.Related
	if summary, ok := e.collab.Assessments(ctx, userID); ok {
		rel.Assessments = summary
	}
	if n, ok := e.collab.Applications(ctx, userID); ok {
		rel.Applications = n
	}
	return rel
}

func (e *Engine) startSpan(ctx context.Context, name, userID string) (context.Context, trace.Span) {
	return e.tracer.Start(ctx, name, trace.WithAttributes(attribute.String("user.id", userID)))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
