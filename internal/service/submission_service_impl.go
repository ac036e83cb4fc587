package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/stitch/backend/internal/model"
	"github.com/stitch/backend/internal/repository"
	"github.com/stitch/backend/pkg/formtoken"
)

// User-facing messages. Delivery and store failures share one generic string
// so backend detail never leaks to the caller.
const (
	msgMissingToken     = "Security check failed: missing token"
	msgInvalidToken     = "Security check failed: invalid token"
	msgValidationFailed = "Please correct the following errors"
	msgThrottled        = "Too many submissions. Please try again later."
	msgGenericFailure   = "An error occurred. Please try again later."
	msgDefaultSuccess   = "Thank you! We'll get back to you soon."
)

// submissionServiceImpl is the production implementation of SubmissionService.
type submissionServiceImpl struct {
	tokens    *formtoken.Verifier
	validator *Validator
	limiter   *RateLimiter
	router    *Router
	archive   repository.SubmissionRepository // nil disables archiving
}

// NewSubmissionService wires the pipeline stages together. archive may be nil
// when no database is configured.
func NewSubmissionService(
	tokens *formtoken.Verifier,
	validator *Validator,
	limiter *RateLimiter,
	router *Router,
	archive repository.SubmissionRepository,
) SubmissionService {
	return &submissionServiceImpl{
		tokens:    tokens,
		validator: validator,
		limiter:   limiter,
		router:    router,
		archive:   archive,
	}
}

// Process runs the stages in a fixed order: cheap local checks before any
// external I/O. Validation failures do not count against the quota; a
// delivery failure does, because the quota was consumed before delivery.
func (s *submissionServiceImpl) Process(ctx context.Context, sub *model.Submission) (model.Result, error) {
	// Stage 1: anti-forgery token.
	if err := s.tokens.Verify(sub.Token); err != nil {
		msg := msgInvalidToken
		if errors.Is(err, formtoken.ErrMissing) {
			msg = msgMissingToken
		}
		return model.Result{Success: false, Message: msg},
			model.WrapError(model.KindAuth, "token verification failed", err)
	}

	// Stage 2: field validation. The rate limiter is not consulted for
	// invalid submissions.
	if errs := s.validator.Validate(sub.Fields); len(errs) > 0 {
		return model.Result{Success: false, Message: msgValidationFailed, Errors: errs},
			model.NewError(model.KindValidation, "field validation failed")
	}

	// Stage 3: rate limit per email identity.
	decision, err := s.limiter.Check(ctx, sub.Email(), sub.RemoteIP)
	if err != nil {
		slog.Error("rate limit store failure", "error", err)
		return model.Result{Success: false, Message: msgGenericFailure},
			model.WrapError(model.KindInternal, "rate limit store failure", err)
	}
	if !decision.Allowed {
		return model.Result{Success: false, Message: msgThrottled},
			model.NewError(model.KindThrottled, "submission quota exceeded")
	}

	// Stage 4: delivery. The attempt already consumed quota.
	if err := s.router.Deliver(ctx, sub.Action, sub); err != nil {
		slog.Error("form delivery failed",
			"action", sub.Action,
			"kind", string(model.KindOf(err)),
			"error", err,
			"fields", sub.Fields,
		)
		return model.Result{Success: false, Message: msgGenericFailure}, err
	}

	if s.archive != nil {
		rec := &model.SubmissionRecord{
			Action:   sub.Action,
			Email:    sub.Email(),
			Fields:   sub.Fields,
			RemoteIP: sub.RemoteIP,
		}
		if err := s.archive.Save(ctx, rec); err != nil {
			// The submission was delivered; a failed archive write is an
			// operator problem, not a caller error.
			slog.Error("submission archive failed", "error", err)
		}
	}

	message := sub.SuccessMessage
	if message == "" {
		message = msgDefaultSuccess
	}
	return model.Result{Success: true, Message: message}, nil
}
