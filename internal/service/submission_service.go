package service

import (
	"context"

	"github.com/stitch/backend/internal/model"
)

// SubmissionService defines the business logic for processing a form post.
type SubmissionService interface {
	// Process runs a submission through the whole pipeline (anti-forgery
	// token, validation, rate limit, delivery) and reports the outcome.
	// The returned Result is safe to show the caller; failure detail stays
	// in the error, which the handler maps to an HTTP status by kind.
	Process(ctx context.Context, sub *model.Submission) (model.Result, error)
}
