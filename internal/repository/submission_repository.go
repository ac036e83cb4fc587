package repository

import (
	"context"

	"github.com/stitch/backend/internal/model"
)

// SubmissionRepository defines the persistence interface for the submission
// archive. It is defined here (in repository) to avoid an import cycle with
// service.
type SubmissionRepository interface {
	Save(ctx context.Context, rec *model.SubmissionRecord) error
}
