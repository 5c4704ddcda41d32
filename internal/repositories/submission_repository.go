package repositories

import (
	"context"

	"formguard/internal/models"
)

// SubmissionRepository stores form submissions that passed the gate
type SubmissionRepository interface {
	Create(ctx context.Context, submission *models.FormSubmission) error
}
