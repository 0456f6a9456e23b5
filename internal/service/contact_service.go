package service

import (
	"context"

	"github.com/buildright/backend/internal/model"
)

// ContactService defines the intake pipeline for contact form submissions.
type ContactService interface {
	// Submit validates raw and stores it. It returns a *ValidationError when
	// the payload is rejected (the store is not touched), or the store's
	// error unchanged when persisting fails.
	Submit(ctx context.Context, raw map[string]any) (*model.ContactSubmission, error)
}
