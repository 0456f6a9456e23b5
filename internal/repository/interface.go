package repository

import (
	"context"

	"github.com/buildright/backend/internal/model"
)

// DB reports whether the backing medium is reachable.
type DB interface {
	Ping(ctx context.Context) error
}

// ContactRepository owns the collection of contact submissions.
//
// Create assigns msg.ID and msg.SubmittedAt and appends the record. IDs are
// unique for the lifetime of the medium and are never reused; concurrent
// calls never receive the same ID. There is no update or
// delete: a stored submission is immutable.
type ContactRepository interface {
	DB
	Create(ctx context.Context, msg *model.ContactSubmission) error
}
