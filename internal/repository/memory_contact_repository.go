package repository

import (
	"context"
	"sync"
	"time"

	"github.com/buildright/backend/internal/model"
)

// MemoryContactRepository keeps submissions in process memory. IDs come from
// a counter guarded by the same mutex as the slice, so they are strictly
// increasing. Everything is lost on restart.
type MemoryContactRepository struct {
	mu    sync.Mutex
	seq   int64
	items []model.ContactSubmission
	now   func() time.Time
}

// NewMemoryContactRepository creates an empty in-memory store.
func NewMemoryContactRepository() *MemoryContactRepository {
	return &MemoryContactRepository{now: time.Now}
}

var _ ContactRepository = (*MemoryContactRepository)(nil)

func (r *MemoryContactRepository) Create(ctx context.Context, msg *model.ContactSubmission) error {
	if err := ctx.Err(); err != nil {
		return storageErr("memory", "create", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	msg.ID = r.seq
	msg.SubmittedAt = r.now().UTC()
	r.items = append(r.items, *msg)
	return nil
}

func (r *MemoryContactRepository) Ping(_ context.Context) error { return nil }
