package repository

import (
	"context"
	"time"

	"github.com/buildright/backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgContactRepository is the PostgreSQL implementation of ContactRepository.
// IDs come from the BIGSERIAL sequence on contact_submissions.
type PgContactRepository struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// NewPgContactRepository creates a PgContactRepository backed by the given pool.
func NewPgContactRepository(pool *pgxpool.Pool) *PgContactRepository {
	return &PgContactRepository{pool: pool, now: time.Now}
}

// Ensure PgContactRepository implements ContactRepository at compile time.
var _ ContactRepository = (*PgContactRepository)(nil)

// Create inserts a contact_submissions row and populates msg.ID from the
// RETURNING clause. Empty optional fields are stored as NULL.
func (r *PgContactRepository) Create(ctx context.Context, msg *model.ContactSubmission) error {
	submittedAt := r.now().UTC()

	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO contact_submissions (name, email, phone, project_type, budget, message, submitted_at)
		 VALUES ($1, $2, NULLIF($3, ''), $4, NULLIF($5, ''), $6, $7)
		 RETURNING id`,
		msg.Name, msg.Email, msg.Phone, string(msg.ProjectType), msg.Budget, msg.Message, submittedAt,
	).Scan(&id)
	if err != nil {
		return storageErr("postgres", "create", err)
	}

	msg.ID = id
	msg.SubmittedAt = submittedAt
	return nil
}

func (r *PgContactRepository) Ping(ctx context.Context) error {
	return storageErr("postgres", "ping", r.pool.Ping(ctx))
}
