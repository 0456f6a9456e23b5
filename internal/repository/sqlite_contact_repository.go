package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/buildright/backend/internal/model"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// SqliteContactRepository stores submissions in a SQLite file. IDs come from
// the AUTOINCREMENT rowid, which SQLite never hands out twice.
type SqliteContactRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

// OpenSqlite opens (or creates) the SQLite database at path and applies the
// embedded migrations. Use ":memory:" for a throwaway database.
func OpenSqlite(path string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite3", path+"?_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// one writer at a time; also keeps ":memory:" on a single connection
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if err := MigrateSqlite(db.DB); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// NewSqliteContactRepository creates a SqliteContactRepository on db.
func NewSqliteContactRepository(db *sqlx.DB) *SqliteContactRepository {
	return &SqliteContactRepository{db: db, now: time.Now}
}

var _ ContactRepository = (*SqliteContactRepository)(nil)

func (r *SqliteContactRepository) Create(ctx context.Context, msg *model.ContactSubmission) error {
	row := *msg
	row.SubmittedAt = r.now().UTC()

	res, err := r.db.NamedExecContext(ctx,
		`INSERT INTO contact_submissions (name, email, phone, project_type, budget, message, submitted_at)
		 VALUES (:name, :email, :phone, :project_type, :budget, :message, :submitted_at)`,
		row,
	)
	if err != nil {
		return storageErr("sqlite", "create", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return storageErr("sqlite", "create", err)
	}

	msg.ID = id
	msg.SubmittedAt = row.SubmittedAt
	return nil
}

func (r *SqliteContactRepository) Ping(ctx context.Context) error {
	return storageErr("sqlite", "ping", r.db.PingContext(ctx))
}
