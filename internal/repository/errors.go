package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned when a requested record does not exist in the store.
var ErrNotFound = errors.New("not found")

// ErrStorageUnavailable matches a StorageError whose backing medium could not
// be reached (connection refused, closed pool, deadline exceeded).
var ErrStorageUnavailable = errors.New("storage unavailable")

// StorageError wraps a failure of the backing medium. It is fatal to the
// request that caused it and is never retried by the store.
type StorageError struct {
	Backend     string
	Op          string
	Err         error
	Unavailable bool
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s store: %s: %v", e.Backend, e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool {
	return target == ErrStorageUnavailable && e.Unavailable
}

func storageErr(backend, op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Backend: backend, Op: op, Err: err, Unavailable: isUnavailable(err)}
}

// isUnavailable reports whether err means the medium itself is unreachable,
// as opposed to a rejected statement.
func isUnavailable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, redis.ErrClosed) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// SQLSTATE class 08: connection exception
		return strings.HasPrefix(pgErr.Code, "08")
	}
	return strings.Contains(err.Error(), "closed pool")
}
