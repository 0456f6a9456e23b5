package repository

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedisRepo(t *testing.T) (*RedisContactRepository, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client, err := NewRedisClient(context.Background(), "redis://"+mr.Addr()+"/0")
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisContactRepository(client), mr
}

func TestRedisContactRepository_Create(t *testing.T) {
	repo, mr := newTestRedisRepo(t)
	fixed := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return fixed }

	msg := newSubmission()
	msg.Budget = "over-1m"
	if err := repo.Create(context.Background(), msg); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if msg.ID != 1 {
		t.Errorf("expected first ID=1, got %d", msg.ID)
	}
	if !msg.SubmittedAt.Equal(fixed) {
		t.Errorf("expected SubmittedAt=%v, got %v", fixed, msg.SubmittedAt)
	}

	key := redisRecordKey(msg.ID)
	if got := mr.HGet(key, "email"); got != "jane@example.com" {
		t.Errorf("expected stored email, got %q", got)
	}
	if got := mr.HGet(key, "project_type"); got != "residential" {
		t.Errorf("expected stored project_type, got %q", got)
	}
	if got := mr.HGet(key, "budget"); got != "over-1m" {
		t.Errorf("expected stored budget, got %q", got)
	}
	if got := mr.HGet(key, "submitted_at"); got != fixed.Format(time.RFC3339Nano) {
		t.Errorf("expected stored submitted_at, got %q", got)
	}

	index, err := mr.List(redisIndexKey)
	if err != nil {
		t.Fatalf("read index: %v", err)
	}
	if len(index) != 1 || index[0] != "1" {
		t.Errorf("expected index [1], got %v", index)
	}
}

func TestRedisContactRepository_ConcurrentIDsUnique(t *testing.T) {
	repo, mr := newTestRedisRepo(t)
	const n = 50

	var mu sync.Mutex
	seen := make(map[int64]bool, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			msg := newSubmission()
			if err := repo.Create(context.Background(), msg); err != nil {
				t.Errorf("Create failed: %v", err)
				return
			}
			mu.Lock()
			defer mu.Unlock()
			if seen[msg.ID] {
				t.Errorf("duplicate ID %d", msg.ID)
			}
			seen[msg.ID] = true
		}()
	}
	wg.Wait()

	if len(seen) != n {
		t.Errorf("expected %d unique IDs, got %d", n, len(seen))
	}
	seq, err := mr.Get(redisSeqKey)
	if err != nil {
		t.Fatalf("read seq: %v", err)
	}
	if seq != strconv.Itoa(n) {
		t.Errorf("expected seq=%d, got %s", n, seq)
	}
}

func TestRedisContactRepository_ServerDown(t *testing.T) {
	repo, mr := newTestRedisRepo(t)
	mr.Close()

	msg := newSubmission()
	err := repo.Create(context.Background(), msg)

	var se *StorageError
	if !errors.As(err, &se) {
		t.Fatalf("expected *StorageError, got %v", err)
	}
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Errorf("expected ErrStorageUnavailable, got %v", err)
	}
	if msg.ID != 0 {
		t.Errorf("failed create must not assign an ID, got %d", msg.ID)
	}
}

func TestRedisContactRepository_ClosedClient(t *testing.T) {
	repo, _ := newTestRedisRepo(t)
	_ = repo.client.Close()

	err := repo.Ping(context.Background())
	if !errors.Is(err, redis.ErrClosed) {
		t.Errorf("expected redis.ErrClosed, got %v", err)
	}
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Errorf("expected ErrStorageUnavailable, got %v", err)
	}
}

func TestNewRedisClient_BadURL(t *testing.T) {
	if _, err := NewRedisClient(context.Background(), "not a url"); err == nil {
		t.Fatal("expected parse error")
	}
}
