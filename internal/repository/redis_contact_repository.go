package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/buildright/backend/internal/model"
	"github.com/redis/go-redis/v9"
)

const (
	redisSeqKey       = "contact:submissions:seq"
	redisIndexKey     = "contact:submissions"
	redisRecordPrefix = "contact:submission:"
)

// RedisContactRepository keeps each submission as a hash under
// contact:submission:<id> and appends the id to the contact:submissions list.
// IDs come from INCR on contact:submissions:seq, which Redis executes
// atomically, so concurrent creates never share one.
type RedisContactRepository struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedisClient connects to the Redis server at redisURL and pings it.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse Redis URL: %w", err)
	}
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to Redis: %w", err)
	}
	return client, nil
}

// NewRedisContactRepository creates a RedisContactRepository on client.
func NewRedisContactRepository(client *redis.Client) *RedisContactRepository {
	return &RedisContactRepository{client: client, now: time.Now}
}

var _ ContactRepository = (*RedisContactRepository)(nil)

func (r *RedisContactRepository) Create(ctx context.Context, msg *model.ContactSubmission) error {
	id, err := r.client.Incr(ctx, redisSeqKey).Result()
	if err != nil {
		return storageErr("redis", "create", err)
	}
	submittedAt := r.now().UTC()

	// A failed write leaves a gap in the sequence; the id is not reused.
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, redisRecordKey(id), map[string]any{
			"id":           id,
			"name":         msg.Name,
			"email":        msg.Email,
			"phone":        msg.Phone,
			"project_type": string(msg.ProjectType),
			"budget":       msg.Budget,
			"message":      msg.Message,
			"submitted_at": submittedAt.Format(time.RFC3339Nano),
		})
		pipe.RPush(ctx, redisIndexKey, id)
		return nil
	})
	if err != nil {
		return storageErr("redis", "create", err)
	}

	msg.ID = id
	msg.SubmittedAt = submittedAt
	return nil
}

func (r *RedisContactRepository) Ping(ctx context.Context) error {
	return storageErr("redis", "ping", r.client.Ping(ctx).Err())
}

func redisRecordKey(id int64) string {
	return redisRecordPrefix + strconv.FormatInt(id, 10)
}
