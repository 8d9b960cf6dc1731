package db

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client

const (
	PredictQueueKey = "stancewatch:queue:predict"
	DeadLetterKey   = "stancewatch:queue:failed"
)

var ErrQueueEmpty = errors.New("queue empty")

func ConnectRedis(ctx context.Context, redisURL string) error {
	if redisURL == "" {
		slog.Warn("REDIS_URL environment variable is not set")
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		opt = &redis.Options{Addr: redisURL}
	}

	Redis = redis.NewClient(opt)

	_, err = Redis.Ping(ctx).Result()
	return err
}

func CloseRedis() {
	if Redis != nil {
		Redis.Close()
	}
}

func PushToQueue(ctx context.Context, queueKey string, data string) error {
	return Redis.LPush(ctx, queueKey, data).Err()
}

// PopFromQueue blocks for up to timeout and returns ErrQueueEmpty when nothing
// arrived.
func PopFromQueue(ctx context.Context, queueKey string, timeout time.Duration) (string, error) {
	result, err := Redis.BRPop(ctx, timeout, queueKey).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrQueueEmpty
	}
	if err != nil {
		return "", err
	}
	return result[1], nil
}

func GetQueueLength(ctx context.Context, queueKey string) (int64, error) {
	return Redis.LLen(ctx, queueKey).Result()
}
