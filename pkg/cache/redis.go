package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/noah-isme/attendance-api/pkg/config"
)

// NewRedis returns a configured Redis client after verifying connectivity.
func NewRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return client, nil
}

// SubjectSummaryKey is the cache key for one subject's summary.
func SubjectSummaryKey(subjectID int64) string {
	return fmt.Sprintf("attendance:summary:subject:%d", subjectID)
}

// StudentSummaryKey is the cache key for one student's per-subject summary.
func StudentSummaryKey(studentID int64) string {
	return fmt.Sprintf("attendance:summary:student:%d", studentID)
}

// StudentSummaryPattern matches every cached student summary.
const StudentSummaryPattern = "attendance:summary:student:*"

// SummaryPattern matches every cached summary.
const SummaryPattern = "attendance:summary:*"
