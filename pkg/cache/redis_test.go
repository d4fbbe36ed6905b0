package cache

import (
	"context"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/attendance-api/pkg/config"
)

func TestSummaryKeysMatchPatterns(t *testing.T) {
	subject := SubjectSummaryKey(7)
	student := StudentSummaryKey(3)

	assert.Equal(t, "attendance:summary:subject:7", subject)
	for _, key := range []string{subject, student} {
		ok, err := path.Match(SummaryPattern, key)
		require.NoError(t, err)
		assert.True(t, ok, key)
	}
	ok, _ := path.Match(StudentSummaryPattern, student)
	assert.True(t, ok)
	ok, _ = path.Match(StudentSummaryPattern, subject)
	assert.False(t, ok)
}

func TestNewRedisUnreachable(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewRedis(ctx, config.RedisConfig{Host: "127.0.0.1", Port: 1})
	assert.Error(t, err)
}
