package sweeper

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestExpiredFilterShape(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	filter := ExpiredFilter(now)

	assert.Equal(t, true, filter["active"])
	assert.Equal(t, bson.M{"$lt": now}, filter["expires_at"])
}

func TestSweeperStartStop(t *testing.T) {
	var runs int64
	s := New("test", 5*time.Millisecond, func(ctx context.Context) (int64, error) {
		atomic.AddInt64(&runs, 1)
		return 0, nil
	})

	assert.False(t, s.Running())
	s.Start()
	assert.True(t, s.Running())

	time.Sleep(30 * time.Millisecond)
	s.Stop()
	assert.False(t, s.Running())

	assert.Greater(t, atomic.LoadInt64(&runs), int64(0))

	settled := atomic.LoadInt64(&runs)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, settled, atomic.LoadInt64(&runs))
}

func TestSweeperStartIsIdempotent(t *testing.T) {
	s := New("test", time.Hour, func(ctx context.Context) (int64, error) { return 0, nil })
	s.Start()
	s.Start()
	assert.True(t, s.Running())
	s.Stop()
	s.Stop()
	assert.False(t, s.Running())
}

func TestStandingSweepersAreIndependent(t *testing.T) {
	hourly := NewHourly()
	daily := NewDaily()

	hourly.Start()
	daily.Start()
	assert.True(t, hourly.Running())
	assert.True(t, daily.Running())

	hourly.Stop()
	assert.False(t, hourly.Running())
	assert.True(t, daily.Running())

	daily.Stop()
	assert.False(t, daily.Running())
}

func TestSweeperRestart(t *testing.T) {
	var runs int64
	s := New("test", 5*time.Millisecond, func(ctx context.Context) (int64, error) {
		atomic.AddInt64(&runs, 1)
		return 0, nil
	})

	s.Start()
	time.Sleep(15 * time.Millisecond)
	s.Stop()

	s.Start()
	assert.True(t, s.Running())
	time.Sleep(15 * time.Millisecond)
	s.Stop()

	assert.Greater(t, atomic.LoadInt64(&runs), int64(1))
}
