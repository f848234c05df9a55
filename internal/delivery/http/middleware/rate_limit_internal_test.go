package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func countEntries(m *memoryStore) int {
	n := 0
	m.entries.Range(func(_, _ interface{}) bool {
		n++
		return true
	})
	return n
}

func TestMemoryStoreHit(t *testing.T) {
	m := newMemoryStore(time.Minute)
	now := time.Now()

	count, resetAt := m.hit("a", time.Minute, now)
	assert.Equal(t, 1, count)
	assert.True(t, now.Add(time.Minute).Equal(resetAt))

	count, _ = m.hit("a", time.Minute, now.Add(time.Second))
	assert.Equal(t, 2, count)

	count, resetAt = m.hit("a", time.Minute, now.Add(2*time.Minute))
	assert.Equal(t, 1, count, "a new window starts from zero")
	assert.True(t, now.Add(3*time.Minute).Equal(resetAt))
}

func TestMemoryStoreSweepsExpiredEntries(t *testing.T) {
	m := newMemoryStore(time.Second)
	start := time.Now()

	for _, key := range []string{"a", "b", "c"} {
		m.hit(key, time.Second, start)
	}
	assert.Equal(t, 3, countEntries(m))

	// Before the sweep interval nothing is dropped.
	m.hit("d", time.Second, start.Add(30*time.Second))
	assert.Equal(t, 4, countEntries(m))

	// The next request after the interval drops every expired counter.
	m.hit("d", time.Second, start.Add(2*time.Minute))
	assert.Equal(t, 1, countEntries(m))
}
