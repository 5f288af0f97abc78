package server

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultStoreEvictsOldest(t *testing.T) {
	rs := newResultStore(3, time.Hour)
	for i := 0; i < 5; i++ {
		rs.put(ParseResponse{ID: fmt.Sprint(i)})
	}
	assert.Equal(t, 3, rs.size())

	_, ok := rs.get("0")
	assert.False(t, ok)
	_, ok = rs.get("1")
	assert.False(t, ok)
	got, ok := rs.get("4")
	require.True(t, ok)
	assert.Equal(t, "4", got.ID)
}

func TestResultStoreExpires(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rs := newResultStore(10, time.Minute)
	rs.now = func() time.Time { return now }

	rs.put(ParseResponse{ID: "a"})
	now = now.Add(30 * time.Second)
	rs.put(ParseResponse{ID: "b"})

	_, ok := rs.get("a")
	assert.True(t, ok)

	now = now.Add(45 * time.Second)
	_, ok = rs.get("a")
	assert.False(t, ok, "a is 75s old")
	_, ok = rs.get("b")
	assert.True(t, ok)

	// storing prunes expired entries from the front
	now = now.Add(time.Minute)
	rs.put(ParseResponse{ID: "c"})
	assert.Equal(t, 1, rs.size())
}

func TestResultStoreDefaults(t *testing.T) {
	rs := newResultStore(0, 0)
	assert.Equal(t, defaultMaxResults, rs.max)
	assert.Equal(t, defaultResultTTL, rs.ttl)
}
