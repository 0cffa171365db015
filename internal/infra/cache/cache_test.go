package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSetAndGet(t *testing.T) {
	c := New(time.Minute, time.Minute)

	c.Set("dashboard:dateRange=all", 42)

	v, ok := c.Get("dashboard:dateRange=all")
	assert.True(t, ok)
	assert.Equal(t, 42, v)
}

func TestGetUnknownKey(t *testing.T) {
	c := New(time.Minute, time.Minute)

	_, ok := c.Get("missing")

	assert.False(t, ok)
}

func TestExpiredEntryIsEvictedOnRead(t *testing.T) {
	c := New(time.Minute, time.Minute)

	c.SetWithTTL("short", "value", 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	_, ok := c.Get("short")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestSetRefreshesExpiry(t *testing.T) {
	c := New(time.Minute, time.Minute)

	c.SetWithTTL("key", "old", 10*time.Millisecond)
	c.SetWithTTL("key", "new", time.Minute)
	time.Sleep(30 * time.Millisecond)

	v, ok := c.Get("key")
	assert.True(t, ok)
	assert.Equal(t, "new", v)
}

func TestDeleteAndClear(t *testing.T) {
	c := New(time.Minute, time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)

	c.Delete("a")
	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())

	c.Clear()
	assert.Equal(t, 0, c.Len())
}

func TestBackgroundSweepRemovesUnreadEntries(t *testing.T) {
	c := New(time.Minute, 20*time.Millisecond)
	c.Start()
	defer c.Stop()

	c.SetWithTTL("stale", "value", 10*time.Millisecond)

	assert.Eventually(t, func() bool {
		return c.Len() == 0
	}, time.Second, 10*time.Millisecond)
}

func TestStopIsIdempotent(t *testing.T) {
	c := New(time.Minute, time.Minute)
	c.Start()

	c.Stop()
	c.Stop()
}

func TestConcurrentAccess(t *testing.T) {
	c := New(time.Minute, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", n%10)
			c.Set(key, n)
			c.Get(key)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 10, c.Len())
}
