package watch

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRebuilderCoalescesRequests(t *testing.T) {
	var builds atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})

	r := NewRebuilder(func(_ context.Context, _ string) error {
		if builds.Add(1) == 1 {
			close(started)
			<-release
		}
		return nil
	})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.Run(ctx)

	r.Request("first")
	<-started
	for range 5 {
		r.Request("burst")
	}
	close(release)

	require.Eventually(t, func() bool { return builds.Load() == 2 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(2), builds.Load())
}

func TestRebuilderKeepsRunningAfterFailure(t *testing.T) {
	var builds atomic.Int32
	r := NewRebuilder(func(_ context.Context, _ string) error {
		builds.Add(1)
		return errors.New("boom")
	})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.Run(ctx)

	r.Request("a")
	require.Eventually(t, func() bool { return builds.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
	r.Request("b")
	require.Eventually(t, func() bool { return builds.Load() == 2 }, 2*time.Second, 10*time.Millisecond)
}

func TestRebuilderStopsOnCancel(t *testing.T) {
	r := NewRebuilder(func(context.Context, string) error { return nil })
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
