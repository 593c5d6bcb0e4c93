package matching

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsyncMatcher_NoLatency(t *testing.T) {
	a := NewAsyncMatcher(nil)

	result, err := a.AnalyzeContext(context.Background(), "react", "React")
	require.NoError(t, err)
	assert.Equal(t, Analyze(nil, "react", "React"), result)
}

func TestAsyncMatcher_UsesInjectedWait(t *testing.T) {
	var waited []time.Duration
	a := NewAsyncMatcher(nil,
		WithLatency(1500*time.Millisecond),
		WithWaitFunc(func(_ context.Context, d time.Duration) error {
			waited = append(waited, d)
			return nil
		}),
	)

	_, err := a.AnalyzeContext(context.Background(), "", "React")
	require.NoError(t, err)
	assert.Equal(t, []time.Duration{1500 * time.Millisecond}, waited)
	assert.Equal(t, 1500*time.Millisecond, a.Latency())
}

func TestAsyncMatcher_CancelledBeforeStart(t *testing.T) {
	called := false
	a := NewAsyncMatcher(nil, WithWaitFunc(func(context.Context, time.Duration) error {
		called = true
		return nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.AnalyzeContext(ctx, "react", "React")
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestAsyncMatcher_CancelledWhileWaiting(t *testing.T) {
	a := NewAsyncMatcher(nil, WithLatency(time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := a.AnalyzeContext(ctx, "react", "React")
		done <- err
	}()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("analysis did not observe cancellation")
	}
}

func TestAsyncMatcher_ReportContext(t *testing.T) {
	a := NewAsyncMatcher(NewMatcher(nil))

	report, err := a.ReportContext(context.Background(), "react", "React and Docker")
	require.NoError(t, err)
	assert.Equal(t, []string{"React", "Docker"}, report.RequiredKeywords)
	assert.Equal(t, 50, report.ContentScore)
}

func TestAsyncMatcher_ConcurrentCallsShareCatalog(t *testing.T) {
	a := NewAsyncMatcher(nil, WithLatency(time.Millisecond))
	want := Analyze(nil, "react docker", "React Docker AWS")

	var wg sync.WaitGroup
	results := make([]Result, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r, err := a.AnalyzeContext(context.Background(), "react docker", "React Docker AWS")
			assert.NoError(t, err)
			results[i] = r
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, want, r)
	}
}

func TestWait(t *testing.T) {
	assert.NoError(t, Wait(context.Background(), 0))
	assert.NoError(t, Wait(context.Background(), -time.Second))
	assert.NoError(t, Wait(context.Background(), time.Millisecond))

	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, Wait(ctx, time.Hour), context.DeadlineExceeded)
}
