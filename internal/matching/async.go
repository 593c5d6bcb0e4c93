package matching

import (
	"context"
	"time"
)

// WaitFunc blocks for d or until ctx is done, returning ctx.Err() in the latter case.
type WaitFunc func(ctx context.Context, d time.Duration) error

// AsyncMatcher runs analyses behind an artificial latency, emulating a
// remote scoring service. The latency never affects the result.
type AsyncMatcher struct {
	matcher *Matcher
	latency time.Duration
	wait    WaitFunc
}

// AsyncOption configures an AsyncMatcher.
type AsyncOption func(*AsyncMatcher)

// WithLatency sets the simulated latency. Zero or negative disables waiting.
func WithLatency(d time.Duration) AsyncOption {
	return func(a *AsyncMatcher) {
		a.latency = d
	}
}

// WithWaitFunc replaces the wait implementation, mainly for tests.
func WithWaitFunc(fn WaitFunc) AsyncOption {
	return func(a *AsyncMatcher) {
		if fn != nil {
			a.wait = fn
		}
	}
}

// NewAsyncMatcher wraps m. A nil m uses the default catalog.
func NewAsyncMatcher(m *Matcher, opts ...AsyncOption) *AsyncMatcher {
	if m == nil {
		m = NewMatcher(nil)
	}
	a := &AsyncMatcher{
		matcher: m,
		wait:    Wait,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Matcher returns the wrapped synchronous matcher.
func (a *AsyncMatcher) Matcher() *Matcher {
	return a.matcher
}

// Latency returns the configured simulated latency.
func (a *AsyncMatcher) Latency() time.Duration {
	return a.latency
}

// AnalyzeContext waits for the simulated latency, then analyzes. The only
// possible error is the context's, when the caller abandons the call.
func (a *AsyncMatcher) AnalyzeContext(ctx context.Context, resumeText, jobDescriptionText string) (Result, error) {
	report, err := a.ReportContext(ctx, resumeText, jobDescriptionText)
	if err != nil {
		return Result{}, err
	}
	return report.Result, nil
}

// ReportContext is AnalyzeContext returning the full Report.
func (a *AsyncMatcher) ReportContext(ctx context.Context, resumeText, jobDescriptionText string) (Report, error) {
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}
	if err := a.wait(ctx, a.latency); err != nil {
		return Report{}, err
	}
	return a.matcher.Report(resumeText, jobDescriptionText), nil
}

// Wait blocks for d or until ctx is done.
func Wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
