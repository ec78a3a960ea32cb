package monitoring

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

const HEALTHCHECK_INTERVAL = 15 * time.Second

// HealthChecker is implemented by analysis backends that live behind a network hop.
type HealthChecker interface {
	HealthCheck(ctx context.Context) bool
}

// CheckAnalyzer probes backend once. Backends without a health endpoint run in-process
// and are reported healthy.
func CheckAnalyzer(ctx context.Context, backend any) bool {
	checker, ok := backend.(HealthChecker)
	if !ok {
		return true
	}
	healthy := checker.HealthCheck(ctx)
	if !healthy {
		slog.Warn("[HealthCheck] Analyzer is unhealthy")
	}
	return healthy
}

// MonitorAnalyzerHealth re-probes backend every interval until ctx is done,
// storing the latest result in healthy. onChange, when set, runs after the first
// probe and whenever the result flips.
func MonitorAnalyzerHealth(ctx context.Context, backend any, interval time.Duration, healthy *atomic.Bool, onChange func(healthy bool)) {
	if interval <= 0 {
		interval = HEALTHCHECK_INTERVAL
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	record := func(first bool) {
		now := CheckAnalyzer(ctx, backend)
		prev := healthy.Swap(now)
		if onChange != nil && (first || prev != now) {
			onChange(now)
		}
	}

	record(true)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			record(false)
		}
	}
}
