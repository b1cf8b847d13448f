package core

import (
	"context"
	"fmt"
	"os"
	"time"
)

// MetricsRecorder receives one observation per service operation.
type MetricsRecorder interface {
	Observe(ctx context.Context, operation string, success bool, duration time.Duration)
}

// OpenMetricsRecorder selects a recorder using environment variables.
//
//	ROSTERCORE_METRICS: expvar|prometheus|none (default expvar)
func OpenMetricsRecorder() (MetricsRecorder, error) {
	driver := os.Getenv("ROSTERCORE_METRICS")
	if driver == "" {
		driver = "expvar"
	}
	switch driver {
	case "none":
		return nil, nil
	case "expvar":
		return NewExpvarMetricsRecorder(""), nil
	case "prometheus":
		return NewPrometheusMetricsRecorder(nil)
	default:
		return nil, fmt.Errorf("unknown metrics driver %s", driver)
	}
}
