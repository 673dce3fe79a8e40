package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/escc-report-api/internal/server/metrics"
)

// storeCaller bounds every stored procedure round trip.
type storeCaller struct {
	timeout time.Duration
	metrics *metrics.Metrics
}

// call runs fn with a context that keeps the values of ctx but not its
// cancellation, so a client hanging up does not abort a call mid-flight.
// The timeout still applies.
func call[T any](ctx context.Context, c storeCaller, procedure string, fn func(context.Context) (T, error)) (T, error) {
	callCtx := context.WithoutCancel(ctx)
	if c.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(callCtx, c.timeout)
		defer cancel()
	}

	started := time.Now()
	v, err := fn(callCtx)
	c.metrics.ObserveStoreCall(procedure, started, err)

	return v, err
}
