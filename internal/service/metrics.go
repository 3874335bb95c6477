package service

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/freeeve/gridclash/pkg/battle"
)

const instrumentationName = "gridclash"

type roundMetrics struct {
	resolved   metric.Int64Counter
	rejected   metric.Int64Counter
	collisions metric.Int64Counter
}

// newRoundMetrics registers counters on the global OTel provider
// (a no-op provider unless the process installs one).
func newRoundMetrics() (*roundMetrics, error) {
	m := otel.Meter(instrumentationName)
	var rm roundMetrics
	var err error

	rm.resolved, err = m.Int64Counter(
		"rounds.resolved",
		metric.WithDescription("Rounds resolved, by round and winner"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating rounds counter: %w", err)
	}

	rm.rejected, err = m.Int64Counter(
		"submissions.rejected",
		metric.WithDescription("Submissions rejected, by error kind"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating rejected counter: %w", err)
	}

	rm.collisions, err = m.Int64Counter(
		"grid.collisions",
		metric.WithDescription("Grid cells written twice while composing a map"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating collisions counter: %w", err)
	}
	return &rm, nil
}

func (m *roundMetrics) roundResolved(ctx context.Context, round int, winner battle.Winner) {
	m.resolved.Add(ctx, 1, metric.WithAttributes(
		attribute.Int("round", round),
		attribute.String("winner", string(winner)),
	))
}

func (m *roundMetrics) submissionRejected(ctx context.Context, kind battle.ErrorKind) {
	m.rejected.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind.String())))
}

func (m *roundMetrics) gridCollisions(ctx context.Context, n int) {
	if n > 0 {
		m.collisions.Add(ctx, int64(n))
	}
}
