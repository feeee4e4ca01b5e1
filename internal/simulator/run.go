package simulator

import (
	"context"
	"fmt"
	"iter"

	"github.com/rickgao/homesale-sim/internal/model"
)

// PeriodSource produces one period of events per call.
type PeriodSource interface {
	RunPeriod(ctx context.Context) iter.Seq2[model.HomeRecord, error]
}

// Sink consumes emitted events one at a time.
type Sink interface {
	Write(ctx context.Context, rec model.HomeRecord) error
}

// Run drains periods from src into sink. periods <= 0 runs until ctx is
// cancelled or a write fails. Nothing is retried.
func Run(ctx context.Context, src PeriodSource, sink Sink, periods int) error {
	for n := 1; periods <= 0 || n <= periods; n++ {
		for rec, err := range src.RunPeriod(ctx) {
			if err != nil {
				return fmt.Errorf("period %d: %w", n, err)
			}
			if err := sink.Write(ctx, rec); err != nil {
				return fmt.Errorf("period %d: %w", n, err)
			}
		}
	}
	return nil
}
