package writer

import (
	"context"

	"github.com/rickgao/homesale-sim/internal/model"
)

// Discard counts events and drops them.
type Discard struct {
	stats WriterMetrics
}

// Write drops rec.
func (d *Discard) Write(_ context.Context, _ model.HomeRecord) error {
	d.stats.Inserts++
	return nil
}

// Stats returns current metrics.
func (d *Discard) Stats() WriterMetrics {
	return d.stats
}
