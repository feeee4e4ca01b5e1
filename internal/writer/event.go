package writer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/rickgao/homesale-sim/internal/metrics"
	"github.com/rickgao/homesale-sim/internal/model"
)

// EventWriter persists each event as a JSONB row in its own transaction.
type EventWriter struct {
	db        TxBeginner
	insertSQL string
	logger    *slog.Logger
	metrics   *metrics.Metrics
	stats     WriterMetrics
}

// NewEventWriter creates a writer for table, which may be schema-qualified.
// logger and m may be nil.
func NewEventWriter(db TxBeginner, table string, logger *slog.Logger, m *metrics.Metrics) *EventWriter {
	if logger == nil {
		logger = slog.Default()
	}
	ident := pgx.Identifier(strings.Split(table, "."))
	return &EventWriter{
		db:        db,
		insertSQL: fmt.Sprintf("INSERT INTO %s (data) VALUES ($1::jsonb)", ident.Sanitize()),
		logger:    logger,
		metrics:   m,
	}
}

// Write inserts rec and commits.
func (w *EventWriter) Write(ctx context.Context, rec model.HomeRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		w.failed()
		return fmt.Errorf("encode event: %w", err)
	}

	start := time.Now()
	err = pgx.BeginFunc(ctx, w.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, w.insertSQL, string(data)); err != nil {
			return fmt.Errorf("insert event: %w", err)
		}
		return nil
	})
	if err != nil {
		w.failed()
		return fmt.Errorf("write event: %w", err)
	}
	elapsed := time.Since(start)

	w.stats.Inserts++
	if w.metrics != nil {
		w.metrics.EventsPersisted.Inc()
		w.metrics.WriteDuration.Observe(elapsed.Seconds())
	}
	w.logger.Debug("event committed", "bytes", len(data), "duration", elapsed)
	return nil
}

// Stats returns current metrics.
func (w *EventWriter) Stats() WriterMetrics {
	return w.stats
}

func (w *EventWriter) failed() {
	w.stats.Errors++
	if w.metrics != nil {
		w.metrics.WriteErrors.Inc()
	}
}
