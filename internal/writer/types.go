package writer

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TxBeginner starts a transaction. *pgxpool.Pool and *pgx.Conn satisfy it.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// WriterMetrics holds counters for a sink.
type WriterMetrics struct {
	Inserts int64 // Events committed
	Errors  int64 // Failed writes
}
