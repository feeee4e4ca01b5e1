package simulator

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"math"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/rickgao/homesale-sim/internal/metrics"
	"github.com/rickgao/homesale-sim/internal/model"
)

// DefaultNoiseStdDev is the standard deviation of the per-record price noise.
const DefaultNoiseStdDev = 0.05

// MaxDaysPerPeriod is the longest period whose length fits in a time.Duration.
const MaxDaysPerPeriod = int(math.MaxInt64 / int64(24*time.Hour))

var (
	// ErrNoRecords is returned when there is nothing to simulate.
	ErrNoRecords = errors.New("no home records to simulate")

	// ErrInvalidDaysPerPeriod is returned for a period length outside [1, MaxDaysPerPeriod].
	ErrInvalidDaysPerPeriod = errors.New("days per period out of range")

	// ErrInvalidNoise is returned for a negative noise standard deviation.
	ErrInvalidNoise = errors.New("noise standard deviation must be >= 0")
)

// Multiplier rings. Drift cycles through market distortions, no drift keeps
// prices at their historical level.
var (
	driftMultipliers = [...]float64{2.0, 4.0, 1.0}
	flatMultipliers  = [...]float64{1.0}
)

// Config holds generator settings.
type Config struct {
	DaysPerPeriod int     // Simulated days per full pass over the records
	DriftEnabled  bool    // Rotate the price multiplier every period
	NoiseStdDev   float64 // Per-record price noise; 0 disables it
}

// Generator produces one period of events per RunPeriod call.
type Generator struct {
	cfg     Config
	records []model.HomeRecord

	// Ring of multipliers; head is the next period's value.
	multipliers []float64
	head        int

	interval time.Duration
	period   int64

	rng   *rand.Rand
	noise distuv.Normal
	now   func() time.Time
	sleep func(context.Context, time.Duration) error

	logger  *slog.Logger
	metrics *metrics.Metrics
}

// Option configures a Generator.
type Option func(*Generator)

// WithRand sets the random source used for shuffling and noise.
func WithRand(src rand.Source) Option {
	return func(g *Generator) {
		g.rng = rand.New(src)
		g.noise.Src = src
	}
}

// WithClock sets the clock used for sale_date.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// WithSleeper replaces the pacing sleep.
func WithSleeper(sleep func(context.Context, time.Duration) error) Option {
	return func(g *Generator) {
		g.sleep = sleep
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// WithMetrics enables metric reporting.
func WithMetrics(m *metrics.Metrics) Option {
	return func(g *Generator) {
		g.metrics = m
	}
}

// New creates a Generator over a private copy of records.
func New(cfg Config, records []model.HomeRecord, opts ...Option) (*Generator, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	if cfg.DaysPerPeriod < 1 || cfg.DaysPerPeriod > MaxDaysPerPeriod {
		return nil, fmt.Errorf("%w: must be between 1 and %d, got %d", ErrInvalidDaysPerPeriod, MaxDaysPerPeriod, cfg.DaysPerPeriod)
	}
	if cfg.NoiseStdDev < 0 {
		return nil, fmt.Errorf("%w, got %v", ErrInvalidNoise, cfg.NoiseStdDev)
	}
	for i, r := range records {
		if _, err := r.Price(); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}

	src := rand.NewPCG(rand.Uint64(), rand.Uint64())
	g := &Generator{
		cfg:      cfg,
		records:  model.CloneAll(records),
		interval: time.Duration(cfg.DaysPerPeriod) * 24 * time.Hour / time.Duration(len(records)),
		rng:      rand.New(src),
		noise:    distuv.Normal{Mu: 0, Sigma: cfg.NoiseStdDev, Src: src},
		now:      time.Now,
		sleep:    sleepContext,
		logger:   slog.Default(),
	}
	if cfg.DriftEnabled {
		g.multipliers = driftMultipliers[:]
	} else {
		g.multipliers = flatMultipliers[:]
	}

	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = slog.Default()
	}

	if cfg.DriftEnabled {
		g.logger.Info("drift enabled", "multipliers", g.multipliers)
	}
	g.logger.Debug("generator ready",
		"records", len(g.records),
		"interval", g.interval,
		"seconds_per_record", g.interval.Seconds(),
	)

	return g, nil
}

// Interval returns the pause after each emitted record.
func (g *Generator) Interval() time.Duration {
	return g.interval
}

// Len returns the number of records emitted per period.
func (g *Generator) Len() int {
	return len(g.records)
}

// Multiplier returns the multiplier the next period will use.
func (g *Generator) Multiplier() float64 {
	return g.multipliers[g.head]
}

// Period returns the number of periods started so far.
func (g *Generator) Period() int64 {
	return g.period
}

// RunPeriod returns the events of one period. The multiplier is taken and the
// ring advanced when iteration starts. The sequence yields a non-nil error
// and stops if ctx is cancelled while pacing.
func (g *Generator) RunPeriod(ctx context.Context) iter.Seq2[model.HomeRecord, error] {
	return func(yield func(model.HomeRecord, error) bool) {
		if err := ctx.Err(); err != nil {
			yield(nil, err)
			return
		}

		current := g.advance()
		period := g.period

		g.logger.Info("period started",
			"period", period,
			"economic_conditions", current,
			"records", len(g.records),
			"interval", g.interval,
		)

		g.logger.Debug("start shuffle")
		shuffled := model.CloneAll(g.records)
		g.rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		g.logger.Debug("end shuffle")

		for _, rec := range shuffled {
			price, _ := rec.Price() // checked in New

			rec[model.FieldEconomicConditions] = current
			rec[model.FieldPrice] = price * (current + g.noise.Rand())
			rec[model.FieldSaleDate] = g.now().Format(time.DateOnly)

			if g.metrics != nil {
				g.metrics.EventsEmitted.Inc()
			}
			g.logger.Debug("emit event", "period", period, "record", rec)

			if !yield(rec, nil) {
				return
			}

			if err := g.sleep(ctx, g.interval); err != nil {
				yield(nil, err)
				return
			}
		}
	}
}

// advance returns the current multiplier and rotates the ring when drift is
// enabled.
func (g *Generator) advance() float64 {
	current := g.multipliers[g.head]
	if g.cfg.DriftEnabled {
		g.head = (g.head + 1) % len(g.multipliers)
	}
	g.period++

	if g.metrics != nil {
		g.metrics.Periods.Inc()
		g.metrics.EconomicConditions.Set(current)
	}
	return current
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
