package simulator

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/rickgao/homesale-sim/internal/model"
)

type recordingSink struct {
	events []model.HomeRecord
	failAt int // 1-based write that fails, 0 = never
	err    error
}

func (s *recordingSink) Write(_ context.Context, rec model.HomeRecord) error {
	if s.failAt > 0 && len(s.events)+1 == s.failAt {
		return s.err
	}
	s.events = append(s.events, rec)
	return nil
}

func TestRun_DrainsPeriods(t *testing.T) {
	g, err := New(Config{DaysPerPeriod: 1, DriftEnabled: true}, makeRecords(4),
		WithRand(rand.NewPCG(3, 4)), WithSleeper(noSleep))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	sink := &recordingSink{}

	if err := Run(context.Background(), g, sink, 3); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(sink.events) != 12 {
		t.Fatalf("events = %d, want 12", len(sink.events))
	}
	want := []float64{2.0, 4.0, 1.0}
	for i, ev := range sink.events {
		if ev["economic_conditions"] != want[i/4] {
			t.Errorf("events[%d].economic_conditions = %v, want %v", i, ev["economic_conditions"], want[i/4])
		}
	}
}

func TestRun_SinkErrorIsFatal(t *testing.T) {
	g, err := New(Config{DaysPerPeriod: 1}, makeRecords(4),
		WithRand(rand.NewPCG(3, 4)), WithSleeper(noSleep))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	writeErr := errors.New("insert rejected")
	sink := &recordingSink{failAt: 6, err: writeErr}

	err = Run(context.Background(), g, sink, 0)
	if !errors.Is(err, writeErr) {
		t.Fatalf("Run() error = %v, want %v", err, writeErr)
	}
	if len(sink.events) != 5 {
		t.Errorf("events before failure = %d, want 5", len(sink.events))
	}
	if g.Period() != 2 {
		t.Errorf("Period() = %d, want 2", g.Period())
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g, err := New(Config{DaysPerPeriod: 1}, makeRecords(4), WithSleeper(noSleep))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	sink := &recordingSink{}

	err = Run(ctx, g, sink, 0)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
	if len(sink.events) != 0 {
		t.Errorf("events = %d, want 0", len(sink.events))
	}
}
