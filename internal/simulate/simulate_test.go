package simulate_test

import (
	"testing"

	"github.com/daniela-hl/queue-sim/internal/queueing"
	"github.com/daniela-hl/queue-sim/internal/simulate"
)

func TestRun_Accounting(t *testing.T) {
	res, err := simulate.Run(simulate.Config{
		Servers:     2,
		Capacity:    3,
		ArrivalRate: 45,
		ServiceRate: 25,
		Arrivals:    10000,
		Seed:        1,
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if res.Served+res.Blocked != res.Arrivals {
		t.Errorf("served %d + blocked %d != arrivals %d", res.Served, res.Blocked, res.Arrivals)
	}
	if res.BlockProb < 0 || res.BlockProb > 1 {
		t.Errorf("BlockProb = %v, want within [0, 1]", res.BlockProb)
	}
	if res.AvgWait < 0 {
		t.Errorf("AvgWait = %v, want >= 0", res.AvgWait)
	}
	if res.Duration <= 0 {
		t.Errorf("Duration = %v, want > 0", res.Duration)
	}
	if res.Waits.TotalCount() != int64(res.Served) {
		t.Errorf("histogram count = %d, want served = %d", res.Waits.TotalCount(), res.Served)
	}
}

func TestRun_Reproducible(t *testing.T) {
	cfg := simulate.Config{
		Servers: 3, Capacity: -1, ArrivalRate: 20, ServiceRate: 10,
		Arrivals: 5000, Seed: 42,
	}
	a, err := simulate.Run(cfg)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	b, err := simulate.Run(cfg)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if a.AvgWait != b.AvgWait || a.Blocked != b.Blocked || a.Duration != b.Duration {
		t.Errorf("same seed produced different runs: %+v vs %+v", a, b)
	}
}

// At moderate load and a large sample the empirical wait should land near
// the M/M/1 closed form. Tolerance is deliberately loose — this is a
// sanity check, not a convergence proof.
func TestRun_MatchesTheoryMM1(t *testing.T) {
	lambda, mu := 5.0, 10.0
	theory, err := queueing.EvaluateUnbounded(queueing.UnboundedParams{
		Servers: 1, ArrivalRate: lambda, ServiceRate: mu,
	})
	if err != nil {
		t.Fatalf("EvaluateUnbounded returned error: %v", err)
	}

	res, err := simulate.Run(simulate.Config{
		Servers: 1, Capacity: -1, ArrivalRate: lambda, ServiceRate: mu,
		Arrivals: 200000, Seed: 7,
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	errs := res.Compare(theory)
	if errs[queueing.MetricTi] > 0.15 {
		t.Errorf("Ti relative error = %v (empirical %v vs theory %v), want < 0.15",
			errs[queueing.MetricTi], res.AvgWait, theory[queueing.MetricTi])
	}
	if errs[queueing.MetricIi] > 0.15 {
		t.Errorf("Ii relative error = %v (empirical %v vs theory %v), want < 0.15",
			errs[queueing.MetricIi], res.AvgQueueLen, theory[queueing.MetricIi])
	}
}

// Blocking in a zero-buffer system (Erlang loss) converges quickly; the
// finite model's Pb is the reference.
func TestRun_MatchesTheoryBlocking(t *testing.T) {
	theory, err := queueing.EvaluateFinite(queueing.FiniteParams{
		Servers: 2, WaitingCapacity: 0, ArrivalRate: 45, ServiceRate: 25,
	})
	if err != nil {
		t.Fatalf("EvaluateFinite returned error: %v", err)
	}

	res, err := simulate.Run(simulate.Config{
		Servers: 2, Capacity: 0, ArrivalRate: 45, ServiceRate: 25,
		Arrivals: 200000, Seed: 11,
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if rel := res.Compare(theory)[queueing.MetricPb]; rel > 0.05 {
		t.Errorf("Pb relative error = %v (empirical %v vs theory %v), want < 0.05",
			rel, res.BlockProb, theory[queueing.MetricPb])
	}
	// No waiting room: every served customer started service immediately.
	if res.AvgWait != 0 {
		t.Errorf("AvgWait = %v with zero buffer, want 0", res.AvgWait)
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  simulate.Config
	}{
		{"zero servers", simulate.Config{Servers: 0, ArrivalRate: 1, ServiceRate: 1, Arrivals: 10}},
		{"zero arrival rate", simulate.Config{Servers: 1, ArrivalRate: 0, ServiceRate: 1, Arrivals: 10}},
		{"zero arrivals", simulate.Config{Servers: 1, ArrivalRate: 1, ServiceRate: 1, Arrivals: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := simulate.Run(tt.cfg); err == nil {
				t.Error("Run succeeded, want error")
			}
		})
	}
}
