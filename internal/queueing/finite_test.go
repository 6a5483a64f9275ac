package queueing_test

import (
	"errors"
	"math"
	"testing"

	"github.com/daniela-hl/queue-sim/internal/queueing"
)

func intPtr(v int) *int { return &v }

// Classroom scenario: two tellers, no waiting room. A system at capacity
// turns away roughly 36.65% of arrivals.
func TestEvaluateFinite_BlockingScenario(t *testing.T) {
	m, err := queueing.EvaluateFinite(queueing.FiniteParams{
		Servers:         2,
		WaitingCapacity: 0,
		ArrivalRate:     45,
		ServiceRate:     25,
	})
	if err != nil {
		t.Fatalf("EvaluateFinite returned error: %v", err)
	}

	if pb := m[queueing.MetricPb]; math.Abs(pb-0.3665) > 0.001 {
		t.Errorf("Pb = %v, want ~0.3665", pb)
	}
	if r := m[queueing.MetricR]; math.Abs(r-28.51) > 0.01 {
		t.Errorf("R = %v, want ~28.51", r)
	}
	if riPb := m[queueing.MetricRiPb]; math.Abs(riPb-16.49) > 0.01 {
		t.Errorf("RiPb = %v, want ~16.49", riPb)
	}
	// No waiting room means nobody ever waits.
	if ii := m[queueing.MetricIi]; ii != 0 {
		t.Errorf("Ii = %v, want 0 with K=0", ii)
	}
	if ti := m[queueing.MetricTi]; ti != 0 {
		t.Errorf("Ti = %v, want 0 with K=0", ti)
	}
}

func TestEvaluateFinite_FlowConservation(t *testing.T) {
	tests := []struct {
		name       string
		c, k       int
		lambda, mu float64
	}{
		{"light load", 3, 5, 2, 4},
		{"heavy load", 2, 4, 50, 10},
		{"critical load", 2, 10, 20, 10}, // rho exactly 1
		{"single server", 1, 0, 9, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := queueing.EvaluateFinite(queueing.FiniteParams{
				Servers:         tt.c,
				WaitingCapacity: tt.k,
				ArrivalRate:     tt.lambda,
				ServiceRate:     tt.mu,
			})
			if err != nil {
				t.Fatalf("EvaluateFinite returned error: %v", err)
			}

			pb := m[queueing.MetricPb]
			if pb < 0 || pb > 1 {
				t.Errorf("Pb = %v, want within [0, 1]", pb)
			}
			// Accepted plus blocked flow must add back up to lambda.
			total := m[queueing.MetricR] + m[queueing.MetricRiPb]
			if math.Abs(total-tt.lambda) > 1e-9*tt.lambda {
				t.Errorf("R + RiPb = %v, want %v", total, tt.lambda)
			}
			if util := m[queueing.MetricUtilization]; util < 0 || util > 1 {
				t.Errorf("Utilization = %v, want within [0, 1]", util)
			}
			if i := m[queueing.MetricI]; i < 0 {
				t.Errorf("I = %v, want >= 0", i)
			}
		})
	}
}

func TestStateProbabilities_SumToOne(t *testing.T) {
	tests := []struct {
		c, k       int
		lambda, mu float64
	}{
		{1, 0, 5, 10},
		{2, 3, 45, 25},
		{4, 20, 39, 10},
		{3, 7, 30, 10}, // rho = 1, limit branch of the geometric sum
	}
	for _, tt := range tests {
		probs, err := queueing.StateProbabilities(tt.c, tt.k, tt.lambda, tt.mu)
		if err != nil {
			t.Fatalf("StateProbabilities(%d, %d, %v, %v) error: %v", tt.c, tt.k, tt.lambda, tt.mu, err)
		}
		if len(probs) != tt.c+tt.k+1 {
			t.Fatalf("len(probs) = %d, want %d", len(probs), tt.c+tt.k+1)
		}
		var sum float64
		for n, p := range probs {
			if p < 0 || p > 1 {
				t.Errorf("P(%d) = %v, want within [0, 1]", n, p)
			}
			sum += p
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Errorf("sum of P(n) = %v, want 1", sum)
		}
	}
}

// The blocking probability reported by EvaluateFinite is P(N) of the same
// distribution StateProbabilities exposes.
func TestEvaluateFinite_PbMatchesDistribution(t *testing.T) {
	p := queueing.FiniteParams{Servers: 2, WaitingCapacity: 5, ArrivalRate: 45, ServiceRate: 25}
	m, err := queueing.EvaluateFinite(p)
	if err != nil {
		t.Fatalf("EvaluateFinite returned error: %v", err)
	}
	probs, err := queueing.StateProbabilities(p.Servers, p.WaitingCapacity, p.ArrivalRate, p.ServiceRate)
	if err != nil {
		t.Fatalf("StateProbabilities returned error: %v", err)
	}
	if pb, last := m[queueing.MetricPb], probs[len(probs)-1]; math.Abs(pb-last) > 1e-12 {
		t.Errorf("Pb = %v, P(N) = %v, want equal", pb, last)
	}
}

func TestEvaluateFinite_QueueTail(t *testing.T) {
	base := queueing.FiniteParams{Servers: 2, WaitingCapacity: 6, ArrivalRate: 45, ServiceRate: 25}

	noQ, err := queueing.EvaluateFinite(base)
	if err != nil {
		t.Fatalf("EvaluateFinite returned error: %v", err)
	}
	if _, ok := noQ[queueing.MetricQueueTail]; ok {
		t.Error("P_q_gt_Q present without a buffer threshold")
	}

	withQ := base
	withQ.BufferThreshold = intPtr(2)
	m, err := queueing.EvaluateFinite(withQ)
	if err != nil {
		t.Fatalf("EvaluateFinite returned error: %v", err)
	}
	tail, ok := m[queueing.MetricQueueTail]
	if !ok {
		t.Fatal("P_q_gt_Q missing with a buffer threshold set")
	}
	if tail <= 0 || tail >= 1 {
		t.Errorf("P_q_gt_Q = %v, want within (0, 1)", tail)
	}

	// The queue is bounded by K, so a threshold at or past K has zero
	// exceedance probability.
	atK := base
	atK.BufferThreshold = intPtr(base.WaitingCapacity)
	m, err = queueing.EvaluateFinite(atK)
	if err != nil {
		t.Fatalf("EvaluateFinite returned error: %v", err)
	}
	if tail := m[queueing.MetricQueueTail]; tail != 0 {
		t.Errorf("P_q_gt_Q = %v with Q >= K, want exactly 0", tail)
	}
}

// With rho < 1 fixed, growing the waiting room drives blocking to zero and
// the finite metrics onto the unbounded model's.
func TestEvaluateFinite_ConvergesToUnbounded(t *testing.T) {
	unb, err := queueing.EvaluateUnbounded(queueing.UnboundedParams{
		Servers: 2, ArrivalRate: 45, ServiceRate: 25,
	})
	if err != nil {
		t.Fatalf("EvaluateUnbounded returned error: %v", err)
	}

	fin, err := queueing.EvaluateFinite(queueing.FiniteParams{
		Servers: 2, WaitingCapacity: 500, ArrivalRate: 45, ServiceRate: 25,
	})
	if err != nil {
		t.Fatalf("EvaluateFinite returned error: %v", err)
	}

	if pb := fin[queueing.MetricPb]; pb > 1e-8 {
		t.Errorf("Pb = %v for K=500, want ~0", pb)
	}
	for _, key := range []string{queueing.MetricIi, queueing.MetricTi, queueing.MetricI, queueing.MetricT} {
		got, want := fin[key], unb[key]
		if math.Abs(got-want) > 1e-6*math.Max(want, 1) {
			t.Errorf("%s = %v for K=500, want ~%v (unbounded)", key, got, want)
		}
	}
}

func TestEvaluateFinite_InvalidParameters(t *testing.T) {
	tests := []struct {
		name   string
		params queueing.FiniteParams
	}{
		{"zero servers", queueing.FiniteParams{Servers: 0, WaitingCapacity: 1, ArrivalRate: 1, ServiceRate: 1}},
		{"negative servers", queueing.FiniteParams{Servers: -2, WaitingCapacity: 1, ArrivalRate: 1, ServiceRate: 1}},
		{"negative waiting capacity", queueing.FiniteParams{Servers: 1, WaitingCapacity: -1, ArrivalRate: 1, ServiceRate: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := queueing.EvaluateFinite(tt.params)
			if !errors.Is(err, queueing.ErrInvalidParameter) {
				t.Errorf("error = %v, want ErrInvalidParameter", err)
			}
			if m != nil {
				t.Errorf("metrics = %v, want nil on error", m)
			}
		})
	}
}
