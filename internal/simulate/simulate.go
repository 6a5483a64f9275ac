// Package simulate runs a discrete-event simulation of an M/M/c or
// M/M/c/K queue. It exists to cross-check the closed-form results in
// internal/queueing against an empirical run, the same way one would
// sanity-check a spreadsheet model against observed data.
package simulate

import (
	"container/heap"
	"fmt"
	"math/rand"

	"github.com/daniela-hl/queue-sim/internal/queueing"
)

// Config describes one simulation run.
type Config struct {
	Servers     int
	Capacity    int // waiting positions; negative means unbounded
	ArrivalRate float64
	ServiceRate float64
	Arrivals    int   // number of arrivals to generate
	Seed        int64 // fixed seed, runs are reproducible
}

// Result holds the empirical counterparts of the analytical metrics.
type Result struct {
	Arrivals int
	Served   int
	Blocked  int

	Duration    float64 // model time spanned by the run
	BlockProb   float64 // Blocked / Arrivals
	AvgWait     float64 // mean queue wait of served customers
	AvgQueueLen float64 // time-average number waiting

	Waits *WaitHistogram
}

// departure times of customers currently in service
type timeHeap []float64

func (h timeHeap) Len() int            { return len(h) }
func (h timeHeap) Less(i, j int) bool  { return h[i] < h[j] }
func (h timeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *timeHeap) Push(x interface{}) { *h = append(*h, x.(float64)) }
func (h *timeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// Run simulates cfg.Arrivals Poisson arrivals through the system and
// drains it. FCFS discipline; arrivals that find the waiting room full
// are dropped, matching the finite model's blocking semantics.
func Run(cfg Config) (*Result, error) {
	if cfg.Servers < 1 {
		return nil, fmt.Errorf("simulate: servers must be >= 1, got %d", cfg.Servers)
	}
	if cfg.ArrivalRate <= 0 || cfg.ServiceRate <= 0 {
		return nil, fmt.Errorf("simulate: rates must be > 0")
	}
	if cfg.Arrivals < 1 {
		return nil, fmt.Errorf("simulate: arrivals must be >= 1, got %d", cfg.Arrivals)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	draw := func(rate float64) float64 { return rng.ExpFloat64() / rate }

	res := &Result{Arrivals: cfg.Arrivals, Waits: newWaitHistogram()}

	var (
		now, last   float64
		queueArea   float64
		waitSum     float64
		busy        int
		generated   int
		queue       []float64 // arrival times of waiting customers
		departures  = &timeHeap{}
		nextArrival = draw(cfg.ArrivalRate)
	)

	advance := func(t float64) {
		queueArea += float64(len(queue)) * (t - last)
		last = t
		now = t
	}

	startService := func(wait float64) {
		waitSum += wait
		res.Waits.record(wait)
		res.Served++
		heap.Push(departures, now+draw(cfg.ServiceRate))
	}

	for generated < cfg.Arrivals || busy > 0 {
		arrivalNext := generated < cfg.Arrivals &&
			(departures.Len() == 0 || nextArrival <= (*departures)[0])

		if arrivalNext {
			advance(nextArrival)
			generated++
			if generated < cfg.Arrivals {
				nextArrival = now + draw(cfg.ArrivalRate)
			}

			switch {
			case busy < cfg.Servers:
				busy++
				startService(0)
			case cfg.Capacity < 0 || len(queue) < cfg.Capacity:
				queue = append(queue, now)
			default:
				res.Blocked++
			}
			continue
		}

		// Departure event.
		advance(heap.Pop(departures).(float64))
		if len(queue) > 0 {
			arrived := queue[0]
			queue = queue[1:]
			startService(now - arrived)
		} else {
			busy--
		}
	}

	res.Duration = now
	res.BlockProb = float64(res.Blocked) / float64(res.Arrivals)
	if res.Served > 0 {
		res.AvgWait = waitSum / float64(res.Served)
	}
	if now > 0 {
		res.AvgQueueLen = queueArea / now
	}
	return res, nil
}

// Compare returns the relative error of the empirical estimates against
// the analytical metrics, keyed by metric name. Only metrics present in
// theory are compared.
func (r *Result) Compare(theory queueing.Metrics) map[string]float64 {
	relErr := func(got, want float64) float64 {
		if want == 0 {
			return got
		}
		d := got - want
		if d < 0 {
			d = -d
		}
		return d / want
	}

	out := make(map[string]float64)
	if want, ok := theory[queueing.MetricPb]; ok {
		out[queueing.MetricPb] = relErr(r.BlockProb, want)
	}
	if want, ok := theory[queueing.MetricIi]; ok {
		out[queueing.MetricIi] = relErr(r.AvgQueueLen, want)
	}
	if want, ok := theory[queueing.MetricTi]; ok {
		out[queueing.MetricTi] = relErr(r.AvgWait, want)
	}
	return out
}
