package queueing

import (
	"fmt"
	"math"
)

// EvaluateFinite computes the steady-state metrics of an M/M/c/K system.
//
// The finite state space guarantees a steady state for any load, so there
// is no stability precondition. Arrivals that find the system at full
// capacity N = c+K are blocked; their rate is reported as RiPb and the
// accepted rate as R.
func EvaluateFinite(p FiniteParams) (Metrics, error) {
	if p.Servers < 1 {
		return nil, fmt.Errorf("%w: servers must be >= 1, got %d", ErrInvalidParameter, p.Servers)
	}
	if p.WaitingCapacity < 0 {
		return nil, fmt.Errorf("%w: waiting capacity must be >= 0, got %d", ErrInvalidParameter, p.WaitingCapacity)
	}

	c := p.Servers
	k := p.WaitingCapacity
	lambda := p.ArrivalRate
	mu := p.ServiceRate
	a := p.OfferedLoad()
	rho := p.TrafficIntensity()

	// Normalizing constant P0 and the shared coefficient P0*a^c/c! that
	// every n >= c state probability hangs off.
	sum, termC := erlangTerms(a, c)
	p0 := 1 / (sum + termC*GeomSum(rho, k))
	coeff := p0 * termC

	// P(N) = P0 * a^c/c! * rho^K is the blocking probability.
	pb := coeff * math.Pow(rho, float64(k))
	r := lambda * (1 - pb)
	riPb := lambda * pb

	ii := coeff * GeomWeightedSum(rho, k)
	ip := r / mu
	util := ip / float64(c)
	l := ii + ip

	// A fully blocked system accepts nothing; wait times are defined as 0
	// rather than 0/0.
	ti, t := 0.0, 0.0
	if r > 0 {
		ti = ii / r
		t = l / r
	}

	m := Metrics{
		MetricR:           r,
		MetricRiPb:        riPb,
		MetricPb:          pb,
		MetricIi:          ii,
		MetricTi:          ti,
		MetricIp:          ip,
		MetricUtilization: util,
		MetricI:           l,
		MetricT:           t,
	}

	if p.BufferThreshold != nil {
		q := *p.BufferThreshold
		if q >= k {
			// The queue can never hold more than K customers.
			m[MetricQueueTail] = 0
		} else {
			m[MetricQueueTail] = coeff * (GeomSum(rho, k) - GeomSum(rho, q))
		}
	}

	return m, nil
}

// StateProbabilities returns the steady-state distribution P(0..N) of an
// M/M/c/K system, N = c+K. It shares the normalization of EvaluateFinite,
// so the vector sums to 1 to floating tolerance.
func StateProbabilities(servers, waitingCapacity int, arrivalRate, serviceRate float64) ([]float64, error) {
	if servers < 1 {
		return nil, fmt.Errorf("%w: servers must be >= 1, got %d", ErrInvalidParameter, servers)
	}
	if waitingCapacity < 0 {
		return nil, fmt.Errorf("%w: waiting capacity must be >= 0, got %d", ErrInvalidParameter, waitingCapacity)
	}

	a := arrivalRate / serviceRate
	rho := arrivalRate / (float64(servers) * serviceRate)
	sum, termC := erlangTerms(a, servers)
	p0 := 1 / (sum + termC*GeomSum(rho, waitingCapacity))

	probs := make([]float64, servers+waitingCapacity+1)
	term := p0
	for n := 0; n < servers; n++ {
		probs[n] = term
		term *= a / float64(n+1)
	}
	// term is now P0 * a^c/c!; beyond c each extra customer contributes
	// a factor rho.
	for n := servers; n < len(probs); n++ {
		probs[n] = term
		term *= rho
	}
	return probs, nil
}
