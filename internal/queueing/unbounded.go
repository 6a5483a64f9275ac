package queueing

import (
	"fmt"
	"math"
)

// EvaluateUnbounded computes the steady-state metrics of an M/M/c system
// with unlimited waiting room.
//
// The system only reaches a steady state when the offered load is strictly
// below total capacity (rho < 1); at or above that the queue grows without
// bound and ErrUnstable is returned instead of metrics.
func EvaluateUnbounded(p UnboundedParams) (Metrics, error) {
	if p.Servers < 1 {
		return nil, fmt.Errorf("%w: servers must be >= 1, got %d", ErrInvalidParameter, p.Servers)
	}

	c := p.Servers
	lambda := p.ArrivalRate
	mu := p.ServiceRate
	a := p.OfferedLoad()
	rho := p.TrafficIntensity()

	if rho >= 1 {
		return nil, fmt.Errorf("%w: rho = %.4f, need arrival rate < servers * service rate", ErrUnstable, rho)
	}

	// P0 with the geometric tail summed in closed form: the n >= c states
	// contribute a^c/c! * 1/(1-rho).
	sum, termC := erlangTerms(a, c)
	p0 := 1 / (sum + termC/(1-rho))

	ii := p0 * termC * rho / ((1 - rho) * (1 - rho))
	ti := ii / lambda
	ip := a
	l := ii + ip
	t := ti + 1/mu

	// Erlang-C: probability an arrival finds every server busy.
	pw := p0 * termC / (1 - rho)

	m := Metrics{
		MetricIi:          ii,
		MetricTi:          ti,
		MetricIp:          ip,
		MetricUtilization: rho,
		MetricI:           l,
		MetricT:           t,
		MetricPw:          pw,
	}

	if p.BufferThreshold != nil {
		q := *p.BufferThreshold
		m[MetricQueueTail] = p0 * termC * math.Pow(rho, float64(q+1)) / (1 - rho)
	}

	if p.TimeThreshold != nil && *p.TimeThreshold >= 0 {
		// Conditional on waiting at all, the wait is exponential with
		// rate c*mu - lambda.
		rate := float64(c)*mu - lambda
		m[MetricWaitTail] = pw * math.Exp(-rate**p.TimeThreshold)
	}

	return m, nil
}
