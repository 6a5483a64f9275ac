// Package queueing evaluates steady-state performance metrics for
// multi-server Markovian queues: M/M/c (unlimited waiting room) and
// M/M/c/K (finite waiting room, arrivals beyond capacity are blocked).
//
// Every evaluation is a pure function of its parameters. All metrics
// returned by a single call are derived from one steady-state
// distribution, so they are mutually consistent by construction.
package queueing

// Metric names present in an evaluation result.
const (
	MetricR           = "R"           // effective (accepted) arrival rate
	MetricRiPb        = "RiPb"        // rate of blocked arrivals
	MetricPb          = "Pb"          // blocking probability (finite model)
	MetricIi          = "Ii"          // expected number waiting (Lq)
	MetricTi          = "Ti"          // expected wait in queue (Wq)
	MetricIp          = "Ip"          // expected number in service
	MetricUtilization = "Utilization" // per-server utilization
	MetricI           = "I"           // expected number in system (L)
	MetricT           = "T"           // expected time in system (W)
	MetricPw          = "Pw"          // Erlang-C probability of waiting
	MetricQueueTail   = "P_q_gt_Q"    // P(queue length > Q)
	MetricWaitTail    = "P_wait_gt_t" // P(wait time > t)
)

// Metrics maps metric names to their steady-state values. A fresh map is
// produced on every evaluation; the caller owns it.
type Metrics map[string]float64

// FiniteParams describes an M/M/c/K system: Servers parallel servers plus
// WaitingCapacity waiting positions, total capacity Servers+WaitingCapacity.
type FiniteParams struct {
	Servers         int     `json:"servers"`
	WaitingCapacity int     `json:"waiting_capacity"`
	ArrivalRate     float64 `json:"arrival_rate"`
	ServiceRate     float64 `json:"service_rate"`

	// BufferThreshold, when set, requests P(queue length > Q).
	BufferThreshold *int `json:"buffer_threshold,omitempty"`
}

// UnboundedParams describes an M/M/c system with unlimited waiting room.
// Valid only when ArrivalRate < Servers*ServiceRate.
type UnboundedParams struct {
	Servers     int     `json:"servers"`
	ArrivalRate float64 `json:"arrival_rate"`
	ServiceRate float64 `json:"service_rate"`

	// BufferThreshold, when set, requests P(queue length > Q).
	BufferThreshold *int `json:"buffer_threshold,omitempty"`
	// TimeThreshold, when set and >= 0, requests P(wait time > t).
	TimeThreshold *float64 `json:"time_threshold,omitempty"`
}

// OfferedLoad returns a = lambda/mu, the total offered load in Erlangs.
func (p FiniteParams) OfferedLoad() float64 { return p.ArrivalRate / p.ServiceRate }

// TrafficIntensity returns rho = lambda/(c*mu), the per-server utilization.
func (p FiniteParams) TrafficIntensity() float64 {
	return p.ArrivalRate / (float64(p.Servers) * p.ServiceRate)
}

// OfferedLoad returns a = lambda/mu, the total offered load in Erlangs.
func (p UnboundedParams) OfferedLoad() float64 { return p.ArrivalRate / p.ServiceRate }

// TrafficIntensity returns rho = lambda/(c*mu), the per-server utilization.
func (p UnboundedParams) TrafficIntensity() float64 {
	return p.ArrivalRate / (float64(p.Servers) * p.ServiceRate)
}

// erlangTerms accumulates Sum_{n=0}^{c-1} a^n/n! incrementally and returns
// the partial sum together with a^c/c!. Building the terms by the recurrence
// term_{n+1} = term_n * a/(n+1) avoids overflowing factorials for large c.
func erlangTerms(a float64, c int) (sum, termC float64) {
	term := 1.0
	for n := 0; n < c; n++ {
		sum += term
		term *= a / float64(n+1)
	}
	return sum, term
}
