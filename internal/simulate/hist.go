package simulate

import (
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// WaitHistogram is a thread-safe wrapper around hdrhistogram recording
// queue waits in microseconds of model time.
type WaitHistogram struct {
	hist *hdrhistogram.Histogram
	mu   sync.Mutex
}

func newWaitHistogram() *WaitHistogram {
	// 1us to 1h, 3 significant figures
	h := hdrhistogram.New(1, int64(time.Hour/time.Microsecond), 3)
	return &WaitHistogram{hist: h}
}

func (h *WaitHistogram) record(seconds float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hist.RecordValue(int64(seconds * 1e6))
}

// Quantile returns the wait at quantile q (0-100) in seconds.
func (h *WaitHistogram) Quantile(q float64) float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return float64(h.hist.ValueAtQuantile(q)) / 1e6
}

// Mean returns the mean recorded wait in seconds.
func (h *WaitHistogram) Mean() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.hist.Mean() / 1e6
}

// Max returns the largest recorded wait in seconds.
func (h *WaitHistogram) Max() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return float64(h.hist.Max()) / 1e6
}

func (h *WaitHistogram) TotalCount() int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.hist.TotalCount()
}
