// Package report turns a metrics mapping into operator-facing output:
// styled terminal text, CSV, or JSON. It never computes anything itself.
package report

import (
	"fmt"
	"strings"

	"github.com/daniela-hl/queue-sim/internal/queueing"
	"github.com/daniela-hl/queue-sim/internal/tui/styles"
)

// Display order and labels for the metrics a model can return. Keys absent
// from a mapping are simply skipped, so one table serves both models.
var metricOrder = []string{
	queueing.MetricR,
	queueing.MetricRiPb,
	queueing.MetricPb,
	queueing.MetricIi,
	queueing.MetricTi,
	queueing.MetricIp,
	queueing.MetricUtilization,
	queueing.MetricI,
	queueing.MetricT,
	queueing.MetricPw,
	queueing.MetricQueueTail,
	queueing.MetricWaitTail,
}

var metricLabels = map[string]string{
	queueing.MetricR:           "Effective arrival rate",
	queueing.MetricRiPb:        "Blocked arrival rate",
	queueing.MetricPb:          "Blocking probability",
	queueing.MetricIi:          "Avg number waiting (Lq)",
	queueing.MetricTi:          "Avg wait in queue (Wq)",
	queueing.MetricIp:          "Avg number in service",
	queueing.MetricUtilization: "Server utilization",
	queueing.MetricI:           "Avg number in system (L)",
	queueing.MetricT:           "Avg time in system (W)",
	queueing.MetricPw:          "P(arrival must wait)",
	queueing.MetricQueueTail:   "P(queue length > Q)",
	queueing.MetricWaitTail:    "P(wait > t)",
}

// MetricKeys returns the metric names of m in display order.
func MetricKeys(m queueing.Metrics) []string {
	keys := make([]string, 0, len(m))
	for _, k := range metricOrder {
		if _, ok := m[k]; ok {
			keys = append(keys, k)
		}
	}
	return keys
}

// Label returns the human-readable label for a metric name.
func Label(key string) string {
	if l, ok := metricLabels[key]; ok {
		return l
	}
	return key
}

// Render formats a metrics mapping as a styled panel with a title line.
func Render(title string, m queueing.Metrics) string {
	s := strings.Builder{}
	s.WriteString(styles.Title.Render(title))
	s.WriteString("\n\n")

	rows := strings.Builder{}
	for _, key := range MetricKeys(m) {
		// Pad before styling; ANSI escapes would throw off %-26s.
		rows.WriteString(fmt.Sprintf("%s %s\n",
			styles.Subtle.Render(fmt.Sprintf("%-26s", Label(key))),
			styles.Value.Render(formatValue(key, m[key]))))
	}
	s.WriteString(styles.Box.Render(strings.TrimRight(rows.String(), "\n")))
	return s.String()
}

// Plain formats a metrics mapping without styling, one "key = value" per
// line, for piping into other tools.
func Plain(m queueing.Metrics) string {
	s := strings.Builder{}
	for _, key := range MetricKeys(m) {
		fmt.Fprintf(&s, "%s = %.6f\n", key, m[key])
	}
	return s.String()
}

// RenderError formats a model error in the shared error style.
func RenderError(err error) string {
	return styles.Error.Render("✗ " + err.Error())
}

func formatValue(key string, v float64) string {
	switch key {
	case queueing.MetricPb, queueing.MetricUtilization, queueing.MetricPw,
		queueing.MetricQueueTail, queueing.MetricWaitTail:
		return fmt.Sprintf("%.4f  (%.2f%%)", v, v*100)
	default:
		return fmt.Sprintf("%.4f", v)
	}
}

// Chart renders the state-probability distribution as horizontal bars,
// one row per system state.
func Chart(probs []float64, width int) string {
	if width < 10 {
		width = 10
	}
	max := 0.0
	for _, p := range probs {
		if p > max {
			max = p
		}
	}
	if max == 0 {
		return ""
	}

	s := strings.Builder{}
	for n, p := range probs {
		filled := int(p / max * float64(width))
		bar := strings.Repeat("█", filled)
		s.WriteString(fmt.Sprintf("%s %s %s\n",
			styles.Subtle.Render(fmt.Sprintf("P(%2d)", n)),
			styles.Active.Render(bar),
			styles.Subtle.Render(fmt.Sprintf("%.4f", p))))
	}
	return strings.TrimRight(s.String(), "\n")
}
