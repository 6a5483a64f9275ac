// Package cli is the headless path: evaluate once, print, optionally
// export and save. Used by the finite/mmc/simulate subcommands.
package cli

import (
	"fmt"

	"github.com/daniela-hl/queue-sim/internal/queueing"
	"github.com/daniela-hl/queue-sim/internal/report"
	"github.com/daniela-hl/queue-sim/internal/simulate"
	"github.com/daniela-hl/queue-sim/internal/storage"
	"github.com/daniela-hl/queue-sim/internal/tui/styles"
)

// Options control what happens with an evaluation result besides
// printing it.
type Options struct {
	Plain    bool   // key=value output instead of styled panels
	CSVPath  string // write metrics CSV when non-empty
	JSONPath string // write metrics JSON when non-empty
	Save     bool   // persist the scenario to the default history store
}

// RunFinite evaluates an M/M/c/K scenario and emits the result.
func RunFinite(p queueing.FiniteParams, opts Options) error {
	m, err := queueing.EvaluateFinite(p)
	if err != nil {
		return err
	}

	title := fmt.Sprintf("M/M/%d/%d  λ=%g μ=%g  ρ=%.3f",
		p.Servers, p.Servers+p.WaitingCapacity, p.ArrivalRate, p.ServiceRate, p.TrafficIntensity())
	printMetrics(title, m, opts)

	if !opts.Plain {
		if probs, err := queueing.StateProbabilities(p.Servers, p.WaitingCapacity, p.ArrivalRate, p.ServiceRate); err == nil && len(probs) <= 25 {
			fmt.Println(styles.Active.Render("State distribution P(n)"))
			fmt.Println(report.Chart(probs, 30))
		}
	}

	return finish(storage.HistoryItem{Kind: storage.KindFinite, Finite: &p, Metrics: m}, opts)
}

// RunUnbounded evaluates an M/M/c scenario and emits the result.
func RunUnbounded(p queueing.UnboundedParams, opts Options) error {
	m, err := queueing.EvaluateUnbounded(p)
	if err != nil {
		return err
	}

	title := fmt.Sprintf("M/M/%d  λ=%g μ=%g  ρ=%.3f",
		p.Servers, p.ArrivalRate, p.ServiceRate, p.TrafficIntensity())
	printMetrics(title, m, opts)

	return finish(storage.HistoryItem{Kind: storage.KindUnbounded, Unbounded: &p, Metrics: m}, opts)
}

// RunSimulation runs the discrete-event simulator and, where the matching
// analytical model is defined, prints theory next to the empirical run.
func RunSimulation(cfg simulate.Config) error {
	res, err := simulate.Run(cfg)
	if err != nil {
		return err
	}

	fmt.Println(styles.Title.Render(fmt.Sprintf("Simulation  c=%d λ=%g μ=%g  %d arrivals (seed %d)",
		cfg.Servers, cfg.ArrivalRate, cfg.ServiceRate, cfg.Arrivals, cfg.Seed)))
	fmt.Println()
	fmt.Printf("  Served        : %d\n", res.Served)
	fmt.Printf("  Blocked       : %d  (%.4f)\n", res.Blocked, res.BlockProb)
	fmt.Printf("  Model time    : %.2f\n", res.Duration)
	fmt.Printf("  Avg wait      : %.4f\n", res.AvgWait)
	fmt.Printf("  Avg queue len : %.4f\n", res.AvgQueueLen)
	fmt.Printf("  Wait P50/P90/P99 : %.4f / %.4f / %.4f\n",
		res.Waits.Quantile(50), res.Waits.Quantile(90), res.Waits.Quantile(99))

	theory, err := theoryFor(cfg)
	if err != nil {
		// An unstable unbounded system has no theory to compare against;
		// the empirical numbers still stand on their own.
		fmt.Println()
		fmt.Println(styles.Warn.Render("No analytical reference: " + err.Error()))
		return nil
	}

	fmt.Println()
	fmt.Println(styles.Active.Render("Theory vs simulation (relative error)"))
	for key, rel := range res.Compare(theory) {
		style := styles.Success
		if rel > 0.10 {
			style = styles.Warn
		}
		fmt.Printf("  %-26s theory %.4f   %s\n",
			report.Label(key), theory[key], style.Render(fmt.Sprintf("±%.1f%%", rel*100)))
	}
	return nil
}

func theoryFor(cfg simulate.Config) (queueing.Metrics, error) {
	if cfg.Capacity < 0 {
		return queueing.EvaluateUnbounded(queueing.UnboundedParams{
			Servers:     cfg.Servers,
			ArrivalRate: cfg.ArrivalRate,
			ServiceRate: cfg.ServiceRate,
		})
	}
	return queueing.EvaluateFinite(queueing.FiniteParams{
		Servers:         cfg.Servers,
		WaitingCapacity: cfg.Capacity,
		ArrivalRate:     cfg.ArrivalRate,
		ServiceRate:     cfg.ServiceRate,
	})
}

func printMetrics(title string, m queueing.Metrics, opts Options) {
	if opts.Plain {
		fmt.Print(report.Plain(m))
		return
	}
	fmt.Println(report.Render(title, m))
}

func finish(item storage.HistoryItem, opts Options) error {
	if opts.CSVPath != "" {
		if err := report.ExportCSV(item.Metrics, opts.CSVPath); err != nil {
			return fmt.Errorf("csv export: %w", err)
		}
	}
	if opts.JSONPath != "" {
		if err := report.ExportJSON(item.Metrics, opts.JSONPath); err != nil {
			return fmt.Errorf("json export: %w", err)
		}
	}
	if opts.Save {
		store, err := storage.OpenDefault()
		if err != nil {
			return fmt.Errorf("open history: %w", err)
		}
		defer store.Close()
		if _, err := store.Save(item); err != nil {
			return fmt.Errorf("save history: %w", err)
		}
	}
	return nil
}
