package cmd

import (
	"github.com/spf13/cobra"

	"github.com/daniela-hl/queue-sim/internal/cli"
	"github.com/daniela-hl/queue-sim/internal/queueing"
)

// Flags shared by the two evaluation subcommands.
var (
	servers     int
	waiting     int
	arrivalRate float64
	serviceRate float64
	bufferQ     int
	timeT       float64

	plainOut bool
	csvPath  string
	jsonPath string
	saveRun  bool
)

var finiteCmd = &cobra.Command{
	Use:   "finite",
	Short: "Evaluate an M/M/c/K system (finite capacity, blocking)",
	Example: `  queue-sim finite -c 2 -K 0 -l 45 -m 25
  queue-sim finite -c 3 -K 10 -l 20 -m 8 --buffer-threshold 4 --json out.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := queueing.FiniteParams{
			Servers:         servers,
			WaitingCapacity: waiting,
			ArrivalRate:     arrivalRate,
			ServiceRate:     serviceRate,
		}
		if cmd.Flags().Changed("buffer-threshold") {
			q := bufferQ
			p.BufferThreshold = &q
		}
		return cli.RunFinite(p, evalOptions())
	},
}

var mmcCmd = &cobra.Command{
	Use:   "mmc",
	Short: "Evaluate an M/M/c system (unlimited waiting room)",
	Example: `  queue-sim mmc -c 2 -l 45 -m 25
  queue-sim mmc -c 4 -l 30 -m 10 --time-threshold 0.5 --plain`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := queueing.UnboundedParams{
			Servers:     servers,
			ArrivalRate: arrivalRate,
			ServiceRate: serviceRate,
		}
		if cmd.Flags().Changed("buffer-threshold") {
			q := bufferQ
			p.BufferThreshold = &q
		}
		if cmd.Flags().Changed("time-threshold") {
			t := timeT
			p.TimeThreshold = &t
		}
		return cli.RunUnbounded(p, evalOptions())
	},
}

func evalOptions() cli.Options {
	return cli.Options{
		Plain:    plainOut,
		CSVPath:  csvPath,
		JSONPath: jsonPath,
		Save:     saveRun,
	}
}

func init() {
	rootCmd.AddCommand(finiteCmd)
	rootCmd.AddCommand(mmcCmd)

	for _, c := range []*cobra.Command{finiteCmd, mmcCmd} {
		c.Flags().IntVarP(&servers, "servers", "c", 2, "Number of parallel servers")
		c.Flags().Float64VarP(&arrivalRate, "arrival-rate", "l", 45, "Mean arrival rate λ")
		c.Flags().Float64VarP(&serviceRate, "service-rate", "m", 25, "Mean service rate μ per server")
		c.Flags().IntVarP(&bufferQ, "buffer-threshold", "Q", 0, "Report P(queue length > Q)")

		c.Flags().BoolVar(&plainOut, "plain", false, "Unstyled key=value output")
		c.Flags().StringVar(&csvPath, "csv", "", "Write metrics CSV to this path")
		c.Flags().StringVar(&jsonPath, "json", "", "Write metrics JSON to this path")
		c.Flags().BoolVar(&saveRun, "save", false, "Save the scenario to the history store")
	}

	finiteCmd.Flags().IntVarP(&waiting, "waiting", "K", 0, "Waiting positions beyond the servers")
	mmcCmd.Flags().Float64VarP(&timeT, "time-threshold", "t", 0, "Report P(wait > t)")
}
