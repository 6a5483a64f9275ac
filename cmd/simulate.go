package cmd

import (
	"github.com/spf13/cobra"

	"github.com/daniela-hl/queue-sim/internal/cli"
	"github.com/daniela-hl/queue-sim/internal/simulate"
)

var (
	simServers  int
	simCapacity int
	simArrival  float64
	simService  float64
	simArrivals int
	simSeed     int64
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Cross-check the analytical models with a discrete-event simulation",
	Example: `  queue-sim simulate -c 2 -l 45 -m 25 -n 100000
  queue-sim simulate -c 2 --capacity 0 -l 45 -m 25 -n 100000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.RunSimulation(simulate.Config{
			Servers:     simServers,
			Capacity:    simCapacity,
			ArrivalRate: simArrival,
			ServiceRate: simService,
			Arrivals:    simArrivals,
			Seed:        simSeed,
		})
	},
}

func init() {
	rootCmd.AddCommand(simulateCmd)

	simulateCmd.Flags().IntVarP(&simServers, "servers", "c", 2, "Number of parallel servers")
	simulateCmd.Flags().IntVar(&simCapacity, "capacity", -1, "Waiting positions (-1 = unbounded)")
	simulateCmd.Flags().Float64VarP(&simArrival, "arrival-rate", "l", 45, "Mean arrival rate λ")
	simulateCmd.Flags().Float64VarP(&simService, "service-rate", "m", 25, "Mean service rate μ per server")
	simulateCmd.Flags().IntVarP(&simArrivals, "arrivals", "n", 100000, "Arrivals to generate")
	simulateCmd.Flags().Int64Var(&simSeed, "seed", 1, "RNG seed (runs are reproducible)")
}
