package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/daniela-hl/queue-sim/internal/banner"
	"github.com/daniela-hl/queue-sim/internal/storage"
	"github.com/daniela-hl/queue-sim/internal/tui/app"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "queue-sim",
	Short: "queue-sim - Steady-state queueing calculator",
	Long: `
queue-sim evaluates steady-state metrics for multi-server queues:
M/M/c (unlimited waiting room) and M/M/c/K (finite capacity, blocking).

Run without arguments for the interactive explorer, or use the finite /
mmc / simulate subcommands for scripted use.`,
	Run: func(cmd *cobra.Command, args []string) {
		runTUI()
	},
}

func Execute() {
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		fmt.Println(banner.GetString())
		cmd.Usage()
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.queue-sim.yaml)")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.SetConfigType("yaml")
			viper.SetConfigName(".queue-sim")
		}
	}

	// Defaults pre-fill the TUI form.
	viper.SetDefault("model", storage.KindUnbounded)
	viper.SetDefault("servers", 2)
	viper.SetDefault("waiting", 0)
	viper.SetDefault("arrival_rate", 45.0)
	viper.SetDefault("service_rate", 25.0)

	viper.SetEnvPrefix("QUEUESIM")
	viper.AutomaticEnv()
	viper.ReadInConfig()
}

func runTUI() {
	// History persists across sessions; the TUI degrades gracefully when
	// the store cannot be opened (read-only home, etc.).
	store, err := storage.OpenDefault()
	if err != nil {
		store = nil
	} else {
		defer store.Close()
	}

	m := app.NewModel(store,
		viper.GetString("model"),
		viper.GetInt("servers"),
		viper.GetInt("waiting"),
		viper.GetFloat64("arrival_rate"),
		viper.GetFloat64("service_rate"),
	)
	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running queue-sim: %v\n", err)
		os.Exit(1)
	}
}
