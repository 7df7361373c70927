package cli

import (
	"os"

	"github.com/lazypower/recall/internal/command"
	"github.com/lazypower/recall/internal/config"
	"github.com/lazypower/recall/internal/scheduler"
	"github.com/lazypower/recall/internal/seed"
	"github.com/spf13/cobra"
)

var replNoSeed bool

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Read protocol commands from stdin, one JSON response per line",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		graph := scheduler.NewGraph(cfg.Scheduler.DecayRate)
		if cfg.Seed && !replNoSeed {
			seed.Apply(graph)
		}

		return command.New(graph).Run(os.Stdin, os.Stdout)
	},
}

func init() {
	replCmd.Flags().BoolVar(&replNoSeed, "no-seed", false, "start with an empty graph")
}
