package cli

import (
	"fmt"

	"github.com/lazypower/recall/internal/command"
	"github.com/lazypower/recall/internal/config"
	"github.com/lazypower/recall/internal/scheduler"
	"github.com/lazypower/recall/internal/seed"
	"github.com/spf13/cobra"
)

var execNoSeed bool

var execCmd = &cobra.Command{
	Use:   "exec COMMAND [DATA]",
	Short: "Run a single protocol command and print the JSON response",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		graph := scheduler.NewGraph(cfg.Scheduler.DecayRate)
		if cfg.Seed && !execNoSeed {
			seed.Apply(graph)
		}

		data := ""
		if len(args) > 1 {
			data = args[1]
		}
		fmt.Println(command.New(graph).Dispatch(args[0], data))
		return nil
	},
}

func init() {
	execCmd.Flags().BoolVar(&execNoSeed, "no-seed", false, "start with an empty graph")
}
