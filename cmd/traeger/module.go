package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tigrux/traeger-go/module"
	"github.com/tigrux/traeger-go/scheduler"
	"github.com/tigrux/traeger-go/value"
)

func newModuleCmd() *cobra.Command {
	var initialFunds float64
	cmd := &cobra.Command{
		Use:   "module <path>",
		Short: "Load an actor factory from a shared object and drive it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			fmt.Printf("Attempting to load module from path: %s\n", path)

			cfg := value.NewMap()
			cfg.Set("initial_funds", value.Float(initialFunds))
			config := value.FromMap(cfg)

			mod, err := module.Load(path, config)
			if err != nil {
				return err
			}

			sched, err := scheduler.New(threadsCount)
			if err != nil {
				return err
			}
			defer sched.Stop()

			performOperations(sched, mod.Mailbox())

			for sched.Count() != 0 {
				time.Sleep(10 * time.Millisecond)
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&initialFunds, "initial-funds", 100, "initial_funds passed to the module's Factory")
	return cmd
}
