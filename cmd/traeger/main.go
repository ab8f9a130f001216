// Command traeger is the CLI entry point for spec.md §6: a small harness
// that drives an account actor in-process, over req/rep sockets, or from a
// loaded module, and runs a heart-beat pub/sub pair, so the library can be
// driven from a shell without writing Go.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tigrux/traeger-go/internal/logging"
)

var (
	threadsCount int
	logLevel     string
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "traeger",
		Short:         "Run traeger actors, sockets, and modules from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetLevel(viper.GetString("log-level"))
		},
	}

	root.PersistentFlags().IntVar(&threadsCount, "threads", 8, "scheduler worker count")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "debug, info, warn, or error")
	_ = viper.BindPFlag("threads", root.PersistentFlags().Lookup("threads"))
	_ = viper.BindPFlag("log-level", root.PersistentFlags().Lookup("log-level"))
	viper.SetEnvPrefix("traeger")
	viper.AutomaticEnv()

	root.AddCommand(newAccountCmd())
	root.AddCommand(newReplierCmd())
	root.AddCommand(newRequesterCmd())
	root.AddCommand(newPublisherCmd())
	root.AddCommand(newSubscriberCmd())
	root.AddCommand(newModuleCmd())

	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "traeger:", err)
		os.Exit(1)
	}
}
