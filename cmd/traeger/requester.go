package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tigrux/traeger-go/scheduler"
	"github.com/tigrux/traeger-go/transport"
)

func newRequesterCmd() *cobra.Command {
	var address string
	cmd := &cobra.Command{
		Use:   "requester",
		Short: "Drive a replier's account actor over a req/rep socket",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := transport.NewContext()
			requester, err := ctx.Requester(address)
			if err != nil {
				return err
			}
			defer requester.Close()

			sched, err := scheduler.New(threadsCount)
			if err != nil {
				return err
			}
			defer sched.Stop()

			fmt.Printf("Sending messages to replier on address: %s\n", address)
			performOperations(sched, requester.Mailbox())

			for sched.Count() != 0 {
				time.Sleep(10 * time.Millisecond)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&address, "address", "tcp://localhost:5555", "replier address")
	return cmd
}
