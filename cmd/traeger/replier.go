package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tigrux/traeger-go/scheduler"
	"github.com/tigrux/traeger-go/transport"
	"github.com/tigrux/traeger-go/value"
)

func newReplierCmd() *cobra.Command {
	var address string
	var initialFunds float64
	cmd := &cobra.Command{
		Use:   "replier",
		Short: "Serve an account actor over a req/rep socket",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := transport.NewContext()
			replier, err := ctx.Replier(address)
			if err != nil {
				return err
			}
			defer replier.Close()

			sched, err := scheduler.New(threadsCount)
			if err != nil {
				return err
			}
			defer sched.Stop()

			acc := makeAccountActor(initialFunds)
			stopped := make(chan struct{})
			reply := replier.Reply(sched, acc.Mailbox())
			reply.OnSettle(func() { close(stopped) })

			fmt.Printf("Replier listening on address: %s\n", address)
			fmt.Println("Enter a new line feed to stop")
			bufio.NewReader(os.Stdin).ReadString('\n')
			reply.SetValue(value.Null())

			<-stopped
			return nil
		},
	}
	cmd.Flags().StringVar(&address, "address", "tcp://*:5555", "bind address")
	cmd.Flags().Float64Var(&initialFunds, "initial-funds", 0, "starting account balance")
	return cmd
}
