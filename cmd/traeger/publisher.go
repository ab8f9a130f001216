package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tigrux/traeger-go/scheduler"
	"github.com/tigrux/traeger-go/transport"
	"github.com/tigrux/traeger-go/value"
)

func newPublisherCmd() *cobra.Command {
	var address string
	var limit int
	cmd := &cobra.Command{
		Use:   "publisher",
		Short: "Broadcast heart-beat events over a pub/sub socket",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := transport.NewContext()
			publisher, err := ctx.Publisher(address)
			if err != nil {
				return err
			}
			defer publisher.Close()

			sched, err := scheduler.New(threadsCount)
			if err != nil {
				return err
			}
			defer sched.Stop()

			fmt.Printf("Publishing heart-beat events on address: %s\n", address)

			var broadcast func(counter int)
			broadcast = func(counter int) {
				fmt.Printf("Broadcasting heart-beat %d\n", counter)
				publisher.Publish(sched, "heart-beat", value.Int(int64(counter)))
				if limit <= 0 || counter < limit {
					sched.ScheduleDelayed(time.Second, func() { broadcast(counter + 1) })
				}
			}
			broadcast(0)

			for sched.Count() != 0 {
				time.Sleep(10 * time.Millisecond)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&address, "address", "tcp://*:5556", "bind address")
	cmd.Flags().IntVar(&limit, "limit", 10, "last heart-beat counter to publish, counting from 0 (0 = unlimited)")
	return cmd
}
