package main

import (
	"fmt"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/tigrux/traeger-go/scheduler"
	"github.com/tigrux/traeger-go/transport"
	"github.com/tigrux/traeger-go/value"
)

func newSubscriberCmd() *cobra.Command {
	var address string
	var topics []string
	var idleTimeout time.Duration
	cmd := &cobra.Command{
		Use:   "subscriber",
		Short: "Listen for heart-beat events over a pub/sub socket",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := transport.NewContext()
			subscriber, err := ctx.Subscriber(address, topics)
			if err != nil {
				return err
			}

			sched, err := scheduler.New(threadsCount)
			if err != nil {
				return err
			}
			defer sched.Stop()

			var mu sync.Mutex
			lastHeartBeat := time.Now()

			listen := subscriber.Listen(sched, func(topic string, v value.Value) {
				mu.Lock()
				lastHeartBeat = time.Now()
				mu.Unlock()
				fmt.Printf("%s: %s\n", topic, v.String())
			})

			fmt.Printf("Listening for heart-beat events on address: %s\n", address)
			for !listen.Settled() {
				mu.Lock()
				idle := time.Now().Sub(lastHeartBeat)
				mu.Unlock()
				if idle >= idleTimeout {
					fmt.Printf("The last heart-beat was more than %s ago\n", idleTimeout)
					listen.SetValue(value.Null())
					break
				}
				time.Sleep(10 * time.Millisecond)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&address, "address", "tcp://localhost:5556", "publisher address")
	cmd.Flags().StringSliceVar(&topics, "topic", []string{"heart-beat"}, "topics to subscribe to")
	cmd.Flags().DurationVar(&idleTimeout, "idle-timeout", 2*time.Second, "stop listening after this long without a message")
	return cmd
}
