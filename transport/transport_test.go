package transport_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tigrux/traeger-go/actor"
	"github.com/tigrux/traeger-go/promise"
	"github.com/tigrux/traeger-go/scheduler"
	"github.com/tigrux/traeger-go/transport"
	"github.com/tigrux/traeger-go/value"
)

type echoState struct{}

func (e *echoState) echo(s string) (string, error) { return s, nil }

func makeEchoActor() *actor.Actor[echoState] {
	a := actor.New(&echoState{})
	actor.DefineReader1(a, "echo", (*echoState).echo)
	return a
}

// TestRequestReplyRoundTrip reproduces spec.md §8 scenario 5: a requester
// connects to a replier serving a local actor's mailbox and gets back
// whatever the actor computed.
func TestRequestReplyRoundTrip(t *testing.T) {
	const address = "tcp://localhost:18551"

	ctx := transport.NewContext()
	replier, err := ctx.Replier("tcp://*:18551")
	require.NoError(t, err)
	defer replier.Close()

	sched, err := scheduler.New(4)
	require.NoError(t, err)
	defer sched.Stop()

	acc := makeEchoActor()
	stop := replier.Reply(sched, acc.Mailbox())
	defer stop.SetValue(value.Null())

	requester, err := ctx.Requester(address)
	require.NoError(t, err)
	defer requester.Close()

	p := requester.Mailbox().Send(sched, "echo", value.String("hello"))

	done := make(chan value.Value, 1)
	promise.ThenResult(p, sched, func(v value.Value) (struct{}, error) {
		done <- v
		return struct{}{}, nil
	})

	select {
	case v := <-done:
		s, ok := v.StringValue()
		require.True(t, ok)
		require.Equal(t, "hello", s)
	case <-time.After(2 * time.Second):
		t.Fatal("request/reply round trip never completed")
	}
}

// TestPublishSubscribe reproduces spec.md §8 scenario 4: a subscriber only
// sees messages for topics it asked for, and Set on the listen Promise
// stops delivery.
func TestPublishSubscribe(t *testing.T) {
	const address = "tcp://localhost:18552"

	ctx := transport.NewContext()
	publisher, err := ctx.Publisher("tcp://*:18552")
	require.NoError(t, err)
	defer publisher.Close()

	sched, err := scheduler.New(4)
	require.NoError(t, err)
	defer sched.Stop()

	subscriber, err := ctx.Subscriber(address, []string{"heart-beat"})
	require.NoError(t, err)

	var mu sync.Mutex
	var received []int
	listenDone := subscriber.Listen(sched, func(topic string, v value.Value) {
		mu.Lock()
		defer mu.Unlock()
		if topic == "heart-beat" {
			n, _ := v.IntValue()
			received = append(received, int(n))
		}
	})

	time.Sleep(100 * time.Millisecond) // let the subscriber connection establish

	for i := 0; i < 3; i++ {
		publisher.Publish(sched, "heart-beat", value.Int(int64(i)))
		publisher.Publish(sched, "other-topic", value.Int(999))
	}

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(received) == 3
	}, 2*time.Second, 10*time.Millisecond)

	mu.Lock()
	require.Equal(t, []int{0, 1, 2}, received)
	mu.Unlock()

	listenDone.SetValue(value.Null())
	require.Eventually(t, func() bool { return listenDone.Settled() }, time.Second, time.Millisecond)
}
