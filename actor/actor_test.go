package actor_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tigrux/traeger-go/actor"
	"github.com/tigrux/traeger-go/promise"
	"github.com/tigrux/traeger-go/scheduler"
	"github.com/tigrux/traeger-go/value"
)

// account mirrors the original bindings' example-actor-definition.py Account
// class: deposit/debit are writers, balance is a reader.
type account struct {
	mu    sync.Mutex
	funds float64
}

func (a *account) deposit(amount float64) (float64, error) {
	if amount <= 0 {
		return 0, errors.New("invalid amount")
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.funds += amount
	return a.funds, nil
}

func (a *account) debit(amount float64) (float64, error) {
	if amount <= 0 {
		return 0, errors.New("invalid amount")
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.funds < amount {
		return 0, errors.New("not enough funds")
	}
	a.funds -= amount
	return a.funds, nil
}

func (a *account) balance() (float64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.funds, nil
}

func makeAccountActor(initialFunds float64) *actor.Actor[account] {
	state := &account{funds: initialFunds}
	acc := actor.New(state)
	actor.DefineWriter1(acc, "deposit", (*account).deposit)
	actor.DefineWriter1(acc, "debit", (*account).debit)
	actor.DefineReader0(acc, "balance", (*account).balance)
	return acc
}

func awaitValue(t *testing.T, sched *scheduler.Scheduler, p *promise.Promise[value.Value]) (value.Value, bool) {
	t.Helper()
	var got value.Value
	var isErr bool
	var errMsg string
	done := make(chan struct{})
	promise.ThenResult(p, sched, func(v value.Value) (struct{}, error) {
		got = v
		close(done)
		return struct{}{}, nil
	})
	promise.Fail(p, sched, func(err error) (value.Value, error) {
		isErr = true
		errMsg = err.Error()
		close(done)
		return value.Value{}, nil
	})
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("send timed out")
	}
	if isErr {
		t.Logf("send failed: %s", errMsg)
		return value.Value{}, true
	}
	return got, false
}

func floatOf(t *testing.T, v value.Value) float64 {
	t.Helper()
	f, ok := v.FloatValue()
	require.True(t, ok, "value is not a float: %s", v.String())
	return f
}

func TestAccountHappyPath(t *testing.T) {
	sched, err := scheduler.New(4)
	require.NoError(t, err)
	defer sched.Stop()

	acc := makeAccountActor(0)
	mbox := acc.Mailbox()

	p := mbox.Send(sched, "deposit", value.Float(1000))
	v, isErr := awaitValue(t, sched, p)
	require.False(t, isErr)
	require.Equal(t, 1000.0, floatOf(t, v))

	p = mbox.Send(sched, "deposit", value.Float(500))
	v, isErr = awaitValue(t, sched, p)
	require.False(t, isErr)
	require.Equal(t, 1500.0, floatOf(t, v))

	p = mbox.Send(sched, "debit", value.Float(750))
	v, isErr = awaitValue(t, sched, p)
	require.False(t, isErr)
	require.Equal(t, 750.0, floatOf(t, v))

	p = mbox.Send(sched, "balance")
	v, isErr = awaitValue(t, sched, p)
	require.False(t, isErr)
	require.Equal(t, 750.0, floatOf(t, v))
}

func TestAccountErrorPath(t *testing.T) {
	sched, err := scheduler.New(4)
	require.NoError(t, err)
	defer sched.Stop()

	acc := makeAccountActor(0)
	mbox := acc.Mailbox()

	p := mbox.Send(sched, "deposit", value.Float(0))
	_, isErr := awaitValue(t, sched, p)
	require.True(t, isErr)

	p = mbox.Send(sched, "debit", value.Float(-2000))
	_, isErr = awaitValue(t, sched, p)
	require.True(t, isErr)

	p = mbox.Send(sched, "debit", value.Float(750))
	_, isErr = awaitValue(t, sched, p)
	require.True(t, isErr) // not enough funds, balance is still 0

	p = mbox.Send(sched, "balance")
	v, isErr := awaitValue(t, sched, p)
	require.False(t, isErr)
	require.Equal(t, 0.0, floatOf(t, v))
}

func TestUnknownMethodFails(t *testing.T) {
	sched, err := scheduler.New(1)
	require.NoError(t, err)
	defer sched.Stop()

	acc := makeAccountActor(0)
	p := acc.Mailbox().Send(sched, "nonexistent")
	_, isErr := awaitValue(t, sched, p)
	require.True(t, isErr)
}

func TestConcurrentWritersAllApply(t *testing.T) {
	sched, err := scheduler.New(8)
	require.NoError(t, err)
	defer sched.Stop()

	acc := makeAccountActor(0)
	mbox := acc.Mailbox()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p := mbox.Send(sched, "deposit", value.Float(10))
			awaitValue(t, sched, p)
		}()
	}
	wg.Wait()

	p := mbox.Send(sched, "balance")
	v, isErr := awaitValue(t, sched, p)
	require.False(t, isErr)
	require.Equal(t, 200.0, floatOf(t, v))
}
