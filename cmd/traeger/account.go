package main

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/tigrux/traeger-go/actor"
	"github.com/tigrux/traeger-go/promise"
	"github.com/tigrux/traeger-go/scheduler"
	"github.com/tigrux/traeger-go/value"
)

// account is the CLI's stand-in for the original bindings' example Account
// actor: deposit/debit are writers, balance is a reader.
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

// performOperations drives mbox through the same deposit/debit/balance
// sequence as the original bindings' perform_operations, printing results
// as they settle.
func performOperations(sched *scheduler.Scheduler, mbox actor.Mailbox) {
	type op struct {
		name   string
		amount float64
	}
	ops := []op{
		{"deposit", 1000},
		{"deposit", 500},
		{"deposit", 0},
		{"debit", -2000},
		{"debit", 750},
		{"deposit", 250},
		{"debit", 500},
	}

	for _, o := range ops {
		fmt.Printf("Performing %s %g\n", o.name, o.amount)
		p := mbox.Send(sched, o.name, value.Float(o.amount))
		name := o.name
		promise.ThenResult(p, sched, func(v value.Value) (struct{}, error) {
			fmt.Printf("Balance after %s is %s\n", name, v.String())
			return struct{}{}, nil
		})
		promise.Fail(p, sched, func(err error) (value.Value, error) {
			fmt.Printf("Error performing %s: %s\n", name, err.Error())
			return value.Value{}, nil
		})

		bp := mbox.Send(sched, "balance")
		promise.ThenResult(bp, sched, func(v value.Value) (struct{}, error) {
			fmt.Printf("The Balance is %s\n", v.String())
			return struct{}{}, nil
		})
	}
}

func newAccountCmd() *cobra.Command {
	var initialFunds float64
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Run the account actor example entirely in-process",
		RunE: func(cmd *cobra.Command, args []string) error {
			sched, err := scheduler.New(threadsCount)
			if err != nil {
				return err
			}
			defer sched.Stop()

			acc := makeAccountActor(initialFunds)
			performOperations(sched, acc.Mailbox())

			for sched.Count() != 0 {
				time.Sleep(10 * time.Millisecond)
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&initialFunds, "initial-funds", 0, "starting account balance")
	return cmd
}
