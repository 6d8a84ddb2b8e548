// Package command wraps a fallible action into an observable, single-flight Command.
//
// A Command is what a view model exposes to its view for every user initiated operation.
// The view subscribes to the Command and renders from Running, HasError, Completed and Result,
// instead of handling errors at every call site.
//
//	save := command.New(func(ctx context.Context, note Note) (NoteID, error) {
//		return notes.Create(ctx, note)
//	})
//	save.Subscribe(render)
//	save.Invoke(ctx, note)
//
// At most one action is in flight per Command.
// An Invoke or Start call made while the Command is running is dropped silently:
// it does not start the action, it does not change state, and it does not notify.
package command

import (
	"context"
	"fmt"
	"sync"

	"github.com/mvvmkit/blueprint/pkg/listenable"
	"github.com/mvvmkit/blueprint/pkg/result"
	"go.llib.dev/frameless/pkg/errorkit"
	"go.llib.dev/frameless/pkg/logging"
)

const (
	// ErrPanic is the failure recorded when the action panics.
	ErrPanic errorkit.Error = "command action panicked"
	// ErrNoAction is the failure recorded when a Command is invoked without an Action.
	ErrNoAction errorkit.Error = "command has no action"
)

// Action is the wrapped operation of a Command.
type Action[Arg, R any] func(ctx context.Context, arg Arg) (R, error)

// New returns a Command bound to the given action.
func New[Arg, R any](action Action[Arg, R]) *Command[Arg, R] {
	return &Command[Arg, R]{Action: action}
}

// New0 returns a Command for an action that takes no argument.
// Invoke it with the empty struct:
//
//	cmd.Invoke(ctx, struct{}{})
func New0[R any](action func(ctx context.Context) (R, error)) *Command[struct{}, R] {
	return New[struct{}, R](func(ctx context.Context, _ struct{}) (R, error) {
		return action(ctx)
	})
}

// Command is an observable wrapper around an Action.
//
// The zero value with a non-nil Action is ready to use.
// A Command must not be copied after first use.
type Command[Arg, R any] struct {
	Action Action[Arg, R]
	// Name [optional] identifies the Command in log entries.
	Name string
	// Logger [optional] receives a log entry for every transition.
	Logger *logging.Logger

	notifier listenable.Notifier

	m       sync.Mutex
	running bool
	result  result.Result[R]
}

// Invoke runs the action with arg and returns once it finished.
// The outcome is not returned, it is recorded in the Command's state.
// Invoke is a no-op while the Command is running.
func (c *Command[Arg, R]) Invoke(ctx context.Context, arg Arg) {
	if !c.begin(ctx) {
		return
	}
	c.finish(ctx, c.run(ctx, arg))
}

// Start begins the invocation synchronously and runs the action on its own goroutine.
// When Start returns, the Command is already Running and its listeners were notified.
// The returned channel is closed once the action finished and the final notification was sent.
//
// If the Command is already running, nothing happens and the returned channel is already closed.
func (c *Command[Arg, R]) Start(ctx context.Context, arg Arg) <-chan struct{} {
	done := make(chan struct{})
	if !c.begin(ctx) {
		close(done)
		return done
	}
	go func() {
		defer close(done)
		c.finish(ctx, c.run(ctx, arg))
	}()
	return done
}

// Subscribe registers a listener that is called on every state transition:
// once when an invocation starts, once when it finishes, and once on an effective Clear.
func (c *Command[Arg, R]) Subscribe(listener func()) *listenable.Subscription {
	return c.notifier.Subscribe(listener)
}

// Running reports whether an action is in flight.
func (c *Command[Arg, R]) Running() bool {
	c.m.Lock()
	defer c.m.Unlock()
	return c.running
}

// HasError reports whether the last outcome is a failure.
func (c *Command[Arg, R]) HasError() bool {
	return c.Result().IsErr()
}

// Completed reports whether the last outcome is a success.
func (c *Command[Arg, R]) Completed() bool {
	return c.Result().IsOK()
}

// Result returns the last outcome.
// It is unset while the action runs and before the first invocation.
func (c *Command[Arg, R]) Result() result.Result[R] {
	c.m.Lock()
	defer c.m.Unlock()
	return c.result
}

// State summarises Running and the last outcome into a single value.
func (c *Command[Arg, R]) State() State {
	c.m.Lock()
	defer c.m.Unlock()
	switch {
	case c.running:
		return Running
	case c.result.IsOK():
		return Succeeded
	case c.result.IsErr():
		return Failed
	default:
		return Idle
	}
}

// Clear forgets the last outcome and notifies the listeners.
// It does nothing while the Command is running or when there is no outcome to forget.
func (c *Command[Arg, R]) Clear() {
	c.m.Lock()
	if c.running || !c.result.IsSet() {
		c.m.Unlock()
		return
	}
	c.result = result.Result[R]{}
	c.m.Unlock()
	c.notifier.Notify()
}

func (c *Command[Arg, R]) begin(ctx context.Context) bool {
	c.m.Lock()
	if c.running {
		c.m.Unlock()
		c.debug(ctx, "command invocation dropped, already running")
		return false
	}
	c.running = true
	c.result = result.Result[R]{}
	c.m.Unlock()

	c.debug(ctx, "command started")
	c.notifier.Notify()
	return true
}

func (c *Command[Arg, R]) finish(ctx context.Context, out result.Result[R]) {
	c.m.Lock()
	c.result = out
	c.running = false
	c.m.Unlock()

	if err := out.Err(); err != nil {
		c.warn(ctx, "command failed", logging.ErrField(err))
	} else {
		c.debug(ctx, "command succeeded")
	}
	c.notifier.Notify()
}

func (c *Command[Arg, R]) run(ctx context.Context, arg Arg) (out result.Result[R]) {
	defer func() {
		if r := recover(); r != nil {
			out = result.Err[R](ErrPanic.F("%v", r))
		}
	}()
	if c.Action == nil {
		return result.Err[R](ErrNoAction)
	}
	v, err := c.Action(ctx, arg)
	return result.Of(v, err)
}

func (c *Command[Arg, R]) debug(ctx context.Context, msg string, ds ...logging.Detail) {
	if c.Logger == nil {
		return
	}
	c.Logger.Debug(ctx, msg, append(ds, c.nameField())...)
}

func (c *Command[Arg, R]) warn(ctx context.Context, msg string, ds ...logging.Detail) {
	if c.Logger == nil {
		return
	}
	c.Logger.Warn(ctx, msg, append(ds, c.nameField())...)
}

func (c *Command[Arg, R]) nameField() logging.Detail {
	name := c.Name
	if name == "" {
		name = fmt.Sprintf("%T", c.Action)
	}
	return logging.Field("command", name)
}
