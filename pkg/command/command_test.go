package command_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mvvmkit/blueprint/pkg/command"
	"github.com/mvvmkit/blueprint/pkg/listenable"
	"go.llib.dev/frameless/pkg/logging"
	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"
	"go.llib.dev/testcase/let"
)

const timeout = time.Second

// gate is a controllable action: it blocks until released and counts its executions.
type gate struct {
	release chan struct{}
	calls   int32
	value   int
	err     error
}

func newGate(value int, err error) *gate {
	return &gate{release: make(chan struct{}), value: value, err: err}
}

func (g *gate) Action(ctx context.Context, arg string) (int, error) {
	atomic.AddInt32(&g.calls, 1)
	<-g.release
	return g.value, g.err
}

func (g *gate) Open() { close(g.release) }

func (g *gate) Calls() int { return int(atomic.LoadInt32(&g.calls)) }

// recorder counts notifications and the state observed at each of them.
type recorder struct {
	m      sync.Mutex
	states []command.State
}

func (r *recorder) Listen(cmd interface{ State() command.State }) func() {
	return func() {
		r.m.Lock()
		defer r.m.Unlock()
		r.states = append(r.states, cmd.State())
	}
}

func (r *recorder) States() []command.State {
	r.m.Lock()
	defer r.m.Unlock()
	return append([]command.State{}, r.states...)
}

func TestCommand(t *testing.T) {
	s := testcase.NewSpec(t)

	var (
		value  = let.Int(s)
		action = testcase.Let(s, func(t *testcase.T) command.Action[string, int] {
			return func(ctx context.Context, arg string) (int, error) { return 0, nil }
		})
		cmd    = testcase.Let(s, func(t *testcase.T) *command.Command[string, int] {
			return command.New(action.Get(t))
		})
		rec    = testcase.Let(s, func(t *testcase.T) *recorder {
			r := &recorder{}
			sub := cmd.Get(t).Subscribe(r.Listen(cmd.Get(t)))
			t.Defer(sub.Unsubscribe)
			return r
		})
	)

	s.Before(func(t *testcase.T) {
		rec.Get(t) // eager subscription
	})

	s.Test("a new Command is idle", func(t *testcase.T) {
		c := cmd.Get(t)
		assert.Equal(t, command.Idle, c.State())
		assert.False(t, c.Running())
		assert.False(t, c.Completed())
		assert.False(t, c.HasError())
		assert.False(t, c.Result().IsSet())
	})

	s.Describe("#Invoke", func(s *testcase.Spec) {
		arg := let.String(s)
		act := func(t *testcase.T) {
			cmd.Get(t).Invoke(context.Background(), arg.Get(t))
		}

		s.When("the action succeeds", func(s *testcase.Spec) {
			action.Let(s, func(t *testcase.T) command.Action[string, int] {
				return func(ctx context.Context, got string) (int, error) {
					assert.Equal(t, arg.Get(t), got)
					return value.Get(t), nil
				}
			})

			s.Then("the Command completes with the produced value", func(t *testcase.T) {
				act(t)

				c := cmd.Get(t)
				assert.True(t, c.Completed())
				assert.False(t, c.HasError())
				assert.False(t, c.Running())
				assert.Equal(t, command.Succeeded, c.State())

				v, ok := c.Result().Value()
				assert.True(t, ok)
				assert.Equal(t, value.Get(t), v)
			})

			s.Then("listeners are notified exactly twice, on start and on completion", func(t *testcase.T) {
				act(t)

				assert.Equal(t, []command.State{command.Running, command.Succeeded}, rec.Get(t).States())
			})
		})

		s.When("the action fails", func(s *testcase.Spec) {
			expErr := let.Error(s)

			action.Let(s, func(t *testcase.T) command.Action[string, int] {
				return func(ctx context.Context, arg string) (int, error) {
					return 0, expErr.Get(t)
				}
			})

			s.Then("the error is captured instead of being propagated", func(t *testcase.T) {
				assert.NotPanic(t, func() { act(t) })

				c := cmd.Get(t)
				assert.True(t, c.HasError())
				assert.False(t, c.Completed())
				assert.False(t, c.Running())
				assert.Equal(t, command.Failed, c.State())
				assert.ErrorIs(t, expErr.Get(t), c.Result().Err())
			})

			s.Then("listeners are notified exactly twice", func(t *testcase.T) {
				act(t)

				assert.Equal(t, []command.State{command.Running, command.Failed}, rec.Get(t).States())
			})

			s.And("then it is invoked again with a succeeding action", func(s *testcase.Spec) {
				var fail = testcase.LetValue(s, true)

				action.Let(s, func(t *testcase.T) command.Action[string, int] {
					return func(ctx context.Context, arg string) (int, error) {
						if fail.Get(t) {
							return 0, expErr.Get(t)
						}
						return value.Get(t), nil
					}
				})

				s.Then("the previous failure is cleared on start and replaced by the success", func(t *testcase.T) {
					act(t)
					assert.True(t, cmd.Get(t).HasError())

					fail.Set(t, false)
					var resultAtStart []bool
					sub := cmd.Get(t).Subscribe(func() {
						if cmd.Get(t).Running() {
							resultAtStart = append(resultAtStart, cmd.Get(t).Result().IsSet())
						}
					})
					defer sub.Unsubscribe()

					act(t)
					assert.Equal(t, []bool{false}, resultAtStart)
					assert.True(t, cmd.Get(t).Completed())
					assert.False(t, cmd.Get(t).HasError())
				})
			})
		})

		s.When("the action panics", func(s *testcase.Spec) {
			action.Let(s, func(t *testcase.T) command.Action[string, int] {
				return func(ctx context.Context, arg string) (int, error) {
					panic("boom")
				}
			})

			s.Then("the panic is recorded as a failure", func(t *testcase.T) {
				assert.NotPanic(t, func() { act(t) })
				assert.True(t, cmd.Get(t).HasError())
				assert.ErrorIs(t, command.ErrPanic, cmd.Get(t).Result().Err())
				assert.Contains(t, cmd.Get(t).Result().Err().Error(), "boom")
			})
		})

		s.When("the Command has no action", func(s *testcase.Spec) {
			cmd.Let(s, func(t *testcase.T) *command.Command[string, int] {
				return &command.Command[string, int]{}
			})

			s.Then("invoking it records a failure", func(t *testcase.T) {
				act(t)
				assert.ErrorIs(t, command.ErrNoAction, cmd.Get(t).Result().Err())
			})
		})
	})

	s.Describe("#Start", func(s *testcase.Spec) {
		g := testcase.Let(s, func(t *testcase.T) *gate {
			return newGate(value.Get(t), nil)
		})
		action.Let(s, func(t *testcase.T) command.Action[string, int] {
			return g.Get(t).Action
		})

		s.Then("the Command is running right after Start returns", func(t *testcase.T) {
			done := cmd.Get(t).Start(context.Background(), t.Random.String())
			assert.True(t, cmd.Get(t).Running())
			assert.Equal(t, command.Running, cmd.Get(t).State())
			assert.False(t, cmd.Get(t).Result().IsSet())
			assert.Equal(t, []command.State{command.Running}, rec.Get(t).States())

			g.Get(t).Open()
			assert.Within(t, timeout, func(ctx context.Context) { <-done })

			assert.False(t, cmd.Get(t).Running())
			assert.True(t, cmd.Get(t).Completed())
			v, err := cmd.Get(t).Result().Get()
			assert.NoError(t, err)
			assert.Equal(t, value.Get(t), v)
		})

		s.When("the Command is invoked again before the first action resolves", func(s *testcase.Spec) {
			s.Then("the second call is dropped silently", func(t *testcase.T) {
				first := cmd.Get(t).Start(context.Background(), "first")
				notificationsBefore := len(rec.Get(t).States())

				second := cmd.Get(t).Start(context.Background(), "second")
				assert.Within(t, timeout, func(ctx context.Context) { <-second })
				cmd.Get(t).Invoke(context.Background(), "third")

				assert.Equal(t, notificationsBefore, len(rec.Get(t).States()))
				assert.True(t, cmd.Get(t).Running())

				g.Get(t).Open()
				assert.Within(t, timeout, func(ctx context.Context) { <-first })

				assert.Equal(t, 1, g.Get(t).Calls())
				assert.Equal(t, []command.State{command.Running, command.Succeeded}, rec.Get(t).States())
			})
		})

		s.Then("after completion the Command accepts a new invocation", func(t *testcase.T) {
			g.Get(t).Open()
			assert.Within(t, timeout, func(ctx context.Context) {
				<-cmd.Get(t).Start(context.Background(), "a")
				<-cmd.Get(t).Start(context.Background(), "b")
			})
			assert.Equal(t, 2, g.Get(t).Calls())
			assert.Equal(t, 4, len(rec.Get(t).States()))
		})
	})

	s.Describe("#Clear", func(s *testcase.Spec) {
		action.Let(s, func(t *testcase.T) command.Action[string, int] {
			return func(ctx context.Context, arg string) (int, error) { return value.Get(t), nil }
		})

		s.Then("it forgets the last outcome and notifies", func(t *testcase.T) {
			cmd.Get(t).Invoke(context.Background(), "")
			assert.True(t, cmd.Get(t).Completed())

			cmd.Get(t).Clear()
			assert.False(t, cmd.Get(t).Result().IsSet())
			assert.Equal(t, command.Idle, cmd.Get(t).State())
			assert.Equal(t, []command.State{command.Running, command.Succeeded, command.Idle}, rec.Get(t).States())
		})

		s.Then("without an outcome it does not notify", func(t *testcase.T) {
			cmd.Get(t).Clear()
			assert.Empty(t, rec.Get(t).States())
		})
	})
}

func TestCommand_concurrentInvocationRunsTheActionOnce(t *testing.T) {
	g := newGate(42, nil)
	cmd := command.New(g.Action)

	var notifications int32
	cmd.Subscribe(func() { atomic.AddInt32(&notifications, 1) })

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cmd.Invoke(context.Background(), "x")
		}()
	}

	assert.Eventually(t, timeout, func(it testing.TB) {
		assert.Equal(it, 1, g.Calls())
	})
	g.Open()
	assert.Within(t, timeout, func(ctx context.Context) { wg.Wait() })

	assert.Equal(t, 1, g.Calls())
	assert.Equal(t, int32(2), atomic.LoadInt32(&notifications))
	assert.True(t, cmd.Completed())
}

func TestCommand_networkErrorScenario(t *testing.T) {
	netErr := errors.New("network error")
	cmd := command.New(func(ctx context.Context, _ string) (int, error) {
		return 0, netErr
	})

	cmd.Invoke(context.Background(), "x")

	assert.True(t, cmd.HasError())
	assert.Equal(t, "network error", cmd.Result().Err().Error())
}

func TestNew0(t *testing.T) {
	var calls int
	cmd := command.New0(func(ctx context.Context) (string, error) {
		calls++
		return "ok", nil
	})

	cmd.Invoke(context.Background(), struct{}{})

	assert.Equal(t, 1, calls)
	v, ok := cmd.Result().Value()
	assert.True(t, ok)
	assert.Equal(t, "ok", v)
}

func TestCommand_Logger(t *testing.T) {
	l, out := logging.Stub(t)
	cmd := &command.Command[string, int]{
		Name:   "load-cart",
		Logger: l,
		Action: func(ctx context.Context, arg string) (int, error) {
			return 0, errors.New("out of stock")
		},
	}

	cmd.Invoke(context.Background(), "x")

	logs := out.String()
	assert.Contains(t, logs, "command started")
	assert.Contains(t, logs, "command failed")
	assert.Contains(t, logs, "load-cart")
	assert.Contains(t, logs, "out of stock")
	assert.Equal(t, 2, strings.Count(strings.TrimSpace(logs), "\n")+1)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", command.Idle.String())
	assert.Equal(t, "running", command.Running.String())
	assert.Equal(t, "succeeded", command.Succeeded.String())
	assert.Equal(t, "failed", command.Failed.String())
	assert.Equal(t, "unknown", command.State(42).String())
}

func TestCommand_onlyTheCommandNotifiesItsListeners(t *testing.T) {
	var c any = command.New(func(ctx context.Context, n int) (int, error) { return n, nil })

	_, ok := c.(listenable.Listenable)
	assert.True(t, ok)
	_, ok = c.(interface{ Notify() })
	assert.False(t, ok)
	_, ok = c.(interface{ Close() })
	assert.False(t, ok)
}

func TestCommand_unsubscribedListenerIsNotCalled(t *testing.T) {
	c := command.New(func(ctx context.Context, n int) (int, error) { return n, nil })
	var calls int
	sub := c.Subscribe(func() { calls++ })

	c.Invoke(context.Background(), 1)
	assert.Equal(t, 2, calls)

	sub.Unsubscribe()
	c.Invoke(context.Background(), 2)
	assert.Equal(t, 2, calls)
}
