// Package listenable provides a change notifier,
// the observable half of the MVVM view-state objects.
//
// A Notifier keeps an ordered list of subscribed callbacks.
// Notify calls every callback that was subscribed when Notify started,
// skipping those which got unsubscribed in the meantime.
package listenable

import (
	"sync"
	"sync/atomic"
)

// Listenable is implemented by anything that can be observed for changes.
type Listenable interface {
	Subscribe(listener func()) *Subscription
}

// Notifier is a Listenable that is notified explicitly by its owner.
// The zero value is ready to use.
// A Notifier must not be copied after first use.
type Notifier struct {
	m      sync.Mutex
	subs   []*Subscription
	closed bool
}

// Subscription is the handle of a single listener registered on a Notifier.
type Subscription struct {
	notifier *Notifier
	listener func()
	active   atomic.Bool
}

// Unsubscribe detaches the listener from its Notifier.
// Calling it more than once is a no-op.
func (s *Subscription) Unsubscribe() {
	if s == nil || !s.active.CompareAndSwap(true, false) {
		return
	}
	if s.notifier != nil {
		s.notifier.remove(s)
	}
}

// Active reports whether the Subscription still receives notifications.
func (s *Subscription) Active() bool {
	return s != nil && s.active.Load()
}

// Subscribe appends the listener to the end of the notification order.
// A nil listener, or a Subscribe on a closed Notifier, returns an inactive Subscription.
func (n *Notifier) Subscribe(listener func()) *Subscription {
	sub := &Subscription{notifier: n, listener: listener}
	if listener == nil {
		return sub
	}
	n.m.Lock()
	defer n.m.Unlock()
	if n.closed {
		return sub
	}
	sub.active.Store(true)
	n.subs = append(n.subs, sub)
	return sub
}

// Notify calls the active listeners in subscription order.
// Listeners are called without holding the Notifier's lock,
// so they may subscribe, unsubscribe or notify again.
func (n *Notifier) Notify() {
	for _, sub := range n.snapshot() {
		if !sub.active.Load() {
			continue
		}
		sub.listener()
	}
}

// Len returns the number of active subscriptions.
func (n *Notifier) Len() int {
	n.m.Lock()
	defer n.m.Unlock()
	return len(n.subs)
}

// Close unsubscribes every listener and makes further Subscribe calls inert.
func (n *Notifier) Close() {
	n.m.Lock()
	subs := n.subs
	n.subs = nil
	n.closed = true
	n.m.Unlock()
	for _, sub := range subs {
		sub.active.Store(false)
	}
}

func (n *Notifier) snapshot() []*Subscription {
	n.m.Lock()
	defer n.m.Unlock()
	if len(n.subs) == 0 {
		return nil
	}
	out := make([]*Subscription, len(n.subs))
	copy(out, n.subs)
	return out
}

func (n *Notifier) remove(sub *Subscription) {
	n.m.Lock()
	defer n.m.Unlock()
	for i, s := range n.subs {
		if s == sub {
			n.subs = append(n.subs[:i:i], n.subs[i+1:]...)
			return
		}
	}
}
