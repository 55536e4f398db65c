package observer

import (
	"errors"
	"fmt"
	"log"
)

// ErrSubscriberPanic wraps a value recovered from a subscriber's Update.
var ErrSubscriberPanic = errors.New("subscriber panicked during update")

type OnErrorFunc func(from Subscriber, err error)
type WarnFunc func(msg string)

// System holds the state shared by every container it observes: the active
// subscriber slot, the observation switch and the diagnostic sinks.
//
// A System is not safe for concurrent use. Reads, writes and tracked
// evaluations against the containers of one System must happen on one
// goroutine at a time.
type System struct {
	// It says what the current subscriber is, depending on the call stack, if any
	target Subscriber
	// Previous targets, restored in LIFO order as nested evaluations return
	targetStack []Subscriber

	// Whether Observe is allowed to attach new observers
	observing bool

	silent        bool
	orderedNotify bool
	onWarn        WarnFunc
	onError       OnErrorFunc
}

type Option func(*System)

// WithSilent suppresses misuse warnings.
func WithSilent(silent bool) Option {
	return func(s *System) {
		s.silent = silent
	}
}

// WithWarnHandler replaces the default log based warning sink.
func WithWarnHandler(fn WarnFunc) Option {
	return func(s *System) {
		s.onWarn = fn
	}
}

// WithErrorHandler receives errors raised while notifying subscribers.
func WithErrorHandler(fn OnErrorFunc) Option {
	return func(s *System) {
		s.onError = fn
	}
}

// WithOrderedNotify makes Dep.Notify call subscribers in creation order
// instead of registration order, so a parent created before its child is
// always updated first.
func WithOrderedNotify(ordered bool) Option {
	return func(s *System) {
		s.orderedNotify = ordered
	}
}

func NewSystem(opts ...Option) *System {
	s := &System{
		observing: true,
		onWarn: func(msg string) {
			log.Printf("[observed warn]: %s", msg)
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var defaultSystem = NewSystem()

// Default returns the process wide System used by callers that do not need
// isolation.
func Default() *System {
	return defaultSystem
}

// SetObserving toggles whether new containers can be observed. Containers
// that already carry an observer are unaffected.
func (s *System) SetObserving(enabled bool) {
	s.observing = enabled
}

func (s *System) Observing() bool {
	return s.observing
}

// HandleError reports err on behalf of a subscriber. Without a configured
// handler the error is logged.
func (s *System) HandleError(from Subscriber, err error) {
	if err == nil {
		return
	}
	if s.onError != nil {
		s.onError(from, err)
		return
	}
	if from != nil {
		log.Printf("[observed error]: subscriber %d: %v", from.ID(), err)
		return
	}
	log.Printf("[observed error]: %v", err)
}

func (s *System) warn(format string, args ...any) {
	if s.silent || s.onWarn == nil {
		return
	}
	s.onWarn(fmt.Sprintf(format, args...))
}

// update isolates one subscriber so a panic cannot stop the rest of a
// notification pass.
func (s *System) update(sub Subscriber) {
	defer func() {
		if r := recover(); r != nil {
			s.HandleError(sub, fmt.Errorf("%w: %v", ErrSubscriberPanic, r))
		}
	}()
	sub.Update()
}
