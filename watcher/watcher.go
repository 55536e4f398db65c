package watcher

import (
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/delaneyj/observed/observer"
)

type Getter func() (any, error)
type Callback func(newValue, oldValue any)

// Watcher evaluates a getter under dependency tracking and re-runs it when
// anything it read changes. It is the subscriber side of the graph: it keeps
// the deps it registered with so it can drop stale edges after every run and
// all of them on Teardown.
type Watcher struct {
	sys    *observer.System
	id     uint64
	name   string
	getter Getter
	cb     Callback

	deep   bool
	lazy   bool
	dirty  bool
	active bool
	value  any

	// deps from the last completed evaluation
	deps   []*observer.Dep
	depIDs mapset.Set[uint64]
	// deps collected by the evaluation in progress
	newDeps   []*observer.Dep
	newDepIDs mapset.Set[uint64]
}

type Option func(*Watcher)

// Lazy defers evaluation until Value is called. Updates only mark the watcher
// dirty.
func Lazy() Option {
	return func(w *Watcher) {
		w.lazy = true
	}
}

// Deep traverses the getter's result so nested reads are tracked too.
func Deep() Option {
	return func(w *Watcher) {
		w.deep = true
	}
}

// OnChange is called after a re-run that produced a new value.
func OnChange(cb Callback) Option {
	return func(w *Watcher) {
		w.cb = cb
	}
}

func Named(name string) Option {
	return func(w *Watcher) {
		w.name = name
	}
}

// New creates a watcher and, unless it is lazy, evaluates it immediately.
func New(sys *observer.System, getter Getter, opts ...Option) *Watcher {
	w := &Watcher{
		sys:       sys,
		id:        observer.NextID(),
		getter:    getter,
		active:    true,
		depIDs:    mapset.NewThreadUnsafeSet[uint64](),
		newDepIDs: mapset.NewThreadUnsafeSet[uint64](),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.name == "" {
		w.name = fmt.Sprintf("watcher#%d", w.id)
	}

	w.dirty = w.lazy
	if !w.lazy {
		w.value = w.Get()
	}
	return w
}

func (w *Watcher) ID() uint64 {
	return w.id
}

func (w *Watcher) Name() string {
	return w.name
}

func (w *Watcher) Active() bool {
	return w.active
}

func (w *Watcher) Dirty() bool {
	return w.dirty
}

// Get runs the getter with the watcher as the active subscriber and re-collects
// its dependencies. A getter error is reported to the system and the previous
// value is kept.
func (w *Watcher) Get() any {
	defer w.cleanupDeps()

	value := w.value
	err := w.sys.DependWith(w, func() error {
		v, err := w.getter()
		if err != nil {
			return err
		}
		if w.deep {
			traverse(v)
		}
		value = v
		return nil
	})
	if err != nil {
		w.sys.HandleError(w, fmt.Errorf("error while evaluating %s: %w", w.name, err))
	}
	return value
}

// AddDep records dep for the evaluation in progress. Reading the same field
// twice is a set lookup, and the dep side is only touched for new edges.
func (w *Watcher) AddDep(dep *observer.Dep) {
	id := dep.ID()
	if !w.newDepIDs.Add(id) {
		return
	}
	w.newDeps = append(w.newDeps, dep)
	if !w.depIDs.Contains(id) {
		dep.AddSub(w)
	}
}

// cleanupDeps removes the edges the last evaluation did not use and promotes
// the new dependency set.
func (w *Watcher) cleanupDeps() {
	for _, dep := range w.deps {
		if !w.newDepIDs.Contains(dep.ID()) {
			dep.RemoveSub(w)
		}
	}

	w.depIDs, w.newDepIDs = w.newDepIDs, w.depIDs
	w.newDepIDs.Clear()

	old := w.deps
	w.deps = w.newDeps
	clear(old)
	w.newDeps = old[:0]
}

// Update is called by a dep when something the watcher read has changed.
func (w *Watcher) Update() {
	if w.lazy {
		w.dirty = true
		return
	}
	w.Run()
}

// Run re-evaluates and invokes the change callback. Containers always count
// as changed since they may have been mutated in place.
func (w *Watcher) Run() {
	if !w.active {
		return
	}
	value := w.Get()
	if observer.SameValue(value, w.value) && !observer.IsContainer(value) && !w.deep {
		return
	}
	oldValue := w.value
	w.value = value
	if w.cb != nil {
		w.cb(value, oldValue)
	}
}

// Evaluate recomputes a lazy watcher's value.
func (w *Watcher) Evaluate() {
	w.value = w.Get()
	w.dirty = false
}

// Depend registers the active subscriber with every dep of this watcher, so a
// watcher reading a lazy one ends up depending on its sources.
func (w *Watcher) Depend() {
	for _, dep := range w.deps {
		dep.Depend()
	}
}

// Value returns the current value, evaluating a dirty lazy watcher first.
// Called while another subscriber is active, it forwards the dependencies.
func (w *Watcher) Value() any {
	if w.lazy && w.dirty {
		w.Evaluate()
	}
	if w.sys.Target() != nil {
		w.Depend()
	}
	return w.value
}

// Deps returns the deps collected by the last evaluation.
func (w *Watcher) Deps() []*observer.Dep {
	out := make([]*observer.Dep, len(w.deps))
	copy(out, w.deps)
	return out
}

// Teardown removes the watcher from every dep it subscribed to.
func (w *Watcher) Teardown() {
	if !w.active {
		return
	}
	for _, dep := range w.deps {
		dep.RemoveSub(w)
	}
	clear(w.deps)
	w.deps = w.deps[:0]
	w.depIDs.Clear()
	w.active = false
}
