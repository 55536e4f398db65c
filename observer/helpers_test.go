package observer_test

import (
	"github.com/delaneyj/observed/observer"
)

// recorder is a minimal subscriber that counts updates.
type recorder struct {
	id       uint64
	sys      *observer.System
	seen     map[uint64]bool
	deps     []*observer.Dep
	updates  int
	onUpdate func()
}

func newRecorder(sys *observer.System) *recorder {
	return &recorder{
		id:   observer.NextID(),
		sys:  sys,
		seen: map[uint64]bool{},
	}
}

func (r *recorder) ID() uint64 {
	return r.id
}

func (r *recorder) AddDep(dep *observer.Dep) {
	if r.seen[dep.ID()] {
		return
	}
	r.seen[dep.ID()] = true
	r.deps = append(r.deps, dep)
	dep.AddSub(r)
}

func (r *recorder) Update() {
	r.updates++
	if r.onUpdate != nil {
		r.onUpdate()
	}
}

func (r *recorder) track(fn func()) {
	r.sys.DependWith(r, func() error {
		fn()
		return nil
	})
}

func newTestSystem(warnings *[]string) *observer.System {
	return observer.NewSystem(observer.WithWarnHandler(func(msg string) {
		if warnings != nil {
			*warnings = append(*warnings, msg)
		}
	}))
}
