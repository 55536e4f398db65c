package observer

import (
	"cmp"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
)

// Subscriber is anything that can depend on a Dep and be told to re-run.
type Subscriber interface {
	// ID identifies the subscriber for de-duplication and ordering.
	ID() uint64
	// AddDep is called by Dep.Depend while the subscriber is active. The
	// subscriber records the dep in its own set and calls dep.AddSub when the
	// edge is new.
	AddDep(dep *Dep)
	// Update is called when a dep the subscriber registered with changes.
	Update()
}

// Dep is a publish point. One exists per reactive field and one per observed
// container for structural changes.
type Dep struct {
	sys   *System
	id    uint64
	label string

	// Subscribers in registration order
	subs []Subscriber
	// Subscriber ids, so registering twice is a no-op without a scan
	members mapset.Set[uint64]
}

func newDep(sys *System, label string) *Dep {
	return &Dep{
		sys:     sys,
		id:      NextID(),
		label:   label,
		members: mapset.NewThreadUnsafeSet[uint64](),
	}
}

func (d *Dep) ID() uint64 {
	return d.id
}

// Label names what the dep tracks: a field key, or a structural marker for
// container deps.
func (d *Dep) Label() string {
	return d.label
}

// AddSub registers sub. Registering an existing subscriber does nothing.
func (d *Dep) AddSub(sub Subscriber) {
	if sub == nil || !d.members.Add(sub.ID()) {
		return
	}
	d.subs = append(d.subs, sub)
}

// RemoveSub drops the edge to sub. Subscribers call this when they stop
// depending on the dep.
func (d *Dep) RemoveSub(sub Subscriber) {
	if sub == nil {
		return
	}
	id := sub.ID()
	if !d.members.Contains(id) {
		return
	}
	d.members.Remove(id)
	d.subs = slices.DeleteFunc(d.subs, func(s Subscriber) bool {
		return s.ID() == id
	})
}

// HasSub reports whether a subscriber with the given id is registered.
func (d *Dep) HasSub(id uint64) bool {
	return d.members.Contains(id)
}

// Subs returns a copy of the registered subscribers in registration order.
func (d *Dep) Subs() []Subscriber {
	return slices.Clone(d.subs)
}

func (d *Dep) Len() int {
	return len(d.subs)
}

// Depend registers the active subscriber, if any, with this dep.
func (d *Dep) Depend() {
	if t := d.sys.target; t != nil {
		t.AddDep(d)
	}
}

// Notify calls Update on every subscriber. The list is copied first since
// updates are free to add or remove subscribers on this very dep.
func (d *Dep) Notify() {
	subs := slices.Clone(d.subs)
	if d.sys.orderedNotify {
		slices.SortStableFunc(subs, func(a, b Subscriber) int {
			return cmp.Compare(a.ID(), b.ID())
		})
	}
	for _, sub := range subs {
		d.sys.update(sub)
	}
}
