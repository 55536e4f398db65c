package observer

const (
	objectLabel = "<object>"
	arrayLabel  = "<array>"
)

// Observer is attached to each observed container. It owns the structural dep
// that fires when keys are added or removed, or when an array is mutated.
type Observer struct {
	sys   *System
	value Container
	dep   *Dep
	// number of roots that use this container as their root data
	vmCount int
}

// Value returns the observed container.
func (ob *Observer) Value() Container {
	return ob.value
}

// Dep returns the structural dep of the container.
func (ob *Observer) Dep() *Dep {
	return ob.dep
}

// VMCount returns how many roots use the container as their root data.
func (ob *Observer) VMCount() int {
	return ob.vmCount
}

// Observe attaches an observer to v and returns it. A container that is
// already observed returns its existing observer. Plain values, raw or
// non-extensible containers, and any container while observation is
// disabled, return nil.
func (s *System) Observe(v any) *Observer {
	return s.observe(v, false)
}

// ObserveRoot observes v as the root data of a root and counts it. Adding or
// deleting keys on root data with Set or Delete is reported as misuse.
func (s *System) ObserveRoot(v any) *Observer {
	return s.observe(v, true)
}

// Observable observes c and returns it, for inline use.
func Observable[C Container](s *System, c C) C {
	s.Observe(c)
	return c
}

func (s *System) observe(v any, asRoot bool) *Observer {
	c, ok := AsContainer(v)
	if !ok {
		return nil
	}

	ob := c.Observer()
	if ob == nil && s.observing && c.Extensible() && !c.IsRaw() {
		ob = s.newObserver(c)
	}
	if asRoot && ob != nil {
		ob.vmCount++
	}
	return ob
}

func (s *System) newObserver(c Container) *Observer {
	ob := &Observer{
		sys:   s,
		value: c,
	}

	// tag before walking so cycles find the observer instead of recursing
	c.state().ob = ob

	switch v := c.(type) {
	case *Array:
		ob.dep = newDep(s, arrayLabel)
		v.m = &observedArray{
			ob:   ob,
			base: v.mutator(),
		}
		ob.observeArray(v.items)
	case *Object:
		ob.dep = newDep(s, objectLabel)
		ob.walk(v)
	}
	return ob
}

// walk makes every own key of obj reactive.
func (ob *Observer) walk(obj *Object) {
	for _, key := range obj.Keys() {
		ob.sys.defineReactive(obj, key, fieldConfig{})
	}
}

// observeArray observes each element that is a container.
func (ob *Observer) observeArray(items []any) {
	for _, item := range items {
		ob.sys.Observe(item)
	}
}
