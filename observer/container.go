package observer

// Container is a value the engine can observe: an *Object or an *Array.
// Every other Go value is plain and passes through untouched.
type Container interface {
	// Observer returns the observer attached to the container, or nil.
	Observer() *Observer
	// Extensible reports whether new keys or elements may still be added.
	Extensible() bool
	// IsRaw reports whether the container was excluded from observation.
	IsRaw() bool

	state() *containerState
}

// containerState is the tagged observed/unobserved state embedded in every
// container.
type containerState struct {
	ob     *Observer
	sealed bool
	raw    bool
}

func (c *containerState) state() *containerState {
	return c
}

func (c *containerState) Observer() *Observer {
	return c.ob
}

func (c *containerState) Extensible() bool {
	return !c.sealed
}

// PreventExtensions makes the container ineligible for observation and, for
// objects, stops new keys from being added.
func (c *containerState) PreventExtensions() {
	c.sealed = true
}

// MarkRaw excludes the container from observation. It has no effect on a
// container that is already observed.
func (c *containerState) MarkRaw() {
	c.raw = true
}

func (c *containerState) IsRaw() bool {
	return c.raw
}

// AsContainer unwraps v into a container, treating typed nil pointers as
// plain values.
func AsContainer(v any) (Container, bool) {
	switch c := v.(type) {
	case *Object:
		if c == nil {
			return nil, false
		}
		return c, true
	case *Array:
		if c == nil {
			return nil, false
		}
		return c, true
	}
	return nil, false
}

// IsContainer reports whether v is a non-nil *Object or *Array.
func IsContainer(v any) bool {
	_, ok := AsContainer(v)
	return ok
}
