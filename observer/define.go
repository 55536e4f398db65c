package observer

import (
	mapset "github.com/deckarep/golang-set/v2"
)

type fieldConfig struct {
	value        any
	hasValue     bool
	shallow      bool
	customSetter func()
}

type FieldOption func(*fieldConfig)

// WithValue gives the field an explicit initial value instead of reading the
// key's current one.
func WithValue(v any) FieldOption {
	return func(c *fieldConfig) {
		c.value = v
		c.hasValue = true
	}
}

// Shallow stops the field's value from being observed.
func Shallow() FieldOption {
	return func(c *fieldConfig) {
		c.shallow = true
	}
}

// WithCustomSetter registers a hook called before every effective write,
// typically to warn about writes that should not happen.
func WithCustomSetter(fn func()) FieldOption {
	return func(c *fieldConfig) {
		c.customSetter = fn
	}
}

// DefineReactive converts key of obj into a tracked accessor. Reads register
// the active subscriber, writes of a different value notify every subscriber
// that read the key. A locked key is left alone and reported.
func (s *System) DefineReactive(obj *Object, key string, opts ...FieldOption) {
	if obj == nil {
		s.warn("cannot define reactive property %q on a nil object", key)
		return
	}
	var cfg fieldConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if !s.defineReactive(obj, key, cfg) {
		s.warn("cannot define reactive property %q: the key is locked or the object is not extensible", key)
	}
}

func (s *System) defineReactive(obj *Object, key string, cfg fieldConfig) bool {
	prop := obj.prop(key)
	if prop != nil && prop.locked {
		return false
	}
	if prop == nil && !obj.Extensible() {
		return false
	}

	dep := newDep(s, key)

	// keep any user accessors, the reactive pair wraps them
	var getter func() any
	var setter func(any)
	if prop != nil {
		getter, setter = prop.get, prop.set
	}

	val := cfg.value
	if !cfg.hasValue && prop != nil && (getter == nil || setter != nil) {
		val = obj.Get(key)
	}

	var childOb *Observer
	if !cfg.shallow {
		childOb = s.Observe(val)
	}

	reactiveGetter := func() any {
		value := val
		if getter != nil {
			value = getter()
		}
		if s.target != nil {
			dep.Depend()
			if childOb != nil {
				childOb.dep.Depend()
				if arr, ok := value.(*Array); ok && arr != nil {
					dependArray(arr)
				}
			}
		}
		return value
	}

	reactiveSetter := func(newVal any) {
		value := val
		if getter != nil {
			value = getter()
		}
		if SameValue(newVal, value) {
			return
		}
		if cfg.customSetter != nil {
			cfg.customSetter()
		}
		// accessor without a setter is read-only
		if getter != nil && setter == nil {
			return
		}
		if setter != nil {
			setter(newVal)
		} else {
			val = newVal
		}
		childOb = nil
		if !cfg.shallow {
			childOb = s.Observe(newVal)
		}
		dep.Notify()
	}

	return obj.define(key, &property{
		get: reactiveGetter,
		set: reactiveSetter,
	})
}

// dependArray registers the active subscriber with the structural dep of
// every observed element, since element reads cannot be intercepted.
func dependArray(arr *Array) {
	dependElements(arr, mapset.NewThreadUnsafeSet[*Array]())
}

func dependElements(arr *Array, seen mapset.Set[*Array]) {
	if !seen.Add(arr) {
		return
	}
	for _, e := range arr.items {
		if c, ok := AsContainer(e); ok {
			if ob := c.Observer(); ob != nil {
				ob.dep.Depend()
			}
		}
		if inner, ok := e.(*Array); ok && inner != nil {
			dependElements(inner, seen)
		}
	}
}
