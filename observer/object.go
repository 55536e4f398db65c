package observer

import (
	"slices"
	"sort"
)

// Descriptor describes one key of an Object. A descriptor with Get or Set is
// an accessor, otherwise it holds Value.
type Descriptor struct {
	Value any
	Get   func() any
	Set   func(any)
	// Locked keys cannot be redefined or deleted, and are skipped when the
	// object is observed.
	Locked bool
}

type property struct {
	value    any
	get      func() any
	set      func(any)
	locked   bool
	readonly bool
}

// Object is a keyed container with string keys kept in insertion order.
type Object struct {
	containerState

	keys   []string
	props  map[string]*property
	frozen bool
}

func NewObject() *Object {
	return &Object{
		props: map[string]*property{},
	}
}

// FromMap builds an Object from m. Go maps are unordered, so keys are added in
// sorted order.
func FromMap(m map[string]any) *Object {
	o := NewObject()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		o.Set(k, m[k])
	}
	return o
}

// Get reads key, going through its accessor when it has one. Missing keys
// read as nil.
func (o *Object) Get(key string) any {
	v, _ := o.Lookup(key)
	return v
}

func (o *Object) Lookup(key string) (any, bool) {
	p, ok := o.props[key]
	if !ok {
		return nil, false
	}
	if p.get != nil {
		return p.get(), true
	}
	return p.value, true
}

// Set assigns key. Existing keys go through their setter, so writing a
// reactive key notifies its subscribers. New keys are added as plain values
// and are not tracked; use System.Set for that.
func (o *Object) Set(key string, v any) {
	p, ok := o.props[key]
	if !ok {
		if !o.Extensible() {
			return
		}
		o.keys = append(o.keys, key)
		o.props[key] = &property{value: v}
		return
	}
	switch {
	case p.set != nil:
		p.set(v)
	case p.get != nil, p.readonly:
		// read-only, the write is dropped
	default:
		p.value = v
	}
}

func (o *Object) Has(key string) bool {
	_, ok := o.props[key]
	return ok
}

// Keys returns the own keys in insertion order.
func (o *Object) Keys() []string {
	return slices.Clone(o.keys)
}

func (o *Object) Len() int {
	return len(o.keys)
}

// Delete removes key without notifying anyone. It returns false when the key
// is locked.
func (o *Object) Delete(key string) bool {
	p, ok := o.props[key]
	if !ok {
		return true
	}
	if p.locked {
		return false
	}
	delete(o.props, key)
	o.keys = slices.DeleteFunc(o.keys, func(k string) bool {
		return k == key
	})
	return true
}

// DefineProperty creates or replaces key. It fails on locked keys and on new
// keys of a non-extensible object.
func (o *Object) DefineProperty(key string, d Descriptor) bool {
	return o.define(key, &property{
		value:  d.Value,
		get:    d.Get,
		set:    d.Set,
		locked: d.Locked,
	})
}

// Descriptor returns the current descriptor of key.
func (o *Object) Descriptor(key string) (Descriptor, bool) {
	p, ok := o.props[key]
	if !ok {
		return Descriptor{}, false
	}
	return Descriptor{
		Value:  p.value,
		Get:    p.get,
		Set:    p.set,
		Locked: p.locked,
	}, true
}

// Freeze locks every key, makes data keys read-only and prevents extensions.
func (o *Object) Freeze() {
	o.frozen = true
	o.PreventExtensions()
	for _, p := range o.props {
		p.locked = true
		p.readonly = true
	}
}

func (o *Object) IsFrozen() bool {
	return o.frozen
}

func (o *Object) prop(key string) *property {
	return o.props[key]
}

func (o *Object) define(key string, p *property) bool {
	existing, ok := o.props[key]
	if ok {
		if existing.locked {
			return false
		}
		o.props[key] = p
		return true
	}
	if !o.Extensible() {
		return false
	}
	o.keys = append(o.keys, key)
	o.props[key] = p
	return true
}
