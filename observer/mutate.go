package observer

import (
	"math"
	"strconv"
)

// MaxArrayIndex is the largest index Set and Delete accept on an array, and
// the largest index SetAt will grow an array to.
const MaxArrayIndex = 1<<24 - 1

// Set assigns key on target so that the change is tracked even when the key
// did not exist when target was observed. Array targets take a non-negative
// index, object targets a string key. It returns val.
func (s *System) Set(target Container, key any, val any) any {
	c, ok := AsContainer(target)
	if !ok {
		s.warn("cannot set reactive property %v on a nil or plain value", key)
		return val
	}

	switch t := c.(type) {
	case *Array:
		idx, ok := arrayIndex(key)
		if !ok {
			s.warn("cannot set %v on an array: not a valid index", key)
			return val
		}
		t.SetLength(max(t.Len(), idx))
		t.Splice(idx, 1, val)
		return val

	case *Object:
		k, ok := key.(string)
		if !ok {
			s.warn("cannot set %v on an object: keys must be strings", key)
			return val
		}
		if t.Has(k) {
			t.Set(k, val)
			return val
		}
		ob := t.Observer()
		if t.IsRaw() || (ob != nil && ob.vmCount > 0) {
			s.warn("avoid adding reactive property %q to a raw object or root data at runtime, declare it upfront", k)
			t.Set(k, val)
			return val
		}
		if ob == nil {
			t.Set(k, val)
			return val
		}
		if !s.defineReactive(t, k, fieldConfig{value: val, hasValue: true}) {
			s.warn("cannot add reactive property %q: the object is not extensible", k)
			return val
		}
		ob.dep.Notify()
	}
	return val
}

// Delete removes key from target and notifies the container's structural dep.
// Deleting a missing key does nothing. Keys of root data and raw objects are
// left in place.
func (s *System) Delete(target Container, key any) {
	c, ok := AsContainer(target)
	if !ok {
		s.warn("cannot delete reactive property %v on a nil or plain value", key)
		return
	}

	switch t := c.(type) {
	case *Array:
		idx, ok := arrayIndex(key)
		if !ok {
			s.warn("cannot delete %v on an array: not a valid index", key)
			return
		}
		if idx >= t.Len() {
			return
		}
		t.Splice(idx, 1)

	case *Object:
		k, ok := key.(string)
		if !ok {
			s.warn("cannot delete %v on an object: keys must be strings", key)
			return
		}
		if !t.Has(k) {
			return
		}
		ob := t.Observer()
		if t.IsRaw() || (ob != nil && ob.vmCount > 0) {
			s.warn("avoid deleting property %q on a raw object or root data, set it to nil instead", k)
			return
		}
		if !t.Delete(k) {
			s.warn("cannot delete locked property %q", k)
			return
		}
		if ob == nil {
			return
		}
		ob.dep.Notify()
	}
}

// arrayIndex accepts integers, integral floats and decimal strings in
// [0, MaxArrayIndex].
func arrayIndex(key any) (int, bool) {
	var n int
	switch k := key.(type) {
	case int:
		n = k
	case int8:
		n = int(k)
	case int16:
		n = int(k)
	case int32:
		n = int(k)
	case int64:
		n = int(k)
	case uint:
		n = int(k)
	case uint8:
		n = int(k)
	case uint16:
		n = int(k)
	case uint32:
		n = int(k)
	case uint64:
		if k > MaxArrayIndex {
			return 0, false
		}
		n = int(k)
	case float32:
		return floatIndex(float64(k))
	case float64:
		return floatIndex(k)
	case string:
		v, err := strconv.Atoi(k)
		if err != nil {
			return 0, false
		}
		n = v
	default:
		return 0, false
	}
	return n, n >= 0 && n <= MaxArrayIndex
}

func floatIndex(f float64) (int, bool) {
	if math.IsNaN(f) || f != math.Floor(f) || f < 0 || f > MaxArrayIndex {
		return 0, false
	}
	return int(f), true
}
