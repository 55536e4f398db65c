package observer_test

import (
	"cmp"
	"testing"

	"github.com/delaneyj/observed/observer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// trackArray observes arr and returns a recorder depending on its structural
// dep.
func trackArray(t *testing.T, sys *observer.System, arr *observer.Array) *recorder {
	t.Helper()
	ob := sys.Observe(arr)
	require.NotNil(t, ob)
	r := newRecorder(sys)
	r.track(func() { ob.Dep().Depend() })
	return r
}

func TestArrayPushNotifiesOnce(t *testing.T) {
	sys := newTestSystem(nil)
	arr := observer.NewArray(1, 2, 3)
	r := trackArray(t, sys, arr)

	n := arr.Push(4)
	assert.Equal(t, 4, n)
	assert.Equal(t, 1, r.updates)
	assert.Equal(t, []any{1, 2, 3, 4}, arr.Items())
}

func TestArrayPushObservesInsertedContainers(t *testing.T) {
	sys := newTestSystem(nil)
	arr := observer.NewArray(1, 2, 3)
	r := trackArray(t, sys, arr)

	obj := observer.FromMap(map[string]any{"x": 1})
	arr.Push(obj)
	assert.Equal(t, 1, r.updates)
	assert.NotNil(t, obj.Observer())
}

func TestArrayMutatorsNotify(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(a *observer.Array)
		want   []any
	}{
		{"pop", func(a *observer.Array) { assert.Equal(t, 3, a.Pop()) }, []any{1, 2}},
		{"shift", func(a *observer.Array) { assert.Equal(t, 1, a.Shift()) }, []any{2, 3}},
		{"unshift", func(a *observer.Array) { assert.Equal(t, 5, a.Unshift(-1, 0)) }, []any{-1, 0, 1, 2, 3}},
		{"splice", func(a *observer.Array) {
			assert.Equal(t, []any{2}, a.Splice(1, 1, "a", "b"))
		}, []any{1, "a", "b", 3}},
		{"sort", func(a *observer.Array) {
			a.Sort(func(x, y any) int { return cmp.Compare(y.(int), x.(int)) })
		}, []any{3, 2, 1}},
		{"reverse", func(a *observer.Array) { a.Reverse() }, []any{3, 2, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := newTestSystem(nil)
			arr := observer.NewArray(1, 2, 3)
			r := trackArray(t, sys, arr)

			tt.mutate(arr)
			assert.Equal(t, 1, r.updates)
			assert.Equal(t, tt.want, arr.Items())
		})
	}
}

func TestArrayUnshiftAndSpliceObserveInserted(t *testing.T) {
	sys := newTestSystem(nil)
	arr := observer.NewArray()
	sys.Observe(arr)

	a := observer.NewObject()
	b := observer.NewArray()
	arr.Unshift(a)
	arr.Splice(0, 0, b)
	assert.NotNil(t, a.Observer())
	assert.NotNil(t, b.Observer())
}

func TestArrayMutationOnEmptyStillNotifies(t *testing.T) {
	sys := newTestSystem(nil)
	arr := observer.NewArray()
	r := trackArray(t, sys, arr)

	assert.Nil(t, arr.Pop())
	assert.Nil(t, arr.Shift())
	assert.Equal(t, 2, r.updates)
}

func TestArrayInterceptionIsPerInstance(t *testing.T) {
	sys := newTestSystem(nil)
	watched := observer.NewArray(1)
	r := trackArray(t, sys, watched)

	plain := observer.NewArray(1)
	plain.Push(2)
	plain.Reverse()
	assert.Nil(t, plain.Observer())
	assert.Equal(t, 0, r.updates)

	watched.Push(2)
	assert.Equal(t, 1, r.updates)
}

func TestArrayIndexWritesAreNotTracked(t *testing.T) {
	sys := newTestSystem(nil)
	arr := observer.NewArray(1, 2)
	r := trackArray(t, sys, arr)

	arr.SetAt(0, 10)
	arr.SetAt(4, 50)
	arr.SetLength(1)
	assert.Equal(t, 0, r.updates)
	assert.Equal(t, []any{10}, arr.Items())
}

func TestArraySetAtGrows(t *testing.T) {
	arr := observer.NewArray()
	arr.SetAt(2, "c")
	assert.Equal(t, []any{nil, nil, "c"}, arr.Items())
	assert.Nil(t, arr.At(0))
	assert.Nil(t, arr.At(-1))
	assert.Nil(t, arr.At(3))
	assert.Equal(t, "c", arr.At(2))
}

func TestArraySpliceBounds(t *testing.T) {
	tests := []struct {
		name        string
		start       int
		deleteCount int
		removed     []any
		want        []any
	}{
		{"negative start", -1, 1, []any{4}, []any{1, 2, 3}},
		{"start past end", 10, 2, []any{}, []any{1, 2, 3, 4}},
		{"large negative start", -10, 1, []any{1}, []any{2, 3, 4}},
		{"delete count clamped", 2, 10, []any{3, 4}, []any{1, 2}},
		{"negative delete count", 1, -3, []any{}, []any{1, 2, 3, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			arr := observer.NewArray(1, 2, 3, 4)
			assert.Equal(t, tt.removed, arr.Splice(tt.start, tt.deleteCount))
			assert.Equal(t, tt.want, arr.Items())
		})
	}
}

func TestArraySortDefaultsToStringOrder(t *testing.T) {
	arr := observer.NewArray(10, 9, 1)
	arr.Sort(nil)
	assert.Equal(t, []any{1, 10, 9}, arr.Items())
}

func TestNewArrayCopiesItems(t *testing.T) {
	items := []any{1, 2}
	arr := observer.NewArray(items...)
	items[0] = 100
	assert.Equal(t, 1, arr.At(0))

	out := arr.Items()
	out[1] = 200
	assert.Equal(t, 2, arr.At(1))
}
