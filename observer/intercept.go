package observer

// observedArray decorates the mutators of a single observed array: run the
// plain operation, observe what was inserted, then fire the structural dep.
type observedArray struct {
	ob   *Observer
	base mutator
}

func (m *observedArray) push(a *Array, items []any) int {
	n := m.base.push(a, items)
	m.ob.observeArray(items)
	m.ob.dep.Notify()
	return n
}

func (m *observedArray) pop(a *Array) any {
	v := m.base.pop(a)
	m.ob.dep.Notify()
	return v
}

func (m *observedArray) shift(a *Array) any {
	v := m.base.shift(a)
	m.ob.dep.Notify()
	return v
}

func (m *observedArray) unshift(a *Array, items []any) int {
	n := m.base.unshift(a, items)
	m.ob.observeArray(items)
	m.ob.dep.Notify()
	return n
}

func (m *observedArray) splice(a *Array, start, deleteCount int, items []any) []any {
	removed := m.base.splice(a, start, deleteCount, items)
	m.ob.observeArray(items)
	m.ob.dep.Notify()
	return removed
}

func (m *observedArray) sort(a *Array, compare func(x, y any) int) {
	m.base.sort(a, compare)
	m.ob.dep.Notify()
}

func (m *observedArray) reverse(a *Array) {
	m.base.reverse(a)
	m.ob.dep.Notify()
}
