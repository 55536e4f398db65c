package observer

// Target returns the subscriber currently collecting dependencies, or nil.
func (s *System) Target() Subscriber {
	return s.target
}

// PushTarget installs sub as the active subscriber and remembers the previous
// one. Every PushTarget must be paired with a PopTarget.
func (s *System) PushTarget(sub Subscriber) {
	s.targetStack = append(s.targetStack, s.target)
	s.target = sub
}

// PopTarget restores the subscriber that was active before the matching
// PushTarget.
func (s *System) PopTarget() {
	lastIdx := len(s.targetStack) - 1
	if lastIdx < 0 {
		s.target = nil
		return
	}
	s.target = s.targetStack[lastIdx]
	s.targetStack[lastIdx] = nil
	s.targetStack = s.targetStack[:lastIdx]
}

// DependWith runs fn with sub as the active subscriber. The previous
// subscriber is restored when fn returns, fails or panics, so nested tracked
// evaluations attribute reads correctly once they unwind.
func (s *System) DependWith(sub Subscriber, fn func() error) error {
	s.PushTarget(sub)
	defer s.PopTarget()

	return fn()
}

// Untracked runs fn with no active subscriber. Reads inside fn register
// nothing.
func (s *System) Untracked(fn func() error) error {
	return s.DependWith(nil, fn)
}
