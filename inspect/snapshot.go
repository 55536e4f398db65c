package inspect

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/delaneyj/observed/observer"
)

// Source is a subscriber that can report the deps it currently holds.
type Source interface {
	ID() uint64
	Name() string
	Deps() []*observer.Dep
}

type NodeKind string

const (
	KindSubscriber NodeKind = "subscriber"
	KindDep        NodeKind = "dep"
)

type Node struct {
	Kind  NodeKind
	ID    uint64
	Label string
	// Fanout is the number of subscribers registered on a dep node
	Fanout int
}

// Key is a stable identifier for the node, usable in DOT output.
func (n Node) Key() string {
	h := xxhash.Sum64String(string(n.Kind) + ":" + strconv.FormatUint(n.ID, 10))
	return fmt.Sprintf("n%016x", h)
}

type Edge struct {
	From Node
	To   Node
}

// Snapshot is a point in time copy of the subscriber side of the graph.
type Snapshot struct {
	Subscribers []Node
	Deps        []Node
	Edges       []Edge

	sources []Source
}

// Capture records the edges held by each source. Deps shared by several
// sources appear once.
func Capture(sources ...Source) *Snapshot {
	s := &Snapshot{
		sources: slices.Clone(sources),
	}
	deps := map[uint64]Node{}

	for _, src := range sources {
		sub := Node{
			Kind:  KindSubscriber,
			ID:    src.ID(),
			Label: src.Name(),
		}
		s.Subscribers = append(s.Subscribers, sub)

		for _, dep := range src.Deps() {
			node, ok := deps[dep.ID()]
			if !ok {
				node = Node{
					Kind:   KindDep,
					ID:     dep.ID(),
					Label:  dep.Label(),
					Fanout: dep.Len(),
				}
				deps[dep.ID()] = node
				s.Deps = append(s.Deps, node)
			}
			s.Edges = append(s.Edges, Edge{From: sub, To: node})
		}
	}

	slices.SortFunc(s.Subscribers, compareNodes)
	slices.SortFunc(s.Deps, compareNodes)
	slices.SortFunc(s.Edges, func(a, b Edge) int {
		if c := compareNodes(a.From, b.From); c != 0 {
			return c
		}
		return compareNodes(a.To, b.To)
	})
	return s
}

func compareNodes(a, b Node) int {
	return cmp.Compare(a.ID, b.ID)
}

// Verify checks that every edge is registered on both sides: each dep a
// source holds must list that source as a subscriber.
func (s *Snapshot) Verify() error {
	var errs []error
	for _, src := range s.sources {
		for _, dep := range src.Deps() {
			if !dep.HasSub(src.ID()) {
				errs = append(errs, fmt.Errorf("%s holds dep %d (%s) which does not list it", src.Name(), dep.ID(), dep.Label()))
			}
		}
	}
	return errors.Join(errs...)
}
