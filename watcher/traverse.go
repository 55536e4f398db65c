package watcher

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/delaneyj/observed/observer"
)

// traverse reads every key and element reachable from v so that a deep
// watcher registers with all of them.
func traverse(v any) {
	seen := mapset.NewThreadUnsafeSet[observer.Container]()
	walk(v, seen)
}

func walk(v any, seen mapset.Set[observer.Container]) {
	c, ok := observer.AsContainer(v)
	if !ok || !seen.Add(c) {
		return
	}

	switch c := c.(type) {
	case *observer.Object:
		if c.IsFrozen() {
			return
		}
		for _, key := range c.Keys() {
			walk(c.Get(key), seen)
		}
	case *observer.Array:
		for _, item := range c.Items() {
			walk(item, seen)
		}
	}
}
