package inspect_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/delaneyj/observed/inspect"
	"github.com/delaneyj/observed/observer"
	"github.com/delaneyj/observed/watcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	state  *observer.Object
	first  *watcher.Watcher
	second *watcher.Watcher
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	sys := observer.NewSystem()
	state := observer.FromMap(map[string]any{"a": 1, "b": 2})
	require.NotNil(t, sys.Observe(state))

	first := watcher.New(sys, func() (any, error) {
		return state.Get("a"), nil
	}, watcher.Named("first"))
	second := watcher.New(sys, func() (any, error) {
		return state.Get("a").(int) + state.Get("b").(int), nil
	}, watcher.Named("second"))

	return fixture{state: state, first: first, second: second}
}

func TestCaptureEdges(t *testing.T) {
	f := newFixture(t)
	snap := inspect.Capture(f.second, f.first)

	require.Len(t, snap.Subscribers, 2)
	assert.Equal(t, "first", snap.Subscribers[0].Label)
	assert.Equal(t, "second", snap.Subscribers[1].Label)

	require.Len(t, snap.Deps, 2)
	assert.Equal(t, "a", snap.Deps[0].Label)
	assert.Equal(t, 2, snap.Deps[0].Fanout)
	assert.Equal(t, "b", snap.Deps[1].Label)
	assert.Equal(t, 1, snap.Deps[1].Fanout)

	edges := []string{}
	for _, e := range snap.Edges {
		edges = append(edges, e.From.Label+"->"+e.To.Label)
	}
	assert.Equal(t, []string{"first->a", "second->a", "second->b"}, edges)
	assert.NoError(t, snap.Verify())
}

func TestCaptureAfterTeardown(t *testing.T) {
	f := newFixture(t)
	f.second.Teardown()

	snap := inspect.Capture(f.first, f.second)
	require.Len(t, snap.Edges, 1)
	assert.Equal(t, "first", snap.Edges[0].From.Label)
	require.Len(t, snap.Deps, 1)
	assert.Equal(t, 1, snap.Deps[0].Fanout)
	assert.NoError(t, snap.Verify())
}

func TestVerifyReportsOneSidedEdges(t *testing.T) {
	f := newFixture(t)
	deps := f.second.Deps()
	require.Len(t, deps, 2)
	deps[1].RemoveSub(f.second)

	err := inspect.Capture(f.first, f.second).Verify()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "second")
	assert.NotContains(t, err.Error(), "first")
}

func TestNodeKeyIsStable(t *testing.T) {
	sub := inspect.Node{Kind: inspect.KindSubscriber, ID: 7}
	dep := inspect.Node{Kind: inspect.KindDep, ID: 7}

	assert.Equal(t, sub.Key(), inspect.Node{Kind: inspect.KindSubscriber, ID: 7, Label: "other"}.Key())
	assert.NotEqual(t, sub.Key(), dep.Key())
	assert.Len(t, sub.Key(), 17)
	assert.True(t, strings.HasPrefix(sub.Key(), "n"))
}

func TestWriteTable(t *testing.T) {
	f := newFixture(t)
	buf := &bytes.Buffer{}
	inspect.WriteTable(buf, inspect.Capture(f.first, f.second))

	out := strings.ToLower(buf.String())
	assert.Contains(t, out, "subscriber")
	assert.Contains(t, out, "first")
	assert.Contains(t, out, "second")
	assert.Contains(t, out, "edges")
	assert.Equal(t, 3, strings.Count(out, "second")+strings.Count(out, "first"))
}

func TestDOT(t *testing.T) {
	f := newFixture(t)
	snap := inspect.Capture(f.first, f.second)
	out := inspect.DOT(snap)

	assert.True(t, strings.HasPrefix(strings.TrimSpace(out), "digraph deps {"))
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "}"))
	assert.Contains(t, out, `label="first"`)
	assert.Contains(t, out, `xlabel="2"`)
	for _, e := range snap.Edges {
		assert.Contains(t, out, e.From.Key()+" -> "+e.To.Key()+";")
	}

	buf := &bytes.Buffer{}
	inspect.WriteDOT(buf, snap)
	assert.Equal(t, out, buf.String())
}
