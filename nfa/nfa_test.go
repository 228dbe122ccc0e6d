package nfa

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func labels(s *State) []string {
	var l []string
	for _, arc := range s.Arcs {
		l = append(l, arc.Label)
	}
	return l
}

func TestAtom(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pgen.nfa")
	defer teardown()
	//
	b := NewBuilder().Rule("item")
	f := b.Atom("'a'")
	assert.Equal(t, "item", f.Rule())
	require.Len(t, f.Start.Arcs, 1)
	assert.Same(t, f.Finish, f.Start.Arcs[0].Next)
	assert.Equal(t, []*State{f.Start, f.Finish}, f.States())
	assert.NotEqual(t, f.Start.ID, f.Finish.ID)
}

func TestSerialIDsAcrossRules(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pgen.nfa")
	defer teardown()
	//
	b := NewBuilder()
	f1 := b.Rule("a").Atom("NAME")
	f2 := b.Rule("b").Atom("NUMBER")
	assert.Equal(t, "a", f1.Rule())
	assert.Equal(t, "b", f2.Rule())
	assert.Equal(t, "b", b.CurrentRule())
	ids := map[int]bool{}
	for _, s := range append(f1.States(), f2.States()...) {
		assert.False(t, ids[s.ID], "duplicate ID %d", s.ID)
		ids[s.ID] = true
	}
}

func TestSequenceAndAlternative(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pgen.nfa")
	defer teardown()
	//
	b := NewBuilder().Rule("r")
	x, y := b.Atom("'x'"), b.Atom("'y'")
	seq := b.Sequence(x, y)
	assert.Same(t, x.Start, seq.Start)
	assert.Same(t, y.Finish, seq.Finish)
	assert.Equal(t, []string{Epsilon}, labels(x.Finish))
	single := b.Atom("'z'")
	assert.Equal(t, single, b.Alternative(single))
	alt := b.Alternative(b.Atom("'u'"), b.Atom("'v'"))
	assert.Equal(t, []string{Epsilon, Epsilon}, labels(alt.Start))
	assert.Len(t, alt.States(), 6)
	empty := b.Sequence()
	assert.Same(t, empty.Start, empty.Finish)
}

func TestRepetitions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pgen.nfa")
	defer teardown()
	//
	b := NewBuilder().Rule("r")
	opt := b.Optional(b.Atom("'a'"))
	assert.Equal(t, []string{"'a'", Epsilon}, labels(opt.Start))
	plus := b.Plus(b.Atom("'a'"))
	assert.Same(t, plus.Start, plus.Finish.Arcs[0].Next)
	star := b.Star(b.Atom("'a'"))
	assert.Same(t, star.Start, star.Finish)
	assert.Len(t, star.States(), 2)
	g := b.Group(opt)
	assert.Equal(t, opt, g)
	Dump(star)
}

func TestStateWithoutRulePanics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pgen.nfa")
	defer teardown()
	//
	assert.Panics(t, func() { NewBuilder().NewState() })
	assert.Panics(t, func() { (&State{}).AddArc(nil, "x") })
}
