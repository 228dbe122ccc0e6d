package dfa

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// MinimizePartition is an alternative to Minimize. It refines a partition of
// states, starting with final and non-final states, until states within a block
// cannot be distinguished by any label. The result accepts the same language as
// the result of Minimize, but may have fewer states.
//
// The first state of every block represents the block; arcs of representatives
// are redirected to representatives. The initial state stays at index 0.
func MinimizePartition(states []*State) []*State {
	if len(states) == 0 {
		return states
	}
	index := make(map[*State]int, len(states))
	for i, s := range states {
		index[s] = i
	}
	block := make([]int, len(states))
	for i, s := range states {
		if s.IsFinal {
			block[i] = 1
		}
	}
	count := -1
	for {
		sigs := make(map[string]int)
		next := make([]int, len(states))
		for i, s := range states {
			sig := signature(s, block, index)
			id, ok := sigs[sig]
			if !ok {
				id = len(sigs)
				sigs[sig] = id
			}
			next[i] = id
		}
		stable := len(sigs) == count // blocks are only ever split
		block, count = next, len(sigs)
		if stable {
			break
		}
	}
	reps := make([]*State, count)
	result := make([]*State, 0, count)
	for i, s := range states {
		if reps[block[i]] == nil {
			reps[block[i]] = s
			result = append(result, s)
		}
	}
	for _, rep := range result {
		for label, next := range rep.Arcs {
			rep.Arcs[label] = reps[block[index[next]]]
		}
	}
	tracer().Infof("rule %s: %d DFA states, %d after partition refinement",
		states[0].Rule, len(states), len(result))
	return result
}

// signature of a state relative to a partition: its own block and the blocks
// of all its targets.
func signature(s *State, block []int, index map[*State]int) string {
	labels := make([]string, 0, len(s.Arcs))
	for label := range s.Arcs {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	var b strings.Builder
	fmt.Fprintf(&b, "%d", block[index[s]])
	for _, label := range labels {
		next, ok := index[s.Arcs[label]]
		if !ok {
			panic(fmt.Sprintf("dfa: arc %q of rule %s leads out of the automaton", label, s.Rule))
		}
		fmt.Fprintf(&b, "|%s>%d", strconv.Quote(label), block[next])
	}
	return b.String()
}
