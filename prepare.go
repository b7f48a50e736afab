package acmatch

import (
	"github.com/coregx/acmatch/prefilter"
)

// prepare computes failure links and output sets if the automaton is stale.
//
// States are visited breadth-first, so every state's failure target (which is
// strictly shallower) is final before the state itself is resolved:
//   - depth-1 states fail to the root;
//   - a deeper state reached from s on e fails to the first state on s's
//     failure chain with a child on e, or to the root if there is none. That
//     state spells the longest proper suffix of the path that is also a
//     path in the trie.
//
// Outputs become the state's own patterns followed by the failure target's
// complete outputs. Preparation always restarts from scratch, truncating
// inherited outputs first, so any sequence of Add calls is handled.
func (a *Automaton[E, P]) prepare() {
	if a.state == ready {
		return
	}

	for i := range a.nodes {
		n := &a.nodes[i]
		n.outputs = n.outputs[:n.own]
		if stateID(i) != rootID {
			n.fail = noState
		}
	}

	queue := make([]stateID, 0, len(a.nodes))
	for _, child := range a.nodes[rootID].children {
		a.nodes[child].fail = rootID
		queue = append(queue, child)
	}

	for head := 0; head < len(queue); head++ {
		s := queue[head]
		for e, child := range a.nodes[s].children {
			f := a.failTarget(a.nodes[s].fail, e)
			c := &a.nodes[child]
			c.fail = f
			c.outputs = append(c.outputs, a.nodes[f].outputs...)
			queue = append(queue, child)
		}
	}

	a.buildAccel()
	a.state = ready
}

// failTarget walks the failure chain starting at f for the first state with
// a child on e and returns that child, or the root if the chain ends there.
func (a *Automaton[E, P]) failTarget(f stateID, e E) stateID {
	for {
		if child, ok := a.nodes[f].children[e]; ok {
			return child
		}
		if f == rootID {
			return rootID
		}
		f = a.nodes[f].fail
	}
}

// buildAccel rebuilds the byte filters. It is a no-op unless E is byte.
func (a *Automaton[E, P]) buildAccel() {
	a.accel = nil

	var zero E
	if _, ok := any(zero).(byte); !ok {
		return
	}

	acc := &byteAccel{}
	if a.config.EnablePrefilter {
		root := &a.nodes[rootID]
		starts := make([]byte, 0, len(root.children))
		for e := range root.children {
			starts = append(starts, any(e).(byte))
		}
		acc.starts = prefilter.NewStartBytes(starts)
	}

	if a.config.EnableRejectFilter && len(a.patterns) > 0 {
		patterns := make([][]byte, len(a.patterns))
		for id, p := range a.patterns {
			b := make([]byte, a.lens[id])
			for i := range b {
				b[i] = any(p.At(i)).(byte)
			}
			patterns[id] = b
		}
		// Without a reject filter every range is simply traversed.
		if r, err := prefilter.NewReject(patterns); err == nil {
			acc.reject = r
		}
	}

	if acc.starts != nil || acc.reject != nil {
		a.accel = acc
	}
}
