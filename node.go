package acmatch

import (
	"github.com/coregx/acmatch/internal/conv"
)

// stateID addresses a node in the automaton's arena.
type stateID uint32

const (
	// rootID is the root state. It is always the first arena entry.
	rootID stateID = 0

	// noState marks an absent parent or an unresolved failure link.
	noState stateID = ^stateID(0)
)

// node is one trie state.
//
// Nodes live in the automaton's arena and refer to each other by index:
// children own their entries by construction, parent and fail are plain
// back-references. The root's fail link points at the root itself.
type node[E comparable] struct {
	children map[E]stateID // nil until the first child is added

	// outputs holds the IDs of patterns recognized on entering this state.
	// The first own entries end exactly here, in insertion order; the rest
	// are inherited from the failure target during preparation.
	outputs []uint32
	own     int

	parent stateID
	fail   stateID
	depth  uint32
	label  E
}

// addChild appends a new state reached from parent on e.
func (a *Automaton[E, P]) addChild(parent stateID, e E) stateID {
	id := stateID(conv.IntToUint32(len(a.nodes)))
	if id == noState {
		panic("acmatch: too many states")
	}
	a.nodes = append(a.nodes, node[E]{
		parent: parent,
		fail:   noState,
		depth:  a.nodes[parent].depth + 1,
		label:  e,
	})

	// Take the parent pointer after append, which may have moved the arena.
	p := &a.nodes[parent]
	if p.children == nil {
		p.children = make(map[E]stateID)
	}
	p.children[e] = id
	return id
}

// next returns the state reached from s on e.
//
// It follows the goto transition when one exists. Otherwise the root absorbs
// the element and any other state retries from its failure target. Failure
// links must be resolved, so next is only valid on a prepared automaton.
func (a *Automaton[E, P]) next(s stateID, e E) stateID {
	for {
		n := &a.nodes[s]
		if child, ok := n.children[e]; ok {
			return child
		}
		if s == rootID {
			return rootID
		}
		s = n.fail
	}
}
