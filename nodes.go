// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ddd

// Terminals are kept at fixed positions in the DDD and SDD node tables. They
// are never reclaimed.
const (
	null int32 = 0 // empty set
	one  int32 = 1 // accepting terminal, the set containing the empty path
	top  int32 = 2 // error terminal
)

// Sentinel values returned by Variable for terminal nodes.
const (
	NullVariable = -1
	OneVariable  = -2
	TopVariable  = -3
)

// dnode is a node in a flat decision diagram. Arcs are sorted by increasing
// values, values are unique, and no arc leads to null.
type dnode struct {
	variable int32
	arcs     []darc
}

type darc struct {
	value int32
	child int32
}

// snode is a node in a hierarchical decision diagram. Labels are non-empty
// and pairwise disjoint, children are distinct and not null, and arcs are
// sorted by child.
type snode struct {
	variable int32
	arcs     []sarc
}

type sarc struct {
	label DataSet
	child int32
}

var terminals = []int32{NullVariable, OneVariable, TopVariable}

func dnodehash(n *dnode) uint64 {
	h := mix(uint64(n.variable))
	for _, a := range n.arcs {
		h = combine(h, _PAIR(uint64(uint32(a.value)), uint64(a.child)))
	}
	return h
}

func dnodeequal(a, b *dnode) bool {
	if a.variable != b.variable || len(a.arcs) != len(b.arcs) {
		return false
	}
	for k := range a.arcs {
		if a.arcs[k] != b.arcs[k] {
			return false
		}
	}
	return true
}

func snodehash(n *snode) uint64 {
	h := mix(uint64(n.variable))
	for _, a := range n.arcs {
		h = combine(h, _PAIR(a.label.Hash(), uint64(a.child)))
	}
	return h
}

func snodeequal(a, b *snode) bool {
	if a.variable != b.variable || len(a.arcs) != len(b.arcs) {
		return false
	}
	for k := range a.arcs {
		if a.arcs[k].child != b.arcs[k].child || !a.arcs[k].label.Equal(b.arcs[k].label) {
			return false
		}
	}
	return true
}

func reservedDnodes() []dnode {
	res := make([]dnode, len(terminals))
	for k, v := range terminals {
		res[k] = dnode{variable: v}
	}
	return res
}

func reservedSnodes() []snode {
	res := make([]snode, len(terminals))
	for k, v := range terminals {
		res[k] = snode{variable: v}
	}
	return res
}
