// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ddd

import (
	"fmt"
	"math/big"

	"golang.org/x/exp/slices"
)

// SDD is a reference to a canonical node of a hierarchical Set Decision
// Diagram. Arcs are labelled by sets of values (any DataSet), possibly other
// DDD or SDD. Like with DDD, two SDD from the same manager are equal (==) if
// and only if they denote the same set.
type SDD struct {
	m   *Manager
	id  int32
	gen uint32
}

// SArc is a pair (label, child) in an SDD node.
type SArc struct {
	Label DataSet
	Child SDD
}

// SAssignment is one step in a path of an SDD.
type SAssignment struct {
	Variable int
	Label    DataSet
}

// ************************************************************

func (m *Manager) retsdd(k int32) SDD {
	return SDD{m: m, id: k, gen: m.sdd.gen(k)}
}

func (m *Manager) checksdd(s SDD, caller string) (int32, bool) {
	if s.m != m {
		return m.seterror("%s: %w", caller, ErrForeignManager), false
	}
	if !m.sdd.valid(s.id, s.gen) {
		return m.seterror("%s: node %d: %w", caller, s.id, ErrDangling), false
	}
	return s.id, true
}

// SNull returns the empty SDD.
func (m *Manager) SNull() SDD {
	return m.retsdd(null)
}

// SOne returns the accepting SDD terminal.
func (m *Manager) SOne() SDD {
	return m.retsdd(one)
}

// STop returns the SDD error terminal.
func (m *Manager) STop() SDD {
	return m.retsdd(top)
}

// SNode returns the SDD node with a single arc, labelled by label on variable,
// that leads to child. The result is SNull if label is empty.
func (m *Manager) SNode(variable int, label DataSet, child SDD) SDD {
	return m.SNodeArcs(variable, []SArc{{Label: label, Child: child}})
}

// SNodeArcs returns the SDD node on variable with the given arcs. Arcs may
// have overlapping labels, in which case we build the canonical node where
// labels are pairwise disjoint.
func (m *Manager) SNodeArcs(variable int, arcs []SArc) SDD {
	if !validvar(variable) {
		return m.retsdd(m.seterror("SNodeArcs(%d): %w", variable, ErrVariable))
	}
	res := make([]sarc, 0, len(arcs))
	for _, a := range arcs {
		c, ok := m.checksdd(a.Child, "SNodeArcs")
		if !ok {
			return m.retsdd(c)
		}
		if a.Label == nil {
			return m.retsdd(m.seterror("SNodeArcs: nil label: %w", ErrLabelType))
		}
		res = append(res, sarc{label: a.Label, child: c})
	}
	return m.retsdd(m.makesdd(int32(variable), res))
}

// makesdd returns the canonical node for (variable, arcs). Labels are made
// pairwise disjoint: when two labels overlap, their intersection leads to the
// union of both children. Then arcs leading to the same child are merged.
func (m *Manager) makesdd(variable int32, arcs []sarc) int32 {
	var disjoint []sarc
	for _, a := range arcs {
		if a.child == null || a.label.Empty() {
			continue
		}
		if a.child == top {
			return top
		}
		if len(disjoint) > 0 && !sametype(disjoint[0].label, a.label) {
			return m.seterror("variable %s: %T and %T: %w", m.VarName(int(variable)), disjoint[0].label, a.label, ErrLabelType)
		}
		rem := a.label
		next := make([]sarc, 0, len(disjoint)+2)
		for _, b := range disjoint {
			if rem.Empty() {
				next = append(next, b)
				continue
			}
			inter := b.label.Intersect(rem)
			if inter.Empty() {
				next = append(next, b)
				continue
			}
			if diff := b.label.Minus(inter); !diff.Empty() {
				next = append(next, sarc{label: diff, child: b.child})
			}
			child := m.sapply(OPunion, b.child, a.child)
			if child == top {
				return top
			}
			next = append(next, sarc{label: inter, child: child})
			rem = rem.Minus(inter)
		}
		if !rem.Empty() {
			next = append(next, sarc{label: rem, child: a.child})
		}
		disjoint = next
	}
	if len(disjoint) == 0 {
		return null
	}
	// we group labels by child
	slices.SortStableFunc(disjoint, func(a, b sarc) bool {
		return a.child < b.child
	})
	res := disjoint[:0]
	for _, a := range disjoint {
		if n := len(res); n > 0 && res[n-1].child == a.child {
			res[n-1].label = res[n-1].label.Union(a.label)
			continue
		}
		res = append(res, a)
	}
	for _, a := range res {
		if istop(a.label) {
			return top
		}
	}
	return m.sdd.canonical(snode{variable: variable, arcs: slices.Clip(res)})
}

// istop returns true if label is the Top DDD or SDD, which is the result of a
// failed operation on nested labels.
func istop(label DataSet) bool {
	switch l := label.(type) {
	case DDD:
		return l.IsTop()
	case SDD:
		return l.IsTop()
	}
	return false
}

// ************************************************************

// Manager returns the manager of s.
func (s SDD) Manager() *Manager {
	return s.m
}

// Variable returns the variable labelling the root of s, or one of
// NullVariable, OneVariable and TopVariable if s is a terminal.
func (s SDD) Variable() int {
	k, _ := s.m.checksdd(s, "Variable")
	return int(s.m.sdd.get(k).variable)
}

// IsTerminal returns true if s is SNull, SOne, or STop.
func (s SDD) IsTerminal() bool {
	return s.id < int32(len(terminals))
}

// IsNull returns true if s is the empty set.
func (s SDD) IsNull() bool {
	return s.id == null
}

// IsOne returns true if s is the SOne terminal.
func (s SDD) IsOne() bool {
	return s.id == one
}

// IsTop returns true if s is the error terminal.
func (s SDD) IsTop() bool {
	return s.id == top
}

// Arcs returns a copy of the arcs of s, sorted by child.
func (s SDD) Arcs() []SArc {
	k, ok := s.m.checksdd(s, "Arcs")
	if !ok {
		return nil
	}
	n := s.m.sdd.get(k)
	res := make([]SArc, len(n.arcs))
	for i, a := range n.arcs {
		res[i] = SArc{Label: a.label, Child: s.m.retsdd(a.child)}
	}
	return res
}

// NbStates returns the number of paths in s, where the number of paths
// through an arc is the size of its label times the number of paths of its
// child.
func (s SDD) NbStates() *big.Int {
	k, ok := s.m.checksdd(s, "NbStates")
	if !ok {
		return big.NewInt(0)
	}
	return s.m.snbstates(k, make(map[int32]*big.Int))
}

func (m *Manager) snbstates(n int32, memo map[int32]*big.Int) *big.Int {
	switch n {
	case null, top:
		return big.NewInt(0)
	case one:
		return big.NewInt(1)
	}
	if res, ok := memo[n]; ok {
		return res
	}
	res := big.NewInt(0)
	tmp := new(big.Int)
	for _, a := range m.sdd.get(n).arcs {
		res.Add(res, tmp.Mul(a.label.Size(), m.snbstates(a.child, memo)))
	}
	memo[n] = res
	return res
}

// NodeCount returns the number of distinct non-terminal nodes in s, not
// counting the nodes inside labels.
func (s SDD) NodeCount() int {
	k, ok := s.m.checksdd(s, "NodeCount")
	if !ok {
		return 0
	}
	seen := make(map[int32]bool)
	s.m.countsdd(k, seen)
	return len(seen)
}

func (m *Manager) countsdd(n int32, seen map[int32]bool) {
	if n < int32(len(terminals)) || seen[n] {
		return
	}
	seen[n] = true
	for _, a := range m.sdd.get(n).arcs {
		m.countsdd(a.child, seen)
	}
}

// Paths iterates through all the paths of s, where each step is labelled by a
// set of values. The slice passed to f is reused between calls. As for DDD, we
// return an error wrapping ErrTopPaths on Top.
func (s SDD) Paths(f func([]SAssignment) error) error {
	k, ok := s.m.checksdd(s, "Paths")
	if !ok {
		return s.m.error
	}
	if k == top {
		return fmt.Errorf("Paths: %w", ErrTopPaths)
	}
	return s.m.spaths(k, make([]SAssignment, 0, 16), f)
}

func (m *Manager) spaths(n int32, prof []SAssignment, f func([]SAssignment) error) error {
	switch n {
	case null:
		return nil
	case one:
		return f(prof)
	}
	node := m.sdd.get(n)
	for _, a := range node.arcs {
		if err := m.spaths(a.child, append(prof, SAssignment{Variable: int(node.variable), Label: a.label}), f); err != nil {
			return err
		}
	}
	return nil
}

// ************************************************************
// SDD implements the DataSet interface.

var _ DataSet = SDD{}

func (s SDD) other(o DataSet, caller string) (SDD, bool) {
	e, ok := o.(SDD)
	if !ok {
		s.m.seterror("%s: %T label with an SDD: %w", caller, o, ErrLabelType)
		return SDD{}, false
	}
	return e, true
}

// Intersect implements the DataSet interface.
func (s SDD) Intersect(o DataSet) DataSet {
	e, ok := s.other(o, "Intersect")
	if !ok {
		return s.m.STop()
	}
	return s.m.SIntersect(s, e)
}

// Union implements the DataSet interface.
func (s SDD) Union(o DataSet) DataSet {
	e, ok := s.other(o, "Union")
	if !ok {
		return s.m.STop()
	}
	return s.m.SUnion(s, e)
}

// Minus implements the DataSet interface.
func (s SDD) Minus(o DataSet) DataSet {
	e, ok := s.other(o, "Minus")
	if !ok {
		return s.m.STop()
	}
	return s.m.SMinus(s, e)
}

// Empty implements the DataSet interface.
func (s SDD) Empty() bool {
	return s.id == null
}

// EmptySet implements the DataSet interface.
func (s SDD) EmptySet() DataSet {
	return s.m.SNull()
}

// Equal implements the DataSet interface.
func (s SDD) Equal(o DataSet) bool {
	e, ok := o.(SDD)
	return ok && s == e
}

// Size implements the DataSet interface.
func (s SDD) Size() *big.Int {
	return s.NbStates()
}

// Hash implements the DataSet interface.
func (s SDD) Hash() uint64 {
	return mix(_PAIR(uint64(s.id), 1))
}

// Mark implements the DataSet interface.
func (s SDD) Mark(mk *Marker) {
	mk.SDD(s)
}
