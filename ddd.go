// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ddd

import (
	"fmt"
	"math"
	"math/big"

	"golang.org/x/exp/slices"
)

// DDD is a reference to a canonical node of a flat Data Decision Diagram. It
// denotes a set of paths, that is a set of sequences of (variable, value)
// pairs. Two DDD from the same manager are equal (==) if and only if they
// denote the same set.
//
// A DDD value does not protect its node from garbage collection; use a Ref
// for that. The zero DDD is not a valid reference.
type DDD struct {
	m   *Manager
	id  int32
	gen uint32
}

// Arc is a pair (value, child) in a DDD node.
type Arc struct {
	Value int
	Child DDD
}

// Assignment is one step in a path of a DDD.
type Assignment struct {
	Variable int
	Value    int
}

// ************************************************************

// retddd returns a DDD for external use.
func (m *Manager) retddd(k int32) DDD {
	return DDD{m: m, id: k, gen: m.ddd.gen(k)}
}

// checkddd returns the index of d in the node table, or top if d is not a
// valid reference for m, in which case we also set the error status.
func (m *Manager) checkddd(d DDD, caller string) (int32, bool) {
	if d.m != m {
		return m.seterror("%s: %w", caller, ErrForeignManager), false
	}
	if !m.ddd.valid(d.id, d.gen) {
		return m.seterror("%s: node %d: %w", caller, d.id, ErrDangling), false
	}
	return d.id, true
}

// Null returns the empty set.
func (m *Manager) Null() DDD {
	return m.retddd(null)
}

// One returns the terminal node accepting the empty path.
func (m *Manager) One() DDD {
	return m.retddd(one)
}

// Top returns the error terminal.
func (m *Manager) Top() DDD {
	return m.retddd(top)
}

// Node returns the node with a single arc, labelled by value on variable, that
// leads to child. The result is Null if child is Null.
func (m *Manager) Node(variable, value int, child DDD) DDD {
	c, ok := m.checkddd(child, "Node")
	if !ok {
		return m.retddd(c)
	}
	if !validvar(variable) {
		return m.retddd(m.seterror("Node(%d): %w", variable, ErrVariable))
	}
	if !validvalue(value) {
		return m.retddd(m.seterror("Node(%d, %d): %w", variable, value, ErrValue))
	}
	return m.retddd(m.makeddd(int32(variable), []darc{{value: int32(value), child: c}}))
}

// NodeRange returns the node on variable with one arc for every value in the
// interval [lo..hi], all leading to child.
func (m *Manager) NodeRange(variable, lo, hi int, child DDD) DDD {
	c, ok := m.checkddd(child, "NodeRange")
	if !ok {
		return m.retddd(c)
	}
	if !validvar(variable) {
		return m.retddd(m.seterror("NodeRange(%d): %w", variable, ErrVariable))
	}
	if !validvalue(lo) || !validvalue(hi) {
		return m.retddd(m.seterror("NodeRange(%d, %d, %d): %w", variable, lo, hi, ErrValue))
	}
	if hi < lo {
		return m.retddd(null)
	}
	arcs := make([]darc, 0, hi-lo+1)
	for v := lo; v <= hi; v++ {
		arcs = append(arcs, darc{value: int32(v), child: c})
	}
	return m.retddd(m.makeddd(int32(variable), arcs))
}

// NodeArcs returns the node on variable with the given arcs. Arcs may be given
// in any order; arcs with the same value are merged (we take the union of
// their children) and arcs leading to Null are dropped.
func (m *Manager) NodeArcs(variable int, arcs []Arc) DDD {
	if !validvar(variable) {
		return m.retddd(m.seterror("NodeArcs(%d): %w", variable, ErrVariable))
	}
	res := make([]darc, 0, len(arcs))
	for _, a := range arcs {
		c, ok := m.checkddd(a.Child, "NodeArcs")
		if !ok {
			return m.retddd(c)
		}
		if !validvalue(a.Value) {
			return m.retddd(m.seterror("NodeArcs(%d, %d): %w", variable, a.Value, ErrValue))
		}
		res = append(res, darc{value: int32(a.Value), child: c})
	}
	return m.retddd(m.makeddd(int32(variable), res))
}

// Path returns the DDD with a single path, where variable k has value
// values[k]. The result is One if values is empty.
func (m *Manager) Path(values ...int) DDD {
	if len(values) > math.MaxInt32 {
		return m.retddd(m.seterror("Path: %d variables: %w", len(values), ErrVariable))
	}
	for k, v := range values {
		if !validvalue(v) {
			return m.retddd(m.seterror("Path(%d, %d): %w", k, v, ErrValue))
		}
	}
	res := one
	for k := len(values) - 1; k >= 0; k-- {
		res = m.makeddd(int32(k), []darc{{value: int32(values[k]), child: res}})
	}
	return m.retddd(res)
}

// validvar and validvalue check that variables and values fit in the int32
// fields of nodes.
func validvar(v int) bool {
	return v >= 0 && v <= math.MaxInt32
}

func validvalue(v int) bool {
	return v >= math.MinInt32 && v <= math.MaxInt32
}

// makeddd returns the canonical node for (variable, arcs). The slice arcs must
// not be used by the caller after the call.
func (m *Manager) makeddd(variable int32, arcs []darc) int32 {
	slices.SortFunc(arcs, func(a, b darc) bool {
		return a.value < b.value
	})
	res := arcs[:0]
	for _, a := range arcs {
		if a.child == null {
			continue
		}
		if n := len(res); n > 0 && res[n-1].value == a.value {
			res[n-1].child = m.apply(OPunion, res[n-1].child, a.child)
		} else {
			res = append(res, a)
		}
		if res[len(res)-1].child == top {
			return top
		}
	}
	if len(res) == 0 {
		return null
	}
	return m.ddd.canonical(dnode{variable: variable, arcs: slices.Clip(res)})
}

// ************************************************************

// Manager returns the manager of d.
func (d DDD) Manager() *Manager {
	return d.m
}

// Variable returns the variable labelling the root of d, or one of
// NullVariable, OneVariable and TopVariable if d is a terminal.
func (d DDD) Variable() int {
	k, _ := d.m.checkddd(d, "Variable")
	return int(d.m.ddd.get(k).variable)
}

// IsTerminal returns true if d is Null, One, or Top.
func (d DDD) IsTerminal() bool {
	return d.id < int32(len(terminals))
}

// IsNull returns true if d is the empty set.
func (d DDD) IsNull() bool {
	return d.id == null
}

// IsOne returns true if d is the One terminal.
func (d DDD) IsOne() bool {
	return d.id == one
}

// IsTop returns true if d is the error terminal.
func (d DDD) IsTop() bool {
	return d.id == top
}

// Arcs returns a copy of the arcs of d, sorted by increasing values. The result
// is empty for terminals.
func (d DDD) Arcs() []Arc {
	k, ok := d.m.checkddd(d, "Arcs")
	if !ok {
		return nil
	}
	n := d.m.ddd.get(k)
	res := make([]Arc, len(n.arcs))
	for i, a := range n.arcs {
		res[i] = Arc{Value: int(a.value), Child: d.m.retddd(a.child)}
	}
	return res
}

// NbStates returns the number of paths in d. We return a result using
// arbitrary-precision arithmetic to avoid possible overflows. The count is zero
// for Top.
func (d DDD) NbStates() *big.Int {
	k, ok := d.m.checkddd(d, "NbStates")
	if !ok {
		return big.NewInt(0)
	}
	return d.m.nbstates(k, make(map[int32]*big.Int))
}

func (m *Manager) nbstates(n int32, memo map[int32]*big.Int) *big.Int {
	switch n {
	case null, top:
		return big.NewInt(0)
	case one:
		return big.NewInt(1)
	}
	// we use memo to memoize the value of nbstates for each nodes
	if res, ok := memo[n]; ok {
		return res
	}
	res := big.NewInt(0)
	for _, a := range m.ddd.get(n).arcs {
		res.Add(res, m.nbstates(a.child, memo))
	}
	memo[n] = res
	return res
}

// NodeCount returns the number of distinct non-terminal nodes in d.
func (d DDD) NodeCount() int {
	k, ok := d.m.checkddd(d, "NodeCount")
	if !ok {
		return 0
	}
	seen := make(map[int32]bool)
	d.m.countddd(k, seen)
	return len(seen)
}

func (m *Manager) countddd(n int32, seen map[int32]bool) {
	if n < int32(len(terminals)) || seen[n] {
		return
	}
	seen[n] = true
	for _, a := range m.ddd.get(n).arcs {
		m.countddd(a.child, seen)
	}
}

// Paths iterates through all the paths of d and calls the function f on each
// of them. We stop and return an error if f returns an error at some point.
// The slice passed to f is reused between calls. Top has no paths: Paths
// returns an error wrapping ErrTopPaths, and the manager status is left
// unchanged since it already holds the cause of the Top result.
func (d DDD) Paths(f func([]Assignment) error) error {
	k, ok := d.m.checkddd(d, "Paths")
	if !ok {
		return d.m.error
	}
	if k == top {
		return fmt.Errorf("Paths: %w", ErrTopPaths)
	}
	return d.m.paths(k, make([]Assignment, 0, 16), f)
}

func (m *Manager) paths(n int32, prof []Assignment, f func([]Assignment) error) error {
	switch n {
	case null:
		return nil
	case one:
		return f(prof)
	}
	node := m.ddd.get(n)
	for _, a := range node.arcs {
		if err := m.paths(a.child, append(prof, Assignment{Variable: int(node.variable), Value: int(a.value)}), f); err != nil {
			return err
		}
	}
	return nil
}

// ************************************************************
// DDD implements the DataSet interface, so that flat diagrams can be used as
// arc labels in hierarchical ones.

var _ DataSet = DDD{}

func (d DDD) other(o DataSet, caller string) (DDD, bool) {
	e, ok := o.(DDD)
	if !ok {
		d.m.seterror("%s: %T label with a DDD: %w", caller, o, ErrLabelType)
		return DDD{}, false
	}
	return e, true
}

// Intersect implements the DataSet interface.
func (d DDD) Intersect(o DataSet) DataSet {
	e, ok := d.other(o, "Intersect")
	if !ok {
		return d.m.Top()
	}
	return d.m.Intersect(d, e)
}

// Union implements the DataSet interface.
func (d DDD) Union(o DataSet) DataSet {
	e, ok := d.other(o, "Union")
	if !ok {
		return d.m.Top()
	}
	return d.m.Union(d, e)
}

// Minus implements the DataSet interface.
func (d DDD) Minus(o DataSet) DataSet {
	e, ok := d.other(o, "Minus")
	if !ok {
		return d.m.Top()
	}
	return d.m.Minus(d, e)
}

// Empty implements the DataSet interface.
func (d DDD) Empty() bool {
	return d.id == null
}

// EmptySet implements the DataSet interface.
func (d DDD) EmptySet() DataSet {
	return d.m.Null()
}

// Equal implements the DataSet interface.
func (d DDD) Equal(o DataSet) bool {
	e, ok := o.(DDD)
	return ok && d == e
}

// Size implements the DataSet interface. It is the number of paths in d.
func (d DDD) Size() *big.Int {
	return d.NbStates()
}

// Hash implements the DataSet interface. Since nodes are canonical, the hash
// only depends on the position of the node in its table.
func (d DDD) Hash() uint64 {
	return mix(uint64(d.id))
}

// Mark implements the DataSet interface.
func (d DDD) Mark(mk *Marker) {
	mk.DDD(d)
}
