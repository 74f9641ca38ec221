// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ddd

import (
	"errors"
	"math"
	"math/big"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

//********************************************************************************************

// paths returns the list of paths in d, as slices of values.
func paths(d DDD) [][]int {
	res := [][]int{}
	d.Paths(func(p []Assignment) error {
		vals := make([]int, len(p))
		for k, a := range p {
			vals[k] = a.Value
		}
		res = append(res, vals)
		return nil
	})
	return res
}

// randomDDD returns the union of n random paths of length size, with values in
// [0..max).
func randomDDD(m *Manager, r *rand.Rand, n, size, max int) DDD {
	res := m.Null()
	for i := 0; i < n; i++ {
		vals := make([]int, size)
		for k := range vals {
			vals[k] = r.Intn(max)
		}
		res = m.Union(res, m.Path(vals...))
	}
	return res
}

//********************************************************************************************

func TestCanonical(t *testing.T) {
	m := New()
	a := m.Node(0, 1, m.Node(1, 2, m.One()))
	b := m.Node(0, 1, m.Node(1, 2, m.One()))
	if a != b {
		t.Errorf("node(A,1,node(B,2)) built twice: expected same handle, actual %v and %v", a, b)
	}
	c := m.NodeArcs(0, []Arc{{Value: 3, Child: m.One()}, {Value: 1, Child: m.One()}, {Value: 2, Child: m.Null()}})
	d := m.Union(m.Node(0, 1, m.One()), m.Node(0, 3, m.One()))
	if c != d {
		t.Errorf("arcs in any order: expected %s, actual %s", d, c)
	}
	if e := m.NodeRange(0, 1, 3, m.One()); e != m.Union(d, m.Node(0, 2, m.One())) {
		t.Errorf("NodeRange(0, 1, 3): actual %s", e)
	}
	if e := m.Node(0, 1, m.Null()); e != m.Null() {
		t.Errorf("node with a null child: expected Null, actual %s", e)
	}
	if m.Errored() {
		t.Errorf("unexpected error: %s", m.Error())
	}
}

func TestMergeSharedLabel(t *testing.T) {
	m := New()
	m.SetVarName(0, "A")
	m.SetVarName(1, "B")
	u := m.Union(m.Node(0, 1, m.Node(1, 2, m.One())), m.Node(0, 1, m.Node(1, 3, m.One())))
	if u.Variable() != 0 {
		t.Fatalf("union: expected variable 0, actual %d", u.Variable())
	}
	arcs := u.Arcs()
	if len(arcs) != 1 || arcs[0].Value != 1 {
		t.Fatalf("union: expected a single arc with value 1, actual %v", arcs)
	}
	child := arcs[0].Child
	if child != m.Union(m.Node(1, 2, m.One()), m.Node(1, 3, m.One())) {
		t.Errorf("union: unexpected child %s", child)
	}
	if len(child.Arcs()) != 2 {
		t.Errorf("union: expected two arcs under B, actual %d", len(child.Arcs()))
	}
	if diff := cmp.Diff("{[A=1 B=2], [A=1 B=3]}", u.String()); diff != "" {
		t.Errorf("String() mismatch (-want +got):\n%s", diff)
	}
}

func TestLaws(t *testing.T) {
	m := New()
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		a := randomDDD(m, r, 1+r.Intn(10), 4, 3)
		b := randomDDD(m, r, 1+r.Intn(10), 4, 3)
		if m.Union(a, b) != m.Union(b, a) {
			t.Errorf("a + b != b + a with a = %s, b = %s", a, b)
		}
		if m.Union(a, a) != a {
			t.Errorf("a + a != a with a = %s", a)
		}
		if m.Intersect(a, b) != m.Intersect(b, a) {
			t.Errorf("a * b != b * a with a = %s, b = %s", a, b)
		}
		if m.Union(m.Minus(a, b), m.Intersect(a, b)) != a {
			t.Errorf("(a - b) + (a * b) != a with a = %s, b = %s", a, b)
		}
		if m.Intersect(m.Minus(a, b), b) != m.Null() {
			t.Errorf("(a - b) * b != null with a = %s, b = %s", a, b)
		}
		if m.Intersect(a, m.Null()) != m.Null() {
			t.Errorf("a * null != null")
		}
		if m.Union(a, m.Null()) != a {
			t.Errorf("a + null != a")
		}
		if m.Minus(a, m.Null()) != a {
			t.Errorf("a - null != a")
		}
		if m.Minus(m.Null(), a) != m.Null() {
			t.Errorf("null - a != null")
		}
		if m.Concat(m.One(), a) != a || m.Concat(a, m.One()) != a {
			t.Errorf("one is not neutral for concatenation with a = %s", a)
		}
		if m.Concat(a, m.Null()) != m.Null() || m.Concat(m.Null(), a) != m.Null() {
			t.Errorf("null is not absorbing for concatenation with a = %s", a)
		}
		expected := new(big.Int).Mul(a.NbStates(), b.NbStates())
		if actual := m.Concat(a, b).NbStates(); actual.Cmp(expected) != 0 {
			t.Errorf("|a ^ b|: expected %s, actual %s", expected, actual)
		}
	}
	if m.Errored() {
		t.Errorf("unexpected error: %s", m.Error())
	}
}

func TestConcat(t *testing.T) {
	m := New()
	a := m.Union(m.Path(1), m.Path(2))
	b := m.Union(m.Node(1, 3, m.One()), m.Node(1, 4, m.One()))
	expected := [][]int{{1, 3}, {1, 4}, {2, 3}, {2, 4}}
	if diff := cmp.Diff(expected, paths(m.Concat(a, b))); diff != "" {
		t.Errorf("Concat mismatch (-want +got):\n%s", diff)
	}
}

func TestTerminals(t *testing.T) {
	m := New()
	a := m.Path(1, 2)
	tests := []struct {
		name     string
		actual   DDD
		expected DDD
	}{
		{"top + a", m.Union(m.Top(), a), m.Top()},
		{"top * a", m.Intersect(m.Top(), a), m.Top()},
		{"a - top", m.Minus(a, m.Top()), m.Top()},
		{"top ^ a", m.Concat(m.Top(), a), m.Top()},
		{"a ^ top", m.Concat(a, m.Top()), m.Top()},
		{"null ^ top", m.Concat(m.Null(), m.Top()), m.Null()},
		{"one ^ top", m.Concat(m.One(), m.Top()), m.Top()},
		{"one + one", m.Union(m.One(), m.One()), m.One()},
		{"one - one", m.Minus(m.One(), m.One()), m.Null()},
	}
	for _, tt := range tests {
		if tt.actual != tt.expected {
			t.Errorf("%s: expected %s, actual %s", tt.name, tt.expected, tt.actual)
		}
	}
}

func TestMismatch(t *testing.T) {
	m := New()
	if res := m.Union(m.Node(0, 1, m.One()), m.Node(1, 1, m.One())); !res.IsTop() {
		t.Errorf("union with different variables: expected top, actual %s", res)
	}
	if !errors.Is(m.Err(), ErrVariableMismatch) {
		t.Errorf("expected ErrVariableMismatch, actual %v", m.Err())
	}
	m.ResetError()
	if res := m.Union(m.Path(1, 2), m.Path(1)); !res.IsTop() {
		t.Errorf("union with different lengths: expected top, actual %s", res)
	}
	if !errors.Is(m.Err(), ErrLengthMismatch) {
		t.Errorf("expected ErrLengthMismatch, actual %v", m.Err())
	}
	if m.Errcount() == 0 {
		t.Errorf("expected a positive error count")
	}
	m.ResetError()
	other := New()
	if res := m.Union(m.One(), other.One()); !res.IsTop() {
		t.Errorf("union with a foreign DDD: expected top, actual %s", res)
	}
	if !errors.Is(m.Err(), ErrForeignManager) {
		t.Errorf("expected ErrForeignManager, actual %v", m.Err())
	}
}

func TestValueRange(t *testing.T) {
	m := New()
	if m.Node(0, 1<<32+5, m.One()) == m.Node(0, 5, m.One()) {
		t.Errorf("values out of range should not wrap")
	}
	if !errors.Is(m.Err(), ErrValue) {
		t.Errorf("expected ErrValue, actual %v", m.Err())
	}
	tests := []struct {
		name string
		f    func() DDD
		err  error
	}{
		{"Node variable", func() DDD { return m.Node(1<<33, 0, m.One()) }, ErrVariable},
		{"NodeRange", func() DDD { return m.NodeRange(0, -1<<40, 2, m.One()) }, ErrValue},
		{"NodeArcs", func() DDD { return m.NodeArcs(0, []Arc{{Value: 1 << 31, Child: m.One()}}) }, ErrValue},
		{"Path", func() DDD { return m.Path(0, -1<<31-1) }, ErrValue},
	}
	for _, tt := range tests {
		m.ResetError()
		if res := tt.f(); !res.IsTop() {
			t.Errorf("%s: expected top, actual %s", tt.name, res)
		}
		if !errors.Is(m.Err(), tt.err) {
			t.Errorf("%s: expected %v, actual %v", tt.name, tt.err, m.Err())
		}
	}
	m.ResetError()
	// bounds of int32 are valid values
	if d := m.Path(math.MaxInt32, math.MinInt32); d.IsTop() || m.Errored() {
		t.Errorf("unexpected error: %s", m.Error())
	}
	if res := m.Prefix(0, 1<<40, m.Identity()).Eval(m.One()); !res.IsTop() {
		t.Errorf("Prefix out of range: expected top, actual %s", res)
	}
}

func TestPathsTop(t *testing.T) {
	m := New()
	calls := 0
	err := m.Top().Paths(func([]Assignment) error {
		calls++
		return nil
	})
	if !errors.Is(err, ErrTopPaths) || calls != 0 {
		t.Errorf("Paths on top: expected ErrTopPaths, actual %v (%d calls)", err, calls)
	}
	err = m.STop().Paths(func([]SAssignment) error {
		calls++
		return nil
	})
	if !errors.Is(err, ErrTopPaths) || calls != 0 {
		t.Errorf("SDD Paths on top: expected ErrTopPaths, actual %v (%d calls)", err, calls)
	}
	if m.Errored() {
		t.Errorf("Paths should not change the error status, found %s", m.Error())
	}
}

func TestNbStates(t *testing.T) {
	m := New()
	// 5 variables with 10 possible values each
	d := m.One()
	for v := 4; v >= 0; v-- {
		d = m.NodeRange(v, 0, 9, d)
	}
	if actual := d.NbStates().String(); actual != "100000" {
		t.Errorf("NbStates: expected 100000, actual %s", actual)
	}
	if actual := d.NodeCount(); actual != 5 {
		t.Errorf("NodeCount: expected 5, actual %d", actual)
	}
	if actual := m.Top().NbStates().Sign(); actual != 0 {
		t.Errorf("NbStates(top): expected 0, actual %d", actual)
	}
}
