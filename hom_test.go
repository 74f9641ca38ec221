// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ddd

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// inc is an inductive homomorphism adding 1 to the value of a given variable.
// It implements Skipper, so Phi is only called on the target variable.
type inc struct {
	variable int
}

func (h inc) PhiOne(m *Manager) DDD {
	return m.One()
}

func (h inc) Phi(m *Manager, variable, value int) Hom {
	return m.Prefix(variable, value+1, m.Identity())
}

func (h inc) Skip(variable int) bool {
	return variable != h.variable
}

func (h inc) Hash() uint64 {
	return HashInts(h.variable)
}

func (h inc) Equal(o StrongHom) bool {
	g, ok := o.(inc)
	return ok && g == h
}

func (h inc) Mark(mk *Marker) {}

// guard keeps the paths where variable has value val, and appends keep to
// them. It stores a DDD, to test the marking of user homomorphisms.
type guard struct {
	variable, val int
	keep          DDD
}

func (h guard) PhiOne(m *Manager) DDD {
	return m.One()
}

func (h guard) Phi(m *Manager, variable, value int) Hom {
	if variable != h.variable {
		return m.Prefix(variable, value, m.Inductive(h))
	}
	if value != h.val {
		return m.Constant(m.Null())
	}
	return m.Prefix(variable, value, m.RightConcat(m.Identity(), h.keep))
}

func (h guard) Hash() uint64 {
	return HashInts(h.variable, h.val, int(h.keep.id))
}

func (h guard) Equal(o StrongHom) bool {
	g, ok := o.(guard)
	return ok && g == h
}

func (h guard) Mark(mk *Marker) {
	mk.DDD(h.keep)
}

func TestIdentityLaw(t *testing.T) {
	m := New()
	r := rand.New(rand.NewSource(3))
	id := m.Identity()
	for i := 0; i < 10; i++ {
		x := randomDDD(m, r, 1+r.Intn(10), 3, 4)
		if y := id.Eval(x); y != x {
			t.Errorf("id(x) != x with x = %s", x)
		}
	}
	for _, x := range []DDD{m.Null(), m.One(), m.Top()} {
		if y := id.Eval(x); y != x {
			t.Errorf("id(%s): actual %s", x, y)
		}
	}
	if m.Compose(id, m.Inductive(inc{0})) != m.Inductive(inc{0}) {
		t.Errorf("id o h != h")
	}
}

func TestCombinators(t *testing.T) {
	m := New()
	x := m.Union(m.Path(0, 0), m.Path(1, 2))
	h := m.Inductive(inc{1})
	tests := []struct {
		name     string
		hom      Hom
		expected DDD
	}{
		{"inc", h, m.Union(m.Path(0, 1), m.Path(1, 3))},
		{"constant", m.Constant(m.Path(5, 5)), m.Path(5, 5)},
		{"add", m.Add(h, m.Identity()), m.Union(x, m.Path(0, 1), m.Path(1, 3))},
		{"and", m.And(h, m.Constant(m.Path(0, 1))), m.Path(0, 1)},
		{"mult", m.Mult(m.Path(1, 3), h), m.Path(1, 3)},
		{"compose", m.Compose(h, h), m.Union(m.Path(0, 2), m.Path(1, 4))},
		{"diff", m.Diff(h, m.Path(0, 1)), m.Path(1, 3)},
		{"leftconcat", m.LeftConcat(m.Node(0, 9, m.One()), m.Identity()), m.Concat(m.Node(0, 9, m.One()), x)},
		{"rightconcat", m.RightConcat(m.Identity(), m.Node(2, 9, m.One())), m.Union(m.Path(0, 0, 9), m.Path(1, 2, 9))},
		{"empty add", m.Add(), m.Null()},
	}
	for _, tt := range tests {
		if actual := tt.hom.Eval(x); actual != tt.expected {
			t.Errorf("%s(x): expected %s, actual %s", tt.name, tt.expected, actual)
		}
		if actual := tt.hom.Eval(m.Null()); actual != m.Null() {
			t.Errorf("%s(null): expected null, actual %s", tt.name, actual)
		}
	}
	if m.Add(h, m.Identity()) != m.Add(m.Identity(), h, h) {
		t.Errorf("Add should not depend on the order and multiplicity of its operands")
	}
	if m.Add(m.Add(h, m.Identity()), m.Constant(m.Null())) != m.Add(h, m.Identity()) {
		t.Errorf("Add should be flattened and ignore the constant null")
	}
	if m.Errored() {
		t.Errorf("unexpected error: %s", m.Error())
	}
}

func TestFixpoint(t *testing.T) {
	m := New()
	// bounded counter on variable 0: x0 < 5 -> x0 + 1
	h := m.Fixpoint(m.Add(m.Identity(), m.Compose(m.Inductive(inc{0}), m.Inductive(guardLess{0, 5}))))
	res := h.Eval(m.Path(0))
	if diff := cmp.Diff([][]int{{0}, {1}, {2}, {3}, {4}, {5}}, paths(res)); diff != "" {
		t.Errorf("fixpoint mismatch (-want +got):\n%s", diff)
	}
}

// guardLess keeps the paths where variable is less than bound.
type guardLess struct {
	variable, bound int
}

func (h guardLess) PhiOne(m *Manager) DDD { return m.One() }

func (h guardLess) Phi(m *Manager, variable, value int) Hom {
	if value >= h.bound {
		return m.Constant(m.Null())
	}
	return m.Prefix(variable, value, m.Identity())
}

func (h guardLess) Skip(variable int) bool { return variable != h.variable }

func (h guardLess) Hash() uint64 { return HashInts(h.variable, h.bound) }

func (h guardLess) Equal(o StrongHom) bool {
	g, ok := o.(guardLess)
	return ok && g == h
}

func (h guardLess) Mark(mk *Marker) {}

func TestLocal(t *testing.T) {
	m := New()
	// variable 0 of the SDD holds a DDD with a single variable
	inner := m.Union(m.Path(1), m.Path(2))
	s := m.SNode(0, inner, m.SNode(1, NewIntSet(7), m.SOne()))
	h := m.Local(m.Inductive(inc{0}), 0)
	expected := m.SNode(0, m.Union(m.Path(2), m.Path(3)), m.SNode(1, NewIntSet(7), m.SOne()))
	if actual := h.Eval(s); actual != expected {
		t.Errorf("Local: expected %s, actual %s", expected, actual)
	}
	// the homomorphism traverses variables until it finds the target
	t2 := m.SNode(1, NewIntSet(3), s)
	expected2 := m.SNode(1, NewIntSet(3), expected)
	if actual := h.Eval(t2); actual != expected2 {
		t.Errorf("Local: expected %s, actual %s", expected2, actual)
	}
	// LocalS on nested SDD
	nested := m.SNode(0, s, m.SOne())
	hs := m.LocalS(h, 0)
	if actual := hs.Eval(nested); actual != m.SNode(0, expected, m.SOne()) {
		t.Errorf("LocalS: unexpected result %s", actual)
	}
	if m.Errored() {
		t.Errorf("unexpected error: %s", m.Error())
	}
}

// ************************************************************

// swap is a multi-linear homomorphism exchanging the values of variables 0
// and 1. On variable 0, with value a, it reads the value b of variable 1, that
// is replaced by a, and returns the homomorphism prefixing b to the result.
type swap struct{}

func (h swap) PhiOne(m *Manager) *HomNodeMap { return m.NewHomNodeMap() }

func (h swap) Phi(m *Manager, variable, value int) *HomMLMap {
	return m.NewHomMLMap().Add(m.Identity(), m.MLInductive(setSecond{value}))
}

func (h swap) Hash() uint64 { return 17 }

func (h swap) Equal(o StrongMLHom) bool {
	_, ok := o.(swap)
	return ok
}

func (h swap) Mark(mk *Marker) {}

type setSecond struct {
	value int
}

func (h setSecond) PhiOne(m *Manager) *HomNodeMap { return m.NewHomNodeMap() }

func (h setSecond) Phi(m *Manager, variable, value int) *HomMLMap {
	return m.NewHomMLMap().Add(m.Prefix(0, value, m.Identity()), m.MLFromHom(m.Prefix(variable, h.value, m.Identity())))
}

func (h setSecond) Hash() uint64 { return HashInts(h.value) }

func (h setSecond) Equal(o StrongMLHom) bool {
	g, ok := o.(setSecond)
	return ok && g == h
}

func (h setSecond) Mark(mk *Marker) {}

func TestMLHom(t *testing.T) {
	m := New()
	x := m.Union(m.Path(1, 2, 3), m.Path(4, 5, 6), m.Path(4, 2, 6))
	ml := m.MLInductive(swap{})
	res := ml.Eval(x)
	// one entry for each value of variable 1
	if res.Len() != 2 {
		t.Errorf("MLHom: expected 2 entries, actual %d", res.Len())
	}
	if actual := res.Get(m.Prefix(0, 2, m.Identity())); actual != m.Union(m.Node(1, 1, m.Node(2, 3, m.One())), m.Node(1, 4, m.Node(2, 6, m.One()))) {
		t.Errorf("MLHom: unexpected entry for x0=2: %s", actual)
	}
	expected := m.Union(m.Path(2, 1, 3), m.Path(5, 4, 6), m.Path(2, 4, 6))
	if actual := m.FromML(ml).Eval(x); actual != expected {
		t.Errorf("FromML(swap): expected %s, actual %s", expected, actual)
	}
	// the sum of two multi-linear homomorphisms is additive
	both := m.MLAdd(ml, m.MLIdentity())
	if actual := m.FromML(both).Eval(x); actual != m.Union(x, expected) {
		t.Errorf("FromML(swap + id): unexpected result %s", actual)
	}
	if m.MLAdd(ml, m.MLIdentity()) != m.MLAdd(m.MLIdentity(), ml, ml) {
		t.Errorf("MLAdd should not depend on the order and multiplicity of its operands")
	}
	if m.Errored() {
		t.Errorf("unexpected error: %s", m.Error())
	}
}

func TestAdditiveMap(t *testing.T) {
	m := New()
	h := m.Inductive(inc{0})
	hm := m.NewHomNodeMap()
	hm.Add(h, m.Path(1)).Add(h, m.Path(2)).Add(m.Identity(), m.Null())
	if hm.Len() != 1 {
		t.Errorf("additive map: expected 1 entry, actual %d", hm.Len())
	}
	if actual := hm.Get(h); actual != m.Union(m.Path(1), m.Path(2)) {
		t.Errorf("additive map: expected union of the values, actual %s", actual)
	}
	count := 0
	hm.Each(func(k Hom, v DDD) {
		count++
		if k != h {
			t.Errorf("additive map: unexpected key %s", k)
		}
	})
	if count != 1 {
		t.Errorf("Each: expected 1 call, actual %d", count)
	}
}

// forget drops the rest of a path, whatever its length.
type forget struct{}

func (h forget) PhiOne(m *Manager) DDD { return m.One() }

func (h forget) Phi(m *Manager, variable, value int) Hom { return m.Constant(m.One()) }

func (h forget) Hash() uint64 { return 23 }

func (h forget) Equal(o StrongHom) bool {
	_, ok := o.(forget)
	return ok
}

func (h forget) Mark(mk *Marker) {}

type sforget struct{}

func (h sforget) PhiOne(m *Manager) SDD { return m.SOne() }

func (h sforget) Phi(m *Manager, variable int, label DataSet) Shom { return m.SConstant(m.SOne()) }

func (h sforget) Hash() uint64 { return 29 }

func (h sforget) Equal(o StrongShom) bool {
	_, ok := o.(sforget)
	return ok
}

func (h sforget) Mark(mk *Marker) {}

func TestInductiveUnevenChildren(t *testing.T) {
	m := New()
	// {[x0=1], [x0=2 x1=0]}: the children of the root cannot be united
	d := m.NodeArcs(0, []Arc{{Value: 1, Child: m.One()}, {Value: 2, Child: m.Node(1, 0, m.One())}})
	if d.IsTop() {
		t.Fatalf("unexpected error building operand: %s", m.Error())
	}
	if res := m.Inductive(forget{}).Eval(d); res != m.One() {
		t.Errorf("forget: expected {[]}, actual %s (error: %s)", res, m.Error())
	}
	s := m.SNodeArcs(0, []SArc{
		{Label: NewIntSet(1), Child: m.SOne()},
		{Label: NewIntSet(2), Child: m.SNode(1, NewIntSet(0), m.SOne())},
	})
	if s.IsTop() {
		t.Fatalf("unexpected error building operand: %s", m.Error())
	}
	if res := m.SInductive(sforget{}).Eval(s); res != m.SOne() {
		t.Errorf("sforget: expected {[]}, actual %s (error: %s)", res, m.Error())
	}
	if m.Errored() {
		t.Errorf("unexpected error: %s", m.Error())
	}
}
