// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ddd

import (
	"math/big"
	"testing"
)

// move is the homomorphism moving ring r from pole from to pole to, in the
// Towers of Hanoi puzzle. Variable k holds the pole of ring k, and rings are
// numbered from the smallest one, so the move is possible only if no smaller
// ring (variable lower than r) is on poles from or to.
type move struct {
	ring, from, to int
}

func (h move) PhiOne(m *Manager) DDD {
	return m.Null()
}

func (h move) Phi(m *Manager, variable, value int) Hom {
	if variable < h.ring {
		if value == h.from || value == h.to {
			return m.Constant(m.Null())
		}
		return m.Prefix(variable, value, m.Inductive(h))
	}
	if value != h.from {
		return m.Constant(m.Null())
	}
	return m.Prefix(variable, h.to, m.Identity())
}

func (h move) Hash() uint64 {
	return HashInts(h.ring, h.from, h.to)
}

func (h move) Equal(o StrongHom) bool {
	g, ok := o.(move)
	return ok && g == h
}

func (h move) Mark(mk *Marker) {}

// hanoi returns the set of states reachable in the Towers of Hanoi puzzle with
// the given number of rings and poles, starting from the state where all the
// rings are on pole 0.
func hanoi(m *Manager, rings, poles int) DDD {
	moves := []Hom{m.Identity()}
	for r := 0; r < rings; r++ {
		for from := 0; from < poles; from++ {
			for to := 0; to < poles; to++ {
				if from != to {
					moves = append(moves, m.Inductive(move{ring: r, from: from, to: to}))
				}
			}
		}
	}
	return m.Fixpoint(m.Add(moves...)).Eval(m.Path(make([]int, rings)...))
}

// smove is the version of move on SDD, where each variable is labelled with a
// set of poles.
type smove struct {
	ring, from, to int
}

func (h smove) PhiOne(m *Manager) SDD {
	return m.SNull()
}

func (h smove) Phi(m *Manager, variable int, label DataSet) Shom {
	if variable < h.ring {
		rest := label.Minus(NewIntSet(h.from, h.to))
		if rest.Empty() {
			return m.SConstant(m.SNull())
		}
		return m.SPrefix(variable, rest, m.SInductive(h))
	}
	if !label.(IntSet).Contains(h.from) {
		return m.SConstant(m.SNull())
	}
	return m.SPrefix(variable, NewIntSet(h.to), m.SIdentity())
}

func (h smove) Hash() uint64 {
	return HashInts(h.ring, h.from, h.to)
}

func (h smove) Equal(o StrongShom) bool {
	g, ok := o.(smove)
	return ok && g == h
}

func (h smove) Mark(mk *Marker) {}

func shanoi(m *Manager, rings, poles int) SDD {
	moves := []Shom{m.SIdentity()}
	for r := 0; r < rings; r++ {
		for from := 0; from < poles; from++ {
			for to := 0; to < poles; to++ {
				if from != to {
					moves = append(moves, m.SInductive(smove{ring: r, from: from, to: to}))
				}
			}
		}
	}
	initial := m.SOne()
	for r := rings - 1; r >= 0; r-- {
		initial = m.SNode(r, NewIntSet(0), initial)
	}
	return m.SFixpoint(m.SAdd(moves...)).Eval(initial)
}

// Every configuration of the puzzle is reachable, hence the number of states is
// poles^rings.
var hanoiTests = []struct {
	rings, poles int
}{
	{1, 3},
	{3, 3},
	{4, 3},
	{3, 4},
	{5, 3},
}

func TestHanoi(t *testing.T) {
	for _, tt := range hanoiTests {
		m := New()
		expected := new(big.Int).Exp(big.NewInt(int64(tt.poles)), big.NewInt(int64(tt.rings)), nil)
		if actual := hanoi(m, tt.rings, tt.poles).NbStates(); actual.Cmp(expected) != 0 {
			t.Errorf("hanoi(%d, %d): expected %s, actual %s", tt.rings, tt.poles, expected, actual)
		}
		if m.Errored() {
			t.Errorf("hanoi(%d, %d): unexpected error %s", tt.rings, tt.poles, m.Error())
		}
	}
}

func TestHanoiSDD(t *testing.T) {
	for _, tt := range hanoiTests {
		m := New()
		expected := new(big.Int).Exp(big.NewInt(int64(tt.poles)), big.NewInt(int64(tt.rings)), nil)
		if actual := shanoi(m, tt.rings, tt.poles).NbStates(); actual.Cmp(expected) != 0 {
			t.Errorf("shanoi(%d, %d): expected %s, actual %s", tt.rings, tt.poles, expected, actual)
		}
		if m.Errored() {
			t.Errorf("shanoi(%d, %d): unexpected error %s", tt.rings, tt.poles, m.Error())
		}
	}
}

func BenchmarkHanoi(b *testing.B) {
	for i := 0; i < b.N; i++ {
		m := New(Nodesize(1<<14), Cachesize(1<<14))
		hanoi(m, 8, 3)
	}
}
