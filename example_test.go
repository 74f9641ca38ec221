// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ddd_test

import (
	"fmt"

	"github.com/dalzilio/ddd"
)

// This example shows the basic usage of the package: create a manager, build
// some DDD, compute set operations and print the result.
func Example_basic() {
	m := ddd.New(ddd.Nodesize(1000), ddd.Cachesize(500))
	m.SetVarName(0, "a")
	m.SetVarName(1, "b")
	// each path gives one value to every variable, starting with variable 0
	d := m.Union(m.Path(1, 2), m.Path(1, 3), m.Path(2, 3))
	fmt.Println(d)
	fmt.Println("number of states:", d.NbStates())
	fmt.Println(m.Minus(d, m.Path(1, 3)))
	fmt.Println(m.Intersect(d, m.NodeRange(0, 2, 5, m.NodeRange(1, 0, 9, m.One()))))
	// Output:
	// {[a=1 b=2], [a=1 b=3], [a=2 b=3]}
	// number of states: 3
	// {[a=1 b=2], [a=2 b=3]}
	// {[a=2 b=3]}
}

// incr adds one to the value of a variable. It is an inductive homomorphism
// that only needs to be defined on the target variable, since it implements
// the Skipper interface.
type incr int

func (h incr) PhiOne(m *ddd.Manager) ddd.DDD { return m.One() }

func (h incr) Phi(m *ddd.Manager, variable, value int) ddd.Hom {
	return m.Prefix(variable, value+1, m.Identity())
}

func (h incr) Skip(variable int) bool { return variable != int(h) }

func (h incr) Hash() uint64 { return ddd.HashInts(int(h)) }

func (h incr) Equal(o ddd.StrongHom) bool {
	g, ok := o.(incr)
	return ok && g == h
}

func (h incr) Mark(*ddd.Marker) {}

// This example shows how to compute a set of reachable states with a
// fixpoint, and how to keep the result alive across garbage collections.
func Example_homomorphism() {
	m := ddd.New()
	// x1 := x1 + 1, only when x1 < 3
	step := m.Compose(m.Inductive(incr(1)), m.Diff(m.Identity(), m.Path(0, 3)))
	reach := m.Fixpoint(m.Add(m.Identity(), step))
	res := ddd.NewRef(reach.Eval(m.Path(0, 0)))
	m.GC()
	fmt.Println(res.Get())
	res.Release()
	// Output:
	// {[x0=0 x1=0], [x0=0 x1=1], [x0=0 x1=2], [x0=0 x1=3]}
}
