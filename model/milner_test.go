// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package model

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/dalzilio/ddd"
	. "github.com/onsi/gomega"
)

// milner returns the model of Milner's scheduler with N cyclers. Cycler i
// has three boolean variables: ci (has the token), ti (task running) and hi
// (token must be passed). For this system, the number of reachable states is
// N * 2^(N+1).
func milner(N int) *Model {
	mdl := &Model{Name: fmt.Sprintf("milner%d", N)}
	for i := 0; i < N; i++ {
		init := 0
		if i == 0 {
			init = 1
		}
		mdl.Variables = append(mdl.Variables,
			Variable{Name: fmt.Sprintf("c%d", i), Init: init, Max: 1},
			Variable{Name: fmt.Sprintf("t%d", i), Max: 1},
			Variable{Name: fmt.Sprintf("h%d", i), Max: 1})
	}
	for i := 0; i < N; i++ {
		c, t, h := fmt.Sprintf("c%d", i), fmt.Sprintf("t%d", i), fmt.Sprintf("h%d", i)
		next := fmt.Sprintf("c%d", (i+1)%N)
		mdl.Transitions = append(mdl.Transitions,
			Transition{Name: "start" + c, Effects: []Effect{
				{Var: c, Guard: "v == 1", Update: "0"},
				{Var: t, Guard: "v == 0", Update: "1"},
				{Var: h, Update: "1"},
			}},
			Transition{Name: "pass" + c, Effects: []Effect{
				{Var: h, Guard: "v == 1", Update: "0"},
				{Var: next, Update: "1"},
			}},
			Transition{Name: "end" + t, Effects: []Effect{
				{Var: t, Guard: "v == 1", Update: "0"},
			}})
	}
	return mdl
}

func TestMilner(t *testing.T) {
	for _, N := range []int{2, 4, 5, 7} {
		g := NewWithT(t)
		m := ddd.New(ddd.Nodesize(1000), ddd.Cachesize(1000))
		sys, err := Compile(m, milner(N))
		g.Expect(err).NotTo(HaveOccurred())
		res, err := sys.Reach()
		g.Expect(err).NotTo(HaveOccurred())
		expected := new(big.Int).Lsh(big.NewInt(int64(N)), uint(N+1))
		g.Expect(res.NbStates().Cmp(expected)).To(BeZero(), "Milner(%d): expected %s, actual %s", N, expected, res.NbStates())
		sys.Release()
	}
}

func BenchmarkMilner(b *testing.B) {
	for n := 0; n < b.N; n++ {
		m := ddd.New(ddd.Nodesize(1<<14), ddd.Cachesize(1<<14))
		sys, err := Compile(m, milner(20))
		if err != nil {
			b.Fatal(err)
		}
		if _, err := sys.Reach(); err != nil {
			b.Fatal(err)
		}
	}
}
