// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package main

import (
	"fmt"
	"time"

	"github.com/dalzilio/ddd"
	"github.com/scott-cotton/cli"
)

// move is the homomorphism moving ring r from pole from to pole to. Variable k
// holds the pole of ring k and smaller rings have smaller indices.
type move struct {
	ring, from, to int
}

func (h move) PhiOne(m *ddd.Manager) ddd.DDD {
	return m.Null()
}

func (h move) Phi(m *ddd.Manager, variable, value int) ddd.Hom {
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

func (h move) Hash() uint64 { return ddd.HashInts(h.ring, h.from, h.to) }

func (h move) Equal(o ddd.StrongHom) bool {
	g, ok := o.(move)
	return ok && g == h
}

func (h move) Mark(*ddd.Marker) {}

// smove is the same homomorphism on SDD, where each ring is labelled with a
// set of poles.
type smove struct {
	ring, from, to int
}

func (h smove) PhiOne(m *ddd.Manager) ddd.SDD {
	return m.SNull()
}

func (h smove) Phi(m *ddd.Manager, variable int, label ddd.DataSet) ddd.Shom {
	if variable < h.ring {
		rest := label.Minus(ddd.NewIntSet(h.from, h.to))
		if rest.Empty() {
			return m.SConstant(m.SNull())
		}
		return m.SPrefix(variable, rest, m.SInductive(h))
	}
	if !label.Intersect(ddd.NewIntSet(h.from)).Empty() {
		return m.SPrefix(variable, ddd.NewIntSet(h.to), m.SIdentity())
	}
	return m.SConstant(m.SNull())
}

func (h smove) Hash() uint64 { return ddd.HashInts(h.ring, h.from, h.to) }

func (h smove) Equal(o ddd.StrongShom) bool {
	g, ok := o.(smove)
	return ok && g == h
}

func (h smove) Mark(*ddd.Marker) {}

func hanoi(cfg *HanoiConfig, cc *cli.Context, args []string) error {
	if _, err := cfg.Hanoi.Parse(cc, args); err != nil {
		return err
	}
	if cfg.Rings == 0 {
		cfg.Rings = 4
	}
	if cfg.Poles == 0 {
		cfg.Poles = 3
	}
	if cfg.Rings < 0 || cfg.Poles < 2 {
		return fmt.Errorf("%w: need a positive number of rings and at least 2 poles", cli.ErrUsage)
	}
	m := ddd.New(ddd.Logger(cfg.log), ddd.Nodesize(1<<14), ddd.Cachesize(1<<14))
	start := time.Now()
	var states, nodes string
	if cfg.SDD {
		var moves []ddd.Shom
		for r := 0; r < cfg.Rings; r++ {
			for from := 0; from < cfg.Poles; from++ {
				for to := 0; to < cfg.Poles; to++ {
					if from != to {
						moves = append(moves, m.SInductive(smove{ring: r, from: from, to: to}))
					}
				}
			}
		}
		initial := m.SOne()
		for r := cfg.Rings - 1; r >= 0; r-- {
			initial = m.SNode(r, ddd.NewIntSet(0), initial)
		}
		res := m.SFixpoint(m.SAdd(append(moves, m.SIdentity())...)).Eval(initial)
		states, nodes = res.NbStates().String(), fmt.Sprint(res.NodeCount())
	} else {
		var moves []ddd.Hom
		for r := 0; r < cfg.Rings; r++ {
			for from := 0; from < cfg.Poles; from++ {
				for to := 0; to < cfg.Poles; to++ {
					if from != to {
						moves = append(moves, m.Inductive(move{ring: r, from: from, to: to}))
					}
				}
			}
		}
		res := m.Fixpoint(m.Add(append(moves, m.Identity())...)).Eval(m.Path(make([]int, cfg.Rings)...))
		states, nodes = res.NbStates().String(), fmt.Sprint(res.NodeCount())
	}
	if m.Errored() {
		return m.Err()
	}
	fmt.Fprintf(cc.Out, "hanoi(%d, %d): %s states, %s nodes, in %s\n", cfg.Rings, cfg.Poles, states, nodes, time.Since(start).Round(time.Millisecond))
	if cfg.Stats {
		printStats(cc.Out, m, cfg.Color)
	}
	return nil
}
