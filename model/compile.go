// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package model

import (
	"fmt"
	"math"

	"github.com/dalzilio/ddd"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/go-logr/logr"
)

// System is a model compiled into DDD and homomorphisms of a given manager.
// The initial state and the homomorphisms are pinned until the call to
// Release.
type System struct {
	m       *ddd.Manager
	name    string
	initial *ddd.Ref[ddd.DDD]
	trans   []*ddd.Ref[ddd.Hom]
	names   []string
	next    *ddd.Ref[ddd.Hom]
	log     logr.Logger
	err     error // first error raised while evaluating an expression
}

// effect is the inductive homomorphism applying one effect of a transition.
// Expressions are only evaluated on the target variable.
type effect struct {
	sys      *System
	id       int
	variable int
	name     string
	max      int
	guard    *vm.Program
	update   *vm.Program
}

// effectHom wraps an effect so that two homomorphisms are equal only if they
// are built from the same effect.
type effectHom struct {
	*effect
}

func (h effectHom) PhiOne(m *ddd.Manager) ddd.DDD {
	return m.Null()
}

func (h effectHom) Phi(m *ddd.Manager, variable, value int) ddd.Hom {
	env := map[string]any{"v": value, h.name: value}
	if h.guard != nil {
		out, err := expr.Run(h.guard, env)
		if err != nil {
			h.sys.fail(fmt.Errorf("guard on %s: %w", h.name, err))
			return m.Constant(m.Null())
		}
		if !out.(bool) {
			return m.Constant(m.Null())
		}
	}
	nv := value
	if h.update != nil {
		out, err := expr.Run(h.update, env)
		if err != nil {
			h.sys.fail(fmt.Errorf("update of %s: %w", h.name, err))
			return m.Constant(m.Null())
		}
		nv = out.(int)
		if nv > math.MaxInt32 {
			h.sys.fail(fmt.Errorf("%w: update of %s overflows: %d", ErrModel, h.name, nv))
			return m.Constant(m.Null())
		}
	}
	if nv < 0 || (h.max > 0 && nv > h.max) {
		return m.Constant(m.Null())
	}
	return m.Prefix(variable, nv, m.Identity())
}

func (h effectHom) Skip(variable int) bool {
	return variable != h.variable
}

func (h effectHom) Hash() uint64 {
	return ddd.HashInts(h.id, h.variable)
}

func (h effectHom) Equal(o ddd.StrongHom) bool {
	g, ok := o.(effectHom)
	return ok && g.effect == h.effect
}

func (h effectHom) Mark(*ddd.Marker) {}

// ************************************************************

// Compile builds the initial state and the transition relation of mdl in
// manager m. Variables are named in m after the model, so that DDD are printed
// with the names of the model.
func Compile(m *ddd.Manager, mdl *Model) (*System, error) {
	if err := mdl.Validate(); err != nil {
		return nil, err
	}
	s := &System{
		m:    m,
		name: mdl.Name,
		log:  m.Logger().WithName("model").WithValues("model", mdl.Name),
	}
	index := mdl.index()
	init := make([]int, len(mdl.Variables))
	for k, v := range mdl.Variables {
		m.SetVarName(k, v.Name)
		init[k] = v.Init
	}
	s.initial = ddd.NewRef(m.Path(init...))
	homs := []ddd.Hom{m.Identity()}
	count := 0
	for _, t := range mdl.Transitions {
		h := m.Identity()
		for _, e := range t.Effects {
			k := index[e.Var]
			eff := &effect{sys: s, id: count, variable: k, name: e.Var, max: mdl.Variables[k].Max}
			count++
			env := map[string]any{"v": 0, e.Var: 0}
			var err error
			if e.Guard != "" {
				if eff.guard, err = expr.Compile(e.Guard, expr.Env(env), expr.AsBool()); err != nil {
					return nil, fmt.Errorf("%w: guard of %s in %s: %w", ErrModel, e.Var, t.Name, err)
				}
			}
			if e.Update != "" {
				if eff.update, err = expr.Compile(e.Update, expr.Env(env), expr.AsInt()); err != nil {
					return nil, fmt.Errorf("%w: update of %s in %s: %w", ErrModel, e.Var, t.Name, err)
				}
			}
			h = m.Compose(m.Inductive(effectHom{eff}), h)
		}
		s.trans = append(s.trans, ddd.NewRef(h))
		s.names = append(s.names, t.Name)
		homs = append(homs, h)
	}
	s.next = ddd.NewRef(m.Add(homs...))
	s.log.V(1).Info("compiled", "variables", len(mdl.Variables), "transitions", len(s.trans))
	return s, nil
}

// fail records the first evaluation error.
func (s *System) fail(err error) {
	if s.err == nil {
		s.err = err
	}
}

// Initial returns the DDD with the initial state of the system.
func (s *System) Initial() ddd.DDD {
	return s.initial.Get()
}

// Transition returns the homomorphism associated with the transition with the
// given name.
func (s *System) Transition(name string) (ddd.Hom, bool) {
	for k, n := range s.names {
		if n == name {
			return s.trans[k].Get(), true
		}
	}
	return ddd.Hom{}, false
}

// Next returns the homomorphism computing the states reachable in at most one
// step.
func (s *System) Next() ddd.Hom {
	return s.next.Get()
}

// Post returns the set of states reachable from d in at most one step.
func (s *System) Post(d ddd.DDD) (ddd.DDD, error) {
	return s.result(s.Next().Eval(d))
}

// Reach returns the set of states reachable from the initial state.
func (s *System) Reach() (ddd.DDD, error) {
	res, err := s.result(s.m.Fixpoint(s.Next()).Eval(s.Initial()))
	if err != nil {
		return res, err
	}
	s.log.V(1).Info("state space", "states", res.NbStates().String(), "nodes", res.NodeCount())
	return res, nil
}

func (s *System) result(d ddd.DDD) (ddd.DDD, error) {
	if s.err != nil {
		return s.m.Top(), s.err
	}
	if s.m.Errored() {
		return s.m.Top(), s.m.Err()
	}
	return d, nil
}

// Release unpins the DDD and homomorphisms of the system, that can be
// reclaimed by the next garbage collection of the manager.
func (s *System) Release() {
	s.initial.Release()
	s.next.Release()
	for _, r := range s.trans {
		r.Release()
	}
}
