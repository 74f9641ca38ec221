// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package model defines a small language of transition systems over bounded
// integer variables, and compiles them into DDD homomorphisms. A model is
// described in YAML: a list of variables, with an initial value and an upper
// bound, and a list of transitions. Each transition is a list of effects on
// distinct variables; an effect has an optional guard and an optional update,
// written as expressions over the current value of the variable.
//
//	name: counter
//	variables:
//	  - {name: x, init: 0, max: 3}
//	transitions:
//	  - name: inc
//	    effects:
//	      - {var: x, guard: "x < 3", update: "x + 1"}
//
// In expressions, the value of the variable can be referred to by its name or
// with the identifier v.
package model

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/goccy/go-yaml"
)

// Model is the description of a transition system.
type Model struct {
	Name        string       `yaml:"name"`
	Variables   []Variable   `yaml:"variables"`
	Transitions []Transition `yaml:"transitions"`
}

// Variable is a state variable with values in the interval [0, Max]. A Max of
// 0 means that the variable is unbounded.
type Variable struct {
	Name string `yaml:"name"`
	Init int    `yaml:"init"`
	Max  int    `yaml:"max"`
}

// Transition is a named list of effects, that are applied simultaneously.
type Transition struct {
	Name    string   `yaml:"name"`
	Effects []Effect `yaml:"effects"`
}

// Effect is the action of a transition on one variable. The transition is
// disabled when Guard evaluates to false. An empty Guard is always true and an
// empty Update leaves the value unchanged.
type Effect struct {
	Var    string `yaml:"var"`
	Guard  string `yaml:"guard,omitempty"`
	Update string `yaml:"update,omitempty"`
}

// ErrModel is the error returned, wrapped, when a model is not well-formed.
var ErrModel = errors.New("invalid model")

// Parse reads a model from its YAML description. Unknown fields are
// rejected.
func Parse(data []byte) (*Model, error) {
	mdl := &Model{}
	if err := yaml.UnmarshalWithOptions(data, mdl, yaml.DisallowUnknownField()); err != nil {
		return nil, fmt.Errorf("error decoding model: %w", err)
	}
	if err := mdl.Validate(); err != nil {
		return nil, err
	}
	return mdl, nil
}

// Load reads a model from a YAML file.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Validate checks that variable names are unique, that initial values are
// within bounds, and that each effect refers to a declared variable, with at
// most one effect per variable in a transition.
func (mdl *Model) Validate() error {
	if len(mdl.Variables) == 0 {
		return fmt.Errorf("%w: no variables", ErrModel)
	}
	index := mdl.index()
	if len(index) != len(mdl.Variables) {
		return fmt.Errorf("%w: duplicate variable names", ErrModel)
	}
	for _, v := range mdl.Variables {
		if v.Name == "" || v.Name == "v" {
			return fmt.Errorf("%w: bad variable name %q", ErrModel, v.Name)
		}
		if v.Init < 0 || v.Max < 0 || v.Init > math.MaxInt32 || v.Max > math.MaxInt32 || (v.Max > 0 && v.Init > v.Max) {
			return fmt.Errorf("%w: initial value of %s out of bounds", ErrModel, v.Name)
		}
	}
	for _, t := range mdl.Transitions {
		seen := make(map[string]bool)
		for _, e := range t.Effects {
			if _, ok := index[e.Var]; !ok {
				return fmt.Errorf("%w: transition %s uses unknown variable %q", ErrModel, t.Name, e.Var)
			}
			if seen[e.Var] {
				return fmt.Errorf("%w: transition %s has two effects on %s", ErrModel, t.Name, e.Var)
			}
			seen[e.Var] = true
		}
	}
	return nil
}

// index returns the position of each variable, that is also its index in the
// DDD.
func (mdl *Model) index() map[string]int {
	res := make(map[string]int, len(mdl.Variables))
	for k, v := range mdl.Variables {
		res[v.Name] = k
	}
	return res
}
