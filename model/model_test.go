// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package model

import (
	"testing"

	"github.com/dalzilio/ddd"
	. "github.com/onsi/gomega"
)

func TestLoad(t *testing.T) {
	g := NewWithT(t)
	mdl, err := Load("testdata/tokens.yaml")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(mdl.Name).To(Equal("tokens"))
	g.Expect(mdl.Variables).To(HaveLen(3))
	g.Expect(mdl.Transitions[1].Effects[0]).To(Equal(Effect{Var: "busy", Guard: "v > 0", Update: "v - 1"}))

	m := ddd.New()
	sys, err := Compile(m, mdl)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(sys.Initial().String()).To(Equal("{[idle=2 busy=0 done=0]}"))

	res, err := sys.Reach()
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(res.NbStates().Int64()).To(Equal(int64(6)))
	g.Expect(res.String()).To(Equal("{[idle=0 busy=0 done=2], [idle=0 busy=1 done=1], [idle=0 busy=2 done=0], " +
		"[idle=1 busy=0 done=1], [idle=1 busy=1 done=0], [idle=2 busy=0 done=0]}"))

	start, ok := sys.Transition("start")
	g.Expect(ok).To(BeTrue())
	g.Expect(start.Eval(sys.Initial())).To(Equal(m.Path(1, 1, 0)))
	_, ok = sys.Transition("stop")
	g.Expect(ok).To(BeFalse())
}

func TestBounds(t *testing.T) {
	g := NewWithT(t)
	mdl, err := Parse([]byte(`
name: counter
variables:
  - {name: x, init: 0, max: 3}
transitions:
  - name: inc
    effects:
      - {var: x, update: "x + 1"}
`))
	g.Expect(err).NotTo(HaveOccurred())
	m := ddd.New()
	sys, err := Compile(m, mdl)
	g.Expect(err).NotTo(HaveOccurred())
	post, err := sys.Post(sys.Initial())
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(post).To(Equal(m.Union(m.Path(0), m.Path(1))))
	// the update is disabled when the result is out of bounds
	res, err := sys.Reach()
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(res.String()).To(Equal("{[x=0], [x=1], [x=2], [x=3]}"))
}

func TestGC(t *testing.T) {
	g := NewWithT(t)
	mdl, err := Load("testdata/tokens.yaml")
	g.Expect(err).NotTo(HaveOccurred())
	m := ddd.New()
	sys, err := Compile(m, mdl)
	g.Expect(err).NotTo(HaveOccurred())
	before, err := sys.Reach()
	g.Expect(err).NotTo(HaveOccurred())
	expected := before.String()
	m.GC()
	// the system is pinned and can still be used after a collection
	res, err := sys.Reach()
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(res.String()).To(Equal(expected))
	sys.Release()
	m.GC()
	g.Expect(m.Statistics().Tables[0].Live).To(Equal(3))
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name  string
		model string
		parse bool // the error is found when parsing
	}{
		{"no variables", "name: empty\n", true},
		{"unknown field", "name: a\nvariables:\n  - {name: x, value: 2}\n", true},
		{"duplicate", "variables:\n  - {name: x}\n  - {name: x}\n", true},
		{"reserved name", "variables:\n  - {name: v}\n", true},
		{"out of bounds", "variables:\n  - {name: x, init: 4, max: 3}\n", true},
		{"unknown variable", "variables:\n  - {name: x}\ntransitions:\n  - {name: t, effects: [{var: y}]}\n", true},
		{"two effects", "variables:\n  - {name: x}\ntransitions:\n  - {name: t, effects: [{var: x}, {var: x}]}\n", true},
		{"guard type", "variables:\n  - {name: x}\ntransitions:\n  - {name: t, effects: [{var: x, guard: \"x + 1\"}]}\n", false},
		{"update syntax", "variables:\n  - {name: x}\ntransitions:\n  - {name: t, effects: [{var: x, update: \"x +\"}]}\n", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewWithT(t)
			mdl, err := Parse([]byte(tt.model))
			if tt.parse {
				g.Expect(err).To(HaveOccurred())
				return
			}
			g.Expect(err).NotTo(HaveOccurred())
			_, err = Compile(ddd.New(), mdl)
			g.Expect(err).To(MatchError(ErrModel))
		})
	}
}

func TestOverflow(t *testing.T) {
	g := NewWithT(t)
	mdl, err := Parse([]byte(`
name: overflow
variables:
  - {name: x, init: 1}
transitions:
  - name: big
    effects:
      - {var: x, update: "x * 4294967296"}
`))
	g.Expect(err).NotTo(HaveOccurred())
	sys, err := Compile(ddd.New(), mdl)
	g.Expect(err).NotTo(HaveOccurred())
	_, err = sys.Post(sys.Initial())
	g.Expect(err).To(MatchError(ErrModel))
}
