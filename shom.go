// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ddd

// Shom is a homomorphism on SDD. Shom offers the same combinators than Hom,
// with an S prefix, plus Local and LocalS that apply a homomorphism on the
// labels of a given variable.
type Shom struct {
	m   *Manager
	id  int32
	gen uint32
}

// StrongShom is the interface of user defined inductive homomorphisms on SDD.
// It is similar to StrongHom, except that Phi is called with the label of an
// arc, which is a set of values.
type StrongShom interface {
	PhiOne(m *Manager) SDD
	Phi(m *Manager, variable int, label DataSet) Shom
	Hash() uint64
	Equal(o StrongShom) bool
	Mark(mk *Marker)
}

func (m *Manager) retshom(k int32) Shom {
	return Shom{m: m, id: k, gen: m.shoms.gen(k)}
}

func (m *Manager) checkshom(h Shom, caller string) (int32, bool) {
	if h.m != m {
		return m.seterror("%s: %w", caller, ErrForeignManager), false
	}
	if !m.shoms.valid(h.id, h.gen) {
		return m.seterror("%s: shom %d: %w", caller, h.id, ErrDangling), false
	}
	return h.id, true
}

func (m *Manager) checkshoms(hs []Shom, caller string) ([]int32, bool) {
	res := make([]int32, len(hs))
	for i, h := range hs {
		k, ok := m.checkshom(h, caller)
		if !ok {
			return nil, false
		}
		res[i] = k
	}
	return res, true
}

func (m *Manager) shomtop() Shom {
	return m.retshom(m.mkconstant(m.shoms, top))
}

// SIdentity returns the identity on SDD.
func (m *Manager) SIdentity() Shom {
	return m.retshom(identity)
}

// SConstant returns the homomorphism that maps every non-null SDD to s.
func (m *Manager) SConstant(s SDD) Shom {
	k, ok := m.checksdd(s, "SConstant")
	if !ok {
		return m.shomtop()
	}
	return m.retshom(m.mkconstant(m.shoms, k))
}

func (m *Manager) shomnode(kind homKind, s SDD, h Shom, caller string) Shom {
	n, ok := m.checksdd(s, caller)
	if !ok {
		return m.shomtop()
	}
	k, ok := m.checkshom(h, caller)
	if !ok {
		return m.shomtop()
	}
	return m.retshom(m.mkunary(m.shoms, kind, n, k))
}

// SMult returns the homomorphism x -> s * h(x).
func (m *Manager) SMult(s SDD, h Shom) Shom {
	return m.shomnode(homMult, s, h, "SMult")
}

// SLeftConcat returns the homomorphism x -> s ^ h(x).
func (m *Manager) SLeftConcat(s SDD, h Shom) Shom {
	return m.shomnode(homLeftConcat, s, h, "SLeftConcat")
}

// SRightConcat returns the homomorphism x -> h(x) ^ s.
func (m *Manager) SRightConcat(h Shom, s SDD) Shom {
	return m.shomnode(homRightConcat, s, h, "SRightConcat")
}

// SDiff returns the homomorphism x -> h(x) - s.
func (m *Manager) SDiff(h Shom, s SDD) Shom {
	return m.shomnode(homMinus, s, h, "SDiff")
}

// SPrefix returns the homomorphism that prepends the arc (variable, label) to
// the result of h.
func (m *Manager) SPrefix(variable int, label DataSet, h Shom) Shom {
	return m.SLeftConcat(m.SNode(variable, label, m.SOne()), h)
}

// SAdd returns the union of homomorphisms hs.
func (m *Manager) SAdd(hs ...Shom) Shom {
	args, ok := m.checkshoms(hs, "SAdd")
	if !ok {
		return m.shomtop()
	}
	return m.retshom(m.mknary(m.shoms, homAdd, args))
}

// SAnd returns the intersection of homomorphisms hs.
func (m *Manager) SAnd(hs ...Shom) Shom {
	args, ok := m.checkshoms(hs, "SAnd")
	if !ok {
		return m.shomtop()
	}
	if len(args) == 0 {
		return m.SIdentity()
	}
	return m.retshom(m.mknary(m.shoms, homAnd, args))
}

// SCompose returns the homomorphism x -> f(g(x)).
func (m *Manager) SCompose(f, g Shom) Shom {
	args, ok := m.checkshoms([]Shom{f, g}, "SCompose")
	if !ok {
		return m.shomtop()
	}
	return m.retshom(m.mkcompose(m.shoms, args[0], args[1]))
}

// SFixpoint returns the fixpoint of h. See Fixpoint.
func (m *Manager) SFixpoint(h Shom) Shom {
	k, ok := m.checkshom(h, "SFixpoint")
	if !ok {
		return m.shomtop()
	}
	return m.retshom(m.mkfixpoint(m.shoms, k))
}

// SInductive returns the homomorphism defined by the user value s.
func (m *Manager) SInductive(s StrongShom) Shom {
	return m.retshom(m.shoms.canonical(hnode{kind: homInductive, user: s}))
}

// SFromML returns the sum of the map computed by ml, see FromML.
func (m *Manager) SFromML(ml MLShom) Shom {
	k, ok := m.checkmlshom(ml, "SFromML")
	if !ok {
		return m.shomtop()
	}
	return m.retshom(m.shoms.canonical(hnode{kind: homFromML, args: []int32{k}}))
}

// Local returns the homomorphism that applies h on the labels of variable,
// which must be DDD, and leaves the rest of the SDD unchanged.
func (m *Manager) Local(h Hom, variable int) Shom {
	k, ok := m.checkhom(h, "Local")
	if !ok {
		return m.shomtop()
	}
	if !validvar(variable) {
		m.seterror("Local(%d): %w", variable, ErrVariable)
		return m.shomtop()
	}
	if k == identity {
		return m.SIdentity()
	}
	return m.retshom(m.shoms.canonical(hnode{kind: homLocal, variable: int32(variable), args: []int32{k}}))
}

// LocalS returns the homomorphism that applies h on the labels of variable,
// which must be SDD, and leaves the rest of the SDD unchanged.
func (m *Manager) LocalS(h Shom, variable int) Shom {
	k, ok := m.checkshom(h, "LocalS")
	if !ok {
		return m.shomtop()
	}
	if !validvar(variable) {
		m.seterror("LocalS(%d): %w", variable, ErrVariable)
		return m.shomtop()
	}
	if k == identity {
		return m.SIdentity()
	}
	return m.retshom(m.shoms.canonical(hnode{kind: homLocalS, variable: int32(variable), args: []int32{k}}))
}

// ************************************************************

// Manager returns the manager of h.
func (h Shom) Manager() *Manager {
	return h.m
}

// IsIdentity returns true if h is the identity.
func (h Shom) IsIdentity() bool {
	return h.id == identity
}

// Eval returns the result of applying h to s.
func (h Shom) Eval(s SDD) SDD {
	k, ok := h.m.checkshom(h, "Eval")
	if !ok {
		return h.m.STop()
	}
	n, ok := h.m.checksdd(s, "Eval")
	if !ok {
		return h.m.STop()
	}
	return h.m.retsdd(h.m.evalshom(k, n))
}

func (h Shom) String() string {
	if _, ok := h.m.checkshom(h, "String"); !ok {
		return "<invalid>"
	}
	return h.m.homstring(h.m.shoms, h.id)
}
