// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ddd

import (
	"reflect"

	"golang.org/x/exp/slices"
)

// homKind is the tag of the different kinds of homomorphisms. The same node
// type is used in the four homomorphism tables (Hom, Shom, MLHom and MLShom);
// the meaning of the fields depends on the table.
type homKind uint8

const (
	homIdentity    homKind = iota // identity (and MLIdentity in multi-linear tables)
	homConstant                   // constant: x -> node
	homMult                       // x -> node * args[0](x)
	homAnd                        // intersection of args
	homAdd                        // union of args
	homCompose                    // x -> args[0](args[1](x))
	homLeftConcat                 // x -> node ^ args[0](x)
	homRightConcat                // x -> args[0](x) ^ node
	homMinus                      // x -> args[0](x) - node
	homFixpoint                   // least fixpoint of args[0] starting from x
	homInductive                  // user defined, inductive homomorphism
	homFromML                     // sum of the map returned by multi-linear hom args[0]
	homLocal                      // Shom applying Hom args[0] on the labels of variable
	homLocalS                     // Shom applying Shom args[0] on the labels of variable
	homMLFromHom                  // multi-linear hom {id -> args[0](x)}
	homMLAdd                      // additive union of multi-linear homs
	homMLInductive                // user defined, inductive multi-linear homomorphism
)

var homnames = [...]string{
	homIdentity:    "id",
	homConstant:    "const",
	homMult:        "mult",
	homAnd:         "and",
	homAdd:         "add",
	homCompose:     "compose",
	homLeftConcat:  "lconcat",
	homRightConcat: "rconcat",
	homMinus:       "minus",
	homFixpoint:    "fixpoint",
	homInductive:   "inductive",
	homFromML:      "fromml",
	homLocal:       "local",
	homLocalS:      "locals",
	homMLFromHom:   "mlfromhom",
	homMLAdd:       "mladd",
	homMLInductive: "mlinductive",
}

func (k homKind) String() string {
	return homnames[k]
}

// hnode is a node in one of the homomorphism tables. Field node is the index of
// a DDD (for Hom and MLHom) or an SDD (for Shom and MLShom). Field args
// contains the indexes of sub-homomorphisms.
type hnode struct {
	kind     homKind
	node     int32
	variable int32
	args     []int32
	user     userhom
}

// userhom is the part of the interface shared by all user defined
// homomorphisms.
type userhom interface {
	Hash() uint64
	Mark(mk *Marker)
}

func hnodehash(n *hnode) uint64 {
	h := _TRIPLE(uint64(n.kind), uint64(n.node), uint64(uint32(n.variable)))
	for _, a := range n.args {
		h = combine(h, uint64(a))
	}
	if n.user != nil {
		h = combine(h, n.user.Hash())
	}
	return h
}

func hnodeequal(a, b *hnode) bool {
	if a.kind != b.kind || a.node != b.node || a.variable != b.variable {
		return false
	}
	if !slices.Equal(a.args, b.args) {
		return false
	}
	return userequal(a.user, b.user)
}

// userequal compares user homomorphisms. Both must have the same dynamic type
// before we call the Equal method of the user.
func userequal(a, b userhom) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	switch a := a.(type) {
	case StrongHom:
		return a.Equal(b.(StrongHom))
	case StrongShom:
		return a.Equal(b.(StrongShom))
	case StrongMLHom:
		return a.Equal(b.(StrongMLHom))
	case StrongMLShom:
		return a.Equal(b.(StrongMLShom))
	}
	return false
}

// reservedHnodes returns the content of the reserved slots of a homomorphism
// table: slot 0 is the identity.
func reservedHnodes() []hnode {
	return []hnode{{kind: homIdentity}}
}

const identity int32 = 0

// ************************************************************
// Construction of homomorphisms, shared by all the tables. The indexes in
// field node always refer to the node table associated with t.

func (m *Manager) mkconstant(t *table[hnode], n int32) int32 {
	return t.canonical(hnode{kind: homConstant, node: n})
}

func (m *Manager) mkunary(t *table[hnode], kind homKind, n int32, h int32) int32 {
	return t.canonical(hnode{kind: kind, node: n, args: []int32{h}})
}

// mknary returns the union (kind homAdd or homMLAdd) or intersection (kind
// homAnd) of homomorphisms hs. Nested operations of the same kind are flattened, and
// arguments are sorted and deduplicated, so that the result does not depend on
// the order of the operands.
func (m *Manager) mknary(t *table[hnode], kind homKind, hs []int32) int32 {
	args := make([]int32, 0, len(hs))
	for _, h := range hs {
		if n := t.get(h); n.kind == kind {
			args = append(args, n.args...)
			continue
		}
		args = append(args, h)
	}
	slices.Sort(args)
	args = slices.Compact(args)
	if kind == homAdd || kind == homMLAdd {
		// the constant null hom is neutral for union
		if c, ok := t.lookup(hnode{kind: homConstant, node: null}); ok {
			if i, found := slices.BinarySearch(args, c); found {
				args = slices.Delete(args, i, i+1)
			}
		}
	}
	switch len(args) {
	case 0:
		return m.mkconstant(t, null)
	case 1:
		return args[0]
	}
	return t.canonical(hnode{kind: kind, args: slices.Clip(args)})
}

func (m *Manager) mkcompose(t *table[hnode], f, g int32) int32 {
	if f == identity {
		return g
	}
	if g == identity {
		return f
	}
	return t.canonical(hnode{kind: homCompose, args: []int32{f, g}})
}

func (m *Manager) mkfixpoint(t *table[hnode], h int32) int32 {
	if h == identity || t.get(h).kind == homFixpoint {
		return h
	}
	return t.canonical(hnode{kind: homFixpoint, args: []int32{h}})
}

// ************************************************************

// Hom is a homomorphism on DDD, that is a function from DDD to DDD that
// distributes over union and maps Null to Null. Homomorphisms are canonical:
// two Hom built the same way are equal (==).
type Hom struct {
	m   *Manager
	id  int32
	gen uint32
}

// StrongHom is the interface of user defined inductive homomorphisms on DDD.
// The evaluation of an inductive homomorphism h on a node is obtained by
// applying, on every arc (value, child) of the node, the homomorphism
// Phi(variable, value) to child, and taking the union of the results. The
// result on One is PhiOne.
//
// Methods Hash and Equal are used to share structurally equal homomorphisms;
// Mark must call the marker on every DDD, SDD or homomorphism stored in the
// value, so that they are not reclaimed while h is alive.
type StrongHom interface {
	PhiOne(m *Manager) DDD
	Phi(m *Manager, variable, value int) Hom
	Hash() uint64
	Equal(o StrongHom) bool
	Mark(mk *Marker)
}

// Skipper is an optional interface for user defined homomorphisms. When
// Skip(variable) is true, the homomorphism is applied directly on the children
// of the nodes labelled with variable, and the arcs are left unchanged. This
// is more efficient than returning Prefix(variable, value, h) in Phi.
type Skipper interface {
	Skip(variable int) bool
}

func (m *Manager) rethom(k int32) Hom {
	return Hom{m: m, id: k, gen: m.homs.gen(k)}
}

func (m *Manager) checkhom(h Hom, caller string) (int32, bool) {
	if h.m != m {
		return m.seterror("%s: %w", caller, ErrForeignManager), false
	}
	if !m.homs.valid(h.id, h.gen) {
		return m.seterror("%s: hom %d: %w", caller, h.id, ErrDangling), false
	}
	return h.id, true
}

// checkhoms returns the indexes of the homomorphisms in hs. The second result
// is false if one of them is not valid, in which case the error status is set.
func (m *Manager) checkhoms(hs []Hom, caller string) ([]int32, bool) {
	res := make([]int32, len(hs))
	for i, h := range hs {
		k, ok := m.checkhom(h, caller)
		if !ok {
			return nil, false
		}
		res[i] = k
	}
	return res, true
}

// homtop is the homomorphism returned when the arguments of a constructor are
// not valid. It maps every non-null DDD to Top.
func (m *Manager) homtop() Hom {
	return m.rethom(m.mkconstant(m.homs, top))
}

// Identity returns the identity homomorphism.
func (m *Manager) Identity() Hom {
	return m.rethom(identity)
}

// Constant returns the homomorphism that maps every non-null DDD to d.
func (m *Manager) Constant(d DDD) Hom {
	k, ok := m.checkddd(d, "Constant")
	if !ok {
		return m.homtop()
	}
	return m.rethom(m.mkconstant(m.homs, k))
}

// Mult returns the homomorphism x -> d * h(x).
func (m *Manager) Mult(d DDD, h Hom) Hom {
	return m.homnode(homMult, d, h, "Mult")
}

// LeftConcat returns the homomorphism x -> d ^ h(x).
func (m *Manager) LeftConcat(d DDD, h Hom) Hom {
	return m.homnode(homLeftConcat, d, h, "LeftConcat")
}

// RightConcat returns the homomorphism x -> h(x) ^ d.
func (m *Manager) RightConcat(h Hom, d DDD) Hom {
	return m.homnode(homRightConcat, d, h, "RightConcat")
}

// Diff returns the homomorphism x -> h(x) - d.
func (m *Manager) Diff(h Hom, d DDD) Hom {
	return m.homnode(homMinus, d, h, "Diff")
}

func (m *Manager) homnode(kind homKind, d DDD, h Hom, caller string) Hom {
	n, ok := m.checkddd(d, caller)
	if !ok {
		return m.homtop()
	}
	k, ok := m.checkhom(h, caller)
	if !ok {
		return m.homtop()
	}
	return m.rethom(m.mkunary(m.homs, kind, n, k))
}

// Prefix returns the homomorphism that prepends the arc (variable, value) to
// the result of h.
func (m *Manager) Prefix(variable, value int, h Hom) Hom {
	return m.LeftConcat(m.Node(variable, value, m.One()), h)
}

// Add returns the union of homomorphisms hs, that is x -> h1(x) + h2(x) + ...
// The result of Add with no argument is the constant Null.
func (m *Manager) Add(hs ...Hom) Hom {
	args, ok := m.checkhoms(hs, "Add")
	if !ok {
		return m.homtop()
	}
	return m.rethom(m.mknary(m.homs, homAdd, args))
}

// And returns the intersection of homomorphisms hs, that is
// x -> h1(x) * h2(x) * ... It returns the identity if hs is empty.
func (m *Manager) And(hs ...Hom) Hom {
	args, ok := m.checkhoms(hs, "And")
	if !ok {
		return m.homtop()
	}
	if len(args) == 0 {
		return m.Identity()
	}
	return m.rethom(m.mknary(m.homs, homAnd, args))
}

// Compose returns the homomorphism x -> f(g(x)).
func (m *Manager) Compose(f, g Hom) Hom {
	args, ok := m.checkhoms([]Hom{f, g}, "Compose")
	if !ok {
		return m.homtop()
	}
	return m.rethom(m.mkcompose(m.homs, args[0], args[1]))
}

// Fixpoint returns the homomorphism that applies h repeatedly, starting from
// x, until the result does not change. It is usually used with a
// homomorphism of the form h + id, in which case the result is the set of
// states reachable from x. The evaluation does not terminate if there is no
// fixpoint.
func (m *Manager) Fixpoint(h Hom) Hom {
	k, ok := m.checkhom(h, "Fixpoint")
	if !ok {
		return m.homtop()
	}
	return m.rethom(m.mkfixpoint(m.homs, k))
}

// Inductive returns the homomorphism defined by the user value s.
func (m *Manager) Inductive(s StrongHom) Hom {
	return m.rethom(m.homs.canonical(hnode{kind: homInductive, user: s}))
}

// FromML returns the homomorphism x -> h1(x1) + ... + hn(xn), where
// {h1 -> x1, ..., hn -> xn} is the map computed by ml on x.
func (m *Manager) FromML(ml MLHom) Hom {
	k, ok := m.checkmlhom(ml, "FromML")
	if !ok {
		return m.homtop()
	}
	return m.rethom(m.homs.canonical(hnode{kind: homFromML, args: []int32{k}}))
}

// ************************************************************

// Manager returns the manager of h.
func (h Hom) Manager() *Manager {
	return h.m
}

// IsIdentity returns true if h is the identity.
func (h Hom) IsIdentity() bool {
	return h.id == identity
}

// Eval returns the result of applying h to d.
func (h Hom) Eval(d DDD) DDD {
	k, ok := h.m.checkhom(h, "Eval")
	if !ok {
		return h.m.Top()
	}
	n, ok := h.m.checkddd(d, "Eval")
	if !ok {
		return h.m.Top()
	}
	return h.m.retddd(h.m.evalhom(k, n))
}

// String returns a textual representation of h, for debugging.
func (h Hom) String() string {
	if _, ok := h.m.checkhom(h, "String"); !ok {
		return "<invalid>"
	}
	return h.m.homstring(h.m.homs, h.id)
}
