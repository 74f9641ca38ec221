// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ddd

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// MLHom is a multi-linear homomorphism on DDD. Instead of a single DDD, the
// evaluation of an MLHom returns an additive map from homomorphisms to DDD,
// see HomNodeMap. Multi-linear homomorphisms are useful when the effect of an
// arc depends on a value found further down in the diagram, like when we swap
// the values of two variables.
type MLHom struct {
	m   *Manager
	id  int32
	gen uint32
}

// MLShom is a multi-linear homomorphism on SDD.
type MLShom struct {
	m   *Manager
	id  int32
	gen uint32
}

// StrongMLHom is the interface of user defined inductive multi-linear
// homomorphisms on DDD. The evaluation on a node is the sum, for every arc
// (value, child) and every pair (up, down) in Phi(variable, value), of the
// maps {up ∘ k -> x} such that {k -> x} is in the result of down on child.
type StrongMLHom interface {
	PhiOne(m *Manager) *HomNodeMap
	Phi(m *Manager, variable, value int) *HomMLMap
	Hash() uint64
	Equal(o StrongMLHom) bool
	Mark(mk *Marker)
}

// StrongMLShom is the interface of user defined inductive multi-linear
// homomorphisms on SDD.
type StrongMLShom interface {
	PhiOne(m *Manager) *ShomNodeMap
	Phi(m *Manager, variable int, label DataSet) *ShomMLMap
	Hash() uint64
	Equal(o StrongMLShom) bool
	Mark(mk *Marker)
}

// mlentry is an entry (hom -> node) in the result of a multi-linear
// homomorphism. Results are stored as slices sorted by hom.
type mlentry struct {
	hom, node int32
}

// ************************************************************
// Additive maps

// addmap is a map where inserting a value for an existing key merges it with
// the previous value instead of replacing it.
type addmap struct {
	vals  map[int32]int32
	merge func(a, b int32) int32
	zero  int32 // values equal to zero are not stored
}

func newAddmap(merge func(a, b int32) int32, zero int32) addmap {
	return addmap{vals: make(map[int32]int32), merge: merge, zero: zero}
}

func (a *addmap) add(k, v int32) {
	if v == a.zero {
		return
	}
	if old, ok := a.vals[k]; ok {
		v = a.merge(old, v)
	}
	a.vals[k] = v
}

func (a *addmap) keys() []int32 {
	res := maps.Keys(a.vals)
	slices.Sort(res)
	return res
}

func (a *addmap) entries() []mlentry {
	res := make([]mlentry, 0, len(a.vals))
	for _, k := range a.keys() {
		res = append(res, mlentry{hom: k, node: a.vals[k]})
	}
	return res
}

func (m *Manager) dddmap() addmap {
	return newAddmap(func(a, b int32) int32 { return m.apply(OPunion, a, b) }, null)
}

func (m *Manager) sddmap() addmap {
	return newAddmap(func(a, b int32) int32 { return m.sapply(OPunion, a, b) }, null)
}

func (m *Manager) mladdmap(t *table[hnode]) addmap {
	return newAddmap(func(a, b int32) int32 { return m.mknary(t, homMLAdd, []int32{a, b}) }, -1)
}

// HomNodeMap is an additive map from Hom to DDD: adding an entry (h, d) when
// there is already an entry (h, e) in the map results in (h, d + e). Maps
// contain references to objects of the manager that are not protected against
// garbage collection; they should be used before the next call to GC.
type HomNodeMap struct {
	m   *Manager
	acc addmap
}

// NewHomNodeMap returns an empty additive map from Hom to DDD.
func (m *Manager) NewHomNodeMap() *HomNodeMap {
	return &HomNodeMap{m: m, acc: m.dddmap()}
}

// Add adds the entry (h, d) to hm. Entries with a Null value are ignored.
func (hm *HomNodeMap) Add(h Hom, d DDD) *HomNodeMap {
	k, ok := hm.m.checkhom(h, "HomNodeMap.Add")
	if !ok {
		k = hm.m.mkconstant(hm.m.homs, top)
	}
	n, _ := hm.m.checkddd(d, "HomNodeMap.Add")
	hm.acc.add(k, n)
	return hm
}

// Get returns the DDD associated with h, or Null.
func (hm *HomNodeMap) Get(h Hom) DDD {
	if v, ok := hm.acc.vals[h.id]; ok && h.m == hm.m {
		return hm.m.retddd(v)
	}
	return hm.m.Null()
}

// Len returns the number of entries in hm.
func (hm *HomNodeMap) Len() int {
	return len(hm.acc.vals)
}

// Each calls f on every entry of hm, in a deterministic order.
func (hm *HomNodeMap) Each(f func(Hom, DDD)) {
	for _, k := range hm.acc.keys() {
		f(hm.m.rethom(k), hm.m.retddd(hm.acc.vals[k]))
	}
}

// HomMLMap is an additive map from Hom to MLHom, where values are merged with
// MLAdd. It is the result of the Phi method of StrongMLHom.
type HomMLMap struct {
	m   *Manager
	acc addmap
}

// NewHomMLMap returns an empty additive map from Hom to MLHom.
func (m *Manager) NewHomMLMap() *HomMLMap {
	return &HomMLMap{m: m, acc: m.mladdmap(m.mlhoms)}
}

// Add adds the entry (h, ml) to hm.
func (hm *HomMLMap) Add(h Hom, ml MLHom) *HomMLMap {
	k, ok := hm.m.checkhom(h, "HomMLMap.Add")
	if !ok {
		return hm
	}
	v, ok := hm.m.checkmlhom(ml, "HomMLMap.Add")
	if !ok {
		return hm
	}
	hm.acc.add(k, v)
	return hm
}

// Len returns the number of entries in hm.
func (hm *HomMLMap) Len() int {
	return len(hm.acc.vals)
}

// Each calls f on every entry of hm, in a deterministic order.
func (hm *HomMLMap) Each(f func(Hom, MLHom)) {
	for _, k := range hm.acc.keys() {
		f(hm.m.rethom(k), hm.m.retmlhom(hm.acc.vals[k]))
	}
}

// ShomNodeMap is an additive map from Shom to SDD.
type ShomNodeMap struct {
	m   *Manager
	acc addmap
}

// NewShomNodeMap returns an empty additive map from Shom to SDD.
func (m *Manager) NewShomNodeMap() *ShomNodeMap {
	return &ShomNodeMap{m: m, acc: m.sddmap()}
}

// Add adds the entry (h, s) to hm. Entries with an SNull value are ignored.
func (hm *ShomNodeMap) Add(h Shom, s SDD) *ShomNodeMap {
	k, ok := hm.m.checkshom(h, "ShomNodeMap.Add")
	if !ok {
		k = hm.m.mkconstant(hm.m.shoms, top)
	}
	n, _ := hm.m.checksdd(s, "ShomNodeMap.Add")
	hm.acc.add(k, n)
	return hm
}

// Get returns the SDD associated with h, or SNull.
func (hm *ShomNodeMap) Get(h Shom) SDD {
	if v, ok := hm.acc.vals[h.id]; ok && h.m == hm.m {
		return hm.m.retsdd(v)
	}
	return hm.m.SNull()
}

// Len returns the number of entries in hm.
func (hm *ShomNodeMap) Len() int {
	return len(hm.acc.vals)
}

// Each calls f on every entry of hm, in a deterministic order.
func (hm *ShomNodeMap) Each(f func(Shom, SDD)) {
	for _, k := range hm.acc.keys() {
		f(hm.m.retshom(k), hm.m.retsdd(hm.acc.vals[k]))
	}
}

// ShomMLMap is an additive map from Shom to MLShom.
type ShomMLMap struct {
	m   *Manager
	acc addmap
}

// NewShomMLMap returns an empty additive map from Shom to MLShom.
func (m *Manager) NewShomMLMap() *ShomMLMap {
	return &ShomMLMap{m: m, acc: m.mladdmap(m.mlshoms)}
}

// Add adds the entry (h, ml) to hm.
func (hm *ShomMLMap) Add(h Shom, ml MLShom) *ShomMLMap {
	k, ok := hm.m.checkshom(h, "ShomMLMap.Add")
	if !ok {
		return hm
	}
	v, ok := hm.m.checkmlshom(ml, "ShomMLMap.Add")
	if !ok {
		return hm
	}
	hm.acc.add(k, v)
	return hm
}

// Len returns the number of entries in hm.
func (hm *ShomMLMap) Len() int {
	return len(hm.acc.vals)
}

// Each calls f on every entry of hm, in a deterministic order.
func (hm *ShomMLMap) Each(f func(Shom, MLShom)) {
	for _, k := range hm.acc.keys() {
		f(hm.m.retshom(k), hm.m.retmlshom(hm.acc.vals[k]))
	}
}

// ************************************************************
// Construction

func (m *Manager) retmlhom(k int32) MLHom {
	return MLHom{m: m, id: k, gen: m.mlhoms.gen(k)}
}

func (m *Manager) checkmlhom(h MLHom, caller string) (int32, bool) {
	if h.m != m {
		return m.seterror("%s: %w", caller, ErrForeignManager), false
	}
	if !m.mlhoms.valid(h.id, h.gen) {
		return m.seterror("%s: mlhom %d: %w", caller, h.id, ErrDangling), false
	}
	return h.id, true
}

func (m *Manager) retmlshom(k int32) MLShom {
	return MLShom{m: m, id: k, gen: m.mlshoms.gen(k)}
}

func (m *Manager) checkmlshom(h MLShom, caller string) (int32, bool) {
	if h.m != m {
		return m.seterror("%s: %w", caller, ErrForeignManager), false
	}
	if !m.mlshoms.valid(h.id, h.gen) {
		return m.seterror("%s: mlshom %d: %w", caller, h.id, ErrDangling), false
	}
	return h.id, true
}

// MLIdentity returns the multi-linear homomorphism x -> {id -> x}.
func (m *Manager) MLIdentity() MLHom {
	return m.retmlhom(identity)
}

// MLFromHom returns the multi-linear homomorphism x -> {id -> h(x)}.
func (m *Manager) MLFromHom(h Hom) MLHom {
	k, ok := m.checkhom(h, "MLFromHom")
	if !ok {
		k = m.mkconstant(m.homs, top)
	}
	if k == identity {
		return m.MLIdentity()
	}
	return m.retmlhom(m.mlhoms.canonical(hnode{kind: homMLFromHom, args: []int32{k}}))
}

// MLAdd returns the sum of multi-linear homomorphisms mls, whose result is the
// additive union of the maps computed by each element of mls.
func (m *Manager) MLAdd(mls ...MLHom) MLHom {
	args := make([]int32, len(mls))
	for i, ml := range mls {
		k, ok := m.checkmlhom(ml, "MLAdd")
		if !ok {
			return m.MLFromHom(m.homtop())
		}
		args[i] = k
	}
	return m.retmlhom(m.mknary(m.mlhoms, homMLAdd, args))
}

// MLInductive returns the multi-linear homomorphism defined by the user value
// s.
func (m *Manager) MLInductive(s StrongMLHom) MLHom {
	return m.retmlhom(m.mlhoms.canonical(hnode{kind: homMLInductive, user: s}))
}

// MLSIdentity returns the multi-linear homomorphism x -> {id -> x} on SDD.
func (m *Manager) MLSIdentity() MLShom {
	return m.retmlshom(identity)
}

// MLSFromShom returns the multi-linear homomorphism x -> {id -> h(x)}.
func (m *Manager) MLSFromShom(h Shom) MLShom {
	k, ok := m.checkshom(h, "MLSFromShom")
	if !ok {
		k = m.mkconstant(m.shoms, top)
	}
	if k == identity {
		return m.MLSIdentity()
	}
	return m.retmlshom(m.mlshoms.canonical(hnode{kind: homMLFromHom, args: []int32{k}}))
}

// MLSAdd returns the sum of multi-linear homomorphisms mls.
func (m *Manager) MLSAdd(mls ...MLShom) MLShom {
	args := make([]int32, len(mls))
	for i, ml := range mls {
		k, ok := m.checkmlshom(ml, "MLSAdd")
		if !ok {
			return m.MLSFromShom(m.shomtop())
		}
		args[i] = k
	}
	return m.retmlshom(m.mknary(m.mlshoms, homMLAdd, args))
}

// MLSInductive returns the multi-linear homomorphism on SDD defined by the user
// value s.
func (m *Manager) MLSInductive(s StrongMLShom) MLShom {
	return m.retmlshom(m.mlshoms.canonical(hnode{kind: homMLInductive, user: s}))
}

// ************************************************************

// Manager returns the manager of h.
func (h MLHom) Manager() *Manager {
	return h.m
}

// Eval returns the map computed by h on d.
func (h MLHom) Eval(d DDD) *HomNodeMap {
	res := h.m.NewHomNodeMap()
	k, ok := h.m.checkmlhom(h, "Eval")
	if !ok {
		return res
	}
	n, ok := h.m.checkddd(d, "Eval")
	if !ok {
		return res
	}
	for _, e := range h.m.evalmlhom(k, n) {
		res.acc.add(e.hom, e.node)
	}
	return res
}

func (h MLHom) String() string {
	if _, ok := h.m.checkmlhom(h, "String"); !ok {
		return "<invalid>"
	}
	return h.m.homstring(h.m.mlhoms, h.id)
}

// Manager returns the manager of h.
func (h MLShom) Manager() *Manager {
	return h.m
}

// Eval returns the map computed by h on s.
func (h MLShom) Eval(s SDD) *ShomNodeMap {
	res := h.m.NewShomNodeMap()
	k, ok := h.m.checkmlshom(h, "Eval")
	if !ok {
		return res
	}
	n, ok := h.m.checksdd(s, "Eval")
	if !ok {
		return res
	}
	for _, e := range h.m.evalmlshom(k, n) {
		res.acc.add(e.hom, e.node)
	}
	return res
}

func (h MLShom) String() string {
	if _, ok := h.m.checkmlshom(h, "String"); !ok {
		return "<invalid>"
	}
	return h.m.homstring(h.m.mlshoms, h.id)
}
