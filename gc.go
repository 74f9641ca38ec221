// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ddd

import (
	"fmt"
)

// gcstat stores status information about garbage collections. We use a stack
// (slice) of objects to record the sequence of GC during a computation.
type gcstat struct {
	setfinalizers    uint64    // Total number of external references created
	calledfinalizers uint64    // Number of external references released by finalizers
	gcount           int       // Number of garbage collections
	history          []gcpoint // Snapshot of GC stats at each occurrence
}

// gcpoint is a snapshot of the tables at the end of a garbage collection.
type gcpoint struct {
	nodes            int // Live DDD and SDD nodes
	freednodes       int // DDD and SDD nodes reclaimed by this GC
	homs             int // Live homomorphisms, of any kind
	freedhoms        int // Homomorphisms reclaimed by this GC
	setfinalizers    int // External references created since the previous GC
	calledfinalizers int // External references released by finalizers since the previous GC
}

// Marker is used to mark the objects that should survive a garbage
// collection. User defined homomorphisms and data sets receive a Marker in
// their Mark method, and must call it on every object of the manager that
// they reference.
type Marker struct {
	m *Manager
}

// DDD marks d and all its descendants.
func (mk *Marker) DDD(d DDD) {
	if d.m == mk.m && mk.m.ddd.valid(d.id, d.gen) {
		mk.m.markddd(d.id)
	}
}

// SDD marks s, its descendants, and the labels on its arcs.
func (mk *Marker) SDD(s SDD) {
	if s.m == mk.m && mk.m.sdd.valid(s.id, s.gen) {
		mk.m.marksdd(s.id)
	}
}

// Hom marks h and the objects it references.
func (mk *Marker) Hom(h Hom) {
	if h.m == mk.m && mk.m.homs.valid(h.id, h.gen) {
		mk.m.markhom(h.id)
	}
}

// Shom marks h and the objects it references.
func (mk *Marker) Shom(h Shom) {
	if h.m == mk.m && mk.m.shoms.valid(h.id, h.gen) {
		mk.m.markshom(h.id)
	}
}

// MLHom marks h and the objects it references.
func (mk *Marker) MLHom(h MLHom) {
	if h.m == mk.m && mk.m.mlhoms.valid(h.id, h.gen) {
		mk.m.markmlhom(h.id)
	}
}

// MLShom marks h and the objects it references.
func (mk *Marker) MLShom(h MLShom) {
	if h.m == mk.m && mk.m.mlshoms.valid(h.id, h.gen) {
		mk.m.markmlshom(h.id)
	}
}

// *************************************************************************

// GC reclaims all the nodes and homomorphisms that are not reachable from an
// external reference (see Ref). Handles to reclaimed objects become invalid:
// using them yields Top and sets the error status with ErrDangling.
//
// We use a single mark phase over all the tables, starting from every object
// with a positive reference count, before any sweep. Then operation caches are
// cleared, followed by the homomorphism tables and the node tables. Hence a
// single call is enough to reclaim every unreachable object.
func (m *Manager) GC() {
	for _, r := range m.release.drain() {
		m.decref(r.kind, r.id, r.gen)
		m.gcstat.calledfinalizers++
	}
	m.log.V(1).Info("start GC", "ddd", m.ddd.live(), "sdd", m.sdd.live(),
		"hom", m.homs.live(), "shom", m.shoms.live(),
		"mlhom", m.mlhoms.live(), "mlshom", m.mlshoms.live())

	m.ddd.roots(m.markddd)
	m.sdd.roots(m.marksdd)
	m.homs.roots(m.markhom)
	m.shoms.roots(m.markshom)
	m.mlhoms.roots(m.markmlhom)
	m.mlshoms.roots(m.markmlshom)

	m.cachereset()
	freedhoms := 0
	for _, t := range []*table[hnode]{m.mlshoms, m.mlhoms, m.shoms, m.homs} {
		freed := t.sweep()
		m.log.V(2).Info("sweep", "table", t.name, "freed", freed, "live", t.live())
		freedhoms += freed
	}
	freednodes := m.sdd.sweep()
	m.log.V(2).Info("sweep", "table", m.sdd.name, "freed", freednodes, "live", m.sdd.live())
	freed := m.ddd.sweep()
	m.log.V(2).Info("sweep", "table", m.ddd.name, "freed", freed, "live", m.ddd.live())
	freednodes += freed

	m.gcstat.gcount++
	m.gcstat.history = append(m.gcstat.history, gcpoint{
		nodes:            m.ddd.live() + m.sdd.live(),
		freednodes:       freednodes,
		homs:             m.homs.live() + m.shoms.live() + m.mlhoms.live() + m.mlshoms.live(),
		freedhoms:        freedhoms,
		setfinalizers:    int(m.gcstat.setfinalizers),
		calledfinalizers: int(m.gcstat.calledfinalizers),
	})
	if m.gchistory > 0 && len(m.gcstat.history) > m.gchistory {
		m.gcstat.history = m.gcstat.history[len(m.gcstat.history)-m.gchistory:]
	}
	m.gcstat.setfinalizers = 0
	m.gcstat.calledfinalizers = 0
	m.log.V(1).Info("end GC", "freednodes", freednodes, "freedhoms", freedhoms)
}

// *************************************************************************
// RECURSIVE MARK

func (m *Manager) markddd(n int32) {
	if m.ddd.ismarked(n) {
		return
	}
	m.ddd.marknode(n)
	for _, a := range m.ddd.get(n).arcs {
		m.markddd(a.child)
	}
}

func (m *Manager) marksdd(n int32) {
	if m.sdd.ismarked(n) {
		return
	}
	m.sdd.marknode(n)
	mk := &Marker{m: m}
	for _, a := range m.sdd.get(n).arcs {
		a.label.Mark(mk)
		m.marksdd(a.child)
	}
}

// Every kind of homomorphism must be listed in the mark functions below: an
// object missing from the mark phase would be reclaimed while still in use.

func (m *Manager) markhom(h int32) {
	if m.homs.ismarked(h) {
		return
	}
	m.homs.marknode(h)
	hn := m.homs.get(h)
	switch hn.kind {
	case homIdentity:
	case homConstant:
		m.markddd(hn.node)
	case homMult, homLeftConcat, homRightConcat, homMinus:
		m.markddd(hn.node)
		m.markhom(hn.args[0])
	case homAdd, homAnd, homCompose, homFixpoint:
		for _, a := range hn.args {
			m.markhom(a)
		}
	case homInductive:
		hn.user.Mark(&Marker{m: m})
	case homFromML:
		m.markmlhom(hn.args[0])
	default:
		panic(fmt.Sprintf("mark: unexpected kind of Hom: %s", hn.kind))
	}
}

func (m *Manager) markshom(h int32) {
	if m.shoms.ismarked(h) {
		return
	}
	m.shoms.marknode(h)
	hn := m.shoms.get(h)
	switch hn.kind {
	case homIdentity:
	case homConstant:
		m.marksdd(hn.node)
	case homMult, homLeftConcat, homRightConcat, homMinus:
		m.marksdd(hn.node)
		m.markshom(hn.args[0])
	case homAdd, homAnd, homCompose, homFixpoint:
		for _, a := range hn.args {
			m.markshom(a)
		}
	case homInductive:
		hn.user.Mark(&Marker{m: m})
	case homFromML:
		m.markmlshom(hn.args[0])
	case homLocal:
		m.markhom(hn.args[0])
	case homLocalS:
		m.markshom(hn.args[0])
	default:
		panic(fmt.Sprintf("mark: unexpected kind of Shom: %s", hn.kind))
	}
}

func (m *Manager) markmlhom(h int32) {
	if m.mlhoms.ismarked(h) {
		return
	}
	m.mlhoms.marknode(h)
	hn := m.mlhoms.get(h)
	switch hn.kind {
	case homIdentity, homConstant:
	case homMLFromHom:
		m.markhom(hn.args[0])
	case homMLAdd:
		for _, a := range hn.args {
			m.markmlhom(a)
		}
	case homMLInductive:
		hn.user.Mark(&Marker{m: m})
	default:
		panic(fmt.Sprintf("mark: unexpected kind of MLHom: %s", hn.kind))
	}
}

func (m *Manager) markmlshom(h int32) {
	if m.mlshoms.ismarked(h) {
		return
	}
	m.mlshoms.marknode(h)
	hn := m.mlshoms.get(h)
	switch hn.kind {
	case homIdentity, homConstant:
	case homMLFromHom:
		m.markshom(hn.args[0])
	case homMLAdd:
		for _, a := range hn.args {
			m.markmlshom(a)
		}
	case homMLInductive:
		hn.user.Mark(&Marker{m: m})
	default:
		panic(fmt.Sprintf("mark: unexpected kind of MLShom: %s", hn.kind))
	}
}
