// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ddd

import (
	"runtime"
	"sync"
)

// tableKind identifies one of the six unicity tables of a manager.
type tableKind uint8

const (
	kindDDD tableKind = iota
	kindSDD
	kindHom
	kindShom
	kindMLHom
	kindMLShom
)

func (d DDD) handle() (*Manager, tableKind, int32, uint32)    { return d.m, kindDDD, d.id, d.gen }
func (s SDD) handle() (*Manager, tableKind, int32, uint32)    { return s.m, kindSDD, s.id, s.gen }
func (h Hom) handle() (*Manager, tableKind, int32, uint32)    { return h.m, kindHom, h.id, h.gen }
func (h Shom) handle() (*Manager, tableKind, int32, uint32)   { return h.m, kindShom, h.id, h.gen }
func (h MLHom) handle() (*Manager, tableKind, int32, uint32)  { return h.m, kindMLHom, h.id, h.gen }
func (h MLShom) handle() (*Manager, tableKind, int32, uint32) { return h.m, kindMLShom, h.id, h.gen }

// Pinnable is the constraint satisfied by the objects that can be protected
// from garbage collection with a Ref.
type Pinnable interface {
	DDD | SDD | Hom | Shom | MLHom | MLShom
	handle() (*Manager, tableKind, int32, uint32)
}

// Ref is an external reference to a diagram or a homomorphism. The referenced
// object, and everything reachable from it, is not reclaimed by GC as long as
// the reference is not released. References that are lost without a call to
// Release are released by a finalizer, at the first call to GC following their
// collection by the Go runtime.
type Ref[T Pinnable] struct {
	v        T
	released bool
}

// NewRef returns a new reference to v.
func NewRef[T Pinnable](v T) *Ref[T] {
	r := &Ref[T]{released: true}
	r.Set(v)
	return r
}

// finalize is the finalizer of references. It may run on any goroutine, so we
// only queue the release.
func finalize[T Pinnable](r *Ref[T]) {
	if r.released {
		return
	}
	m, kind, k, gen := r.v.handle()
	m.release.push(released{kind: kind, id: k, gen: gen})
}

// Get returns the referenced object.
func (r *Ref[T]) Get() T {
	return r.v
}

// Set changes the object referenced by r. The previous object is released.
func (r *Ref[T]) Set(v T) {
	m, kind, k, gen := v.handle()
	if m != nil {
		m.incref(kind, k, gen)
	}
	r.Release()
	r.v = v
	if m == nil {
		// zero value, nothing to protect
		return
	}
	r.released = false
	m.gcstat.setfinalizers++
	runtime.SetFinalizer(r, finalize[T])
}

// Clone returns a new reference to the same object than r.
func (r *Ref[T]) Clone() *Ref[T] {
	return NewRef(r.v)
}

// Release drops the reference. The object may be reclaimed by the next GC if
// it is not referenced elsewhere. Calling Release more than once has no
// effect.
func (r *Ref[T]) Release() {
	if r.released {
		return
	}
	r.released = true
	runtime.SetFinalizer(r, nil)
	m, kind, k, gen := r.v.handle()
	m.decref(kind, k, gen)
}

// ************************************************************

func (m *Manager) incref(kind tableKind, k int32, gen uint32) {
	if t := m.hometable(kind); t != nil {
		if t.valid(k, gen) {
			t.incref(k)
		}
		return
	}
	switch kind {
	case kindDDD:
		if m.ddd.valid(k, gen) {
			m.ddd.incref(k)
		}
	case kindSDD:
		if m.sdd.valid(k, gen) {
			m.sdd.incref(k)
		}
	}
}

func (m *Manager) decref(kind tableKind, k int32, gen uint32) {
	if t := m.hometable(kind); t != nil {
		if t.valid(k, gen) {
			t.decref(k)
		}
		return
	}
	switch kind {
	case kindDDD:
		if m.ddd.valid(k, gen) {
			m.ddd.decref(k)
		}
	case kindSDD:
		if m.sdd.valid(k, gen) {
			m.sdd.decref(k)
		}
	}
}

func (m *Manager) hometable(kind tableKind) *table[hnode] {
	switch kind {
	case kindHom:
		return m.homs
	case kindShom:
		return m.shoms
	case kindMLHom:
		return m.mlhoms
	case kindMLShom:
		return m.mlshoms
	}
	return nil
}

// ************************************************************

type released struct {
	kind tableKind
	id   int32
	gen  uint32
}

// releasequeue stores the references released by finalizers, which run on a
// goroutine of the Go runtime. It is the only part of a manager protected by a
// lock.
type releasequeue struct {
	sync.Mutex
	items []released
}

func (q *releasequeue) push(r released) {
	q.Lock()
	q.items = append(q.items, r)
	q.Unlock()
}

func (q *releasequeue) drain() []released {
	q.Lock()
	res := q.items
	q.items = nil
	q.Unlock()
	return res
}
