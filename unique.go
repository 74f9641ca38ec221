// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ddd

// _MAXREFCOUNT is the maximal value of the reference counter, also used to
// stick objects (like terminals) in a table. Objects with this count are never
// reclaimed and the count never changes.
const _MAXREFCOUNT int32 = 0x7FFFFFFF

// table is a unicity table, used to associate each structural content to a
// single slot. It is used for nodes (DDD and SDD) as well as for
// homomorphisms. Slots are referenced using their index; a slot is reused
// after being reclaimed, in which case its generation is increased so that
// stale references can be detected. We use a standard runtime hashmap from a
// structural hash to a bucket of slots with this hash.
type table[T any] struct {
	name     string             // used in logs and statistics
	items    []T                // list of all the objects. Reserved objects are kept at the lowest indexes
	meta     []slotmeta         // GC and hashing information about each slot, kept out of the objects
	free     []int32            // stack of free positions in items
	unique   map[uint64][]int32 // unicity table, from structural hash to slots
	reserved int32              // number of reserved slots, never reclaimed and not in unique
	hash     func(*T) uint64    // structural hash
	equal    func(*T, *T) bool  // structural equality, consistent with hash
	produced int                // total number of new objects ever produced
	access   int                // accesses to the unicity table
	hit      int                // entries actually found in the unicity table
	miss     int                // entries not found in the unicity table
	peak     int                // largest number of live objects
}

type slotmeta struct {
	hash   uint64 // structural hash of the object in the slot
	refcou int32  // count the number of external references
	gen    uint32 // generation of the slot, incremented each time it is freed
	used   bool   // false if the slot is free
	marked bool   // set during the mark phase of a GC
}

func newTable[T any](name string, size int, reserved []T, hash func(*T) uint64, equal func(*T, *T) bool) *table[T] {
	if size < len(reserved) {
		size = len(reserved)
	}
	t := &table[T]{
		name:     name,
		items:    make([]T, len(reserved), size),
		meta:     make([]slotmeta, len(reserved), size),
		unique:   make(map[uint64][]int32, size),
		reserved: int32(len(reserved)),
		hash:     hash,
		equal:    equal,
	}
	copy(t.items, reserved)
	for k := range t.meta {
		t.meta[k] = slotmeta{refcou: _MAXREFCOUNT, used: true}
	}
	t.peak = len(reserved)
	return t
}

// canonical returns the slot of the unique object structurally equal to x,
// inserting x in the table if there is none.
func (t *table[T]) canonical(x T) int32 {
	t.access++
	h := t.hash(&x)
	for _, k := range t.unique[h] {
		if t.equal(&t.items[k], &x) {
			t.hit++
			return k
		}
	}
	t.miss++
	return t.insert(x, h)
}

func (t *table[T]) insert(x T, h uint64) int32 {
	var res int32
	if n := len(t.free); n > 0 {
		res = t.free[n-1]
		t.free = t.free[:n-1]
		t.items[res] = x
		t.meta[res] = slotmeta{hash: h, gen: t.meta[res].gen, used: true}
	} else {
		res = int32(len(t.items))
		t.items = append(t.items, x)
		t.meta = append(t.meta, slotmeta{hash: h, used: true})
	}
	t.unique[h] = append(t.unique[h], res)
	t.produced++
	if l := t.live(); l > t.peak {
		t.peak = l
	}
	return res
}

func (t *table[T]) get(k int32) *T {
	return &t.items[k]
}

// valid returns true if k is a used slot with the given generation.
func (t *table[T]) valid(k int32, gen uint32) bool {
	if k < 0 || int(k) >= len(t.meta) {
		return false
	}
	return t.meta[k].used && t.meta[k].gen == gen
}

func (t *table[T]) gen(k int32) uint32 {
	return t.meta[k].gen
}

// live returns the number of objects in the table, reserved ones included.
func (t *table[T]) live() int {
	return len(t.items) - len(t.free)
}

func (t *table[T]) incref(k int32) {
	if t.meta[k].refcou < _MAXREFCOUNT {
		t.meta[k].refcou++
	}
}

func (t *table[T]) decref(k int32) {
	if t.meta[k].refcou <= 0 || t.meta[k].refcou == _MAXREFCOUNT {
		return
	}
	t.meta[k].refcou--
}

func (t *table[T]) refcount(k int32) int32 {
	return t.meta[k].refcou
}

// ismarked returns true if k was already marked during this GC. Reserved and
// free slots are always considered as marked, so that recursive marking stops
// there.
func (t *table[T]) ismarked(k int32) bool {
	return k < t.reserved || !t.meta[k].used || t.meta[k].marked
}

func (t *table[T]) marknode(k int32) {
	t.meta[k].marked = true
}

// roots calls f on every slot protected by an external reference.
func (t *table[T]) roots(f func(k int32)) {
	for k := t.reserved; int(k) < len(t.meta); k++ {
		if t.meta[k].used && t.meta[k].refcou > 0 {
			f(k)
		}
	}
}

// sweep reclaims every unmarked slot and unmarks the other ones. It returns the
// number of reclaimed objects.
func (t *table[T]) sweep() int {
	var zero T
	freed := 0
	for k := len(t.meta) - 1; k >= int(t.reserved); k-- {
		sm := &t.meta[k]
		if !sm.used {
			continue
		}
		if sm.marked {
			sm.marked = false
			continue
		}
		t.delnode(int32(k))
		t.items[k] = zero
		sm.used = false
		sm.refcou = 0
		sm.gen++
		t.free = append(t.free, int32(k))
		freed++
	}
	return freed
}

func (t *table[T]) delnode(k int32) {
	h := t.meta[k].hash
	bucket := t.unique[h]
	for i, v := range bucket {
		if v == k {
			bucket[i] = bucket[len(bucket)-1]
			bucket = bucket[:len(bucket)-1]
			break
		}
	}
	if len(bucket) == 0 {
		delete(t.unique, h)
		return
	}
	t.unique[h] = bucket
}

// lookup returns the slot of the object structurally equal to x, if any. It
// does not modify the table nor the statistics.
func (t *table[T]) lookup(x T) (int32, bool) {
	for _, k := range t.unique[t.hash(&x)] {
		if t.equal(&t.items[k], &x) {
			return k, true
		}
	}
	return -1, false
}

// contains returns true if there is an object structurally equal to x in the
// table.
func (t *table[T]) contains(x T) bool {
	_, ok := t.lookup(x)
	return ok
}

// each calls f on every used slot, reserved ones excluded.
func (t *table[T]) each(f func(k int32, x *T)) {
	for k := t.reserved; int(k) < len(t.meta); k++ {
		if t.meta[k].used {
			f(k, &t.items[k])
		}
	}
}

func (t *table[T]) stat() TableStat {
	return TableStat{
		Name:     t.name,
		Live:     t.live(),
		Peak:     t.peak,
		Produced: t.produced,
		Access:   t.access,
		Hit:      t.hit,
		Miss:     t.miss,
	}
}
