// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ddd

// ************************************************************

// cache is used for caching the results of operations (set operations and
// evaluation of homomorphisms). There is no incremental eviction: entries
// accumulate until the next garbage collection, where caches are cleared in
// bulk.
type cache[K comparable, V any] struct {
	name  string  // used in logs and statistics
	size  int     // initial capacity, used when the cache is reset
	table map[K]V // cached results
	hit   int     // entries found in the cache
	miss  int     // entries not found in the cache
	peak  int     // largest number of entries since the creation of the cache
}

// opkey is the key for the result of a binary set operation, where a and b
// are the indexes of the operands in a node table.
type opkey struct {
	op   Operator
	a, b int32
}

// evalkey is the key for the result of the evaluation of homomorphism h on
// node n.
type evalkey struct {
	h, n int32
}

// ************************************************************

func newCache[K comparable, V any](name string, size int) *cache[K, V] {
	return &cache[K, V]{
		name:  name,
		size:  size,
		table: make(map[K]V, size),
	}
}

func (c *cache[K, V]) match(k K) (V, bool) {
	res, ok := c.table[k]
	if ok {
		c.hit++
		return res, true
	}
	c.miss++
	return res, false
}

func (c *cache[K, V]) set(k K, res V) V {
	c.table[k] = res
	if len(c.table) > c.peak {
		c.peak = len(c.table)
	}
	return res
}

func (c *cache[K, V]) cachereset() {
	c.table = make(map[K]V, c.size)
}

func (c *cache[K, V]) stat() CacheStat {
	return CacheStat{
		Name:    c.name,
		Entries: len(c.table),
		Peak:    c.peak,
		Hit:     c.hit,
		Miss:    c.miss,
	}
}

// *************************************************************************
// Setup and shutdown

type caches struct {
	dddop  *cache[opkey, int32]       // Cache for DDD set operations
	sddop  *cache[opkey, int32]       // Cache for SDD set operations
	hom    *cache[evalkey, int32]     // Cache for the evaluation of Hom
	shom   *cache[evalkey, int32]     // Cache for the evaluation of Shom
	mlhom  *cache[evalkey, []mlentry] // Cache for the evaluation of MLHom
	mlshom *cache[evalkey, []mlentry] // Cache for the evaluation of MLShom
}

func (m *Manager) cacheinit(size int) {
	m.dddop = newCache[opkey, int32]("ddd ops", size)
	m.sddop = newCache[opkey, int32]("sdd ops", size)
	m.hom = newCache[evalkey, int32]("hom eval", size)
	m.shom = newCache[evalkey, int32]("shom eval", size)
	m.mlhom = newCache[evalkey, []mlentry]("mlhom eval", size/4+1)
	m.mlshom = newCache[evalkey, []mlentry]("mlshom eval", size/4+1)
}

func (m *Manager) cachereset() {
	m.dddop.cachereset()
	m.sddop.cachereset()
	m.hom.cachereset()
	m.shom.cachereset()
	m.mlhom.cachereset()
	m.mlshom.cachereset()
}

func (m *Manager) cachestats() []CacheStat {
	return []CacheStat{
		m.dddop.stat(),
		m.sddop.stat(),
		m.hom.stat(),
		m.shom.stat(),
		m.mlhom.stat(),
		m.mlshom.stat(),
	}
}
