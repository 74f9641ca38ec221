// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ddd

import "github.com/go-logr/logr"

// _DEFAULTNODESIZE is the default initial capacity of the node tables.
const _DEFAULTNODESIZE int = 1 << 10

// _DEFAULTHOMSIZE is the default initial capacity of the homomorphism tables.
const _DEFAULTHOMSIZE int = 1 << 8

// _DEFAULTCACHESIZE is the default initial capacity of the operation caches.
const _DEFAULTCACHESIZE int = 1 << 10

// configs is used to store the values of different parameters of a Manager
type configs struct {
	logger    logr.Logger // sink for the logs of the manager
	nodesize  int         // initial capacity of the DDD and SDD node tables
	homsize   int         // initial capacity of the homomorphism tables
	cachesize int         // initial capacity of the operation caches
	gchistory int         // number of GC snapshots kept (0 if no limit)
}

func makeconfigs() *configs {
	return &configs{
		nodesize:  _DEFAULTNODESIZE,
		homsize:   _DEFAULTHOMSIZE,
		cachesize: _DEFAULTCACHESIZE,
	}
}

// Logger is a configuration option (function). Used as a parameter in New it
// sets the logger used by the manager. Nothing is logged by default.
func Logger(l logr.Logger) func(*configs) {
	return func(c *configs) {
		c.logger = l
	}
}

// Nodesize is a configuration option (function). Used as a parameter in New it
// sets a preferred initial size for the DDD and SDD node tables. Tables grow
// as needed, so this only avoids reallocations on large examples.
func Nodesize(size int) func(*configs) {
	return func(c *configs) {
		if size > 0 {
			c.nodesize = size
		}
	}
}

// Homsize is a configuration option (function). Used as a parameter in New it
// sets the initial size of the tables of (multi-linear) homomorphisms.
func Homsize(size int) func(*configs) {
	return func(c *configs) {
		if size > 0 {
			c.homsize = size
		}
	}
}

// Cachesize is a configuration option (function). Used as a parameter in New it
// sets the initial number of entries in each operation cache. Caches are never
// evicted incrementally: they grow until the next call to GC, where they are
// cleared.
func Cachesize(size int) func(*configs) {
	return func(c *configs) {
		if size > 0 {
			c.cachesize = size
		}
	}
}

// GCHistory is a configuration option (function). Used as a parameter in New
// it bounds the number of snapshots kept in the GC history. The default value
// (0) means that we keep all of them.
func GCHistory(size int) func(*configs) {
	return func(c *configs) {
		if size >= 0 {
			c.gchistory = size
		}
	}
}
