// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ddd

import (
	"fmt"

	"github.com/go-logr/logr"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Manager encapsulates the unicity tables and the caches shared by all the
// decision diagrams and homomorphisms built with it. Objects from different
// managers cannot be mixed.
//
// A Manager is not safe for concurrent use: every operation runs to
// completion on the calling goroutine, including garbage collection. The
// only exception is the release of forgotten Ref values by the Go runtime,
// which is queued and only taken into account at the next call to GC.
type Manager struct {
	ddd         *table[dnode] // Unicity table for DDD nodes
	sdd         *table[snode] // Unicity table for SDD nodes
	homs        *table[hnode] // Unicity table for Hom
	shoms       *table[hnode] // Unicity table for Shom
	mlhoms      *table[hnode] // Unicity table for MLHom
	mlshoms     *table[hnode] // Unicity table for MLShom
	varnames    map[int]string
	logger, log logr.Logger
	release     releasequeue // References released by finalizers
	errcount    int          // Number of errors since the last reset
	gchistory   int          // Maximal length of the GC history
	caches                   // Operation caches
	gcstat                   // Information about garbage collections
	error                    // Error status to help chain operations
}

// New returns a new Manager. Options are used to set the initial size of the
// tables and caches, and to set a logger; see for instance Nodesize or
// Logger.
func New(options ...func(*configs)) *Manager {
	c := makeconfigs()
	for _, f := range options {
		f(c)
	}
	logger := c.logger
	if logger.GetSink() == nil {
		logger = logr.Discard()
	}
	m := &Manager{
		varnames:  make(map[int]string),
		logger:    logger,
		log:       logger.WithName("ddd"),
		gchistory: c.gchistory,
	}
	m.ddd = newTable("ddd", c.nodesize, reservedDnodes(), dnodehash, dnodeequal)
	m.sdd = newTable("sdd", c.nodesize, reservedSnodes(), snodehash, snodeequal)
	m.homs = newTable("hom", c.homsize, reservedHnodes(), hnodehash, hnodeequal)
	m.shoms = newTable("shom", c.homsize, reservedHnodes(), hnodehash, hnodeequal)
	m.mlhoms = newTable("mlhom", c.homsize/4+1, reservedHnodes(), hnodehash, hnodeequal)
	m.mlshoms = newTable("mlshom", c.homsize/4+1, reservedHnodes(), hnodehash, hnodeequal)
	m.cacheinit(c.cachesize)
	m.gcstat.history = []gcpoint{}
	m.log.V(1).Info("new manager", "nodesize", c.nodesize, "homsize", c.homsize, "cachesize", c.cachesize)
	return m
}

// ************************************************************

// SetVarName sets the name used when printing variable v.
func (m *Manager) SetVarName(v int, name string) {
	m.varnames[v] = name
}

// VarName returns the name of variable v. It is x followed by the index of the
// variable if no name was set.
func (m *Manager) VarName(v int) string {
	if name, ok := m.varnames[v]; ok {
		return name
	}
	return fmt.Sprintf("x%d", v)
}

// VarNames returns the list of variables with a name, in increasing order.
func (m *Manager) VarNames() []int {
	res := maps.Keys(m.varnames)
	slices.Sort(res)
	return res
}

// Logger returns the logger of the manager, for use in user defined
// homomorphisms.
func (m *Manager) Logger() logr.Logger {
	return m.logger
}
