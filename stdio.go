// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ddd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
)

// TableStat gives information about one of the unicity tables of a manager.
type TableStat struct {
	Name     string
	Live     int // objects currently in the table, terminals included
	Peak     int // largest number of live objects
	Produced int // total number of objects ever created
	Access   int // calls to the table
	Hit      int // objects found in the table
	Miss     int // objects added to the table
}

// CacheStat gives information about one of the operation caches.
type CacheStat struct {
	Name    string
	Entries int // current number of entries
	Peak    int // largest number of entries since the creation of the manager
	Hit     int
	Miss    int
}

// GCStat gives information about one garbage collection.
type GCStat struct {
	Nodes      int // live nodes (DDD and SDD) after the GC
	FreedNodes int
	Homs       int // live homomorphisms after the GC
	FreedHoms  int
	Refs       int // references created since the previous GC
	Finalized  int // references released by finalizers since the previous GC
}

// Stats is a snapshot of the statistics of a manager.
type Stats struct {
	Tables  []TableStat
	Caches  []CacheStat
	GCount  int      // number of garbage collections since the creation of the manager
	History []GCStat // most recent garbage collections, see option GCHistory
	Errors  int      // number of errors since the last call to ResetError
}

// Statistics returns the current statistics of m.
func (m *Manager) Statistics() Stats {
	res := Stats{
		Tables: []TableStat{
			m.ddd.stat(),
			m.sdd.stat(),
			m.homs.stat(),
			m.shoms.stat(),
			m.mlhoms.stat(),
			m.mlshoms.stat(),
		},
		Caches:  m.cachestats(),
		GCount:  m.gcstat.gcount,
		History: make([]GCStat, len(m.gcstat.history)),
		Errors:  m.errcount,
	}
	for k, g := range m.gcstat.history {
		res.History[k] = GCStat{
			Nodes:      g.nodes,
			FreedNodes: g.freednodes,
			Homs:       g.homs,
			FreedHoms:  g.freedhoms,
			Refs:       g.setfinalizers,
			Finalized:  g.calledfinalizers,
		}
	}
	return res
}

// Stats returns a textual representation of the statistics of m, with one
// line per table and per cache.
func (m *Manager) Stats() string {
	var sb strings.Builder
	m.Statistics().Fprint(&sb)
	return sb.String()
}

// PrintStats outputs a textual representation of the statistics of m on the
// standard output.
func (m *Manager) PrintStats() {
	m.Statistics().Fprint(os.Stdout)
}

// Fprint writes the statistics in w as two aligned tables.
func (s Stats) Fprint(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "table\tlive\tpeak\tproduced\thit\tmiss\t")
	for _, t := range s.Tables {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d\t\n", t.Name, t.Live, t.Peak, t.Produced, t.Hit, t.Miss)
	}
	fmt.Fprintln(tw, "cache\tentries\tpeak\t\thit\tmiss\t")
	for _, c := range s.Caches {
		fmt.Fprintf(tw, "%s\t%d\t%d\t\t%d\t%d\t\n", c.Name, c.Entries, c.Peak, c.Hit, c.Miss)
	}
	tw.Flush()
	fmt.Fprintf(w, "# of GC: %d\n", s.GCount)
	if s.Errors > 0 {
		fmt.Fprintf(w, "errors: %d\n", s.Errors)
	}
}

// ************************************************************

// String returns a textual representation of the set of paths in d, such as
// {[x0=1 x1=2], [x0=1 x1=3]}. The result can be very large.
func (d DDD) String() string {
	k, ok := d.m.checkddd(d, "String")
	switch {
	case !ok || k == top:
		return "top"
	case k == null:
		return "{}"
	case k == one:
		return "{[]}"
	}
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	d.m.paths(k, nil, func(p []Assignment) error {
		if !first {
			sb.WriteString(", ")
		}
		first = false
		sb.WriteByte('[')
		for i, a := range p {
			if i > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%s=%d", d.m.VarName(a.Variable), a.Value)
		}
		sb.WriteByte(']')
		return nil
	})
	sb.WriteByte('}')
	return sb.String()
}

// String returns a textual representation of the set of paths in s, where
// each step is labelled by a set of values.
func (s SDD) String() string {
	k, ok := s.m.checksdd(s, "String")
	switch {
	case !ok || k == top:
		return "top"
	case k == null:
		return "{}"
	case k == one:
		return "{[]}"
	}
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	s.m.spaths(k, nil, func(p []SAssignment) error {
		if !first {
			sb.WriteString(", ")
		}
		first = false
		sb.WriteByte('[')
		for i, a := range p {
			if i > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%s=%s", s.m.VarName(a.Variable), a.Label)
		}
		sb.WriteByte(']')
		return nil
	})
	sb.WriteByte('}')
	return sb.String()
}

// homstring returns a textual representation of homomorphism h in table t.
func (m *Manager) homstring(t *table[hnode], h int32) string {
	hn := t.get(h)
	switch hn.kind {
	case homIdentity:
		return "id"
	case homConstant:
		return fmt.Sprintf("const(%d)", hn.node)
	case homInductive, homMLInductive:
		return fmt.Sprintf("%s(%T)", hn.kind, hn.user)
	case homLocal:
		return fmt.Sprintf("local(%s, %s)", m.homstring(m.homs, hn.args[0]), m.VarName(int(hn.variable)))
	case homLocalS:
		return fmt.Sprintf("locals(%s, %s)", m.homstring(m.shoms, hn.args[0]), m.VarName(int(hn.variable)))
	case homFromML:
		sub := m.mlhoms
		if t == m.shoms {
			sub = m.mlshoms
		}
		return fmt.Sprintf("fromml(%s)", m.homstring(sub, hn.args[0]))
	case homMLFromHom:
		sub := m.homs
		if t == m.mlshoms {
			sub = m.shoms
		}
		return fmt.Sprintf("mlfromhom(%s)", m.homstring(sub, hn.args[0]))
	}
	args := make([]string, 0, len(hn.args)+1)
	switch hn.kind {
	case homMult, homLeftConcat, homRightConcat, homMinus:
		args = append(args, fmt.Sprintf("%d", hn.node))
	}
	for _, a := range hn.args {
		args = append(args, m.homstring(t, a))
	}
	return fmt.Sprintf("%s(%s)", hn.kind, strings.Join(args, ", "))
}

// ************************************************************

// errStop is used to interrupt the printing of paths.
var errStop = errors.New("stop")

// Fprint writes the paths of d in w, one per line, using the variable names
// of the manager. We print at most max paths when max is positive.
func (d DDD) Fprint(w io.Writer, max int) error {
	count := 0
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	err := d.Paths(func(p []Assignment) error {
		if max > 0 && count == max {
			return errStop
		}
		count++
		for _, a := range p {
			fmt.Fprintf(tw, "%s=%d\t", d.m.VarName(a.Variable), a.Value)
		}
		fmt.Fprintln(tw)
		return nil
	})
	tw.Flush()
	if errors.Is(err, errStop) {
		fmt.Fprintln(w, "...")
		return nil
	}
	return err
}

// PrintTable outputs the content of the DDD unicity table on w, one node per
// line, for debugging.
func (m *Manager) PrintTable(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	m.ddd.each(func(k int32, n *dnode) {
		fmt.Fprintf(tw, "%d\t[%s]\t", k, m.VarName(int(n.variable)))
		for _, a := range n.arcs {
			fmt.Fprintf(tw, " %d -> %d", a.value, a.child)
		}
		fmt.Fprintf(tw, "\t(ref %d)\n", m.ddd.refcount(k))
	})
	tw.Flush()
}
