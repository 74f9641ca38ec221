// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ddd

import (
	"fmt"
)

// evalhom returns the result of Hom h on DDD n. Every homomorphism maps null
// to null and top to top. Identity and constants are evaluated directly;
// the result of the other homomorphisms goes through the hom cache.
func (m *Manager) evalhom(h, n int32) int32 {
	if n == null || n == top {
		return n
	}
	hn := *m.homs.get(h)
	switch hn.kind {
	case homIdentity:
		return n
	case homConstant:
		return hn.node
	}
	key := evalkey{h: h, n: n}
	if res, ok := m.hom.match(key); ok {
		return res
	}
	var res int32
	switch hn.kind {
	case homMult:
		res = m.apply(OPinter, hn.node, m.evalhom(hn.args[0], n))
	case homLeftConcat:
		res = m.apply(OPconcat, hn.node, m.evalhom(hn.args[0], n))
	case homRightConcat:
		res = m.apply(OPconcat, m.evalhom(hn.args[0], n), hn.node)
	case homMinus:
		res = m.apply(OPminus, m.evalhom(hn.args[0], n), hn.node)
	case homAdd:
		res = null
		for _, a := range hn.args {
			res = m.apply(OPunion, res, m.evalhom(a, n))
		}
	case homAnd:
		res = m.evalhom(hn.args[0], n)
		for _, a := range hn.args[1:] {
			res = m.apply(OPinter, res, m.evalhom(a, n))
		}
	case homCompose:
		res = m.evalhom(hn.args[0], m.evalhom(hn.args[1], n))
	case homFixpoint:
		res = n
		for {
			next := m.evalhom(hn.args[0], res)
			if next == res || next == top {
				res = next
				break
			}
			res = next
		}
	case homInductive:
		res = m.evalinductive(hn.user.(StrongHom), h, n)
	case homFromML:
		res = null
		for _, e := range m.evalmlhom(hn.args[0], n) {
			res = m.apply(OPunion, res, m.evalhom(e.hom, e.node))
		}
	default:
		panic(fmt.Sprintf("unexpected kind of Hom: %s", hn.kind))
	}
	return m.hom.set(key, res)
}

// evalinductive evaluates a user defined homomorphism. The homomorphism
// returned by Phi is applied on each child separately, since siblings may not
// be compatible operands for a union.
func (m *Manager) evalinductive(s StrongHom, h, n int32) int32 {
	if n == one {
		k, _ := m.checkddd(s.PhiOne(m), "PhiOne")
		return k
	}
	node := *m.ddd.get(n)
	if sk, ok := s.(Skipper); ok && sk.Skip(int(node.variable)) {
		arcs := make([]darc, len(node.arcs))
		for i, a := range node.arcs {
			arcs[i] = darc{value: a.value, child: m.evalhom(h, a.child)}
		}
		return m.makeddd(node.variable, arcs)
	}
	res := null
	for _, a := range node.arcs {
		phi, ok := m.checkhom(s.Phi(m, int(node.variable), int(a.value)), "Phi")
		if !ok {
			return top
		}
		res = m.apply(OPunion, res, m.evalhom(phi, a.child))
	}
	return res
}

// ************************************************************

// evalshom follows the same structure than evalhom.
func (m *Manager) evalshom(h, n int32) int32 {
	if n == null || n == top {
		return n
	}
	hn := *m.shoms.get(h)
	switch hn.kind {
	case homIdentity:
		return n
	case homConstant:
		return hn.node
	}
	key := evalkey{h: h, n: n}
	if res, ok := m.shom.match(key); ok {
		return res
	}
	var res int32
	switch hn.kind {
	case homMult:
		res = m.sapply(OPinter, hn.node, m.evalshom(hn.args[0], n))
	case homLeftConcat:
		res = m.sapply(OPconcat, hn.node, m.evalshom(hn.args[0], n))
	case homRightConcat:
		res = m.sapply(OPconcat, m.evalshom(hn.args[0], n), hn.node)
	case homMinus:
		res = m.sapply(OPminus, m.evalshom(hn.args[0], n), hn.node)
	case homAdd:
		res = null
		for _, a := range hn.args {
			res = m.sapply(OPunion, res, m.evalshom(a, n))
		}
	case homAnd:
		res = m.evalshom(hn.args[0], n)
		for _, a := range hn.args[1:] {
			res = m.sapply(OPinter, res, m.evalshom(a, n))
		}
	case homCompose:
		res = m.evalshom(hn.args[0], m.evalshom(hn.args[1], n))
	case homFixpoint:
		res = n
		for {
			next := m.evalshom(hn.args[0], res)
			if next == res || next == top {
				res = next
				break
			}
			res = next
		}
	case homInductive:
		res = m.evalsinductive(hn.user.(StrongShom), h, n)
	case homFromML:
		res = null
		for _, e := range m.evalmlshom(hn.args[0], n) {
			res = m.sapply(OPunion, res, m.evalshom(e.hom, e.node))
		}
	case homLocal, homLocalS:
		res = m.evallocal(hn, h, n)
	default:
		panic(fmt.Sprintf("unexpected kind of Shom: %s", hn.kind))
	}
	return m.shom.set(key, res)
}

func (m *Manager) evalsinductive(s StrongShom, h, n int32) int32 {
	if n == one {
		k, _ := m.checksdd(s.PhiOne(m), "PhiOne")
		return k
	}
	node := *m.sdd.get(n)
	if sk, ok := s.(Skipper); ok && sk.Skip(int(node.variable)) {
		arcs := make([]sarc, len(node.arcs))
		for i, a := range node.arcs {
			arcs[i] = sarc{label: a.label, child: m.evalshom(h, a.child)}
		}
		return m.makesdd(node.variable, arcs)
	}
	res := null
	for _, a := range node.arcs {
		phi, ok := m.checkshom(s.Phi(m, int(node.variable), a.label), "Phi")
		if !ok {
			return top
		}
		res = m.sapply(OPunion, res, m.evalshom(phi, a.child))
	}
	return res
}

// evallocal evaluates Local and LocalS: labels of the target variable are
// transformed and the children are kept; other nodes are traversed.
func (m *Manager) evallocal(hn hnode, h, n int32) int32 {
	if n == one {
		return one
	}
	node := *m.sdd.get(n)
	arcs := make([]sarc, 0, len(node.arcs))
	if node.variable != hn.variable {
		for _, a := range node.arcs {
			arcs = append(arcs, sarc{label: a.label, child: m.evalshom(h, a.child)})
		}
		return m.makesdd(node.variable, arcs)
	}
	for _, a := range node.arcs {
		var label DataSet
		switch l := a.label.(type) {
		case DDD:
			if hn.kind != homLocal {
				return m.seterror("LocalS(%s): DDD label: %w", m.VarName(int(node.variable)), ErrLabelType)
			}
			label = m.retddd(m.evalhom(hn.args[0], l.id))
		case SDD:
			if hn.kind != homLocalS {
				return m.seterror("Local(%s): SDD label: %w", m.VarName(int(node.variable)), ErrLabelType)
			}
			label = m.retsdd(m.evalshom(hn.args[0], l.id))
		default:
			return m.seterror("%s(%s): %T label: %w", hn.kind, m.VarName(int(node.variable)), a.label, ErrLabelType)
		}
		if label.(interface{ IsTop() bool }).IsTop() {
			return top
		}
		arcs = append(arcs, sarc{label: label, child: a.child})
	}
	return m.makesdd(node.variable, arcs)
}

// ************************************************************

// evalmlhom returns the map computed by MLHom h on DDD n, as a list of entries
// sorted by hom.
func (m *Manager) evalmlhom(h, n int32) []mlentry {
	if n == null {
		return nil
	}
	if n == top {
		return []mlentry{{hom: identity, node: top}}
	}
	hn := *m.mlhoms.get(h)
	switch hn.kind {
	case homIdentity:
		return []mlentry{{hom: identity, node: n}}
	case homConstant:
		// the empty multi-linear homomorphism
		return nil
	}
	key := evalkey{h: h, n: n}
	if res, ok := m.mlhom.match(key); ok {
		return res
	}
	acc := m.dddmap()
	switch hn.kind {
	case homMLFromHom:
		acc.add(identity, m.evalhom(hn.args[0], n))
	case homMLAdd:
		for _, a := range hn.args {
			for _, e := range m.evalmlhom(a, n) {
				acc.add(e.hom, e.node)
			}
		}
	case homMLInductive:
		s := hn.user.(StrongMLHom)
		if n == one {
			if hm := s.PhiOne(m); hm != nil {
				for _, k := range hm.acc.keys() {
					acc.add(k, hm.acc.vals[k])
				}
			}
			break
		}
		node := *m.ddd.get(n)
		for _, a := range node.arcs {
			phi := s.Phi(m, int(node.variable), int(a.value))
			if phi == nil {
				continue
			}
			for _, up := range phi.acc.keys() {
				for _, e := range m.evalmlhom(phi.acc.vals[up], a.child) {
					acc.add(m.mkcompose(m.homs, up, e.hom), e.node)
				}
			}
		}
	default:
		panic(fmt.Sprintf("unexpected kind of MLHom: %s", hn.kind))
	}
	return m.mlhom.set(key, acc.entries())
}

func (m *Manager) evalmlshom(h, n int32) []mlentry {
	if n == null {
		return nil
	}
	if n == top {
		return []mlentry{{hom: identity, node: top}}
	}
	hn := *m.mlshoms.get(h)
	switch hn.kind {
	case homIdentity:
		return []mlentry{{hom: identity, node: n}}
	case homConstant:
		return nil
	}
	key := evalkey{h: h, n: n}
	if res, ok := m.mlshom.match(key); ok {
		return res
	}
	acc := m.sddmap()
	switch hn.kind {
	case homMLFromHom:
		acc.add(identity, m.evalshom(hn.args[0], n))
	case homMLAdd:
		for _, a := range hn.args {
			for _, e := range m.evalmlshom(a, n) {
				acc.add(e.hom, e.node)
			}
		}
	case homMLInductive:
		s := hn.user.(StrongMLShom)
		if n == one {
			if hm := s.PhiOne(m); hm != nil {
				for _, k := range hm.acc.keys() {
					acc.add(k, hm.acc.vals[k])
				}
			}
			break
		}
		node := *m.sdd.get(n)
		for _, a := range node.arcs {
			phi := s.Phi(m, int(node.variable), a.label)
			if phi == nil {
				continue
			}
			for _, up := range phi.acc.keys() {
				for _, e := range m.evalmlshom(phi.acc.vals[up], a.child) {
					acc.add(m.mkcompose(m.shoms, up, e.hom), e.node)
				}
			}
		}
	default:
		panic(fmt.Sprintf("unexpected kind of MLShom: %s", hn.kind))
	}
	return m.mlshom.set(key, acc.entries())
}
