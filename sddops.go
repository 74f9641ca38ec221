// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ddd

// SUnion returns the union of a sequence of SDD.
func (m *Manager) SUnion(ss ...SDD) SDD {
	res := null
	for _, s := range ss {
		k, ok := m.checksdd(s, "SUnion")
		if !ok {
			return m.retsdd(k)
		}
		res = m.sapply(OPunion, res, k)
	}
	return m.retsdd(res)
}

// SIntersect returns the intersection of a non-empty sequence of SDD.
func (m *Manager) SIntersect(ss ...SDD) SDD {
	if len(ss) == 0 {
		return m.retsdd(m.seterror("SIntersect: %w", ErrLengthMismatch))
	}
	res, ok := m.checksdd(ss[0], "SIntersect")
	if !ok {
		return m.retsdd(res)
	}
	for _, s := range ss[1:] {
		k, ok := m.checksdd(s, "SIntersect")
		if !ok {
			return m.retsdd(k)
		}
		res = m.sapply(OPinter, res, k)
	}
	return m.retsdd(res)
}

// SMinus returns the set difference a - b.
func (m *Manager) SMinus(a, b SDD) SDD {
	return m.SApply(a, b, OPminus)
}

// SConcat returns the concatenation a ^ b.
func (m *Manager) SConcat(a, b SDD) SDD {
	return m.SApply(a, b, OPconcat)
}

// SApply performs one of the binary set operations on SDD. Like with Apply, we
// return STop and set the error status if the operands are not compatible.
func (m *Manager) SApply(left, right SDD, op Operator) SDD {
	l, ok := m.checksdd(left, "SApply")
	if !ok {
		return m.retsdd(l)
	}
	r, ok := m.checksdd(right, "SApply")
	if !ok {
		return m.retsdd(r)
	}
	return m.retsdd(m.sapply(op, l, r))
}

// sapply follows the same structure than apply. The merge of arc lists is
// replaced by a pairwise intersection of labels, since two different labels
// may overlap.
func (m *Manager) sapply(op Operator, l, r int32) int32 {
	// terminal cases are shared with DDD since terminals have the same indexes
	if res := m.terminal(op, l, r); res >= 0 {
		return res
	}
	key := op.key(l, r)
	if res, ok := m.sddop.match(key); ok {
		return res
	}
	ln := *m.sdd.get(l)
	if op == OPconcat {
		arcs := make([]sarc, len(ln.arcs))
		for k, a := range ln.arcs {
			arcs[k] = sarc{label: a.label, child: m.sapply(OPconcat, a.child, r)}
		}
		return m.sddop.set(key, m.makesdd(ln.variable, arcs))
	}
	rn := *m.sdd.get(r)
	if ln.variable != rn.variable {
		return m.seterror("s%s(%s, %s): %w", op, m.VarName(int(ln.variable)), m.VarName(int(rn.variable)), ErrVariableMismatch)
	}
	if !sametype(ln.arcs[0].label, rn.arcs[0].label) {
		return m.seterror("s%s(%s): %T and %T: %w", op, m.VarName(int(ln.variable)), ln.arcs[0].label, rn.arcs[0].label, ErrLabelType)
	}
	var arcs []sarc
	switch op {
	case OPunion:
		// the normalization in makesdd computes the square union
		arcs = make([]sarc, 0, len(ln.arcs)+len(rn.arcs))
		arcs = append(arcs, ln.arcs...)
		arcs = append(arcs, rn.arcs...)
	case OPinter:
		for _, a := range ln.arcs {
			for _, b := range rn.arcs {
				inter := a.label.Intersect(b.label)
				if inter.Empty() {
					continue
				}
				arcs = append(arcs, sarc{label: inter, child: m.sapply(OPinter, a.child, b.child)})
			}
		}
	case OPminus:
		for _, a := range ln.arcs {
			rem := a.label
			for _, b := range rn.arcs {
				inter := a.label.Intersect(b.label)
				if inter.Empty() {
					continue
				}
				rem = rem.Minus(inter)
				arcs = append(arcs, sarc{label: inter, child: m.sapply(OPminus, a.child, b.child)})
			}
			if !rem.Empty() {
				arcs = append(arcs, sarc{label: rem, child: a.child})
			}
		}
	}
	return m.sddop.set(key, m.makesdd(ln.variable, arcs))
}
