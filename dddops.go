// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ddd

// Union returns the union of a sequence of DDD. The result is Null if the
// sequence is empty.
func (m *Manager) Union(ds ...DDD) DDD {
	res := null
	for _, d := range ds {
		k, ok := m.checkddd(d, "Union")
		if !ok {
			return m.retddd(k)
		}
		res = m.apply(OPunion, res, k)
	}
	return m.retddd(res)
}

// Intersect returns the intersection of a sequence of DDD. The sequence must
// not be empty, otherwise the result is Top.
func (m *Manager) Intersect(ds ...DDD) DDD {
	if len(ds) == 0 {
		return m.retddd(m.seterror("Intersect: %w", ErrLengthMismatch))
	}
	res, ok := m.checkddd(ds[0], "Intersect")
	if !ok {
		return m.retddd(res)
	}
	for _, d := range ds[1:] {
		k, ok := m.checkddd(d, "Intersect")
		if !ok {
			return m.retddd(k)
		}
		res = m.apply(OPinter, res, k)
	}
	return m.retddd(res)
}

// Minus returns the set difference a - b.
func (m *Manager) Minus(a, b DDD) DDD {
	return m.Apply(a, b, OPminus)
}

// Concat returns the concatenation a ^ b, that is the set of paths obtained by
// appending a path of b to a path of a.
func (m *Manager) Concat(a, b DDD) DDD {
	return m.Apply(a, b, OPconcat)
}

// Apply performs one of the binary set operations on DDD: OPunion, OPinter,
// OPminus or OPconcat. We return Top, and set the error status, if the operands
// are not compatible, for instance if they are labelled with different
// variables.
func (m *Manager) Apply(left, right DDD, op Operator) DDD {
	l, ok := m.checkddd(left, "Apply")
	if !ok {
		return m.retddd(l)
	}
	r, ok := m.checkddd(right, "Apply")
	if !ok {
		return m.retddd(r)
	}
	return m.retddd(m.apply(op, l, r))
}

// terminal returns the result of op when one of the operands is a terminal, or
// when the result does not depend on the structure of the operands. We return
// -1 otherwise.
func (m *Manager) terminal(op Operator, l, r int32) int32 {
	switch op {
	case OPunion:
		if l == r {
			return l
		}
		if l == null {
			return r
		}
		if r == null {
			return l
		}
		if l == top || r == top {
			return top
		}
	case OPinter:
		if l == r {
			return l
		}
		if l == null || r == null {
			return null
		}
		if l == top || r == top {
			return top
		}
	case OPminus:
		if l == null {
			return null
		}
		if r == null {
			return l
		}
		if l == top || r == top {
			return top
		}
		if l == r {
			return null
		}
	case OPconcat:
		if l == null || r == null {
			return null
		}
		if l == one {
			return r
		}
		if l == top {
			return top
		}
		if r == one {
			return l
		}
		if r == top {
			return top
		}
		return -1
	}
	if l == one || r == one {
		return m.seterror("%s: %w", op, ErrLengthMismatch)
	}
	return -1
}

func (m *Manager) apply(op Operator, l, r int32) int32 {
	if res := m.terminal(op, l, r); res >= 0 {
		return res
	}
	key := op.key(l, r)
	if res, ok := m.dddop.match(key); ok {
		return res
	}
	// we copy the nodes since the table may be resized during the recursion
	ln := *m.ddd.get(l)
	if op == OPconcat {
		arcs := make([]darc, len(ln.arcs))
		for k, a := range ln.arcs {
			arcs[k] = darc{value: a.value, child: m.apply(OPconcat, a.child, r)}
		}
		return m.dddop.set(key, m.makeddd(ln.variable, arcs))
	}
	rn := *m.ddd.get(r)
	if ln.variable != rn.variable {
		return m.seterror("%s(%s, %s): %w", op, m.VarName(int(ln.variable)), m.VarName(int(rn.variable)), ErrVariableMismatch)
	}
	var arcs []darc
	switch op {
	case OPunion:
		arcs = make([]darc, 0, len(ln.arcs)+len(rn.arcs))
	default:
		arcs = make([]darc, 0, len(ln.arcs))
	}
	i, j := 0, 0
	for i < len(ln.arcs) || j < len(rn.arcs) {
		switch {
		case j == len(rn.arcs) || (i < len(ln.arcs) && ln.arcs[i].value < rn.arcs[j].value):
			// value only in the left operand
			if op != OPinter {
				arcs = append(arcs, ln.arcs[i])
			}
			i++
		case i == len(ln.arcs) || rn.arcs[j].value < ln.arcs[i].value:
			// value only in the right operand
			if op == OPunion {
				arcs = append(arcs, rn.arcs[j])
			}
			j++
		default:
			arcs = append(arcs, darc{
				value: ln.arcs[i].value,
				child: m.apply(op, ln.arcs[i].child, rn.arcs[j].child),
			})
			i++
			j++
		}
	}
	return m.dddop.set(key, m.makeddd(ln.variable, arcs))
}
