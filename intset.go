// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ddd

import (
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/exp/slices"
)

// IntSet is a finite set of integers, used as a DataSet to label the arcs of
// an SDD. The zero value is the empty set. An IntSet is immutable and may be
// shared freely.
type IntSet struct {
	vals []int // sorted, without duplicates
}

var _ DataSet = IntSet{}

// NewIntSet returns the set containing the given values, in any order and
// possibly with repetitions.
func NewIntSet(vals ...int) IntSet {
	if len(vals) == 0 {
		return IntSet{}
	}
	res := slices.Clone(vals)
	slices.Sort(res)
	return IntSet{vals: slices.Clip(slices.Compact(res))}
}

// IntRange returns the interval [lo..hi].
func IntRange(lo, hi int) IntSet {
	if hi < lo {
		return IntSet{}
	}
	res := make([]int, 0, hi-lo+1)
	for v := lo; v <= hi; v++ {
		res = append(res, v)
	}
	return IntSet{vals: res}
}

// Values returns the elements of s in increasing order. The caller must not
// modify the result.
func (s IntSet) Values() []int {
	return s.vals
}

// Contains returns true if v is in s.
func (s IntSet) Contains(v int) bool {
	_, ok := slices.BinarySearch(s.vals, v)
	return ok
}

// Len returns the number of elements in s.
func (s IntSet) Len() int {
	return len(s.vals)
}

func intset(o DataSet) IntSet {
	t, ok := o.(IntSet)
	if !ok {
		panic(fmt.Sprintf("set operation between an IntSet and a %T", o))
	}
	return t
}

// Intersect implements the DataSet interface.
func (s IntSet) Intersect(o DataSet) DataSet {
	t := intset(o)
	res := []int{}
	i, j := 0, 0
	for i < len(s.vals) && j < len(t.vals) {
		switch {
		case s.vals[i] < t.vals[j]:
			i++
		case t.vals[j] < s.vals[i]:
			j++
		default:
			res = append(res, s.vals[i])
			i++
			j++
		}
	}
	return IntSet{vals: res}
}

// Union implements the DataSet interface.
func (s IntSet) Union(o DataSet) DataSet {
	t := intset(o)
	res := make([]int, 0, len(s.vals)+len(t.vals))
	i, j := 0, 0
	for i < len(s.vals) || j < len(t.vals) {
		switch {
		case j == len(t.vals) || (i < len(s.vals) && s.vals[i] < t.vals[j]):
			res = append(res, s.vals[i])
			i++
		case i == len(s.vals) || t.vals[j] < s.vals[i]:
			res = append(res, t.vals[j])
			j++
		default:
			res = append(res, s.vals[i])
			i++
			j++
		}
	}
	return IntSet{vals: res}
}

// Minus implements the DataSet interface.
func (s IntSet) Minus(o DataSet) DataSet {
	t := intset(o)
	res := []int{}
	j := 0
	for _, v := range s.vals {
		for j < len(t.vals) && t.vals[j] < v {
			j++
		}
		if j < len(t.vals) && t.vals[j] == v {
			continue
		}
		res = append(res, v)
	}
	return IntSet{vals: res}
}

// Empty implements the DataSet interface.
func (s IntSet) Empty() bool {
	return len(s.vals) == 0
}

// EmptySet implements the DataSet interface.
func (s IntSet) EmptySet() DataSet {
	return IntSet{}
}

// Equal implements the DataSet interface.
func (s IntSet) Equal(o DataSet) bool {
	t, ok := o.(IntSet)
	return ok && slices.Equal(s.vals, t.vals)
}

// Size implements the DataSet interface.
func (s IntSet) Size() *big.Int {
	return big.NewInt(int64(len(s.vals)))
}

// Hash implements the DataSet interface.
func (s IntSet) Hash() uint64 {
	return HashInts(s.vals...)
}

// String returns a compact representation of s, using intervals for sequences
// of consecutive values, like in {0..3, 7}.
func (s IntSet) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i := 0; i < len(s.vals); {
		j := i
		for j+1 < len(s.vals) && s.vals[j+1] == s.vals[j]+1 {
			j++
		}
		if i > 0 {
			sb.WriteString(", ")
		}
		if j > i {
			fmt.Fprintf(&sb, "%d..%d", s.vals[i], s.vals[j])
		} else {
			fmt.Fprintf(&sb, "%d", s.vals[i])
		}
		i = j + 1
	}
	sb.WriteByte('}')
	return sb.String()
}

// Mark implements the DataSet interface. An IntSet does not reference any
// object of the manager.
func (s IntSet) Mark(mk *Marker) {}
