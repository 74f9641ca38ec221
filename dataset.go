// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ddd

import (
	"math/big"
	"reflect"
)

// DataSet is the interface of the values used to label the arcs of an SDD.
// Values are immutable: operations return a new DataSet and never modify their
// receiver or their argument. All the labels found on the arcs of a given
// variable should have the same concrete type; mixing types yields the Top SDD
// and sets the error status of the manager (see ErrLabelType).
//
// IntSet, DDD and SDD all implement DataSet, which means that SDD can be nested
// to arbitrary depth.
type DataSet interface {
	// Intersect returns the intersection of the receiver with o.
	Intersect(o DataSet) DataSet
	// Union returns the union of the receiver with o.
	Union(o DataSet) DataSet
	// Minus returns the set difference between the receiver and o.
	Minus(o DataSet) DataSet
	// Empty returns true if the set is empty.
	Empty() bool
	// EmptySet returns the empty set of the same type than the receiver.
	EmptySet() DataSet
	// Equal returns true if both sets are equal. It must be consistent with
	// Hash.
	Equal(o DataSet) bool
	// Size returns the number of elements in the set.
	Size() *big.Int
	Hash() uint64
	String() string
	// Mark should call the marker on every object of the manager referenced by
	// the set, if any. It is used during garbage collection.
	Mark(mk *Marker)
}

// sametype returns true if a and b can be combined using set operations. We
// only test the dynamic types of the labels; values themselves may still panic
// on unexpected inputs.
func sametype(a, b DataSet) bool {
	switch a.(type) {
	case IntSet:
		_, ok := b.(IntSet)
		return ok
	case DDD:
		_, ok := b.(DDD)
		return ok
	case SDD:
		_, ok := b.(SDD)
		return ok
	}
	return reflect.TypeOf(a) == reflect.TypeOf(b)
}
