// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ddd

// Operator describe the binary set operations available on DDD and SDD. They
// are used as keys in the operation caches.
type Operator int

const (
	OPunion  Operator = iota // Union (+)
	OPinter                  // Intersection (*)
	OPminus                  // Difference (-)
	OPconcat                 // Concatenation (^)
)

var opnames = [4]string{
	OPunion:  "union",
	OPinter:  "intersect",
	OPminus:  "minus",
	OPconcat: "concat",
}

func (op Operator) String() string {
	return opnames[op]
}

// commutative returns true if the operands can be swapped, in which case we
// normalize the cache key so that both orders share an entry.
func (op Operator) commutative() bool {
	return op == OPunion || op == OPinter
}

func (op Operator) key(a, b int32) opkey {
	if op.commutative() && b < a {
		a, b = b, a
	}
	return opkey{op: op, a: a, b: b}
}
