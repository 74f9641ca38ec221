// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ddd

// Hash functions

// _GOLDEN is 2^64 divided by the golden ratio, used to spread the bits of
// successive values in combine.
const _GOLDEN uint64 = 0x9e3779b97f4a7c15

// _PAIR is a mapping function that maps (bijectively) a pair of integer (a, b)
// into a unique integer. It is therefore a perfect hash as long as the result
// does not overflow.
func _PAIR(a, b uint64) uint64 {
	return (((a + b) * (a + b + 1)) / 2) + a
}

// _TRIPLE extends _PAIR to three values.
func _TRIPLE(a, b, c uint64) uint64 {
	return _PAIR(c, _PAIR(a, b))
}

// mix is the finalizer of splitmix64. It makes sure that every bit of the input
// has an effect on every bit of the output.
func mix(h uint64) uint64 {
	h ^= h >> 30
	h *= 0xbf58476d1ce4e5b9
	h ^= h >> 27
	h *= 0x94d049bb133111eb
	h ^= h >> 31
	return h
}

// combine folds value v into the hash seed.
func combine(seed, v uint64) uint64 {
	return seed ^ (mix(v) + _GOLDEN + (seed << 6) + (seed >> 2))
}

// HashInts returns a hash for a sequence of integers, using the same combiner
// than the one used for nodes in the unique tables. It is provided as a
// convenience for implementing the Hash method of StrongHom and DataSet.
func HashInts(vals ...int) uint64 {
	h := uint64(len(vals))
	for _, v := range vals {
		h = combine(h, uint64(v))
	}
	return h
}

// HashString returns a hash for a string (FNV-1a), folded with the combiner
// used in the unique tables.
func HashString(s string) uint64 {
	h := uint64(14695981039346656037)
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= 1099511628211
	}
	return mix(h)
}
