package index

import (
	"iter"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
)

// Set is an immutable set of names of one kind (all actors or all movies).
// It is a snapshot: later merges into the Index do not change it.
//
// Set operations are only meaningful between sets of the same kind taken from
// the same Index. The zero Set is empty.
type Set struct {
	rb   *roaring.Bitmap
	dict *dictionary
}

func newSet(rb *roaring.Bitmap, dict *dictionary) Set {
	return Set{rb: rb, dict: dict}
}

func (s Set) bitmap() *roaring.Bitmap {
	if s.rb == nil {
		return roaring.New()
	}
	return s.rb
}

// with picks the dictionary of whichever operand carries one, so combining
// with a zero Set still resolves names.
func (s Set) with(o Set) *dictionary {
	if s.dict != nil {
		return s.dict
	}
	return o.dict
}

// Len returns the number of names in the set.
func (s Set) Len() int {
	if s.rb == nil {
		return 0
	}
	return int(s.rb.GetCardinality())
}

// IsEmpty reports whether the set has no names.
func (s Set) IsEmpty() bool {
	return s.rb == nil || s.rb.IsEmpty()
}

// Contains reports whether name is in the set.
func (s Set) Contains(name string) bool {
	if s.rb == nil || s.dict == nil {
		return false
	}
	id, ok := s.dict.lookup(name)
	return ok && s.rb.Contains(id)
}

// Names returns the names in lexicographic order.
func (s Set) Names() []string {
	if s.IsEmpty() || s.dict == nil {
		return nil
	}
	out := make([]string, 0, s.Len())
	it := s.rb.Iterator()
	for it.HasNext() {
		out = append(out, s.dict.name(it.Next()))
	}
	slices.Sort(out)
	return out
}

// All yields the names in lexicographic order.
func (s Set) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, n := range s.Names() {
			if !yield(n) {
				return
			}
		}
	}
}

// Union returns the names in s or o.
func (s Set) Union(o Set) Set {
	return newSet(roaring.Or(s.bitmap(), o.bitmap()), s.with(o))
}

// Intersect returns the names in both s and o.
func (s Set) Intersect(o Set) Set {
	return newSet(roaring.And(s.bitmap(), o.bitmap()), s.with(o))
}

// SymmetricDifference returns the names in exactly one of s and o.
func (s Set) SymmetricDifference(o Set) Set {
	return newSet(roaring.Xor(s.bitmap(), o.bitmap()), s.with(o))
}

// Without returns s minus name.
func (s Set) Without(name string) Set {
	if s.dict == nil {
		return s
	}
	id, ok := s.dict.lookup(name)
	if !ok || !s.bitmap().Contains(id) {
		return s
	}
	rb := s.rb.Clone()
	rb.Remove(id)
	return newSet(rb, s.dict)
}

// Equal reports whether s and o hold the same names.
func (s Set) Equal(o Set) bool {
	if s.dict == o.dict || s.IsEmpty() || o.IsEmpty() {
		return s.bitmap().Equals(o.bitmap())
	}
	return slices.Equal(s.Names(), o.Names())
}

// UnionAll returns the union of every set in sets.
func UnionAll(sets ...Set) Set {
	if len(sets) == 0 {
		return Set{}
	}
	bms := make([]*roaring.Bitmap, 0, len(sets))
	var dict *dictionary
	for _, s := range sets {
		if s.rb != nil {
			bms = append(bms, s.rb)
		}
		if dict == nil {
			dict = s.dict
		}
	}
	return newSet(roaring.FastOr(bms...), dict)
}
