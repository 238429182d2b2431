/*
 *   Copyright (c) 2026 Arcology Network

 *   This program is free software: you can redistribute it and/or modify
 *   it under the terms of the GNU General Public License as published by
 *   the Free Software Foundation, either version 3 of the License, or
 *   (at your option) any later version.

 *   This program is distributed in the hope that it will be useful,
 *   but WITHOUT ANY WARRANTY; without even the implied warranty of
 *   MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 *   GNU General Public License for more details.

 *   You should have received a copy of the GNU General Public License
 *   along with this program.  If not, see <https://www.gnu.org/licenses/>.
 */

package signature

import (
	"github.com/arcology-network/txsched/txerr"
	"github.com/arcology-network/txsched/txnset"
	"github.com/bits-and-blooms/bitset"
)

// Signature is a fixed-width bit-vector approximation of a set of object
// ids. Two Signatures may only be combined if they share the same *Family.
type Signature struct {
	family *Family
	bits   *bitset.BitSet
}

func newSignature(family *Family) *Signature {
	return &Signature{family: family, bits: bitset.New(uint(family.m))}
}

// Family returns the Signature's hash-function family.
func (s *Signature) Family() *Family { return s.family }

// Add sets the bits h1(x)...hk(x) to 1.
func (s *Signature) Add(x int) {
	for _, h := range s.family.hashs {
		s.bits.Set(uint(h.apply(x)))
	}
}

// Contains reports whether every h_i(x) bit is set. May return a false
// positive; never a false negative.
func (s *Signature) Contains(x int) bool {
	for _, h := range s.family.hashs {
		if !s.bits.Test(uint(h.apply(x))) {
			return false
		}
	}
	return true
}

func (s *Signature) sameFamily(other *Signature) bool {
	return s.family == other.family
}

func asSignature(other txnset.Set) (*Signature, error) {
	o, ok := other.(*Signature)
	if !ok {
		return nil, txerr.NewFamilyMismatch()
	}
	return o, nil
}

// Union returns the element-wise OR of two same-family Signatures.
func (s *Signature) Union(other txnset.Set) (txnset.Set, error) {
	o, err := asSignature(other)
	if err != nil {
		return nil, err
	}
	if !s.sameFamily(o) {
		return nil, txerr.NewFamilyMismatch()
	}
	return &Signature{family: s.family, bits: s.bits.Union(o.bits)}, nil
}

// Intersection returns the element-wise AND of two same-family Signatures.
func (s *Signature) Intersection(other txnset.Set) (txnset.Set, error) {
	o, err := asSignature(other)
	if err != nil {
		return nil, err
	}
	if !s.sameFamily(o) {
		return nil, txerr.NewFamilyMismatch()
	}
	return &Signature{family: s.family, bits: s.bits.Intersection(o.bits)}, nil
}

// IsEmpty reports whether every bit is 0.
func (s *Signature) IsEmpty() bool {
	return s.bits.None()
}

// Copy returns a deep copy; the bit array is exclusively owned by the copy,
// the Family descriptor remains shared by reference.
func (s *Signature) Copy() txnset.Set {
	return &Signature{family: s.family, bits: s.bits.Clone()}
}

// NewEmpty returns a fresh, all-zero Signature from the same Family.
func (s *Signature) NewEmpty() txnset.Set {
	return newSignature(s.family)
}

// EstimateContents returns every x in the given universe for which Contains
// reports true, i.e. the set's membership estimate over a known address
// space.
func (s *Signature) EstimateContents(universe []int) []int {
	out := make([]int, 0, len(universe))
	for _, x := range universe {
		if s.Contains(x) {
			out = append(out, x)
		}
	}
	return out
}

// Remove is deliberately unsupported: a Bloom-style Signature cannot clear a
// single element's bits without risking removing others that hash to the
// same positions.
func (s *Signature) Remove(int) error {
	return txerr.NewUnsupportedOperation("Signature", "remove")
}

// Cardinality is deliberately unsupported: bit-popcount only estimates the
// number of *set bits*, not the number of inserted elements, once hash
// collisions accumulate.
func (s *Signature) Cardinality() (int, error) {
	return 0, txerr.NewUnsupportedOperation("Signature", "cardinality")
}
