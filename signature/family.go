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

// Package signature implements the fixed-width, approximate Bloom-style Set
// used to compress read/write sets into parallel bit operations.
package signature

import (
	"math/rand"
)

// hashFn maps an object id to a bit position in [0, buckets).
type hashFn struct {
	mult   uint64 // random odd multiplier, ~40-60 bits
	shift  uint   // fixed right-shift applied before the modulo
	bucket uint32 // buckets, i.e. the owning Signature's length m
}

func (h hashFn) apply(x int) uint32 {
	// Multiplicative hash: (x * mult) >> shift, reduced mod buckets. Using
	// uint64 arithmetic keeps this well-defined for any non-negative x.
	return uint32((uint64(x) * h.mult) >> h.shift % uint64(h.bucket))
}

func newHashFn(r *rand.Rand, buckets uint32) hashFn {
	// A random odd multiplier in [2^41+1, 2^51), shifted down by 35 bits
	// before the modulo, mirrors the source's make_hash_function
	// (random.randint(2**40, 2**50)*2+1 — always odd, never degenerate).
	const lo, span = uint64(1) << 40, uint64(1)<<50 - uint64(1)<<40
	mult := (lo+r.Uint64()%span)*2 + 1
	return hashFn{mult: mult, shift: 35, bucket: buckets}
}

// Family is a shared, immutable descriptor of a Signature's length and hash
// functions. Two Signatures are compatible iff they reference the identical
// *Family (pointer identity, not merely equal m/k).
type Family struct {
	m     int
	k     int
	seed  int64
	hashs []hashFn
}

// M returns the bit-vector length this family produces.
func (f *Family) M() int { return f.m }

// K returns the number of hash functions this family uses.
func (f *Family) K() int { return f.k }

// Seed returns the PRNG seed used to derive the family's hash multipliers,
// so a caller can log or reproduce it (spec §9, "Multiplicative hash
// constants").
func (f *Family) Seed() int64 { return f.seed }

// NewFamily builds a fresh family of k independent multiplicative hash
// functions over an m-bit universe, seeded deterministically.
func NewFamily(m, k int, seed int64) *Family {
	r := rand.New(rand.NewSource(seed))
	hashs := make([]hashFn, k)
	for i := range hashs {
		hashs[i] = newHashFn(r, uint32(m))
	}
	return &Family{m: m, k: k, seed: seed, hashs: hashs}
}

// MakeFamily returns a family factory, i.e. a Family() -> *Signature
// constructor that closes over one freshly minted Family. Every Signature
// produced by calling the returned func shares that Family by reference.
func MakeFamily(m, k int, seed int64) func() *Signature {
	family := NewFamily(m, k, seed)
	return func() *Signature { return newSignature(family) }
}
