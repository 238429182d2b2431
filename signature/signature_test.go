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
	"math"
	"math/rand"
	"testing"
)

func TestUnionIntersectionIdempotent(t *testing.T) {
	newSig := MakeFamily(256, 3, 42)
	a := newSig()
	a.Add(1)
	a.Add(2)
	a.Add(3)

	u, err := a.Union(a)
	if err != nil {
		t.Fatalf("union: %v", err)
	}
	if u.(*Signature).bits.Equal(a.bits) == false {
		t.Error("A union A should be bit-equal to A")
	}

	i, err := a.Intersection(a)
	if err != nil {
		t.Fatalf("intersection: %v", err)
	}
	if i.(*Signature).bits.Equal(a.bits) == false {
		t.Error("A intersect A should be bit-equal to A")
	}
}

func TestDifferentFamiliesRejected(t *testing.T) {
	a := MakeFamily(256, 3, 1)()
	b := MakeFamily(256, 3, 1)() // same params, different *Family instance
	a.Add(5)
	b.Add(5)

	if _, err := a.Union(b); err == nil {
		t.Error("expected a FamilyMismatch combining signatures from distinct Family instances")
	}
}

func TestContainsNeverFalseNegative(t *testing.T) {
	make := MakeFamily(512, 4, 7)
	sig := make()
	inserted := []int{3, 17, 42, 99, 1000, 123456}
	for _, x := range inserted {
		sig.Add(x)
	}
	for _, x := range inserted {
		if !sig.Contains(x) {
			t.Errorf("Contains(%d) = false after Add(%d); signatures must never false-negative", x, x)
		}
	}
}

func TestRemoveAndCardinalityUnsupported(t *testing.T) {
	sig := MakeFamily(64, 2, 1)()
	if err := sig.Remove(1); err == nil {
		t.Error("expected Remove to be unsupported on Signature")
	}
	if _, err := sig.Cardinality(); err == nil {
		t.Error("expected Cardinality to be unsupported on Signature")
	}
}

// TestFalsePositiveRateWithinTolerance is spec §8 scenario S4: a parallel
// signature of m=1024, k=4 with 100 inserted objects should have a measured
// false-positive rate within ±1% of (1 - e^(-100/256))^4 ≈ 0.011.
func TestFalsePositiveRateWithinTolerance(t *testing.T) {
	const m, k, n = 1024, 4, 100
	makeParallel, err := NewParallelFamily(m, k, 99)
	if err != nil {
		t.Fatalf("NewParallelFamily: %v", err)
	}
	sig := makeParallel()

	r := rand.New(rand.NewSource(1))
	inserted := make(map[int]struct{}, n)
	for len(inserted) < n {
		x := r.Intn(1 << 28)
		inserted[x] = struct{}{}
		sig.Add(x)
	}

	const trials = 1_000_000
	falsePositives := 0
	tested := 0
	for tested < trials {
		x := r.Intn(1 << 28)
		if _, isMember := inserted[x]; isMember {
			continue
		}
		tested++
		if sig.Contains(x) {
			falsePositives++
		}
	}

	measured := float64(falsePositives) / float64(tested)
	expected := math.Pow(1-math.Exp(-float64(n)/256), float64(k))
	if math.Abs(measured-expected) > 0.01 {
		t.Errorf("measured false-positive rate %.4f, want within 0.01 of theoretical %.4f", measured, expected)
	}
}
