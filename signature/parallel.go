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
	"golang.org/x/sync/errgroup"
)

// Parallel is k independent single-hash Signatures, each its own Family. An
// identifier is "present" iff every part reports it present. This is the
// recommended production Set: structurally parallelizable, though not
// asymptotically better than a classical k-hash filter.
type Parallel struct {
	parts []*Signature
}

// NewParallelFamily builds a factory for length-m, k-partition parallel
// signatures; m must be divisible by k. Each part gets its own independent
// single-hash Family, seeded from consecutive offsets of seed so the whole
// family is reproducible from one seed value.
func NewParallelFamily(m, k int, seed int64) (func() *Parallel, error) {
	if m%k != 0 {
		return nil, txerr.NewPreconditionViolation("signature length must be divisible by partition count")
	}
	perPart := m / k
	partFactories := make([]func() *Signature, k)
	for i := 0; i < k; i++ {
		partFactories[i] = MakeFamily(perPart, 1, seed+int64(i))
	}
	return func() *Parallel {
		parts := make([]*Signature, k)
		for i, f := range partFactories {
			parts[i] = f()
		}
		return &Parallel{parts: parts}
	}, nil
}

func (p *Parallel) compatibleWith(other *Parallel) bool {
	if len(p.parts) != len(other.parts) {
		return false
	}
	for i := range p.parts {
		if !p.parts[i].sameFamily(other.parts[i]) {
			return false
		}
	}
	return true
}

func asParallel(other txnset.Set) (*Parallel, error) {
	o, ok := other.(*Parallel)
	if !ok {
		return nil, txerr.NewFamilyMismatch()
	}
	return o, nil
}

// Add broadcasts the insertion to every part.
func (p *Parallel) Add(x int) {
	for _, part := range p.parts {
		part.Add(x)
	}
}

// Contains is the conjunction of every part's Contains.
func (p *Parallel) Contains(x int) bool {
	for _, part := range p.parts {
		if !part.Contains(x) {
			return false
		}
	}
	return true
}

// Union pairs parts by index.
func (p *Parallel) Union(other txnset.Set) (txnset.Set, error) {
	o, err := asParallel(other)
	if err != nil {
		return nil, err
	}
	if !p.compatibleWith(o) {
		return nil, txerr.NewFamilyMismatch()
	}
	parts := make([]*Signature, len(p.parts))
	for i := range p.parts {
		u, err := p.parts[i].Union(o.parts[i])
		if err != nil {
			return nil, err
		}
		parts[i] = u.(*Signature)
	}
	return &Parallel{parts: parts}, nil
}

// Intersection pairs parts by index.
func (p *Parallel) Intersection(other txnset.Set) (txnset.Set, error) {
	o, err := asParallel(other)
	if err != nil {
		return nil, err
	}
	if !p.compatibleWith(o) {
		return nil, txerr.NewFamilyMismatch()
	}
	parts := make([]*Signature, len(p.parts))
	for i := range p.parts {
		x, err := p.parts[i].Intersection(o.parts[i])
		if err != nil {
			return nil, err
		}
		parts[i] = x.(*Signature)
	}
	return &Parallel{parts: parts}, nil
}

// IsEmpty is the conjunction of part-emptiness.
func (p *Parallel) IsEmpty() bool {
	for _, part := range p.parts {
		if !part.IsEmpty() {
			return false
		}
	}
	return true
}

// Copy deep-copies every part.
func (p *Parallel) Copy() txnset.Set {
	parts := make([]*Signature, len(p.parts))
	for i, part := range p.parts {
		parts[i] = part.Copy().(*Signature)
	}
	return &Parallel{parts: parts}
}

// NewEmpty returns a fresh, all-zero Parallel signature with one empty part
// per family.
func (p *Parallel) NewEmpty() txnset.Set {
	parts := make([]*Signature, len(p.parts))
	for i, part := range p.parts {
		parts[i] = part.NewEmpty().(*Signature)
	}
	return &Parallel{parts: parts}
}

// EstimateContents returns every x in the universe that every part reports
// present.
func (p *Parallel) EstimateContents(universe []int) []int {
	out := make([]int, 0, len(universe))
	for _, x := range universe {
		if p.Contains(x) {
			out = append(out, x)
		}
	}
	return out
}

func (p *Parallel) Remove(int) error {
	return txerr.NewUnsupportedOperation("Parallel", "remove")
}

func (p *Parallel) Cardinality() (int, error) {
	return 0, txerr.NewUnsupportedOperation("Parallel", "cardinality")
}

// UnionConcurrent is equivalent to Union, but pairs parts across goroutines
// via errgroup. The result is bit-identical to Union: parts are independent
// and index-addressed, so evaluation order never affects the outcome (spec
// §5: "parallelizing ... must not change the outcome").
func (p *Parallel) UnionConcurrent(other *Parallel) (*Parallel, error) {
	if !p.compatibleWith(other) {
		return nil, txerr.NewFamilyMismatch()
	}
	parts := make([]*Signature, len(p.parts))
	var g errgroup.Group
	for i := range p.parts {
		i := i
		g.Go(func() error {
			u, err := p.parts[i].Union(other.parts[i])
			if err != nil {
				return err
			}
			parts[i] = u.(*Signature)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &Parallel{parts: parts}, nil
}

// ContainsConcurrent is equivalent to Contains, fanned out across parts.
// Useful when k is large and each part's hash evaluation is nontrivial.
func (p *Parallel) ContainsConcurrent(x int) bool {
	results := make([]bool, len(p.parts))
	var g errgroup.Group
	for i, part := range p.parts {
		i, part := i, part
		g.Go(func() error {
			results[i] = part.Contains(x)
			return nil
		})
	}
	_ = g.Wait()
	for _, r := range results {
		if !r {
			return false
		}
	}
	return true
}
