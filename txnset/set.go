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

// Package txnset defines the Set capability shared by the exact and
// signature-backed representations of a transaction's read/write sets, and
// the exact implementation. Neither removal nor cardinality is required by
// the capability; unsupported operations must fail cleanly rather than
// silently no-op.
package txnset

import "github.com/arcology-network/txsched/txerr"

// Set is the capability every read-set/write-set representation must
// support. Exact and Signature sets are swappable behind this interface;
// schedulers and transactions are written against it, never against a
// concrete representation.
type Set interface {
	Add(x int)
	Contains(x int) bool
	Union(other Set) (Set, error)
	Intersection(other Set) (Set, error)
	IsEmpty() bool
	Copy() Set

	// NewEmpty returns a fresh, empty Set from the same representation and
	// (for Signature-backed sets) the same family as the receiver. Used to
	// build the tournament scheduler's identity-empty padding transaction
	// without the scheduler needing to know which Set representation a
	// batch uses.
	NewEmpty() Set
}

// Exact is an insertion-order-irrelevant set of object identifiers.
type Exact struct {
	elems map[int]struct{}
}

// NewExact returns an empty exact set, optionally seeded with elements.
func NewExact(elems ...int) *Exact {
	e := &Exact{elems: make(map[int]struct{}, len(elems))}
	for _, x := range elems {
		e.elems[x] = struct{}{}
	}
	return e
}

func (e *Exact) Add(x int) { e.elems[x] = struct{}{} }

func (e *Exact) Contains(x int) bool {
	_, ok := e.elems[x]
	return ok
}

func (e *Exact) Union(other Set) (Set, error) {
	o, ok := other.(*Exact)
	if !ok {
		return nil, txerr.NewPreconditionViolation("cannot union an Exact set with a non-Exact representation")
	}
	out := NewExact()
	for x := range e.elems {
		out.elems[x] = struct{}{}
	}
	for x := range o.elems {
		out.elems[x] = struct{}{}
	}
	return out, nil
}

func (e *Exact) Intersection(other Set) (Set, error) {
	o, ok := other.(*Exact)
	if !ok {
		return nil, txerr.NewPreconditionViolation("cannot intersect an Exact set with a non-Exact representation")
	}
	out := NewExact()
	small, big := e.elems, o.elems
	if len(big) < len(small) {
		small, big = big, small
	}
	for x := range small {
		if _, ok := big[x]; ok {
			out.elems[x] = struct{}{}
		}
	}
	return out, nil
}

func (e *Exact) IsEmpty() bool { return len(e.elems) == 0 }

func (e *Exact) Copy() Set {
	out := NewExact()
	for x := range e.elems {
		out.elems[x] = struct{}{}
	}
	return out
}

// NewEmpty returns a fresh exact set; exact sets have no family constraint.
func (e *Exact) NewEmpty() Set { return NewExact() }

// Elements returns the set's members in no particular order.
func (e *Exact) Elements() []int {
	out := make([]int, 0, len(e.elems))
	for x := range e.elems {
		out = append(out, x)
	}
	return out
}

// Len returns the exact set's cardinality. Unlike Signature, Exact supports
// this directly — it is only the approximate representations that must
// reject it.
func (e *Exact) Len() int { return len(e.elems) }
