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

// Package txn defines the Transaction type: an immutable id-set/read-set/
// write-set triple, and the compatibility and merge operations the
// schedulers fold over. Transaction is generic over the txnset.Set
// capability so the same code runs against exact sets or compressed
// Signatures.
package txn

import (
	"github.com/arcology-network/txsched/txerr"
	"github.com/arcology-network/txsched/txnset"
)

// Transaction is an immutable triple of an id-set, read-set and write-set.
// A fresh Transaction carries a singleton id-set; merging grows it.
type Transaction struct {
	IDs      []int
	ReadSet  txnset.Set
	WriteSet txnset.Set
}

// New builds a singleton Transaction from an exact read/write set. The
// caller guarantees read and write are disjoint, per the data model.
func New(id int, reads, writes []int) *Transaction {
	r := txnset.NewExact(reads...)
	w := txnset.NewExact(writes...)
	return &Transaction{IDs: []int{id}, ReadSet: r, WriteSet: w}
}

func unionIDs(a, b []int) []int {
	seen := make(map[int]struct{}, len(a)+len(b))
	out := make([]int, 0, len(a)+len(b))
	for _, id := range a {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	for _, id := range b {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}

// Compatible tests whether A and B may run concurrently: their combined
// read/write sets must share no write-read, read-write, or write-write
// overlap. With Signature-backed sets this test is approximate — it may
// report "incompatible" when the exact sets would in fact be compatible,
// but it must never report "compatible" when they are not (spec §4.3,
// §8 invariant 2).
func Compatible(a, b *Transaction) (bool, error) {
	rAwB, err := a.ReadSet.Intersection(b.WriteSet)
	if err != nil {
		return false, err
	}
	wArB, err := a.WriteSet.Intersection(b.ReadSet)
	if err != nil {
		return false, err
	}
	wAwB, err := a.WriteSet.Intersection(b.WriteSet)
	if err != nil {
		return false, err
	}

	conflicts, err := rAwB.Union(wArB)
	if err != nil {
		return false, err
	}
	conflicts, err = conflicts.Union(wAwB)
	if err != nil {
		return false, err
	}
	return conflicts.IsEmpty(), nil
}

// Merge combines two compatible Transactions. Its precondition is
// Compatible(a, b); callers (the schedulers) must gate every call behind a
// compatibility check, never merge speculatively.
func Merge(a, b *Transaction) (*Transaction, error) {
	ok, err := Compatible(a, b)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, txerr.NewPreconditionViolation("merge requires compatible transactions")
	}

	r, err := a.ReadSet.Union(b.ReadSet)
	if err != nil {
		return nil, err
	}
	w, err := a.WriteSet.Union(b.WriteSet)
	if err != nil {
		return nil, err
	}
	return &Transaction{
		IDs:      unionIDs(a.IDs, b.IDs),
		ReadSet:  r,
		WriteSet: w,
	}, nil
}

// Copy returns a deep copy: a new id slice and copied read/write sets.
// Mutating the copy never affects the original. The schedulers do not call
// it; they leave their inputs untouched because Merge always builds a new
// Transaction.
func (t *Transaction) Copy() *Transaction {
	ids := make([]int, len(t.IDs))
	copy(ids, t.IDs)
	return &Transaction{
		IDs:      ids,
		ReadSet:  t.ReadSet.Copy(),
		WriteSet: t.WriteSet.Copy(),
	}
}

// Empty returns an identity-empty Transaction sharing the given sample's Set
// representation and family: compatible with everything, contributing
// nothing on merge. Used by the tournament scheduler to pad to a power of
// two (spec §4.5, §9 "Power-of-two sizing").
func Empty(id int, sample *Transaction) *Transaction {
	return &Transaction{
		IDs:      []int{id},
		ReadSet:  sample.ReadSet.NewEmpty(),
		WriteSet: sample.WriteSet.NewEmpty(),
	}
}
