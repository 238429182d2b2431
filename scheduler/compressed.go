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

package scheduler

import (
	"github.com/arcology-network/txsched/txn"
	"github.com/arcology-network/txsched/txnset"
)

// Compressed wraps an underlying Scheduler with a signature family factory:
// it maps every input transaction onto fresh, family-backed signatures
// before delegating, then translates the chosen signature transactions back
// to the original inputs by id. The family factory must be the same for
// every transaction in a batch — only then does shared-family compatibility
// hold (spec §4.6).
type Compressed struct {
	underlying Scheduler
	family     func() txnset.Set
}

// NewCompressed builds a Compressed scheduler around underlying, drawing a
// fresh signature per read-set and per write-set from family for every
// transaction in a batch.
func NewCompressed(underlying Scheduler, family func() txnset.Set) *Compressed {
	return &Compressed{underlying: underlying, family: family}
}

// Schedule compresses, delegates, then resolves ids back to the original
// (uncompressed) transactions the caller passed in.
func (c *Compressed) Schedule(txns []*txn.Transaction) ([]*txn.Transaction, error) {
	byID := make(map[int]*txn.Transaction, len(txns))
	compressed := make([]*txn.Transaction, len(txns))
	for i, original := range txns {
		id := original.IDs[0]
		byID[id] = original

		readSig := c.family()
		for _, x := range exactElements(original.ReadSet) {
			readSig.Add(x)
		}
		writeSig := c.family()
		for _, x := range exactElements(original.WriteSet) {
			writeSig.Add(x)
		}
		compressed[i] = &txn.Transaction{IDs: []int{id}, ReadSet: readSig, WriteSet: writeSig}
	}

	chosen, err := c.underlying.Schedule(compressed)
	if err != nil {
		return nil, err
	}

	out := make([]*txn.Transaction, 0, len(chosen))
	for _, compressedTxn := range chosen {
		for _, id := range compressedTxn.IDs {
			if original, ok := byID[id]; ok {
				out = append(out, original)
			}
		}
	}
	return out, nil
}

// exactElements extracts the concrete member list from an exact set. The
// Compressed wrapper only ever receives batches whose sets are exact
// (Signature/Parallel sets carry no enumerable membership beyond
// EstimateContents, which needs a universe they don't have) — compressing
// an already-compressed batch is not a supported composition.
func exactElements(s txnset.Set) []int {
	if exact, ok := s.(*txnset.Exact); ok {
		return exact.Elements()
	}
	return nil
}
