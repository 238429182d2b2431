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
	slice "github.com/arcology-network/common-lib/exp/slice"

	"github.com/arcology-network/txsched/txn"
)

// Greedy is a linear-scan fold: it accumulates a running merged transaction
// and keeps every input that stays compatible with it. Order-dependent —
// the earliest-seen transaction wins against later conflicting peers.
type Greedy struct{}

func NewGreedy() *Greedy { return &Greedy{} }

// Schedule runs the O(n) accumulate-and-fold pass described in spec §4.4.
func (*Greedy) Schedule(txns []*txn.Transaction) ([]*txn.Transaction, error) {
	if len(txns) == 0 {
		return nil, nil
	}

	acc := txns[0]
	remainder := append([]*txn.Transaction{}, txns[1:]...)
	var firstErr error

	accepted := slice.MoveIf(&remainder, func(_ int, candidate *txn.Transaction) bool {
		if firstErr != nil {
			return false
		}
		ok, err := txn.Compatible(acc, candidate)
		if err != nil {
			firstErr = err
			return false
		}
		if !ok {
			return false
		}
		merged, err := txn.Merge(acc, candidate)
		if err != nil {
			firstErr = err
			return false
		}
		acc = merged
		return true
	})
	if firstErr != nil {
		return nil, firstErr
	}

	chosen := make([]*txn.Transaction, 0, 1+len(accepted))
	chosen = append(chosen, txns[0])
	chosen = append(chosen, accepted...)
	return chosen, nil
}
