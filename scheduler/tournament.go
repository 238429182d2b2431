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
	"golang.org/x/sync/errgroup"
)

// Tournament reduces a batch through a depth-log2(n) pairwise merge tree.
// At each level, adjacent survivors (L, R) promote merge(L, R) if
// compatible, otherwise L (left-wins): a deliberate, testable tie-break that
// callers must not work around by reordering pairs.
type Tournament struct {
	// Parallel runs each level's pair-merges concurrently. Safe because the
	// left-wins rule makes every pair's outcome independent of the others
	// at the same level; only the level-to-level sequencing is load-bearing.
	Parallel bool
}

func NewTournament() *Tournament { return &Tournament{} }

// Schedule pads the batch to a power of two with identity-empty sentinels,
// reduces it to one survivor, then returns the *original* transactions
// (never the intermediate merges) indexed by the survivor's id set.
func (t *Tournament) Schedule(txns []*txn.Transaction) ([]*txn.Transaction, error) {
	if len(txns) == 0 {
		return nil, nil
	}

	all := make([]*txn.Transaction, len(txns))
	copy(all, txns)

	padded := make([]*txn.Transaction, len(all))
	copy(padded, all)
	nextID := len(all)
	for !isPowerOfTwo(len(padded)) {
		padded = append(padded, txn.Empty(nextID, all[0]))
		nextID++
	}

	survivor, err := t.reduce(padded)
	if err != nil {
		return nil, err
	}

	chosen := make([]*txn.Transaction, 0, len(survivor.IDs))
	for _, id := range survivor.IDs {
		if id < len(all) {
			chosen = append(chosen, all[id])
		}
		// ids >= len(all) are sentinel padding and never selected results;
		// they contribute nothing and are simply dropped here.
	}
	return chosen, nil
}

func isPowerOfTwo(n int) bool { return n > 0 && n&(n-1) == 0 }

func (t *Tournament) reduce(level []*txn.Transaction) (*txn.Transaction, error) {
	for len(level) > 1 {
		next := make([]*txn.Transaction, len(level)/2)
		if t.Parallel {
			var g errgroup.Group
			for i := 0; i < len(level); i += 2 {
				i := i
				g.Go(func() error {
					survivor, err := pair(level[i], level[i+1])
					if err != nil {
						return err
					}
					next[i/2] = survivor
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return nil, err
			}
		} else {
			for i := 0; i < len(level); i += 2 {
				survivor, err := pair(level[i], level[i+1])
				if err != nil {
					return nil, err
				}
				next[i/2] = survivor
			}
		}
		level = next
	}
	return level[0], nil
}

// pair applies the left-wins tie-break: merge(L, R) if compatible, else L.
func pair(l, r *txn.Transaction) (*txn.Transaction, error) {
	ok, err := txn.Compatible(l, r)
	if err != nil {
		return nil, err
	}
	if !ok {
		return l, nil
	}
	return txn.Merge(l, r)
}
