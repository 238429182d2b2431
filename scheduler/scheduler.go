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

// Package scheduler selects conflict-free subsets of transactions that can
// run concurrently on a fixed set of worker lanes. It offers two algorithms
// (Greedy, Tournament) and a Compressed wrapper that swaps in
// Signature-backed sets before delegating to either one.
package scheduler

import "github.com/arcology-network/txsched/txn"

// Scheduler selects an admissible, conflict-free subset from an ordered
// batch of transactions.
type Scheduler interface {
	Schedule(txns []*txn.Transaction) ([]*txn.Transaction, error)
}
