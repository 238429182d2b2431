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

// Package workload is the synthetic workload generator: a test collaborator
// producing batches of transactions with Zipf-weighted object picks. Not
// part of the scheduler's production surface — it is how the scheduler and
// signature layers get exercised under realistic access skew in tests and
// benchmarks.
package workload

import (
	"math/rand"

	"github.com/arcology-network/txsched/txn"
)

// Config parameterizes a batch of generated transactions.
type Config struct {
	AddrSpaceSize   int     // size of the opaque object-id universe
	NumTxns         int     // number of transactions to generate
	ElemsPerTxn     int     // object accesses per transaction
	ZipfParam       float64 // skew parameter; 0 means uniform
	WriteProbability float64 // per-access probability that it is a write
	Seed            int64
}

// Generate produces Config.NumTxns transactions, each touching
// Config.ElemsPerTxn objects drawn from a Zipf-weighted address space. Object
// ids that land in both the read and write role for the same transaction are
// resolved in favor of write (a transaction never both reads and writes the
// same object, per the data model invariant).
func Generate(cfg Config) []*txn.Transaction {
	r := rand.New(rand.NewSource(cfg.Seed))

	// rand.Zipf requires s > 1 and a positive v; ZipfParam == 0 means
	// uniform sampling over the address space, which Zipf degenerates
	// toward as s -> 1 but never reaches, so we special-case it.
	var zipf *rand.Zipf
	if cfg.ZipfParam > 0 {
		zipf = rand.NewZipf(r, 1+cfg.ZipfParam, 1, uint64(cfg.AddrSpaceSize-1))
	}

	pickObj := func() int {
		if zipf != nil {
			return int(zipf.Uint64())
		}
		return r.Intn(cfg.AddrSpaceSize)
	}

	out := make([]*txn.Transaction, 0, cfg.NumTxns)
	for id := 0; id < cfg.NumTxns; id++ {
		reads := make([]int, 0, cfg.ElemsPerTxn)
		writes := make([]int, 0, cfg.ElemsPerTxn)
		writeSeen := make(map[int]struct{}, cfg.ElemsPerTxn)

		for i := 0; i < cfg.ElemsPerTxn; i++ {
			obj := pickObj()
			isWrite := r.Float64() < cfg.WriteProbability
			if isWrite {
				writes = append(writes, obj)
				writeSeen[obj] = struct{}{}
			} else {
				reads = append(reads, obj)
			}
		}

		// Drop any read that collides with a write on the same object, so
		// the disjointness invariant holds even under Zipf-heavy repeats.
		filteredReads := reads[:0:0]
		for _, obj := range reads {
			if _, ok := writeSeen[obj]; !ok {
				filteredReads = append(filteredReads, obj)
			}
		}

		out = append(out, txn.New(id, filteredReads, writes))
	}
	return out
}
