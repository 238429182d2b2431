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

// Package analyzer is the event-log consistency checker: a streaming state
// machine over the Submitted -> Scheduled(lane) -> Done lifecycle that
// enforces every temporal and conflict invariant in spec §4.9, halting with
// a precise diagnostic on the first violation.
package analyzer

import (
	"fmt"
	"math"

	mapi "github.com/arcology-network/common-lib/exp/map"
	"github.com/arcology-network/txsched/logtrace"
	"github.com/arcology-network/txsched/txerr"
)

// lifecycle is the per-transaction state marker. States only move forward;
// there are no backward transitions.
type lifecycle int

const (
	unseen lifecycle = iota
	submitted
	scheduled
	recvd
	done
)

// TxnRecord is one transaction's observed lifecycle timestamps, exposed for
// downstream latency/throughput computation.
type TxnRecord struct {
	Lane         int
	SubmitTime   float64
	ScheduleTime float64
	RecvTime     float64 // NaN if the trace has no recv stage for this txn
	DoneTime     float64
	CleanupTime  float64 // NaN if the trace has no cleanup stage for this txn
	state        lifecycle
}

func newTxnState() TxnRecord {
	return TxnRecord{
		state:        unseen,
		Lane:         -1,
		SubmitTime:   math.NaN(),
		ScheduleTime: math.NaN(),
		RecvTime:     math.NaN(),
		DoneTime:     math.NaN(),
		CleanupTime:  math.NaN(),
	}
}

// Result is everything downstream metrics computation needs once the trace
// has been verified consistent.
type Result struct {
	NumLanes       int
	States         map[int]*TxnRecord
	BusyTime       []float64 // per-lane accumulated busy seconds
	FirstSubmit    float64
	LastDone       float64
	TotalSubmitted int
	TotalDone      int
}

// Checker replays an event stream against ground-truth transactions and
// enforces the lifecycle/conflict invariants.
type Checker struct {
	txns     map[int]*logtrace.RawTransaction
	numLanes int

	states      map[int]*TxnRecord
	activeIDs   []int // dense ids currently Scheduled (or Recv) but not Done
	busyTime    []float64
	firstSubmit float64
	lastDone    float64
	nSubmitted  int
	nDone       int
}

// New builds a Checker over the ground-truth transaction map and the number
// of executor lanes the log is expected to reference.
func New(txns map[int]*logtrace.RawTransaction, numLanes int) *Checker {
	return &Checker{
		txns:        txns,
		numLanes:    numLanes,
		states:      make(map[int]*TxnRecord),
		busyTime:    make([]float64, numLanes),
		firstSubmit: math.NaN(),
		lastDone:    math.NaN(),
	}
}

func (c *Checker) stateFor(id int) *TxnRecord {
	st, ok := c.states[id]
	if !ok {
		fresh := newTxnState()
		st = &fresh
		c.states[id] = st
	}
	return st
}

// conflict reports whether a and b touch a common object with at least one
// write side, i.e. (a.w ∩ b.r) ∪ (a.w ∩ b.w) ∪ (a.r ∩ b.w) is non-empty.
func conflict(a, b *logtrace.RawTransaction) bool {
	bReads := mapi.FromSlice(b.Reads, func(int) bool { return true })
	bWrites := mapi.FromSlice(b.Writes, func(int) bool { return true })
	return mapi.ContainsAny(bReads, a.Writes) ||
		mapi.ContainsAny(bWrites, a.Writes) ||
		mapi.ContainsAny(bWrites, a.Reads)
}

// Check replays events in order, applying the transitions and checks from
// spec §4.9. It halts and returns an *txerr.InvariantViolation on the first
// broken rule.
func (c *Checker) Check(events []logtrace.Event) (*Result, error) {
	for _, e := range events {
		if err := c.apply(e); err != nil {
			return nil, err
		}
	}

	for id, st := range c.states {
		if st.state >= submitted && st.state < scheduled {
			return nil, txerr.NewInvariantViolation(id, "submitted but never scheduled")
		}
		if st.state >= scheduled && st.state < done {
			return nil, txerr.NewInvariantViolation(id, "scheduled but never completed")
		}
	}

	return &Result{
		NumLanes:       c.numLanes,
		States:         c.states,
		BusyTime:       c.busyTime,
		FirstSubmit:    c.firstSubmit,
		LastDone:       c.lastDone,
		TotalSubmitted: c.nSubmitted,
		TotalDone:      c.nDone,
	}, nil
}

func (c *Checker) apply(e logtrace.Event) error {
	switch e.Kind {
	case logtrace.Submit:
		return c.applySubmit(e)
	case logtrace.Scheduled:
		return c.applyScheduled(e)
	case logtrace.Recv:
		return c.applyRecv(e)
	case logtrace.Done:
		return c.applyDone(e)
	case logtrace.Cleanup:
		return c.applyCleanup(e)
	}
	return nil
}

func (c *Checker) applySubmit(e logtrace.Event) error {
	st := c.stateFor(e.TxnID)
	if st.state != unseen {
		return txerr.NewInvariantViolation(e.TxnID, "submitted more than once")
	}
	st.state = submitted
	st.SubmitTime = e.Time
	c.nSubmitted++
	if math.IsNaN(c.firstSubmit) || e.Time < c.firstSubmit {
		c.firstSubmit = e.Time
	}
	return nil
}

func (c *Checker) applyScheduled(e logtrace.Event) error {
	st := c.stateFor(e.TxnID)
	if st.state != submitted {
		if st.state < submitted {
			return txerr.NewInvariantViolation(e.TxnID, "scheduled without being submitted first")
		}
		return txerr.NewInvariantViolation(e.TxnID, "scheduled more than once")
	}
	if e.LaneID < 0 || e.LaneID >= c.numLanes {
		return txerr.NewInvariantViolation(e.TxnID, fmt.Sprintf("lane %d out of range [0,%d)", e.LaneID, c.numLanes))
	}

	newTxn, ok := c.txns[e.TxnID]
	if !ok {
		return txerr.NewInvariantViolation(e.TxnID, "scheduled but has no ground-truth transaction")
	}
	for _, activeID := range c.activeIDs {
		other, ok := c.txns[activeID]
		if !ok {
			continue
		}
		if conflict(newTxn, other) {
			return txerr.NewInvariantViolation(e.TxnID, fmt.Sprintf("Conflict detected when scheduling txn %d", e.TxnID))
		}
	}

	st.state = scheduled
	st.Lane = e.LaneID
	st.ScheduleTime = e.Time
	c.activeIDs = append(c.activeIDs, e.TxnID)
	return nil
}

func (c *Checker) applyRecv(e logtrace.Event) error {
	st := c.stateFor(e.TxnID)
	if st.state != scheduled {
		return txerr.NewInvariantViolation(e.TxnID, "received without being scheduled first")
	}
	st.state = recvd
	st.RecvTime = e.Time
	return nil
}

func (c *Checker) applyDone(e logtrace.Event) error {
	st := c.stateFor(e.TxnID)
	if st.state != scheduled && st.state != recvd {
		if st.state < scheduled {
			return txerr.NewInvariantViolation(e.TxnID, "completed without being scheduled first")
		}
		return txerr.NewInvariantViolation(e.TxnID, "completed more than once")
	}
	if st.Lane != e.LaneID {
		return txerr.NewInvariantViolation(e.TxnID, "lane mismatch on done")
	}
	if !c.removeActive(e.TxnID) {
		return txerr.NewInvariantViolation(e.TxnID, "done but not in active set")
	}

	start := st.ScheduleTime
	c.busyTime[e.LaneID] += e.Time - start
	st.state = done
	st.DoneTime = e.Time
	c.nDone++
	if math.IsNaN(c.lastDone) || e.Time > c.lastDone {
		c.lastDone = e.Time
	}
	return nil
}

func (c *Checker) applyCleanup(e logtrace.Event) error {
	st := c.stateFor(e.TxnID)
	if st.state != done {
		return txerr.NewInvariantViolation(e.TxnID, "cleaned up without completing first")
	}
	st.CleanupTime = e.Time
	return nil
}

func (c *Checker) removeActive(id int) bool {
	for i, activeID := range c.activeIDs {
		if activeID == id {
			c.activeIDs[i] = c.activeIDs[len(c.activeIDs)-1]
			c.activeIDs = c.activeIDs[:len(c.activeIDs)-1]
			return true
		}
	}
	return false
}
