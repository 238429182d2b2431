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

package metrics

import (
	"github.com/google/btree"
)

// timeItem is a single event timestamp stored in a TimeIndex's btree. seq
// breaks ties between events sharing an exact timestamp: btree.Item
// equality (neither Less the other) collapses same-keyed inserts into one
// node, so two events at the same instant must compare distinct via seq or
// one of them silently disappears from the index.
type timeItem struct {
	ts  float64
	seq int
}

func (a timeItem) Less(than btree.Item) bool {
	b := than.(timeItem)
	if a.ts != b.ts {
		return a.ts < b.ts
	}
	return a.seq < b.seq
}

// TimeIndex is a sorted index of one stage's event timestamps, letting
// sliding-window throughput be computed by range-walking instead of
// rescanning or resorting the trace per window.
type TimeIndex struct {
	tree *btree.BTree
	n    int
}

// NewTimeIndex builds a TimeIndex over times. Degree 32 matches the
// pack's own btree usage pattern of small, cheap internal nodes.
func NewTimeIndex(times []float64) *TimeIndex {
	t := &TimeIndex{tree: btree.New(32)}
	for i, ts := range times {
		t.tree.ReplaceOrInsert(timeItem{ts: ts, seq: i})
		t.n++
	}
	return t
}

// CountRange returns the number of indexed timestamps in [lo, hi).
func (t *TimeIndex) CountRange(lo, hi float64) int {
	if t.tree == nil {
		return 0
	}
	n := 0
	t.tree.AscendRange(timeItem{ts: lo, seq: -1}, timeItem{ts: hi, seq: -1}, func(_ btree.Item) bool {
		n++
		return true
	})
	return n
}

// Len reports the total number of indexed timestamps.
func (t *TimeIndex) Len() int { return t.n }

// Sample is one point of a throughput time series: wall-clock time and the
// instantaneous throughput measured over the preceding window.
type Sample struct {
	Time       float64
	Throughput float64
}

// SlidingThroughput walks [start, end] in steps of slide, each step
// measuring the count of events in the trailing window of width `window`
// divided by window, producing a stepped throughput series. If end < start
// or window/slide are non-positive, it returns an empty series (never an
// error). An index with no timestamps, as for a stage absent from the trace,
// yields the usual number of samples, each with zero throughput.
func SlidingThroughput(idx *TimeIndex, start, end, window, slide float64) []Sample {
	if window <= 0 || slide <= 0 || end < start || idx == nil {
		return nil
	}
	var out []Sample
	for t := start; t <= end; t += slide {
		lo := t - window
		count := idx.CountRange(lo, t)
		out = append(out, Sample{Time: t, Throughput: float64(count) / window})
	}
	return out
}

// NumWindows returns how many slide-steps SlidingThroughput would take for
// the given range, matching the §6 binary dump's num_windows field.
func NumWindows(start, end, slide float64) int {
	if slide <= 0 || end < start {
		return 0
	}
	n := 0
	for t := start; t <= end; t += slide {
		n++
	}
	return n
}

// AverageThroughput is the simple count/duration figure reported alongside
// the windowed series.
func AverageThroughput(count int, duration float64) float64 {
	if duration <= 0 {
		return 0
	}
	return float64(count) / duration
}
