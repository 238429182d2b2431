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
	"encoding/binary"
	"io"
)

// WriteDump renders r in the §6 binary dump layout: a fixed header, then
// per-stage (time, throughput) pairs for the five stages in stageOrder,
// then a unit_id per latency kind, then per-latency-kind histogram
// triples — all little-endian, field by field. None of the pack's
// serialization helpers (common-lib/codec's framing, protobuf) produce
// this exact ad hoc shape without fighting their own conventions, so this
// writes directly with encoding/binary.
func WriteDump(w io.Writer, r *Report) error {
	header := struct {
		TotalTxns     int32
		CompleteTxns  int32
		Filtered      int32
		NumBuckets    int32
		CPUFreq       float64
		NumLanes      int32
		AvgThroughput float64
		NumWindows    int32
		WindowSeconds float64
	}{
		TotalTxns:     r.TotalTxns,
		CompleteTxns:  r.CompleteTxns,
		Filtered:      r.Filtered,
		NumBuckets:    int32(len(firstHistogram(r).Buckets)),
		CPUFreq:       r.CPUFreq,
		NumLanes:      r.NumLanes,
		AvgThroughput: r.AvgThroughput,
		NumWindows:    r.NumWindows,
		WindowSeconds: r.WindowSeconds,
	}
	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return err
	}

	for _, stage := range stageOrder {
		for _, s := range r.Throughput[stage] {
			pair := struct {
				Time       float64
				Throughput float64
			}{s.Time, s.Throughput}
			if err := binary.Write(w, binary.LittleEndian, pair); err != nil {
				return err
			}
		}
	}

	for _, kind := range latencyOrder {
		if err := binary.Write(w, binary.LittleEndian, int32(r.Histograms[kind].Unit)); err != nil {
			return err
		}
	}

	for _, kind := range latencyOrder {
		for _, b := range r.Histograms[kind].Buckets {
			triple := struct {
				Center float64
				Count  int32
				CDF    float64
			}{b.Center, b.Count, b.CDF}
			if err := binary.Write(w, binary.LittleEndian, triple); err != nil {
				return err
			}
		}
	}
	return nil
}

func firstHistogram(r *Report) *Histogram {
	if h, ok := r.Histograms[LatencyE2E]; ok {
		return h
	}
	for _, h := range r.Histograms {
		return h
	}
	return &Histogram{}
}
