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
	"fmt"
	"io"
)

var latencyNames = map[LatencyKind]string{
	LatencyE2E:         "e2e",
	LatencySubmitSched: "submit_sched",
	LatencySchedRecv:   "sched_recv",
	LatencyRecvDone:    "recv_done",
	LatencyDoneCleanup: "done_cleanup",
}

var stageNames = map[StageKind]string{
	StageSubmit:  "submit",
	StageSched:   "sched",
	StageRecv:    "recv",
	StageDone:    "done",
	StageCleanup: "cleanup",
}

// WriteCSVBlocks emits the four "# NAME" sub-blocks spec.md §6 names, in
// order, to w. slideMillis carries the THROUGHPUT_TS header's optional
// slide_ms= metadata.
func WriteCSVBlocks(w io.Writer, r *Report, slideMillis float64) error {
	if err := writeLatencyCDF(w, r); err != nil {
		return err
	}
	if err := writeLatencyHist(w, r); err != nil {
		return err
	}
	if err := writeThroughputTS(w, r, slideMillis); err != nil {
		return err
	}
	return writePuppetUtil(w, r)
}

func writeLatencyCDF(w io.Writer, r *Report) error {
	if _, err := fmt.Fprintln(w, "# LATENCY_CDF"); err != nil {
		return err
	}
	for _, kind := range latencyOrder {
		h := r.Histograms[kind]
		for _, b := range h.Buckets {
			if _, err := fmt.Fprintf(w, "%s,%g,%g\n", latencyNames[kind], b.Center, b.CDF); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeLatencyHist(w io.Writer, r *Report) error {
	if _, err := fmt.Fprintln(w, "# LATENCY_HIST"); err != nil {
		return err
	}
	for _, kind := range latencyOrder {
		h := r.Histograms[kind]
		for _, b := range h.Buckets {
			if _, err := fmt.Fprintf(w, "%s,%g,%d\n", latencyNames[kind], b.Center, b.Count); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeThroughputTS(w io.Writer, r *Report, slideMillis float64) error {
	header := "# THROUGHPUT_TS"
	if slideMillis > 0 {
		header = fmt.Sprintf("%s slide_ms=%g", header, slideMillis)
	}
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}
	for _, stage := range stageOrder {
		for _, s := range r.Throughput[stage] {
			if _, err := fmt.Fprintf(w, "%s,%g,%g\n", stageNames[stage], s.Time, s.Throughput); err != nil {
				return err
			}
		}
	}
	return nil
}

func writePuppetUtil(w io.Writer, r *Report) error {
	if _, err := fmt.Fprintln(w, "# PUPPET_UTIL"); err != nil {
		return err
	}
	for lane, pct := range r.Utilization {
		if _, err := fmt.Fprintf(w, "%d,%g\n", lane, pct); err != nil {
			return err
		}
	}
	return nil
}
