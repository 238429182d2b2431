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
	"math"

	"github.com/arcology-network/txsched/analyzer"
)

// StageKind enumerates the five event stages, in the §6 binary dump's
// fixed emission order.
type StageKind int

const (
	StageSubmit StageKind = iota
	StageSched
	StageRecv
	StageDone
	StageCleanup
)

var stageOrder = [...]StageKind{StageSubmit, StageSched, StageRecv, StageDone, StageCleanup}

// LatencyKind enumerates the five inter-stage latencies, in the §6 binary
// dump's fixed emission order.
type LatencyKind int

const (
	LatencyE2E LatencyKind = iota
	LatencySubmitSched
	LatencySchedRecv
	LatencyRecvDone
	LatencyDoneCleanup
)

var latencyOrder = [...]LatencyKind{LatencyE2E, LatencySubmitSched, LatencySchedRecv, LatencyRecvDone, LatencyDoneCleanup}

// Config drives histogram/throughput computation from a verified
// analyzer.Result.
type Config struct {
	Buckets  int
	Unit     Unit
	Window   float64
	Slide    float64
	Quantile float64 // 0 disables outlier filtering
	CPUFreq  float64 // informational, carried into the binary dump header
	Filtered int32   // count of input rows dropped before analysis, if any
}

// DefaultConfig matches the CLI's documented flag defaults.
func DefaultConfig() Config {
	return Config{Buckets: 50, Unit: Microseconds, Window: 1.0, Slide: 0.1}
}

// Report is the fully computed telemetry for one analyzer run: everything
// the CLI needs to print the summary block, the CSV sub-blocks, and the
// binary dump.
type Report struct {
	TotalTxns     int32
	CompleteTxns  int32
	Filtered      int32
	NumLanes      int32
	CPUFreq       float64
	Utilization   []float64 // per lane, busy/wall * 100
	WallSeconds   float64
	AvgThroughput float64

	WindowSeconds float64
	NumWindows    int32
	Throughput    map[StageKind][]Sample

	LatencyUnit Unit
	Histograms  map[LatencyKind]*Histogram
}

// Aggregate computes every number in Report from a verified analyzer.Result.
func Aggregate(res *analyzer.Result, cfg Config) *Report {
	wall := res.LastDone - res.FirstSubmit
	if math.IsNaN(wall) || wall < 0 {
		wall = 0
	}

	util := make([]float64, res.NumLanes)
	for lane, busy := range res.BusyTime {
		if wall > 0 {
			util[lane] = busy / wall * 100
		}
	}

	stageTimes := collectStageTimes(res)
	numWindows := NumWindows(res.FirstSubmit, res.LastDone, cfg.Slide)
	throughput := make(map[StageKind][]Sample, len(stageOrder))
	for _, stage := range stageOrder {
		idx := NewTimeIndex(stageTimes[stage])
		throughput[stage] = SlidingThroughput(idx, res.FirstSubmit, res.LastDone, cfg.Window, cfg.Slide)
	}

	latencySamples := collectLatencies(res)
	histograms := make(map[LatencyKind]*Histogram, len(latencyOrder))
	for _, kind := range latencyOrder {
		scaled := make([]float64, 0, len(latencySamples[kind]))
		for _, s := range latencySamples[kind] {
			scaled = append(scaled, cfg.Unit.Scale(s))
		}
		filtered := FilterQuantile(scaled, cfg.Quantile)
		histograms[kind] = NewHistogram(filtered, cfg.Buckets, cfg.Unit)
	}

	return &Report{
		TotalTxns:     int32(len(res.States)),
		CompleteTxns:  int32(res.TotalDone),
		Filtered:      cfg.Filtered,
		NumLanes:      int32(res.NumLanes),
		CPUFreq:       cfg.CPUFreq,
		Utilization:   util,
		WallSeconds:   wall,
		AvgThroughput: AverageThroughput(res.TotalDone, wall),
		WindowSeconds: cfg.Window,
		NumWindows:    int32(numWindows),
		Throughput:    throughput,
		LatencyUnit:   cfg.Unit,
		Histograms:    histograms,
	}
}

func collectStageTimes(res *analyzer.Result) map[StageKind][]float64 {
	out := map[StageKind][]float64{
		StageSubmit:  nil,
		StageSched:   nil,
		StageRecv:    nil,
		StageDone:    nil,
		StageCleanup: nil,
	}
	for _, st := range res.States {
		out[StageSubmit] = appendIfFinite(out[StageSubmit], st.SubmitTime)
		out[StageSched] = appendIfFinite(out[StageSched], st.ScheduleTime)
		out[StageRecv] = appendIfFinite(out[StageRecv], st.RecvTime)
		out[StageDone] = appendIfFinite(out[StageDone], st.DoneTime)
		out[StageCleanup] = appendIfFinite(out[StageCleanup], st.CleanupTime)
	}
	return out
}

func collectLatencies(res *analyzer.Result) map[LatencyKind][]float64 {
	out := map[LatencyKind][]float64{
		LatencyE2E:         nil,
		LatencySubmitSched: nil,
		LatencySchedRecv:   nil,
		LatencyRecvDone:    nil,
		LatencyDoneCleanup: nil,
	}
	for _, st := range res.States {
		if finite(st.SubmitTime) && finite(st.DoneTime) {
			out[LatencyE2E] = append(out[LatencyE2E], st.DoneTime-st.SubmitTime)
		}
		if finite(st.SubmitTime) && finite(st.ScheduleTime) {
			out[LatencySubmitSched] = append(out[LatencySubmitSched], st.ScheduleTime-st.SubmitTime)
		}
		if finite(st.ScheduleTime) && finite(st.RecvTime) {
			out[LatencySchedRecv] = append(out[LatencySchedRecv], st.RecvTime-st.ScheduleTime)
		}
		if finite(st.RecvTime) && finite(st.DoneTime) {
			out[LatencyRecvDone] = append(out[LatencyRecvDone], st.DoneTime-st.RecvTime)
		}
		if finite(st.DoneTime) && finite(st.CleanupTime) {
			out[LatencyDoneCleanup] = append(out[LatencyDoneCleanup], st.CleanupTime-st.DoneTime)
		}
	}
	return out
}

func finite(f float64) bool { return !math.IsNaN(f) }

func appendIfFinite(s []float64, v float64) []float64 {
	if finite(v) {
		return append(s, v)
	}
	return s
}
