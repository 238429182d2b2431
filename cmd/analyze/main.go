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

// Command analyze replays a transactions CSV against an event-log trace,
// checks lifecycle and conflict invariants, and reports latency/throughput
// telemetry.
//
//	analyze <transactions.csv> <log.txt> <num_lanes>
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/google/uuid"

	"github.com/arcology-network/txsched/analyzer"
	"github.com/arcology-network/txsched/logtrace"
	"github.com/arcology-network/txsched/metrics"
	"github.com/arcology-network/txsched/txerr"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	buckets := fs.Int("buckets", 50, "number of histogram buckets")
	unitFlag := fs.String("unit", "us", "latency display unit: ns|us|ms|s")
	window := fs.Float64("window", 1.0, "throughput sliding-window width, seconds")
	slide := fs.Float64("slide", 0.1, "throughput sliding-window step, seconds")
	quantile := fs.Float64("quantile", 0, "outlier quantile cutoff, e.g. 0.01; 0 disables")
	dumpPath := fs.String("dump", "", "write the binary dump to this path")
	metricsAddr := fs.String("metrics-addr", "", "optional host:port to serve Prometheus /metrics")
	emitCSV := fs.Bool("csv", false, "emit CSV sub-blocks to stdout")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	runID := uuid.New()
	logger := log.New(os.Stderr, fmt.Sprintf("analyze[%s] ", runID.String()[:8]), log.LstdFlags)

	if fs.NArg() != 3 {
		fmt.Fprintln(os.Stderr, txerr.NewUsageError("usage: analyze <transactions.csv> <log.txt> <num_lanes>"))
		return 2
	}
	csvPath, logPath := fs.Arg(0), fs.Arg(1)
	numLanes, err := strconv.Atoi(fs.Arg(2))
	if err != nil || numLanes <= 0 {
		fmt.Fprintln(os.Stderr, txerr.NewUsageError("num_lanes must be a positive integer"))
		return 2
	}

	unit, ok := metrics.ParseUnit(*unitFlag)
	if !ok {
		fmt.Fprintln(os.Stderr, txerr.NewUsageError("unrecognized --unit, want ns|us|ms|s"))
		return 2
	}

	logger.Printf("starting run: csv=%s log=%s lanes=%d", csvPath, logPath, numLanes)

	txns, events, err := parseInputs(csvPath, logPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	result, err := analyzer.New(txns, numLanes).Check(events)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	cfg := metrics.Config{
		Buckets:  *buckets,
		Unit:     unit,
		Window:   *window,
		Slide:    *slide,
		Quantile: *quantile,
	}
	report := metrics.Aggregate(result, cfg)

	printSummary(report)

	if *emitCSV {
		if err := metrics.WriteCSVBlocks(os.Stdout, report, *slide*1000); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}

	if *dumpPath != "" {
		if err := writeDumpFile(*dumpPath, report); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}

	if *metricsAddr != "" {
		serveMetrics(logger, *metricsAddr, report)
	}

	logger.Printf("run complete: complete_txns=%d/%d", result.TotalDone, len(result.States))
	return 0
}

func parseInputs(csvPath, logPath string) (map[int]*logtrace.RawTransaction, []logtrace.Event, error) {
	csvFile, err := os.Open(csvPath)
	if err != nil {
		return nil, nil, txerr.NewParseError(csvPath, 0, err.Error())
	}
	defer csvFile.Close()
	txns, err := logtrace.ParseTransactionsCSV(csvPath, csvFile)
	if err != nil {
		return nil, nil, err
	}

	logFile, err := os.Open(logPath)
	if err != nil {
		return nil, nil, txerr.NewParseError(logPath, 0, err.Error())
	}
	defer logFile.Close()
	events, err := logtrace.ParseEventLog(logPath, logFile)
	if err != nil {
		return nil, nil, err
	}
	return txns, events, nil
}

func printSummary(r *metrics.Report) {
	fmt.Printf("total_txns=%d complete_txns=%d filtered=%d num_lanes=%d\n",
		r.TotalTxns, r.CompleteTxns, r.Filtered, r.NumLanes)
	fmt.Printf("wall_seconds=%g avg_throughput=%g\n", r.WallSeconds, r.AvgThroughput)
	for lane, pct := range r.Utilization {
		fmt.Printf("lane %d utilization=%.2f%%\n", lane, pct)
	}
}

func writeDumpFile(path string, r *metrics.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return txerr.NewParseError(path, 0, err.Error())
	}
	defer f.Close()
	return metrics.WriteDump(f, r)
}

func serveMetrics(logger *log.Logger, addr string, r *metrics.Report) {
	exporter := metrics.NewExporter()
	exporter.Update(r)
	logger.Printf("serving metrics on %s", addr)
	http.Handle("/metrics", exporter.Handler())
	if err := http.ListenAndServe(addr, nil); err != nil {
		logger.Printf("metrics server stopped: %v", err)
	}
}
