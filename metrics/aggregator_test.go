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
	"bytes"
	"strings"
	"testing"

	"github.com/arcology-network/txsched/analyzer"
	"github.com/arcology-network/txsched/logtrace"
)

func mustCheck(t *testing.T) *analyzer.Result {
	t.Helper()
	txns, err := logtrace.ParseTransactionsCSV("t.csv", strings.NewReader("0, 1, 0, 2, 1\n0, 3, 0, 4, 1\n"))
	if err != nil {
		t.Fatalf("parsing transactions: %v", err)
	}
	events, err := logtrace.ParseEventLog("l.log", strings.NewReader(strings.Join([]string{
		"[+0.000] submit txn id=0",
		"[+0.000] submit txn id=1",
		"[+0.001] scheduled txn id=0 assigned to puppet 0",
		"[+0.001] scheduled txn id=1 assigned to puppet 1",
		"[+0.010] done puppet 0 finished txn id=0",
		"[+0.012] done puppet 1 finished txn id=1",
		"",
	}, "\n")))
	if err != nil {
		t.Fatalf("parsing event log: %v", err)
	}
	result, err := analyzer.New(txns, 2).Check(events)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	return result
}

func TestAggregateProducesUtilizationAndHistograms(t *testing.T) {
	result := mustCheck(t)
	report := Aggregate(result, Config{Buckets: 8, Unit: Microseconds, Window: 0.01, Slide: 0.005})

	if report.TotalTxns != 2 || report.CompleteTxns != 2 {
		t.Errorf("unexpected totals: %+v", report)
	}
	if len(report.Utilization) != 2 {
		t.Fatalf("want 2 lane utilization entries, got %d", len(report.Utilization))
	}
	for _, kind := range latencyOrder {
		if _, ok := report.Histograms[kind]; !ok {
			t.Errorf("missing histogram for latency kind %d", kind)
		}
	}
	for _, stage := range stageOrder {
		if _, ok := report.Throughput[stage]; !ok {
			t.Errorf("missing throughput series for stage %d", stage)
		}
	}
}

func TestWriteDumpRoundTripsWithoutError(t *testing.T) {
	result := mustCheck(t)
	report := Aggregate(result, DefaultConfig())

	var buf bytes.Buffer
	if err := WriteDump(&buf, report); err != nil {
		t.Fatalf("WriteDump: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("expected a non-empty binary dump")
	}
}

func TestWriteCSVBlocksEmitsAllFourSections(t *testing.T) {
	result := mustCheck(t)
	report := Aggregate(result, DefaultConfig())

	var buf bytes.Buffer
	if err := WriteCSVBlocks(&buf, report, 100); err != nil {
		t.Fatalf("WriteCSVBlocks: %v", err)
	}
	out := buf.String()
	for _, header := range []string{"# LATENCY_CDF", "# LATENCY_HIST", "# THROUGHPUT_TS", "# PUPPET_UTIL"} {
		if !strings.Contains(out, header) {
			t.Errorf("missing %q section in CSV output", header)
		}
	}
}
