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

package logtrace

import (
	"strings"
	"testing"
)

func TestParseEventLogHappyPath(t *testing.T) {
	input := strings.Join([]string{
		"[+0.000] submit txn id=0",
		"[+0.001] submit txn id=1",
		"[+0.002] scheduled txn id=0 assigned to puppet 0",
		"[+0.003] scheduled txn id=1 assigned to puppet 1",
		"[+0.010] done puppet 0 finished txn id=0",
		"[+0.011] done puppet 1 finished txn id=1",
		"",
	}, "\n")

	events, err := ParseEventLog("test.log", strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseEventLog: %v", err)
	}
	if len(events) != 6 {
		t.Fatalf("want 6 events, got %d", len(events))
	}
	if events[0].Kind != Submit || events[0].TxnID != 0 {
		t.Errorf("unexpected first event: %+v", events[0])
	}
	if events[2].Kind != Scheduled || events[2].LaneID != 0 {
		t.Errorf("unexpected scheduled event: %+v", events[2])
	}
	if events[4].Kind != Done || events[4].TxnID != 0 || events[4].LaneID != 0 {
		t.Errorf("unexpected done event: %+v", events[4])
	}
}

func TestParseEventLogIgnoresSimulatorNoise(t *testing.T) {
	input := strings.Join([]string{
		"Xsim: loading design...",
		"veril simulation starting",
		"[+0.000] submit txn id=0",
		"",
	}, "\n")

	events, err := ParseEventLog("test.log", strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseEventLog: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("want 1 event after filtering simulator noise, got %d", len(events))
	}
}

func TestParseEventLogCapitalVerilIsNotNoise(t *testing.T) {
	input := "Verilator simulation starting\n"
	if _, err := ParseEventLog("test.log", strings.NewReader(input)); err == nil {
		t.Error("expected a ParseError: \"veril\" noise filtering is case-sensitive, capital V is not noise")
	}
}

func TestParseEventLogOptionalRecvCleanup(t *testing.T) {
	input := strings.Join([]string{
		"[+0.000] submit txn id=0",
		"[+0.001] scheduled txn id=0 assigned to puppet 0",
		"[+0.002] recv txn id=0",
		"[+0.003] done puppet 0 finished txn id=0",
		"[+0.004] cleanup txn id=0",
		"",
	}, "\n")

	events, err := ParseEventLog("test.log", strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseEventLog: %v", err)
	}
	if len(events) != 5 {
		t.Fatalf("want 5 events, got %d", len(events))
	}
	if events[2].Kind != Recv || events[4].Kind != Cleanup {
		t.Errorf("recv/cleanup not parsed as expected: %+v", events)
	}
}

func TestParseEventLogRejectsGarbage(t *testing.T) {
	input := "this is not a valid event line\n"
	if _, err := ParseEventLog("test.log", strings.NewReader(input)); err == nil {
		t.Error("expected a ParseError for an unrecognized line")
	}
}
