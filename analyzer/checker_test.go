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

package analyzer

import (
	"strings"
	"testing"

	"github.com/arcology-network/txsched/logtrace"
)

// TestHappyPathTwoDisjointTransactions is spec §8 scenario S5.
func TestHappyPathTwoDisjointTransactions(t *testing.T) {
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

	result, err := New(txns, 2).Check(events)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if result.TotalDone != 2 {
		t.Errorf("want complete_txns=2, got %d", result.TotalDone)
	}
	if result.BusyTime[0] <= 0 || result.BusyTime[1] <= 0 {
		t.Errorf("want positive busy time on both lanes, got %v", result.BusyTime)
	}
}

// TestConcurrentConflictDetected is spec §8 scenario S6: two txns both
// writing object 42, scheduled without an intervening done.
func TestConcurrentConflictDetected(t *testing.T) {
	txns, err := logtrace.ParseTransactionsCSV("t.csv", strings.NewReader("0, 42, 1\n0, 42, 1\n"))
	if err != nil {
		t.Fatalf("parsing transactions: %v", err)
	}
	events, err := logtrace.ParseEventLog("l.log", strings.NewReader(strings.Join([]string{
		"[+0.000] submit txn id=0",
		"[+0.000] submit txn id=1",
		"[+0.001] scheduled txn id=0 assigned to puppet 0",
		"[+0.002] scheduled txn id=1 assigned to puppet 1",
		"",
	}, "\n")))
	if err != nil {
		t.Fatalf("parsing event log: %v", err)
	}

	_, err = New(txns, 2).Check(events)
	if err == nil {
		t.Fatal("expected an invariant violation for the concurrent write-write conflict")
	}
	if !strings.Contains(err.Error(), "Conflict detected when scheduling txn 1") {
		t.Errorf("want diagnostic mentioning the conflicting txn, got %q", err.Error())
	}
}

func TestScheduledWithoutSubmitIsViolation(t *testing.T) {
	txns, _ := logtrace.ParseTransactionsCSV("t.csv", strings.NewReader("0, 1, 0\n"))
	events, _ := logtrace.ParseEventLog("l.log", strings.NewReader("[+0.000] scheduled txn id=0 assigned to puppet 0\n"))

	if _, err := New(txns, 1).Check(events); err == nil {
		t.Error("expected a violation for scheduling a transaction that was never submitted")
	}
}

func TestSubmittedButNeverScheduledIsViolation(t *testing.T) {
	txns, _ := logtrace.ParseTransactionsCSV("t.csv", strings.NewReader("0, 1, 0\n"))
	events, _ := logtrace.ParseEventLog("l.log", strings.NewReader("[+0.000] submit txn id=0\n"))

	if _, err := New(txns, 1).Check(events); err == nil {
		t.Error("expected a violation when a submitted transaction never reaches done")
	}
}

func TestLaneOutOfRangeIsViolation(t *testing.T) {
	txns, _ := logtrace.ParseTransactionsCSV("t.csv", strings.NewReader("0, 1, 0\n"))
	events, _ := logtrace.ParseEventLog("l.log", strings.NewReader(strings.Join([]string{
		"[+0.000] submit txn id=0",
		"[+0.001] scheduled txn id=0 assigned to puppet 5",
		"",
	}, "\n")))

	if _, err := New(txns, 2).Check(events); err == nil {
		t.Error("expected a violation for an out-of-range lane id")
	}
}
