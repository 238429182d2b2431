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
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/arcology-network/txsched/txerr"
)

// EventKind discriminates the event-log grammar's record types.
type EventKind int

const (
	Submit EventKind = iota
	Scheduled
	Done
	Recv    // optional stage, spec §9 open question
	Cleanup // optional stage, spec §9 open question
)

// Event is one line of the parsed event-log trace.
type Event struct {
	Kind   EventKind
	Time   float64
	TxnID  int
	LaneID int // valid only for Scheduled and Done
}

var (
	initRe      = regexp.MustCompile(`.*[xX]sim.*|.*veril.*`)
	submitRe    = regexp.MustCompile(`^\[\+\s*([0-9.]+)\]\s*submit\s+txn\s+id=\s*(\d+)(?:\s+aux=\s*\d+)?\s*$`)
	scheduledRe = regexp.MustCompile(`^\[\+\s*([0-9.]+)\]\s*scheduled\s+txn\s+id=\s*(\d+)\s+assigned\s+to\s+puppet\s+(\d+)\s*$`)
	doneRe      = regexp.MustCompile(`^\[\+\s*([0-9.]+)\]\s*done\s+puppet\s+(\d+)\s+finished\s+txn\s+id=\s*(\d+)\s*$`)
	recvRe      = regexp.MustCompile(`^\[\+\s*([0-9.]+)\]\s*recv\s+txn\s+id=\s*(\d+)\s*$`)
	cleanupRe   = regexp.MustCompile(`^\[\+\s*([0-9.]+)\]\s*cleanup\s+txn\s+id=\s*(\d+)\s*$`)
)

// ParseEventLog parses the §4.8 grammar: a leading [+<time>] prefix and one
// of submit/scheduled/done (plus the optional recv/cleanup extension).
// Simulator-init noise lines matching ".*[xX]sim.*" or ".*veril.*" are
// silently dropped. Any other non-empty line is a fatal ParseError. Events
// are returned in the order they were read.
func ParseEventLog(filename string, r io.Reader) ([]Event, error) {
	var events []Event
	scanner := bufio.NewScanner(r)

	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if initRe.MatchString(line) {
			continue
		}

		switch {
		case submitRe.MatchString(line):
			m := submitRe.FindStringSubmatch(line)
			t, txnID := mustParseTimeAndID(m[1], m[2])
			events = append(events, Event{Kind: Submit, Time: t, TxnID: txnID})
		case scheduledRe.MatchString(line):
			m := scheduledRe.FindStringSubmatch(line)
			t, txnID := mustParseTimeAndID(m[1], m[2])
			lane, _ := strconv.Atoi(strings.TrimSpace(m[3]))
			events = append(events, Event{Kind: Scheduled, Time: t, TxnID: txnID, LaneID: lane})
		case doneRe.MatchString(line):
			m := doneRe.FindStringSubmatch(line)
			t, _ := strconv.ParseFloat(strings.TrimSpace(m[1]), 64)
			lane, _ := strconv.Atoi(strings.TrimSpace(m[2]))
			txnID, _ := strconv.Atoi(strings.TrimSpace(m[3]))
			events = append(events, Event{Kind: Done, Time: t, TxnID: txnID, LaneID: lane})
		case recvRe.MatchString(line):
			m := recvRe.FindStringSubmatch(line)
			t, txnID := mustParseTimeAndID(m[1], m[2])
			events = append(events, Event{Kind: Recv, Time: t, TxnID: txnID})
		case cleanupRe.MatchString(line):
			m := cleanupRe.FindStringSubmatch(line)
			t, txnID := mustParseTimeAndID(m[1], m[2])
			events = append(events, Event{Kind: Cleanup, Time: t, TxnID: txnID})
		default:
			return nil, txerr.NewParseError(filename, lineno, "failed to parse event line: "+line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, txerr.NewParseError(filename, lineno, err.Error())
	}
	return events, nil
}

func mustParseTimeAndID(timeStr, idStr string) (float64, int) {
	t, _ := strconv.ParseFloat(strings.TrimSpace(timeStr), 64)
	id, _ := strconv.Atoi(strings.TrimSpace(idStr))
	return t, id
}
