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

// Package logtrace parses the two external inputs the analyzer consumes:
// the ground-truth transactions CSV and the timestamped event-log trace.
package logtrace

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/arcology-network/txsched/txerr"
)

// RawTransaction is the ground-truth access list for one transaction line:
// an opaque aux correlator plus its ordered (object, isWrite) accesses.
type RawTransaction struct {
	Aux    int
	Reads  []int
	Writes []int
	// Order preserves the original (obj, w) pairs verbatim, for round-trip
	// encoding (spec §8 invariant 8).
	Order []ObjAccess
}

// ObjAccess is one (object id, write flag) pair as it appeared in the CSV.
type ObjAccess struct {
	Obj     int
	IsWrite bool
}

// ParseTransactionsCSV reads "<aux>, <obj>, <w>, <obj>, <w>, ..." lines, one
// non-empty line per transaction. The 0-based index among non-empty lines
// becomes the transaction's canonical id.
func ParseTransactionsCSV(filename string, r io.Reader) (map[int]*RawTransaction, error) {
	out := make(map[int]*RawTransaction)
	scanner := bufio.NewScanner(r)

	id := 0
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Split(line, ",")
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}

		aux, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, txerr.NewParseError(filename, lineno, "aux field is not an integer")
		}

		objFields := fields[1:]
		if len(objFields)%2 != 0 {
			return nil, txerr.NewParseError(filename, lineno, "odd number of object/write-flag fields")
		}

		rt := &RawTransaction{Aux: aux}
		for i := 0; i < len(objFields); i += 2 {
			obj, err := strconv.Atoi(objFields[i])
			if err != nil {
				return nil, txerr.NewParseError(filename, lineno, fmt.Sprintf("object id %q is not an integer", objFields[i]))
			}
			flag, err := strconv.Atoi(objFields[i+1])
			if err != nil || (flag != 0 && flag != 1) {
				return nil, txerr.NewParseError(filename, lineno, fmt.Sprintf("write flag %q must be 0 or 1", objFields[i+1]))
			}
			isWrite := flag == 1
			rt.Order = append(rt.Order, ObjAccess{Obj: obj, IsWrite: isWrite})
			if isWrite {
				rt.Writes = append(rt.Writes, obj)
			} else {
				rt.Reads = append(rt.Reads, obj)
			}
		}

		out[id] = rt
		id++
	}
	if err := scanner.Err(); err != nil {
		return nil, txerr.NewParseError(filename, lineno, err.Error())
	}
	return out, nil
}

// WriteCSV re-encodes a transaction map back to the CSV grammar, in
// ascending id order, reproducing each transaction's (aux, ordered (obj,w)
// pairs) verbatim — the round-trip half of spec §8 invariant 8.
func WriteCSV(w io.Writer, txns map[int]*RawTransaction) error {
	maxID := -1
	for id := range txns {
		if id > maxID {
			maxID = id
		}
	}
	for id := 0; id <= maxID; id++ {
		rt, ok := txns[id]
		if !ok {
			continue
		}
		parts := make([]string, 0, 1+2*len(rt.Order))
		parts = append(parts, strconv.Itoa(rt.Aux))
		for _, a := range rt.Order {
			flag := 0
			if a.IsWrite {
				flag = 1
			}
			parts = append(parts, strconv.Itoa(a.Obj), strconv.Itoa(flag))
		}
		if _, err := fmt.Fprintln(w, strings.Join(parts, ",")); err != nil {
			return err
		}
	}
	return nil
}
