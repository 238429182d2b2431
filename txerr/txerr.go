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

// Package txerr defines the scheduler core's error taxonomy. Every fatal
// condition in the scheduler or analyzer surfaces as one of the typed
// errors below instead of an ad hoc string.
package txerr

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// UsageError reports wrong CLI arity or flags.
type UsageError struct {
	Reason string
}

func (e *UsageError) Error() string { return fmt.Sprintf("usage error: %s", e.Reason) }

func NewUsageError(reason string) error {
	return errors.WithStack(&UsageError{Reason: reason})
}

// ParseError reports a malformed CSV or event line.
type ParseError struct {
	File   string
	Lineno int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Lineno, e.Reason)
}

func NewParseError(file string, lineno int, reason string) error {
	return errors.WithStack(&ParseError{File: file, Lineno: lineno, Reason: reason})
}

// InvariantViolation reports a broken consistency rule from the analyzer's
// state machine.
type InvariantViolation struct {
	TxnID int
	Rule  string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("invariant violation: txn %d: %s", e.TxnID, e.Rule)
}

func NewInvariantViolation(txnID int, rule string) error {
	return errors.WithStack(&InvariantViolation{TxnID: txnID, Rule: rule})
}

// UnsupportedOperation reports a call to an operation a Set implementation
// deliberately does not support (remove, cardinality on a Signature).
type UnsupportedOperation struct {
	Op   string
	Type string
}

func (e *UnsupportedOperation) Error() string {
	return fmt.Sprintf("%s does not support %s", e.Type, e.Op)
}

func NewUnsupportedOperation(typ, op string) error {
	return errors.WithStack(&UnsupportedOperation{Op: op, Type: typ})
}

// FamilyMismatch reports an attempt to combine Signatures from different
// hash-function families.
type FamilyMismatch struct{}

func (e *FamilyMismatch) Error() string {
	return "signatures belong to different hash-function families"
}

func NewFamilyMismatch() error {
	return errors.WithStack(&FamilyMismatch{})
}

// PreconditionViolation reports a merge attempted on incompatible
// transactions.
type PreconditionViolation struct {
	Reason string
}

func (e *PreconditionViolation) Error() string {
	return fmt.Sprintf("precondition violation: %s", e.Reason)
}

func NewPreconditionViolation(reason string) error {
	return errors.WithStack(&PreconditionViolation{Reason: reason})
}

// As is a thin re-export of errors.As so callers don't need to import
// cockroachdb/errors directly just to type-switch on the taxonomy above.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
