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

package txnset

import "testing"

func TestExactUnionIntersection(t *testing.T) {
	a := NewExact(1, 2, 3)
	b := NewExact(2, 3, 4)

	u, err := a.Union(b)
	if err != nil {
		t.Fatalf("union: %v", err)
	}
	uExact := u.(*Exact)
	if uExact.Len() != 4 {
		t.Errorf("want 4 elements in union, got %d", uExact.Len())
	}

	i, err := a.Intersection(b)
	if err != nil {
		t.Fatalf("intersection: %v", err)
	}
	iExact := i.(*Exact)
	if iExact.Len() != 2 || !iExact.Contains(2) || !iExact.Contains(3) {
		t.Errorf("want {2,3}, got %v", iExact.Elements())
	}
}

func TestExactIdempotence(t *testing.T) {
	a := NewExact(5, 6, 7)

	u, err := a.Union(a)
	if err != nil {
		t.Fatalf("union: %v", err)
	}
	if u.(*Exact).Len() != 3 {
		t.Errorf("A union A should have 3 elements, got %d", u.(*Exact).Len())
	}

	i, err := a.Intersection(a)
	if err != nil {
		t.Fatalf("intersection: %v", err)
	}
	if i.(*Exact).Len() != 3 {
		t.Errorf("A intersect A should have 3 elements, got %d", i.(*Exact).Len())
	}
}

func TestExactIsEmpty(t *testing.T) {
	if !NewExact().IsEmpty() {
		t.Error("new exact set should be empty")
	}
	if NewExact(1).IsEmpty() {
		t.Error("set with one element should not be empty")
	}
}

func TestExactCopyIsIndependent(t *testing.T) {
	a := NewExact(1, 2)
	b := a.Copy().(*Exact)
	b.Add(3)
	if a.Contains(3) {
		t.Error("mutating the copy should not affect the original")
	}
}

func TestExactUnionTypeMismatch(t *testing.T) {
	a := NewExact(1)
	if _, err := a.Union(mismatchedSet{}); err == nil {
		t.Error("expected an error combining an Exact set with a foreign representation")
	}
}

type mismatchedSet struct{}

func (mismatchedSet) Add(int)               {}
func (mismatchedSet) Contains(int) bool     { return false }
func (mismatchedSet) Union(Set) (Set, error)        { return nil, nil }
func (mismatchedSet) Intersection(Set) (Set, error) { return nil, nil }
func (mismatchedSet) IsEmpty() bool                 { return true }
func (mismatchedSet) Copy() Set                     { return mismatchedSet{} }
func (mismatchedSet) NewEmpty() Set                 { return mismatchedSet{} }
