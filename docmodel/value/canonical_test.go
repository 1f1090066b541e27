// Copyright 2021 The Firedoc Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package value

import (
	"math"
	"testing"
	"time"
)

func TestCanonicalID(t *testing.T) {
	for _, test := range []struct {
		in   Value
		want string
	}{
		{wrap(nil), "null"},
		{wrap(true), "true"},
		{wrap(false), "false"},
		{wrap(1), "1"},
		{wrap(1.0), "1.0"},
		{wrap(-0.5), "-0.5"},
		{wrap(math.NaN()), "NaN"},
		{wrap(math.Inf(1)), "Infinity"},
		{wrap(math.Inf(-1)), "-Infinity"},
		{wrap(time.Unix(30, 1000).UTC()), "time(30,1000)"},
		{wrap("a"), "a"},
		{wrap([]byte{1, 2, 3}), "010203"},
		{ref("p1", "d1", "c1/doc1"), "c1/doc1"},
		{GeoPoint(30, 60), "geo(30.0,60.0)"},
		{wrap([]interface{}{1, 2, 3}), "[1,2,3]"},
		{wrapObject(mp("a", 1, "b", 2, "c", 3)), "{a:1,b:2,c:3}"},
		{wrapObject(mp("a", []interface{}{"b", mp("c", GeoPoint(30, 60))})), "{a:[b,{c:geo(30.0,60.0)}]}"},
	} {
		if got := CanonicalID(test.in); got != test.want {
			t.Errorf("CanonicalID(%v) = %q, want %q", test.in, got, test.want)
		}
	}
}

func TestCanonicalIDIgnoresMapOrder(t *testing.T) {
	// Maps canonicalize in key order no matter how they were assembled.
	a := wrapObject(mp("a", 1, "b", 2))
	b := EmptyObject().
		Set(fp("b"), wrap(2)).
		Set(fp("a"), wrap(1))
	if got, want := CanonicalID(a), CanonicalID(b); got != want {
		t.Errorf("CanonicalID mismatch: %q vs %q", got, want)
	}
}

func TestCanonicalIDOverlayTombstones(t *testing.T) {
	base := wrapObject(mp("a", 1, "b", 2))
	got := CanonicalID(base.Delete(fp("b")))
	if want := "{a:1}"; got != want {
		t.Errorf("CanonicalID = %q, want %q", got, want)
	}
}
