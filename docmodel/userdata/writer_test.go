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

package userdata

import (
	"testing"
	"time"

	"github.com/golang/protobuf/proto"
	"github.com/golang/protobuf/ptypes"
	tspb "github.com/golang/protobuf/ptypes/timestamp"
	"github.com/google/go-cmp/cmp"
	"google.golang.org/genproto/googleapis/type/latlng"

	"firedoc.dev/docmodel"
	"firedoc.dev/docmodel/value"
)

var (
	testDB    = docmodel.NewDatabaseID("projectID", "")
	writeTime = time.Date(2021, 3, 4, 5, 6, 7, 8, time.UTC)
)

func mustKey(t *testing.T, path string) docmodel.DocumentKey {
	t.Helper()
	k, err := docmodel.NewDocumentKey(path)
	if err != nil {
		t.Fatal(err)
	}
	return k
}

func diff(got, want interface{}) string {
	return cmp.Diff(got, want,
		cmp.Comparer(proto.Equal),
		cmp.Comparer(func(a, b docmodel.DocumentKey) bool { return a.Equal(b) }))
}

func TestConvert(t *testing.T) {
	w := NewWriter(testDB, nil)
	for _, test := range []struct {
		in   value.Value
		want interface{}
	}{
		{value.Null(), nil},
		{value.Boolean(true), true},
		{value.Integer(3), int64(3)},
		{value.Double(1.5), 1.5},
		{value.String("str"), "str"},
		{value.Bytes([]byte{1, 2}), []byte{1, 2}},
		{value.Timestamp(writeTime), writeTime},
		{value.GeoPoint(30, 70), &latlng.LatLng{Latitude: 30, Longitude: 70}},
		{
			value.Reference("projects/projectID/databases/(default)/documents/c/d"),
			&DocumentRef{Key: mustKey(t, "c/d"), Database: testDB},
		},
		{
			value.Array(value.Integer(1), value.String("two")),
			[]interface{}{int64(1), "two"},
		},
		{
			value.Map(map[string]value.Value{
				"a": value.Integer(1),
				"b": value.Map(map[string]value.Value{"c": value.Boolean(false)}),
			}),
			map[string]interface{}{
				"a": int64(1),
				"b": map[string]interface{}{"c": false},
			},
		},
	} {
		got, err := w.Convert(test.in)
		if err != nil {
			t.Errorf("%v: %v", test.in, err)
			continue
		}
		if d := diff(got, test.want); d != "" {
			t.Errorf("%v: mismatch (-got +want):\n%s", test.in, d)
		}
	}
}

func TestConvertOverlay(t *testing.T) {
	w := NewWriter(testDB, nil)
	obj := value.EmptyObject().
		Set(docmodel.NewFieldPath("a"), value.Integer(1)).
		Set(docmodel.NewFieldPath("b", "c"), value.String("x")).
		Delete(docmodel.NewFieldPath("a"))
	got, err := w.Convert(obj)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]interface{}{"b": map[string]interface{}{"c": "x"}}
	if d := diff(got, want); d != "" {
		t.Errorf("mismatch (-got +want):\n%s", d)
	}
}

func TestConvertProtoTimestamps(t *testing.T) {
	w := NewWriter(testDB, &Options{ProtoTimestamps: true})
	got, err := w.Convert(value.Timestamp(writeTime))
	if err != nil {
		t.Fatal(err)
	}
	ts, ok := got.(*tspb.Timestamp)
	if !ok {
		t.Fatalf("got %T, want *tspb.Timestamp", got)
	}
	if back, err := ptypes.Timestamp(ts); err != nil || !back.Equal(writeTime) {
		t.Errorf("got %v (err %v), want %v", back, err, writeTime)
	}
}

func TestConvertServerTimestamp(t *testing.T) {
	fresh := value.ServerTimestamp(writeTime, nil)
	pending := value.ServerTimestamp(writeTime, value.Integer(42))
	chained := value.ServerTimestamp(writeTime.Add(time.Minute), pending)

	for _, test := range []struct {
		behavior ServerTimestampBehavior
		in       value.Value
		want     interface{}
	}{
		{ServerTimestampNone, fresh, nil},
		{ServerTimestampNone, pending, nil},
		{ServerTimestampPrevious, fresh, nil},
		{ServerTimestampPrevious, pending, int64(42)},
		{ServerTimestampPrevious, chained, int64(42)},
		{ServerTimestampEstimate, fresh, writeTime},
		{ServerTimestampEstimate, pending, writeTime},
	} {
		w := NewWriter(testDB, &Options{ServerTimestamps: test.behavior})
		got, err := w.Convert(test.in)
		if err != nil {
			t.Errorf("behavior %d: %v", test.behavior, err)
			continue
		}
		if d := diff(got, test.want); d != "" {
			t.Errorf("behavior %d: mismatch (-got +want):\n%s", test.behavior, d)
		}
	}
}

func TestConvertReferenceOtherDatabase(t *testing.T) {
	// References into another database re-parent into the writer's database.
	w := NewWriter(testDB, nil)
	got, err := w.Convert(value.Reference("projects/other/databases/(default)/documents/c/d"))
	if err != nil {
		t.Fatal(err)
	}
	want := &DocumentRef{Key: mustKey(t, "c/d"), Database: testDB}
	if d := diff(got, want); d != "" {
		t.Errorf("mismatch (-got +want):\n%s", d)
	}
}

func TestConvertBadReference(t *testing.T) {
	w := NewWriter(testDB, nil)
	if _, err := w.Convert(value.Reference("not/a/resource/name")); err == nil {
		t.Error("got nil, want error")
	}
}
