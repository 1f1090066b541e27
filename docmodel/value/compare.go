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
	"bytes"
	"math"
	"math/big"
	"strings"
	"unicode/utf8"

	"github.com/golang/protobuf/proto"
	tspb "github.com/golang/protobuf/ptypes/timestamp"
	pb "google.golang.org/genproto/googleapis/firestore/v1"
)

// Compare totally orders a and b by the database's canonical sort order,
// returning -1, 0 or 1. Values of different type ranks order by rank;
// within the Number rank, integers and doubles compare on the real number
// line (NaN first), so Compare may report values equal that Equal
// distinguishes.
func Compare(a, b Value) int {
	ta, tb := a.TypeOrder(), b.TypeOrder()
	if ta != tb {
		return compareInt(int(ta), int(tb))
	}
	switch ta {
	case TypeOrderNull:
		return 0
	case TypeOrderBoolean:
		return compareBool(scalarProto(a).GetBooleanValue(), scalarProto(b).GetBooleanValue())
	case TypeOrderNumber:
		return compareNumbers(scalarProto(a), scalarProto(b))
	case TypeOrderTimestamp:
		return compareTimestamps(scalarProto(a).GetTimestampValue(), scalarProto(b).GetTimestampValue())
	case TypeOrderServerTimestamp:
		// Pending server timestamps order among themselves by the time
		// the local write was made.
		return compareTimestamps(LocalWriteTime(a), LocalWriteTime(b))
	case TypeOrderString:
		return compareStrings(scalarProto(a).GetStringValue(), scalarProto(b).GetStringValue())
	case TypeOrderBlob:
		return bytes.Compare(scalarProto(a).GetBytesValue(), scalarProto(b).GetBytesValue())
	case TypeOrderReference:
		return compareReferences(scalarProto(a).GetReferenceValue(), scalarProto(b).GetReferenceValue())
	case TypeOrderGeoPoint:
		ga, gb := scalarProto(a).GetGeoPointValue(), scalarProto(b).GetGeoPointValue()
		if c := compareDoubles(ga.GetLatitude(), gb.GetLatitude()); c != 0 {
			return c
		}
		return compareDoubles(ga.GetLongitude(), gb.GetLongitude())
	case TypeOrderArray:
		return compareArrays(scalarProto(a).GetArrayValue(), scalarProto(b).GetArrayValue())
	case TypeOrderObject:
		return compareObjects(a.(Object), b.(Object))
	}
	panic("value: unknown type order")
}

// Equal reports whether a and b are the same value. Equal is strictly finer
// than Compare: an integer and a double never compare Equal even when
// numerically identical, and doubles are compared by bit pattern, so
// -0.0 != 0.0 and NaN == NaN.
func Equal(a, b Value) bool {
	ta := a.TypeOrder()
	if ta != b.TypeOrder() {
		return false
	}
	switch ta {
	case TypeOrderNull:
		return true
	case TypeOrderNumber:
		return numbersEqual(scalarProto(a), scalarProto(b))
	case TypeOrderArray:
		return arraysEqual(scalarProto(a).GetArrayValue(), scalarProto(b).GetArrayValue())
	case TypeOrderServerTimestamp, TypeOrderObject:
		return objectsEqual(a.(Object), b.(Object))
	default:
		return proto.Equal(scalarProto(a), scalarProto(b))
	}
}

// scalarProto returns the proto backing a non-overlay value. All callers
// hold values whose rank guarantees a proto-backed representation.
func scalarProto(v Value) *pb.Value {
	return mustProto(v)
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareBool(a, b bool) int {
	switch {
	case !a && b:
		return -1
	case a && !b:
		return 1
	default:
		return 0
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// compareDoubles is compareFloat with NaN ordered before every other value,
// so components that may hold NaN still obey the total order.
func compareDoubles(a, b float64) int {
	aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return -1
	case bNaN:
		return 1
	}
	return compareFloat(a, b)
}

// compareStrings orders strings by UTF-16 code unit, the order the backend
// indexes by. It agrees with byte order except for supplementary-plane
// runes, which sort between U+D7FF and U+E000.
func compareStrings(a, b string) int {
	for len(a) > 0 && len(b) > 0 {
		ra, na := utf8.DecodeRuneInString(a)
		rb, nb := utf8.DecodeRuneInString(b)
		if ra != rb {
			return compareInt(utf16Key(ra), utf16Key(rb))
		}
		a, b = a[na:], b[nb:]
	}
	return compareInt(len(a), len(b))
}

// utf16Key maps a rune to an integer whose natural order matches UTF-16
// code-unit order: supplementary runes keep their code points, which fall
// between the low BMP range and the shifted high BMP range.
func utf16Key(r rune) int {
	if r >= 0xe000 && r <= 0xffff {
		return int(r) + 0x110000
	}
	return int(r)
}

// compareNumbers compares integers and doubles on the real number line,
// regardless of variant, without loss of precision. NaN orders before every
// other number.
func compareNumbers(x, y *pb.Value) int {
	xNaN := isNaNProto(x)
	yNaN := isNaNProto(y)
	switch {
	case xNaN && yNaN:
		return 0
	case xNaN:
		return -1
	case yNaN:
		return 1
	}
	xi, xIsInt := x.ValueType.(*pb.Value_IntegerValue)
	yi, yIsInt := y.ValueType.(*pb.Value_IntegerValue)
	if xIsInt && yIsInt {
		return compareInt64(xi.IntegerValue, yi.IntegerValue)
	}
	return toBigFloat(x).Cmp(toBigFloat(y))
}

func isNaNProto(pv *pb.Value) bool {
	d, ok := pv.ValueType.(*pb.Value_DoubleValue)
	return ok && math.IsNaN(d.DoubleValue)
}

func toBigFloat(pv *pb.Value) *big.Float {
	var f big.Float
	switch v := pv.ValueType.(type) {
	case *pb.Value_IntegerValue:
		f.SetInt64(v.IntegerValue)
	case *pb.Value_DoubleValue:
		f.SetFloat64(v.DoubleValue)
	default:
		panic("value: not a number")
	}
	return &f
}

func compareTimestamps(x, y *tspb.Timestamp) int {
	if c := compareInt64(x.GetSeconds(), y.GetSeconds()); c != 0 {
		return c
	}
	return compareInt(int(x.GetNanos()), int(y.GetNanos()))
}

// compareReferences orders resource names segment by segment, so that paths
// sort by their hierarchy rather than by the raw string (a shorter path
// sorts before its extensions).
func compareReferences(x, y string) int {
	xs := strings.Split(x, "/")
	ys := strings.Split(y, "/")
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	for i := 0; i < n; i++ {
		if c := strings.Compare(xs[i], ys[i]); c != 0 {
			return c
		}
	}
	return compareInt(len(xs), len(ys))
}

func compareArrays(x, y *pb.ArrayValue) int {
	xs, ys := x.GetValues(), y.GetValues()
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	for i := 0; i < n; i++ {
		if c := Compare(FromProto(xs[i]), FromProto(ys[i])); c != 0 {
			return c
		}
	}
	return compareInt(len(xs), len(ys))
}

func compareObjects(x, y Object) int {
	xit, yit := x.Fields(), y.Fields()
	xe, xok := xit.Next()
	ye, yok := yit.Next()
	for xok && yok {
		if c := strings.Compare(xe.Key, ye.Key); c != 0 {
			return c
		}
		if c := Compare(xe.Value, ye.Value); c != 0 {
			return c
		}
		xe, xok = xit.Next()
		ye, yok = yit.Next()
	}
	// Only equal if both objects are exhausted.
	switch {
	case xok:
		return 1
	case yok:
		return -1
	default:
		return 0
	}
}

func numbersEqual(x, y *pb.Value) bool {
	xi, xIsInt := x.ValueType.(*pb.Value_IntegerValue)
	yi, yIsInt := y.ValueType.(*pb.Value_IntegerValue)
	if xIsInt && yIsInt {
		return xi.IntegerValue == yi.IntegerValue
	}
	xd, xIsDouble := x.ValueType.(*pb.Value_DoubleValue)
	yd, yIsDouble := y.ValueType.(*pb.Value_DoubleValue)
	if xIsDouble && yIsDouble {
		if math.IsNaN(xd.DoubleValue) && math.IsNaN(yd.DoubleValue) {
			return true
		}
		return math.Float64bits(xd.DoubleValue) == math.Float64bits(yd.DoubleValue)
	}
	return false
}

func arraysEqual(x, y *pb.ArrayValue) bool {
	xs, ys := x.GetValues(), y.GetValues()
	if len(xs) != len(ys) {
		return false
	}
	for i := range xs {
		if !Equal(FromProto(xs[i]), FromProto(ys[i])) {
			return false
		}
	}
	return true
}

func objectsEqual(x, y Object) bool {
	xit, yit := x.Fields(), y.Fields()
	xe, xok := xit.Next()
	ye, yok := yit.Next()
	for xok && yok {
		if xe.Key != ye.Key || !Equal(xe.Value, ye.Value) {
			return false
		}
		xe, xok = xit.Next()
		ye, yok = yit.Next()
	}
	return !xok && !yok
}
