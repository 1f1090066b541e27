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
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"strings"

	pb "google.golang.org/genproto/googleapis/firestore/v1"

	"firedoc.dev/docmodel"
)

// CanonicalID returns a compact stable textual form of v. Equal values have
// equal canonical IDs regardless of map insertion order; callers use them
// as index and query-cursor keys.
func CanonicalID(v Value) string {
	var b strings.Builder
	appendCanonical(&b, v)
	return b.String()
}

func appendCanonical(b *strings.Builder, v Value) {
	if obj, ok := v.(Object); ok {
		appendCanonicalObject(b, obj)
		return
	}
	appendCanonicalProto(b, v.(Scalar).pv)
}

func appendCanonicalObject(b *strings.Builder, obj Object) {
	b.WriteByte('{')
	first := true
	for it := obj.Fields(); ; {
		e, ok := it.Next()
		if !ok {
			break
		}
		if !first {
			b.WriteByte(',')
		}
		first = false
		b.WriteString(e.Key)
		b.WriteByte(':')
		appendCanonical(b, e.Value)
	}
	b.WriteByte('}')
}

func appendCanonicalProto(b *strings.Builder, pv *pb.Value) {
	switch v := pv.ValueType.(type) {
	case *pb.Value_NullValue:
		b.WriteString("null")
	case *pb.Value_BooleanValue:
		b.WriteString(strconv.FormatBool(v.BooleanValue))
	case *pb.Value_IntegerValue:
		b.WriteString(strconv.FormatInt(v.IntegerValue, 10))
	case *pb.Value_DoubleValue:
		b.WriteString(canonicalFloat(v.DoubleValue))
	case *pb.Value_TimestampValue:
		fmt.Fprintf(b, "time(%d,%d)", v.TimestampValue.GetSeconds(), v.TimestampValue.GetNanos())
	case *pb.Value_StringValue:
		b.WriteString(v.StringValue)
	case *pb.Value_BytesValue:
		b.WriteString(hex.EncodeToString(v.BytesValue))
	case *pb.Value_ReferenceValue:
		// Use the document's path within its database; the database prefix
		// is not part of a value's identity within one database.
		if _, key, err := docmodel.ParseReference(v.ReferenceValue); err == nil {
			b.WriteString(key.Path())
		} else {
			b.WriteString(v.ReferenceValue)
		}
	case *pb.Value_GeoPointValue:
		fmt.Fprintf(b, "geo(%s,%s)",
			canonicalFloat(v.GeoPointValue.GetLatitude()),
			canonicalFloat(v.GeoPointValue.GetLongitude()))
	case *pb.Value_ArrayValue:
		b.WriteByte('[')
		for i, e := range v.ArrayValue.GetValues() {
			if i > 0 {
				b.WriteByte(',')
			}
			appendCanonical(b, FromProto(e))
		}
		b.WriteByte(']')
	case *pb.Value_MapValue:
		appendCanonicalObject(b, ObjectValue{pv: pv})
	default:
		panic(fmt.Sprintf("value: proto with unknown variant %T", v))
	}
}

// canonicalFloat always keeps a fractional part on finite values, so that
// doubles remain distinguishable from integers ("1.0" vs "1").
func canonicalFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
