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

// Package value implements the document value model: an immutable typed
// representation of field data, the canonical total order over it, and a
// copy-on-write overlay for pending edits.
//
// Values wrap the database's wire protos. They are never mutated after
// construction; every "mutating" operation returns a new value that shares
// unchanged substructure with its input, so values may be freely shared
// across goroutines.
package value

import (
	"fmt"
	"time"

	"github.com/golang/protobuf/ptypes"
	tspb "github.com/golang/protobuf/ptypes/timestamp"
	pb "google.golang.org/genproto/googleapis/firestore/v1"
	"google.golang.org/genproto/googleapis/type/latlng"
)

// TypeOrder is the ordering rank of a value's type. Values of different
// ranks always order by rank; values of the same rank order by payload.
// Integers and doubles share the Number rank. Pending server timestamps
// rank after all concrete timestamps.
type TypeOrder int

const (
	TypeOrderNull TypeOrder = iota
	TypeOrderBoolean
	TypeOrderNumber
	TypeOrderTimestamp
	TypeOrderServerTimestamp
	TypeOrderString
	TypeOrderBlob
	TypeOrderReference
	TypeOrderGeoPoint
	TypeOrderArray
	TypeOrderObject
)

// A Value is a single immutable field value. The concrete types are Scalar,
// ObjectValue and OverlayObject; no other implementations exist.
type Value interface {
	// TypeOrder returns the value's ordering rank.
	TypeOrder() TypeOrder

	isValue()
}

// A Scalar is any non-map value: null, boolean, number, timestamp, string,
// bytes, reference, geo point or array. It wraps exactly one wire proto.
type Scalar struct {
	pv *pb.Value
}

func (s Scalar) isValue() {}

// TypeOrder returns the scalar's ordering rank.
func (s Scalar) TypeOrder() TypeOrder { return typeOrderOf(s.pv) }

// Proto returns the scalar's wire representation. The caller must not
// modify it.
func (s Scalar) Proto() *pb.Value { return s.pv }

// FromProto wraps a decoded wire proto in a Value: an ObjectValue if the
// proto is a map, a Scalar otherwise. It panics if pv is nil or has no
// variant set; the decoder never produces such protos.
func FromProto(pv *pb.Value) Value {
	assertf(pv != nil && pv.ValueType != nil, "FromProto called with an empty proto")
	if _, ok := pv.ValueType.(*pb.Value_MapValue); ok {
		return ObjectValue{pv: pv}
	}
	return Scalar{pv: pv}
}

func typeOrderOf(pv *pb.Value) TypeOrder {
	switch pv.ValueType.(type) {
	case *pb.Value_NullValue:
		return TypeOrderNull
	case *pb.Value_BooleanValue:
		return TypeOrderBoolean
	case *pb.Value_IntegerValue:
		return TypeOrderNumber
	case *pb.Value_DoubleValue:
		return TypeOrderNumber
	case *pb.Value_TimestampValue:
		return TypeOrderTimestamp
	case *pb.Value_StringValue:
		return TypeOrderString
	case *pb.Value_BytesValue:
		return TypeOrderBlob
	case *pb.Value_ReferenceValue:
		return TypeOrderReference
	case *pb.Value_GeoPointValue:
		return TypeOrderGeoPoint
	case *pb.Value_ArrayValue:
		return TypeOrderArray
	case *pb.Value_MapValue:
		if isServerTimestampProto(pv) {
			return TypeOrderServerTimestamp
		}
		return TypeOrderObject
	}
	panic(fmt.Sprintf("value: proto with unknown variant %T", pv.ValueType))
}

var nullProto = &pb.Value{ValueType: &pb.Value_NullValue{}}

// Null returns the null value.
func Null() Value { return Scalar{pv: nullProto} }

// Boolean returns a boolean value.
func Boolean(b bool) Value {
	return Scalar{pv: &pb.Value{ValueType: &pb.Value_BooleanValue{BooleanValue: b}}}
}

// Integer returns a 64-bit integer value. Integers and doubles are distinct
// variants even when numerically equal.
func Integer(i int64) Value {
	return Scalar{pv: &pb.Value{ValueType: &pb.Value_IntegerValue{IntegerValue: i}}}
}

// Double returns an IEEE-754 double value.
func Double(f float64) Value {
	return Scalar{pv: &pb.Value{ValueType: &pb.Value_DoubleValue{DoubleValue: f}}}
}

// String returns a string value.
func String(s string) Value {
	return Scalar{pv: &pb.Value{ValueType: &pb.Value_StringValue{StringValue: s}}}
}

// Bytes returns a byte-blob value. The caller must not modify b afterwards.
func Bytes(b []byte) Value {
	return Scalar{pv: &pb.Value{ValueType: &pb.Value_BytesValue{BytesValue: b}}}
}

// Timestamp returns a timestamp value for t. It panics if t is outside the
// range representable by the wire format.
func Timestamp(t time.Time) Value {
	ts, err := ptypes.TimestampProto(t)
	if err != nil {
		panic(fmt.Sprintf("value: time out of range: %v", err))
	}
	return TimestampProto(ts)
}

// TimestampProto returns a timestamp value for a wire timestamp.
func TimestampProto(ts *tspb.Timestamp) Value {
	return Scalar{pv: &pb.Value{ValueType: &pb.Value_TimestampValue{TimestampValue: ts}}}
}

// GeoPoint returns a geographic point value.
func GeoPoint(latitude, longitude float64) Value {
	return Scalar{pv: &pb.Value{ValueType: &pb.Value_GeoPointValue{
		GeoPointValue: &latlng.LatLng{Latitude: latitude, Longitude: longitude},
	}}}
}

// Reference returns a document reference value. name is a full resource
// name like "projects/P/databases/D/documents/coll/doc".
func Reference(name string) Value {
	return Scalar{pv: &pb.Value{ValueType: &pb.Value_ReferenceValue{ReferenceValue: name}}}
}

// Array returns an array value of the given elements, in order.
func Array(elems ...Value) Value {
	vs := make([]*pb.Value, len(elems))
	for i, e := range elems {
		vs[i] = mustProto(e)
	}
	return Scalar{pv: &pb.Value{ValueType: &pb.Value_ArrayValue{
		ArrayValue: &pb.ArrayValue{Values: vs},
	}}}
}

// Map returns a map value with the given fields.
func Map(fields map[string]Value) ObjectValue {
	m := make(map[string]*pb.Value, len(fields))
	for k, v := range fields {
		m[k] = mustProto(v)
	}
	return ObjectValue{pv: &pb.Value{ValueType: &pb.Value_MapValue{
		MapValue: &pb.MapValue{Fields: m},
	}}}
}

// mustProto returns the wire proto backing v. Overlay objects have no
// single proto until their edits are applied, so embedding one is a bug in
// the caller.
func mustProto(v Value) *pb.Value {
	switch v := v.(type) {
	case Scalar:
		return v.pv
	case ObjectValue:
		return v.pv
	default:
		panic(fmt.Sprintf("value: cannot embed %T with pending edits", v))
	}
}

func assertf(cond bool, format string, args ...interface{}) {
	if !cond {
		panic("value: " + fmt.Sprintf(format, args...))
	}
}
