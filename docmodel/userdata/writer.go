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

// Package userdata converts document model values into the native Go
// structures exposed to application code: maps, slices, primitives and a
// few typed wrappers.
package userdata

import (
	"github.com/golang/glog"
	"github.com/golang/protobuf/ptypes"
	tspb "github.com/golang/protobuf/ptypes/timestamp"
	pb "google.golang.org/genproto/googleapis/firestore/v1"

	"firedoc.dev/docmodel"
	"firedoc.dev/docmodel/value"
	"firedoc.dev/internal/fderr"
)

// ServerTimestampBehavior controls how pending server timestamps convert.
type ServerTimestampBehavior int

const (
	// ServerTimestampNone converts a pending server timestamp to nil.
	ServerTimestampNone ServerTimestampBehavior = iota

	// ServerTimestampPrevious converts a pending server timestamp to the
	// value the field held before the pending write, or nil if it held
	// none.
	ServerTimestampPrevious

	// ServerTimestampEstimate converts a pending server timestamp to the
	// local time of the write, as a best-effort estimate of the value the
	// server will assign.
	ServerTimestampEstimate
)

// Options configures a Writer.
type Options struct {
	// ServerTimestamps is the conversion policy for pending server
	// timestamps. The default suppresses them.
	ServerTimestamps ServerTimestampBehavior

	// ProtoTimestamps causes timestamp values to convert to
	// *timestamp.Timestamp instead of time.Time.
	ProtoTimestamps bool
}

// A Writer converts model values into native Go structures on behalf of one
// database. Maps convert to map[string]interface{}, arrays to
// []interface{}, bytes to []byte, geo points to *latlng.LatLng, references
// to *DocumentRef, and primitives to the corresponding Go type.
type Writer struct {
	db   docmodel.DatabaseID
	opts Options
}

// A DocumentRef is the application-facing handle for a reference value:
// a document key bound to the database the reference was read from.
type DocumentRef struct {
	Key      docmodel.DocumentKey
	Database docmodel.DatabaseID
}

// NewWriter returns a Writer bound to db. opts may be nil for defaults.
func NewWriter(db docmodel.DatabaseID, opts *Options) *Writer {
	w := &Writer{db: db}
	if opts != nil {
		w.opts = *opts
	}
	return w
}

// Convert recursively converts v to native Go structures.
func (w *Writer) Convert(v value.Value) (interface{}, error) {
	if value.IsServerTimestamp(v) {
		return w.convertServerTimestamp(v)
	}
	if obj, ok := v.(value.Object); ok {
		return w.convertObject(obj)
	}
	return w.convertScalar(v.(value.Scalar).Proto())
}

func (w *Writer) convertObject(obj value.Object) (map[string]interface{}, error) {
	result := map[string]interface{}{}
	for it := obj.Fields(); ; {
		e, ok := it.Next()
		if !ok {
			break
		}
		x, err := w.Convert(e.Value)
		if err != nil {
			return nil, err
		}
		result[e.Key] = x
	}
	return result, nil
}

func (w *Writer) convertServerTimestamp(v value.Value) (interface{}, error) {
	switch w.opts.ServerTimestamps {
	case ServerTimestampPrevious:
		prev, ok := value.PreviousValue(v)
		if !ok {
			return nil, nil
		}
		return w.Convert(prev)
	case ServerTimestampEstimate:
		return w.convertTimestamp(value.LocalWriteTime(v))
	default:
		return nil, nil
	}
}

func (w *Writer) convertScalar(pv *pb.Value) (interface{}, error) {
	switch v := pv.ValueType.(type) {
	case *pb.Value_NullValue:
		return nil, nil
	case *pb.Value_BooleanValue:
		return v.BooleanValue, nil
	case *pb.Value_IntegerValue:
		return v.IntegerValue, nil
	case *pb.Value_DoubleValue:
		return v.DoubleValue, nil
	case *pb.Value_TimestampValue:
		return w.convertTimestamp(v.TimestampValue)
	case *pb.Value_StringValue:
		return v.StringValue, nil
	case *pb.Value_BytesValue:
		return v.BytesValue, nil
	case *pb.Value_ReferenceValue:
		return w.convertReference(v.ReferenceValue)
	case *pb.Value_GeoPointValue:
		return v.GeoPointValue, nil
	case *pb.Value_ArrayValue:
		result := make([]interface{}, len(v.ArrayValue.GetValues()))
		for i, e := range v.ArrayValue.GetValues() {
			x, err := w.Convert(value.FromProto(e))
			if err != nil {
				return nil, err
			}
			result[i] = x
		}
		return result, nil
	default:
		return nil, fderr.Newf(fderr.Internal, nil, "unknown value type %T", v)
	}
}

func (w *Writer) convertTimestamp(ts *tspb.Timestamp) (interface{}, error) {
	if w.opts.ProtoTimestamps {
		return ts, nil
	}
	t, err := ptypes.Timestamp(ts)
	if err != nil {
		return nil, fderr.Newf(fderr.Internal, err, "invalid timestamp value")
	}
	return t, nil
}

// convertReference converts a reference value to a *DocumentRef bound to
// the writer's database. A reference into a different database is not
// supported; it converts as if it referred to the writer's database, with a
// warning. This is a documented lossy policy, not an error.
func (w *Writer) convertReference(name string) (interface{}, error) {
	refDB, key, err := docmodel.ParseReference(name)
	if err != nil {
		return nil, err
	}
	if refDB != w.db {
		glog.Warningf(
			"Document %v contains a reference within a different database (%v) "+
				"which is not supported. It will be treated as a reference in "+
				"the current database (%v) instead.",
			key, refDB, w.db)
	}
	return &DocumentRef{Key: key, Database: w.db}, nil
}
