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
	"time"

	tspb "github.com/golang/protobuf/ptypes/timestamp"
	pb "google.golang.org/genproto/googleapis/firestore/v1"
)

// A field written with the server-timestamp transform holds a sentinel map
// value until the server assigns the real timestamp. The sentinel records
// the local wall-clock time of the write and, when the field previously
// held a value, that value.
const (
	sentinelTypeKey     = "__type__"
	serverTimestampType = "server_timestamp"
	localWriteTimeKey   = "__local_write_time__"
	previousValueKey    = "__previous_value__"
)

// ServerTimestamp returns the sentinel value for a pending server
// timestamp written at localWriteTime. previous is the value the field held
// before the write, or nil if it held none.
func ServerTimestamp(localWriteTime time.Time, previous Value) Value {
	fields := map[string]Value{
		sentinelTypeKey:   String(serverTimestampType),
		localWriteTimeKey: Timestamp(localWriteTime),
	}
	if previous != nil {
		fields[previousValueKey] = previous
	}
	return Map(fields)
}

// IsServerTimestamp reports whether v is a pending server timestamp.
func IsServerTimestamp(v Value) bool {
	obj, ok := v.(Object)
	if !ok {
		return false
	}
	tv, ok := obj.Get([]string{sentinelTypeKey})
	if !ok {
		return false
	}
	s, ok := tv.(Scalar)
	return ok && s.pv.GetStringValue() == serverTimestampType
}

// isServerTimestampProto is the proto-level form of IsServerTimestamp,
// used while ranking raw map protos.
func isServerTimestampProto(pv *pb.Value) bool {
	tv := pv.GetMapValue().GetFields()[sentinelTypeKey]
	return tv.GetStringValue() == serverTimestampType
}

// LocalWriteTime returns the local write time of a pending server
// timestamp. Calling it on any other value is a bug in the caller.
func LocalWriteTime(v Value) *tspb.Timestamp {
	assertf(IsServerTimestamp(v), "LocalWriteTime called on a non-server-timestamp value")
	tv, _ := v.(Object).Get([]string{localWriteTimeKey})
	s, ok := tv.(Scalar)
	assertf(ok && s.pv.GetTimestampValue() != nil, "server timestamp sentinel has no local write time")
	return s.pv.GetTimestampValue()
}

// PreviousValue returns the value the field held before the pending write,
// unwrapping chains of pending writes, or false if it held none.
func PreviousValue(v Value) (Value, bool) {
	assertf(IsServerTimestamp(v), "PreviousValue called on a non-server-timestamp value")
	prev, ok := v.(Object).Get([]string{previousValueKey})
	if !ok {
		return nil, false
	}
	if IsServerTimestamp(prev) {
		return PreviousValue(prev)
	}
	return prev, true
}
