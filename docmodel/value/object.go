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
	"sort"

	pb "google.golang.org/genproto/googleapis/firestore/v1"

	"firedoc.dev/docmodel"
)

// An Object is read and copy-on-write access to a map value: path-addressed
// lookup, iteration in ascending key order, and derived values with fields
// set or deleted. It is implemented by ObjectValue (a plain map) and
// OverlayObject (a map with pending edits).
type Object interface {
	Value

	// Get returns the value at path, or false if no value exists there.
	// The empty path returns the object itself.
	Get(path docmodel.FieldPath) (Value, bool)

	// Set returns a new object with the value at path replaced by v,
	// creating intermediate maps as needed. The receiver is unchanged.
	// It panics on the empty path.
	Set(path docmodel.FieldPath, v Value) OverlayObject

	// Delete returns a new object without the value at path. Deleting
	// beneath a missing or non-map field is a no-op. The receiver is
	// unchanged. It panics on the empty path.
	Delete(path docmodel.FieldPath) OverlayObject

	// Fields returns a new iterator over the object's fields in ascending
	// key order.
	Fields() *FieldIterator

	// FieldMask returns the set of leaf paths that reproduces the object's
	// structure. An explicitly empty nested map contributes its own path.
	FieldMask() docmodel.FieldMask
}

// A FieldEntry is one field of an Object observed during iteration.
type FieldEntry struct {
	Key   string
	Value Value
}

// A FieldIterator yields an Object's fields in strictly ascending key
// order. Iterators are single direction and not shared; to traverse again,
// obtain a fresh iterator from Fields.
type FieldIterator struct {
	next      func() (FieldEntry, bool)
	exhausted bool
}

// Next returns the next field, or false when the iterator is exhausted.
// Calling Next again after it has reported exhaustion is a bug in the
// caller and panics.
func (it *FieldIterator) Next() (FieldEntry, bool) {
	if it.exhausted {
		panic("value: Next called on exhausted FieldIterator")
	}
	e, ok := it.next()
	if !ok {
		it.exhausted = true
	}
	return e, ok
}

// An ObjectValue is a map value: a mapping from field names to values with
// canonical (ascending key) iteration order.
type ObjectValue struct {
	pv *pb.Value // always a MapValue
}

var emptyObject = ObjectValue{pv: &pb.Value{ValueType: &pb.Value_MapValue{MapValue: &pb.MapValue{}}}}

// EmptyObject returns the canonical empty map value.
func EmptyObject() ObjectValue { return emptyObject }

// NewObjectValue wraps a map proto. Constructing an ObjectValue from any
// other variant is a bug in the caller and panics.
func NewObjectValue(pv *pb.Value) ObjectValue {
	assertf(pv != nil, "NewObjectValue called with a nil proto")
	_, ok := pv.ValueType.(*pb.Value_MapValue)
	assertf(ok, "NewObjectValue called with %T, want a map", pv.ValueType)
	return ObjectValue{pv: pv}
}

func (o ObjectValue) isValue() {}

// TypeOrder returns the object's ordering rank.
func (o ObjectValue) TypeOrder() TypeOrder { return typeOrderOf(o.pv) }

// Proto returns the object's wire representation. The caller must not
// modify it.
func (o ObjectValue) Proto() *pb.Value { return o.pv }

// Get implements Object.
func (o ObjectValue) Get(path docmodel.FieldPath) (Value, bool) {
	if path.IsEmpty() {
		return o, true
	}
	pv := o.pv.GetMapValue().GetFields()[path.First()]
	i := 1
	for ; pv != nil && isMapProto(pv) && i < len(path); i++ {
		pv = pv.GetMapValue().GetFields()[path[i]]
	}
	if pv == nil || i != len(path) {
		return nil, false
	}
	return FromProto(pv), true
}

// Set implements Object.
func (o ObjectValue) Set(path docmodel.FieldPath, v Value) OverlayObject {
	return NewOverlayObject(o).Set(path, v)
}

// Delete implements Object.
func (o ObjectValue) Delete(path docmodel.FieldPath) OverlayObject {
	return NewOverlayObject(o).Delete(path)
}

// Fields implements Object.
func (o ObjectValue) Fields() *FieldIterator {
	fields := o.pv.GetMapValue().GetFields()
	keys := sortedKeys(fields)
	i := 0
	return &FieldIterator{next: func() (FieldEntry, bool) {
		if i >= len(keys) {
			return FieldEntry{}, false
		}
		k := keys[i]
		i++
		return FieldEntry{Key: k, Value: FromProto(fields[k])}, true
	}}
}

// FieldMask implements Object.
func (o ObjectValue) FieldMask() docmodel.FieldMask { return fieldMaskOf(o) }

func isMapProto(pv *pb.Value) bool {
	_, ok := pv.ValueType.(*pb.Value_MapValue)
	return ok
}

func sortedKeys(fields map[string]*pb.Value) []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// fieldMaskOf recursively extracts the field paths set in obj.
func fieldMaskOf(obj Object) docmodel.FieldMask {
	var paths []docmodel.FieldPath
	for it := obj.Fields(); ; {
		e, ok := it.Next()
		if !ok {
			break
		}
		current := docmodel.NewFieldPath(e.Key)
		sub, isObject := e.Value.(Object)
		if !isObject || IsServerTimestamp(e.Value) {
			// A pending server timestamp is a leaf, not a map to descend
			// into.
			paths = append(paths, current)
			continue
		}
		nested := fieldMaskOf(sub)
		if nested.Len() == 0 {
			// Preserve the explicitly empty map by adding its own path.
			paths = append(paths, current)
		} else {
			for _, p := range nested.Paths() {
				paths = append(paths, current.Append(p))
			}
		}
	}
	return docmodel.NewFieldMask(paths...)
}
