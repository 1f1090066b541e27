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

	"firedoc.dev/docmodel"
)

// An overlayEntry is one pending edit: a replacement value for key, or a
// tombstone (nil val) marking the field deleted.
type overlayEntry struct {
	key string
	val Value
}

// An overlayMap is an immutable mapping from field name to pending edit,
// sorted by key. insert returns a new map; the receiver's entries are never
// modified, so overlayMaps may be shared freely.
type overlayMap struct {
	entries []overlayEntry
}

func (m overlayMap) search(key string) int {
	return sort.Search(len(m.entries), func(i int) bool { return m.entries[i].key >= key })
}

func (m overlayMap) lookup(key string) (Value, bool) {
	i := m.search(key)
	if i < len(m.entries) && m.entries[i].key == key {
		return m.entries[i].val, true
	}
	return nil, false
}

func (m overlayMap) insert(key string, val Value) overlayMap {
	i := m.search(key)
	if i < len(m.entries) && m.entries[i].key == key {
		entries := make([]overlayEntry, len(m.entries))
		copy(entries, m.entries)
		entries[i] = overlayEntry{key: key, val: val}
		return overlayMap{entries: entries}
	}
	entries := make([]overlayEntry, 0, len(m.entries)+1)
	entries = append(entries, m.entries[:i]...)
	entries = append(entries, overlayEntry{key: key, val: val})
	entries = append(entries, m.entries[i:]...)
	return overlayMap{entries: entries}
}

// An OverlayObject is an ObjectValue with a sparse set of pending
// field-level edits layered non-destructively on top of it. Edits never
// touch the base: Set and Delete allocate a new overlay node and return it,
// leaving every previously obtained value unchanged.
//
// Overlay keys are always single segments; an edit beneath a nested path
// recurses into a child OverlayObject instead of storing a dotted key.
type OverlayObject struct {
	base     ObjectValue
	overlays overlayMap
}

// NewOverlayObject returns an overlay with no pending edits over base.
func NewOverlayObject(base ObjectValue) OverlayObject {
	return OverlayObject{base: base}
}

func (m OverlayObject) isValue() {}

// TypeOrder returns the object's ordering rank.
func (m OverlayObject) TypeOrder() TypeOrder {
	if IsServerTimestamp(m) {
		return TypeOrderServerTimestamp
	}
	return TypeOrderObject
}

// Get implements Object. Overlaid fields win over base fields; tombstoned
// fields are absent.
func (m OverlayObject) Get(path docmodel.FieldPath) (Value, bool) {
	if path.IsEmpty() {
		return m, true
	}
	if v, ok := m.overlays.lookup(path.First()); ok {
		if v == nil {
			return nil, false // tombstone
		}
		if len(path) == 1 {
			return v, true
		}
		if obj, ok := v.(Object); ok {
			return obj.Get(path.PopFirst())
		}
		return nil, false // cannot descend through a non-map overlay value
	}
	return m.base.Get(path)
}

// Set implements Object.
func (m OverlayObject) Set(path docmodel.FieldPath, v Value) OverlayObject {
	assertf(!path.IsEmpty(), "Set called with an empty path")
	childName := path.First()
	if len(path) == 1 {
		return m.setChild(childName, v)
	}
	child, _ := m.Get(docmodel.FieldPath{childName})
	overlay, ok := child.(OverlayObject)
	if !ok {
		// Wrap a plain map child, or start from an empty map when the
		// child is missing or a primitive.
		base := emptyObject
		if obj, ok := child.(ObjectValue); ok {
			base = obj
		}
		overlay = NewOverlayObject(base)
	}
	return m.setChild(childName, overlay.Set(path.PopFirst(), v))
}

// Delete implements Object.
func (m OverlayObject) Delete(path docmodel.FieldPath) OverlayObject {
	assertf(!path.IsEmpty(), "Delete called with an empty path")
	childName := path.First()
	if len(path) == 1 {
		return m.setChild(childName, nil)
	}
	child, _ := m.Get(docmodel.FieldPath{childName})
	switch child := child.(type) {
	case OverlayObject:
		return m.setChild(childName, child.Delete(path.PopFirst()))
	case ObjectValue:
		return m.setChild(childName, NewOverlayObject(child).Delete(path.PopFirst()))
	default:
		// Deleting beneath a missing or primitive field never fabricates
		// structure.
		return m
	}
}

func (m OverlayObject) setChild(childName string, v Value) OverlayObject {
	return OverlayObject{base: m.base, overlays: m.overlays.insert(childName, v)}
}

// Fields implements Object. It merges the base's sorted fields with the
// sorted overlay entries in a single pass: an overlay entry overrides the
// base entry with the same key, and tombstoned keys are suppressed. The
// merged document is never materialized.
func (m OverlayObject) Fields() *FieldIterator {
	fields := m.base.pv.GetMapValue().GetFields()
	keys := sortedKeys(fields)
	entries := m.overlays.entries

	var (
		ki, oi   int
		baseKey  string
		haveBase bool
		ov       overlayEntry
		haveOv   bool
	)
	peek := func() {
		for {
			if !haveBase && ki < len(keys) {
				baseKey = keys[ki]
				haveBase = true
				ki++
			}
			if !haveOv && oi < len(entries) {
				ov = entries[oi]
				haveOv = true
				oi++
			}
			if haveOv && ov.val == nil {
				// A tombstone deletes the matching base entry; a tombstone
				// with no base entry is a no-op either way.
				if haveBase && baseKey == ov.key {
					haveBase = false
					haveOv = false
					continue
				}
				if !haveBase || ov.key < baseKey {
					haveOv = false
					continue
				}
			}
			return
		}
	}
	next := func() (FieldEntry, bool) {
		peek()
		switch {
		case haveBase && haveOv:
			if baseKey < ov.key {
				e := FieldEntry{Key: baseKey, Value: FromProto(fields[baseKey])}
				haveBase = false
				return e, true
			}
			e := FieldEntry{Key: ov.key, Value: ov.val}
			if baseKey == ov.key {
				haveBase = false
			}
			haveOv = false
			return e, true
		case haveBase:
			e := FieldEntry{Key: baseKey, Value: FromProto(fields[baseKey])}
			haveBase = false
			return e, true
		case haveOv:
			e := FieldEntry{Key: ov.key, Value: ov.val}
			haveOv = false
			return e, true
		default:
			return FieldEntry{}, false
		}
	}
	return &FieldIterator{next: next}
}

// FieldMask implements Object.
func (m OverlayObject) FieldMask() docmodel.FieldMask { return fieldMaskOf(m) }
