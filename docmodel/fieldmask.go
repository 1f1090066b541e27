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

package docmodel

import (
	"sort"
	"strings"
)

// A FieldMask is the set of field paths explicitly written in a document.
// The write protocol layer uses it to build partial-update requests.
//
// Paths are held in canonical form: sorted and de-duplicated.
type FieldMask struct {
	paths []FieldPath
}

// NewFieldMask returns a FieldMask containing the given paths.
func NewFieldMask(paths ...FieldPath) FieldMask {
	sorted := make([]FieldPath, len(paths))
	copy(sorted, paths)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Compare(sorted[j]) < 0 })
	out := sorted[:0]
	for _, p := range sorted {
		if len(out) == 0 || out[len(out)-1].Compare(p) != 0 {
			out = append(out, p)
		}
	}
	return FieldMask{paths: out}
}

// Len returns the number of paths in the mask.
func (m FieldMask) Len() int { return len(m.paths) }

// Paths returns the mask's paths in canonical order. The caller must not
// modify the returned slice.
func (m FieldMask) Paths() []FieldPath { return m.paths }

// Covers reports whether the mask contains fp or a prefix of fp. A write
// that includes the mask overwrites every covered path.
func (m FieldMask) Covers(fp FieldPath) bool {
	for _, p := range m.paths {
		if p.IsPrefixOf(fp) {
			return true
		}
	}
	return false
}

// Equal reports whether two masks contain the same paths.
func (m FieldMask) Equal(other FieldMask) bool {
	if len(m.paths) != len(other.paths) {
		return false
	}
	for i, p := range m.paths {
		if p.Compare(other.paths[i]) != 0 {
			return false
		}
	}
	return true
}

func (m FieldMask) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, p := range m.paths {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.String())
	}
	b.WriteByte('}')
	return b.String()
}
