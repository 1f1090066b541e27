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

// Package docmodel defines the identity and addressing types of the document
// model: field paths into a document, field masks describing partial writes,
// and the database/document identifiers embedded in reference values.
package docmodel

import (
	"strings"

	"firedoc.dev/internal/fderr"
)

// A FieldPath is an ordered sequence of field names addressing a (possibly
// nested) location inside a document. The empty path addresses the document
// itself.
//
// A FieldPath is immutable: PopFirst and Append return new paths that share
// the receiver's backing array but never modify it.
type FieldPath []string

// NewFieldPath returns a FieldPath with the given segments. It panics if any
// segment is empty; that is a bug in the caller.
func NewFieldPath(segments ...string) FieldPath {
	for _, s := range segments {
		if s == "" {
			panic("docmodel: empty segment in field path")
		}
	}
	return FieldPath(segments)
}

// ParseFieldPath parses a dot-separated field path like "a.b.c".
func ParseFieldPath(s string) (FieldPath, error) {
	if s == "" {
		return nil, fderr.Newf(fderr.InvalidArgument, nil, "empty field path")
	}
	segments := strings.Split(s, ".")
	for _, seg := range segments {
		if seg == "" {
			return nil, fderr.Newf(fderr.InvalidArgument, nil, "field path %q contains an empty segment", s)
		}
	}
	return FieldPath(segments), nil
}

// IsEmpty reports whether the path has no segments.
func (fp FieldPath) IsEmpty() bool { return len(fp) == 0 }

// First returns the path's first segment. It panics on the empty path.
func (fp FieldPath) First() string { return fp[0] }

// PopFirst returns the path without its first segment. It panics on the
// empty path.
func (fp FieldPath) PopFirst() FieldPath { return fp[1:] }

// Append returns a new path with suffix's segments appended to fp's.
func (fp FieldPath) Append(suffix FieldPath) FieldPath {
	out := make(FieldPath, 0, len(fp)+len(suffix))
	out = append(out, fp...)
	return append(out, suffix...)
}

// Child returns a new path with one segment appended.
func (fp FieldPath) Child(segment string) FieldPath {
	return fp.Append(FieldPath{segment})
}

// IsPrefixOf reports whether fp is a prefix of (or equal to) other.
func (fp FieldPath) IsPrefixOf(other FieldPath) bool {
	if len(fp) > len(other) {
		return false
	}
	for i, seg := range fp {
		if other[i] != seg {
			return false
		}
	}
	return true
}

// Equal reports whether fp and other have the same segments.
func (fp FieldPath) Equal(other FieldPath) bool {
	return len(fp) == len(other) && fp.IsPrefixOf(other)
}

// Compare orders paths segment-by-segment, shorter-on-common-prefix first.
// It returns -1, 0 or 1.
func (fp FieldPath) Compare(other FieldPath) int {
	n := len(fp)
	if len(other) < n {
		n = len(other)
	}
	for i := 0; i < n; i++ {
		if c := strings.Compare(fp[i], other[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(fp) < len(other):
		return -1
	case len(fp) > len(other):
		return 1
	default:
		return 0
	}
}

// String returns the dot-separated form of the path.
func (fp FieldPath) String() string { return strings.Join(fp, ".") }
