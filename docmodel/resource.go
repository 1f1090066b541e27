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
	"fmt"
	"regexp"
	"strings"

	"firedoc.dev/internal/fderr"
)

// DefaultDatabase is the database name the service uses when none is chosen.
const DefaultDatabase = "(default)"

// A DatabaseID identifies a database: a project plus a database name within
// the project.
type DatabaseID struct {
	ProjectID string
	Database  string
}

// NewDatabaseID returns the DatabaseID for the given project and database.
// An empty database means the default database.
func NewDatabaseID(projectID, database string) DatabaseID {
	if database == "" {
		database = DefaultDatabase
	}
	return DatabaseID{ProjectID: projectID, Database: database}
}

// ResourceName returns the database's resource name,
// e.g. "projects/P/databases/(default)".
func (d DatabaseID) ResourceName() string {
	return fmt.Sprintf("projects/%s/databases/%s", d.ProjectID, d.Database)
}

func (d DatabaseID) String() string { return d.ResourceName() }

// A DocumentKey is the slash-separated path of a document relative to the
// database, e.g. "States/Wisconsin/cities/Madison". It always has an even
// number of segments: collection IDs alternate with document IDs.
type DocumentKey struct {
	path []string
}

// NewDocumentKey returns the key for the given relative path. The path must
// be non-empty, have an even number of segments and no empty segments.
func NewDocumentKey(path string) (DocumentKey, error) {
	segments := strings.Split(path, "/")
	if len(segments)%2 != 0 {
		return DocumentKey{}, fderr.Newf(fderr.InvalidArgument, nil,
			"document path %q must point to a document, not a collection", path)
	}
	for _, s := range segments {
		if s == "" {
			return DocumentKey{}, fderr.Newf(fderr.InvalidArgument, nil,
				"document path %q contains an empty segment", path)
		}
	}
	return DocumentKey{path: segments}, nil
}

// Path returns the key's slash-separated relative path.
func (k DocumentKey) Path() string { return strings.Join(k.path, "/") }

// CollectionID returns the ID of the document's immediate parent collection.
func (k DocumentKey) CollectionID() string { return k.path[len(k.path)-2] }

// DocumentID returns the final path segment.
func (k DocumentKey) DocumentID() string { return k.path[len(k.path)-1] }

// Equal reports whether two keys name the same document.
func (k DocumentKey) Equal(other DocumentKey) bool {
	if len(k.path) != len(other.path) {
		return false
	}
	for i, s := range k.path {
		if other.path[i] != s {
			return false
		}
	}
	return true
}

func (k DocumentKey) String() string { return k.Path() }

// Reference values hold a full document resource name,
// e.g. "projects/P/databases/(default)/documents/coll/doc".
var resourceNameRE = regexp.MustCompile(`^projects/([^/]+)/databases/([^/]+)/documents/(.+)$`)

// ParseReference splits a document resource name into the database it
// belongs to and the document's key within that database.
func ParseReference(name string) (DatabaseID, DocumentKey, error) {
	matches := resourceNameRE.FindStringSubmatch(name)
	if matches == nil {
		return DatabaseID{}, DocumentKey{}, fderr.Newf(fderr.InvalidArgument, nil,
			"bad document resource name %q; must match %v", name, resourceNameRE)
	}
	key, err := NewDocumentKey(matches[3])
	if err != nil {
		return DatabaseID{}, DocumentKey{}, err
	}
	return DatabaseID{ProjectID: matches[1], Database: matches[2]}, key, nil
}

// ReferenceName builds the document resource name for a key in a database.
func ReferenceName(db DatabaseID, key DocumentKey) string {
	return db.ResourceName() + "/documents/" + key.Path()
}
