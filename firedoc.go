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

// Package firedoc contains the document value model used by a
// Firestore-compatible document database client: an immutable typed
// representation of nested field data, a total order over that data that
// matches the server's sort semantics, and a copy-on-write overlay for
// layering pending local edits onto a base document.
//
// The model lives in firedoc.dev/docmodel and firedoc.dev/docmodel/value.
// Conversion of model values into application-native Go structures is in
// firedoc.dev/docmodel/userdata.
package firedoc // import "firedoc.dev"
