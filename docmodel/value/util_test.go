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

// Helpers for building test values tersely.

import (
	"fmt"
	"time"

	"firedoc.dev/docmodel"
)

// wrap converts a native Go value to a model Value.
func wrap(x interface{}) Value {
	switch x := x.(type) {
	case nil:
		return Null()
	case bool:
		return Boolean(x)
	case int:
		return Integer(int64(x))
	case int64:
		return Integer(x)
	case float64:
		return Double(x)
	case string:
		return String(x)
	case []byte:
		return Bytes(x)
	case time.Time:
		return Timestamp(x)
	case []interface{}:
		elems := make([]Value, len(x))
		for i, e := range x {
			elems[i] = wrap(e)
		}
		return Array(elems...)
	case map[string]interface{}:
		return wrapObject(x)
	case Value:
		return x
	default:
		panic(fmt.Sprintf("cannot wrap %T", x))
	}
}

// wrapObject converts a native Go map to an ObjectValue.
func wrapObject(m map[string]interface{}) ObjectValue {
	fields := make(map[string]Value, len(m))
	for k, v := range m {
		fields[k] = wrap(v)
	}
	return Map(fields)
}

// mp is shorthand for a native map literal.
func mp(keysAndValues ...interface{}) map[string]interface{} {
	if len(keysAndValues)%2 != 0 {
		panic("mp: odd number of arguments")
	}
	m := map[string]interface{}{}
	for i := 0; i < len(keysAndValues); i += 2 {
		m[keysAndValues[i].(string)] = keysAndValues[i+1]
	}
	return m
}

// fp parses a dotted field path.
func fp(s string) docmodel.FieldPath {
	p, err := docmodel.ParseFieldPath(s)
	if err != nil {
		panic(err)
	}
	return p
}

// mask builds a FieldMask from dotted paths.
func mask(paths ...string) docmodel.FieldMask {
	fps := make([]docmodel.FieldPath, len(paths))
	for i, p := range paths {
		fps[i] = fp(p)
	}
	return docmodel.NewFieldMask(fps...)
}

// ref builds a reference value into the given project/database.
func ref(projectID, database, docPath string) Value {
	return Reference(fmt.Sprintf("projects/%s/databases/%s/documents/%s", projectID, database, docPath))
}

// entries drains an iterator obtained from obj.Fields.
func entries(obj Object) []FieldEntry {
	var es []FieldEntry
	for it := obj.Fields(); ; {
		e, ok := it.Next()
		if !ok {
			return es
		}
		es = append(es, e)
	}
}
