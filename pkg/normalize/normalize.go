// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package normalize

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strings"
)

// EmptyMarker is what renderers print for values where IsEmpty is true.
const EmptyMarker = "(empty)"

// Normalize returns the canonical form of v used for equality testing.
func Normalize(v any) any {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case *string:
		if val == nil {
			return ""
		}
		return strings.TrimSpace(*val)
	case bool:
		return val
	case float64:
		return normalizeFloat(val)
	case float32:
		return normalizeFloat(float64(val))
	case int:
		return float64(val)
	case int8:
		return float64(val)
	case int16:
		return float64(val)
	case int32:
		return float64(val)
	case int64:
		return float64(val)
	case uint:
		return float64(val)
	case uint8:
		return float64(val)
	case uint16:
		return float64(val)
	case uint32:
		return float64(val)
	case uint64:
		return float64(val)
	case json.Number:
		if f, err := val.Float64(); err == nil {
			return normalizeFloat(f)
		}
		return strings.TrimSpace(val.String())
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = Normalize(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = Normalize(item)
		}
		return out
	default:
		return normalizeReflect(reflect.ValueOf(v))
	}
}

func normalizeFloat(f float64) any {
	if math.IsNaN(f) {
		return ""
	}
	return f
}

// normalizeReflect covers typed maps, slices and pointers that the fast path
// in Normalize does not list explicitly.
func normalizeReflect(rv reflect.Value) any {
	//nolint:exhaustive // remaining kinds are returned as-is
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return ""
		}
		return Normalize(rv.Elem().Interface())
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return rv.Interface()
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = Normalize(iter.Value().Interface())
		}
		return out
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return []any{}
		}
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = Normalize(rv.Index(i).Interface())
		}
		return out
	case reflect.String:
		return strings.TrimSpace(rv.String())
	default:
		return rv.Interface()
	}
}

// IsEmpty reports whether v normalizes to the empty string.
func IsEmpty(v any) bool {
	s, ok := Normalize(v).(string)
	return ok && s == ""
}

// Equal reports whether a and b are equal after normalization.
func Equal(a, b any) bool {
	return reflect.DeepEqual(Normalize(a), Normalize(b))
}

// Canonical returns a deterministic string encoding of the normalized value.
// Map keys are sorted.
func Canonical(v any) string {
	n := Normalize(v)
	if s, ok := n.(string); ok {
		return s
	}
	b, err := json.Marshal(n)
	if err != nil {
		return fmt.Sprintf("%v", n)
	}
	return string(b)
}

// Display returns the raw value formatted for humans, or EmptyMarker.
func Display(v any) string {
	if IsEmpty(v) {
		return EmptyMarker
	}
	switch val := v.(type) {
	case string:
		return val
	case *string:
		return *val
	case map[string]any, []any:
		b, err := json.Marshal(val)
		if err == nil {
			return string(b)
		}
	}
	return fmt.Sprintf("%v", v)
}
