// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package searcher

import (
	"maps"
	"slices"
	"time"
)

// Value is a scalar record property. The set of kinds is closed:
// [String], [Int], [Float], [Bool] and [Timestamp].
type Value interface {
	// Any returns the underlying Go value.
	Any() any

	isValue()
}

// String is a string property value.
type String string

// Int is an integer property value.
type Int int64

// Float is a floating point property value.
type Float float64

// Bool is a boolean property value.
type Bool bool

// Timestamp is a point-in-time property value.
type Timestamp time.Time

func (v String) Any() any    { return string(v) }
func (v Int) Any() any       { return int64(v) }
func (v Float) Any() any     { return float64(v) }
func (v Bool) Any() any      { return bool(v) }
func (v Timestamp) Any() any { return time.Time(v) }

// Equal reports whether v and o are the same instant.
func (v Timestamp) Equal(o Timestamp) bool { return time.Time(v).Equal(time.Time(o)) }

func (String) isValue()    {}
func (Int) isValue()       {}
func (Float) isValue()     {}
func (Bool) isValue()      {}
func (Timestamp) isValue() {}

// ValueOf converts a Go scalar into a [Value]. It reports false for unsupported types.
func ValueOf(v any) (Value, bool) {
	switch v := v.(type) {
	case Value:
		return v, true
	case string:
		return String(v), true
	case int:
		return Int(v), true
	case int32:
		return Int(v), true
	case int64:
		return Int(v), true
	case float32:
		return Float(v), true
	case float64:
		return Float(v), true
	case bool:
		return Bool(v), true
	case time.Time:
		return Timestamp(v), true
	default:
		return nil, false
	}
}

// Properties maps a property name to its value.
type Properties map[string]Value

// Names returns the property names in sorted order.
func (p Properties) Names() []string {
	return slices.Sorted(maps.Keys(p))
}

// Map returns the properties as plain Go values, suitable for JSON encoding.
// Timestamps are rendered in RFC 3339 with nanoseconds.
func (p Properties) Map() map[string]any {
	if p == nil {
		return nil
	}
	m := make(map[string]any, len(p))
	for k, v := range p {
		if ts, ok := v.(Timestamp); ok {
			m[k] = time.Time(ts).UTC().Format(time.RFC3339Nano)
			continue
		}
		m[k] = v.Any()
	}
	return m
}

// Entity is a hydrated record keyed by its search identifier.
type Entity struct {
	Key        string
	Kind       string
	Properties Properties
}
