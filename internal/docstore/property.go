// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package docstore

import (
	"time"

	"cloud.google.com/go/datastore"

	"github.com/go-a2a/datastore-rag/searcher"
)

// FromPropertyList converts loaded Datastore properties into [searcher.Properties].
// Properties whose type has no [searcher.Value] kind (keys, blobs, arrays, nested entities, nulls) are dropped.
func FromPropertyList(props datastore.PropertyList) searcher.Properties {
	out := make(searcher.Properties, len(props))
	for _, p := range props {
		if v, ok := searcher.ValueOf(p.Value); ok {
			out[p.Name] = v
		}
	}
	return out
}

// ToPropertyList converts props into Datastore properties in name order.
// [ContentProperty] is excluded from indexes since document bodies exceed the indexed size limit.
func ToPropertyList(props searcher.Properties) datastore.PropertyList {
	out := make(datastore.PropertyList, 0, len(props))
	for _, name := range props.Names() {
		v := props[name]
		val := v.Any()
		if ts, ok := v.(searcher.Timestamp); ok {
			val = time.Time(ts)
		}
		out = append(out, datastore.Property{
			Name:    name,
			Value:   val,
			NoIndex: name == ContentProperty,
		})
	}
	return out
}
