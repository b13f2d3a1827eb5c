// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package searcher

import (
	"context"

	"cloud.google.com/go/discoveryengine/apiv1beta/discoveryenginepb"
)

// Result pairs the raw search pages with the hydrated records.
//
// IDs and Entities mirror the pagination of Pages: Entities[i][j] is the record for IDs[i][j],
// or nil when the store has no such record. Entities is empty when hydration was skipped.
type Result struct {
	Pages    []*discoveryenginepb.SearchResponse
	IDs      [][]string
	Entities [][]*Entity
}

// Hydrated reports whether a store lookup was performed.
func (r *Result) Hydrated() bool {
	return len(r.Entities) > 0
}

// Found returns the number of identifiers that resolved to a record.
func (r *Result) Found() int {
	n := 0
	for _, page := range r.Entities {
		for _, e := range page {
			if e != nil {
				n++
			}
		}
	}
	return n
}

// Document is the flattened, JSON-friendly view of one search match.
type Document struct {
	ID         string         `json:"id"`
	Found      bool           `json:"found"`
	Properties map[string]any `json:"properties,omitempty"`
}

// Documents is a [Processor] flattening a [Result] into one [Document] per match, in page order.
// Matches without a record keep their position with Found set to false.
// The slice is empty, not nil, when nothing matched.
func Documents(_ context.Context, res *Result) ([]Document, error) {
	docs := []Document{}
	for i, ids := range res.IDs {
		for j, id := range ids {
			doc := Document{ID: id}
			if i < len(res.Entities) && j < len(res.Entities[i]) {
				if e := res.Entities[i][j]; e != nil {
					doc.Found = true
					doc.Properties = e.Properties.Map()
				}
			}
			docs = append(docs, doc)
		}
	}
	return docs, nil
}
