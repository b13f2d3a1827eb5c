// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package searcher_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/go-a2a/datastore-rag/searcher"
)

func TestValueOf(t *testing.T) {
	t.Parallel()

	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name   string
		in     any
		want   searcher.Value
		wantOK bool
	}{
		{name: "string", in: "a", want: searcher.String("a"), wantOK: true},
		{name: "int", in: 3, want: searcher.Int(3), wantOK: true},
		{name: "int64", in: int64(4), want: searcher.Int(4), wantOK: true},
		{name: "float", in: 1.5, want: searcher.Float(1.5), wantOK: true},
		{name: "bool", in: true, want: searcher.Bool(true), wantOK: true},
		{name: "time", in: ts, want: searcher.Timestamp(ts), wantOK: true},
		{name: "value", in: searcher.Int(9), want: searcher.Int(9), wantOK: true},
		{name: "slice", in: []string{"a"}},
		{name: "nil", in: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := searcher.ValueOf(tt.in)
			if ok != tt.wantOK {
				t.Fatalf("ValueOf(%v) ok = %v, want %v", tt.in, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("ValueOf(%v) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestProperties_Map(t *testing.T) {
	t.Parallel()

	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.FixedZone("JST", 9*3600))
	props := searcher.Properties{
		"title":     searcher.String("Guide"),
		"pages":     searcher.Int(12),
		"score":     searcher.Float(0.5),
		"published": searcher.Bool(true),
		"updated":   searcher.Timestamp(ts),
	}

	want := map[string]any{
		"title":     "Guide",
		"pages":     int64(12),
		"score":     0.5,
		"published": true,
		"updated":   "2025-06-01T03:00:00Z",
	}
	if diff := cmp.Diff(want, props.Map()); diff != "" {
		t.Errorf("Map() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"pages", "published", "score", "title", "updated"}, props.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
	if got := searcher.Properties(nil).Map(); got != nil {
		t.Errorf("nil Properties.Map() = %v, want nil", got)
	}
}

func TestTimestamp_Equal(t *testing.T) {
	t.Parallel()

	utc := time.Date(2025, 6, 1, 3, 0, 0, 0, time.UTC)
	jst := utc.In(time.FixedZone("JST", 9*3600))

	if !searcher.Timestamp(utc).Equal(searcher.Timestamp(jst)) {
		t.Error("same instant in different zones is not equal")
	}
	if searcher.Timestamp(utc).Equal(searcher.Timestamp(utc.Add(time.Second))) {
		t.Error("different instants are equal")
	}

	// go-cmp relies on Equal to compare timestamps held in Properties.
	want := searcher.Properties{"updated": searcher.Timestamp(utc)}
	got := searcher.Properties{"updated": searcher.Timestamp(jst)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Properties mismatch (-want +got):\n%s", diff)
	}
}
