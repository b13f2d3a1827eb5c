// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package ingest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/go-a2a/datastore-rag/searcher"
)

// ErrUnsupportedMetadata is returned for metadata values that are not scalars.
var ErrUnsupportedMetadata = errors.New("ingest: unsupported metadata value")

// Entry is one document to ingest.
type Entry struct {
	// Filename is the document name relative to the markdown directory. It keys the record.
	Filename string
	// Path is the resolved local path.
	Path string
	// Content is the document body, loaded only when requested.
	Content string
	// Metadata is the typed metadata.
	Metadata searcher.Properties
	// Description is the metadata re-encoded as compact JSON with sorted keys.
	Description string
}

type metadataItem struct {
	Filename string                    `json:"filename"`
	Metadata map[string]jsontext.Value `json:"metadata"`
}

// LoadEntries reads the metadata file, a JSON array of {"filename", "metadata"} objects,
// and resolves each filename against mdDir. The body of each file is read when withContent is set.
func LoadEntries(mdDir, metadataFile string, withContent bool) ([]Entry, error) {
	data, err := os.ReadFile(metadataFile)
	if err != nil {
		return nil, fmt.Errorf("read metadata file: %w", err)
	}

	var items []metadataItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse metadata file %s: %w", metadataFile, err)
	}

	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		if item.Filename == "" {
			return nil, fmt.Errorf("metadata item %d has no filename", len(entries))
		}

		props, err := ConvertMetadata(item.Metadata)
		if err != nil {
			return nil, fmt.Errorf("metadata for %s: %w", item.Filename, err)
		}
		desc, err := encodeDescription(item.Metadata)
		if err != nil {
			return nil, fmt.Errorf("metadata for %s: %w", item.Filename, err)
		}

		e := Entry{
			Filename:    item.Filename,
			Path:        filepath.Join(mdDir, item.Filename),
			Metadata:    props,
			Description: desc,
		}
		if withContent {
			body, err := os.ReadFile(e.Path)
			if err != nil {
				return nil, fmt.Errorf("read document: %w", err)
			}
			e.Content = string(body)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func encodeDescription(raw map[string]jsontext.Value) (string, error) {
	if raw == nil {
		raw = map[string]jsontext.Value{}
	}
	b, err := json.Marshal(raw, json.Deterministic(true))
	if err != nil {
		return "", fmt.Errorf("encode description: %w", err)
	}
	return string(b), nil
}

// ConvertMetadata converts raw JSON metadata values into typed properties.
//
// Strings become String, or Timestamp when they parse as RFC 3339. Integral numbers
// become Int and other numbers Float. Booleans become Bool. Null, arrays and
// objects fail with ErrUnsupportedMetadata.
func ConvertMetadata(raw map[string]jsontext.Value) (searcher.Properties, error) {
	props := make(searcher.Properties, len(raw))
	for name, v := range raw {
		val, err := convertValue(v)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", name, err)
		}
		props[name] = val
	}
	return props, nil
}

func convertValue(v jsontext.Value) (searcher.Value, error) {
	switch v.Kind() {
	case '"':
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return nil, err
		}
		if ts, err := time.Parse(time.RFC3339, s); err == nil {
			return searcher.Timestamp(ts), nil
		}
		return searcher.String(s), nil
	case '0':
		if n, err := strconv.ParseInt(string(v), 10, 64); err == nil {
			return searcher.Int(n), nil
		}
		f, err := strconv.ParseFloat(string(v), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: number %s", ErrUnsupportedMetadata, v)
		}
		return searcher.Float(f), nil
	case 't':
		return searcher.Bool(true), nil
	case 'f':
		return searcher.Bool(false), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMetadata, v.Kind())
	}
}
