// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package searcher runs a Discovery Engine search and hydrates the matched
// document identifiers with full records from a Datastore kind.
//
// A [Searcher] performs two sequential remote calls per query: one search, whose
// paginator is drained eagerly, and one batched key lookup over every identifier
// the search produced. Lookup misses are kept as nil entries at their position,
// so identifiers and records always line up.
//
//	s := searcher.New(cfg, index, store)
//	res, err := s.Run(ctx, "how do I rotate keys?")
//
// A [Processor] supplied at construction reduces the combined [Result] to any
// caller-chosen type:
//
//	s := searcher.NewWithProcessor(cfg, index, store, searcher.Documents)
//	docs, err := s.Run(ctx, "how do I rotate keys?")
package searcher
