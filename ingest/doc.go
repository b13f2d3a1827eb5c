// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package ingest loads markdown documents with their metadata and writes them
// to the retrieval backends: Datastore records or a RAG Engine corpus.
//
// Every pipeline is linear. Documents are processed in order and the first
// failure aborts the run without rolling back earlier writes.
package ingest
