// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package rag

// DefaultEmbeddingModel is the publisher model used to embed corpus chunks.
const DefaultEmbeddingModel = "publishers/google/models/text-embedding-004"

// CorpusSpec describes a corpus to create.
type CorpusSpec struct {
	DisplayName string
	Description string

	// EmbeddingModel is a publisher model path relative to the location,
	// such as DefaultEmbeddingModel. Empty means DefaultEmbeddingModel.
	EmbeddingModel string
}

// Corpus is a created RAG corpus.
type Corpus struct {
	// Name is the full resource name, projects/{p}/locations/{l}/ragCorpora/{id}.
	Name        string
	DisplayName string
	Description string
}

// Chunking controls how imported files are split before embedding.
// Zero values leave the server defaults in place.
type Chunking struct {
	ChunkSize    int32
	ChunkOverlap int32
}

// ImportResult summarises a completed import.
type ImportResult struct {
	Imported int64
	Failed   int64
	Skipped  int64
}

// Query is a retrieval request against one or more corpora.
type Query struct {
	Text                    string
	Corpora                 []string
	SimilarityTopK          int32
	VectorDistanceThreshold float64
}

// Context is one retrieved chunk.
type Context struct {
	SourceURI         string
	SourceDisplayName string
	Text              string
	Distance          float64
}
