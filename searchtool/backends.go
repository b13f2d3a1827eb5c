// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package searchtool

import (
	"context"

	"github.com/go-a2a/datastore-rag/internal/vertexai/rag"
	"github.com/go-a2a/datastore-rag/searcher"
)

// Tool names and descriptions of the built-in search backends.
const (
	DatastoreName        = "search_datastore"
	DatastoreDescription = "Search documents from datastore"

	RAGName        = "retrieve_rag_documentation"
	RAGDescription = "Use this tool to retrieve documentation and reference materials for the question from the RAG corpus"
)

// DocumentSearcher runs a search and returns the hydrated matches.
// A *searcher.Searcher built with [searcher.Documents] satisfies it.
type DocumentSearcher interface {
	Run(ctx context.Context, query string, opts ...searcher.SearchOption) ([]searcher.Document, error)
}

// NewDatastore returns the search_datastore tool over s.
func NewDatastore(s DocumentSearcher, opts ...Option) *Adapter[[]searcher.Document] {
	return New(DatastoreName, DatastoreDescription, func(ctx context.Context, query string) ([]searcher.Document, error) {
		return s.Run(ctx, query)
	}, opts...)
}

// Retriever retrieves ranked chunks from RAG corpora.
// *rag.Service satisfies it.
type Retriever interface {
	RetrieveContexts(ctx context.Context, q rag.Query) ([]*rag.Context, error)
}

// RAGDocument is one retrieved chunk as returned to the model.
type RAGDocument struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	SourceURI string `json:"source_uri"`
}

// NewRAG returns the retrieve_rag_documentation tool over corpus.
func NewRAG(r Retriever, corpus string, topK int32, threshold float64, opts ...Option) *Adapter[[]RAGDocument] {
	return New(RAGName, RAGDescription, func(ctx context.Context, query string) ([]RAGDocument, error) {
		contexts, err := r.RetrieveContexts(ctx, rag.Query{
			Text:                    query,
			Corpora:                 []string{corpus},
			SimilarityTopK:          topK,
			VectorDistanceThreshold: threshold,
		})
		if err != nil {
			return nil, err
		}

		docs := make([]RAGDocument, 0, len(contexts))
		for _, c := range contexts {
			docs = append(docs, RAGDocument{
				Title:     c.SourceDisplayName,
				Content:   c.Text,
				SourceURI: c.SourceURI,
			})
		}
		return docs, nil
	}, opts...)
}
