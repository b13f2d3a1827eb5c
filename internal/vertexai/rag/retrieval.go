// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package rag

import (
	"context"
	"fmt"
	"log/slog"

	"cloud.google.com/go/aiplatform/apiv1beta1/aiplatformpb"
)

// RetrieveContexts returns the chunks of q.Corpora closest to q.Text, best match first.
func (s *Service) RetrieveContexts(ctx context.Context, q Query) ([]*Context, error) {
	s.logger.InfoContext(ctx, "Retrieving contexts from RAG corpora",
		slog.String("query", q.Text),
		slog.Int("similarity_top_k", int(q.SimilarityTopK)),
		slog.Float64("vector_distance_threshold", q.VectorDistanceThreshold),
		slog.Int("corpora", len(q.Corpora)),
	)

	resp, err := s.ragClient.RetrieveContexts(ctx, NewRetrieveRequest(s.Parent(), q))
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve contexts: %w", err)
	}

	var out []*Context
	for _, c := range resp.GetContexts().GetContexts() {
		out = append(out, &Context{
			SourceURI:         c.GetSourceUri(),
			SourceDisplayName: c.GetSourceDisplayName(),
			Text:              c.GetText(),
			Distance:          c.GetDistance(),
		})
	}

	s.logger.InfoContext(ctx, "Contexts retrieved",
		slog.Int("contexts", len(out)),
	)

	return out, nil
}

// NewRetrieveRequest builds the retrieval request for q under parent.
func NewRetrieveRequest(parent string, q Query) *aiplatformpb.RetrieveContextsRequest {
	resources := make([]*aiplatformpb.RetrieveContextsRequest_VertexRagStore_RagResource, 0, len(q.Corpora))
	for _, corpus := range q.Corpora {
		resources = append(resources, &aiplatformpb.RetrieveContextsRequest_VertexRagStore_RagResource{
			RagCorpus: corpus,
		})
	}

	store := &aiplatformpb.RetrieveContextsRequest_VertexRagStore{RagResources: resources}
	// A zero threshold would filter out every context, so it is left unset.
	if q.VectorDistanceThreshold > 0 {
		threshold := q.VectorDistanceThreshold
		store.VectorDistanceThreshold = &threshold
	}
	return &aiplatformpb.RetrieveContextsRequest{
		Parent: parent,
		Query: &aiplatformpb.RagQuery{
			Query: &aiplatformpb.RagQuery_Text{
				Text: q.Text,
			},
			SimilarityTopK: q.SimilarityTopK,
		},
		DataSource: &aiplatformpb.RetrieveContextsRequest_VertexRagStore_{
			VertexRagStore: store,
		},
	}
}
