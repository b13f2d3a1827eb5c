// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package rag

import (
	"context"
	"fmt"
	"log/slog"

	"cloud.google.com/go/aiplatform/apiv1beta1/aiplatformpb"
)

// CreateCorpus creates a corpus on the managed vector database and waits for the operation.
func (s *Service) CreateCorpus(ctx context.Context, spec CorpusSpec) (*Corpus, error) {
	req := NewCreateCorpusRequest(s.Parent(), spec)

	s.logger.InfoContext(ctx, "Creating RAG corpus",
		slog.String("parent", req.GetParent()),
		slog.String("display_name", spec.DisplayName),
	)

	op, err := s.dataClient.CreateRagCorpus(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create RAG corpus: %w", err)
	}
	pb, err := op.Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to wait for RAG corpus creation: %w", err)
	}

	corpus := &Corpus{
		Name:        pb.GetName(),
		DisplayName: pb.GetDisplayName(),
		Description: pb.GetDescription(),
	}
	s.logger.InfoContext(ctx, "RAG corpus created",
		slog.String("name", corpus.Name),
	)

	return corpus, nil
}

// NewCreateCorpusRequest builds the creation request for spec under parent.
func NewCreateCorpusRequest(parent string, spec CorpusSpec) *aiplatformpb.CreateRagCorpusRequest {
	model := spec.EmbeddingModel
	if model == "" {
		model = DefaultEmbeddingModel
	}

	return &aiplatformpb.CreateRagCorpusRequest{
		Parent: parent,
		RagCorpus: &aiplatformpb.RagCorpus{
			DisplayName: spec.DisplayName,
			Description: spec.Description,
			RagVectorDbConfig: &aiplatformpb.RagVectorDbConfig{
				VectorDb: &aiplatformpb.RagVectorDbConfig_RagManagedDb_{
					RagManagedDb: &aiplatformpb.RagVectorDbConfig_RagManagedDb{},
				},
				RagEmbeddingModelConfig: &aiplatformpb.RagEmbeddingModelConfig{
					ModelConfig: &aiplatformpb.RagEmbeddingModelConfig_VertexPredictionEndpoint_{
						VertexPredictionEndpoint: &aiplatformpb.RagEmbeddingModelConfig_VertexPredictionEndpoint{
							Endpoint: parent + "/" + model,
						},
					},
				},
			},
		},
	}
}
