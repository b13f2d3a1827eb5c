// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package rag_test

import (
	"testing"

	"cloud.google.com/go/aiplatform/apiv1beta1/aiplatformpb"
	"github.com/google/go-cmp/cmp"
	"google.golang.org/protobuf/testing/protocmp"

	"github.com/go-a2a/datastore-rag/internal/vertexai/rag"
)

const parent = "projects/p1/locations/us-central1"

func TestNewCreateCorpusRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		spec         rag.CorpusSpec
		wantEndpoint string
	}{
		{
			name:         "default_model",
			spec:         rag.CorpusSpec{DisplayName: "docs", Description: "product docs"},
			wantEndpoint: parent + "/publishers/google/models/text-embedding-004",
		},
		{
			name:         "custom_model",
			spec:         rag.CorpusSpec{DisplayName: "docs", EmbeddingModel: "publishers/google/models/text-multilingual-embedding-002"},
			wantEndpoint: parent + "/publishers/google/models/text-multilingual-embedding-002",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := rag.NewCreateCorpusRequest(parent, tt.spec)

			if got := req.GetParent(); got != parent {
				t.Errorf("Parent = %q, want %q", got, parent)
			}
			corpus := req.GetRagCorpus()
			if corpus.GetDisplayName() != tt.spec.DisplayName || corpus.GetDescription() != tt.spec.Description {
				t.Errorf("corpus = %v", corpus)
			}
			cfg := corpus.GetRagVectorDbConfig()
			if cfg.GetRagManagedDb() == nil {
				t.Error("vector db is not the managed database")
			}
			if got := cfg.GetRagEmbeddingModelConfig().GetVertexPredictionEndpoint().GetEndpoint(); got != tt.wantEndpoint {
				t.Errorf("embedding endpoint = %q, want %q", got, tt.wantEndpoint)
			}
		})
	}
}

func TestNewImportRequest(t *testing.T) {
	t.Parallel()

	corpus := parent + "/ragCorpora/42"
	uris := []string{"gs://bucket/a.md", "gs://bucket/b.md"}

	t.Run("default_chunking", func(t *testing.T) {
		t.Parallel()

		want := &aiplatformpb.ImportRagFilesRequest{
			Parent: corpus,
			ImportRagFilesConfig: &aiplatformpb.ImportRagFilesConfig{
				ImportSource: &aiplatformpb.ImportRagFilesConfig_GcsSource{
					GcsSource: &aiplatformpb.GcsSource{Uris: uris},
				},
			},
		}
		if diff := cmp.Diff(want, rag.NewImportRequest(corpus, uris, rag.Chunking{}), protocmp.Transform()); diff != "" {
			t.Errorf("NewImportRequest() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("fixed_length", func(t *testing.T) {
		t.Parallel()

		req := rag.NewImportRequest(corpus, uris, rag.Chunking{ChunkSize: 512, ChunkOverlap: 100})
		fixed := req.GetImportRagFilesConfig().GetRagFileTransformationConfig().GetRagFileChunkingConfig().GetFixedLengthChunking()
		if fixed.GetChunkSize() != 512 || fixed.GetChunkOverlap() != 100 {
			t.Errorf("chunking = %v", fixed)
		}
	})
}

func TestNewRetrieveRequest(t *testing.T) {
	t.Parallel()

	req := rag.NewRetrieveRequest(parent, rag.Query{
		Text:                    "rotate keys",
		Corpora:                 []string{parent + "/ragCorpora/1"},
		SimilarityTopK:          10,
		VectorDistanceThreshold: 0.6,
	})

	threshold := 0.6
	want := &aiplatformpb.RetrieveContextsRequest{
		Parent: parent,
		Query: &aiplatformpb.RagQuery{
			Query:          &aiplatformpb.RagQuery_Text{Text: "rotate keys"},
			SimilarityTopK: 10,
		},
		DataSource: &aiplatformpb.RetrieveContextsRequest_VertexRagStore_{
			VertexRagStore: &aiplatformpb.RetrieveContextsRequest_VertexRagStore{
				RagResources: []*aiplatformpb.RetrieveContextsRequest_VertexRagStore_RagResource{
					{RagCorpus: parent + "/ragCorpora/1"},
				},
				VectorDistanceThreshold: &threshold,
			},
		},
	}
	if diff := cmp.Diff(want, req, protocmp.Transform()); diff != "" {
		t.Errorf("NewRetrieveRequest() mismatch (-want +got):\n%s", diff)
	}
}

func TestNewRetrieveRequestThreshold(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		threshold float64
		wantSet   bool
	}{
		{name: "positive", threshold: 0.6, wantSet: true},
		{name: "zero", threshold: 0},
		{name: "negative", threshold: -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := rag.NewRetrieveRequest(parent, rag.Query{Text: "q", VectorDistanceThreshold: tt.threshold})
			store := req.GetVertexRagStore()
			if got := store.VectorDistanceThreshold != nil; got != tt.wantSet {
				t.Fatalf("threshold set = %v, want %v", got, tt.wantSet)
			}
			if tt.wantSet && store.GetVectorDistanceThreshold() != tt.threshold {
				t.Errorf("threshold = %v, want %v", store.GetVectorDistanceThreshold(), tt.threshold)
			}
		})
	}
}

func TestEndpoint(t *testing.T) {
	t.Parallel()

	if got, want := rag.Endpoint("europe-west4"), "europe-west4-aiplatform.googleapis.com:443"; got != want {
		t.Errorf("Endpoint() = %q, want %q", got, want)
	}
}
