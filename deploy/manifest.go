// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package deploy

import (
	"fmt"

	"github.com/go-json-experiment/json"

	"github.com/go-a2a/datastore-rag/config"
	"github.com/go-a2a/datastore-rag/searchtool"
)

// Entrypoint is the command that serves the packaged agent.
const Entrypoint = "cmd/ragagent"

// AgentManifest describes the assembled agent inside a deployment.
type AgentManifest struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Model       string `json:"model"`
	Instruction string `json:"instruction"`
	Entrypoint  string `json:"entrypoint"`

	Project  string `json:"project"`
	Location string `json:"location"`

	Tool ToolManifest `json:"tool"`
}

// ToolManifest describes the single retrieval tool.
type ToolManifest struct {
	Name    string `json:"name"`
	Backend string `json:"backend"`

	DatastoreID        string `json:"datastore_id,omitzero"`
	DatastoreKind      string `json:"datastore_kind,omitzero"`
	DatastoreNamespace string `json:"datastore_namespace,omitzero"`
	DatabaseID         string `json:"database_id,omitzero"`
	PageSize           int32  `json:"page_size,omitzero"`

	RAGCorpus               string  `json:"rag_corpus,omitzero"`
	SimilarityTopK          int32   `json:"similarity_top_k,omitzero"`
	VectorDistanceThreshold float64 `json:"vector_distance_threshold,omitzero"`
}

// NewManifest describes the agent assembled from s.
func NewManifest(s config.Settings) (AgentManifest, error) {
	instruction, err := s.Instruction()
	if err != nil {
		return AgentManifest{}, err
	}

	m := AgentManifest{
		Name:        s.Agent.Name,
		DisplayName: s.Deployment.DisplayName,
		Model:       s.Agent.Model,
		Instruction: instruction,
		Entrypoint:  Entrypoint,
		Project:     s.Agent.ProjectID,
		Location:    s.Agent.Location,
		Tool:        ToolManifest{Backend: s.Agent.Backend},
	}
	switch s.Agent.Backend {
	case config.BackendRAG:
		m.Tool.Name = searchtool.RAGName
		m.Tool.RAGCorpus = s.Agent.RAGCorpus
		m.Tool.SimilarityTopK = s.Agent.SimilarityTopK
		m.Tool.VectorDistanceThreshold = s.Agent.VectorDistanceThreshold
	default:
		m.Tool.Name = searchtool.DatastoreName
		m.Tool.DatastoreID = s.Agent.DatastoreID
		m.Tool.DatastoreKind = s.Agent.DatastoreKind
		m.Tool.DatastoreNamespace = s.Agent.DatastoreNamespace
		m.Tool.DatabaseID = s.Agent.DatabaseID
		m.Tool.PageSize = s.Agent.PageSize
	}
	return m, nil
}

// Manifest encodes the manifest of the agent assembled from s as JSON with sorted keys.
func Manifest(s config.Settings) ([]byte, error) {
	m, err := NewManifest(s)
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(m, json.Deterministic(true))
	if err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	return b, nil
}
