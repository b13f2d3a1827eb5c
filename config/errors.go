// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingProject means no Google Cloud project is configured.
	ErrMissingProject = errors.New("config: project id is not set")
	// ErrMissingDatastore means the Discovery Engine data store id is not set.
	ErrMissingDatastore = errors.New("config: datastore id is not set")
	// ErrMissingCorpus means the RAG corpus is not set.
	ErrMissingCorpus = errors.New("config: rag corpus is not set")
	// ErrMissingBucket means the staging bucket is not set.
	ErrMissingBucket = errors.New("config: staging bucket is not set")
	// ErrMissingAgentEngine means no deployed agent engine is configured.
	ErrMissingAgentEngine = errors.New("config: agent engine id is not set")
	// ErrPromptNotFound means the requested prompt is not in the catalogue.
	ErrPromptNotFound = errors.New("config: prompt not found")
	// ErrUnknownBackend means the search backend is neither datastore nor rag.
	ErrUnknownBackend = errors.New("config: unknown search backend")
)

// RequireProject reports whether the agent project is set.
func (s Settings) RequireProject() error {
	if s.Agent.ProjectID == "" {
		return fmt.Errorf("%w (set GOOGLE_CLOUD_PROJECT)", ErrMissingProject)
	}
	return nil
}

// RequireDatastore reports whether the project and data store are set.
func (s Settings) RequireDatastore() error {
	if err := s.RequireProject(); err != nil {
		return err
	}
	if s.Agent.DatastoreID == "" {
		return fmt.Errorf("%w (set DATASTORE_ID)", ErrMissingDatastore)
	}
	return nil
}

// RequireCorpus reports whether the project and RAG corpus are set.
func (s Settings) RequireCorpus() error {
	if err := s.RequireProject(); err != nil {
		return err
	}
	if s.Agent.RAGCorpus == "" {
		return fmt.Errorf("%w (set RAG_CORPUS)", ErrMissingCorpus)
	}
	return nil
}

// RequireBucket reports whether the deployment project and staging bucket are set.
func (s Settings) RequireBucket() error {
	if s.Deployment.Project == "" {
		return fmt.Errorf("%w (set GOOGLE_CLOUD_PROJECT)", ErrMissingProject)
	}
	if s.Deployment.StagingBucket == "" {
		return fmt.Errorf("%w (set STAGING_BUCKET)", ErrMissingBucket)
	}
	return nil
}

// RequireAgentEngine reports whether a deployed agent engine is configured.
func (s Settings) RequireAgentEngine() error {
	if s.Deployment.AgentEngineID == "" {
		return fmt.Errorf("%w (set AGENT_ENGINE_ID)", ErrMissingAgentEngine)
	}
	return nil
}

// RequireBackend validates the selected search backend and its identifiers.
func (s Settings) RequireBackend() error {
	switch s.Agent.Backend {
	case BackendDatastore:
		return s.RequireDatastore()
	case BackendRAG:
		return s.RequireCorpus()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, s.Agent.Backend)
	}
}
