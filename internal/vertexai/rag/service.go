// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package rag

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	aiplatform "cloud.google.com/go/aiplatform/apiv1beta1"
	"cloud.google.com/go/auth/credentials"
	"google.golang.org/api/option"
)

// Service provides the RAG Engine operations used for ingestion and retrieval.
type Service struct {
	dataClient *aiplatform.VertexRagDataClient
	ragClient  *aiplatform.VertexRagClient
	projectID  string
	location   string
	logger     *slog.Logger
}

// ServiceOption is a functional option for configuring the [Service].
type ServiceOption func(*Service)

// WithLogger sets the logger for the [Service].
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// Endpoint returns the regional Vertex AI endpoint for location.
func Endpoint(location string) string {
	return location + "-aiplatform.googleapis.com:443"
}

// NewService creates a new RAG Engine [Service].
func NewService(ctx context.Context, projectID, location string, opts ...ServiceOption) (*Service, error) {
	s := &Service{
		projectID: projectID,
		location:  location,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	creds, err := credentials.DetectDefault(&credentials.DetectOptions{
		Scopes: []string{
			"https://www.googleapis.com/auth/cloud-platform",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to detect default credentials: %w", err)
	}
	clientOpts := []option.ClientOption{
		option.WithAuthCredentials(creds),
		option.WithEndpoint(Endpoint(location)),
	}

	s.dataClient, err = aiplatform.NewVertexRagDataClient(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Vertex RAG data client: %w", err)
	}
	s.ragClient, err = aiplatform.NewVertexRagClient(ctx, clientOpts...)
	if err != nil {
		s.dataClient.Close()
		return nil, fmt.Errorf("failed to create Vertex RAG client: %w", err)
	}

	s.logger.InfoContext(ctx, "Vertex AI RAG service initialized",
		slog.String("project_id", projectID),
		slog.String("location", location),
	)

	return s, nil
}

// Parent returns the location resource that owns corpora.
func (s *Service) Parent() string {
	return "projects/" + s.projectID + "/locations/" + s.location
}

// Close releases both underlying clients.
func (s *Service) Close() error {
	return errors.Join(s.dataClient.Close(), s.ragClient.Close())
}
