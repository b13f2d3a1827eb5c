// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package reasoningengine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	aiplatform "cloud.google.com/go/aiplatform/apiv1beta1"
	"cloud.google.com/go/aiplatform/apiv1beta1/aiplatformpb"
	"cloud.google.com/go/auth/credentials"
	"google.golang.org/api/option"
	"google.golang.org/protobuf/types/known/fieldmaskpb"
)

// Service manages and queries reasoning engines in one project and location.
type Service struct {
	engines   *aiplatform.ReasoningEngineClient
	execution *aiplatform.ReasoningEngineExecutionClient
	projectID string
	location  string
	logger    *slog.Logger
}

// ServiceOption is a functional option for configuring the [Service].
type ServiceOption func(*Service)

// WithLogger sets the logger for the [Service].
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService creates a new reasoning engine [Service].
func NewService(ctx context.Context, projectID, location string, opts ...ServiceOption) (*Service, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID is required")
	}
	if location == "" {
		return nil, fmt.Errorf("location is required")
	}

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
		option.WithEndpoint(location + "-aiplatform.googleapis.com:443"),
	}

	s.engines, err = aiplatform.NewReasoningEngineClient(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create reasoning engine client: %w", err)
	}
	s.execution, err = aiplatform.NewReasoningEngineExecutionClient(ctx, clientOpts...)
	if err != nil {
		s.engines.Close()
		return nil, fmt.Errorf("failed to create reasoning engine execution client: %w", err)
	}

	s.logger.InfoContext(ctx, "Reasoning engine service initialized",
		slog.String("project_id", projectID),
		slog.String("location", location),
	)

	return s, nil
}

// Parent returns the location resource that owns engines.
func (s *Service) Parent() string {
	return "projects/" + s.projectID + "/locations/" + s.location
}

// ResourceName expands a bare engine id into a full resource name. Full names are returned unchanged.
func (s *Service) ResourceName(id string) string {
	if strings.Contains(id, "/") {
		return id
	}
	return s.Parent() + "/reasoningEngines/" + id
}

// Create creates an engine from spec and waits for the operation.
func (s *Service) Create(ctx context.Context, spec Spec) (*Engine, error) {
	s.logger.InfoContext(ctx, "Creating reasoning engine",
		slog.String("display_name", spec.DisplayName),
		slog.String("dependencies_uri", spec.DependenciesURI),
	)

	op, err := s.engines.CreateReasoningEngine(ctx, &aiplatformpb.CreateReasoningEngineRequest{
		Parent:          s.Parent(),
		ReasoningEngine: NewEngine(spec),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create reasoning engine: %w", err)
	}
	pb, err := op.Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to wait for reasoning engine creation: %w", err)
	}

	engine := engineFromPb(pb)
	s.logger.InfoContext(ctx, "Reasoning engine created",
		slog.String("name", engine.Name),
	)
	return engine, nil
}

// UpdateMask lists the fields replaced by [Service.Update].
var UpdateMask = []string{
	"display_name",
	"description",
	"spec.package_spec",
}

// Update replaces the package and description of the engine id and waits for the operation.
func (s *Service) Update(ctx context.Context, id string, spec Spec) (*Engine, error) {
	engine := NewEngine(spec)
	engine.Name = s.ResourceName(id)

	s.logger.InfoContext(ctx, "Updating reasoning engine",
		slog.String("name", engine.GetName()),
	)

	op, err := s.engines.UpdateReasoningEngine(ctx, &aiplatformpb.UpdateReasoningEngineRequest{
		ReasoningEngine: engine,
		UpdateMask:      &fieldmaskpb.FieldMask{Paths: UpdateMask},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update reasoning engine: %w", err)
	}
	pb, err := op.Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to wait for reasoning engine update: %w", err)
	}

	s.logger.InfoContext(ctx, "Reasoning engine updated",
		slog.String("name", pb.GetName()),
	)
	return engineFromPb(pb), nil
}

// Get returns the engine id.
func (s *Service) Get(ctx context.Context, id string) (*Engine, error) {
	pb, err := s.engines.GetReasoningEngine(ctx, &aiplatformpb.GetReasoningEngineRequest{
		Name: s.ResourceName(id),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get reasoning engine: %w", err)
	}
	return engineFromPb(pb), nil
}

// Close releases both underlying clients.
func (s *Service) Close() error {
	return errors.Join(s.engines.Close(), s.execution.Close())
}
