// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package deploy

import (
	"context"
	"fmt"
	"log/slog"
	"path"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/go-a2a/datastore-rag/internal/gcs"
	"github.com/go-a2a/datastore-rag/internal/vertexai/reasoningengine"
	"github.com/go-a2a/datastore-rag/pkg/logging"
)

// StagingRoot is the object prefix under which deployments are staged.
const StagingRoot = "agent_engine"

// Staged object names inside a deployment prefix.
const (
	SourceObject   = "agent.tar.gz"
	ManifestObject = "agent.json"
)

// Stager writes staging objects. *gcs.Uploader satisfies it.
type Stager interface {
	UploadBytes(ctx context.Context, obj gcs.Object, data []byte) (string, error)
}

// Deployer creates and updates engines. *reasoningengine.Service satisfies it.
type Deployer interface {
	Create(ctx context.Context, spec reasoningengine.Spec) (*reasoningengine.Engine, error)
	Update(ctx context.Context, id string, spec reasoningengine.Spec) (*reasoningengine.Engine, error)
}

// Spec is one deployment.
type Spec struct {
	DisplayName string
	Description string

	// Source is the tarball built by Package.
	Source []byte
	// Manifest is the JSON built by Manifest.
	Manifest []byte

	// Update names an existing engine to update instead of creating a new one.
	Update string

	// StagingID overrides the random staging directory name.
	StagingID string
}

// Run stages the package and manifest concurrently, then creates or updates the engine.
func Run(ctx context.Context, st Stager, d Deployer, spec Spec) (*reasoningengine.Engine, error) {
	id := spec.StagingID
	if id == "" {
		id = uuid.NewString()
	}
	prefix := path.Join(StagingRoot, id)
	logger := logging.FromContext(ctx)

	var sourceURI, manifestURI string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		uri, err := st.UploadBytes(gctx, gcs.Object{
			Name:        path.Join(prefix, SourceObject),
			ContentType: "application/gzip",
		}, spec.Source)
		if err != nil {
			return fmt.Errorf("stage source: %w", err)
		}
		sourceURI = uri
		return nil
	})
	g.Go(func() error {
		uri, err := st.UploadBytes(gctx, gcs.Object{
			Name:        path.Join(prefix, ManifestObject),
			ContentType: "application/json",
		}, spec.Manifest)
		if err != nil {
			return fmt.Errorf("stage manifest: %w", err)
		}
		manifestURI = uri
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "Staged deployment",
		slog.String("source_uri", sourceURI),
		slog.String("manifest_uri", manifestURI),
	)

	es := reasoningengine.Spec{
		DisplayName:     spec.DisplayName,
		Description:     spec.Description,
		ObjectURI:       manifestURI,
		DependenciesURI: sourceURI,
	}
	if spec.Update != "" {
		return d.Update(ctx, spec.Update, es)
	}
	return d.Create(ctx, es)
}
