// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package agent

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	adkagent "google.golang.org/adk/agent"
	"google.golang.org/adk/tool"

	"github.com/go-a2a/datastore-rag/config"
	"github.com/go-a2a/datastore-rag/internal/discovery"
	"github.com/go-a2a/datastore-rag/internal/docstore"
	"github.com/go-a2a/datastore-rag/internal/vertexai/rag"
	"github.com/go-a2a/datastore-rag/pkg/logging"
	"github.com/go-a2a/datastore-rag/searcher"
	"github.com/go-a2a/datastore-rag/searchtool"
)

// App is an assembled agent together with the clients its tool uses.
type App struct {
	Agent adkagent.Agent
	// Tool is the name of the agent's search tool.
	Tool string

	closers []io.Closer
}

// Close releases every backend client.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i].Close())
	}
	a.closers = nil
	return errors.Join(errs...)
}

// Build validates s, connects the selected search backend and assembles the agent.
//
// Configuration errors are reported before any client is created.
func Build(ctx context.Context, s config.Settings) (_ *App, err error) {
	if err := s.RequireBackend(); err != nil {
		return nil, err
	}
	instruction, err := s.Instruction()
	if err != nil {
		return nil, err
	}

	logger := logging.FromContext(ctx)
	app := &App{}
	defer func() {
		if err != nil {
			app.Close()
		}
	}()

	var t tool.Tool
	switch s.Agent.Backend {
	case config.BackendRAG:
		t, err = app.ragTool(ctx, s, logger)
	default:
		t, err = app.datastoreTool(ctx, s, logger)
	}
	if err != nil {
		return nil, err
	}
	app.Tool = t.Name()

	llm, err := NewModel(ctx, s)
	if err != nil {
		return nil, err
	}
	app.Agent, err = New(llm, Config{
		Name:        s.Agent.Name,
		Instruction: instruction,
	}, t)
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "Agent assembled",
		slog.String("name", s.Agent.Name),
		slog.String("model", s.Agent.Model),
		slog.String("backend", s.Agent.Backend),
		slog.String("tool", app.Tool),
	)
	return app, nil
}

// SearcherConfig maps the agent settings onto the search-and-hydrate configuration.
func SearcherConfig(s config.Settings) searcher.Config {
	return searcher.Config{
		ProjectID:   s.Agent.ProjectID,
		Location:    s.Agent.DatastoreLocation,
		DataStoreID: s.Agent.DatastoreID,
		Kind:        s.Agent.DatastoreKind,
		Namespace:   s.Agent.DatastoreNamespace,
		PageSize:    s.Agent.PageSize,
	}
}

func (a *App) datastoreTool(ctx context.Context, s config.Settings, logger *slog.Logger) (tool.Tool, error) {
	cfg := SearcherConfig(s)

	index, err := discovery.NewClient(ctx, cfg.Location, discovery.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("connect search index: %w", err)
	}
	a.closers = append(a.closers, index)

	store, err := docstore.NewClient(ctx, cfg.ProjectID,
		docstore.WithDatabase(s.Agent.DatabaseID),
		docstore.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("connect document store: %w", err)
	}
	a.closers = append(a.closers, store)

	srch := searcher.NewWithProcessor(cfg, index, store, searcher.Documents, searcher.WithLogger(logger))
	return searchtool.NewDatastore(srch, searchtool.WithLogger(logger)).Tool()
}

func (a *App) ragTool(ctx context.Context, s config.Settings, logger *slog.Logger) (tool.Tool, error) {
	svc, err := rag.NewService(ctx, s.Agent.ProjectID, s.Agent.Location, rag.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("connect rag engine: %w", err)
	}
	a.closers = append(a.closers, svc)

	return searchtool.NewRAG(svc, s.Agent.RAGCorpus, s.Agent.SimilarityTopK, s.Agent.VectorDistanceThreshold,
		searchtool.WithLogger(logger)).Tool()
}
