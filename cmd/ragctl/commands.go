// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/go-a2a/datastore-rag/config"
	"github.com/go-a2a/datastore-rag/deploy"
	"github.com/go-a2a/datastore-rag/ingest"
	"github.com/go-a2a/datastore-rag/internal/docstore"
	"github.com/go-a2a/datastore-rag/internal/gcs"
	"github.com/go-a2a/datastore-rag/internal/vertexai/rag"
	"github.com/go-a2a/datastore-rag/internal/vertexai/reasoningengine"
	"github.com/go-a2a/datastore-rag/pkg/logging"
	"github.com/go-a2a/datastore-rag/replay"
)

// IndexDatastoreCmd writes one Datastore record per document.
type IndexDatastoreCmd struct {
	MarkdownDir  string `name:"markdown-dir" help:"Directory containing markdown files." default:"docs" type:"path"`
	MetadataFile string `name:"metadata-file" help:"JSON file with metadata." required:"" type:"existingfile"`
	Project      string `help:"GCP project id (defaults to GOOGLE_CLOUD_PROJECT)."`
	Kind         string `help:"Datastore kind (defaults to DATASTORE_KIND)."`
	Namespace    string `help:"Datastore namespace."`
	Database     string `help:"Datastore database id."`
}

func (c *IndexDatastoreCmd) Run(cli *CLI) error {
	s, err := cli.settings()
	if err != nil {
		return err
	}
	override(&s.Agent.ProjectID, c.Project)
	override(&s.Agent.DatastoreKind, c.Kind)
	override(&s.Agent.DatastoreNamespace, c.Namespace)
	override(&s.Agent.DatabaseID, c.Database)
	if err := s.RequireProject(); err != nil {
		return err
	}

	entries, err := ingest.LoadEntries(c.MarkdownDir, c.MetadataFile, true)
	if err != nil {
		return err
	}

	ctx, cancel, err := cli.context()
	if err != nil {
		return err
	}
	defer cancel()

	store, err := docstore.NewClient(ctx, s.Agent.ProjectID,
		docstore.WithDatabase(s.Agent.DatabaseID),
		docstore.WithLogger(logging.FromContext(ctx)),
	)
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := ingest.IndexDatastore(ctx, store, s.Agent.DatastoreKind, s.Agent.DatastoreNamespace, entries)
	if err != nil {
		return err
	}
	fmt.Printf("Indexed %d documents to Datastore kind '%s'\n", n, s.Agent.DatastoreKind)
	return nil
}

// IndexRAGCmd stages documents and imports them into an existing corpus.
type IndexRAGCmd struct {
	MarkdownDir  string `name:"markdown-dir" help:"Directory with markdown files." default:"docs" type:"path"`
	MetadataFile string `name:"metadata-file" help:"JSON file with metadata." required:"" type:"existingfile"`
	Corpus       string `help:"RAG corpus name (defaults to RAG_CORPUS)."`
	Project      string `help:"GCP project id (defaults to GOOGLE_CLOUD_PROJECT)."`
	Location     string `help:"GCP region (defaults to GOOGLE_CLOUD_LOCATION)."`
	Bucket       string `help:"Staging bucket (defaults to STAGING_BUCKET)."`
	Prefix       string `help:"Object prefix inside the staging bucket." default:"rag"`
	ChunkSize    int32  `name:"chunk-size" help:"Chunk size in tokens (0 keeps the server default)."`
	ChunkOverlap int32  `name:"chunk-overlap" help:"Chunk overlap in tokens."`
}

func (c *IndexRAGCmd) Run(cli *CLI) error {
	s, err := cli.settings()
	if err != nil {
		return err
	}
	override(&s.Agent.RAGCorpus, c.Corpus)
	override(&s.Agent.ProjectID, c.Project)
	override(&s.Agent.Location, c.Location)
	override(&s.Deployment.Project, c.Project)
	override(&s.Deployment.StagingBucket, c.Bucket)
	if err := s.RequireCorpus(); err != nil {
		return err
	}
	if err := s.RequireBucket(); err != nil {
		return err
	}

	entries, err := ingest.LoadEntries(c.MarkdownDir, c.MetadataFile, false)
	if err != nil {
		return err
	}

	ctx, cancel, err := cli.context()
	if err != nil {
		return err
	}
	defer cancel()
	logger := logging.FromContext(ctx)

	up, err := gcs.NewUploader(ctx, s.Deployment.StagingBucket, gcs.WithLogger(logger))
	if err != nil {
		return err
	}
	defer up.Close()

	svc, err := rag.NewService(ctx, s.Agent.ProjectID, s.Agent.Location, rag.WithLogger(logger))
	if err != nil {
		return err
	}
	defer svc.Close()

	res, err := ingest.IndexCorpus(ctx, up, svc, ingest.CorpusTarget{
		Corpus:   s.Agent.RAGCorpus,
		Prefix:   c.Prefix,
		Chunking: rag.Chunking{ChunkSize: c.ChunkSize, ChunkOverlap: c.ChunkOverlap},
	}, entries)
	if err != nil {
		return err
	}
	fmt.Printf("Uploaded %d files to corpus '%s' (imported %d, failed %d, skipped %d)\n",
		len(entries), s.Agent.RAGCorpus, res.Imported, res.Failed, res.Skipped)
	return nil
}

// CreateCorpusCmd creates a corpus from every markdown file of a directory and records it in the env file.
type CreateCorpusCmd struct {
	MarkdownDir    string `name:"markdown-dir" help:"Directory with markdown files." default:"docs" type:"path" env:"MARKDOWN_DIR"`
	DisplayName    string `name:"display-name" help:"Corpus display name." default:"markdown_corpus" env:"RAG_CORPUS_DISPLAY"`
	Description    string `help:"Corpus description." default:"Markdown files corpus" env:"RAG_CORPUS_DESCRIPTION"`
	EmbeddingModel string `name:"embedding-model" help:"Publisher embedding model." default:"publishers/google/models/text-embedding-004"`
	Bucket         string `help:"Staging bucket (defaults to STAGING_BUCKET)."`
	Prefix         string `help:"Object prefix inside the staging bucket."`
	ChunkSize      int32  `name:"chunk-size" help:"Chunk size in tokens (0 keeps the server default)."`
	ChunkOverlap   int32  `name:"chunk-overlap" help:"Chunk overlap in tokens."`
}

func (c *CreateCorpusCmd) Run(cli *CLI) error {
	s, err := cli.settings()
	if err != nil {
		return err
	}
	override(&s.Deployment.StagingBucket, c.Bucket)
	if err := s.RequireProject(); err != nil {
		return err
	}
	if err := s.RequireBucket(); err != nil {
		return err
	}

	ctx, cancel, err := cli.context()
	if err != nil {
		return err
	}
	defer cancel()
	logger := logging.FromContext(ctx)

	up, err := gcs.NewUploader(ctx, s.Deployment.StagingBucket, gcs.WithLogger(logger))
	if err != nil {
		return err
	}
	defer up.Close()

	svc, err := rag.NewService(ctx, s.Agent.ProjectID, s.Agent.Location, rag.WithLogger(logger))
	if err != nil {
		return err
	}
	defer svc.Close()

	corpus, err := ingest.CreateCorpus(ctx, svc, up, svc, ingest.CorpusSpec{
		Corpus: rag.CorpusSpec{
			DisplayName:    c.DisplayName,
			Description:    c.Description,
			EmbeddingModel: c.EmbeddingModel,
		},
		Prefix:   c.Prefix,
		Chunking: rag.Chunking{ChunkSize: c.ChunkSize, ChunkOverlap: c.ChunkOverlap},
	}, c.MarkdownDir)
	if corpus != nil {
		if serr := config.SetEnvKey(cli.EnvFile, "RAG_CORPUS", corpus.Name); serr != nil {
			logger.ErrorContext(ctx, "Failed to record corpus", slog.String("error", serr.Error()))
		}
	}
	if err != nil {
		return err
	}
	fmt.Printf("Created RAG corpus: %s\n", corpus.Name)
	return nil
}

// DeployCmd packages the source tree and creates or updates the deployed agent.
// The staged manifest is JSON in the slot Agent Engine reads as a pickled Python object.
type DeployCmd struct {
	Source      string `help:"Source tree to package." default:"." type:"existingdir"`
	Bucket      string `help:"Staging bucket (defaults to STAGING_BUCKET)."`
	Description string `help:"Engine description." default:"Retrieval agent over Discovery Engine and Datastore."`
	Update      bool   `help:"Update the engine named by AGENT_ENGINE_ID instead of creating a new one."`
}

func (c *DeployCmd) Run(cli *CLI) error {
	s, err := cli.settings()
	if err != nil {
		return err
	}
	override(&s.Deployment.StagingBucket, c.Bucket)
	if err := s.RequireBucket(); err != nil {
		return err
	}
	if err := s.RequireBackend(); err != nil {
		return err
	}
	var update string
	if c.Update {
		if err := s.RequireAgentEngine(); err != nil {
			return err
		}
		update = s.Deployment.AgentEngineID
	}

	source, err := deploy.Package(c.Source)
	if err != nil {
		return err
	}
	manifest, err := deploy.Manifest(s)
	if err != nil {
		return err
	}

	ctx, cancel, err := cli.context()
	if err != nil {
		return err
	}
	defer cancel()
	logger := logging.FromContext(ctx)

	up, err := gcs.NewUploader(ctx, s.Deployment.StagingBucket, gcs.WithLogger(logger))
	if err != nil {
		return err
	}
	defer up.Close()

	engines, err := reasoningengine.NewService(ctx, s.Deployment.Project, s.Deployment.Location, reasoningengine.WithLogger(logger))
	if err != nil {
		return err
	}
	defer engines.Close()

	logger.InfoContext(ctx, "Deploying agent to Vertex AI Agent Engine...")
	engine, err := deploy.Run(ctx, up, engines, deploy.Spec{
		DisplayName: s.Deployment.DisplayName,
		Description: c.Description,
		Source:      source,
		Manifest:    manifest,
		Update:      update,
	})
	if err != nil {
		return err
	}

	if err := config.SetEnvKey(cli.EnvFile, "AGENT_ENGINE_ID", engine.Name); err != nil {
		return err
	}
	fmt.Printf("Agent Engine resource name: %s\n", engine.Name)
	return nil
}

// QueryCmd opens a session on the deployed agent and streams answers to stdin queries.
type QueryCmd struct {
	Engine string `help:"Agent engine id or resource name (defaults to AGENT_ENGINE_ID)."`
	User   string `help:"User id for the session." default:"local-user"`
}

func (c *QueryCmd) Run(cli *CLI) error {
	s, err := cli.settings()
	if err != nil {
		return err
	}
	override(&s.Deployment.AgentEngineID, c.Engine)
	if err := s.RequireAgentEngine(); err != nil {
		return fmt.Errorf("%w: deploy the agent first", err)
	}
	if s.Deployment.Project == "" {
		return config.ErrMissingProject
	}

	ctx, cancel, err := cli.context()
	if err != nil {
		return err
	}
	defer cancel()

	engines, err := reasoningengine.NewService(ctx, s.Deployment.Project, s.Deployment.Location,
		reasoningengine.WithLogger(logging.FromContext(ctx)))
	if err != nil {
		return err
	}
	defer engines.Close()

	sess := &replay.Session{
		Engine:   engines,
		EngineID: s.Deployment.AgentEngineID,
		UserID:   c.User,
	}
	return sess.Run(ctx, os.Stdin, os.Stdout)
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
