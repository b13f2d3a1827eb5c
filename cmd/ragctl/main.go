// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Command ragctl ingests documents into the retrieval backends, deploys the agent
// to Vertex AI Agent Engine and chats with the deployed agent.
//
// Usage:
//
//	ragctl index-datastore --metadata-file docs/metadata.json
//	ragctl create-corpus --markdown-dir docs
//	ragctl index-rag --metadata-file docs/metadata.json
//	ragctl deploy
//	ragctl query
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/go-a2a/datastore-rag/config"
	"github.com/go-a2a/datastore-rag/pkg/logging"
)

// CLI defines the command-line interface.
type CLI struct {
	IndexDatastore IndexDatastoreCmd `cmd:"" help:"Index markdown documents with metadata into Datastore."`
	IndexRAG       IndexRAGCmd       `cmd:"" name:"index-rag" help:"Upload markdown documents with metadata to a RAG corpus."`
	CreateCorpus   CreateCorpusCmd   `cmd:"" help:"Create a RAG corpus from a directory of markdown files."`
	Deploy         DeployCmd         `cmd:"" help:"Stage the agent on Vertex AI Agent Engine. The JSON manifest fills the pickled-object slot, which the managed Python runtime cannot load, so query fails against the created engine."`
	Query          QueryCmd          `cmd:"" help:"Chat with the deployed agent."`

	ConfigDir string `name:"config-dir" help:"Directory holding agent.yaml, deployment.yaml and prompts.yaml." default:"config" type:"path"`
	EnvFile   string `name:"env-file" help:"Dotenv file read at startup and updated with created resource names." default:".env" type:"path"`
	LogLevel  string `help:"Log level (debug, info, warn, error)." default:"info"`
	LogFormat string `help:"Log format (json, text)." default:"text" enum:"json,text"`
}

// settings loads the configuration and returns a copy the command may override.
func (c *CLI) settings() (config.Settings, error) {
	s, err := config.Load(config.Options{Dir: c.ConfigDir, EnvFile: c.EnvFile})
	if err != nil {
		return config.Settings{}, err
	}
	return s.Clone()
}

// context returns a context carrying the logger that is cancelled on SIGINT or SIGTERM.
func (c *CLI) context() (context.Context, context.CancelFunc, error) {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(os.Stderr, level, logging.Format(c.LogFormat))
	if err != nil {
		return nil, nil, err
	}
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	return logging.NewContext(ctx, logger), cancel, nil
}

func main() {
	cli := CLI{}
	ctx := kong.Parse(&cli,
		kong.Name("ragctl"),
		kong.Description("Ingest, deploy and query the retrieval agent."),
		kong.UsageOnError(),
	)

	if err := ctx.Run(&cli); err != nil {
		fmt.Fprintf(os.Stderr, "ragctl: %v\n", err)
		os.Exit(1)
	}
}
