// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Command ragagent serves the retrieval agent through the ADK launcher.
//
// Configuration is read from the directory named by RAG_CONFIG_DIR (default "config")
// and the dotenv file named by RAG_ENV_FILE (default ".env"). The remaining arguments
// select the launcher mode, for example "console" or "web api".
package main

import (
	"cmp"
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	adkagent "google.golang.org/adk/agent"
	"google.golang.org/adk/cmd/launcher"
	"google.golang.org/adk/cmd/launcher/full"

	"github.com/go-a2a/datastore-rag/agent"
	"github.com/go-a2a/datastore-rag/config"
	"github.com/go-a2a/datastore-rag/pkg/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	level, err := logging.ParseLevel(cmp.Or(os.Getenv("LOG_LEVEL"), "info"))
	if err != nil {
		log.Fatal(err)
	}
	logger, err := logging.New(os.Stderr, level, logging.Format(cmp.Or(os.Getenv("LOG_FORMAT"), "json")))
	if err != nil {
		log.Fatal(err)
	}
	slog.SetDefault(logger)
	ctx = logging.NewContext(ctx, logger)

	settings, err := config.Load(config.Options{
		Dir:     cmp.Or(os.Getenv("RAG_CONFIG_DIR"), "config"),
		EnvFile: cmp.Or(os.Getenv("RAG_ENV_FILE"), ".env"),
	})
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	app, err := agent.Build(ctx, settings)
	if err != nil {
		log.Fatalf("Failed to create agent: %v", err)
	}
	defer app.Close()

	cfg := &launcher.Config{
		AgentLoader: adkagent.NewSingleLoader(app.Agent),
	}

	l := full.NewLauncher()
	if err := l.Execute(ctx, cfg, os.Args[1:]); err != nil {
		logger.ErrorContext(ctx, "Run failed", slog.String("error", err.Error()))
		os.Stderr.WriteString(l.CommandLineSyntax())
		app.Close()
		os.Exit(1)
	}
}
