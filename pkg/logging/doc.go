// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package logging provides context-based structured logging utilities using Go's standard slog package.
//
// Loggers are stored in and retrieved from [context.Context] values so that the
// searcher, the ingestion pipelines and the deployment commands all log through
// the logger configured once by the command line:
//
//	logger, err := logging.New(os.Stderr, slog.LevelInfo, logging.FormatText)
//	if err != nil {
//		return err
//	}
//	ctx = logging.NewContext(ctx, logger)
//
//	logging.FromContext(ctx).InfoContext(ctx, "indexed documents", slog.Int("count", n))
//
// When no logger is found in the context, [FromContext] returns [slog.Default].
package logging
