// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"path"

	"github.com/go-a2a/datastore-rag/internal/gcs"
	"github.com/go-a2a/datastore-rag/internal/vertexai/rag"
	"github.com/go-a2a/datastore-rag/pkg/logging"
	"github.com/go-a2a/datastore-rag/searcher"
)

// ContentProperty is the record property holding the document body.
const ContentProperty = "content"

// Writer stores one record. *docstore.Client satisfies it.
type Writer interface {
	Put(ctx context.Context, kind, namespace, id string, props searcher.Properties) error
}

// Uploader stages files in Cloud Storage. *gcs.Uploader satisfies it.
type Uploader interface {
	UploadFile(ctx context.Context, obj gcs.Object, src string) (string, error)
	UploadDir(ctx context.Context, dir, pattern, prefix string) ([]string, error)
}

// Importer imports staged files into a corpus. *rag.Service satisfies it.
type Importer interface {
	ImportFiles(ctx context.Context, corpus string, uris []string, chunking rag.Chunking) (*rag.ImportResult, error)
}

// CorpusCreator creates corpora. *rag.Service satisfies it.
type CorpusCreator interface {
	CreateCorpus(ctx context.Context, spec rag.CorpusSpec) (*rag.Corpus, error)
}

// Record returns the properties written for e: the body under ContentProperty plus the metadata.
// Metadata named like ContentProperty replaces the body.
func Record(e Entry) searcher.Properties {
	props := make(searcher.Properties, len(e.Metadata)+1)
	props[ContentProperty] = searcher.String(e.Content)
	maps.Copy(props, e.Metadata)
	return props
}

// IndexDatastore writes one record per entry, keyed by filename, and returns the number written.
func IndexDatastore(ctx context.Context, w Writer, kind, namespace string, entries []Entry) (int, error) {
	logger := logging.FromContext(ctx)

	for i, e := range entries {
		if err := w.Put(ctx, kind, namespace, e.Filename, Record(e)); err != nil {
			return i, fmt.Errorf("index %s: %w", e.Filename, err)
		}
	}

	logger.InfoContext(ctx, "Indexed documents to Datastore",
		slog.String("kind", kind),
		slog.Int("documents", len(entries)),
	)
	return len(entries), nil
}

// CorpusTarget identifies where staged files go and how they are chunked.
type CorpusTarget struct {
	// Corpus is the corpus resource name.
	Corpus string
	// Prefix is the object name prefix inside the staging bucket.
	Prefix   string
	Chunking rag.Chunking
}

// IndexCorpus stages every entry in Cloud Storage, carrying its metadata as the object
// description, then imports the staged objects into the corpus.
func IndexCorpus(ctx context.Context, up Uploader, imp Importer, target CorpusTarget, entries []Entry) (*rag.ImportResult, error) {
	uris := make([]string, 0, len(entries))
	for _, e := range entries {
		uri, err := up.UploadFile(ctx, gcs.Object{
			Name: path.Join(target.Prefix, e.Filename),
			Metadata: map[string]string{
				"display_name": e.Filename,
				"description":  e.Description,
			},
		}, e.Path)
		if err != nil {
			return nil, fmt.Errorf("stage %s: %w", e.Filename, err)
		}
		uris = append(uris, uri)
	}

	res, err := imp.ImportFiles(ctx, target.Corpus, uris, target.Chunking)
	if err != nil {
		return nil, err
	}

	logging.FromContext(ctx).InfoContext(ctx, "Indexed documents to RAG corpus",
		slog.String("corpus", target.Corpus),
		slog.Int("documents", len(entries)),
	)
	return res, nil
}

// CorpusSpec configures [CreateCorpus].
type CorpusSpec struct {
	Corpus   rag.CorpusSpec
	Prefix   string
	Chunking rag.Chunking
}

// DefaultCorpusSpec returns the corpus settings used when none are given.
func DefaultCorpusSpec() CorpusSpec {
	return CorpusSpec{
		Corpus: rag.CorpusSpec{
			DisplayName:    "markdown_corpus",
			Description:    "Markdown files corpus",
			EmbeddingModel: rag.DefaultEmbeddingModel,
		},
	}
}

// CreateCorpus creates a corpus, stages every *.md file of mdDir and imports them.
// The created corpus is returned even when staging or import fails afterwards, so callers can record it.
func CreateCorpus(ctx context.Context, cc CorpusCreator, up Uploader, imp Importer, spec CorpusSpec, mdDir string) (*rag.Corpus, error) {
	if spec.Corpus.EmbeddingModel == "" {
		spec.Corpus.EmbeddingModel = rag.DefaultEmbeddingModel
	}

	corpus, err := cc.CreateCorpus(ctx, spec.Corpus)
	if err != nil {
		return nil, err
	}

	uris, err := up.UploadDir(ctx, mdDir, "*.md", spec.Prefix)
	if err != nil {
		return corpus, fmt.Errorf("stage markdown files: %w", err)
	}
	if len(uris) == 0 {
		logging.FromContext(ctx).WarnContext(ctx, "No markdown files to import",
			slog.String("dir", mdDir),
		)
		return corpus, nil
	}

	if _, err := imp.ImportFiles(ctx, corpus.Name, uris, spec.Chunking); err != nil {
		return corpus, err
	}
	return corpus, nil
}
