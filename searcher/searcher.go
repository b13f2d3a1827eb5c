// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package searcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"cloud.google.com/go/discoveryengine/apiv1beta/discoveryenginepb"
)

// Index is the remote search index.
type Index interface {
	// Search submits req and returns every result page in server order.
	// Implementations drain the paginator before returning.
	Search(ctx context.Context, req *discoveryenginepb.SearchRequest) ([]*discoveryenginepb.SearchResponse, error)
}

// Store is the remote key-value document store.
type Store interface {
	// GetMulti looks up one record per id within kind and namespace.
	// The returned slice has len(ids) entries in input order; a missing record is a nil entry, not an error.
	GetMulti(ctx context.Context, kind, namespace string, ids []string) ([]*Entity, error)
}

// Processor reduces a combined [Result] to the caller's output type.
type Processor[T any] func(ctx context.Context, res *Result) (T, error)

// Identity is the [Processor] that returns the combined result unchanged.
func Identity(_ context.Context, res *Result) (*Result, error) {
	return res, nil
}

// Searcher searches an [Index] and hydrates the results from a [Store].
//
// A Searcher holds no mutable state after construction and is safe for concurrent use.
type Searcher[T any] struct {
	cfg     Config
	index   Index
	store   Store
	process Processor[T]
	logger  *slog.Logger
}

// Option configures a [Searcher].
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger for the [Searcher].
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// New returns a [Searcher] whose Run yields the raw combined [Result].
func New(cfg Config, index Index, store Store, opts ...Option) *Searcher[*Result] {
	return NewWithProcessor(cfg, index, store, Identity, opts...)
}

// NewWithProcessor returns a [Searcher] whose Run yields the output of process.
// A nil process is not allowed; use [New] for the raw result.
func NewWithProcessor[T any](cfg Config, index Index, store Store, process Processor[T], opts ...Option) *Searcher[T] {
	o := &options{logger: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}
	return &Searcher[T]{
		cfg:     cfg,
		index:   index,
		store:   store,
		process: process,
		logger:  o.logger,
	}
}

// SearchOption adjusts a single search request.
type SearchOption func(*discoveryenginepb.SearchRequest)

// WithPageToken starts the search at the page identified by token.
func WithPageToken(token string) SearchOption {
	return func(req *discoveryenginepb.SearchRequest) {
		req.PageToken = token
	}
}

// WithFilter restricts the search with a Discovery Engine filter expression.
func WithFilter(filter string) SearchOption {
	return func(req *discoveryenginepb.SearchRequest) {
		req.Filter = filter
	}
}

// WithRequest passes arbitrary extra fields through to the search request.
func WithRequest(fn func(*discoveryenginepb.SearchRequest)) SearchOption {
	return SearchOption(fn)
}

// NewRequest builds the search request for query.
func (s *Searcher[T]) NewRequest(query string, opts ...SearchOption) *discoveryenginepb.SearchRequest {
	req := &discoveryenginepb.SearchRequest{
		ServingConfig: s.cfg.ServingConfig(),
		Branch:        s.cfg.Branch(),
		Query:         query,
		PageSize:      s.cfg.EffectivePageSize(),
	}
	for _, opt := range opts {
		opt(req)
	}
	return req
}

// Search runs query against the index and returns every result page.
func (s *Searcher[T]) Search(ctx context.Context, query string, opts ...SearchOption) ([]*discoveryenginepb.SearchResponse, error) {
	req := s.NewRequest(query, opts...)

	s.logger.InfoContext(ctx, "Searching data store",
		slog.String("serving_config", req.GetServingConfig()),
		slog.String("query", query),
		slog.Int("page_size", int(req.GetPageSize())),
	)

	return s.index.Search(ctx, req)
}

// ErrLookupMismatch is returned when a [Store] answers a lookup with a different number of entries than ids.
var ErrLookupMismatch = errors.New("searcher: store returned a mismatched lookup")

// FetchEntities looks up the records for ids with a single batched call.
// The result has one entry per id, nil where no record exists.
func (s *Searcher[T]) FetchEntities(ctx context.Context, ids []string) ([]*Entity, error) {
	entities, err := s.store.GetMulti(ctx, s.cfg.Kind, s.cfg.Namespace, ids)
	if err != nil {
		return nil, err
	}
	if len(entities) != len(ids) {
		return nil, fmt.Errorf("%w: %d entries for %d ids", ErrLookupMismatch, len(entities), len(ids))
	}
	return entities, nil
}

// Run searches for query, hydrates every matched identifier and applies the processor.
//
// The store is not called when hydration is disabled or the search matched nothing.
// Errors from either remote call are returned unchanged. A lookup answering with the
// wrong number of entries fails with [ErrLookupMismatch].
func (s *Searcher[T]) Run(ctx context.Context, query string, opts ...SearchOption) (T, error) {
	var zero T

	pages, err := s.Search(ctx, query, opts...)
	if err != nil {
		return zero, err
	}

	res := &Result{
		Pages: pages,
		IDs:   make([][]string, len(pages)),
	}
	var all []string
	for i, page := range pages {
		ids := make([]string, 0, len(page.GetResults()))
		for _, r := range page.GetResults() {
			ids = append(ids, r.GetId())
		}
		res.IDs[i] = ids
		all = append(all, ids...)
	}

	if len(all) > 0 && !s.cfg.DisableHydration {
		entities, err := s.FetchEntities(ctx, all)
		if err != nil {
			return zero, err
		}
		res.Entities = reshape(entities, res.IDs)
	}

	s.logger.InfoContext(ctx, "Search completed",
		slog.Int("pages", len(pages)),
		slog.Int("ids", len(all)),
		slog.Int("hydrated", res.Found()),
	)

	return s.process(ctx, res)
}

// reshape splits the flat lookup result back into per-page slices matching ids.
// flat holds exactly one entry per id.
func reshape(flat []*Entity, ids [][]string) [][]*Entity {
	out := make([][]*Entity, len(ids))
	for i, page := range ids {
		out[i], flat = flat[:len(page):len(page)], flat[len(page):]
	}
	return out
}
