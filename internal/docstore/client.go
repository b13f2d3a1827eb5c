// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package docstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"cloud.google.com/go/auth/credentials"
	"cloud.google.com/go/datastore"
	"google.golang.org/api/option"

	"github.com/go-a2a/datastore-rag/searcher"
)

// ContentProperty is the property holding a document body. It is stored unindexed.
const ContentProperty = "content"

// Client reads and writes document records through a Datastore client.
type Client struct {
	ds     *datastore.Client
	logger *slog.Logger
}

var _ searcher.Store = (*Client)(nil)

// Option is a functional option for configuring the [Client].
type Option func(*options)

type options struct {
	databaseID string
	logger     *slog.Logger
	clientOpts []option.ClientOption
}

// WithDatabase selects a named Datastore database instead of the default one.
func WithDatabase(databaseID string) Option {
	return func(o *options) {
		o.databaseID = databaseID
	}
}

// WithLogger sets the logger for the [Client].
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithClientOptions appends options passed to the underlying Datastore client.
func WithClientOptions(opts ...option.ClientOption) Option {
	return func(o *options) {
		o.clientOpts = append(o.clientOpts, opts...)
	}
}

// NewClient creates a [Client] for projectID using application default credentials.
func NewClient(ctx context.Context, projectID string, opts ...Option) (*Client, error) {
	o := &options{logger: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}

	clientOpts := o.clientOpts
	if len(clientOpts) == 0 {
		creds, err := credentials.DetectDefault(&credentials.DetectOptions{
			Scopes: []string{datastore.ScopeDatastore},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to detect default credentials: %w", err)
		}
		clientOpts = []option.ClientOption{option.WithAuthCredentials(creds)}
	}

	var (
		ds  *datastore.Client
		err error
	)
	if o.databaseID != "" {
		ds, err = datastore.NewClientWithDatabase(ctx, projectID, o.databaseID, clientOpts...)
	} else {
		ds, err = datastore.NewClient(ctx, projectID, clientOpts...)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create datastore client: %w", err)
	}

	o.logger.InfoContext(ctx, "Datastore client initialized",
		slog.String("project_id", projectID),
		slog.String("database_id", o.databaseID),
	)

	return &Client{ds: ds, logger: o.logger}, nil
}

// Key returns the name key of id in kind and namespace.
func Key(kind, namespace, id string) *datastore.Key {
	k := datastore.NameKey(kind, id, nil)
	k.Namespace = namespace
	return k
}

// GetMulti implements [searcher.Store].
//
// The lookup is a single batched call. Missing entities are nil entries.
func (c *Client) GetMulti(ctx context.Context, kind, namespace string, ids []string) ([]*searcher.Entity, error) {
	keys := make([]*datastore.Key, len(ids))
	for i, id := range ids {
		keys[i] = Key(kind, namespace, id)
	}

	dst := make([]datastore.PropertyList, len(keys))
	err := c.ds.GetMulti(ctx, keys, dst)

	missing := make([]bool, len(keys))
	if err != nil {
		var merr datastore.MultiError
		if !errors.As(err, &merr) {
			return nil, err
		}
		for i, e := range merr {
			switch {
			case e == nil:
			case errors.Is(e, datastore.ErrNoSuchEntity):
				missing[i] = true
			default:
				return nil, e
			}
		}
	}

	out := make([]*searcher.Entity, len(keys))
	for i, props := range dst {
		if missing[i] {
			continue
		}
		out[i] = &searcher.Entity{
			Key:        ids[i],
			Kind:       kind,
			Properties: FromPropertyList(props),
		}
	}
	return out, nil
}

// Put writes one record named id. Any existing record with the same key is replaced.
func (c *Client) Put(ctx context.Context, kind, namespace, id string, props searcher.Properties) error {
	key := Key(kind, namespace, id)
	if _, err := c.ds.Put(ctx, key, ToPropertyList(props)); err != nil {
		return fmt.Errorf("failed to put entity %s: %w", key, err)
	}

	c.logger.InfoContext(ctx, "Stored entity",
		slog.String("kind", kind),
		slog.String("id", id),
		slog.Int("properties", len(props)),
	)
	return nil
}

// Close releases the underlying Datastore client.
func (c *Client) Close() error {
	return c.ds.Close()
}
