// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package discovery

import (
	"context"
	"fmt"
	"log/slog"

	"cloud.google.com/go/auth/credentials"
	discoveryengine "cloud.google.com/go/discoveryengine/apiv1beta"
	"cloud.google.com/go/discoveryengine/apiv1beta/discoveryenginepb"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/go-a2a/datastore-rag/searcher"
)

// GlobalLocation is the multi-region location served by the default endpoint.
const GlobalLocation = "global"

// Endpoint returns the gRPC endpoint serving location, or "" for the library default.
func Endpoint(location string) string {
	if location == "" || location == GlobalLocation {
		return ""
	}
	return location + "-discoveryengine.googleapis.com:443"
}

// Client is a [searcher.Index] backed by the Discovery Engine search service.
type Client struct {
	sc         *discoveryengine.SearchClient
	logger     *slog.Logger
	clientOpts []option.ClientOption
}

var _ searcher.Index = (*Client)(nil)

// Option is a functional option for configuring the [Client].
type Option func(*Client)

// WithLogger sets the logger for the [Client].
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithClientOptions passes opts to the search client in place of the detected
// credentials and regional endpoint.
func WithClientOptions(opts ...option.ClientOption) Option {
	return func(c *Client) {
		c.clientOpts = append(c.clientOpts, opts...)
	}
}

// NewClient creates a [Client] for data stores in location.
func NewClient(ctx context.Context, location string, opts ...Option) (*Client, error) {
	c := &Client{logger: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}

	clientOpts := c.clientOpts
	if len(clientOpts) == 0 {
		creds, err := credentials.DetectDefault(&credentials.DetectOptions{
			Scopes: discoveryengine.DefaultAuthScopes(),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to detect default credentials: %w", err)
		}
		clientOpts = []option.ClientOption{option.WithAuthCredentials(creds)}
		if ep := Endpoint(location); ep != "" {
			clientOpts = append(clientOpts, option.WithEndpoint(ep))
		}
	}

	sc, err := discoveryengine.NewSearchClient(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create search client: %w", err)
	}
	c.sc = sc

	c.logger.InfoContext(ctx, "Discovery Engine client initialized",
		slog.String("location", location),
	)

	return c, nil
}

// Search implements [searcher.Index].
//
// Every page is fetched before returning. Pages keep the server order.
func (c *Client) Search(ctx context.Context, req *discoveryenginepb.SearchRequest) ([]*discoveryenginepb.SearchResponse, error) {
	it := c.sc.Search(ctx, req)
	return Drain(it, req.GetPageSize(), req.GetPageToken())
}

// Drain walks the paginated search iterator and collects the raw response of each page.
func Drain(it *discoveryengine.SearchResponse_SearchResultIterator, pageSize int32, pageToken string) ([]*discoveryenginepb.SearchResponse, error) {
	pager := iterator.NewPager(it, int(pageSize), pageToken)

	var pages []*discoveryenginepb.SearchResponse
	for {
		var results []*discoveryenginepb.SearchResponse_SearchResult
		next, err := pager.NextPage(&results)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch search page %d: %w", len(pages)+1, err)
		}

		resp, ok := it.Response.(*discoveryenginepb.SearchResponse)
		if !ok || resp == nil {
			resp = &discoveryenginepb.SearchResponse{Results: results, NextPageToken: next}
		}
		pages = append(pages, resp)

		if next == "" {
			return pages, nil
		}
	}
}

// Close releases the underlying search client.
func (c *Client) Close() error {
	return c.sc.Close()
}
