// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package searcher

import "strings"

// DefaultPageSize is the number of search results requested per page when [Config.PageSize] is unset.
const DefaultPageSize int32 = 10

const (
	defaultCollection    = "default_collection"
	defaultServingConfig = "default_serving_config"
	defaultBranch        = "default_branch"
)

// Config identifies the Discovery Engine data store to search and the Datastore kind to hydrate from.
//
// No field is validated. A malformed identifier only surfaces as a remote-call failure.
type Config struct {
	ProjectID   string
	Location    string
	DataStoreID string

	// Kind is the Datastore kind holding the full records.
	Kind string
	// Namespace is the optional Datastore namespace of Kind.
	Namespace string

	// PageSize is the number of results per search page. Zero or negative means DefaultPageSize.
	PageSize int32

	// DisableHydration skips the Datastore lookup entirely.
	DisableHydration bool
}

// EffectivePageSize returns the page size sent with search requests.
func (c Config) EffectivePageSize() int32 {
	if c.PageSize <= 0 {
		return DefaultPageSize
	}
	return c.PageSize
}

// DataStoreResource returns the data store resource name.
func (c Config) DataStoreResource() string {
	return strings.Join([]string{
		"projects", c.ProjectID,
		"locations", c.Location,
		"dataStores", c.DataStoreID,
	}, "/")
}

// ServingConfig returns the resource name of the data store's default serving config.
func (c Config) ServingConfig() string {
	return strings.Join([]string{
		"projects", c.ProjectID,
		"locations", c.Location,
		"collections", defaultCollection,
		"dataStores", c.DataStoreID,
		"servingConfigs", defaultServingConfig,
	}, "/")
}

// Branch returns the resource name of the data store's default branch.
func (c Config) Branch() string {
	return strings.Join([]string{
		"projects", c.ProjectID,
		"locations", c.Location,
		"collections", defaultCollection,
		"dataStores", c.DataStoreID,
		"branches", defaultBranch,
	}, "/")
}
