// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package discovery runs paginated searches against a Discovery Engine data store.
package discovery
