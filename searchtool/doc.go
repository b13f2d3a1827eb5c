// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package searchtool exposes a query function as an agent tool that takes a single "query" argument.
package searchtool
