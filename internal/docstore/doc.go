// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package docstore stores and hydrates document records in Cloud Datastore.
package docstore
