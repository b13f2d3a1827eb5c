// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package deploy packages the agent source and publishes it to Vertex AI Agent Engine.
//
// A deployment stages a gzip tarball of the source tree and a JSON manifest under
// gs://<bucket>/agent_engine/<uuid>/, then creates a reasoning engine from them or
// updates an existing one in place.
package deploy
