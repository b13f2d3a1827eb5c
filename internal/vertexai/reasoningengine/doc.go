// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package reasoningengine deploys agents to Vertex AI Agent Engine and queries them.
//
// Agent Engine resources are reasoning engines. A deployed engine is created from
// a package staged in Cloud Storage, and is queried through class methods such as
// create_session and stream_query. Streaming responses arrive as newline-delimited
// JSON split across HTTP body chunks; [Lines] reassembles them into one JSON
// document per event.
package reasoningengine
