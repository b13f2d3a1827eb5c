// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package agent assembles the retrieval agent.
//
// The agent is a single LLM agent with exactly one search tool. [Build] wires the
// tool to the configured backend, either Discovery Engine search hydrated from
// Datastore or a RAG Engine corpus, and returns an [App] owning every client.
package agent
