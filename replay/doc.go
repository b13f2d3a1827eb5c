// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package replay chats with a deployed agent from a terminal and renders the streamed events.
package replay
