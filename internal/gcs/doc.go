// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package gcs stages files in a Cloud Storage bucket.
package gcs
