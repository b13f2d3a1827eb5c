// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads agent and deployment settings.
//
// Settings are resolved from built-in defaults, YAML files in a configuration
// directory, a dotenv file and the process environment, in increasing order of
// precedence. The loaded [Settings] value is never mutated afterwards.
package config
