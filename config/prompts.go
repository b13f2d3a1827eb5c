// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
)

// DefaultPromptID names the built-in agent instruction.
const DefaultPromptID = "agent_instructions"

// DefaultInstruction is the built-in agent instruction.
var DefaultInstruction = heredoc.Doc(`
	You are a helpful assistant with access to a specialized datastore.
	Use the datastore search tool to retrieve information when a user asks a knowledge question.
	If the conversation is casual or you are unsure, ask clarifying questions.
	Always cite the retrieved sources when answering.
`)

// Prompts maps a prompt name to its instruction text.
type Prompts map[string]string

// Get returns the prompt named name, or [ErrPromptNotFound].
func (p Prompts) Get(name string) (string, error) {
	text, ok := p[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrPromptNotFound, name)
	}
	return text, nil
}
