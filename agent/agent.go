// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package agent

import (
	"context"
	"errors"
	"fmt"

	adkagent "google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/model"
	"google.golang.org/adk/model/gemini"
	"google.golang.org/adk/tool"
	"google.golang.org/genai"

	"github.com/go-a2a/datastore-rag/config"
)

// DefaultDescription describes the agent to parent agents and the launcher UI.
const DefaultDescription = "Answers questions using documents retrieved from a search backend."

// Config names and instructs the agent.
type Config struct {
	Name        string
	Description string
	Instruction string
}

// New returns an LLM agent that can call exactly one tool, t.
func New(llm model.LLM, cfg Config, t tool.Tool) (adkagent.Agent, error) {
	if t == nil {
		return nil, errors.New("agent: tool is required")
	}
	desc := cfg.Description
	if desc == "" {
		desc = DefaultDescription
	}

	a, err := llmagent.New(llmagent.Config{
		Name:        cfg.Name,
		Description: desc,
		Model:       llm,
		Instruction: cfg.Instruction,
		Tools:       []tool.Tool{t},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create agent %s: %w", cfg.Name, err)
	}
	return a, nil
}

// NewModel returns the Gemini model named by the settings, served by Vertex AI in the agent's project and location.
func NewModel(ctx context.Context, s config.Settings) (model.LLM, error) {
	llm, err := gemini.NewModel(ctx, s.Agent.Model, &genai.ClientConfig{
		Project:  s.Agent.ProjectID,
		Location: s.Agent.Location,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create model %s: %w", s.Agent.Model, err)
	}
	return llm, nil
}
