// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package replay

import (
	"fmt"

	"github.com/bytedance/sonic"
)

const (
	maxText = 200
	maxJSON = 100

	unknownAuthor = "unknown"
)

// Event is one decoded stream event.
type Event struct {
	// Author is the event author, "unknown" when absent.
	Author string
	// Content is nil when the event has no content field.
	Content *Content
	// Raw is the whole decoded event.
	Raw map[string]any
}

// Content holds the parts of an event.
type Content struct {
	Parts []Part
}

// Part is a single content part. At most one of its fields is set.
type Part struct {
	Text             *string
	FunctionCall     *FunctionCall
	FunctionResponse *FunctionResponse
}

// FunctionCall is a tool invocation requested by the model.
type FunctionCall struct {
	Name string
	Args any
}

// FunctionResponse is the result of a tool invocation.
type FunctionResponse struct {
	Name     string
	Response any
}

// Decode parses one JSON stream event. Both camelCase and snake_case part keys are accepted.
func Decode(data []byte) (*Event, error) {
	var raw map[string]any
	if err := sonic.ConfigFastest.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode event: %w", err)
	}

	ev := &Event{Author: unknownAuthor, Raw: raw}
	if a, ok := raw["author"].(string); ok {
		ev.Author = a
	}

	content, ok := raw["content"]
	if !ok {
		return ev, nil
	}
	ev.Content = &Content{}
	cm, _ := content.(map[string]any)
	parts, _ := cm["parts"].([]any)
	for _, p := range parts {
		pm, ok := p.(map[string]any)
		if !ok {
			continue
		}
		ev.Content.Parts = append(ev.Content.Parts, decodePart(pm))
	}
	return ev, nil
}

func decodePart(pm map[string]any) Part {
	var part Part
	if t, ok := pm["text"].(string); ok {
		part.Text = &t
		return part
	}
	if fc, ok := lookup(pm, "functionCall", "function_call"); ok {
		name, _ := fc["name"].(string)
		args, ok := fc["args"]
		if !ok || args == nil {
			args = map[string]any{}
		}
		part.FunctionCall = &FunctionCall{Name: name, Args: args}
		return part
	}
	if fr, ok := lookup(pm, "functionResponse", "function_response"); ok {
		name, _ := fr["name"].(string)
		resp, ok := fr["response"]
		if !ok || resp == nil {
			resp = map[string]any{}
		}
		part.FunctionResponse = &FunctionResponse{Name: name, Response: resp}
	}
	return part
}

func lookup(m map[string]any, keys ...string) (map[string]any, bool) {
	for _, k := range keys {
		if v, ok := m[k].(map[string]any); ok {
			return v, true
		}
	}
	return nil, false
}
