// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package searchtool

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/jsonschema-go/jsonschema"
	"google.golang.org/adk/model"
	"google.golang.org/adk/tool"
	"google.golang.org/genai"
)

const (
	// QueryParam is the only input parameter of a search tool.
	QueryParam = "query"
	// ResultKey is the key wrapping the query function output in a tool result.
	ResultKey = "result"
)

// ErrMissingQuery is returned by [Adapter.Run] when the arguments carry no string "query".
var ErrMissingQuery = errors.New("searchtool: missing query argument")

// InputSchema returns the declared input schema: an object with one required string property, query.
func InputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			QueryParam: {
				Type:        "string",
				Description: "User search query",
			},
		},
		Required: []string{QueryParam},
	}
}

// QueryFunc answers a search query.
type QueryFunc[T any] func(ctx context.Context, query string) (T, error)

// Adapter wraps a [QueryFunc] as a named tool.
type Adapter[T any] struct {
	name        string
	description string
	query       QueryFunc[T]
	logger      *slog.Logger
}

// Option configures an [Adapter].
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger for the [Adapter].
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// New returns an [Adapter] named name that answers with query.
func New[T any](name, description string, query QueryFunc[T], opts ...Option) *Adapter[T] {
	o := &options{logger: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}
	return &Adapter[T]{
		name:        name,
		description: description,
		query:       query,
		logger:      o.logger,
	}
}

// Name returns the tool name.
func (a *Adapter[T]) Name() string { return a.name }

// Description returns the tool description.
func (a *Adapter[T]) Description() string { return a.description }

// Run invokes the query function with args["query"] and returns {"result": output}.
//
// Run does not validate args against [InputSchema]; a missing or non-string query
// fails with [ErrMissingQuery]. Query function errors are returned unchanged.
func (a *Adapter[T]) Run(ctx context.Context, args map[string]any) (map[string]any, error) {
	query, ok := args[QueryParam].(string)
	if !ok {
		return nil, fmt.Errorf("%w: tool %s", ErrMissingQuery, a.name)
	}

	a.logger.InfoContext(ctx, "Running search tool",
		slog.String("tool", a.name),
		slog.String("query", query),
	)

	out, err := a.query(ctx, query)
	if err != nil {
		return nil, err
	}
	return map[string]any{ResultKey: out}, nil
}

// Tool returns the adapter as an agent tool declaring [InputSchema].
//
// The declared schema is advertised to the model but not enforced: arguments reach
// [Adapter.Run] as sent, so a missing query fails with [ErrMissingQuery].
func (a *Adapter[T]) Tool() (tool.Tool, error) {
	if a.name == "" {
		return nil, errors.New("searchtool: tool name is empty")
	}
	return &searchTool[T]{adapter: a}, nil
}

// searchTool has the method set the agent runtime looks for on function tools.
type searchTool[T any] struct {
	adapter *Adapter[T]
}

var _ tool.Tool = (*searchTool[any])(nil)

func (t *searchTool[T]) Name() string        { return t.adapter.name }
func (t *searchTool[T]) Description() string { return t.adapter.description }
func (t *searchTool[T]) IsLongRunning() bool { return false }

// Declaration returns the function declaration sent to the model.
func (t *searchTool[T]) Declaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:                 t.adapter.name,
		Description:          t.adapter.description,
		ParametersJsonSchema: InputSchema(),
	}
}

// ProcessRequest registers the tool and its declaration on req.
func (t *searchTool[T]) ProcessRequest(_ tool.Context, req *model.LLMRequest) error {
	name := t.Name()
	if req.Tools == nil {
		req.Tools = make(map[string]any)
	}
	if _, ok := req.Tools[name]; ok {
		return fmt.Errorf("duplicate tool: %q", name)
	}
	req.Tools[name] = t

	if req.Config == nil {
		req.Config = &genai.GenerateContentConfig{}
	}
	decl := t.Declaration()
	for _, gt := range req.Config.Tools {
		if gt != nil && gt.FunctionDeclarations != nil {
			gt.FunctionDeclarations = append(gt.FunctionDeclarations, decl)
			return nil
		}
	}
	req.Config.Tools = append(req.Config.Tools, &genai.Tool{
		FunctionDeclarations: []*genai.FunctionDeclaration{decl},
	})
	return nil
}

// Run passes args to [Adapter.Run]. Arguments that are not an object carry no query.
func (t *searchTool[T]) Run(ctx tool.Context, args any) (map[string]any, error) {
	m, _ := args.(map[string]any)
	return t.adapter.Run(ctx, m)
}
