// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package reasoningengine_test

import (
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/go-a2a/datastore-rag/internal/vertexai/reasoningengine"
)

func chunks(parts ...string) func() ([]byte, error) {
	return func() ([]byte, error) {
		if len(parts) == 0 {
			return nil, io.EOF
		}
		p := parts[0]
		parts = parts[1:]
		return []byte(p), nil
	}
}

func collect(t *testing.T, recv func() ([]byte, error)) ([]string, error) {
	t.Helper()
	var out []string
	for line, err := range reasoningengine.Lines(recv) {
		if err != nil {
			return out, err
		}
		out = append(out, string(line))
	}
	return out, nil
}

func TestLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		chunks []string
		want   []string
	}{
		{
			name:   "one_per_chunk",
			chunks: []string{"{\"a\":1}\n", "{\"b\":2}\n"},
			want:   []string{`{"a":1}`, `{"b":2}`},
		},
		{
			name:   "split_across_chunks",
			chunks: []string{"{\"content\":{\"par", "ts\":[]}}\n{\"b\"", ":2}\n"},
			want:   []string{`{"content":{"parts":[]}}`, `{"b":2}`},
		},
		{
			name:   "many_in_one_chunk",
			chunks: []string{"{\"a\":1}\n\n{\"b\":2}\r\n{\"c\":3}"},
			want:   []string{`{"a":1}`, `{"b":2}`, `{"c":3}`},
		},
		{
			name: "empty",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := collect(t, chunks(tt.chunks...))
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Lines() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLines_Error(t *testing.T) {
	t.Parallel()

	errStream := errors.New("stream reset")
	calls := 0
	recv := func() ([]byte, error) {
		calls++
		if calls == 1 {
			return []byte("{\"a\":1}\n"), nil
		}
		return nil, errStream
	}

	got, err := collect(t, recv)
	if !errors.Is(err, errStream) {
		t.Fatalf("error = %v, want %v", err, errStream)
	}
	if diff := cmp.Diff([]string{`{"a":1}`}, got); diff != "" {
		t.Errorf("lines before error mismatch (-want +got):\n%s", diff)
	}
}

func TestSessionID(t *testing.T) {
	t.Parallel()

	ok, err := structpb.NewValue(map[string]any{"id": "s-123", "user_id": "local-user"})
	if err != nil {
		t.Fatal(err)
	}
	if got, err := reasoningengine.SessionID(ok); err != nil || got != "s-123" {
		t.Errorf("SessionID() = %q, %v", got, err)
	}

	empty, err := structpb.NewValue(map[string]any{"user_id": "local-user"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := reasoningengine.SessionID(empty); !errors.Is(err, reasoningengine.ErrNoSessionID) {
		t.Errorf("SessionID() error = %v, want ErrNoSessionID", err)
	}
	if _, err := reasoningengine.SessionID(nil); !errors.Is(err, reasoningengine.ErrNoSessionID) {
		t.Errorf("SessionID(nil) error = %v, want ErrNoSessionID", err)
	}
}

func TestNewEngine(t *testing.T) {
	t.Parallel()

	pb := reasoningengine.NewEngine(reasoningengine.Spec{
		DisplayName:     "rag_agent",
		Description:     "docs",
		ObjectURI:       "gs://b/agent_engine/x/agent.json",
		DependenciesURI: "gs://b/agent_engine/x/agent.tar.gz",
	})
	pkg := pb.GetSpec().GetPackageSpec()
	if pb.GetDisplayName() != "rag_agent" || pb.GetDescription() != "docs" {
		t.Errorf("engine = %v", pb)
	}
	if pkg.GetPickleObjectGcsUri() != "gs://b/agent_engine/x/agent.json" {
		t.Errorf("object uri = %q", pkg.GetPickleObjectGcsUri())
	}
	if pkg.GetDependencyFilesGcsUri() != "gs://b/agent_engine/x/agent.tar.gz" {
		t.Errorf("dependencies uri = %q", pkg.GetDependencyFilesGcsUri())
	}
	if pkg.GetRequirementsGcsUri() != "" {
		t.Errorf("requirements uri = %q, want empty", pkg.GetRequirementsGcsUri())
	}
}
