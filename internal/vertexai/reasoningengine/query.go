// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package reasoningengine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"

	"cloud.google.com/go/aiplatform/apiv1beta1/aiplatformpb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/go-a2a/datastore-rag/internal/pool"
)

// ErrNoSessionID is returned when create_session answers without an id.
var ErrNoSessionID = errors.New("reasoningengine: session has no id")

// CreateSession creates a session for userID on the engine id and returns the session id.
func (s *Service) CreateSession(ctx context.Context, id, userID string) (string, error) {
	input, err := structpb.NewStruct(map[string]any{"user_id": userID})
	if err != nil {
		return "", fmt.Errorf("failed to build session input: %w", err)
	}

	resp, err := s.execution.QueryReasoningEngine(ctx, &aiplatformpb.QueryReasoningEngineRequest{
		Name:        s.ResourceName(id),
		Input:       input,
		ClassMethod: MethodCreateSession,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	sessionID, err := SessionID(resp.GetOutput())
	if err != nil {
		return "", err
	}
	s.logger.InfoContext(ctx, "Session created",
		slog.String("user_id", userID),
		slog.String("session_id", sessionID),
	)
	return sessionID, nil
}

// SessionID extracts the id field of a create_session output.
func SessionID(out *structpb.Value) (string, error) {
	id := out.GetStructValue().GetFields()["id"].GetStringValue()
	if id == "" {
		return "", ErrNoSessionID
	}
	return id, nil
}

// StreamQuery sends message to the engine id within the session and yields one JSON document per event.
func (s *Service) StreamQuery(ctx context.Context, id, userID, sessionID, message string) iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		input, err := structpb.NewStruct(map[string]any{
			"user_id":    userID,
			"session_id": sessionID,
			"message":    message,
		})
		if err != nil {
			yield(nil, fmt.Errorf("failed to build query input: %w", err))
			return
		}

		stream, err := s.execution.StreamQueryReasoningEngine(ctx, &aiplatformpb.StreamQueryReasoningEngineRequest{
			Name:        s.ResourceName(id),
			Input:       input,
			ClassMethod: MethodStreamQuery,
		})
		if err != nil {
			yield(nil, fmt.Errorf("failed to stream query: %w", err))
			return
		}

		recv := func() ([]byte, error) {
			body, err := stream.Recv()
			if err != nil {
				return nil, err
			}
			return body.GetData(), nil
		}
		for line, err := range Lines(recv) {
			if !yield(line, err) || err != nil {
				return
			}
		}
	}
}

// Lines reassembles newline-delimited documents from chunks returned by recv until it reports io.EOF.
// Blank lines are skipped and a trailing document without a newline is still yielded.
func Lines(recv func() ([]byte, error)) iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		buf := pool.Buffer.Get()
		defer pool.Buffer.Put(buf)
		for {
			chunk, err := recv()
			if errors.Is(err, io.EOF) {
				if rest := bytes.TrimSpace(bytes.Clone(buf.Bytes())); len(rest) > 0 {
					yield(rest, nil)
				}
				return
			}
			if err != nil {
				yield(nil, fmt.Errorf("failed to receive stream chunk: %w", err))
				return
			}

			buf.Write(chunk)
			for {
				i := bytes.IndexByte(buf.Bytes(), '\n')
				if i < 0 {
					break
				}
				line := bytes.TrimSpace(bytes.Clone(buf.Next(i + 1)))
				if len(line) == 0 {
					continue
				}
				if !yield(line, nil) {
					return
				}
			}
		}
	}
}
