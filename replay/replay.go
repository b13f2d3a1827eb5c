// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package replay

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"strings"

	"github.com/go-a2a/datastore-rag/internal/vertexai/reasoningengine"

	"github.com/go-a2a/datastore-rag/pkg/logging"
)

// DefaultUserID is the user that sessions are created for.
const DefaultUserID = "local-user"

// Prompt is written before each line of user input.
const Prompt = "\n[user]: "

// Engine is a deployed agent that holds sessions. *reasoningengine.Service satisfies it.
type Engine interface {
	Get(ctx context.Context, id string) (*reasoningengine.Engine, error)
	CreateSession(ctx context.Context, id, userID string) (string, error)
	StreamQuery(ctx context.Context, id, userID, sessionID, message string) iter.Seq2[[]byte, error]
}

// Session replays user input against a deployed agent.
type Session struct {
	Engine   Engine
	EngineID string
	UserID   string
}

// Run resolves the engine and creates a session, then reads queries from in until an empty line or EOF,
// streaming each one and writing the rendered events to out.
func (s *Session) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	userID := s.UserID
	if userID == "" {
		userID = DefaultUserID
	}

	engine, err := s.Engine.Get(ctx, s.EngineID)
	if err != nil {
		return err
	}

	sessionID, err := s.Engine.CreateSession(ctx, s.EngineID, userID)
	if err != nil {
		return err
	}
	logging.FromContext(ctx).InfoContext(ctx, "Replay session started",
		slog.String("engine", engine.Name),
		slog.String("display_name", engine.DisplayName),
		slog.String("session_id", sessionID),
	)

	sc := bufio.NewScanner(in)
	for {
		if _, err := io.WriteString(out, Prompt); err != nil {
			return err
		}
		if !sc.Scan() {
			return sc.Err()
		}
		query := strings.TrimRight(sc.Text(), "\r")
		if query == "" {
			return nil
		}

		if err := s.query(ctx, userID, sessionID, query, out); err != nil {
			return err
		}
	}
}

func (s *Session) query(ctx context.Context, userID, sessionID, query string, out io.Writer) error {
	for line, err := range s.Engine.StreamQuery(ctx, s.EngineID, userID, sessionID, query) {
		if err != nil {
			return err
		}
		ev, err := Decode(line)
		if err != nil {
			return err
		}
		for _, l := range Format(ev) {
			if _, err := fmt.Fprintln(out, l); err != nil {
				return err
			}
		}
	}
	return nil
}
