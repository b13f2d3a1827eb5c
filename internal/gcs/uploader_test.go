// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package gcs_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/go-a2a/datastore-rag/internal/gcs"
)

func TestParseURI(t *testing.T) {
	t.Parallel()

	tests := []struct {
		uri        string
		wantBucket string
		wantObject string
		wantErr    bool
	}{
		{uri: "gs://docs/agent_engine/1/agent.tar.gz", wantBucket: "docs", wantObject: "agent_engine/1/agent.tar.gz"},
		{uri: "gs://docs", wantBucket: "docs"},
		{uri: "gs://docs/", wantBucket: "docs"},
		{uri: "docs/readme.md", wantErr: true},
		{uri: "gs:///readme.md", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			bucket, object, err := gcs.ParseURI(tt.uri)
			if tt.wantErr {
				if !errors.Is(err, gcs.ErrInvalidURI) {
					t.Fatalf("ParseURI() error = %v, want ErrInvalidURI", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if bucket != tt.wantBucket || object != tt.wantObject {
				t.Errorf("ParseURI() = %q, %q, want %q, %q", bucket, object, tt.wantBucket, tt.wantObject)
			}
			if tt.wantObject != "" && gcs.URI(bucket, object) != tt.uri {
				t.Errorf("URI() = %q, want %q", gcs.URI(bucket, object), tt.uri)
			}
		})
	}
}

func TestContentType(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"guide.md":    "text/markdown",
		"GUIDE.MD":    "text/markdown",
		"agent.json":  "application/json",
		"Makefile":    "application/octet-stream",
		"blob.zzzzzz": "application/octet-stream",
	}
	for name, want := range tests {
		if got := gcs.ContentType(name); got != want {
			t.Errorf("ContentType(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestBucketName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "docs", want: "docs"},
		{in: "gs://docs", want: "docs"},
		{in: "gs://docs/", want: "docs"},
		{in: "gs://docs/agent_engine", wantErr: true},
		{in: "", wantErr: true},
		{in: "gs://", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := gcs.BucketName(tt.in)
			if tt.wantErr {
				if !errors.Is(err, gcs.ErrInvalidURI) {
					t.Fatalf("BucketName(%q) error = %v, want ErrInvalidURI", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("BucketName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// storageServer accepts object uploads on the JSON API and records their bodies.
type storageServer struct {
	mu     sync.Mutex
	bodies []string
}

func (s *storageServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	s.mu.Lock()
	s.bodies = append(s.bodies, string(body))
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	io.WriteString(w, `{"bucket":"docs","name":"notes/a.md","size":"5"}`)
}

func (s *storageServer) uploads() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.bodies...)
}

func newTestUploader(t *testing.T) (*gcs.Uploader, *storageServer) {
	t.Helper()

	srv := &storageServer{}
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)

	client, err := storage.NewClient(t.Context(), option.WithEndpoint(ts.URL), option.WithoutAuthentication())
	if err != nil {
		t.Fatal(err)
	}
	u, err := gcs.NewUploader(t.Context(), "gs://docs", gcs.WithClient(client))
	if err != nil {
		t.Fatalf("NewUploader() error = %v", err)
	}
	t.Cleanup(func() { u.Close() })
	return u, srv
}

func TestUploader_UploadFile(t *testing.T) {
	t.Parallel()

	u, srv := newTestUploader(t)
	src := filepath.Join(t.TempDir(), "a.md")
	if err := os.WriteFile(src, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}

	uri, err := u.UploadFile(t.Context(), gcs.Object{Name: "notes/a.md"}, src)
	if err != nil {
		t.Fatalf("UploadFile() error = %v", err)
	}
	if uri != "gs://docs/notes/a.md" {
		t.Errorf("UploadFile() = %q, want gs://docs/notes/a.md", uri)
	}
	bodies := srv.uploads()
	if len(bodies) != 1 || !strings.Contains(bodies[0], "hello") {
		t.Errorf("uploads = %q, want one carrying the file", bodies)
	}
}

func TestUploader_UploadFileReadErrorCommitsNothing(t *testing.T) {
	t.Parallel()

	u, srv := newTestUploader(t)

	// Reading a directory fails after it was opened, in the middle of the copy.
	if _, err := u.UploadFile(t.Context(), gcs.Object{Name: "notes/dir.md"}, t.TempDir()); err == nil {
		t.Fatal("UploadFile() error = nil, want the read error")
	}
	if got := srv.uploads(); len(got) != 0 {
		t.Errorf("uploads = %q, want none after a failed read", got)
	}
}
