// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package deploy_test

import (
	"context"
	"errors"
	"maps"
	"path"
	"slices"
	"sync"
	"testing"

	"github.com/go-json-experiment/json"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/go-a2a/datastore-rag/config"
	"github.com/go-a2a/datastore-rag/deploy"
	"github.com/go-a2a/datastore-rag/internal/gcs"
	"github.com/go-a2a/datastore-rag/internal/vertexai/reasoningengine"
)

type fakeStager struct {
	mu      sync.Mutex
	objects map[string][]byte
	err     error
}

func (f *fakeStager) UploadBytes(_ context.Context, obj gcs.Object, data []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.objects == nil {
		f.objects = map[string][]byte{}
	}
	f.objects[obj.Name] = data
	return gcs.URI("staging", obj.Name), nil
}

type fakeDeployer struct {
	created []reasoningengine.Spec
	updated map[string]reasoningengine.Spec
}

func (f *fakeDeployer) Create(_ context.Context, spec reasoningengine.Spec) (*reasoningengine.Engine, error) {
	f.created = append(f.created, spec)
	return &reasoningengine.Engine{Name: "projects/p/locations/l/reasoningEngines/new", DisplayName: spec.DisplayName}, nil
}

func (f *fakeDeployer) Update(_ context.Context, id string, spec reasoningengine.Spec) (*reasoningengine.Engine, error) {
	if f.updated == nil {
		f.updated = map[string]reasoningengine.Spec{}
	}
	f.updated[id] = spec
	return &reasoningengine.Engine{Name: id}, nil
}

func TestRun_Create(t *testing.T) {
	t.Parallel()

	st := &fakeStager{}
	d := &fakeDeployer{}
	spec := deploy.Spec{
		DisplayName: "rag_agent",
		Description: "docs agent",
		Source:      []byte("tarball"),
		Manifest:    []byte(`{"name":"rag_agent"}`),
		StagingID:   "abc",
	}

	engine, err := deploy.Run(t.Context(), st, d, spec)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if engine.Name != "projects/p/locations/l/reasoningEngines/new" {
		t.Errorf("engine = %+v", engine)
	}

	wantObjects := map[string][]byte{
		"agent_engine/abc/agent.tar.gz": []byte("tarball"),
		"agent_engine/abc/agent.json":   []byte(`{"name":"rag_agent"}`),
	}
	if diff := cmp.Diff(wantObjects, st.objects); diff != "" {
		t.Errorf("staged objects mismatch (-want +got):\n%s", diff)
	}

	wantSpec := []reasoningengine.Spec{{
		DisplayName:     "rag_agent",
		Description:     "docs agent",
		ObjectURI:       "gs://staging/agent_engine/abc/agent.json",
		DependenciesURI: "gs://staging/agent_engine/abc/agent.tar.gz",
	}}
	if diff := cmp.Diff(wantSpec, d.created); diff != "" {
		t.Errorf("create spec mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_Update(t *testing.T) {
	t.Parallel()

	st := &fakeStager{}
	d := &fakeDeployer{}
	id := "projects/p/locations/l/reasoningEngines/9"

	if _, err := deploy.Run(t.Context(), st, d, deploy.Spec{DisplayName: "rag_agent", Update: id}); err != nil {
		t.Fatal(err)
	}
	if len(d.created) != 0 {
		t.Error("Create called for an update")
	}
	if _, ok := d.updated[id]; !ok {
		t.Errorf("updated = %v, want %s", d.updated, id)
	}

	dirs := map[string]bool{}
	for name := range st.objects {
		dirs[path.Dir(name)] = true
	}
	if len(st.objects) != 2 || len(dirs) != 1 {
		t.Fatalf("objects not staged under one prefix: %v", slices.Collect(maps.Keys(st.objects)))
	}
	for dir := range dirs {
		if _, err := uuid.Parse(path.Base(dir)); err != nil || path.Dir(dir) != "agent_engine" {
			t.Errorf("staging prefix = %q, want agent_engine/<uuid>", dir)
		}
	}
}

func TestRun_StagingFailure(t *testing.T) {
	t.Parallel()

	errBucket := errors.New("bucket not found")
	d := &fakeDeployer{}
	if _, err := deploy.Run(t.Context(), &fakeStager{err: errBucket}, d, deploy.Spec{}); !errors.Is(err, errBucket) {
		t.Fatalf("Run() error = %v, want %v", err, errBucket)
	}
	if len(d.created) != 0 || len(d.updated) != 0 {
		t.Error("engine deployed after staging failure")
	}
}

func TestManifest(t *testing.T) {
	t.Parallel()

	s := config.Defaults()
	s.Agent.ProjectID = "p1"
	s.Agent.DatastoreID = "ds1"
	s.Deployment.DisplayName = "Docs Agent"

	data, err := deploy.Manifest(s)
	if err != nil {
		t.Fatal(err)
	}
	var got deploy.AgentManifest
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}

	want := deploy.AgentManifest{
		Name:        "rag_agent",
		DisplayName: "Docs Agent",
		Model:       "gemini-2.0-flash",
		Instruction: config.DefaultInstruction,
		Entrypoint:  "cmd/ragagent",
		Project:     "p1",
		Location:    "us-central1",
		Tool: deploy.ToolManifest{
			Name:          "search_datastore",
			Backend:       "datastore",
			DatastoreID:   "ds1",
			DatastoreKind: "Document",
			PageSize:      10,
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Manifest() mismatch (-want +got):\n%s", diff)
	}
}

func TestNewManifest_RAG(t *testing.T) {
	t.Parallel()

	s := config.Defaults()
	s.Agent.Backend = config.BackendRAG
	s.Agent.RAGCorpus = "projects/p/locations/l/ragCorpora/1"

	m, err := deploy.NewManifest(s)
	if err != nil {
		t.Fatal(err)
	}
	want := deploy.ToolManifest{
		Name:                    "retrieve_rag_documentation",
		Backend:                 "rag",
		RAGCorpus:               "projects/p/locations/l/ragCorpora/1",
		SimilarityTopK:          10,
		VectorDistanceThreshold: 0.6,
	}
	if diff := cmp.Diff(want, m.Tool); diff != "" {
		t.Errorf("Tool mismatch (-want +got):\n%s", diff)
	}

	s.Agent.PromptID = "missing"
	if _, err := deploy.NewManifest(s); !errors.Is(err, config.ErrPromptNotFound) {
		t.Errorf("NewManifest() error = %v, want ErrPromptNotFound", err)
	}
}
