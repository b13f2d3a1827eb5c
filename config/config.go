// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/tiendc/go-deepcopy"
	"gopkg.in/yaml.v3"
)

// Search backends selectable with [AgentConfig.Backend].
const (
	BackendDatastore = "datastore"
	BackendRAG       = "rag"
)

const (
	agentFile      = "agent.yaml"
	deploymentFile = "deployment.yaml"
	promptsFile    = "prompts.yaml"
)

// AgentConfig configures the agent and its retrieval backend.
type AgentConfig struct {
	Name     string `yaml:"name"`
	Model    string `yaml:"model"`
	PromptID string `yaml:"prompt_id"`

	ProjectID string `yaml:"project_id"`
	Location  string `yaml:"location"`

	// Backend is either BackendDatastore or BackendRAG.
	Backend string `yaml:"backend"`

	// DatastoreLocation is the Discovery Engine location of the data store: global, us or eu.
	DatastoreLocation  string `yaml:"datastore_location"`
	DatastoreID        string `yaml:"datastore_id"`
	DatastoreKind      string `yaml:"datastore_kind"`
	DatastoreNamespace string `yaml:"datastore_namespace"`
	DatabaseID         string `yaml:"database_id"`
	PageSize           int32  `yaml:"page_size"`

	RAGCorpus               string  `yaml:"rag_corpus"`
	SimilarityTopK          int32   `yaml:"similarity_top_k"`
	VectorDistanceThreshold float64 `yaml:"vector_distance_threshold"`
}

// DeploymentConfig configures deployment to Agent Engine.
type DeploymentConfig struct {
	Project       string `yaml:"project"`
	Location      string `yaml:"location"`
	StagingBucket string `yaml:"staging_bucket"`
	AgentEngineID string `yaml:"agent_engine_id"`
	DisplayName   string `yaml:"display_name"`
}

// Settings is the fully resolved configuration.
type Settings struct {
	Agent      AgentConfig
	Deployment DeploymentConfig
	Prompts    Prompts
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		Agent: AgentConfig{
			Name:                    "rag_agent",
			Model:                   "gemini-2.0-flash",
			PromptID:                DefaultPromptID,
			Location:                "us-central1",
			Backend:                 BackendDatastore,
			DatastoreLocation:       "global",
			DatastoreKind:           "Document",
			PageSize:                10,
			SimilarityTopK:          10,
			VectorDistanceThreshold: 0.6,
		},
		Deployment: DeploymentConfig{
			Location: "us-central1",
		},
		Prompts: Prompts{DefaultPromptID: DefaultInstruction},
	}
}

// Options controls where [Load] reads from.
type Options struct {
	// Dir holds agent.yaml, deployment.yaml and prompts.yaml. Empty skips the files.
	Dir string
	// EnvFile is a dotenv file. Empty skips it.
	EnvFile string
	// LookupEnv reads the process environment. Nil means os.LookupEnv.
	LookupEnv func(key string) (string, bool)
}

// Load resolves [Settings] from the sources named by opts. Missing files are not an error.
func Load(opts Options) (Settings, error) {
	s := Defaults()

	if opts.Dir != "" {
		if err := readYAML(filepath.Join(opts.Dir, agentFile), &s.Agent); err != nil {
			return Settings{}, err
		}
		if err := readYAML(filepath.Join(opts.Dir, deploymentFile), &s.Deployment); err != nil {
			return Settings{}, err
		}
		var prompts Prompts
		if err := readYAML(filepath.Join(opts.Dir, promptsFile), &prompts); err != nil {
			return Settings{}, err
		}
		for name, text := range prompts {
			s.Prompts[name] = text
		}
	}

	dotenv := map[string]string{}
	if opts.EnvFile != "" {
		m, err := godotenv.Read(opts.EnvFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Settings{}, fmt.Errorf("failed to read env file %s: %w", opts.EnvFile, err)
		}
		if m != nil {
			dotenv = m
		}
	}

	lookupEnv := opts.LookupEnv
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}
	lookup := func(keys ...string) (string, bool) {
		for _, k := range keys {
			if v, ok := lookupEnv(k); ok && v != "" {
				return v, true
			}
		}
		for _, k := range keys {
			if v, ok := dotenv[k]; ok && v != "" {
				return v, true
			}
		}
		return "", false
	}

	if err := applyEnv(&s, lookup); err != nil {
		return Settings{}, err
	}

	if s.Deployment.Project == "" {
		s.Deployment.Project = s.Agent.ProjectID
	}
	if s.Deployment.DisplayName == "" {
		s.Deployment.DisplayName = s.Agent.Name
	}

	return s, nil
}

func applyEnv(s *Settings, lookup func(keys ...string) (string, bool)) error {
	str := func(dst *string, keys ...string) {
		if v, ok := lookup(keys...); ok {
			*dst = v
		}
	}
	str(&s.Agent.Name, "AGENT_NAME")
	str(&s.Agent.Model, "AGENT_MODEL")
	str(&s.Agent.PromptID, "AGENT_PROMPT_ID")
	str(&s.Agent.ProjectID, "GOOGLE_CLOUD_PROJECT", "GCP_PROJECT")
	str(&s.Agent.Location, "GOOGLE_CLOUD_LOCATION", "GCP_LOCATION")
	str(&s.Agent.Backend, "SEARCH_BACKEND")
	str(&s.Agent.DatastoreLocation, "DATASTORE_LOCATION")
	str(&s.Agent.DatastoreID, "DATASTORE_ID")
	str(&s.Agent.DatastoreKind, "DATASTORE_KIND")
	str(&s.Agent.DatastoreNamespace, "DATASTORE_NAMESPACE")
	str(&s.Agent.DatabaseID, "DATASTORE_DATABASE")
	str(&s.Agent.RAGCorpus, "RAG_CORPUS")

	str(&s.Deployment.Project, "GOOGLE_CLOUD_PROJECT", "GCP_PROJECT")
	str(&s.Deployment.Location, "GOOGLE_CLOUD_LOCATION", "GCP_LOCATION")
	str(&s.Deployment.StagingBucket, "STAGING_BUCKET")
	str(&s.Deployment.AgentEngineID, "AGENT_ENGINE_ID")
	str(&s.Deployment.DisplayName, "AGENT_DISPLAY_NAME")

	if v, ok := lookup("SEARCH_PAGE_SIZE"); ok {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			return fmt.Errorf("invalid SEARCH_PAGE_SIZE %q: %w", v, err)
		}
		s.Agent.PageSize = int32(n)
	}
	if v, ok := lookup("RAG_TOP_K"); ok {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			return fmt.Errorf("invalid RAG_TOP_K %q: %w", v, err)
		}
		s.Agent.SimilarityTopK = int32(n)
	}
	if v, ok := lookup("RAG_DISTANCE_THRESHOLD"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid RAG_DISTANCE_THRESHOLD %q: %w", v, err)
		}
		s.Agent.VectorDistanceThreshold = f
	}
	return nil
}

func readYAML(path string, dst any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// Clone returns a deep copy of s.
func (s Settings) Clone() (Settings, error) {
	var out Settings
	if err := deepcopy.Copy(&out, &s); err != nil {
		return Settings{}, fmt.Errorf("failed to copy settings: %w", err)
	}
	return out, nil
}

// Instruction returns the prompt selected by the agent's PromptID.
func (s Settings) Instruction() (string, error) {
	return s.Prompts.Get(s.Agent.PromptID)
}
