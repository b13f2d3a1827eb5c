// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package reasoningengine

import (
	"time"

	"cloud.google.com/go/aiplatform/apiv1beta1/aiplatformpb"
)

// Class methods invoked on a deployed agent.
const (
	MethodCreateSession = "create_session"
	MethodStreamQuery   = "stream_query"
)

// Spec describes the staged package of an engine.
type Spec struct {
	DisplayName string
	Description string

	// ObjectURI is the gs:// URI of the serialized agent description.
	ObjectURI string
	// DependenciesURI is the gs:// URI of the source tarball.
	DependenciesURI string
	// RequirementsURI is the optional gs:// URI of a requirements file.
	RequirementsURI string
}

// Engine is a deployed reasoning engine.
type Engine struct {
	Name        string
	DisplayName string
	Description string
	CreateTime  time.Time
	UpdateTime  time.Time
}

func engineFromPb(pb *aiplatformpb.ReasoningEngine) *Engine {
	e := &Engine{
		Name:        pb.GetName(),
		DisplayName: pb.GetDisplayName(),
		Description: pb.GetDescription(),
	}
	if ts := pb.GetCreateTime(); ts != nil {
		e.CreateTime = ts.AsTime()
	}
	if ts := pb.GetUpdateTime(); ts != nil {
		e.UpdateTime = ts.AsTime()
	}
	return e
}

// NewEngine builds the engine resource for spec.
func NewEngine(spec Spec) *aiplatformpb.ReasoningEngine {
	return &aiplatformpb.ReasoningEngine{
		DisplayName: spec.DisplayName,
		Description: spec.Description,
		Spec: &aiplatformpb.ReasoningEngineSpec{
			PackageSpec: &aiplatformpb.ReasoningEngineSpec_PackageSpec{
				PickleObjectGcsUri:    spec.ObjectURI,
				DependencyFilesGcsUri: spec.DependenciesURI,
				RequirementsGcsUri:    spec.RequirementsURI,
			},
		},
	}
}
