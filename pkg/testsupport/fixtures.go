// Package testsupport loads the shared fixtures used across package tests and
// wires them into the in-memory backend.
package testsupport

import (
	"embed"
	"encoding/json"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-chanterelle/pkg/backend"
	"github.com/goliatone/go-chanterelle/pkg/backend/backendtest"
	"github.com/goliatone/go-chanterelle/pkg/insight"
	"github.com/goliatone/go-chanterelle/pkg/model"
)

//go:embed testdata/*
var fixtures embed.FS

// Fixture names.
const (
	FindingsFixture = "testdata/findings.yaml"
	MetaFixture     = "testdata/meta.json"
	ResultFixture   = "testdata/result.json"
	// Project is the project name the fixtures are registered under.
	Project = "churn"
	// ProjectDir is the directory reported for Project.
	ProjectDir = "/projects/churn"
)

// MustLoadFindings parses the findings document fixture.
func MustLoadFindings(t *testing.T) insight.Document {
	t.Helper()
	doc, err := insight.LoadFS(fixtures, FindingsFixture)
	if err != nil {
		t.Fatalf("load findings: %v", err)
	}
	return doc
}

// MustLoadResult parses the invocation result fixture.
func MustLoadResult(t *testing.T) []insight.Node {
	t.Helper()
	data, err := fixtures.ReadFile(ResultFixture)
	if err != nil {
		t.Fatalf("read result: %v", err)
	}
	nodes, err := insight.DecodeNodes(data)
	if err != nil {
		t.Fatalf("decode result: %v", err)
	}
	return nodes
}

// MustLoadMeta decodes the model metadata fixture.
func MustLoadMeta(t *testing.T) model.Meta {
	t.Helper()
	meta, err := LoadMeta()
	if err != nil {
		t.Fatalf("load meta: %v", err)
	}
	return meta
}

// LoadMeta decodes the model metadata fixture without a *testing.T, for
// setup outside tests.
func LoadMeta() (model.Meta, error) {
	data, err := fixtures.ReadFile(MetaFixture)
	if err != nil {
		return model.Meta{}, fmt.Errorf("testsupport: read meta: %w", err)
	}
	var meta model.Meta
	if err := json.Unmarshal(data, &meta); err != nil {
		return model.Meta{}, fmt.Errorf("testsupport: unmarshal meta: %w", err)
	}
	return meta, nil
}

// NewBackend returns a fake backend serving the fixtures under Project.
func NewBackend(t *testing.T) *backendtest.Fake {
	t.Helper()
	meta := MustLoadMeta(t)
	findings := MustLoadFindings(t)
	return &backendtest.Fake{
		Models: map[string]*backend.ModelDetails{
			Project: {Model: meta, Findings: &findings, ProjectPath: ProjectDir},
		},
		Results: map[string]*backend.InvokeResult{
			Project: {Sections: MustLoadResult(t)},
		},
		Settings: backend.Settings{ProjectsDirectory: filepath.Dir(ProjectDir)},
	}
}
