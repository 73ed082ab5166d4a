// Package backendtest provides an in-memory backend.Backend for tests.
package backendtest

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/goliatone/go-chanterelle/pkg/backend"
	"github.com/goliatone/go-chanterelle/pkg/model"
)

// Call records one invocation on the fake.
type Call struct {
	Command string
	Project string
	Inputs  map[string]any
	Path    string
}

// Fake serves canned responses. Zero value is usable; populate the exported
// fields before use. Methods are safe for concurrent use.
type Fake struct {
	mu sync.Mutex

	Models   map[string]*backend.ModelDetails
	Results  map[string]*backend.InvokeResult
	Warmups  map[string]*backend.WarmupResult
	Settings backend.Settings
	// DialogPath is returned by OpenDirectoryDialog; empty means cancelled.
	DialogPath string
	// Errors forces a command to fail with the supplied error.
	Errors map[string]error

	calls []Call
}

var _ backend.Backend = (*Fake)(nil)

// Calls returns a copy of the recorded calls.
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// CallCount counts recorded calls of command.
func (f *Fake) CallCount(command string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, call := range f.calls {
		if call.Command == command {
			n++
		}
	}
	return n
}

func (f *Fake) record(call Call) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	if err, ok := f.Errors[call.Command]; ok {
		return err
	}
	return nil
}

func (f *Fake) ListModels(ctx context.Context) ([]model.Summary, error) {
	if err := f.record(Call{Command: backend.CommandListModels}); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	names := make([]string, 0, len(f.Models))
	for name := range f.Models {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]model.Summary, 0, len(names))
	for _, name := range names {
		meta := f.Models[name].Model
		out = append(out, model.Summary{
			ProjectName:      name,
			ModelID:          meta.ModelID,
			ModelName:        meta.ModelName,
			Description:      meta.Description,
			DescriptionShort: meta.DescriptionShort,
			Tags:             meta.Tags,
		})
	}
	return out, nil
}

func (f *Fake) GetModel(ctx context.Context, project string) (*backend.ModelDetails, error) {
	if err := f.record(Call{Command: backend.CommandGetModel, Project: project}); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	details, ok := f.Models[project]
	if !ok {
		return nil, backend.NewError(backend.CommandGetModel, fmt.Sprintf("project %q not found", project), 0)
	}
	return details, nil
}

func (f *Fake) InvokeModel(ctx context.Context, project string, inputs map[string]any) (*backend.InvokeResult, error) {
	if err := f.record(Call{Command: backend.CommandInvokeModel, Project: project, Inputs: inputs}); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if res, ok := f.Results[project]; ok {
		return res, nil
	}
	return &backend.InvokeResult{}, nil
}

func (f *Fake) WarmupModel(ctx context.Context, project string) (*backend.WarmupResult, error) {
	if err := f.record(Call{Command: backend.CommandWarmupModel, Project: project}); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if res, ok := f.Warmups[project]; ok {
		return res, nil
	}
	return &backend.WarmupResult{Warmup: true}, nil
}

func (f *Fake) GetSettings(ctx context.Context) (*backend.Settings, error) {
	if err := f.record(Call{Command: backend.CommandGetSettings}); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	settings := f.Settings
	return &settings, nil
}

func (f *Fake) SetProjectsDirectory(ctx context.Context, path string) error {
	if err := f.record(Call{Command: backend.CommandSetProjectsDir, Path: path}); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Settings.ProjectsDirectory = path
	return nil
}

func (f *Fake) OpenDirectoryDialog(ctx context.Context) (string, bool, error) {
	if err := f.record(Call{Command: backend.CommandOpenDirectoryDialog}); err != nil {
		return "", false, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.DialogPath, f.DialogPath != "", nil
}
