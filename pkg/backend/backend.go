// Package backend declares the remote procedures the presentation layer
// consumes. The model runner, settings persistence and directory picker live
// behind these calls; implementations decide the transport.
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/goliatone/go-chanterelle/pkg/insight"
	"github.com/goliatone/go-chanterelle/pkg/model"
)

// Command names as the backend knows them.
const (
	CommandListModels          = "list_models"
	CommandGetModel            = "get_model"
	CommandInvokeModel         = "invoke_model"
	CommandWarmupModel         = "warmup_model"
	CommandGetSettings         = "get_settings"
	CommandSetProjectsDir      = "set_projects_directory"
	CommandOpenDirectoryDialog = "open_directory_dialog"
)

// Backend is the full set of remote procedures. Calls are independent and
// carry no timeout of their own; callers bound them through ctx.
type Backend interface {
	ListModels(ctx context.Context) ([]model.Summary, error)
	GetModel(ctx context.Context, project string) (*ModelDetails, error)
	InvokeModel(ctx context.Context, project string, inputs map[string]any) (*InvokeResult, error)
	WarmupModel(ctx context.Context, project string) (*WarmupResult, error)
	GetSettings(ctx context.Context) (*Settings, error)
	SetProjectsDirectory(ctx context.Context, path string) error
	// OpenDirectoryDialog returns ok=false when the user cancels the picker.
	OpenDirectoryDialog(ctx context.Context) (path string, ok bool, err error)
}

// ModelDetails is the response of get_model.
type ModelDetails struct {
	Model       model.Meta        `json:"model"`
	Findings    *insight.Document `json:"findings"`
	ProjectPath string            `json:"project_path"`
}

// InvokeResult is either a list of result nodes or a handler error.
type InvokeResult struct {
	Sections []insight.Node
	Error    string
}

// Failed reports whether the handler returned an error payload.
func (r *InvokeResult) Failed() bool {
	return r != nil && r.Error != ""
}

// UnmarshalJSON accepts a node array or an {"error": "..."} object.
func (r *InvokeResult) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "{") {
		var payload struct {
			Error *string `json:"error"`
		}
		if err := json.Unmarshal(data, &payload); err != nil {
			return fmt.Errorf("backend: decode invoke result: %w", err)
		}
		if payload.Error == nil {
			return fmt.Errorf("backend: decode invoke result: object without error")
		}
		*r = InvokeResult{Error: *payload.Error}
		return nil
	}
	if trimmed == "null" {
		*r = InvokeResult{}
		return nil
	}

	nodes, err := insight.DecodeNodes(data)
	if err != nil {
		return fmt.Errorf("backend: decode invoke result: %w", err)
	}
	*r = InvokeResult{Sections: nodes}
	return nil
}

// MarshalJSON mirrors UnmarshalJSON.
func (r InvokeResult) MarshalJSON() ([]byte, error) {
	if r.Error != "" {
		return json.Marshal(map[string]string{"error": r.Error})
	}
	if r.Sections == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(r.Sections)
}

// WarmupResult is the response of warmup_model.
type WarmupResult struct {
	Warmup bool   `json:"warmup"`
	Error  string `json:"error,omitempty"`
}

// Settings is the persisted backend configuration.
type Settings struct {
	ProjectsDirectory string `json:"projects_directory"`
}
