package httpclient_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-chanterelle/pkg/backend"
	"github.com/goliatone/go-chanterelle/pkg/backend/httpclient"
	"github.com/goliatone/go-chanterelle/pkg/insight"
)

type recorded struct {
	path string
	args map[string]any
}

func newServer(t *testing.T, status int, body string, seen *recorded) *httpclient.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		var payload struct {
			Args map[string]any `json:"args"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if seen != nil {
			seen.path = r.URL.Path
			seen.args = payload.Args
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	client, err := httpclient.New(srv.URL + "/api/")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestListModels(t *testing.T) {
	var seen recorded
	client := newServer(t, http.StatusOK, `[{"project_name":"p","model_id":"m","model_name":"M","description":"d","tags":{"a":"b"}}]`, &seen)

	list, err := client.ListModels(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if seen.path != "/api/invoke/list_models" {
		t.Fatalf("unexpected path %q", seen.path)
	}
	if len(list) != 1 || list[0].ProjectName != "p" || list[0].Tags["a"] != "b" {
		t.Fatalf("unexpected list: %+v", list)
	}
}

func TestInvokeModel_SendsArgsAndDecodesNodes(t *testing.T) {
	var seen recorded
	client := newServer(t, http.StatusOK, `[{"type":"section","id":"s","title":"S","items":[]}]`, &seen)

	res, err := client.InvokeModel(context.Background(), "proj", map[string]any{"x": 1.0})
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	want := map[string]any{"projectName": "proj", "inputs": map[string]any{"x": 1.0}}
	if diff := cmp.Diff(want, seen.args); diff != "" {
		t.Fatalf("args mismatch (-want +got):\n%s", diff)
	}
	if res.Failed() || len(res.Sections) != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if _, ok := res.Sections[0].(insight.Section); !ok {
		t.Fatalf("expected section node, got %T", res.Sections[0])
	}
}

func TestInvokeModel_HandlerError(t *testing.T) {
	client := newServer(t, http.StatusOK, `{"error":"boom"}`, nil)

	res, err := client.InvokeModel(context.Background(), "proj", nil)
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if !res.Failed() || res.Error != "boom" {
		t.Fatalf("expected handler error, got %+v", res)
	}
}

func TestErrorNormalization(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		message string
		noDir   bool
	}{
		{"string body", 500, `"No projects directory set"`, backend.NoProjectsDirectoryGuidance, true},
		{"error object", 400, `{"error":"bad input"}`, "bad input", false},
		{"message object", 502, `{"message":"upstream"}`, "upstream", false},
		{"plain text", 500, `kaput`, "kaput", false},
		{"empty", 503, ``, "server error (status code = 503)", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := newServer(t, tc.status, tc.body, nil)
			_, err := client.GetSettings(context.Background())
			if err == nil {
				t.Fatalf("expected error")
			}
			var backendErr *backend.Error
			if !errors.As(err, &backendErr) {
				t.Fatalf("expected *backend.Error, got %T", err)
			}
			if backendErr.Status != tc.status || backendErr.Command != backend.CommandGetSettings {
				t.Fatalf("unexpected error fields: %+v", backendErr)
			}
			if got := backend.Message(err); got != tc.message {
				t.Fatalf("message = %q, want %q", got, tc.message)
			}
			if errors.Is(err, backend.ErrNoProjectsDirectory) != tc.noDir {
				t.Fatalf("ErrNoProjectsDirectory match = %v, want %v", !tc.noDir, tc.noDir)
			}
		})
	}
}

func TestOpenDirectoryDialog(t *testing.T) {
	client := newServer(t, http.StatusOK, `null`, nil)
	_, ok, err := client.OpenDirectoryDialog(context.Background())
	if err != nil || ok {
		t.Fatalf("expected cancelled dialog, got ok=%v err=%v", ok, err)
	}

	client = newServer(t, http.StatusOK, `"/data/projects"`, nil)
	path, ok, err := client.OpenDirectoryDialog(context.Background())
	if err != nil || !ok || path != "/data/projects" {
		t.Fatalf("unexpected dialog result %q ok=%v err=%v", path, ok, err)
	}
}

func TestNew_RejectsBadBase(t *testing.T) {
	for _, base := range []string{"", "ftp://host", "::"} {
		if _, err := httpclient.New(base); err == nil {
			t.Errorf("expected error for %q", base)
		}
	}
}
