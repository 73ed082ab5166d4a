package render_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-chanterelle/pkg/insight"
	"github.com/goliatone/go-chanterelle/pkg/render"
)

type stubRenderer struct{ name string }

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return "text/plain" }
func (s stubRenderer) Render(context.Context, []insight.Node, render.RenderOptions) ([]byte, error) {
	return []byte(s.name), nil
}

func TestRegistry(t *testing.T) {
	registry, err := render.NewRegistry(stubRenderer{name: "html"}, stubRenderer{name: "terminal"})
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	if err := registry.Register(stubRenderer{name: "HTML"}); err == nil {
		t.Fatalf("expected duplicate error")
	}
	if err := registry.Register(stubRenderer{}); err == nil {
		t.Fatalf("expected empty name error")
	}

	got, err := registry.Get(" Terminal ")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name() != "terminal" {
		t.Fatalf("unexpected renderer %q", got.Name())
	}
	if _, err := registry.Get("pdf"); err == nil {
		t.Fatalf("expected missing renderer error")
	}
	if diff := cmp.Diff([]string{"html", "terminal"}, registry.List()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestParseSelections(t *testing.T) {
	got, err := render.ParseSelections([]string{"by_segment:retail", "outer__inner:b", " "})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := map[string]string{"by_segment": "retail", "outer__inner": "b"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("selections mismatch (-want +got):\n%s", diff)
	}

	for _, bad := range []string{"nocolon", ":opt", "section:"} {
		if _, err := render.ParseSelections([]string{bad}); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestRenderOptionsSelection(t *testing.T) {
	section := insight.Section{
		Base:     insight.Base{Type: insight.KindSection, ID: "seg"},
		Dropdown: &insight.DropdownConfig{Enabled: true, DefaultSelection: "a"},
		Subsections: map[string]insight.Subsection{
			"a": {}, "b": {},
		},
	}

	tests := []struct {
		name       string
		selections map[string]string
		want       string
	}{
		{name: "default", want: "a"},
		{name: "requested", selections: map[string]string{"parent__seg": "b"}, want: "b"},
		{name: "unknown falls back", selections: map[string]string{"parent__seg": "zzz"}, want: "a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := render.RenderOptions{Selections: tt.selections}
			if got := opts.Selection("parent__seg", section); got != tt.want {
				t.Fatalf("selection = %q, want %q", got, tt.want)
			}
		})
	}
}
