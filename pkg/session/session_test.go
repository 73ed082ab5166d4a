package session_test

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-chanterelle/pkg/backend"
	"github.com/goliatone/go-chanterelle/pkg/backend/backendtest"
	"github.com/goliatone/go-chanterelle/pkg/session"
)

func TestWorkspace(t *testing.T) {
	var ws session.Workspace
	ws.SetActive("churn", "/projects/churn")
	if project, dir := ws.Active(); project != "churn" || dir != "/projects/churn" {
		t.Fatalf("unexpected active project %q %q", project, dir)
	}
	ws.Clear()
	if ws.ProjectDir() != "" {
		t.Fatalf("expected cleared workspace")
	}
}

func TestThemePreference(t *testing.T) {
	var stored []session.Preference
	th := session.NewTheme("", func(p session.Preference) error {
		stored = append(stored, p)
		return nil
	})
	if th.Preference() != session.PreferenceSystem {
		t.Fatalf("expected system default, got %q", th.Preference())
	}

	next, err := th.Toggle(session.PreferenceDark)
	if err != nil || next != session.PreferenceLight {
		t.Fatalf("toggle from resolved dark should go light, got %q %v", next, err)
	}
	next, _ = th.Toggle(session.PreferenceLight)
	if next != session.PreferenceDark {
		t.Fatalf("toggle from light should go dark, got %q", next)
	}
	if len(stored) != 2 {
		t.Fatalf("expected two persisted changes, got %v", stored)
	}

	cfg := th.RendererConfig()
	if cfg.Theme != session.ThemeName || cfg.Variant != "dark" || cfg.CSSVars["--ch-surface"] != "#1e293b" {
		t.Fatalf("unexpected renderer config: %+v", cfg)
	}
}

func TestThemePersistFailureKeepsPreference(t *testing.T) {
	th := session.NewTheme(session.PreferenceLight, func(session.Preference) error { return errors.New("disk full") })
	if err := th.Set(session.PreferenceDark); err == nil {
		t.Fatalf("expected persist error")
	}
	if th.Preference() != session.PreferenceLight {
		t.Fatalf("failed persist must not change preference")
	}
}

func TestParsePreference(t *testing.T) {
	if p, err := session.ParsePreference(" Dark "); err != nil || p != session.PreferenceDark {
		t.Fatalf("unexpected %q %v", p, err)
	}
	if _, err := session.ParsePreference("sepia"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestWarmupTracker(t *testing.T) {
	fake := &backendtest.Fake{Warmups: map[string]*backend.WarmupResult{
		"bad": {Warmup: false, Error: "no python"},
		"odd": {Warmup: false},
	}}
	tracker := session.NewWarmupTracker(fake)

	if got := tracker.Status("good").State; got != session.WarmupIdle {
		t.Fatalf("expected idle before start, got %q", got)
	}

	for _, project := range []string{"good", "bad", "odd"} {
		if !tracker.Start(context.Background(), project) {
			t.Fatalf("expected %s to start", project)
		}
	}
	tracker.Wait()

	if got := tracker.Status("good"); got.State != session.WarmupReady {
		t.Fatalf("expected ready, got %+v", got)
	}
	if got := tracker.Status("bad"); got.State != session.WarmupError || got.Error != "no python" {
		t.Fatalf("expected handler error, got %+v", got)
	}
	if got := tracker.Status("odd"); got.Error != "Failed to warm up model" {
		t.Fatalf("expected default failure message, got %+v", got)
	}
}

func TestWarmupTracker_TransportError(t *testing.T) {
	fake := &backendtest.Fake{Errors: map[string]error{
		backend.CommandWarmupModel: backend.NewError(backend.CommandWarmupModel, "No projects directory set", 500),
	}}
	tracker := session.NewWarmupTracker(fake)
	tracker.Start(context.Background(), "p")
	tracker.Wait()

	if got := tracker.Status("p"); got.Error != backend.NoProjectsDirectoryGuidance {
		t.Fatalf("expected guidance, got %+v", got)
	}
}
