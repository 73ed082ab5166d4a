package tui_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-chanterelle/pkg/model"
	"github.com/goliatone/go-chanterelle/pkg/renderers/tui"
	"github.com/goliatone/go-chanterelle/pkg/testsupport"
)

// stubDriver replays scripted answers. An empty input answer accepts the
// prompt default.
type stubDriver struct {
	inputs    []string
	selectIdx []int
	confirm   []bool
	textAreas []string

	selects []tui.SelectConfig
	infos   []string
}

func (s *stubDriver) Input(_ context.Context, cfg tui.InputConfig) (string, error) {
	if len(s.inputs) == 0 {
		return "", errors.New("no input scripted for " + cfg.Message)
	}
	val := s.inputs[0]
	s.inputs = s.inputs[1:]
	if val == "" {
		val = cfg.Default
	}
	if cfg.Validator != nil {
		if err := cfg.Validator(val); err != nil {
			return "", err
		}
	}
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, cfg tui.ConfirmConfig) (bool, error) {
	if len(s.confirm) == 0 {
		return false, errors.New("no confirm scripted for " + cfg.Message)
	}
	val := s.confirm[0]
	s.confirm = s.confirm[1:]
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg tui.SelectConfig) (int, error) {
	s.selects = append(s.selects, cfg)
	if len(s.selectIdx) == 0 {
		return -1, errors.New("no select scripted for " + cfg.Message)
	}
	val := s.selectIdx[0]
	s.selectIdx = s.selectIdx[1:]
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, cfg tui.TextAreaConfig) (string, error) {
	if len(s.textAreas) == 0 {
		return "", errors.New("no textarea scripted for " + cfg.Message)
	}
	val := s.textAreas[0]
	s.textAreas = s.textAreas[1:]
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infos = append(s.infos, msg)
	return nil
}

func ptr[T any](v T) *T { return &v }

func TestFill_WalksGroupsAndAppliesPreset(t *testing.T) {
	meta := testsupport.MustLoadMeta(t)
	driver := &stubDriver{
		selectIdx: []int{1, 3},
		inputs:    []string{"", "ABC", "a.csv, b.csv"},
		confirm:   []bool{true},
	}

	values, err := tui.New(tui.WithPromptDriver(driver)).Fill(context.Background(), meta, nil)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}

	want := map[string]any{
		"segment": "business",
		"tenure":  "200",
		"code":    "ABC",
		"active":  true,
		"upload":  []any{"a.csv", "b.csv"},
	}
	if diff := cmp.Diff(want, values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"Customer - Who", "Other Inputs"}, driver.infos); diff != "" {
		t.Fatalf("headings mismatch (-want +got):\n%s", diff)
	}
	wantPreset := []string{tui.KeepCurrent, "new", "loyal", "corporate"}
	if diff := cmp.Diff(wantPreset, driver.selects[1].Options); diff != "" {
		t.Fatalf("preset options mismatch (-want +got):\n%s", diff)
	}
}

func TestFill_PresetOptionsFollowDependency(t *testing.T) {
	meta := testsupport.MustLoadMeta(t)
	driver := &stubDriver{
		selectIdx: []int{0, 0},
		inputs:    []string{"12", "", ""},
		confirm:   []bool{false},
	}

	values, err := tui.New(tui.WithPromptDriver(driver)).Fill(context.Background(), meta, nil)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}

	wantSegment := []string{"retail", "Business"}
	if diff := cmp.Diff(wantSegment, driver.selects[0].Options); diff != "" {
		t.Fatalf("segment options mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"", "B2B"}, driver.selects[0].Descriptions); diff != "" {
		t.Fatalf("segment descriptions mismatch (-want +got):\n%s", diff)
	}
	wantPreset := []string{tui.KeepCurrent, "new", "loyal"}
	if diff := cmp.Diff(wantPreset, driver.selects[1].Options); diff != "" {
		t.Fatalf("preset options mismatch (-want +got):\n%s", diff)
	}
	if values["tenure"] != "12" || values["upload"] != nil || values["code"] != "" {
		t.Fatalf("unexpected values: %#v", values)
	}
}

func TestFill_SeedBecomesDefault(t *testing.T) {
	meta := testsupport.MustLoadMeta(t)
	driver := &stubDriver{
		selectIdx: []int{1, 0},
		inputs:    []string{"", "", ""},
		confirm:   []bool{true},
	}

	values, err := tui.New(tui.WithPromptDriver(driver)).Fill(context.Background(), meta, map[string]any{"segment": "business", "tenure": "30"})
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	if got := driver.selects[0].DefaultIndex; got != 1 {
		t.Fatalf("expected seeded segment to be the default, got index %d", got)
	}
	if values["tenure"] != "30" {
		t.Fatalf("expected seeded tenure, got %#v", values["tenure"])
	}
}

func TestFill_Aborted(t *testing.T) {
	meta := testsupport.MustLoadMeta(t)
	driver := &abortingDriver{stubDriver: &stubDriver{}}

	_, err := tui.New(tui.WithPromptDriver(driver)).Fill(context.Background(), meta, nil)
	if !errors.Is(err, tui.ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

type abortingDriver struct {
	*stubDriver
}

func (a *abortingDriver) Select(context.Context, tui.SelectConfig) (int, error) {
	return 0, tui.ErrAborted
}

func TestInputValidator(t *testing.T) {
	limit := func(v float64) *float64 { return &v }
	constraints := &model.Constraints{Min: limit(0), Max: limit(120)}

	cases := []struct {
		name    string
		input   model.Input
		c       *model.Constraints
		answer  string
		wantErr bool
	}{
		{name: "int in range", input: model.Input{Name: "n", Type: model.InputInt}, c: constraints, answer: "12"},
		{name: "int above max", input: model.Input{Name: "n", Type: model.InputInt}, c: constraints, answer: "121", wantErr: true},
		{name: "int fraction", input: model.Input{Name: "n", Type: model.InputInt}, c: constraints, answer: "1.5", wantErr: true},
		{name: "float fraction", input: model.Input{Name: "n", Type: model.InputFloat}, c: constraints, answer: "1.5"},
		{name: "not a number", input: model.Input{Name: "n", Type: model.InputFloat}, answer: "abc", wantErr: true},
		{name: "blank optional", input: model.Input{Name: "n", Type: model.InputFloat}, answer: " "},
		{name: "blank required", input: model.Input{Name: "n", Type: model.InputString, Required: true}, answer: "", wantErr: true},
		{name: "regex match", input: model.Input{Name: "s", Type: model.InputString}, c: &model.Constraints{Regex: ptr("^[A-Z]{3}$")}, answer: "ABC"},
		{name: "regex mismatch", input: model.Input{Name: "s", Type: model.InputString}, c: &model.Constraints{Regex: ptr("^[A-Z]{3}$")}, answer: "abcd", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tui.InputValidator(tc.input, tc.c)(tc.answer)
			if (err != nil) != tc.wantErr {
				t.Fatalf("wantErr=%v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestFileValidator(t *testing.T) {
	multiple := true
	input := model.Input{Name: "upload", Type: model.InputFile}

	single := tui.FileValidator(input, &model.Constraints{Extensions: []string{".csv"}})
	if err := single("data.CSV"); err != nil {
		t.Fatalf("expected extension match to be case-insensitive: %v", err)
	}
	if err := single("a.csv, b.csv"); err == nil {
		t.Fatalf("expected single-file input to reject two paths")
	}
	if err := single("notes.txt"); err == nil {
		t.Fatalf("expected extension mismatch")
	}

	many := tui.FileValidator(input, &model.Constraints{Extensions: []string{"csv"}, Multiple: &multiple})
	if err := many("a.csv, b.csv"); err != nil {
		t.Fatalf("expected both files accepted: %v", err)
	}
}
