package insight_test

import (
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-chanterelle/pkg/insight"
)

func TestParseDocument_JSONObject(t *testing.T) {
	doc, err := insight.ParseDocument([]byte(`{"model_id":"m","version":"1","content":[{"type":"section","id":"s","title":"S"}]}`), "doc.json")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if doc.ModelID != "m" || len(doc.Content) != 1 {
		t.Fatalf("unexpected document: %+v", doc)
	}
}

func TestParseDocument_BareList(t *testing.T) {
	doc, err := insight.ParseDocument([]byte("- type: error\n  id: e\n  title: E\n  error: boom\n"), "list.yaml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	item := doc.Content[0].(insight.Item)
	if item.StringField("error") != "boom" {
		t.Fatalf("unexpected item: %+v", item)
	}
}

func TestParseDocument_Errors(t *testing.T) {
	if _, err := insight.ParseDocument([]byte("  "), "empty.json"); err == nil {
		t.Fatalf("expected error for empty file")
	}
	if _, err := insight.ParseDocument([]byte(`"just a string"`), "str.json"); err == nil {
		t.Fatalf("expected error for scalar document")
	}
}

func TestLoadFS_MissingFile(t *testing.T) {
	if _, err := insight.LoadFS(fstest.MapFS{}, "nope.json"); err == nil {
		t.Fatalf("expected read error")
	}
}

func TestErrorResult(t *testing.T) {
	nodes := insight.ErrorResult("boom")
	section := nodes[0].(insight.Section)
	if section.Color != insight.ColorRed || section.Title != "Error" {
		t.Fatalf("unexpected error section: %+v", section)
	}
	item := section.Items[0].(insight.Item)
	if item.Kind() != insight.KindError || item.StringField("error") != "boom" {
		t.Fatalf("unexpected error item: %+v", item)
	}
}
