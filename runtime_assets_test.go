package chanterelle

import (
	"io/fs"
	"strings"
	"testing"
)

func TestRuntimeAssetsFSContainsStylesheetAndScript(t *testing.T) {
	fsys := RuntimeAssetsFS()
	for _, name := range []string{"chanterelle.css", "chanterelle.js"} {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			t.Fatalf("expected %s to be readable: %v", name, err)
		}
		if len(data) == 0 {
			t.Fatalf("expected %s to have content", name)
		}
	}
}

func TestEmbeddedTemplatesIncludeDocument(t *testing.T) {
	data, err := fs.ReadFile(EmbeddedTemplates(), "document.tpl")
	if err != nil {
		t.Fatalf("expected document template: %v", err)
	}
	if !strings.Contains(string(data), "<!DOCTYPE html>") {
		t.Fatalf("expected a full page template")
	}
}
