package insight_test

import (
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-chanterelle/pkg/insight"
)

func TestBuildTOC_FixtureOutline(t *testing.T) {
	doc, err := insight.LoadFS(os.DirFS("testdata"), "findings.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := []insight.TOCEntry{
		{ID: "overview", Title: "Overview", Level: 1, Type: "section"},
		{ID: "overview__importance", Title: "Feature importance", Level: 2, Type: "bar_chart"},
		{ID: "overview__detail", Title: "Detail", Level: 2, Type: "section"},
		{ID: "overview__detail__notes", Title: "Notes", Level: 3, Type: "text"},
	}
	if diff := cmp.Diff(want, insight.BuildTOC(doc.Content)); diff != "" {
		t.Fatalf("toc mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildTOC_SkipsUntitledButWalksChildren(t *testing.T) {
	nodes := []insight.Node{
		insight.Section{
			Base: insight.Base{Type: insight.KindSection, ID: "root"},
			Items: []insight.Node{
				insight.Item{Base: insight.Base{Type: "table", ID: "t", Title: "Table"}},
				insight.Item{Base: insight.Base{Type: "table", Title: "No id"}},
			},
		},
	}

	want := []insight.TOCEntry{
		{ID: "root__t", Title: "Table", Level: 2, Type: "table"},
		{ID: "root", Title: "No id", Level: 2, Type: "table"},
	}
	if diff := cmp.Diff(want, insight.BuildTOC(nodes)); diff != "" {
		t.Fatalf("toc mismatch (-want +got):\n%s", diff)
	}
}
