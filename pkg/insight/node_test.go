package insight_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-chanterelle/pkg/insight"
)

func TestDecodeNodes_SectionsAndItems(t *testing.T) {
	raw := `[
	  {"type":"section","id":"s1","title":"One","color":"green","items_per_row":3,
	   "items":[{"type":"table","id":"t","title":"T","data":{"columns":[],"rows":[]}}]},
	  {"type":"mystery","id":"m","title":"Mystery","extra":true}
	]`

	nodes, err := insight.DecodeNodes([]byte(raw))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(nodes))
	}

	section, ok := nodes[0].(insight.Section)
	if !ok {
		t.Fatalf("expected section, got %T", nodes[0])
	}
	if section.Color != insight.ColorGreen || section.ItemsPerRow != 3 {
		t.Fatalf("unexpected section fields: %+v", section)
	}
	if got := section.Items[0].Kind(); got != insight.KindTable {
		t.Fatalf("expected nested table, got %q", got)
	}

	item, ok := nodes[1].(insight.Item)
	if !ok {
		t.Fatalf("expected item, got %T", nodes[1])
	}
	if item.Kind() != "mystery" {
		t.Fatalf("unknown kinds should decode as items, got %q", item.Kind())
	}
	if v, _ := item.Field("extra"); v != true {
		t.Fatalf("expected payload field to survive, got %v", v)
	}
	if _, ok := item.Field("type"); ok {
		t.Fatalf("base fields must not leak into Fields")
	}
}

func TestDecodeNodes_RejectsNonObjects(t *testing.T) {
	if _, err := insight.DecodeNodes([]byte(`["nope"]`)); err == nil {
		t.Fatalf("expected error for non-object node")
	}
}

func TestSectionJSONRoundTripKeepsType(t *testing.T) {
	section := insight.Section{
		Base:  insight.Base{ID: "s", Title: "S"},
		Items: []insight.Node{insight.NewErrorItem("e", "E", "boom")},
	}
	data, err := json.Marshal(section)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded insight.Section
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Type != insight.KindSection {
		t.Fatalf("expected type section, got %q", decoded.Type)
	}
	item := decoded.Items[0].(insight.Item)
	if item.StringField("error") != "boom" {
		t.Fatalf("expected error payload, got %+v", item.Fields)
	}
}

func TestColorNormalized(t *testing.T) {
	cases := map[insight.Color]insight.Color{
		"":        insight.ColorWhite,
		"RED":     insight.ColorRed,
		" blue ":  insight.ColorBlue,
		"magenta": insight.ColorWhite,
	}
	for in, want := range cases {
		if got := in.Normalized(); got != want {
			t.Errorf("Normalized(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSectionContent(t *testing.T) {
	base := []insight.Node{insight.NewErrorItem("base", "Base", "x")}
	retail := []insight.Node{insight.NewErrorItem("retail", "Retail", "y")}
	section := insight.Section{
		Base:        insight.Base{ID: "s"},
		Items:       base,
		ItemsPerRow: 4,
		Dropdown: &insight.DropdownConfig{
			Enabled:          true,
			DefaultSelection: "retail",
			Options:          []insight.DropdownOption{{ID: "retail"}, {ID: "other"}},
		},
		Subsections: map[string]insight.Subsection{
			"retail": {Items: retail},
		},
	}

	items, perRow := section.Content("retail")
	if diff := cmp.Diff(retail, items); diff != "" {
		t.Fatalf("items mismatch (-want +got):\n%s", diff)
	}
	if perRow != 1 {
		t.Fatalf("expected subsection default of 1 per row, got %d", perRow)
	}

	items, _ = section.Content("other")
	if len(items) != 0 {
		t.Fatalf("missing subsection should yield no items, got %d", len(items))
	}

	section.Dropdown.Enabled = false
	items, perRow = section.Content("retail")
	if len(items) != 1 || items[0].NodeID() != "base" || perRow != 4 {
		t.Fatalf("disabled dropdown should fall back to own items, got %v/%d", items, perRow)
	}
}

func TestNumber(t *testing.T) {
	cases := []struct {
		in   any
		want float64
		ok   bool
	}{
		{float64(1.5), 1.5, true},
		{int(3), 3, true},
		{int64(-2), -2, true},
		{json.Number("4.25"), 4.25, true},
		{"5", 0, false},
		{nil, 0, false},
		{math.NaN(), 0, false},
	}
	for _, tc := range cases {
		got, ok := insight.Number(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("Number(%v) = %v,%v want %v,%v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
