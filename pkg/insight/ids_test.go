package insight_test

import (
	"testing"

	"github.com/goliatone/go-chanterelle/pkg/insight"
)

func TestJoinID(t *testing.T) {
	cases := []struct {
		parent, id, want string
	}{
		{"", "a", "a"},
		{"a", "b", "a__b"},
		{"a", "", "a"},
		{"", "", ""},
	}
	for _, tc := range cases {
		if got := insight.JoinID(tc.parent, tc.id); got != tc.want {
			t.Errorf("JoinID(%q,%q) = %q, want %q", tc.parent, tc.id, got, tc.want)
		}
	}

	nested := insight.JoinID(insight.JoinID("grand", "parent"), "child")
	if nested != "grand__parent__child" {
		t.Fatalf("expected ordered join, got %q", nested)
	}
}
