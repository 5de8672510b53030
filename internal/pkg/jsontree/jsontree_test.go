package jsontree

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestDig(t *testing.T) {
	root := map[string]any{
		"b": map[string]any{
			"matches": []any{"m1", "m2"},
			"count":   float64(2),
		},
		"scalar": "x",
	}

	tests := []struct {
		name   string
		path   []string
		want   any
		wantOK bool
	}{
		{"nested hit", []string{"b", "matches"}, []any{"m1", "m2"}, true},
		{"one level", []string{"scalar"}, "x", true},
		{"empty path returns root", nil, root, true},
		{"missing key", []string{"b", "teams"}, nil, false},
		{"descend into scalar", []string{"scalar", "deeper"}, nil, false},
		{"descend into list", []string{"b", "matches", "0"}, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Dig(root, tt.path...)
			if ok != tt.wantOK {
				t.Fatalf("Dig(%v) ok = %v, want %v", tt.path, ok, tt.wantOK)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Dig(%v) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestDigNilRoot(t *testing.T) {
	if _, ok := Dig(nil, "a"); ok {
		t.Error("Dig(nil) should miss")
	}
}

func TestFindAllDepthFirstOrder(t *testing.T) {
	// Target key at depths 0, 2 and 5; exactly three results in
	// depth-first order, shallow match first.
	raw := `{
		"grouped_markets": "depth0",
		"page": {
			"section": {
				"grouped_markets": "depth2",
				"zz": {
					"list": [
						{"wrap": {"inner": {"grouped_markets": "depth5"}}}
					]
				}
			}
		}
	}`
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		t.Fatal(err)
	}

	got := FindAll(v, "grouped_markets")
	want := []any{"depth0", "depth2", "depth5"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FindAll = %v, want %v", got, want)
	}
}

func TestFindAllNoDeduplication(t *testing.T) {
	v := []any{
		map[string]any{"odds": float64(1.5)},
		map[string]any{"odds": float64(1.5)},
	}
	got := FindAll(v, "odds")
	if len(got) != 2 {
		t.Errorf("FindAll returned %d results, want 2 (no dedup)", len(got))
	}
}

func TestFindAllScalarAndEmpty(t *testing.T) {
	if got := FindAll("just a string", "odds"); len(got) != 0 {
		t.Errorf("FindAll on scalar = %v, want empty", got)
	}
	if got := FindAll(nil, "odds"); len(got) != 0 {
		t.Errorf("FindAll on nil = %v, want empty", got)
	}
}

func TestFindAllDoesNotDescendIntoMatches(t *testing.T) {
	v := map[string]any{
		"grouped_markets": map[string]any{
			"grouped_markets": "nested-inside-match",
		},
	}
	got := FindAll(v, "grouped_markets")
	if len(got) != 1 {
		t.Errorf("FindAll = %d results, want 1 (matched value not descended)", len(got))
	}
}
