// Package jsontree provides defensive access to untyped JSON trees
// (the map[string]any / []any values produced by encoding/json). The
// Betclic page payload is schema-less and its shape drifts between page
// templates, so all descent into it goes through these helpers instead of
// type assertions chained by hand.
package jsontree

import "sort"

// Dig descends root by successively indexing each key. It returns the
// reached value and true only if every intermediate value is a map
// containing the next key; otherwise it returns (nil, false). It never
// panics on unexpected shapes.
func Dig(root any, path ...string) (any, bool) {
	current := root
	for _, key := range path {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// FindAll collects every value stored under key anywhere in v, searched
// depth-first with maps visited before sequence elements. A map's own
// match is emitted before its other children are descended; remaining map
// keys are walked in sorted order so results are deterministic. Matched
// values are not descended further and results are not deduplicated.
//
// Used to locate the odds-bearing "grouped_markets" substructure, which
// upstream embeds at a depth that varies across page templates.
func FindAll(v any, key string) []any {
	var out []any
	findAll(v, key, &out)
	return out
}

func findAll(v any, key string, out *[]any) {
	switch t := v.(type) {
	case map[string]any:
		if match, ok := t[key]; ok {
			*out = append(*out, match)
		}
		keys := make([]string, 0, len(t))
		for k := range t {
			if k == key {
				continue
			}
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			findAll(t[k], key, out)
		}
	case []any:
		for _, item := range t {
			findAll(item, key, out)
		}
	}
}
