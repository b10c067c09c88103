package jinja2tt

import "testing"

// The builtin table must cover every documented mapping with the right
// disposition.
func TestBuiltinFilterTable(t *testing.T) {
	vmethods := map[string]string{
		"upper": "upper", "lower": "lower", "capitalize": "ucfirst",
		"trim": "trim", "first": "first", "last": "last",
		"length": "size", "count": "size", "reverse": "reverse",
		"sort": "sort", "join": "join", "unique": "unique",
		"batch": "batch", "slice": "slice", "replace": "replace",
		"dictsort": "sort", "items": "pairs", "int": "int",
		"select": "grep",
	}
	for source, target := range vmethods {
		m, ok := builtinFilterMappings[source].(*MapVmethod)
		if !ok {
			t.Errorf("filter %q: want vmethod disposition, got %T", source, builtinFilterMappings[source])
			continue
		}
		if m.Name != target {
			t.Errorf("filter %q maps to vmethod %q, want %q", source, m.Name, target)
		}
	}

	ttFilters := map[string]string{
		"title": "title", "striptags": "html_strip", "escape": "html_entity",
		"e": "html_entity", "forceescape": "html_entity", "truncate": "truncate",
		"wordwrap": "wrap", "center": "center", "indent": "indent",
		"format": "format", "urlencode": "uri", "tojson": "json",
		"pprint": "dumper",
	}
	for source, target := range ttFilters {
		m, ok := builtinFilterMappings[source].(*MapTTFilter)
		if !ok {
			t.Errorf("filter %q: want filter disposition, got %T", source, builtinFilterMappings[source])
			continue
		}
		if m.Name != target {
			t.Errorf("filter %q maps to filter %q, want %q", source, m.Name, target)
		}
	}

	for _, source := range []string{"abs", "round", "default", "d", "min", "max", "wordcount", "attr"} {
		if _, ok := builtinFilterMappings[source].(*MapCustom); !ok {
			t.Errorf("filter %q: want custom disposition, got %T", source, builtinFilterMappings[source])
		}
	}

	for _, source := range []string{"safe", "float", "list", "string"} {
		if _, ok := builtinFilterMappings[source].(*MapDrop); !ok {
			t.Errorf("filter %q: want drop disposition, got %T", source, builtinFilterMappings[source])
		}
	}

	// Deliberately unmapped approximations stay unmapped and pass
	// through untouched.
	for _, source := range []string{"sum", "reject"} {
		if FilterMappingExists(source) {
			t.Errorf("filter %q should not have a builtin mapping", source)
		}
	}
}
