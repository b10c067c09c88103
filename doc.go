// Package jinja2tt mechanically translates templates written in
// Jinja2-family syntax into Template Toolkit 2 syntax. It is a
// source-to-source transpiler, not a renderer: expressions are never
// evaluated and no data context is consulted.
//
// Basic usage:
//
//	out, err := jinja2tt.Transpile("{% if user %}Hi {{ user.name|upper }}{% endif %}")
//	// out == "[% IF user %]Hi [% user.name.upper %][% END %]"
//
// Transpilers can be configured with custom tag delimiters and additional
// filter mappings:
//
//	t := jinja2tt.NewTranspiler(&jinja2tt.Options{
//		Filters: map[string]jinja2tt.FilterMapping{
//			"markdown": &jinja2tt.MapTTFilter{Name: "markdown"},
//		},
//	})
//	out, err := t.TranspileFile("page.j2")
package jinja2tt
