package jinja2tt

import (
	"fmt"
	"strings"
)

func init() {
	// Vmethods: the Target has a dotted virtual method covering the
	// filter's behavior.
	for source, target := range map[string]string{
		"upper":      "upper",
		"lower":      "lower",
		"capitalize": "ucfirst",
		"trim":       "trim",
		"first":      "first",
		"last":       "last",
		"length":     "size",
		"count":      "size",
		"reverse":    "reverse",
		"sort":       "sort",
		"join":       "join",
		"unique":     "unique",
		"batch":      "batch",
		"slice":      "slice",
		"replace":    "replace",
		"dictsort":   "sort",
		"items":      "pairs",
		"int":        "int",
		"select":     "grep",
	} {
		mustRegisterFilterMapping(source, &MapVmethod{Name: target})
	}

	// Target-side filters applied with the pipe.
	for source, target := range map[string]string{
		"title":       "title",
		"striptags":   "html_strip",
		"escape":      "html_entity",
		"e":           "html_entity",
		"forceescape": "html_entity",
		"truncate":    "truncate",
		"wordwrap":    "wrap",
		"center":      "center",
		"indent":      "indent",
		"format":      "format",
		"urlencode":   "uri",
		"tojson":      "json",
		"pprint":      "dumper",
	} {
		mustRegisterFilterMapping(source, &MapTTFilter{Name: target})
	}

	// Custom formatters for filters without a one-to-one equivalent.
	mustRegisterFilterMapping("abs", &MapCustom{Format: func(base string, args []string) string {
		return fmt.Sprintf("(%s >= 0 ? %s : -%s)", base, base, base)
	}})
	mustRegisterFilterMapping("round", &MapCustom{Format: func(base string, args []string) string {
		precision := "0"
		if len(args) > 0 {
			precision = args[0]
		}
		return fmt.Sprintf("format(%s, '%%.%sf')", base, precision)
	}})
	defaultFormat := func(base string, args []string) string {
		fallback := "''"
		if len(args) > 0 {
			fallback = args[0]
		}
		return fmt.Sprintf("(%s || %s)", base, fallback)
	}
	mustRegisterFilterMapping("default", &MapCustom{Format: defaultFormat})
	mustRegisterFilterMapping("d", &MapCustom{Format: defaultFormat})
	mustRegisterFilterMapping("min", &MapCustom{Format: func(base string, args []string) string {
		return base + ".sort.first"
	}})
	mustRegisterFilterMapping("max", &MapCustom{Format: func(base string, args []string) string {
		return base + ".sort.last"
	}})
	mustRegisterFilterMapping("wordcount", &MapCustom{Format: func(base string, args []string) string {
		return base + ".split.size"
	}})
	mustRegisterFilterMapping("attr", &MapCustom{Format: func(base string, args []string) string {
		if len(args) == 0 {
			return base
		}
		key := strings.Trim(args[0], "'")
		return base + "." + key
	}})

	// Identity in the Target's rendering model: keep the base.
	for _, source := range []string{"safe", "float", "list", "string"} {
		mustRegisterFilterMapping(source, &MapDrop{})
	}
}
