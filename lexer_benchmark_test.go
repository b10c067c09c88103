package jinja2tt

import (
	"strings"
	"testing"
)

var benchmarkTemplate = strings.Repeat(`<ul>
{% for item in items if item.visible %}
  <li class="{{ 'first' if loop.first else '' }}">{{ item.name|upper }} ({{ loop.index }})</li>
{% else %}
  <li>empty</li>
{% endfor %}
</ul>
{# navigation #}
{% if user and user.is_admin %}{{ user.name|default("anonymous") }}{% endif %}
`, 20)

func BenchmarkLex(b *testing.B) {
	delims := DefaultDelimiters()
	for i := 0; i < b.N; i++ {
		if _, err := lex("<bench>", benchmarkTemplate, delims); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkTranspile(b *testing.B) {
	t := NewTranspiler(nil)
	for i := 0; i < b.N; i++ {
		if _, err := t.Transpile(benchmarkTemplate); err != nil {
			b.Fatal(err)
		}
	}
}
