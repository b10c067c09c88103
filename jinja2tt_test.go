package jinja2tt

import (
	"strings"
	"testing"

	. "gopkg.in/check.v1"
)

// Hook up gocheck into the "go test" runner.

func Test(t *testing.T) { TestingT(t) }

type TestSuite struct{}

var _ = Suite(&TestSuite{})

func (s *TestSuite) TestPlainText(c *C) {
	out, err := Transpile("Hello World")
	c.Assert(err, IsNil)
	c.Check(out, Equals, "Hello World")
}

func (s *TestSuite) TestOutput(c *C) {
	out, err := Transpile("{{ name }}")
	c.Assert(err, IsNil)
	c.Check(out, Equals, "[% name %]")
}

func (s *TestSuite) TestFilterVmethod(c *C) {
	out, err := Transpile("{{ user.name|upper }}")
	c.Assert(err, IsNil)
	c.Check(out, Equals, "[% user.name.upper %]")
}

func (s *TestSuite) TestFilterWithArguments(c *C) {
	out, err := Transpile(`{{ items|join(",") }}`)
	c.Assert(err, IsNil)
	c.Check(out, Equals, "[% items.join(',') %]")
}

func (s *TestSuite) TestFilterChainOrder(c *C) {
	out, err := Transpile("{{ a|first|upper }}")
	c.Assert(err, IsNil)
	c.Check(out, Equals, "[% a.first.upper %]")
}

func (s *TestSuite) TestIfElse(c *C) {
	out, err := Transpile("{% if user %}Hi{% else %}Bye{% endif %}")
	c.Assert(err, IsNil)
	c.Check(out, Equals, "[% IF user %]Hi[% ELSE %]Bye[% END %]")
}

func (s *TestSuite) TestIfElif(c *C) {
	out, err := Transpile("{% if a %}1{% elif b %}2{% elif c %}3{% else %}4{% endif %}")
	c.Assert(err, IsNil)
	c.Check(out, Equals, "[% IF a %]1[% ELSIF b %]2[% ELSIF c %]3[% ELSE %]4[% END %]")
}

func (s *TestSuite) TestFor(c *C) {
	out, err := Transpile("{% for x in items %}{{ x }}{% endfor %}")
	c.Assert(err, IsNil)
	c.Check(out, Equals, "[% FOREACH x IN items %][% x %][% END %]")
}

func (s *TestSuite) TestForDestructuring(c *C) {
	out, err := Transpile("{% for k, v in mapping %}{{ k }}{% endfor %}")
	c.Assert(err, IsNil)
	c.Check(out, Equals, "[% FOREACH k, v IN mapping %][% k %][% END %]")
}

func (s *TestSuite) TestForElse(c *C) {
	out, err := Transpile("{% for x in xs %}a{% else %}b{% endfor %}")
	c.Assert(err, IsNil)
	c.Check(out, Equals, "[% IF xs.size %][% FOREACH x IN xs %]a[% END %][% ELSE %]b[% END %]")
}

func (s *TestSuite) TestForFilter(c *C) {
	out, err := Transpile("{% for x in xs if x.visible %}a{% endfor %}")
	c.Assert(err, IsNil)
	c.Check(out, Equals, "[% FOREACH x IN xs %][% NEXT UNLESS x.visible %]a[% END %]")
}

func (s *TestSuite) TestLoopVariables(c *C) {
	out, err := Transpile("{{ loop.index }}")
	c.Assert(err, IsNil)
	c.Check(strings.Contains(out, "loop.count"), Equals, true)

	out, err = Transpile("{{ loop.length }}")
	c.Assert(err, IsNil)
	c.Check(strings.Contains(out, "loop.size"), Equals, true)

	out, err = Transpile("{{ loop.index0 }}")
	c.Assert(err, IsNil)
	c.Check(strings.Contains(out, "loop.index"), Equals, true)

	out, err = Transpile("{{ loop.revindex }}")
	c.Assert(err, IsNil)
	c.Check(strings.Contains(out, "loop.max - loop.index + 1"), Equals, true)

	out, err = Transpile("{{ loop.first }}")
	c.Assert(err, IsNil)
	c.Check(strings.Contains(out, "loop.first"), Equals, true)
}

func (s *TestSuite) TestBooleans(c *C) {
	out, err := Transpile("{{ true }}")
	c.Assert(err, IsNil)
	c.Check(out, Equals, "[% 1 %]")

	out, err = Transpile("{{ False }}")
	c.Assert(err, IsNil)
	c.Check(out, Equals, "[% 0 %]")
}

func (s *TestSuite) TestNone(c *C) {
	out, err := Transpile("{{ none }}")
	c.Assert(err, IsNil)
	c.Check(out, Equals, "[% undef %]")
}

func (s *TestSuite) TestTernary(c *C) {
	out, err := Transpile("{{ x if c else y }}")
	c.Assert(err, IsNil)
	c.Check(strings.Contains(out, "(c ? x : y)"), Equals, true)
}

func (s *TestSuite) TestTernaryShortForm(c *C) {
	out, err := Transpile("{{ x if c }}")
	c.Assert(err, IsNil)
	c.Check(strings.Contains(out, "(c ? x : '')"), Equals, true)
}

func (s *TestSuite) TestRange(c *C) {
	out, err := Transpile("{{ range(10) }}")
	c.Assert(err, IsNil)
	c.Check(strings.Contains(out, "[0 .. 10 - 1]"), Equals, true)

	out, err = Transpile("{{ range(2, 8) }}")
	c.Assert(err, IsNil)
	c.Check(strings.Contains(out, "[2 .. 8 - 1]"), Equals, true)
}

func (s *TestSuite) TestRangeWithStep(c *C) {
	out, err := Transpile("{{ range(0, 10, 2) }}")
	c.Assert(err, IsNil)
	c.Check(strings.HasPrefix(out, "[%#"), Equals, true)
}

func (s *TestSuite) TestConcat(c *C) {
	out, err := Transpile("{{ a ~ b }}")
	c.Assert(err, IsNil)
	c.Check(strings.Contains(out, "(a _ b)"), Equals, true)
}

func (s *TestSuite) TestComment(c *C) {
	out, err := Transpile("{# hi #}")
	c.Assert(err, IsNil)
	c.Check(out, Equals, "[%# hi %]")
}

func (s *TestSuite) TestWhitespaceControl(c *C) {
	out, err := Transpile("{{- name -}}")
	c.Assert(err, IsNil)
	c.Check(strings.HasPrefix(out, "[%-"), Equals, true)
	c.Check(strings.HasSuffix(out, "-%]"), Equals, true)
}

func (s *TestSuite) TestListAndDict(c *C) {
	out, err := Transpile("{{ [1, 2, 3] }}")
	c.Assert(err, IsNil)
	c.Check(strings.Contains(out, "[1, 2, 3]"), Equals, true)

	out, err = Transpile("{{ {'a': 1} }}")
	c.Assert(err, IsNil)
	c.Check(strings.Contains(out, "{ 'a' => 1 }"), Equals, true)
}

func (s *TestSuite) TestOperatorKeywords(c *C) {
	out, err := Transpile("{{ a and b or not c }}")
	c.Assert(err, IsNil)
	c.Check(out, Equals, "[% ((a AND b) OR NOT c) %]")

	out, err = Transpile("{{ a not in b }}")
	c.Assert(err, IsNil)
	c.Check(out, Equals, "[% (a NOT IN b) %]")

	out, err = Transpile("{{ a in b }}")
	c.Assert(err, IsNil)
	c.Check(out, Equals, "[% (a IN b) %]")

	out, err = Transpile("{{ a // b }}")
	c.Assert(err, IsNil)
	c.Check(out, Equals, "[% (a div b) %]")
}

func (s *TestSuite) TestIsNot(c *C) {
	out, err := Transpile("{{ a is not none }}")
	c.Assert(err, IsNil)
	c.Check(out, Equals, "[% (a is not undef) %]")
}

func (s *TestSuite) TestGetItem(c *C) {
	out, err := Transpile("{{ a[0] }}")
	c.Assert(err, IsNil)
	c.Check(out, Equals, "[% a.0 %]")

	out, err = Transpile("{{ a[k] }}")
	c.Assert(err, IsNil)
	c.Check(out, Equals, "[% a.$k %]")

	out, err = Transpile("{{ a['key'] }}")
	c.Assert(err, IsNil)
	c.Check(out, Equals, "[% a.key %]")
}

func (s *TestSuite) TestSuper(c *C) {
	out, err := Transpile("{{ super() }}")
	c.Assert(err, IsNil)
	c.Check(out, Equals, "[% content %]")
}

func (s *TestSuite) TestNumberSeparators(c *C) {
	out, err := Transpile("{{ 1_000_000 }}")
	c.Assert(err, IsNil)
	c.Check(out, Equals, "[% 1000000 %]")
}

func (s *TestSuite) TestSetInline(c *C) {
	out, err := Transpile("{% set a = 1 %}")
	c.Assert(err, IsNil)
	c.Check(out, Equals, "[% a = 1 %]")

	out, err = Transpile("{% set a, b = 1, 2 %}")
	c.Assert(err, IsNil)
	c.Check(out, Equals, "[% a, b = [1, 2] %]")
}

func (s *TestSuite) TestSetBlock(c *C) {
	out, err := Transpile("{% set x %}Hello{% endset %}")
	c.Assert(err, IsNil)
	c.Check(out, Equals, "[% FILTER set_x %]Hello[% END %][% x = set_x %]")
}

func (s *TestSuite) TestBlock(c *C) {
	out, err := Transpile("{% block content %}Body{% endblock %}")
	c.Assert(err, IsNil)
	c.Check(out, Equals, "[% BLOCK content %]Body[% END %]")
}

func (s *TestSuite) TestBlockTrailingName(c *C) {
	out, err := Transpile("{% block content %}Body{% endblock content %}")
	c.Assert(err, IsNil)
	c.Check(out, Equals, "[% BLOCK content %]Body[% END %]")
}

func (s *TestSuite) TestExtends(c *C) {
	out, err := Transpile(`{% extends "base.html" %}`)
	c.Assert(err, IsNil)
	c.Check(strings.Contains(out, "[% PROCESS base.html %]"), Equals, true)
	c.Check(strings.Contains(out, "[%#"), Equals, true)
}

func (s *TestSuite) TestInclude(c *C) {
	out, err := Transpile(`{% include "nav.html" %}`)
	c.Assert(err, IsNil)
	c.Check(out, Equals, "[% INCLUDE nav.html %]")

	out, err = Transpile(`{% include "nav.html" ignore missing without context %}`)
	c.Assert(err, IsNil)
	c.Check(strings.Contains(out, "[% INCLUDE nav.html %]"), Equals, true)
	c.Check(strings.Contains(out, "ignore missing"), Equals, true)
}

func (s *TestSuite) TestImport(c *C) {
	out, err := Transpile(`{% import "forms.html" as forms %}`)
	c.Assert(err, IsNil)
	c.Check(strings.Contains(out, "[% USE forms = forms.html %]"), Equals, true)
}

func (s *TestSuite) TestFromImport(c *C) {
	out, err := Transpile(`{% from "forms.html" import input, label as lbl %}`)
	c.Assert(err, IsNil)
	c.Check(strings.HasPrefix(out, "[%#"), Equals, true)
	c.Check(strings.Contains(out, "input"), Equals, true)
	c.Check(strings.Contains(out, "label as lbl"), Equals, true)
}

func (s *TestSuite) TestMacro(c *C) {
	out, err := Transpile(`{% macro input(name) %}<input name="{{ name }}">{% endmacro %}`)
	c.Assert(err, IsNil)
	c.Check(out, Equals, `[% MACRO input(name) BLOCK %]<input name="[% name %]">[% END %]`)
}

func (s *TestSuite) TestMacroDefaults(c *C) {
	out, err := Transpile(`{% macro input(name, type="text") %}x{% endmacro %}`)
	c.Assert(err, IsNil)
	c.Check(strings.Contains(out, "[% MACRO input(name, type) BLOCK %]"), Equals, true)
	c.Check(strings.Contains(out, "type = 'text'"), Equals, true)
}

func (s *TestSuite) TestCallBlock(c *C) {
	out, err := Transpile(`{% call dialog("Hi") %}Body{% endcall %}`)
	c.Assert(err, IsNil)
	c.Check(strings.Contains(out, "[% WRAPPER dialog('Hi') %]Body[% END %]"), Equals, true)
}

func (s *TestSuite) TestFilterBlock(c *C) {
	out, err := Transpile("{% filter upper %}x{% endfilter %}")
	c.Assert(err, IsNil)
	c.Check(out, Equals, "[% FILTER upper %]x[% END %]")

	out, err = Transpile("{% filter lower|replace('a', 'b') %}x{% endfilter %}")
	c.Assert(err, IsNil)
	c.Check(out, Equals, "[% FILTER lower | replace('a', 'b') %]x[% END %]")
}

func (s *TestSuite) TestRaw(c *C) {
	out, err := Transpile("{% raw %}{{ untouched }}{% endraw %}")
	c.Assert(err, IsNil)
	c.Check(out, Equals, "{{ untouched }}")
}

func (s *TestSuite) TestWith(c *C) {
	out, err := Transpile("{% with a = 1 %}{{ a }}{% endwith %}")
	c.Assert(err, IsNil)
	c.Check(out, Equals, "[% SET a = 1 %][% a %]")
}

func (s *TestSuite) TestAutoescape(c *C) {
	out, err := Transpile("{% autoescape true %}x{% endautoescape %}")
	c.Assert(err, IsNil)
	c.Check(strings.Contains(out, "autoescape true"), Equals, true)
	c.Check(strings.Contains(out, "x"), Equals, true)
}

func (s *TestSuite) TestStringEscapes(c *C) {
	out, err := Transpile(`{{ "it's" }}`)
	c.Assert(err, IsNil)
	c.Check(out, Equals, `[% 'it\'s' %]`)
}

func (s *TestSuite) TestTextFixedPoint(c *C) {
	input := "no tags here\nat all\r\n"
	out, err := Transpile(input)
	c.Assert(err, IsNil)
	c.Check(out, Equals, input)

	// Twice through changes nothing for plain text.
	again, err := Transpile(out)
	c.Assert(err, IsNil)
	c.Check(again, Equals, input)
}

func (s *TestSuite) TestCustomDelimiters(c *C) {
	t := NewTranspiler(&Options{
		Delimiters: &Delimiters{
			StmtStart:    "<%",
			StmtEnd:      "%>",
			VarStart:     "<<",
			VarEnd:       ">>",
			CommentStart: "<#",
			CommentEnd:   "#>",
		},
	})
	out, err := t.Transpile("<% if a %><< a >><% endif %><# done #>")
	c.Assert(err, IsNil)
	c.Check(out, Equals, "[% IF a %][% a %][% END %][%# done %]")
}

func (s *TestSuite) TestCustomFilterMapping(c *C) {
	t := NewTranspiler(&Options{
		Filters: map[string]FilterMapping{
			"markdown": &MapTTFilter{Name: "markdown"},
		},
	})
	out, err := t.Transpile("{{ body|markdown }}")
	c.Assert(err, IsNil)
	c.Check(out, Equals, "[% body | markdown %]")

	// The default instance is unaffected by the overlay above.
	out, err = Transpile("{{ body|markdown }}")
	c.Assert(err, IsNil)
	c.Check(out, Equals, "[% body | markdown %]")
}

func (s *TestSuite) TestTranspilerReuse(c *C) {
	t := NewTranspiler(nil)
	for i := 0; i < 3; i++ {
		out, err := t.Transpile("{{ name }}")
		c.Assert(err, IsNil)
		c.Check(out, Equals, "[% name %]")
	}
}

func (s *TestSuite) TestUnterminatedVariable(c *C) {
	_, err := Transpile("{{ name")
	c.Assert(err, NotNil)
	terr, ok := err.(*Error)
	c.Assert(ok, Equals, true)
	c.Check(terr.Kind, Equals, LexError)
}

func (s *TestSuite) TestUnmatchedEndif(c *C) {
	_, err := Transpile("{% endif %}")
	c.Assert(err, NotNil)
	terr, ok := err.(*Error)
	c.Assert(ok, Equals, true)
	c.Check(terr.Kind, Equals, ErrUnmatchedClosure)
}

func (s *TestSuite) TestForMissingIn(c *C) {
	_, err := Transpile("{% for x items %}{% endfor %}")
	c.Assert(err, NotNil)
	terr, ok := err.(*Error)
	c.Assert(ok, Equals, true)
	c.Check(terr.Kind, Equals, ErrUnexpectedToken)
}

func (s *TestSuite) TestUnknownStatement(c *C) {
	_, err := Transpile("{% bogus %}")
	c.Assert(err, NotNil)
	terr, ok := err.(*Error)
	c.Assert(ok, Equals, true)
	c.Check(terr.Kind, Equals, ErrUnknownStatement)
}

func (s *TestSuite) TestUnclosedIf(c *C) {
	_, err := Transpile("{% if a %}x")
	c.Assert(err, NotNil)
}

func (s *TestSuite) TestMust(c *C) {
	c.Check(Must(Transpile("{{ a }}")), Equals, "[% a %]")
	c.Check(func() { Must(Transpile("{{ a")) }, PanicMatches, `.*not closed.*`)
}
