package jinja2tt

import (
	"os"

	"github.com/juju/errors"
)

// Version string
const Version = "v1"

// Options configures a Transpiler.
type Options struct {
	// Delimiters overrides the six tag delimiter strings. Nil keeps the
	// standard Jinja2 set.
	Delimiters *Delimiters

	// Filters adds or overrides filter mappings for this instance only.
	Filters map[string]FilterMapping

	// Debug enables token-stream and AST dumps through the package
	// logger.
	Debug bool
}

// Transpiler converts Jinja2-syntax template text into Template Toolkit 2
// syntax. It holds only immutable configuration; per-call state lives in
// the lexer, parser and emitter values created for each call, so one
// instance may be reused across inputs and goroutines.
type Transpiler struct {
	delims  Delimiters
	filters map[string]FilterMapping
	debug   bool
}

// NewTranspiler creates a Transpiler. A nil options pointer gives the
// default delimiters and the builtin filter table.
func NewTranspiler(opts *Options) *Transpiler {
	t := &Transpiler{
		delims:  DefaultDelimiters(),
		filters: copyFilterMappings(builtinFilterMappings),
	}
	if opts == nil {
		return t
	}
	if opts.Delimiters != nil {
		t.delims = *opts.Delimiters
	}
	for name, m := range opts.Filters {
		t.filters[name] = m
	}
	t.debug = opts.Debug
	return t
}

// Transpile runs the full pipeline on the given input and returns the
// Target text. The returned error, if any, is a *Error carrying the kind,
// position and stage of the failure.
func (t *Transpiler) Transpile(input string) (string, error) {
	return t.transpile("<string>", input)
}

// TranspileFile reads the given UTF-8 file and transpiles its content.
func (t *Transpiler) TranspileFile(path string) (string, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Annotatef(err, "reading template %q", path)
	}
	return t.transpile(path, string(buf))
}

func (t *Transpiler) transpile(name, input string) (string, error) {
	tokens, err := lex(name, input, t.delims)
	if err != nil {
		return "", err
	}
	if t.debug || options.debug {
		logf("token stream for %s:\n%s", name, DumpTokens(tokens))
	}

	root, err := parse(name, input, tokens)
	if err != nil {
		return "", err
	}
	if t.debug || options.debug {
		logf("AST for %s:\n%s", name, DumpAST(root))
	}

	return newEmitter(t.filters).emit(root)
}

// Tokenize exposes the lexer stage: it returns the token sequence for the
// given input, terminated by exactly one EOF token.
func (t *Transpiler) Tokenize(input string) ([]*Token, error) {
	return lex("<string>", input, t.delims)
}

// Parse exposes the parser stage: it returns the document tree for the
// given input.
func (t *Transpiler) Parse(input string) (*NodeRoot, error) {
	tokens, err := lex("<string>", input, t.delims)
	if err != nil {
		return nil, err
	}
	return parse("<string>", input, tokens)
}

var defaultTranspiler *Transpiler

func init() {
	defaultTranspiler = NewTranspiler(nil)
}

// Transpile runs the default Transpiler on the given input.
func Transpile(input string) (string, error) {
	return defaultTranspiler.Transpile(input)
}

// TranspileFile runs the default Transpiler on the given file.
func TranspileFile(path string) (string, error) {
	return defaultTranspiler.TranspileFile(path)
}

// Must is a helper which panics if a transpilation couldn't complete
// successfully. This is how you would use it:
//
//	out := jinja2tt.Must(jinja2tt.Transpile("{{ name }}"))
func Must(out string, err error) string {
	if err != nil {
		panic(err)
	}
	return out
}
