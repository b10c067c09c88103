package jinja2tt

import (
	"log"
	"os"
)

type jinja2ttOptions struct {
	debug bool
}

var (
	options = jinja2ttOptions{}
	logger  = log.New(os.Stderr, "[jinja2tt] ", log.LstdFlags)
)

// SetDebug enables or disables package-wide debug logging (token stream and
// AST dumps during transpilation).
func SetDebug(b bool) {
	options.debug = b
}

func logf(format string, items ...interface{}) {
	if options.debug {
		logger.Printf(format, items...)
	}
}
