package main

import (
	"fmt"
	"os"

	"github.com/juju/errors"
	"gopkg.in/yaml.v3"

	"github.com/lucianofp/jinja2tt"
)

// config is the YAML shape of the -config file:
//
//	delimiters:
//	  stmt_start: "<%"
//	  stmt_end: "%>"
//	filters:
//	  capitalize:
//	    vmethod: ucfirst
//	  markdown:
//	    filter: markdown
//	  safe:
//	    drop: true
type config struct {
	Delimiters *delimitersConfig       `yaml:"delimiters"`
	Filters    map[string]filterConfig `yaml:"filters"`
}

type delimitersConfig struct {
	StmtStart    string `yaml:"stmt_start"`
	StmtEnd      string `yaml:"stmt_end"`
	VarStart     string `yaml:"var_start"`
	VarEnd       string `yaml:"var_end"`
	CommentStart string `yaml:"comment_start"`
	CommentEnd   string `yaml:"comment_end"`
}

// filterConfig selects exactly one mapping disposition for a filter name.
type filterConfig struct {
	Vmethod string `yaml:"vmethod"`
	Filter  string `yaml:"filter"`
	Drop    bool   `yaml:"drop"`
}

func loadConfig(path string) (*config, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Annotatef(err, "reading config %q", path)
	}
	var cfg config
	if err := yaml.Unmarshal(buf, &cfg); err != nil {
		return nil, errors.Annotatef(err, "parsing config %q", path)
	}
	return &cfg, nil
}

// apply folds the configuration into transpiler options.
func (c *config) apply(opts *jinja2tt.Options) error {
	if c.Delimiters != nil {
		delims := jinja2tt.DefaultDelimiters()
		if c.Delimiters.StmtStart != "" {
			delims.StmtStart = c.Delimiters.StmtStart
		}
		if c.Delimiters.StmtEnd != "" {
			delims.StmtEnd = c.Delimiters.StmtEnd
		}
		if c.Delimiters.VarStart != "" {
			delims.VarStart = c.Delimiters.VarStart
		}
		if c.Delimiters.VarEnd != "" {
			delims.VarEnd = c.Delimiters.VarEnd
		}
		if c.Delimiters.CommentStart != "" {
			delims.CommentStart = c.Delimiters.CommentStart
		}
		if c.Delimiters.CommentEnd != "" {
			delims.CommentEnd = c.Delimiters.CommentEnd
		}
		opts.Delimiters = &delims
	}

	if len(c.Filters) > 0 && opts.Filters == nil {
		opts.Filters = make(map[string]jinja2tt.FilterMapping, len(c.Filters))
	}
	for name, fc := range c.Filters {
		mapping, err := fc.mapping(name)
		if err != nil {
			return err
		}
		opts.Filters[name] = mapping
	}
	return nil
}

func (fc filterConfig) mapping(name string) (jinja2tt.FilterMapping, error) {
	set := 0
	if fc.Vmethod != "" {
		set++
	}
	if fc.Filter != "" {
		set++
	}
	if fc.Drop {
		set++
	}
	if set != 1 {
		return nil, fmt.Errorf("filter %q must set exactly one of vmethod, filter, drop", name)
	}
	switch {
	case fc.Vmethod != "":
		return &jinja2tt.MapVmethod{Name: fc.Vmethod}, nil
	case fc.Filter != "":
		return &jinja2tt.MapTTFilter{Name: fc.Filter}, nil
	default:
		return &jinja2tt.MapDrop{}, nil
	}
}
