// Package pattern provides the file name matchers used to filter directory
// entries. Regular expressions follow Go's regexp syntax and match anywhere in
// the name unless anchored; globs follow github.com/gobwas/glob syntax and must
// match the whole name.
package pattern

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gobwas/glob"
)

// Matcher decides whether a directory entry name is a candidate.
type Matcher interface {
	Match(name string) bool
	String() string
}

// Type identifies the syntax of a pattern expression.
type Type string

const (
	// TypeRegex compiles expressions with regexp.Compile.
	TypeRegex Type = "regex"
	// TypeGlob compiles expressions with glob.Compile.
	TypeGlob Type = "glob"
)

// Regex is a Matcher backed by a compiled regular expression.
type Regex struct {
	re *regexp.Regexp
}

// NewRegex compiles expr into a Regex matcher.
func NewRegex(expr string) (*Regex, error) {
	if expr == "" {
		return nil, fmt.Errorf("empty regular expression")
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid regular expression %q: %w", expr, err)
	}
	return &Regex{re: re}, nil
}

// FromRegexp wraps an already compiled expression.
func FromRegexp(re *regexp.Regexp) *Regex {
	return &Regex{re: re}
}

// MustRegex is like NewRegex but panics on error.
func MustRegex(expr string) *Regex {
	m, err := NewRegex(expr)
	if err != nil {
		panic(err)
	}
	return m
}

// Match reports whether name contains a match of the expression.
func (r *Regex) Match(name string) bool {
	return r.re.MatchString(name)
}

func (r *Regex) String() string {
	return r.re.String()
}

// Glob is a Matcher backed by a gobwas glob.
type Glob struct {
	expr string
	g    glob.Glob
}

// NewGlob compiles expr into a Glob matcher. Brace alternatives such as
// "*.{js,ts}" are supported.
func NewGlob(expr string) (*Glob, error) {
	if expr == "" {
		return nil, fmt.Errorf("empty glob")
	}
	g, err := glob.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid glob %q: %w", expr, err)
	}
	return &Glob{expr: expr, g: g}, nil
}

// MustGlob is like NewGlob but panics on error.
func MustGlob(expr string) *Glob {
	m, err := NewGlob(expr)
	if err != nil {
		panic(err)
	}
	return m
}

// Match reports whether the whole name matches the glob.
func (g *Glob) Match(name string) bool {
	return g.g.Match(name)
}

func (g *Glob) String() string {
	return g.expr
}

// ParseType parses a pattern type name; the empty string means TypeRegex.
func ParseType(name string) (Type, error) {
	switch Type(strings.ToLower(strings.TrimSpace(name))) {
	case "", TypeRegex:
		return TypeRegex, nil
	case TypeGlob:
		return TypeGlob, nil
	default:
		return "", fmt.Errorf("unknown pattern type %q (expected regex or glob)", name)
	}
}

// Compile builds a Matcher of the given type.
func Compile(t Type, expr string) (Matcher, error) {
	switch t {
	case "", TypeRegex:
		m, err := NewRegex(expr)
		if err != nil {
			return nil, err
		}
		return m, nil
	case TypeGlob:
		m, err := NewGlob(expr)
		if err != nil {
			return nil, err
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unknown pattern type %q", t)
	}
}
