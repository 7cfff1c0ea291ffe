package provider

import (
	"regexp"

	"github.com/thlorenz/files-provider/internal/errors"
	"github.com/thlorenz/files-provider/pkg/pattern"
	"github.com/thlorenz/files-provider/pkg/types"
)

// Default prompt texts
const (
	DefaultPromptHeader = "Please select a file below:"
	DefaultPromptFooter = "Your choice: "
)

// Option configures a Provider. Options only record values; all checks
// happen in New.
type Option func(*settings)

type settings struct {
	matcher    pattern.Matcher
	single     types.Strategy
	multi      types.Strategy
	includeAll bool
	handler    types.Handler
	header     string
	footer     string
	prompter   types.Prompter
	prompterOK bool
	fs         FS
	timestamps bool
	workingDir func() (string, error)
	errs       []error
}

func defaults() *settings {
	return &settings{
		single:     Handle,
		multi:      PromptAndHandle,
		includeAll: true,
		header:     DefaultPromptHeader,
		footer:     DefaultPromptFooter,
		workingDir: getwd,
	}
}

// WithPattern sets the matcher entry names are tested against
func WithPattern(m pattern.Matcher) Option {
	return func(s *settings) {
		s.matcher = m
	}
}

// WithRegex compiles expr as a regular expression matcher
func WithRegex(expr string) Option {
	return func(s *settings) {
		m, err := pattern.NewRegex(expr)
		if err != nil {
			s.errs = append(s.errs, errors.NewConfigError("invalid pattern", "regex", errors.InvalidPattern, err))
			return
		}
		s.matcher = m
	}
}

// WithRegexp uses an already compiled regular expression
func WithRegexp(re *regexp.Regexp) Option {
	return func(s *settings) {
		if re == nil {
			s.errs = append(s.errs, errors.NewConfigError("invalid pattern", "regex", errors.InvalidPattern, nil))
			return
		}
		s.matcher = pattern.FromRegexp(re)
	}
}

// WithGlob compiles expr as a glob matcher, e.g. "*.md"
func WithGlob(expr string) Option {
	return func(s *settings) {
		m, err := pattern.NewGlob(expr)
		if err != nil {
			s.errs = append(s.errs, errors.NewConfigError("invalid pattern", "glob", errors.InvalidPattern, err))
			return
		}
		s.matcher = m
	}
}

// WithSingle sets the strategy applied when exactly one file matches
func WithSingle(st types.Strategy) Option {
	return func(s *settings) {
		s.single = st
	}
}

// WithMulti sets the strategy applied when more than one file matches
func WithMulti(st types.Strategy) Option {
	return func(s *settings) {
		s.multi = st
	}
}

// WithIncludeAll toggles the "0: All" menu entry
func WithIncludeAll(include bool) Option {
	return func(s *settings) {
		s.includeAll = include
	}
}

// WithHandler sets the function invoked for handled files
func WithHandler(h types.Handler) Option {
	return func(s *settings) {
		s.handler = h
	}
}

// WithPromptHeader sets the line printed above the menu
func WithPromptHeader(header string) Option {
	return func(s *settings) {
		s.header = header
	}
}

// WithPromptFooter sets the text printed below the menu
func WithPromptFooter(footer string) Option {
	return func(s *settings) {
		s.footer = footer
	}
}

// WithPrompter replaces the default stdin/stdout line prompter
func WithPrompter(p types.Prompter) Option {
	return func(s *settings) {
		s.prompter = p
		s.prompterOK = true
	}
}

// WithFS sets the filesystem directories are listed from
func WithFS(fs FS) Option {
	return func(s *settings) {
		s.fs = fs
	}
}

// WithTimestamps enables freshness timestamps on returned files
func WithTimestamps(enabled bool) Option {
	return func(s *settings) {
		s.timestamps = enabled
	}
}

// WithWorkingDir sets the function resolving the default root used by
// FromWorkingDirectory and by FromDirectory("").
func WithWorkingDir(wd func() (string, error)) Option {
	return func(s *settings) {
		s.workingDir = wd
	}
}
