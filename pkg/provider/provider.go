// Package provider is the public entry point of files-provider. A Provider
// lists one directory for files matching a pattern and, depending on how
// many matched, hands them to a handler, returns them, or asks the user to
// pick one.
//
//	p, err := provider.New(
//		provider.WithRegex(`\.js$`),
//		provider.WithHandler(func(f types.File) error {
//			fmt.Println("opening", f.FullPath)
//			return nil
//		}),
//	)
//	if err != nil {
//		return err
//	}
//	_, err = p.FromDirectory(dir)
package provider

import (
	"os"

	"github.com/thlorenz/files-provider/internal/dispatch"
	"github.com/thlorenz/files-provider/internal/errors"
	"github.com/thlorenz/files-provider/internal/log"
	"github.com/thlorenz/files-provider/internal/probe"
	"github.com/thlorenz/files-provider/internal/prompt"
	"github.com/thlorenz/files-provider/pkg/pattern"
	"github.com/thlorenz/files-provider/pkg/types"
)

// Strategies
const (
	Handle          = types.Handle
	Prompt          = types.Prompt
	Return          = types.Return
	PromptAndHandle = types.PromptAndHandle
)

// Error types returned by the provider
type (
	ConfigError = errors.ConfigError
	ProbeError  = errors.ProbeError
	ChoiceError = errors.ChoiceError
	PromptError = errors.PromptError
)

// File is a matched candidate
type File = types.File

// Provider resolves files from directories. It is immutable after New and
// safe to share; concurrent calls that prompt on the same input interleave.
type Provider struct {
	matcher    pattern.Matcher
	probe      *probe.Probe
	policy     *dispatch.Policy
	workingDir func() (string, error)
}

// New validates the options and returns a Provider. No filesystem access
// happens here. Any violated constraint yields a *ConfigError and a nil
// Provider.
func New(opts ...Option) (*Provider, error) {
	s := defaults()
	for _, opt := range opts {
		opt(s)
	}
	if err := s.validate(); err != nil {
		log.LogWithError(err).Debug("provider configuration rejected")
		return nil, err
	}

	if !s.prompterOK && s.multi.Prompts() {
		s.prompter = prompt.Stdio()
	}

	probeOpts := []probe.Option{probe.WithTimestamps(s.timestamps)}
	if s.fs != nil {
		probeOpts = append(probeOpts, probe.WithFS(s.fs))
	}

	return &Provider{
		matcher: s.matcher,
		probe:   probe.New(probeOpts...),
		policy: &dispatch.Policy{
			Single:     s.single,
			Multi:      s.multi,
			Handler:    s.handler,
			Prompter:   s.prompter,
			IncludeAll: s.includeAll,
			Header:     s.header,
			Footer:     s.footer,
		},
		workingDir: s.workingDir,
	}, nil
}

func (s *settings) validate() error {
	if len(s.errs) > 0 {
		return s.errs[0]
	}
	if s.matcher == nil {
		return errors.NewConfigError("a pattern is required", "pattern", errors.InvalidPattern, nil)
	}
	if !s.single.Valid() {
		return errors.NewConfigError("invalid strategy", "single", errors.InvalidStrategy, nil)
	}
	if !s.multi.Valid() {
		return errors.NewConfigError("invalid strategy", "multi", errors.InvalidStrategy, nil)
	}
	if s.single.Prompts() {
		return errors.NewConfigError("prompting to select a single file makes no sense", "single", errors.InvalidStrategy, nil)
	}
	if (s.single.InvokesHandler() || s.multi.InvokesHandler()) && s.handler == nil {
		return errors.NewConfigError("a handler is required to handle files", "handler", errors.MissingHandler, nil)
	}
	if s.multi.Prompts() && s.prompterOK && s.prompter == nil {
		return errors.NewConfigError("a prompter is required to prompt for files", "prompter", errors.MissingPrompter, nil)
	}
	if s.workingDir == nil {
		return errors.NewConfigError("working directory function is nil", "working_dir", errors.InvalidConfig, nil)
	}
	return nil
}

// FromDirectory lists root and applies the configured strategies. It returns
// the files yielded by Return and Prompt; strategies that only handle files
// return nil. An empty root resolves to the working directory.
func (p *Provider) FromDirectory(root string) ([]File, error) {
	if root == "" {
		wd, err := p.workingDir()
		if err != nil {
			return nil, errors.NewProbeError("cannot determine working directory", "", errors.DirectoryReadFailed, err)
		}
		root = wd
	}

	files, err := p.probe.Resolve(root, p.matcher)
	if err != nil {
		return nil, err
	}
	log.LogWithFields(log.F("root", root), log.F("pattern", p.matcher.String()), log.F("matches", len(files))).Debug("resolved directory")

	return p.policy.Process(files)
}

// FromWorkingDirectory is FromDirectory on the configured working directory
func (p *Provider) FromWorkingDirectory() ([]File, error) {
	return p.FromDirectory("")
}

// IsConfigError reports whether err is a construction error
func IsConfigError(err error) bool {
	return errors.IsConfigError(err)
}

// IsProbeError reports whether err means the root could not be listed
func IsProbeError(err error) bool {
	return errors.IsProbeError(err)
}

// IsInvalidChoice reports whether err is a rejected menu token
func IsInvalidChoice(err error) bool {
	return errors.IsInvalidChoice(err)
}

// IsPromptError reports whether err means no choice could be obtained
func IsPromptError(err error) bool {
	return errors.IsPromptError(err)
}

func getwd() (string, error) {
	return os.Getwd()
}
