// Package dispatch applies the configured strategy to the files a probe
// returned: it invokes the handler, prompts the user, or hands the files
// back to the caller.
package dispatch

import (
	"github.com/thlorenz/files-provider/internal/errors"
	"github.com/thlorenz/files-provider/internal/log"
	"github.com/thlorenz/files-provider/internal/selection"
	"github.com/thlorenz/files-provider/pkg/types"
)

// Policy holds one validated configuration. Construction checks live in the
// provider; a Policy assumes handler and prompter are present whenever a
// strategy needs them.
type Policy struct {
	Single     types.Strategy
	Multi      types.Strategy
	Handler    types.Handler
	Prompter   types.Prompter
	IncludeAll bool
	Header     string
	Footer     string
}

// Process resolves files according to the policy. The returned slice holds
// the files yielded to the caller; strategies that only invoke the handler
// return nil.
func (p *Policy) Process(files []types.File) ([]types.File, error) {
	switch len(files) {
	case 0:
		log.Debug("no matching files")
		return []types.File{}, nil
	case 1:
		return p.single(files[0])
	default:
		return p.multi(files)
	}
}

func (p *Policy) single(f types.File) ([]types.File, error) {
	log.LogWithFields(log.F("strategy", p.Single.String()), log.F("file", f.Entry)).Debug("single match")

	switch p.Single {
	case types.Return:
		return []types.File{f}, nil
	case types.Handle:
		return nil, p.Handler(f)
	case types.Prompt, types.PromptAndHandle:
		return nil, errors.NewInternal("strategy %s is not allowed for a single match", p.Single)
	default:
		return nil, errors.NewInternal("unknown single strategy %s", p.Single)
	}
}

func (p *Policy) multi(files []types.File) ([]types.File, error) {
	log.LogWithFields(log.F("strategy", p.Multi.String()), log.F("count", len(files))).Debug("multiple matches")

	switch p.Multi {
	case types.Return:
		return files, nil
	case types.Handle:
		return nil, p.handleAll(files)
	case types.Prompt:
		choice, err := p.prompt(files)
		if err != nil {
			return nil, err
		}
		switch c := choice.(type) {
		case types.AllChoice:
			return files, nil
		case types.FileChoice:
			return []types.File{c.File}, nil
		default:
			return nil, errors.NewInternal("unexpected choice %T", choice)
		}
	case types.PromptAndHandle:
		choice, err := p.prompt(files)
		if err != nil {
			return nil, err
		}
		switch c := choice.(type) {
		case types.AllChoice:
			return nil, p.handleAll(files)
		case types.FileChoice:
			return nil, p.Handler(c.File)
		default:
			return nil, errors.NewInternal("unexpected choice %T", choice)
		}
	default:
		return nil, errors.NewInternal("unknown multi strategy %s", p.Multi)
	}
}

// handleAll stops at the first handler error and returns it as is.
func (p *Policy) handleAll(files []types.File) error {
	for _, f := range files {
		if err := p.Handler(f); err != nil {
			return err
		}
	}
	return nil
}

func (p *Policy) prompt(files []types.File) (types.Choice, error) {
	menu := selection.Build(files, p.IncludeAll)
	req := types.PromptRequest{
		Header:   p.Header,
		Footer:   p.Footer,
		Message:  menu.Render(p.Header, p.Footer),
		Entries:  menu.Entries(),
		Validate: menu.Validate,
	}

	key, err := p.Prompter.Prompt(req)
	if err != nil {
		return nil, err
	}

	// A prompter must only hand back keys the validator accepted.
	if _, err := menu.Validate(key); err != nil {
		return nil, err
	}
	choice, ok := menu.Resolve(key)
	if !ok {
		return nil, errors.NewInternal("validated key %q has no menu entry", key)
	}
	log.LogWithFields(log.F("key", key), log.F("choice", choice.Label())).Debug("prompt answered")
	return choice, nil
}
