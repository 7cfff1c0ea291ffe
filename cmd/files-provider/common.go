package main

import (
	"io"

	"github.com/thlorenz/files-provider/internal/config"
	"github.com/thlorenz/files-provider/internal/errors"
	"github.com/thlorenz/files-provider/internal/prompt"
	"github.com/thlorenz/files-provider/internal/tui"
	"github.com/thlorenz/files-provider/pkg/pattern"
	"github.com/thlorenz/files-provider/pkg/types"
)

// patternFlags are shared by every command that resolves a directory
type patternFlags struct {
	regex string
	glob  string
}

// matcher prefers the flags over the config file
func (f patternFlags) matcher(cfg *config.Config) (pattern.Matcher, error) {
	switch {
	case f.regex != "" && f.glob != "":
		return nil, errors.NewConfigError("use either --pattern or --glob", "pattern", errors.InvalidPattern, nil)
	case f.regex != "":
		return compileFlag(pattern.TypeRegex, f.regex, "pattern")
	case f.glob != "":
		return compileFlag(pattern.TypeGlob, f.glob, "glob")
	case cfg.Pattern.Match != "":
		return cfg.Matcher()
	default:
		return nil, errors.NewConfigError("a pattern is required: pass --pattern, --glob or set pattern.match in the config", "pattern", errors.InvalidPattern, nil)
	}
}

func compileFlag(t pattern.Type, expr, flag string) (pattern.Matcher, error) {
	m, err := pattern.Compile(t, expr)
	if err != nil {
		return nil, errors.NewConfigError("invalid pattern", flag, errors.InvalidPattern, err)
	}
	return m, nil
}

// Values of the --tui flag
const (
	tuiAuto   = "auto"
	tuiAlways = "always"
	tuiNever  = "never"
)

// newPrompter picks the interactive adapter. The menu is drawn on out so
// chosen paths on stdout stay pipeable.
func newPrompter(iface string, in io.Reader, out io.Writer, theme tui.Theme) types.Prompter {
	if iface == config.InterfaceAuto {
		iface = config.InterfaceLine
		if prompt.IsTerminal(in) && prompt.IsTerminal(out) {
			iface = config.InterfaceTUI
		}
	}

	switch iface {
	case config.InterfaceTUI:
		return tui.NewPrompter(
			tui.WithInput(in),
			tui.WithOutput(out),
			tui.WithStyles(tui.NewStyles(theme)),
		)
	case config.InterfaceForm:
		return prompt.NewForm(prompt.WithFormInput(in), prompt.WithFormOutput(out))
	default:
		return prompt.NewLine(in, out)
	}
}

// promptInterface applies the --tui override to the configured interface
func promptInterface(flag, configured string) (string, error) {
	switch flag {
	case tuiAuto, "":
		return configured, nil
	case tuiAlways:
		return config.InterfaceTUI, nil
	case tuiNever:
		return config.InterfaceLine, nil
	default:
		return "", errors.NewConfigError("invalid --tui value, expected auto, always or never", "tui", errors.InvalidConfig, nil)
	}
}
