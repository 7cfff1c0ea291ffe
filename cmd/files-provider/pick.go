package main

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/thlorenz/files-provider/internal/errors"
	"github.com/thlorenz/files-provider/internal/handler"
	"github.com/thlorenz/files-provider/pkg/provider"
	"github.com/thlorenz/files-provider/pkg/types"
)

var _ pflag.Value = (*types.Strategy)(nil)

type pickOptions struct {
	patternFlags
	single     types.Strategy
	multi      types.Strategy
	noAll      bool
	exec       string
	print      bool
	tui        string
	header     string
	footer     string
	timestamps bool
}

// NewPickCmd creates the pick command
func NewPickCmd(root *rootOptions) *cobra.Command {
	o := &pickOptions{
		single: types.Handle,
		multi:  types.PromptAndHandle,
		tui:    tuiAuto,
	}

	cmd := &cobra.Command{
		Use:   "pick [directory]",
		Short: "Pick a matching file and open it",
		Long: `Pick resolves the files matching the pattern in directory (default: the
working directory). One match is handled right away; with more you choose
from a numbered menu where 0 selects all of them.`,
		Example: `  files-provider pick -p '\.js$'
  files-provider pick -g '*.md' --exec 'code --wait'
  files-provider pick -g '*.log' --single return --multi prompt`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, root, args)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&o.regex, "pattern", "p", "", "regular expression entry names must match")
	f.StringVarP(&o.glob, "glob", "g", "", "glob entry names must match, e.g. '*.md'")
	f.Var(&o.single, "single", "strategy for a single match: handle or return")
	f.Var(&o.multi, "multi", "strategy for several matches: handle, prompt, return or prompt_and_handle")
	f.BoolVar(&o.noAll, "no-all", false, "do not offer the '0: All' entry")
	f.StringVarP(&o.exec, "exec", "e", "", "command run with each chosen file ('{}' is replaced with the path)")
	f.BoolVar(&o.print, "print", false, "print chosen paths instead of opening them")
	f.StringVar(&o.tui, "tui", tuiAuto, "full screen picker: auto, always or never")
	f.StringVar(&o.header, "header", "", "text shown above the menu")
	f.StringVar(&o.footer, "footer", "", "text shown below the menu")
	f.BoolVarP(&o.timestamps, "timestamps", "t", false, "show when each file was last touched")

	return cmd
}

func (o *pickOptions) run(cmd *cobra.Command, root *rootOptions, args []string) error {
	cfg := root.cfg
	flags := cmd.Flags()

	matcher, err := o.matcher(cfg)
	if err != nil {
		return err
	}

	single, multi := cfg.Strategies.Single, cfg.Strategies.Multi
	if flags.Changed("single") {
		single = o.single
	}
	if flags.Changed("multi") {
		multi = o.multi
	}
	header, footer := cfg.Prompt.Header, cfg.Prompt.Footer
	if flags.Changed("header") {
		header = o.header
	}
	if flags.Changed("footer") {
		footer = o.footer
	}

	iface, err := promptInterface(o.tui, cfg.Prompt.Interface)
	if err != nil {
		return err
	}

	opts := []provider.Option{
		provider.WithPattern(matcher),
		provider.WithSingle(single),
		provider.WithMulti(multi),
		provider.WithIncludeAll(cfg.Prompt.IncludeAll && !o.noAll),
		provider.WithPromptHeader(header),
		provider.WithPromptFooter(footer),
		provider.WithTimestamps(o.timestamps || cfg.Timestamps),
		provider.WithPrompter(newPrompter(iface, cmd.InOrStdin(), cmd.ErrOrStderr(), cfg.Theme)),
	}
	if single.InvokesHandler() || multi.InvokesHandler() {
		h, err := o.handler(cmd, root)
		if err != nil {
			return err
		}
		opts = append(opts, provider.WithHandler(h))
	}

	p, err := provider.New(opts...)
	if err != nil {
		return err
	}

	dir := ""
	if len(args) > 0 {
		dir = args[0]
	}
	files, err := p.FromDirectory(dir)
	if err != nil {
		return err
	}

	paths := lo.Map(files, func(f types.File, _ int) string { return f.FullPath })
	if len(paths) > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), strings.Join(paths, "\n"))
	}
	return nil
}

// handler picks, in order: --print, --exec, the configured command, the
// platform opener.
func (o *pickOptions) handler(cmd *cobra.Command, root *rootOptions) (types.Handler, error) {
	switch {
	case o.print:
		return handler.Print(cmd.OutOrStdout()), nil
	case o.exec != "":
		fields := strings.Fields(o.exec)
		if len(fields) == 0 {
			return nil, errors.NewConfigError("handler command is empty", "exec", errors.MissingHandler, nil)
		}
		return handler.Command(fields[0], fields[1:], handler.WithStdio(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr()))
	case root.cfg.Handler.Command != "":
		return handler.Command(root.cfg.Handler.Command, root.cfg.Handler.Args,
			handler.WithStdio(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr()))
	default:
		return handler.Open(cmd.ErrOrStderr())
	}
}
