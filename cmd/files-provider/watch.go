package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/thlorenz/files-provider/internal/log"
	"github.com/thlorenz/files-provider/internal/watch"
)

type watchOptions struct {
	patternFlags
	debounce time.Duration
}

// NewWatchCmd creates the watch command
func NewWatchCmd(root *rootOptions) *cobra.Command {
	o := &watchOptions{}

	cmd := &cobra.Command{
		Use:   "watch [directory]",
		Short: "Print the matching files again whenever they change",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, root, args)
		},
	}

	cmd.Flags().StringVarP(&o.regex, "pattern", "p", "", "regular expression entry names must match")
	cmd.Flags().StringVarP(&o.glob, "glob", "g", "", "glob entry names must match, e.g. '*.md'")
	cmd.Flags().DurationVar(&o.debounce, "debounce", watch.DefaultDebounce, "quiet period before a burst of changes is reported")

	return cmd
}

func (o *watchOptions) run(cmd *cobra.Command, root *rootOptions, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return err
	}

	matcher, err := o.matcher(root.cfg)
	if err != nil {
		return err
	}

	w, err := watch.New(dir, watch.WithDebounce(o.debounce), watch.WithFilter(matcher))
	if err != nil {
		return err
	}
	defer w.Stop()

	render := func() error {
		files, err := resolveAll(root, o.patternFlags, dir)
		if err != nil {
			return err
		}
		return writeTable(cmd.OutOrStdout(), files)
	}
	if err := render(); err != nil {
		return err
	}

	if err := w.Start(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Infof("Watching %s", dir)
	for {
		select {
		case <-ctx.Done():
			return nil
		case change, ok := <-w.Changes():
			if !ok {
				return nil
			}
			log.LogWithFields(log.F("names", change.Names)).Debug("Directory changed")
			fmt.Fprintln(cmd.OutOrStdout())
			if err := render(); err != nil {
				return err
			}
		}
	}
}
