package main

import (
	"github.com/spf13/cobra"

	"github.com/thlorenz/files-provider/internal/config"
	"github.com/thlorenz/files-provider/internal/log"
)

// rootOptions carries the persistent flags and the loaded configuration to
// the subcommands.
type rootOptions struct {
	cfgFile string
	debug   bool
	jsonLog bool
	logFile string
	cfg     *config.Config
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "files-provider",
		Short: "Find matching files in a directory and open, pick or list them",
		Long: `files-provider looks for files matching a pattern in one directory.

A single match is handled right away. With several matches you pick one
(or all) from a numbered menu, and the chosen files are opened, passed to a
command of your choice or printed.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/files-provider/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&opts.jsonLog, "json-log", false, "write log lines as JSON")
	rootCmd.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "also append log lines to this file")

	rootCmd.AddCommand(NewPickCmd(opts))
	rootCmd.AddCommand(NewListCmd(opts))
	rootCmd.AddCommand(NewWatchCmd(opts))

	return rootCmd
}

// load configures logging and reads the config file. An explicit --config
// must load; problems with the default file only produce a warning.
func (o *rootOptions) load(cmd *cobra.Command) error {
	logOpts := []log.Option{log.WithOutput(cmd.ErrOrStderr())}
	if o.jsonLog {
		logOpts = append(logOpts, log.WithJSON())
	}
	if o.logFile != "" {
		logOpts = append(logOpts, log.WithFile(o.logFile))
	}
	log.Configure(logOpts...)
	log.SetDebug(o.debug)

	if o.cfgFile != "" {
		cfg, err := config.LoadConfigFile(o.cfgFile)
		if err != nil {
			return err
		}
		o.cfg = cfg
		return nil
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.LogWithError(err).Warn("Using default settings")
		cfg = config.New()
	}
	o.cfg = cfg
	return nil
}
