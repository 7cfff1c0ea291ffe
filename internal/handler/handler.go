// Package handler provides ready made handlers for matched files: running a
// command with the file path, opening it with the platform opener, or
// printing it.
package handler

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/thlorenz/files-provider/internal/errors"
	"github.com/thlorenz/files-provider/internal/log"
	"github.com/thlorenz/files-provider/pkg/types"
)

// PathPlaceholder in a command argument is replaced with the file path.
// Without a placeholder the path is appended as the last argument.
const PathPlaceholder = "{}"

// Runner starts a prepared command. Tests replace it to avoid spawning
// processes.
type Runner func(cmd *exec.Cmd) error

// Wait runs cmd to completion
func Wait(cmd *exec.Cmd) error {
	return cmd.Run()
}

// Detach starts cmd without waiting for it
func Detach(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}

// CommandOption configures a command handler
type CommandOption func(*command)

type command struct {
	name   string
	args   []string
	run    Runner
	stdout io.Writer
	stderr io.Writer
	stdin  io.Reader
}

// WithRunner replaces how the command is started
func WithRunner(r Runner) CommandOption {
	return func(c *command) {
		c.run = r
	}
}

// WithStdio connects the command to the given streams
func WithStdio(in io.Reader, out, errOut io.Writer) CommandOption {
	return func(c *command) {
		c.stdin = in
		c.stdout = out
		c.stderr = errOut
	}
}

// Command returns a handler running name with args for every file.
func Command(name string, args []string, opts ...CommandOption) (types.Handler, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.NewConfigError("handler command is empty", "handler.command", errors.MissingHandler, nil)
	}
	c := &command{
		name:   name,
		args:   append([]string(nil), args...),
		run:    Wait,
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c.handle, nil
}

func (c *command) handle(f types.File) error {
	cmd := exec.Command(c.name, Args(c.args, f.FullPath)...)
	cmd.Stdin = c.stdin
	cmd.Stdout = c.stdout
	cmd.Stderr = c.stderr

	log.LogWithFields(log.F("command", c.name), log.F("file", f.FullPath)).Debug("running handler command")
	if err := c.run(cmd); err != nil {
		return errors.Wrapf(err, "%s %s", c.name, f.Entry)
	}
	return nil
}

// Args expands the placeholder in args with path
func Args(args []string, path string) []string {
	out := make([]string, 0, len(args)+1)
	replaced := false
	for _, a := range args {
		if strings.Contains(a, PathPlaceholder) {
			a = strings.ReplaceAll(a, PathPlaceholder, path)
			replaced = true
		}
		out = append(out, a)
	}
	if !replaced {
		out = append(out, path)
	}
	return out
}

// Opener returns the platform command that opens a file with its default
// application.
func Opener(goos string) (string, []string, error) {
	switch goos {
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly":
		return "xdg-open", nil, nil
	case "darwin":
		return "open", nil, nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler"}, nil
	default:
		return "", nil, fmt.Errorf("unsupported platform: %s", goos)
	}
}

// Open returns a handler that announces each file on w and opens it with
// the platform opener without waiting for the application to exit.
func Open(w io.Writer, opts ...CommandOption) (types.Handler, error) {
	name, args, err := Opener(runtime.GOOS)
	if err != nil {
		return nil, errors.NewConfigError("no opener available", "handler", errors.MissingHandler, err)
	}
	opts = append([]CommandOption{WithRunner(Detach), WithStdio(nil, nil, nil)}, opts...)
	open, err := Command(name, args, opts...)
	if err != nil {
		return nil, err
	}
	return func(f types.File) error {
		fmt.Fprintf(w, "Opening %s\n", f.Entry)
		return open(f)
	}, nil
}

// Print returns a handler writing each full path on its own line
func Print(w io.Writer) types.Handler {
	return func(f types.File) error {
		_, err := fmt.Fprintln(w, f.FullPath)
		return err
	}
}
