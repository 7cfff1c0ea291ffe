// Package errors provides standardized error handling for files-provider.
// It defines the error kinds raised while configuring a provider, probing a
// directory and resolving an interactive choice, plus helpers for creating,
// wrapping and classifying them.
package errors

import (
	"errors"
	"fmt"
)

// Standard errors package errors that we re-export for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// Config error kinds
	InvalidConfig
	InvalidStrategy
	MissingHandler
	InvalidPattern
	MissingPrompter
	// Probe error kinds
	DirectoryNotFound
	DirectoryAccessDenied
	DirectoryReadFailed
	// Choice error kinds
	InvalidChoice
	// Prompt error kinds
	PromptAborted
	PromptFailed
	// Internal invariant violations
	Internal
)

var kindNames = map[ErrorKind]string{
	Unknown:               "unknown",
	InvalidConfig:         "invalid_config",
	InvalidStrategy:       "invalid_strategy",
	MissingHandler:        "missing_handler",
	InvalidPattern:        "invalid_pattern",
	MissingPrompter:       "missing_prompter",
	DirectoryNotFound:     "directory_not_found",
	DirectoryAccessDenied: "directory_access_denied",
	DirectoryReadFailed:   "directory_read_failed",
	InvalidChoice:         "invalid_choice",
	PromptAborted:         "prompt_aborted",
	PromptFailed:          "prompt_failed",
	Internal:              "internal",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Sentinels for errors.Is checks. A typed error matches the sentinel of the
// same kind, e.g. errors.Is(err, ErrInvalidChoice).
var (
	ErrInvalidConfig   = NewConfigError("invalid configuration", "", InvalidConfig, nil)
	ErrInvalidStrategy = NewConfigError("invalid strategy", "", InvalidStrategy, nil)
	ErrMissingHandler  = NewConfigError("handler required", "", MissingHandler, nil)
	ErrInvalidPattern  = NewConfigError("invalid pattern", "", InvalidPattern, nil)
	ErrMissingPrompter = NewConfigError("prompter required", "", MissingPrompter, nil)
	ErrDirNotFound     = NewProbeError("directory not found", "", DirectoryNotFound, nil)
	ErrDirAccess       = NewProbeError("directory access denied", "", DirectoryAccessDenied, nil)
	ErrDirRead         = NewProbeError("directory read failed", "", DirectoryReadFailed, nil)
	ErrInvalidChoice   = NewChoiceError("")
	ErrPromptAborted   = NewPromptError("prompt aborted", PromptAborted, nil)
	ErrPromptFailed    = NewPromptError("prompt failed", PromptFailed, nil)
)

// ApplicationError is the base error type for all application errors
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

// Error returns the error message
func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// kinded is implemented by every error type of this package through the
// embedded ApplicationError.
type kinded interface {
	Kind() ErrorKind
}

// sameKind reports whether target is a typed error of a known kind equal to k.
// Unknown never matches so that New/Wrap errors keep pointer identity semantics.
func sameKind(k ErrorKind, target error) bool {
	if k == Unknown {
		return false
	}
	t, ok := target.(kinded)
	return ok && t.Kind() == k
}

// Is matches targets of the same kind.
func (e *ApplicationError) Is(target error) bool {
	return sameKind(e.kind, target)
}

// ConfigError represents errors related to configuration
type ConfigError struct {
	ApplicationError
	param string
}

// NewConfigError creates a new configuration error
func NewConfigError(msg string, param string, kind ErrorKind, err error) *ConfigError {
	return &ConfigError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		param: param,
	}
}

// Error returns the config error message
func (e *ConfigError) Error() string {
	if e.param != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.param, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.param)
	}
	return e.ApplicationError.Error()
}

// Param returns the configuration parameter associated with the error
func (e *ConfigError) Param() string {
	return e.param
}

// ProbeError represents a failure to list the probed root directory
type ProbeError struct {
	ApplicationError
	path string
}

// NewProbeError creates a new probe error
func NewProbeError(msg string, path string, kind ErrorKind, err error) *ProbeError {
	return &ProbeError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		path: path,
	}
}

// Error returns the probe error message
func (e *ProbeError) Error() string {
	if e.path != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.path, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.path)
	}
	return e.ApplicationError.Error()
}

// Path returns the directory associated with the error
func (e *ProbeError) Path() string {
	return e.path
}

// ChoiceError is raised when an interactive token is not a menu key.
// It is recoverable: the prompter re-asks.
type ChoiceError struct {
	ApplicationError
	token string
}

// NewChoiceError creates an InvalidChoice error for token
func NewChoiceError(token string) *ChoiceError {
	return &ChoiceError{
		ApplicationError: ApplicationError{
			msg:  fmt.Sprintf("Invalid choice: '%s', please select one of the given numbers", token),
			kind: InvalidChoice,
		},
		token: token,
	}
}

// Token returns the rejected input
func (e *ChoiceError) Token() string {
	return e.token
}

// PromptError is raised when the interactive adapter cannot produce a choice
type PromptError struct {
	ApplicationError
}

// NewPromptError creates a new prompt error
func NewPromptError(msg string, kind ErrorKind, err error) *PromptError {
	return &PromptError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
	}
}

// New creates a new error with a message
func New(msg string) error {
	return &ApplicationError{
		msg:  msg,
		kind: Unknown,
	}
}

// Newf creates a new error with a formatted message
func Newf(format string, args ...interface{}) error {
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		kind: Unknown,
	}
}

// NewInternal creates an error for a broken internal invariant
func NewInternal(format string, args ...interface{}) error {
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		kind: Internal,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: Unknown,
	}
}

// Wrapf wraps an existing error with additional formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		err:  err,
		kind: Unknown,
	}
}

// KindOf returns the first known kind in err's chain, or Unknown
func KindOf(err error) ErrorKind {
	for err != nil {
		if k, ok := err.(kinded); ok && k.Kind() != Unknown {
			return k.Kind()
		}
		err = errors.Unwrap(err)
	}
	return Unknown
}

// IsConfigError checks if the error is any configuration error
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsInvalidConfig checks if the error is a generic invalid configuration error
func IsInvalidConfig(err error) bool {
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return configErr.Kind() == InvalidConfig
	}
	return false
}

// IsProbeError checks if the error is a directory probe error
func IsProbeError(err error) bool {
	var probeErr *ProbeError
	return errors.As(err, &probeErr)
}

// IsDirectoryNotFound checks if the error is a missing directory error
func IsDirectoryNotFound(err error) bool {
	var probeErr *ProbeError
	if errors.As(err, &probeErr) {
		return probeErr.Kind() == DirectoryNotFound
	}
	return false
}

// IsInvalidChoice checks if the error is an invalid choice error
func IsInvalidChoice(err error) bool {
	var choiceErr *ChoiceError
	return errors.As(err, &choiceErr)
}

// IsPromptError checks if the error is a prompt error
func IsPromptError(err error) bool {
	var promptErr *PromptError
	return errors.As(err, &promptErr)
}
