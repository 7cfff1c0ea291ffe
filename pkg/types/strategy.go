package types

import (
	"fmt"
	"strings"
)

// Strategy tells the dispatcher what to do with the resolved candidates.
// The zero value is not a valid strategy.
type Strategy int

const (
	// Handle invokes the handler on each matched file without prompting.
	Handle Strategy = iota + 1
	// Prompt asks the user to choose and returns the choice as data.
	Prompt
	// Return hands back the candidates without any interaction.
	Return
	// PromptAndHandle asks the user to choose and invokes the handler on the choice.
	PromptAndHandle
)

var strategyNames = map[Strategy]string{
	Handle:          "handle",
	Prompt:          "prompt",
	Return:          "return",
	PromptAndHandle: "prompt_and_handle",
}

// Strategies lists every valid strategy in declaration order.
func Strategies() []Strategy {
	return []Strategy{Handle, Prompt, Return, PromptAndHandle}
}

// String returns the configuration name of the strategy.
func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("strategy(%d)", int(s))
}

// Valid reports whether s is one of the four declared strategies.
func (s Strategy) Valid() bool {
	_, ok := strategyNames[s]
	return ok
}

// InvokesHandler reports whether the strategy calls the handler.
func (s Strategy) InvokesHandler() bool {
	return s == Handle || s == PromptAndHandle
}

// Prompts reports whether the strategy asks the user to choose.
func (s Strategy) Prompts() bool {
	return s == Prompt || s == PromptAndHandle
}

// ParseStrategy parses a strategy name. Dashes, spaces and case are ignored
// so "prompt-and-handle" and "PROMPT_AND_HANDLE" are both accepted.
func ParseStrategy(name string) (Strategy, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.NewReplacer("-", "_", " ", "_").Replace(normalized)
	for s, n := range strategyNames {
		if n == normalized {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown strategy %q (expected one of handle, prompt, return, prompt_and_handle)", name)
}

// MarshalText implements encoding.TextMarshaler.
func (s Strategy) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("cannot marshal invalid %s", s)
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Strategy) UnmarshalText(text []byte) error {
	parsed, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Set implements pflag.Value so strategies can be bound to CLI flags.
func (s *Strategy) Set(value string) error {
	return s.UnmarshalText([]byte(value))
}

// Type implements pflag.Value.
func (s *Strategy) Type() string {
	return "strategy"
}
