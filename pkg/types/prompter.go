package types

// Handler receives a file selected for handling. A returned error is passed
// through to the caller untouched and stops any remaining handler calls.
type Handler func(File) error

// ValidateFunc classifies a raw input token. It returns the token when it is
// acceptable, otherwise an error describing why it was rejected.
type ValidateFunc func(token string) (string, error)

// PromptRequest carries everything a Prompter needs for one round-trip.
type PromptRequest struct {
	Header   string
	Footer   string
	Message  string      // Fully rendered menu text: header, rows and footer
	Entries  []MenuEntry // Menu rows in display order
	Validate ValidateFunc
}

// Prompter obtains one validated choice token from an interactive user.
// Implementations own the retry loop; the returned token must have been
// accepted by req.Validate.
type Prompter interface {
	Prompt(req PromptRequest) (string, error)
}

// PrompterFunc adapts a plain function to the Prompter interface.
type PrompterFunc func(req PromptRequest) (string, error)

// Prompt calls f(req).
func (f PrompterFunc) Prompt(req PromptRequest) (string, error) {
	return f(req)
}
