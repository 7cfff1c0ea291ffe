package types

// AllLabel is the menu label of the aggregate entry.
const AllLabel = "All"

// Choice is one selectable menu value: either a concrete file or the
// aggregate All marker. The set of variants is closed.
type Choice interface {
	// Label is the text shown for the entry in a menu.
	Label() string
	isChoice()
}

// FileChoice selects a single concrete file.
type FileChoice struct {
	File File
}

// Label returns the file's base name.
func (c FileChoice) Label() string { return c.File.Entry }

func (FileChoice) isChoice() {}

// AllChoice selects every candidate.
type AllChoice struct{}

// Label returns AllLabel.
func (AllChoice) Label() string { return AllLabel }

func (AllChoice) isChoice() {}

// MenuEntry pairs a selection key with its choice.
type MenuEntry struct {
	Key    string
	Choice Choice
}
