package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// File is a candidate file produced by the directory probe.
// It is a plain value; copies are safe to hand to handlers and callers.
type File struct {
	FullPath  string `json:"full_path" yaml:"full_path"`
	Entry     string `json:"entry" yaml:"entry"`                             // Base name within the probed directory
	Timestamp string `json:"timestamp,omitempty" yaml:"timestamp,omitempty"` // Freshness label, empty unless requested
}

// HasTimestamp reports whether a freshness label was computed for the file.
func (f File) HasTimestamp() bool {
	return f.Timestamp != ""
}

// ToJSON converts File to JSON string
func (f File) ToJSON() string {
	jsonBytes, _ := json.Marshal(f)
	return string(jsonBytes)
}

// String returns a human-readable representation
func (f File) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("File: %s\n", f.Entry))
	sb.WriteString(fmt.Sprintf("Path: %s\n", f.FullPath))
	if f.HasTimestamp() {
		sb.WriteString(fmt.Sprintf("Timestamp: %s\n", f.Timestamp))
	}
	return sb.String()
}
