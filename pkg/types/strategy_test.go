package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		input string
		want  Strategy
	}{
		{"handle", Handle},
		{"prompt", Prompt},
		{"return", Return},
		{"prompt_and_handle", PromptAndHandle},
		{"PROMPT_AND_HANDLE", PromptAndHandle},
		{"prompt-and-handle", PromptAndHandle},
		{"  Return ", Return},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStrategy(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseStrategy("open")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown strategy")
}

func TestStrategyPredicates(t *testing.T) {
	assert.True(t, Handle.InvokesHandler())
	assert.True(t, PromptAndHandle.InvokesHandler())
	assert.False(t, Prompt.InvokesHandler())
	assert.False(t, Return.InvokesHandler())

	assert.True(t, Prompt.Prompts())
	assert.True(t, PromptAndHandle.Prompts())
	assert.False(t, Handle.Prompts())
	assert.False(t, Return.Prompts())

	var unset Strategy
	assert.False(t, unset.Valid())
	assert.Equal(t, "strategy(0)", unset.String())
	for _, s := range Strategies() {
		assert.True(t, s.Valid(), s.String())
	}
}

func TestStrategyYAML(t *testing.T) {
	var doc struct {
		Single Strategy `yaml:"single"`
		Multi  Strategy `yaml:"multi"`
	}
	err := yaml.Unmarshal([]byte("single: return\nmulti: prompt_and_handle\n"), &doc)
	require.NoError(t, err)
	assert.Equal(t, Return, doc.Single)
	assert.Equal(t, PromptAndHandle, doc.Multi)

	out, err := yaml.Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(out), "multi: prompt_and_handle")

	err = yaml.Unmarshal([]byte("single: sometimes\n"), &doc)
	assert.Error(t, err)

	_, err = Strategy(0).MarshalText()
	assert.Error(t, err)
}

func TestStrategyFlagValue(t *testing.T) {
	var s Strategy
	require.NoError(t, s.Set("prompt"))
	assert.Equal(t, Prompt, s)
	assert.Equal(t, "strategy", s.Type())
	assert.Error(t, s.Set("nope"))
}

func TestChoiceLabels(t *testing.T) {
	f := File{FullPath: "/tmp/a.js", Entry: "a.js"}
	var c Choice = FileChoice{File: f}
	assert.Equal(t, "a.js", c.Label())

	c = AllChoice{}
	assert.Equal(t, AllLabel, c.Label())
}

func TestFileRendering(t *testing.T) {
	f := File{FullPath: "/tmp/a.js", Entry: "a.js"}
	assert.False(t, f.HasTimestamp())
	assert.Equal(t, `{"full_path":"/tmp/a.js","entry":"a.js"}`, f.ToJSON())
	assert.NotContains(t, f.String(), "Timestamp")

	f.Timestamp = "2024-01-02T03:04:05"
	assert.Contains(t, f.String(), "Timestamp: 2024-01-02T03:04:05")
}
