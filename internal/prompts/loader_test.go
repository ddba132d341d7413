package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	prompt, err := Get("verification.json", "corroborate-fast-score")
	require.NoError(t, err)
	assert.NotEmpty(t, prompt)
	assert.Contains(t, prompt, "{{.Role}}")
	assert.Contains(t, prompt, "{{.CandidateText}}")
	assert.Contains(t, prompt, "corroborated_score")
}

func TestGet_UnknownKey(t *testing.T) {
	_, err := Get("verification.json", "no-such-prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestGet_UnknownFile(t *testing.T) {
	_, err := Get("missing.json", "anything")
	assert.Error(t, err)
}

func TestMustGet_PanicsOnMissing(t *testing.T) {
	assert.Panics(t, func() {
		MustGet("verification.json", "no-such-prompt")
	})
}

func TestFormat(t *testing.T) {
	out := Format("Assess {{.Role}} scoring {{.Overall}}/10", map[string]string{
		"Role":    "software_engineer",
		"Overall": "7.5",
	})
	assert.Equal(t, "Assess software_engineer scoring 7.5/10", out)
}

func TestFormat_UnusedPlaceholderSurvives(t *testing.T) {
	out := Format("{{.Known}} and {{.Unknown}}", map[string]string{"Known": "x"})
	assert.Equal(t, "x and {{.Unknown}}", out)
}
