package shell

import (
	"bytes"
	"strings"
	"testing"

	"rgehrsitz/appraise/internal/facts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompter_ReadEmployee(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("80\nExcellent\n  Excellent  \n"), &out, false)

	f, err := p.ReadEmployee()
	require.NoError(t, err)
	assert.True(t, facts.Int(80).Equal(f["productivity"]))
	assert.True(t, facts.Text("Excellent").Equal(f["teamwork"]))
	assert.True(t, facts.Text("Excellent").Equal(f["communication"]), "surrounding whitespace is trimmed")
	assert.Empty(t, out.String(), "no prompts without a terminal")
}

func TestPrompter_InteractivePromptsAndRetries(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("lots\n20\nPoor\nPoor\n"), &out, true)

	f, err := p.ReadEmployee()
	require.NoError(t, err)
	assert.True(t, facts.Int(20).Equal(f["productivity"]))

	transcript := out.String()
	assert.Equal(t, 2, strings.Count(transcript, productivityPrompt))
	assert.Contains(t, transcript, "Productivity must be a whole number.")
	assert.Contains(t, transcript, teamworkPrompt)
	assert.Contains(t, transcript, communicationPrompt)
}

func TestPrompter_NonInteractiveRejectsBadProductivity(t *testing.T) {
	p := NewPrompter(strings.NewReader("seventy\nGood\nAdequate\n"), &bytes.Buffer{}, false)
	_, err := p.ReadEmployee()
	assert.ErrorContains(t, err, "productivity must be an integer")
}

func TestPrompter_EndOfInput(t *testing.T) {
	p := NewPrompter(strings.NewReader("70\nGood\n"), &bytes.Buffer{}, false)
	_, err := p.ReadEmployee()
	require.Error(t, err)
	assert.True(t, IsEndOfInput(err))
}

func TestRenderResult(t *testing.T) {
	assert.Equal(t, "Employee evaluation result: Fired", RenderResult("Fired", false))
	assert.Contains(t, RenderResult("Gets a Raise", true), "Gets a Raise")
	assert.True(t, strings.HasPrefix(RenderResult("Gets a Raise", true), resultPrefix))
}
