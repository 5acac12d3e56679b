package fallback

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DilpreetSinghVerma/Dilpreet-Webresume/domain"
)

func TestMatchDeterministic(t *testing.T) {
	m := NewDefault()
	input := "tell me about your hackathon"

	first := m.Match(input)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, m.Match(input))
	}
}

func TestMatchHackathon(t *testing.T) {
	m := NewDefault()

	got := m.Match("tell me about your hackathon")
	assert.Contains(t, got, "Top 30")
}

func TestMatchUniqueKeyword(t *testing.T) {
	m := NewDefault()

	got := m.Match("what is jarvis exactly?")
	assert.Contains(t, got, "Jarvis")
	assert.Contains(t, got, "voice-controlled")
}

func TestMatchCaseInsensitive(t *testing.T) {
	m := NewDefault()

	assert.Equal(t, m.Match("HACKATHON"), m.Match("hackathon"))
}

func TestMatchNoRule(t *testing.T) {
	m := NewDefault()

	got := m.Match("quantum entanglement soup recipe")
	assert.Equal(t, DefaultResponse, got)
	for _, rule := range DefaultRules() {
		assert.NotEqual(t, rule.Response, got)
	}
}

func TestMatchEmptyInput(t *testing.T) {
	m := NewDefault()
	assert.Equal(t, DefaultResponse, m.Match(""))
	assert.Equal(t, DefaultResponse, m.Match("   "))
}

func TestMatchTieKeepsFirstRule(t *testing.T) {
	rules := []domain.IntentRule{
		{Keywords: []string{"golang"}, Response: "first"},
		{Keywords: []string{"golang"}, Response: "second"},
	}
	m := New(rules, "none")

	assert.Equal(t, "first", m.Match("do you like golang?"))
}

func TestMatchMultiWordPhraseOutranksSingleWord(t *testing.T) {
	rules := []domain.IntentRule{
		{Keywords: []string{"silent"}, Response: "single"},
		{Keywords: []string{"silent coders"}, Response: "phrase"},
	}
	m := New(rules, "none")

	// "silent coders" scores 2 words against 1 for "silent".
	assert.Equal(t, "phrase", m.Match("who are the silent coders?"))
	assert.Equal(t, "single", m.Match("a silent room"))
}

func TestMatchHighestTotalScoreWins(t *testing.T) {
	rules := []domain.IntentRule{
		{Keywords: []string{"python"}, Response: "python"},
		{Keywords: []string{"python", "tensorflow"}, Response: "ml"},
	}
	m := New(rules, "none")

	assert.Equal(t, "ml", m.Match("python and tensorflow work"))
	assert.Equal(t, "python", m.Match("just python"))
}

func TestLoadEmptyPathUsesBuiltinTable(t *testing.T) {
	m, err := Load("")
	require.NoError(t, err)
	assert.Contains(t, m.Match("hackathon"), "Top 30")
}

func TestLoadFromYAML(t *testing.T) {
	raw := `
fallback: "no idea"
rules:
  - keywords: [coffee, espresso]
    response: "I run on chai, actually."
  - keywords: [music]
    response: "Lo-fi while coding."
`
	path := filepath.Join(t.TempDir(), "assistant.yml")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	m, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "I run on chai, actually.", m.Match("got any espresso?"))
	assert.Equal(t, "Lo-fi while coding.", m.Match("what music do you like"))
	assert.Equal(t, "no idea", m.Match("zzz"))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "reading rules file"))
}

func TestLoadEmptyRules(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yml")
	require.NoError(t, os.WriteFile(path, []byte("rules: []\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadDefaultsFallbackResponse(t *testing.T) {
	raw := `
rules:
  - keywords: [coffee]
    response: "chai"
`
	path := filepath.Join(t.TempDir(), "partial.yml")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	m, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultResponse, m.Match("unmatched"))
}
