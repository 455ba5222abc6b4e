package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWords(t *testing.T) {
	got := Words("Don’t STOP, it's 42 cats!")
	assert.Equal(t, []string{"don't", "stop", "it's", "42", "cats"}, got)
	assert.Empty(t, Words("  ...  "))
}

func TestWordFrequency(t *testing.T) {
	a := &Analytics{}
	got := a.WordFrequency("Don’t stop the page 42 cats. Cats!")
	assert.Equal(t, map[string]int{"stop": 1, "cats": 2}, got)
}

func TestWordFrequency_OtherLanguage(t *testing.T) {
	a := &Analytics{Language: "french"}
	got := a.WordFrequency("le chat et le chien")
	assert.Equal(t, 2, got["le"])
	assert.Equal(t, 1, got["chat"])
}

func TestIsStopword(t *testing.T) {
	assert.True(t, IsStopword("The"))
	assert.False(t, IsStopword("turbine"))
}
