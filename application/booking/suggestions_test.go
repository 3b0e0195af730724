package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPickSuggestionOptionOrderWins(t *testing.T) {
	// scanning is option-major: the first option matching any pattern
	// wins, even when a later option matches a more specific one
	texts := []string{
		"Newark, New Jersey",
		"New York, NY (All airports)",
		"New York JFK",
	}
	assert.Equal(t, 0, pickSuggestion(texts, "New York"))
}

func TestPickSuggestionMatchesCityOnly(t *testing.T) {
	texts := []string{
		"London, Ontario",
		"London Heathrow (LHR)",
	}
	// the full name matches the first option that contains it
	assert.Equal(t, 0, pickSuggestion(texts, "London"))
}

func TestPickSuggestionFallsBackToFirstWord(t *testing.T) {
	texts := []string{
		"Somewhere else entirely",
		"San Francisco International",
	}
	assert.Equal(t, 1, pickSuggestion(texts, "San Francisco"))
}

func TestPickSuggestionNoMatchSelectsFirst(t *testing.T) {
	texts := []string{"Paris CDG", "Paris Orly"}
	assert.Equal(t, 0, pickSuggestion(texts, "Tokyo"))
}

func TestPickSuggestionSkipsBlankOptions(t *testing.T) {
	texts := []string{"", "  ", "Mumbai (BOM)"}
	assert.Equal(t, 2, pickSuggestion(texts, "Mumbai"))
}

func TestCityPatternsDecreasingSpecificity(t *testing.T) {
	patterns := cityPatterns("New York, NY (All airports)")

	assert.Equal(t, "new york, ny (all airports)", patterns[0])
	assert.Contains(t, patterns, "new york")
	assert.Contains(t, patterns, "new")
}

func TestCityPatternsSingleWord(t *testing.T) {
	assert.Equal(t, []string{"delhi", "delhi"}, cityPatterns("Delhi"))
}
