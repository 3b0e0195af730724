package entities

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGotoValidation(t *testing.T) {
	a := Action{Type: ActionGoto, Value: "https://x"}
	require.NoError(t, a.Validate())
	assert.Equal(t, "https://x", a.Value, "valid URLs pass through unchanged")

	a = Action{Type: ActionGoto, Value: "http://example.com/path"}
	require.NoError(t, a.Validate())

	// scheme-less input is rejected, never silently coerced
	for _, bad := range []string{"x.com", "www.example.com", "ftp://example.com", ""} {
		a := Action{Type: ActionGoto, Value: bad}
		assert.Error(t, a.Validate(), "expected %q to be rejected", bad)
	}
}

func TestScreenshotFilenameNormalization(t *testing.T) {
	a := Action{Type: ActionScreenshot, Filename: "shot"}
	require.NoError(t, a.Validate())
	assert.Equal(t, "shot.png", a.Filename)

	// normalization is idempotent
	require.NoError(t, a.Validate())
	assert.Equal(t, "shot.png", a.Filename)

	b := Action{Type: ActionScreenshot, Filename: "shot.png"}
	require.NoError(t, b.Validate())
	assert.Equal(t, "shot.png", b.Filename)
}

func TestScreenshotFilenameCharacters(t *testing.T) {
	for _, bad := range []string{"../etc/passwd", "a/b", "shot?"} {
		a := Action{Type: ActionScreenshot, Filename: bad}
		assert.Error(t, a.Validate(), "expected %q to be rejected", bad)
	}

	ok := Action{Type: ActionScreenshot, Filename: "my search-results_1"}
	assert.NoError(t, ok.Validate())
}

func TestBookFlightValidation(t *testing.T) {
	a := Action{Type: ActionBookFlight, Origin: "New York", Destination: "London", Date: "2026-09-07"}
	require.NoError(t, a.Validate())

	bad := Action{Type: ActionBookFlight, Origin: "New York", Destination: "London", Date: "next monday"}
	assert.Error(t, bad.Validate(), "unparsed date text must not reach the schema layer")

	missing := Action{Type: ActionBookFlight, Origin: "", Destination: "London", Date: "2026-09-07"}
	assert.Error(t, missing.Validate())
}

func TestUnknownActionRejected(t *testing.T) {
	a := Action{Type: "teleport"}
	assert.Error(t, a.Validate())
}

func TestWaitDefaultsTimeout(t *testing.T) {
	a := Action{Type: ActionWait}
	require.NoError(t, a.Validate())
	assert.Equal(t, DefaultWaitTimeoutMs, a.TimeoutMs)

	b := Action{Type: ActionWait, TimeoutMs: 300}
	require.NoError(t, b.Validate())
	assert.Equal(t, 300, b.TimeoutMs)
}

func TestValidatePlanRejectsWholesale(t *testing.T) {
	plan := ActionPlan{
		{Type: ActionGoto, Value: "https://www.google.com"},
		{Type: ActionGoto, Value: "not-a-url"},
	}
	err := ValidatePlan(plan)
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 1, verr.Index)
	assert.Equal(t, ActionGoto, verr.Action)
}

func TestPlanJSONKeepsFromKey(t *testing.T) {
	plan := ActionPlan{{
		Type:        ActionBookFlight,
		Origin:      "New York",
		Destination: "London",
		Date:        "2026-09-07",
	}}

	data, err := MarshalPlan(plan)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `"from": "New York"`),
		"external JSON must use the reserved key %q, got %s", "from", data)

	decoded, err := UnmarshalPlan(data)
	require.NoError(t, err)
	require.Len(t, decoded, 1)
	assert.Equal(t, "New York", decoded[0].Origin)
	assert.Equal(t, "London", decoded[0].Destination)
}

func TestUnmarshalPlanValidates(t *testing.T) {
	_, err := UnmarshalPlan([]byte(`[{"action":"goto","value":"example.com"}]`))
	assert.Error(t, err)

	_, err = UnmarshalPlan([]byte(`[{"action":"launch"}]`))
	assert.Error(t, err)
}
