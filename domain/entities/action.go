package entities

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// ActionType represents the type of action the executor can perform
type ActionType string

const (
	ActionGoto        ActionType = "goto"
	ActionFill        ActionType = "fill"
	ActionClick       ActionType = "click"
	ActionPress       ActionType = "press"
	ActionClickResult ActionType = "click_result"
	ActionScreenshot  ActionType = "screenshot"
	ActionBookFlight  ActionType = "book_flight"
	ActionWait        ActionType = "wait"
)

// DefaultWaitTimeoutMs is used when a wait action carries no timeout
const DefaultWaitTimeoutMs = 1000

// Action represents a single validated step in an action plan.
// The external JSON key "from" is kept on the wire; internally the
// field is named Origin because "from" collides with keywords in
// several runtimes.
type Action struct {
	Type        ActionType `json:"action"`
	Value       string     `json:"value,omitempty"`
	Selector    string     `json:"selector,omitempty"`
	Key         string     `json:"key,omitempty"`
	Filename    string     `json:"filename,omitempty"`
	Origin      string     `json:"from,omitempty"`
	Destination string     `json:"to,omitempty"`
	Date        string     `json:"date,omitempty"`
	TimeoutMs   int        `json:"timeout,omitempty"`
}

// ValidationError indicates a malformed action at compile time.
// A plan containing one is rejected wholesale and never executes.
type ValidationError struct {
	Index  int
	Action ActionType
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Action == "" {
		return fmt.Sprintf("invalid action at index %d: %s", e.Index, e.Reason)
	}
	return fmt.Sprintf("invalid %s action at index %d: %s", e.Action, e.Index, e.Reason)
}

var filenamePattern = regexp.MustCompile(`^[\w\-. ]+$`)

// Validate checks the action's field contract and normalizes fields
// that have a canonical form (screenshot extension, wait default)
func (a *Action) Validate() error {
	switch a.Type {
	case ActionGoto:
		if !strings.HasPrefix(a.Value, "http://") && !strings.HasPrefix(a.Value, "https://") {
			return fmt.Errorf("URL must start with http:// or https://, got %q", a.Value)
		}
	case ActionFill:
		if a.Selector == "" {
			return fmt.Errorf("fill requires a selector")
		}
	case ActionClick:
		if a.Selector == "" {
			return fmt.Errorf("click requires a selector")
		}
	case ActionPress:
		if a.Selector == "" {
			return fmt.Errorf("press requires a selector")
		}
		if a.Key == "" {
			return fmt.Errorf("press requires a key")
		}
	case ActionClickResult:
		// no fields
	case ActionScreenshot:
		if a.Filename == "" {
			a.Filename = "screenshot.png"
		}
		if !strings.HasSuffix(a.Filename, ".png") {
			a.Filename += ".png"
		}
		if !filenamePattern.MatchString(a.Filename) {
			return fmt.Errorf("filename contains invalid characters: %q", a.Filename)
		}
	case ActionBookFlight:
		if a.Origin == "" || a.Destination == "" {
			return fmt.Errorf("book_flight requires origin and destination cities")
		}
		if _, err := time.Parse("2006-01-02", a.Date); err != nil {
			return fmt.Errorf("date must be in YYYY-MM-DD format, got %q", a.Date)
		}
	case ActionWait:
		if a.TimeoutMs <= 0 {
			a.TimeoutMs = DefaultWaitTimeoutMs
		}
	default:
		return fmt.Errorf("unknown action type %q", a.Type)
	}
	return nil
}

// Describe returns a one-line human description of the action
func (a Action) Describe() string {
	switch a.Type {
	case ActionGoto:
		return fmt.Sprintf("navigate to %s", a.Value)
	case ActionFill:
		return fmt.Sprintf("fill %s with %q", a.Selector, a.Value)
	case ActionClick:
		return fmt.Sprintf("click %s", a.Selector)
	case ActionPress:
		return fmt.Sprintf("press %s on %s", a.Key, a.Selector)
	case ActionClickResult:
		return "click first search result"
	case ActionScreenshot:
		return fmt.Sprintf("screenshot %s", a.Filename)
	case ActionBookFlight:
		return fmt.Sprintf("book flight %s -> %s on %s", a.Origin, a.Destination, a.Date)
	case ActionWait:
		return fmt.Sprintf("wait %dms", a.TimeoutMs)
	default:
		return string(a.Type)
	}
}
