package booking

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/kn1ghtofzero/web-automation-agent/domain/entities"
	"github.com/kn1ghtofzero/web-automation-agent/domain/interfaces"
)

// stubSession answers every query permissively unless the selector
// contains one of failSubstrings. Waits are recorded, never slept.
type stubSession struct {
	visits         []string
	shots          []string
	keys           []string
	failSubstrings []string
}

func (s *stubSession) failing(selector string) bool {
	for _, sub := range s.failSubstrings {
		if strings.Contains(selector, sub) {
			return true
		}
	}
	return false
}

func (s *stubSession) Navigate(_ context.Context, url string) error {
	s.visits = append(s.visits, url)
	return nil
}

func (s *stubSession) WaitForLoad(context.Context, interfaces.LoadState, time.Duration) error {
	return nil
}

func (s *stubSession) WaitForTimeout(int) {}

func (s *stubSession) Find(c interfaces.Criteria) interfaces.Element {
	return &stubElement{s: s, selector: c.Value}
}

func (s *stubSession) Locator(selector string) interfaces.Element {
	return &stubElement{s: s, selector: selector}
}

func (s *stubSession) PressKey(_ context.Context, key string) error {
	s.keys = append(s.keys, key)
	return nil
}

func (s *stubSession) Screenshot(_ context.Context, path string, _ bool) error {
	s.shots = append(s.shots, path)
	return nil
}

func (s *stubSession) URL() string { return "about:blank" }
func (s *stubSession) Close() error { return nil }

type stubElement struct {
	s        *stubSession
	selector string
}

func (e *stubElement) First() interfaces.Element  { return e }
func (e *stubElement) Nth(int) interfaces.Element { return e }

func (e *stubElement) Locator(selector string) interfaces.Element {
	return &stubElement{s: e.s, selector: e.selector + " " + selector}
}

func (e *stubElement) Count(context.Context) (int, error) { return 0, nil }

func (e *stubElement) WaitVisible(context.Context, time.Duration) error {
	if e.s.failing(e.selector) {
		return errors.New("timed out waiting for selector")
	}
	return nil
}

func (e *stubElement) WaitHidden(context.Context, time.Duration) error { return nil }
func (e *stubElement) IsVisible(ctx context.Context) bool              { return !e.s.failing(e.selector) }
func (e *stubElement) IsEnabled(context.Context) bool                  { return true }
func (e *stubElement) Click(context.Context) error                     { return nil }
func (e *stubElement) ClickJS(context.Context) error                   { return nil }
func (e *stubElement) DispatchClick(context.Context) error             { return nil }
func (e *stubElement) Fill(context.Context, string) error              { return nil }
func (e *stubElement) TypeSlow(context.Context, string) error          { return nil }
func (e *stubElement) Press(context.Context, string) error             { return nil }
func (e *stubElement) InputValue(context.Context) (string, error)      { return "", nil }
func (e *stubElement) TextContent(context.Context) (string, error)     { return "some text", nil }
func (e *stubElement) Attribute(context.Context, string) (string, error) {
	return "", nil
}
func (e *stubElement) ScrollIntoView(context.Context) error     { return nil }
func (e *stubElement) IsOccluded(context.Context) (bool, error) { return false, nil }

func testFlow(t *testing.T, session *stubSession) *Flow {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewFlow(session, t.TempDir(), logger)
}

func TestFlowStageFailureTerminatesAsError(t *testing.T) {
	session := &stubSession{failSubstrings: []string{"Where from"}}
	flow := testFlow(t, session)

	outcome := flow.Run(context.Background(), "New York", "London", "2026-09-07")

	assert.Equal(t, entities.BookingError, outcome)
	assert.Equal(t, []string{flightsURL}, session.visits)

	// a failed stage always leaves a diagnostic screenshot behind
	if assert.Len(t, session.shots, 1) {
		assert.Equal(t, filepath.Join(flow.shotDir, "flight_search_error.png"), session.shots[0])
	}
}

func TestFlowRejectsMalformedDate(t *testing.T) {
	session := &stubSession{}
	outcome := testFlow(t, session).Run(context.Background(), "Delhi", "Mumbai", "next monday")

	assert.Equal(t, entities.BookingError, outcome)
}

func TestFlowNoResultMarkersClassifyAsNoFlights(t *testing.T) {
	session := &stubSession{}
	flow := testFlow(t, session)

	outcome := flow.Run(context.Background(), "New York", "London", "2026-09-07")

	// the stub shows every marker, including the no-results ones, so
	// the run completes and classifies as an empty result set
	assert.Equal(t, entities.NoFlightsAvailable, outcome)
	assert.Contains(t, session.shots, filepath.Join(flow.shotDir, "no_results_error.png"))
}
