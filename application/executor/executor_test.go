package executor

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kn1ghtofzero/web-automation-agent/domain/entities"
	"github.com/kn1ghtofzero/web-automation-agent/domain/interfaces"
	"github.com/kn1ghtofzero/web-automation-agent/infrastructure/config"
)

// fakeSession is a permissive in-memory stand-in for a live browser:
// every element is visible and enabled, every interaction succeeds,
// unless the selector is listed in failSelectors. Waits return
// immediately so flow-level polling loops terminate fast.
type fakeSession struct {
	visits        []string
	keys          []string
	shots         []string
	waits         []int
	fills         map[string]string
	clicks        []string
	failSelectors map[string]bool
	navErr        error
	closed        bool
}

func newFakeSession() *fakeSession {
	return &fakeSession{
		fills:         map[string]string{},
		failSelectors: map[string]bool{},
	}
}

func (s *fakeSession) Navigate(_ context.Context, url string) error {
	if s.navErr != nil {
		return s.navErr
	}
	s.visits = append(s.visits, url)
	return nil
}

func (s *fakeSession) WaitForLoad(context.Context, interfaces.LoadState, time.Duration) error {
	return nil
}

func (s *fakeSession) WaitForTimeout(ms int) { s.waits = append(s.waits, ms) }

func (s *fakeSession) Find(c interfaces.Criteria) interfaces.Element {
	return &fakeElement{s: s, selector: string(c.Kind) + "=" + c.Value}
}

func (s *fakeSession) Locator(selector string) interfaces.Element {
	return &fakeElement{s: s, selector: selector}
}

func (s *fakeSession) PressKey(_ context.Context, key string) error {
	s.keys = append(s.keys, key)
	return nil
}

func (s *fakeSession) Screenshot(_ context.Context, path string, _ bool) error {
	s.shots = append(s.shots, path)
	return nil
}

func (s *fakeSession) URL() string { return "about:blank" }

func (s *fakeSession) Close() error {
	s.closed = true
	return nil
}

type fakeElement struct {
	s        *fakeSession
	selector string
}

func (e *fakeElement) First() interfaces.Element  { return e }
func (e *fakeElement) Nth(int) interfaces.Element { return e }

func (e *fakeElement) Locator(selector string) interfaces.Element {
	return &fakeElement{s: e.s, selector: e.selector + " " + selector}
}

func (e *fakeElement) Count(context.Context) (int, error) { return 0, nil }

func (e *fakeElement) WaitVisible(context.Context, time.Duration) error {
	if e.s.failSelectors[e.selector] {
		return errors.New("timed out waiting for selector")
	}
	return nil
}

func (e *fakeElement) WaitHidden(context.Context, time.Duration) error { return nil }

func (e *fakeElement) IsVisible(context.Context) bool { return !e.s.failSelectors[e.selector] }
func (e *fakeElement) IsEnabled(context.Context) bool { return true }

func (e *fakeElement) Click(context.Context) error {
	e.s.clicks = append(e.s.clicks, e.selector)
	return nil
}

func (e *fakeElement) ClickJS(context.Context) error       { return nil }
func (e *fakeElement) DispatchClick(context.Context) error { return nil }

func (e *fakeElement) Fill(_ context.Context, value string) error {
	e.s.fills[e.selector] = value
	return nil
}

func (e *fakeElement) TypeSlow(_ context.Context, text string) error {
	e.s.fills[e.selector] = text
	return nil
}

func (e *fakeElement) Press(_ context.Context, key string) error {
	e.s.keys = append(e.s.keys, key)
	return nil
}

func (e *fakeElement) InputValue(context.Context) (string, error)        { return "", nil }
func (e *fakeElement) TextContent(context.Context) (string, error)       { return "some text", nil }
func (e *fakeElement) Attribute(context.Context, string) (string, error) { return "", nil }
func (e *fakeElement) ScrollIntoView(context.Context) error              { return nil }
func (e *fakeElement) IsOccluded(context.Context) (bool, error)          { return false, nil }

func testExecutor(t *testing.T, session *fakeSession) *Executor {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	cfg := &config.Config{
		ScreenshotDir:   t.TempDir(),
		ActionTimeoutMs: 100,
	}
	return New(session, cfg, logger)
}

func TestExecuteContinuesPastFailure(t *testing.T) {
	session := newFakeSession()
	session.failSelectors["#missing"] = true

	plan := entities.ActionPlan{
		{Type: entities.ActionGoto, Value: "https://www.google.com"},
		{Type: entities.ActionFill, Selector: "#missing", Value: "hello"},
		{Type: entities.ActionPress, Selector: "textarea[name='q']", Key: "Enter"},
		{Type: entities.ActionWait, TimeoutMs: 250},
	}

	log := testExecutor(t, session).Execute(context.Background(), plan)

	require.Len(t, log.Outcomes, 4)
	assert.Equal(t, entities.OutcomeSuccess, log.Outcomes[0].Status)
	assert.Equal(t, entities.OutcomeFailed, log.Outcomes[1].Status)
	assert.Contains(t, log.Outcomes[1].Message, "not found")
	assert.Equal(t, entities.OutcomeSuccess, log.Outcomes[2].Status)
	assert.Equal(t, entities.OutcomeSuccess, log.Outcomes[3].Status)
	assert.Equal(t, 1, log.Failed())

	// everything after the failure still ran
	assert.Equal(t, []string{"https://www.google.com"}, session.visits)
	assert.Equal(t, []string{"Enter"}, session.keys)
	assert.Contains(t, session.waits, 250)

	// the failed fill never touched the page
	assert.Empty(t, session.fills)
}

func TestExecuteDoesNotMutatePlan(t *testing.T) {
	plan := entities.ActionPlan{
		{Type: entities.ActionGoto, Value: "https://www.github.com"},
		{Type: entities.ActionScreenshot, Filename: "before.png"},
	}
	snapshot := make(entities.ActionPlan, len(plan))
	copy(snapshot, plan)

	testExecutor(t, newFakeSession()).Execute(context.Background(), plan)

	assert.Equal(t, snapshot, plan)
}

func TestExecuteRunsConfirmHook(t *testing.T) {
	ex := testExecutor(t, newFakeSession())

	confirmed := false
	ex.Confirm = func() { confirmed = true }

	ex.Execute(context.Background(), entities.ActionPlan{
		{Type: entities.ActionGoto, Value: "https://www.google.com"},
	})
	assert.True(t, confirmed)
}

func TestExecuteScreenshotReportsPath(t *testing.T) {
	session := newFakeSession()
	ex := testExecutor(t, session)

	log := ex.Execute(context.Background(), entities.ActionPlan{
		{Type: entities.ActionScreenshot, Filename: "page.png"},
	})

	require.Len(t, log.Outcomes, 1)
	assert.Equal(t, entities.OutcomeSuccess, log.Outcomes[0].Status)

	want := filepath.Join(ex.cfg.ScreenshotDir, "page.png")
	assert.Equal(t, "saved "+want, log.Outcomes[0].Message)
	assert.Equal(t, []string{want}, session.shots)
}

func TestExecuteClickResultUsesFirstResult(t *testing.T) {
	session := newFakeSession()

	log := testExecutor(t, session).Execute(context.Background(), entities.ActionPlan{
		{Type: entities.ActionClickResult},
	})

	require.Len(t, log.Outcomes, 1)
	assert.Equal(t, entities.OutcomeSuccess, log.Outcomes[0].Status)
	assert.Equal(t, []string{"div.g a"}, session.clicks)
}

func TestExecuteUnknownActionFails(t *testing.T) {
	log := testExecutor(t, newFakeSession()).Execute(context.Background(), entities.ActionPlan{
		{Type: entities.ActionType("jump")},
	})

	require.Len(t, log.Outcomes, 1)
	assert.Equal(t, entities.OutcomeFailed, log.Outcomes[0].Status)
	assert.Contains(t, log.Outcomes[0].Message, "unknown action")
}

func TestBookFlightNoResultsFoldsToWarning(t *testing.T) {
	session := newFakeSession()

	plan := entities.ActionPlan{
		{Type: entities.ActionBookFlight, Origin: "New York", Destination: "London", Date: "2026-09-07"},
		{Type: entities.ActionScreenshot, Filename: "after.png"},
	}
	log := testExecutor(t, session).Execute(context.Background(), plan)

	require.Len(t, log.Outcomes, 2)

	// the fake reports every no-results marker as visible, so the flow
	// classifies the search as empty; that is a warning, not a failure
	assert.Equal(t, entities.OutcomeWarning, log.Outcomes[0].Status)
	assert.Contains(t, log.Outcomes[0].Message, "no flights available")
	assert.Equal(t, 0, log.Failed())

	// the flow navigated to the flight search page and the rest of the
	// plan still ran
	assert.Contains(t, session.visits, "https://www.google.com/travel/flights")
	assert.Equal(t, entities.OutcomeSuccess, log.Outcomes[1].Status)
}
