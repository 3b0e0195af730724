package executor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kn1ghtofzero/web-automation-agent/application/booking"
	"github.com/kn1ghtofzero/web-automation-agent/domain/entities"
	"github.com/kn1ghtofzero/web-automation-agent/domain/interfaces"
	"github.com/kn1ghtofzero/web-automation-agent/infrastructure/config"
)

// Executor runs a validated plan against a live browser session, one
// action at a time. A failed action is recorded and the loop moves on;
// a single flaky step must not sink the rest of the plan.
type Executor struct {
	session interfaces.Session
	cfg     *config.Config
	logger  *logrus.Logger

	// Confirm, when set, blocks after the final action before the
	// caller releases the session
	Confirm func()
}

// New - creates a new plan executor bound to one session
func New(session interfaces.Session, cfg *config.Config, logger *logrus.Logger) *Executor {
	return &Executor{
		session: session,
		cfg:     cfg,
		logger:  logger,
	}
}

// Execute runs the plan in order and returns the append-only outcome
// log. The plan itself is never mutated.
func (e *Executor) Execute(ctx context.Context, plan entities.ActionPlan) *entities.ExecutionLog {
	log := entities.NewExecutionLog()

	for i, action := range plan {
		started := time.Now()
		fields := logrus.Fields{"index": i, "action": action.Type}
		e.logger.WithFields(fields).Info(action.Describe())

		status, message := e.run(ctx, action)

		outcome := entities.ExecutionOutcome{
			Index:    i,
			Action:   action.Type,
			Status:   status,
			Message:  message,
			Duration: time.Since(started),
		}
		log.Append(outcome)

		switch status {
		case entities.OutcomeFailed:
			e.logger.WithFields(fields).Errorf("action failed: %s", message)
		case entities.OutcomeWarning:
			e.logger.WithFields(fields).Warn(message)
		}
	}

	e.logger.Infof("plan finished: %s", log.Summary())

	if e.Confirm != nil {
		e.Confirm()
	}
	return log
}

// run dispatches one action to its runner
func (e *Executor) run(ctx context.Context, action entities.Action) (entities.OutcomeStatus, string) {
	switch action.Type {
	case entities.ActionGoto:
		if err := e.runNavigate(ctx, action.Value); err != nil {
			return entities.OutcomeFailed, err.Error()
		}
	case entities.ActionFill:
		el := e.session.Locator(action.Selector)
		if err := el.WaitVisible(ctx, e.actionTimeout()); err != nil {
			return entities.OutcomeFailed, fmt.Sprintf("input field not found: %v", err)
		}
		if err := el.Fill(ctx, action.Value); err != nil {
			return entities.OutcomeFailed, err.Error()
		}
	case entities.ActionClick:
		el := e.session.Locator(action.Selector)
		if err := el.WaitVisible(ctx, e.actionTimeout()); err != nil {
			return entities.OutcomeFailed, fmt.Sprintf("element not found or not visible: %v", err)
		}
		if err := el.Click(ctx); err != nil {
			return entities.OutcomeFailed, err.Error()
		}
	case entities.ActionPress:
		el := e.session.Locator(action.Selector)
		if err := el.WaitVisible(ctx, e.actionTimeout()); err != nil {
			return entities.OutcomeFailed, fmt.Sprintf("target element not found: %v", err)
		}
		if err := el.Press(ctx, action.Key); err != nil {
			return entities.OutcomeFailed, err.Error()
		}
	case entities.ActionClickResult:
		el := e.session.Locator("div.g a").First()
		if err := el.WaitVisible(ctx, e.actionTimeout()); err != nil {
			return entities.OutcomeFailed, fmt.Sprintf("no search result to click: %v", err)
		}
		if err := el.Click(ctx); err != nil {
			return entities.OutcomeFailed, err.Error()
		}
	case entities.ActionScreenshot:
		path, err := e.runScreenshot(ctx, action.Filename)
		if err != nil {
			return entities.OutcomeFailed, err.Error()
		}
		return entities.OutcomeSuccess, fmt.Sprintf("saved %s", path)
	case entities.ActionBookFlight:
		return e.runBookFlight(ctx, action)
	case entities.ActionWait:
		e.session.WaitForTimeout(action.TimeoutMs)
	default:
		return entities.OutcomeFailed, fmt.Sprintf("unknown action type %q", action.Type)
	}
	return entities.OutcomeSuccess, ""
}

// runNavigate loads the URL and, for hosts known to be noisy after
// load, runs a bounded settle-and-dismiss pass
func (e *Executor) runNavigate(ctx context.Context, url string) error {
	if err := e.session.Navigate(ctx, url); err != nil {
		return err
	}
	if strings.Contains(url, "youtube.com") {
		e.settleYouTube(ctx, url)
	}
	return nil
}

// settleYouTube waits out YouTube's consent dialog and dynamically
// rendered search box. Every step is bounded and best effort.
func (e *Executor) settleYouTube(ctx context.Context, url string) {
	_ = e.session.WaitForLoad(ctx, interfaces.LoadDOMContentLoaded, 10*time.Second)
	_ = e.session.WaitForLoad(ctx, interfaces.LoadNetworkIdle, 10*time.Second)

	consent := e.session.Locator(`button:has-text("Accept all")`).First()
	if consent.IsVisible(ctx) {
		if err := consent.Click(ctx); err == nil {
			e.logger.Debug("dismissed consent dialog")
			e.session.WaitForTimeout(1000)
		}
	}

	if url == "https://www.youtube.com" {
		for _, selector := range []string{"input#search", "input[name='search_query']"} {
			if err := e.session.Locator(selector).WaitVisible(ctx, 3*time.Second); err == nil {
				break
			}
		}
	}
}

func (e *Executor) runScreenshot(ctx context.Context, filename string) (string, error) {
	if err := os.MkdirAll(e.cfg.ScreenshotDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create screenshot directory: %w", err)
	}
	path := filepath.Join(e.cfg.ScreenshotDir, filename)
	if err := e.session.Screenshot(ctx, path, true); err != nil {
		return "", fmt.Errorf("failed to save screenshot: %w", err)
	}
	return path, nil
}

// runBookFlight delegates to the booking flow and folds its terminal
// classification into a plan-level outcome. No flights and flow errors
// both surface as warnings: the command itself completed.
func (e *Executor) runBookFlight(ctx context.Context, action entities.Action) (entities.OutcomeStatus, string) {
	flow := booking.NewFlow(e.session, e.cfg.ScreenshotDir, e.logger)

	switch flow.Run(ctx, action.Origin, action.Destination, action.Date) {
	case entities.FlightsFound:
		return entities.OutcomeSuccess, "found available flights"
	case entities.NoFlightsAvailable:
		return entities.OutcomeWarning, "no flights available for the selected criteria"
	default:
		return entities.OutcomeWarning, "flight booking flow completed with errors"
	}
}

func (e *Executor) actionTimeout() time.Duration {
	return time.Duration(e.cfg.ActionTimeoutMs) * time.Millisecond
}
