package booking

import (
	"context"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kn1ghtofzero/web-automation-agent/domain/entities"
	"github.com/kn1ghtofzero/web-automation-agent/domain/interfaces"
)

const flightsURL = "https://www.google.com/travel/flights"

// Flow drives the flight search form as an explicit state machine.
// Stages run strictly in order with no backward transitions; the first
// stage failure terminates the whole booking action as an error, the
// outer plan keeps going.
type Flow struct {
	session interfaces.Session
	shotDir string
	logger  *logrus.Logger
}

// NewFlow - creates a booking flow bound to one live session
func NewFlow(session interfaces.Session, screenshotDir string, logger *logrus.Logger) *Flow {
	return &Flow{
		session: session,
		shotDir: screenshotDir,
		logger:  logger,
	}
}

type stage struct {
	name entities.BookingStage
	run  func(ctx context.Context) error
}

// Run executes the full flow and returns its terminal classification
func (f *Flow) Run(ctx context.Context, origin, destination, dateISO string) entities.BookingOutcome {
	f.logger.WithFields(logrus.Fields{
		"origin":      origin,
		"destination": destination,
		"date":        dateISO,
	}).Info("starting flight search")

	stages := []stage{
		{entities.StageFormOpened, f.openForm},
		{entities.StageOriginSet, func(ctx context.Context) error {
			return f.setCity(ctx, "Where from?", origin)
		}},
		{entities.StageDestinationSet, func(ctx context.Context) error {
			return f.setCity(ctx, "Where to?", destination)
		}},
		{entities.StageDateSet, func(ctx context.Context) error {
			return f.setDate(ctx, dateISO)
		}},
		{entities.StageModalClosed, f.closeModal},
		{entities.StageSubmitted, f.submit},
	}

	for _, st := range stages {
		if err := st.run(ctx); err != nil {
			f.logger.WithField("stage", st.name).Errorf("stage failed: %v", err)
			f.diagnostic(ctx, "flight_search_error.png")
			return entities.BookingError
		}
		f.logger.WithField("stage", st.name).Debug("stage complete")
	}

	outcome := f.classifyResults(ctx)
	f.logger.WithField("stage", entities.StageResultsClassified).Infof("flight search finished: %s", outcome)
	return outcome
}

// openForm navigates to the flight search page and clears any popups
// or consent dialogs that block the form
func (f *Flow) openForm(ctx context.Context) error {
	if err := f.session.Navigate(ctx, flightsURL); err != nil {
		return err
	}
	_ = f.session.WaitForLoad(ctx, interfaces.LoadNetworkIdle, 30*time.Second)
	f.session.WaitForTimeout(2000)

	candidates := []interfaces.Criteria{
		{Kind: interfaces.ByText, Value: "Dismiss"},
		{Kind: interfaces.ByText, Value: "Accept all"},
		{Kind: interfaces.ByText, Value: "I agree"},
		{Kind: interfaces.ByCSS, Value: `button[aria-label*="Dismiss" i]`},
		{Kind: interfaces.ByCSS, Value: `button[jsname*="close"]`},
	}
	for _, c := range candidates {
		btn := f.session.Find(c).First()
		if btn.IsVisible(ctx) {
			if err := btn.Click(ctx); err == nil {
				f.logger.Debug("dismissed popup on flight search page")
				f.session.WaitForTimeout(1000)
				break
			}
		}
	}
	return nil
}

// diagnostic captures a best-effort screenshot for a terminal state
func (f *Flow) diagnostic(ctx context.Context, filename string) {
	path := filepath.Join(f.shotDir, filename)
	if err := f.session.Screenshot(ctx, path, true); err != nil {
		f.logger.Warnf("could not capture diagnostic screenshot: %v", err)
		return
	}
	f.logger.Infof("diagnostic screenshot saved: %s", path)
}
