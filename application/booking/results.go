package booking

import (
	"context"
	"strings"
	"time"

	"github.com/kn1ghtofzero/web-automation-agent/domain/entities"
	"github.com/kn1ghtofzero/web-automation-agent/domain/interfaces"
)

// resultsTimeout bounds the whole classification; expiry without a
// clear signal means the layout changed under us
const resultsTimeout = 30 * time.Second

// loadingSelectors are transient progress indicators. They are only
// awaited; their presence classifies nothing.
var loadingSelectors = []string{
	`[role="progressbar"]`,
	`[class*="loading"]`,
	`[class*="spinner"]`,
	`.progress-circular`,
	`.loading-indicator`,
}

// noResultCriteria are explicit "nothing found" markers
var noResultCriteria = []interfaces.Criteria{
	{Kind: interfaces.ByText, Value: "No flights found"},
	{Kind: interfaces.ByText, Value: "No matching flights"},
	{Kind: interfaces.ByText, Value: "Try different dates"},
	{Kind: interfaces.ByText, Value: "No options"},
	{Kind: interfaces.ByText, Value: "No results"},
	{Kind: interfaces.ByCSS, Value: `[class*="error-message"]`},
	{Kind: interfaces.ByCSS, Value: `[class*="no-results"]`},
	{Kind: interfaces.ByCSS, Value: `[class*="empty-state"]`},
}

// resultCardSelectors are known result-card layouts, most stable first
var resultCardSelectors = []string{
	`[data-testid="flight-card"]`,
	`[data-testid*="itinerary"]`,
	`[class*="flight-card"]`,
	`[class*="flight-result"]`,
	`div[role="listitem"]`,
	`.R1xNUc`,
	`.Rk10dc`,
	`[class*="itinerary"]`,
	`[class*="result-item"]`,
}

// classifyResults races the no-results markers against the result-card
// patterns under one bounded timeout. A diagnostic screenshot is
// captured in every terminal case.
func (f *Flow) classifyResults(ctx context.Context) entities.BookingOutcome {
	f.logger.Info("waiting for flight results")

	_ = f.session.WaitForLoad(ctx, interfaces.LoadNetworkIdle, resultsTimeout)
	f.session.WaitForTimeout(3000)

	f.awaitLoadingGone(ctx)

	deadline := time.Now().Add(resultsTimeout)
	for {
		if f.noResultsVisible(ctx) {
			f.diagnostic(ctx, "no_results_error.png")
			return entities.NoFlightsAvailable
		}
		if f.resultCardVisible(ctx) {
			f.diagnostic(ctx, "flight_results.png")
			return entities.FlightsFound
		}
		if time.Now().After(deadline) {
			break
		}
		f.session.WaitForTimeout(1000)
	}

	f.logger.Warn("no clear result signal; the page layout may have changed")
	f.diagnostic(ctx, "no_flights_found.png")
	return entities.BookingError
}

// awaitLoadingGone waits, bounded, for any visible progress indicator
// to disappear
func (f *Flow) awaitLoadingGone(ctx context.Context) {
	for _, selector := range loadingSelectors {
		loading := f.session.Locator(selector).First()
		if !loading.IsVisible(ctx) {
			continue
		}
		f.logger.WithField("selector", selector).Debug("waiting out loading indicator")
		_ = loading.WaitHidden(ctx, resultsTimeout)
	}
}

func (f *Flow) noResultsVisible(ctx context.Context) bool {
	for _, c := range noResultCriteria {
		marker := f.session.Find(c).First()
		if !marker.IsVisible(ctx) {
			continue
		}
		text, _ := marker.TextContent(ctx)
		f.logger.Infof("no flights found: %s", strings.TrimSpace(text))
		return true
	}
	return false
}

func (f *Flow) resultCardVisible(ctx context.Context) bool {
	for _, selector := range resultCardSelectors {
		cards := f.session.Locator(selector)
		count, err := cards.Count(ctx)
		if err != nil || count == 0 {
			continue
		}
		first := cards.First()
		if !first.IsVisible(ctx) {
			continue
		}
		text, err := first.TextContent(ctx)
		if err != nil || strings.TrimSpace(text) == "" {
			continue
		}
		f.logger.Infof("found %d flight results", count)
		return true
	}
	return false
}
