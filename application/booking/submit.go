package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/kn1ghtofzero/web-automation-agent/domain/interfaces"
)

// searchButtonSelectors locate the search control, most specific first
var searchButtonSelectors = []string{
	`button:has-text("Search")`,
	`button:has-text("Find flights")`,
	`button:has-text("Search flights")`,
	`button[aria-label*="Search" i]`,
	`button[aria-label*="Find" i]`,
	`button[type="submit"]`,
	`button[jsname*="search"]`,
	`button[data-testid*="search"]`,
	`input[type="submit"]`,
	`[role="button"]:has-text("Search")`,
	`[role="button"]:has-text("Find")`,
}

// overlaySelectors match dialogs and overlays that block interaction
var overlaySelectors = []string{
	`button[aria-label*="Close"]`,
	`button[aria-label*="Dismiss"]`,
	`button:has-text("Dismiss")`,
	`button:has-text("Close")`,
	`button:has-text("Got it")`,
	`button:has-text("I understand")`,
	`.close-button`,
	`.dismiss-button`,
	`[role="dialog"] button:last-child`,
	`.modal-close`,
	`.overlay-close`,
}

// closeModal closes the search form modal when one is still open.
// Nothing to close is not a failure.
func (f *Flow) closeModal(ctx context.Context) error {
	candidates := []interfaces.Criteria{
		{Kind: interfaces.ByText, Value: "Done"},
		{Kind: interfaces.ByCSS, Value: `button[aria-label*="Done" i]`},
		{Kind: interfaces.ByCSS, Value: `button:has-text("Done")`},
		{Kind: interfaces.ByCSS, Value: `[role="button"]:has-text("Done")`},
		{Kind: interfaces.ByCSS, Value: `button[aria-label*="Close" i]`},
		{Kind: interfaces.ByCSS, Value: `[role="dialog"] button:last-child`},
	}

	for _, c := range candidates {
		btn := f.session.Find(c).First()
		if !btn.IsVisible(ctx) {
			continue
		}
		if err := btn.Click(ctx); err != nil {
			continue
		}
		f.logger.Debug("closed search form modal")
		f.session.WaitForTimeout(1000)
		return nil
	}

	f.logger.Debug("no modal to close")
	return nil
}

// dismissOverlays clicks away any visible blocking overlay and sends
// Escape for modals without a close control. Best effort.
func (f *Flow) dismissOverlays(ctx context.Context) {
	for _, selector := range overlaySelectors {
		btn := f.session.Locator(selector).First()
		if !btn.IsVisible(ctx) {
			continue
		}
		if err := btn.Click(ctx); err == nil {
			f.logger.WithField("selector", selector).Debug("dismissed overlay")
			f.session.WaitForTimeout(1000)
		}
	}
	_ = f.session.PressKey(ctx, "Escape")
	f.session.WaitForTimeout(500)
}

// submit resolves the search control and activates it. Some controls
// are visually present but covered by an overlay, so the element's
// center point is checked first; the activation itself escalates from
// a trusted click to a programmatic click to a raw event dispatch.
func (f *Flow) submit(ctx context.Context) error {
	for _, selector := range searchButtonSelectors {
		button := f.session.Locator(selector).First()
		if !button.IsVisible(ctx) {
			continue
		}
		f.logger.WithField("selector", selector).Debug("found search button")

		f.dismissOverlays(ctx)
		f.session.WaitForTimeout(500)

		if err := button.WaitVisible(ctx, 5*time.Second); err != nil {
			continue
		}
		if !button.IsEnabled(ctx) {
			continue
		}
		if err := button.ScrollIntoView(ctx); err == nil {
			f.session.WaitForTimeout(500)
		}

		if occluded, err := button.IsOccluded(ctx); err == nil && occluded {
			f.logger.Debug("search button is covered by an overlay, dismissing")
			f.dismissOverlays(ctx)
			f.session.WaitForTimeout(1000)
		}

		if f.activate(ctx, button) {
			f.awaitLoadingGone(ctx)
			return nil
		}
	}

	return fmt.Errorf("could not find or activate the search button")
}

// activate tries the three escalating activation strategies in fixed
// order; any success ends the stage
func (f *Flow) activate(ctx context.Context, button interfaces.Element) bool {
	if err := button.Click(ctx); err == nil {
		f.logger.Debug("activated search button with a pointer click")
		return true
	} else {
		f.logger.Debugf("pointer click failed: %v", err)
	}

	if err := button.ClickJS(ctx); err == nil {
		f.logger.Debug("activated search button programmatically")
		return true
	} else {
		f.logger.Debugf("programmatic click failed: %v", err)
	}

	if err := button.DispatchClick(ctx); err == nil {
		f.logger.Debug("activated search button via event dispatch")
		return true
	} else {
		f.logger.Debugf("event dispatch failed: %v", err)
	}

	return false
}
