package booking

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kn1ghtofzero/web-automation-agent/domain/interfaces"
)

// dateInputSelectors locate the departure date field, most specific
// first
var dateInputSelectors = []string{
	`[aria-label="Departure date"]`,
	`[placeholder*="Departure date"]`,
	`[aria-label="Departure"]`,
	`input[type="text"][aria-label*="Departure"]`,
	`[role="textbox"][aria-label*="Departure"]`,
}

// maxMonthHops bounds calendar paging so a missing month label cannot
// loop forever
const maxMonthHops = 24

// setDate fills the departure date. Direct keyboard entry is tried
// first; when the field does not echo the value back, the calendar
// widget is opened and paged to the target month instead.
func (f *Flow) setDate(ctx context.Context, dateISO string) error {
	target, err := time.Parse("2006-01-02", dateISO)
	if err != nil {
		return fmt.Errorf("invalid travel date %q: %w", dateISO, err)
	}
	slashDate := target.Format("01/02/2006")

	for _, selector := range dateInputSelectors {
		input := f.session.Locator(selector).First()
		if !input.IsVisible(ctx) {
			continue
		}
		f.logger.WithField("selector", selector).Debug("found date input")

		f.dismissOverlays(ctx)
		f.session.WaitForTimeout(500)

		if err := input.Click(ctx); err != nil {
			continue
		}
		if err := input.Fill(ctx, ""); err != nil {
			continue
		}
		f.session.WaitForTimeout(500)

		if err := input.TypeSlow(ctx, slashDate); err == nil {
			f.session.WaitForTimeout(500)
			_ = f.session.PressKey(ctx, "Enter")
			f.session.WaitForTimeout(1000)

			if value, err := input.InputValue(ctx); err == nil &&
				(strings.Contains(value, slashDate) || strings.Contains(value, dateISO)) {
				f.logger.Debugf("date set via direct input: %s", slashDate)
				return nil
			}
		}

		// direct entry was not echoed back; use the calendar widget
		if err := input.Click(ctx); err != nil {
			continue
		}
		f.session.WaitForTimeout(1000)
		if err := f.pickFromCalendar(ctx, target); err == nil {
			return nil
		}
	}

	return fmt.Errorf("could not set departure date %s, the calendar interface may have changed", dateISO)
}

// pickFromCalendar pages the calendar month by month toward the target
// date and clicks its day cell
func (f *Flow) pickFromCalendar(ctx context.Context, target time.Time) error {
	grid := f.session.Locator(`[role="grid"]`).First()
	if err := grid.WaitVisible(ctx, 5*time.Second); err != nil {
		return fmt.Errorf("calendar did not open: %w", err)
	}

	monthLabel := f.session.Locator(`[aria-live="polite"]`).First()
	targetMonth := target.Format("January 2006")
	forward := target.After(time.Now())

	for hop := 0; hop < maxMonthHops; hop++ {
		label, err := monthLabel.TextContent(ctx)
		if err == nil && strings.Contains(label, targetMonth) {
			break
		}
		var pager interfaces.Element
		if forward {
			pager = f.session.Locator(`button[aria-label*="Next month"]`).First()
		} else {
			pager = f.session.Locator(`button[aria-label*="Previous month"]`).First()
		}
		if err := pager.Click(ctx); err != nil {
			return fmt.Errorf("could not page calendar to %s: %w", targetMonth, err)
		}
		f.session.WaitForTimeout(500)
	}

	day := strconv.Itoa(target.Day())
	dayCellSelectors := []string{
		fmt.Sprintf(`[aria-label*="%d/%s/%d"]`, int(target.Month()), day, target.Year()),
		fmt.Sprintf(`td[role="gridcell"]:has-text("%s")`, day),
		fmt.Sprintf(`button:has-text("%s")`, day),
		fmt.Sprintf(`[data-value="%s"]`, target.Format("2006-01-02")),
		fmt.Sprintf(`[data-date="%s"]`, target.Format("2006-01-02")),
	}

	for _, selector := range dayCellSelectors {
		cell := f.session.Locator(selector).First()
		if !cell.IsVisible(ctx) {
			continue
		}
		if err := cell.Click(ctx); err != nil {
			continue
		}
		f.session.WaitForTimeout(1000)
		f.logger.Debugf("selected %s from calendar", target.Format("2006-01-02"))
		return nil
	}

	return fmt.Errorf("day cell for %s not found in calendar", target.Format("2006-01-02"))
}
