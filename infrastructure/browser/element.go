package browser

import (
	"context"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/kn1ghtofzero/web-automation-agent/domain/interfaces"
)

// typeDelayMs matches a human typing cadence; autocomplete widgets
// ignore input that arrives faster
const typeDelayMs = 100

// occlusionCheck reports whether the top-most element at this
// element's center point is a different element
const occlusionCheck = `element => {
	const rect = element.getBoundingClientRect();
	const centerX = rect.left + rect.width / 2;
	const centerY = rect.top + rect.height / 2;
	const topElement = document.elementFromPoint(centerX, centerY);
	return !element.contains(topElement) && topElement !== element;
}`

type playwrightElement struct {
	locator playwright.Locator
}

func (e *playwrightElement) First() interfaces.Element {
	return &playwrightElement{locator: e.locator.First()}
}

func (e *playwrightElement) Nth(i int) interfaces.Element {
	return &playwrightElement{locator: e.locator.Nth(i)}
}

func (e *playwrightElement) Locator(selector string) interfaces.Element {
	return &playwrightElement{locator: e.locator.Locator(selector)}
}

func (e *playwrightElement) Count(ctx context.Context) (int, error) {
	return e.locator.Count()
}

func (e *playwrightElement) WaitVisible(ctx context.Context, timeout time.Duration) error {
	return e.locator.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
}

func (e *playwrightElement) WaitHidden(ctx context.Context, timeout time.Duration) error {
	return e.locator.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateHidden,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
}

func (e *playwrightElement) IsVisible(ctx context.Context) bool {
	visible, err := e.locator.IsVisible()
	return err == nil && visible
}

func (e *playwrightElement) IsEnabled(ctx context.Context) bool {
	enabled, err := e.locator.IsEnabled()
	return err == nil && enabled
}

func (e *playwrightElement) Click(ctx context.Context) error {
	return e.locator.Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(10000),
	})
}

func (e *playwrightElement) ClickJS(ctx context.Context) error {
	_, err := e.locator.Evaluate("element => element.click()", nil)
	return err
}

func (e *playwrightElement) DispatchClick(ctx context.Context) error {
	return e.locator.DispatchEvent("click", nil)
}

func (e *playwrightElement) Fill(ctx context.Context, value string) error {
	return e.locator.Fill(value)
}

func (e *playwrightElement) TypeSlow(ctx context.Context, text string) error {
	return e.locator.PressSequentially(text, playwright.LocatorPressSequentiallyOptions{
		Delay: playwright.Float(typeDelayMs),
	})
}

func (e *playwrightElement) Press(ctx context.Context, key string) error {
	return e.locator.Press(key)
}

func (e *playwrightElement) InputValue(ctx context.Context) (string, error) {
	return e.locator.InputValue()
}

func (e *playwrightElement) TextContent(ctx context.Context) (string, error) {
	return e.locator.TextContent()
}

func (e *playwrightElement) Attribute(ctx context.Context, name string) (string, error) {
	value, err := e.locator.GetAttribute(name)
	if err != nil {
		return "", err
	}
	return value, nil
}

func (e *playwrightElement) ScrollIntoView(ctx context.Context) error {
	return e.locator.ScrollIntoViewIfNeeded()
}

func (e *playwrightElement) IsOccluded(ctx context.Context) (bool, error) {
	result, err := e.locator.Evaluate(occlusionCheck, nil)
	if err != nil {
		return false, err
	}
	covered, ok := result.(bool)
	return ok && covered, nil
}
