package booking

import (
	"context"
	"strings"
	"time"

	"github.com/kn1ghtofzero/web-automation-agent/domain/interfaces"
)

// maxSuggestions bounds how many autocomplete options are inspected
const maxSuggestions = 10

// setCity resolves the labeled city input, types the city name and
// picks the best autocomplete suggestion. When no suggestion matches,
// the first listed one is selected rather than failing the stage; the
// airline form knows its own airports better than our alias table.
func (f *Flow) setCity(ctx context.Context, label, city string) error {
	input, err := f.resolve(ctx, labelStrategies(label), 10*time.Second)
	if err != nil {
		return err
	}

	if err := input.ScrollIntoView(ctx); err != nil {
		f.logger.Debugf("scroll into view: %v", err)
	}
	if err := input.Click(ctx); err != nil {
		return err
	}
	if err := input.Fill(ctx, ""); err != nil {
		return err
	}
	if err := input.TypeSlow(ctx, city); err != nil {
		return err
	}

	_ = f.session.WaitForLoad(ctx, interfaces.LoadNetworkIdle, 5*time.Second)
	f.session.WaitForTimeout(500)

	options := f.suggestionList(ctx, input).Locator(`[role="option"]`)
	if err := options.First().WaitVisible(ctx, 5*time.Second); err != nil {
		// no suggestion list; commit whatever was typed
		f.logger.Warnf("no suggestions appeared for %q, pressing Enter", city)
		if err := f.session.PressKey(ctx, "Enter"); err != nil {
			return err
		}
		f.session.WaitForTimeout(1000)
		return nil
	}

	count, err := options.Count(ctx)
	if err != nil || count == 0 {
		return f.session.PressKey(ctx, "Enter")
	}
	if count > maxSuggestions {
		count = maxSuggestions
	}

	texts := make([]string, 0, count)
	for i := 0; i < count; i++ {
		text, err := options.Nth(i).TextContent(ctx)
		if err != nil {
			text = ""
		}
		texts = append(texts, text)
	}

	pick := pickSuggestion(texts, city)
	if err := options.Nth(pick).Click(ctx); err != nil {
		return err
	}
	f.session.WaitForTimeout(1000)

	f.verifyCitySelected(ctx, input, city)
	return nil
}

// suggestionList finds the option list belonging to the input: the
// ARIA relationship when the input declares one, otherwise the first
// visible listbox
func (f *Flow) suggestionList(ctx context.Context, input interfaces.Element) interfaces.Element {
	for _, attr := range []string{"aria-controls", "aria-owns"} {
		if id, err := input.Attribute(ctx, attr); err == nil && id != "" {
			return f.session.Locator("#" + id)
		}
	}
	return f.session.Locator(`[role="listbox"]`).First()
}

// cityPatterns returns match patterns in decreasing specificity:
// the full name, the name without a comma suffix, the name without a
// parenthesized airport code, the first word
func cityPatterns(city string) []string {
	c := strings.ToLower(strings.TrimSpace(city))
	patterns := []string{c}
	if before, _, found := strings.Cut(c, ","); found {
		patterns = append(patterns, strings.TrimSpace(before))
	}
	if before, _, found := strings.Cut(c, "("); found {
		patterns = append(patterns, strings.TrimSpace(before))
	}
	if fields := strings.Fields(c); len(fields) > 0 {
		patterns = append(patterns, fields[0])
	}
	return patterns
}

// pickSuggestion returns the index of the first option, scanning top
// to bottom, that contains any pattern. An option higher in the list
// wins even when a lower one matches a more specific pattern; the
// widget ranks its own suggestions by relevance. When nothing matches
// it returns 0: selecting the first listed suggestion is the
// deterministic fallback.
func pickSuggestion(texts []string, city string) int {
	patterns := cityPatterns(city)
	for i, text := range texts {
		lower := strings.ToLower(text)
		for _, p := range patterns {
			if p != "" && strings.Contains(lower, p) {
				return i
			}
		}
	}
	return 0
}

// verifyCitySelected checks, best effort, that the input echoes the
// selected city back
func (f *Flow) verifyCitySelected(ctx context.Context, input interfaces.Element, city string) {
	core := city
	if before, _, found := strings.Cut(core, ","); found {
		core = before
	}
	if before, _, found := strings.Cut(core, "("); found {
		core = before
	}
	core = strings.ToLower(strings.TrimSpace(core))

	value, err := input.InputValue(ctx)
	if err != nil || !strings.Contains(strings.ToLower(value), core) {
		f.logger.Warnf("could not verify city selection, field value is %q", value)
		return
	}
	f.logger.Debugf("verified city %q selected", city)
}
