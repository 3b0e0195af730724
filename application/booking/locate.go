package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kn1ghtofzero/web-automation-agent/domain/interfaces"
)

// strategy is one way of locating a logical element. Strategies are
// tried in priority order and share a single acceptance predicate:
// the resolved element must be visible and enabled.
type strategy struct {
	name     string
	criteria interfaces.Criteria
}

// labelStrategies builds the standard strategy chain for a labeled
// form control: accessible label, contextual attribute match,
// bare attribute match, placeholder text.
func labelStrategies(label string) []strategy {
	return []strategy{
		{"label", interfaces.Criteria{Kind: interfaces.ByLabel, Value: label}},
		{"combobox", interfaces.Criteria{Kind: interfaces.ByCSS, Value: fmt.Sprintf(`[aria-label*="%s" i][role="combobox"]`, label)}},
		{"aria", interfaces.Criteria{Kind: interfaces.ByCSS, Value: fmt.Sprintf(`[aria-label*="%s" i]`, label)}},
		{"placeholder", interfaces.Criteria{Kind: interfaces.ByPlaceholder, Value: label}},
	}
}

// resolve walks the strategy chain and returns the first element that
// is present, visible and enabled. Exhausting the chain fails the
// calling stage.
func (f *Flow) resolve(ctx context.Context, strategies []strategy, timeout time.Duration) (interfaces.Element, error) {
	var tried []string
	for _, s := range strategies {
		el := f.session.Find(s.criteria).First()
		if err := el.WaitVisible(ctx, timeout); err != nil {
			tried = append(tried, s.name)
			continue
		}
		if !el.IsEnabled(ctx) {
			tried = append(tried, s.name)
			continue
		}
		f.logger.WithField("strategy", s.name).Debug("resolved element")
		return el, nil
	}
	return nil, fmt.Errorf("no locator strategy yielded an actionable element (tried %s)", strings.Join(tried, ", "))
}
