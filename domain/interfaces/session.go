package interfaces

import (
	"context"
	"time"
)

// LocatorKind selects how a Criteria is resolved against the page
type LocatorKind string

const (
	ByCSS         LocatorKind = "css"
	ByLabel       LocatorKind = "label"
	ByPlaceholder LocatorKind = "placeholder"
	ByText        LocatorKind = "text"
)

// Criteria describes one way of locating an element on the page
type Criteria struct {
	Kind  LocatorKind
	Value string
}

// LoadState names a document readiness level to wait for
type LoadState string

const (
	LoadDOMContentLoaded LoadState = "domcontentloaded"
	LoadNetworkIdle      LoadState = "networkidle"
)

// Element is a lazy handle to zero or more matching page elements.
// Resolution happens when an operation is invoked, mirroring the
// driver's locator semantics.
type Element interface {
	// First narrows the handle to the first match
	First() Element

	// Nth narrows the handle to the i-th match (0-based)
	Nth(i int) Element

	// Locator returns a handle scoped below this one
	Locator(selector string) Element

	// Count returns the number of current matches
	Count(ctx context.Context) (int, error)

	// WaitVisible blocks until the element is visible or the timeout expires
	WaitVisible(ctx context.Context, timeout time.Duration) error

	// WaitHidden blocks until the element is hidden or detached
	WaitHidden(ctx context.Context, timeout time.Duration) error

	// IsVisible reports visibility without waiting
	IsVisible(ctx context.Context) bool

	// IsEnabled reports whether the element accepts interaction
	IsEnabled(ctx context.Context) bool

	// Click performs a trusted pointer click
	Click(ctx context.Context) error

	// ClickJS activates the element programmatically via script
	ClickJS(ctx context.Context) error

	// DispatchClick dispatches a raw click event to the element
	DispatchClick(ctx context.Context) error

	// Fill replaces the element's value with text
	Fill(ctx context.Context, value string) error

	// TypeSlow types text key by key with a human-like delay
	TypeSlow(ctx context.Context, text string) error

	// Press sends a single key to the element
	Press(ctx context.Context, key string) error

	// InputValue returns the element's current value
	InputValue(ctx context.Context) (string, error)

	// TextContent returns the element's text
	TextContent(ctx context.Context) (string, error)

	// Attribute returns the named attribute, or "" when absent
	Attribute(ctx context.Context, name string) (string, error)

	// ScrollIntoView scrolls the element into the viewport
	ScrollIntoView(ctx context.Context) error

	// IsOccluded reports whether another element covers this one's center point
	IsOccluded(ctx context.Context) (bool, error)
}

// Session is the boundary to the external browser driver. One session
// is exclusively owned by the executor for the lifetime of one plan.
type Session interface {
	// Navigate loads a URL and waits for the document to be parsed
	Navigate(ctx context.Context, url string) error

	// WaitForLoad waits for the given document readiness state
	WaitForLoad(ctx context.Context, state LoadState, timeout time.Duration) error

	// WaitForTimeout suspends for exactly the given duration
	WaitForTimeout(ms int)

	// Find resolves a criteria into an element handle
	Find(c Criteria) Element

	// Locator is shorthand for Find with a CSS criteria
	Locator(selector string) Element

	// PressKey sends a key at the page level
	PressKey(ctx context.Context, key string) error

	// Screenshot writes a page image to path
	Screenshot(ctx context.Context, path string, fullPage bool) error

	// URL returns the current page URL
	URL() string

	// Close releases the session and persists browser state
	Close() error
}
