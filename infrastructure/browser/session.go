package browser

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"

	"github.com/kn1ghtofzero/web-automation-agent/domain/interfaces"
	"github.com/kn1ghtofzero/web-automation-agent/infrastructure/config"
)

type playwrightSession struct {
	pw      *playwright.Playwright
	browser playwright.BrowserContext
	page    playwright.Page
	pages   []playwright.Page
	mu      sync.Mutex
	logger  *logrus.Logger
}

// NewSession - launches a persistent Chromium context and returns the
// session handle. The profile directory keeps login state between
// runs; without a configured one a throwaway profile is created so
// parallel invocations never collide.
func NewSession(cfg *config.Config, logger *logrus.Logger) (interfaces.Session, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	profileDir := cfg.ProfileDir
	if profileDir == "" {
		if err := os.MkdirAll(cfg.ProfilesRoot, 0755); err != nil {
			return nil, fmt.Errorf("failed to create profiles directory: %w", err)
		}
		profileDir = filepath.Join(cfg.ProfilesRoot, "temp_profile_"+uuid.NewString()[:8])
		logger.Infof("no profile directory configured, using fresh profile %s", profileDir)
	}

	browserCtx, err := pw.Chromium.LaunchPersistentContext(profileDir, playwright.BrowserTypeLaunchPersistentContextOptions{
		Headless: playwright.Bool(cfg.Headless),
		SlowMo:   playwright.Float(cfg.SlowMoMs),
		Args: []string{
			"--start-maximized",
			"--disable-popup-blocking",
			"--disable-notifications",
			"--disable-blink-features=AutomationControlled",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	var page playwright.Page
	if existing := browserCtx.Pages(); len(existing) > 0 {
		page = existing[0]
	} else {
		page, err = browserCtx.NewPage()
		if err != nil {
			return nil, fmt.Errorf("failed to create page: %w", err)
		}
	}

	s := &playwrightSession{
		pw:      pw,
		browser: browserCtx,
		page:    page,
		pages:   []playwright.Page{page},
		logger:  logger,
	}

	page.OnDialog(func(dialog playwright.Dialog) {
		dialog.Accept()
	})

	browserCtx.OnPage(func(newPage playwright.Page) {
		s.mu.Lock()
		defer s.mu.Unlock()

		s.pages = append(s.pages, newPage)
		s.page = newPage

		newPage.OnDialog(func(dialog playwright.Dialog) {
			dialog.Accept()
		})

		newPage.OnClose(func(closed playwright.Page) {
			s.mu.Lock()
			defer s.mu.Unlock()

			for i, p := range s.pages {
				if p == closed {
					s.pages = append(s.pages[:i], s.pages[i+1:]...)
					break
				}
			}
			if s.page == closed && len(s.pages) > 0 {
				s.page = s.pages[0]
			}
		})
	})

	return s, nil
}

func (s *playwrightSession) currentPage() playwright.Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

// Navigate - loads the URL and waits until the document is parsed
func (s *playwrightSession) Navigate(ctx context.Context, url string) error {
	_, err := s.currentPage().Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(30000),
	})
	return err
}

// WaitForLoad - waits for the given document readiness state
func (s *playwrightSession) WaitForLoad(ctx context.Context, state interfaces.LoadState, timeout time.Duration) error {
	loadState := playwright.LoadStateDomcontentloaded
	if state == interfaces.LoadNetworkIdle {
		loadState = playwright.LoadStateNetworkidle
	}
	return s.currentPage().WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   loadState,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
}

// WaitForTimeout - suspends for exactly the given duration
func (s *playwrightSession) WaitForTimeout(ms int) {
	s.currentPage().WaitForTimeout(float64(ms))
}

// Find - resolves a criteria into an element handle
func (s *playwrightSession) Find(c interfaces.Criteria) interfaces.Element {
	page := s.currentPage()
	var locator playwright.Locator
	switch c.Kind {
	case interfaces.ByLabel:
		locator = page.GetByLabel(c.Value, playwright.PageGetByLabelOptions{Exact: playwright.Bool(false)})
	case interfaces.ByPlaceholder:
		locator = page.GetByPlaceholder(c.Value, playwright.PageGetByPlaceholderOptions{Exact: playwright.Bool(false)})
	case interfaces.ByText:
		locator = page.GetByText(c.Value, playwright.PageGetByTextOptions{Exact: playwright.Bool(false)})
	default:
		locator = page.Locator(c.Value)
	}
	return &playwrightElement{locator: locator}
}

// Locator - shorthand for a CSS criteria
func (s *playwrightSession) Locator(selector string) interfaces.Element {
	return &playwrightElement{locator: s.currentPage().Locator(selector)}
}

// PressKey - sends a key at the page level
func (s *playwrightSession) PressKey(ctx context.Context, key string) error {
	return s.currentPage().Keyboard().Press(key)
}

// Screenshot - writes a page image to path
func (s *playwrightSession) Screenshot(ctx context.Context, path string, fullPage bool) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create screenshot directory: %w", err)
		}
	}
	_, err := s.currentPage().Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(fullPage),
	})
	return err
}

// URL - returns the current page URL
func (s *playwrightSession) URL() string {
	return s.currentPage().URL()
}

// Close - releases the browser; the persistent profile keeps cookies
// and storage on disk for the next run
func (s *playwrightSession) Close() error {
	var closeErr error
	if s.browser != nil {
		if err := s.browser.Close(); err != nil && !isAlreadyClosed(err) {
			closeErr = fmt.Errorf("failed to close browser context: %w", err)
		}
		s.browser = nil
	}
	if s.pw != nil {
		if err := s.pw.Stop(); err != nil && closeErr == nil {
			closeErr = fmt.Errorf("failed to stop playwright: %w", err)
		}
		s.pw = nil
	}
	return closeErr
}

func isAlreadyClosed(err error) bool {
	return strings.Contains(err.Error(), "closed")
}
