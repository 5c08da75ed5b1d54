package browser

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"udemy-crawl/internal/config"
	"udemy-crawl/internal/pacing"
)

// Session owns one Chrome instance. Each crawl phase acquires its own
// session and must Close it on every exit path; within a phase the
// session is used strictly sequentially.
type Session struct {
	tab     context.Context
	cancels []context.CancelFunc
	set     config.Settings
	pacer   pacing.Pacer
	rnd     *rand.Rand

	cookiesSet bool
}

func NewSession(parent context.Context, set config.Settings, headless bool, pacer pacing.Pacer) (*Session, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("start-maximized", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserDataDir(profileDir()),
	)
	if headless {
		opts = append(opts,
			chromedp.Flag("headless", "new"),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
		)
	} else {
		opts = append(opts, chromedp.Flag("headless", false))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(parent, opts...)
	tab, cancelTab := chromedp.NewContext(allocCtx)

	// start the browser now so Fetch errors are navigation errors only
	if err := chromedp.Run(tab); err != nil {
		cancelTab()
		cancelAlloc()
		return nil, fmt.Errorf("browser: start chrome: %w", err)
	}
	fmt.Printf("[driver] chrome started (headless=%v)\n", headless)

	return &Session{
		tab:     tab,
		cancels: []context.CancelFunc{cancelTab, cancelAlloc},
		set:     set,
		pacer:   pacer,
		rnd:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

// The persistent profile keeps cookies between runs, which lowers the
// chance of bot checks on repeat visits.
func profileDir() string {
	wd, err := os.Getwd()
	if err != nil {
		return "udemy_profile"
	}
	return filepath.Join(wd, "udemy_profile")
}

func (s *Session) Close() {
	for i := len(s.cancels) - 1; i >= 0; i-- {
		s.cancels[i]()
	}
	fmt.Println("[driver] chrome closed")
}

// Fetch navigates to url and returns the rendered page source after the
// locale cookies are in place and a human-like scroll has run.
func (s *Session) Fetch(ctx context.Context, url string) (string, error) {
	navCtx, cancel := context.WithTimeout(s.tab, s.set.PageLoadTimeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	if err := chromedp.Run(navCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	); err != nil {
		return "", fmt.Errorf("browser: open %s: %w", url, err)
	}

	if !s.cookiesSet {
		if err := s.setLocaleCookies(navCtx); err == nil {
			s.cookiesSet = true
			_ = chromedp.Run(navCtx, chromedp.Reload())
			_ = s.pacer.Pause(ctx, s.set.Jitter)
		}
	}

	s.humanScroll(navCtx, ctx)

	var html string
	if err := chromedp.Run(navCtx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("browser: page source: %w", err)
	}
	return html, nil
}

func (s *Session) setLocaleCookies(ctx context.Context) error {
	cookies := []struct{ name, value string }{
		{"ud_locale", "en_US"},
		{"seen", "1"},
	}
	return chromedp.Run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		for _, c := range cookies {
			err := network.SetCookie(c.name, c.value).
				WithDomain(".udemy.com").
				WithPath("/").
				Do(ctx)
			if err != nil {
				return err
			}
		}
		return nil
	}))
}

// humanScroll mimics organic reading: a jittered number of partial
// scrolls with short pauses, then a jump to the bottom of the page.
func (s *Session) humanScroll(navCtx, ctx context.Context) {
	steps := s.set.ScrollSteps
	if steps > 2 {
		steps = steps - 2 + s.rnd.Intn(6)
	}
	for i := 0; i < steps; i++ {
		px := 400 + s.rnd.Intn(401)
		err := chromedp.Run(navCtx,
			chromedp.Evaluate(fmt.Sprintf("window.scrollBy(0, %d);", px), nil))
		if err != nil {
			return
		}
		if s.pacer.Pause(ctx, s.set.ScrollPause) != nil {
			return
		}
	}
	_ = chromedp.Run(navCtx,
		chromedp.Evaluate("window.scrollTo(0, document.body.scrollHeight);", nil))
	_ = s.pacer.Pause(ctx, s.set.Jitter)
}
