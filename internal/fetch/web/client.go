package web

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	fakeua "github.com/EDDYCJY/fake-useragent"
	"golang.org/x/time/rate"

	"udemy-crawl/internal/config"
	"udemy-crawl/internal/httpx"
)

// Client fetches pages over plain HTTP behind the cloudflare bypass
// transport with a rotating browser user agent. It cannot run page
// scripts, so it only sees server-rendered markup; it is the fetcher for
// environments without Chrome and the one integration tests exercise.
type Client struct {
	http    *http.Client
	limiter *rate.Limiter
	retry   httpx.RetryConfig
}

func New(set config.Settings) *Client {
	jar, _ := cookiejar.New(nil)
	hc := &http.Client{
		Timeout:   set.PageLoadTimeout,
		Jar:       jar,
		Transport: cloudflarebp.AddCloudFlareByPass(http.DefaultTransport),
	}

	return &Client{
		http: hc,
		// max 1 request per second, bursts never drop requests
		limiter: rate.NewLimiter(1, 1),
		retry:   httpx.DefaultRetryConfig(),
	}
}

func (c *Client) Fetch(ctx context.Context, url string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	header := http.Header{}
	header.Set("User-Agent", fakeua.Random())
	header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	header.Set("Accept-Language", "en-US,en;q=0.9")
	header.Set("Cookie", "ud_locale=en_US; seen=1")

	body, err := httpx.Get(ctx, c.http, url, header, c.retry)
	if err != nil {
		return "", fmt.Errorf("web: get %s: %w", url, err)
	}
	return string(body), nil
}
