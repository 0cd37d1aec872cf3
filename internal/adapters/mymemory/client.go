// internal/adapters/mymemory/client.go
package mymemory

import (
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"millcreek_parks/internal/adapters/observability"
)

// Client talks to the MyMemory translation API. The service is free-tier and
// aggressively rate limited, so every call goes through a client-side limiter
// and retries honor Retry-After.
type Client struct {
	base string
	hc   *http.Client
	ua   string
	rl   *rate.Limiter
}

// maxTextLen bounds the query text; the API rejects longer inputs.
const maxTextLen = 500

func New(base, userAgent string, rps int) *Client {
	if rps <= 0 {
		rps = 1
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 20 * time.Second},
		ua:   userAgent,
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}
}

var (
	ErrUnavailable = errors.New("mymemory: translation unavailable")
	ErrQuota       = errors.New("mymemory: quota exceeded")
)

type envelope struct {
	ResponseData struct {
		TranslatedText string `json:"translatedText"`
	} `json:"responseData"`
	// The API reports this as either a number or a quoted string.
	ResponseStatus  any    `json:"responseStatus"`
	ResponseDetails string `json:"responseDetails"`
}

func (e envelope) status() int {
	switch v := e.ResponseStatus.(type) {
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return 0
}

// Translate requests a best-effort translation of text from source to target.
// The returned string is the service's verbatim answer; callers compare it to
// the input to recognize a no-op.
func (c *Client) Translate(ctx context.Context, text, source, target string) (string, error) {
	if r := []rune(text); len(r) > maxTextLen {
		text = string(r[:maxTextLen])
	}
	u := fmt.Sprintf("%s/get?q=%s&langpair=%s",
		c.base,
		url.QueryEscape(text),
		url.QueryEscape(source+"|"+target),
	)

	var env envelope
	if err := c.get(ctx, u, &env); err != nil {
		return "", err
	}
	if st := env.status(); st != 0 && st != http.StatusOK {
		if st == http.StatusForbidden || st == http.StatusTooManyRequests {
			return "", fmt.Errorf("%w: %s", ErrQuota, env.ResponseDetails)
		}
		return "", fmt.Errorf("%w: status %d: %s", ErrUnavailable, st, env.ResponseDetails)
	}
	out := strings.TrimSpace(env.ResponseData.TranslatedText)
	if out == "" {
		return "", ErrUnavailable
	}
	return out, nil
}

// get performs a GET with client-side rate limiting, retries, and JSON decode
// into out. Retries on 429 and transient 5xx, honoring Retry-After.
func (c *Client) get(ctx context.Context, url string, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	start := time.Now()
	var lastErr error
	for i := 0; i < 4; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")
		if c.ua != "" {
			req.Header.Set("User-Agent", c.ua)
		}

		resp, err := c.hc.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			if i < 3 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			observability.ObserveExternal("mymemory", "get", 0, time.Since(start))
			return lastErr
		}

		switch resp.StatusCode {
		case http.StatusOK:
			err := json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			observability.ObserveExternal("mymemory", "get", http.StatusOK, time.Since(start))
			return err

		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = fmt.Errorf("%w: remote %d", ErrUnavailable, resp.StatusCode)
			if i < 3 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			observability.ObserveExternal("mymemory", "get", resp.StatusCode, time.Since(start))
			return lastErr

		case http.StatusForbidden:
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			observability.ObserveExternal("mymemory", "get", resp.StatusCode, time.Since(start))
			return ErrQuota

		default:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			observability.ObserveExternal("mymemory", "get", resp.StatusCode, time.Since(start))
			return fmt.Errorf("%w: bad status %d: %s", ErrUnavailable, resp.StatusCode, strings.TrimSpace(string(b)))
		}
	}

	return lastErr
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After (seconds or HTTP-date). Returns 0 if absent.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff returns an exponential delay (200ms, 400ms, 800ms...) with up to
// +50% jitter from crypto/rand so concurrent clients don't herd.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	j := time.Duration(0.5 * f * float64(base))
	return base + j
}
