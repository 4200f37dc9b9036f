package util

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var (
	ErrStatus   = errors.New("unexpected response status")
	ErrTooLarge = errors.New("response body too large")
	// ErrHostNotAllowed rejects URLs outside a HostAllowlist.
	ErrHostNotAllowed = errors.New("url not allowed")
)

// NewClient returns an http.Client with a bounded timeout.
func NewClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 12 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

// GetBytes downloads url and returns at most maxBytes of body (0 means
// unlimited). Non-200 responses are errors.
func GetBytes(ctx context.Context, client *http.Client, url string, maxBytes int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
	}
	if maxBytes <= 0 {
		return io.ReadAll(resp.Body)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > maxBytes {
		return nil, fmt.Errorf("%w: over %d bytes", ErrTooLarge, maxBytes)
	}
	return body, nil
}

// HostAllowlist limits outbound fetches to https URLs on the listed hosts.
// Matching is exact and case-insensitive; an empty list allows nothing.
type HostAllowlist []string

// Check parses raw and returns the URL if it may be fetched.
func (a HostAllowlist) Check(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHostNotAllowed, err)
	}
	if err := a.allow(u); err != nil {
		return nil, err
	}
	return u, nil
}

func (a HostAllowlist) allow(u *url.URL) error {
	if u.Scheme != "https" {
		return fmt.Errorf("%w: scheme %q", ErrHostNotAllowed, u.Scheme)
	}
	if u.User != nil {
		return fmt.Errorf("%w: userinfo", ErrHostNotAllowed)
	}
	host := strings.ToLower(u.Hostname())
	for _, h := range a {
		if host != "" && strings.ToLower(h) == host {
			return nil
		}
	}
	return fmt.Errorf("%w: host %q", ErrHostNotAllowed, u.Hostname())
}

// Client returns a copy of base whose redirects must also pass the
// allowlist.
func (a HostAllowlist) Client(base *http.Client) *http.Client {
	c := *base
	next := base.CheckRedirect
	c.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		if err := a.allow(req.URL); err != nil {
			return err
		}
		if next != nil {
			return next(req, via)
		}
		if len(via) >= 10 {
			return errors.New("stopped after 10 redirects")
		}
		return nil
	}
	return &c
}
