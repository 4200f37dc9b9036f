// Package imagesearch finds background photos for a poster through the
// Unsplash search API.
package imagesearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/sync/errgroup"

	"github.com/youruser/posterapp/internal/util"
)

var (
	ErrEmptyQuery    = errors.New("search query is empty")
	ErrNotConfigured = errors.New("image search access key is not configured")
)

// MaxResults caps the merged result list.
const MaxResults = 8

// Photo is one search hit.
type Photo struct {
	ID        string `json:"id"`
	Thumb     string `json:"thumb"`
	Full      string `json:"full"`
	Author    string `json:"author,omitempty"`
	AuthorURL string `json:"author_url,omitempty"`
}

type Config struct {
	BaseURL     string
	AccessKey   string
	PerPage     int
	Orientation string
	Timeout     time.Duration
	Breaker     util.BreakerConfig
}

type Client struct {
	cfg     Config
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[[]Photo]
}

func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.unsplash.com"
	}
	if cfg.PerPage <= 0 {
		cfg.PerPage = 3
	}
	if cfg.Orientation == "" {
		cfg.Orientation = "squarish"
	}
	return &Client{
		cfg:     cfg,
		http:    util.NewClient(cfg.Timeout),
		breaker: util.NewBreaker[[]Photo]("unsplash", cfg.Breaker),
	}
}

type searchResponse struct {
	Results []struct {
		ID   string `json:"id"`
		URLs struct {
			Small   string `json:"small"`
			Regular string `json:"regular"`
		} `json:"urls"`
		User struct {
			Name  string `json:"name"`
			Links struct {
				HTML string `json:"html"`
			} `json:"links"`
		} `json:"user"`
	} `json:"results"`
}

// Search expands query into related terms, searches them concurrently
// and merges the hits. One failed term fails the whole search.
func (c *Client) Search(ctx context.Context, query string) ([]Photo, error) {
	q := NormalizeQuery(query)
	if q == "" {
		return nil, ErrEmptyQuery
	}
	if c.cfg.AccessKey == "" {
		return nil, ErrNotConfigured
	}

	terms := RelatedTerms(q)
	merged, err := c.breaker.Execute(func() ([]Photo, error) {
		return c.searchTerms(ctx, terms)
	})
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"query":   q,
		"terms":   strings.Join(terms, ","),
		"results": len(merged),
	}).Info("image search")
	return merged, nil
}

func (c *Client) searchTerms(ctx context.Context, terms []string) ([]Photo, error) {
	batches := make([][]Photo, len(terms))
	g, gctx := errgroup.WithContext(ctx)
	for i, term := range terms {
		i, term := i, term
		g.Go(func() error {
			photos, err := c.searchTerm(gctx, term)
			if err != nil {
				return fmt.Errorf("search %q: %w", term, err)
			}
			batches[i] = photos
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return Merge(batches, MaxResults), nil
}

func (c *Client) searchTerm(ctx context.Context, term string) ([]Photo, error) {
	params := url.Values{}
	params.Set("query", term)
	params.Set("per_page", strconv.Itoa(c.cfg.PerPage))
	params.Set("orientation", c.cfg.Orientation)
	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/search/photos?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Client-ID "+c.cfg.AccessKey)
	req.Header.Set("Accept-Version", "v1")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", util.ErrStatus, resp.StatusCode)
	}

	var out searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	photos := make([]Photo, 0, len(out.Results))
	for _, r := range out.Results {
		photos = append(photos, Photo{
			ID:        r.ID,
			Thumb:     r.URLs.Small,
			Full:      r.URLs.Regular,
			Author:    r.User.Name,
			AuthorURL: r.User.Links.HTML,
		})
	}
	return photos, nil
}

// Merge concatenates batches in order, keeping the first photo seen for
// each id, and stops at limit.
func Merge(batches [][]Photo, limit int) []Photo {
	seen := make(map[string]bool)
	out := make([]Photo, 0, limit)
	for _, batch := range batches {
		for _, p := range batch {
			if len(out) >= limit {
				return out
			}
			if seen[p.ID] {
				continue
			}
			seen[p.ID] = true
			out = append(out, p)
		}
	}
	return out
}
