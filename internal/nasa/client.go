// Package nasa implements the upstream adapters: request building, the
// outbound call, raw body decoding and failure classification. Adapters have
// no side effects beyond the call itself and never touch shared state.
package nasa

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	userAgent  = "nasa-gateway/1.0"
	dateLayout = "2006-01-02"

	// The NEO feed upstream caps a single query at this many days.
	maxNeoRangeDays = 7
)

// Defaults applied by the image-search adapter when a parameter is unset.
const (
	DefaultSearchQuery     = "galaxy"
	DefaultSearchMediaType = "image"
)

// Client talks to the three public providers. The API key is injected once
// at construction and never read from the environment at call time.
type Client struct {
	http       *http.Client
	apiBase    string
	imagesBase string
	apiKey     string
	log        *slog.Logger
	now        func() time.Time
}

// NewClient builds a Client. apiBase serves the daily-picture and NEO feeds,
// imagesBase serves keyword image search (that host takes no api_key).
func NewClient(apiBase, imagesBase, apiKey string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		http:       &http.Client{Timeout: timeout},
		apiBase:    strings.TrimRight(apiBase, "/"),
		imagesBase: strings.TrimRight(imagesBase, "/"),
		apiKey:     apiKey,
		log:        logger,
		now:        time.Now,
	}
}

// FetchAPOD fetches the daily-picture record. An empty date means "today"
// as decided by the upstream.
func (c *Client) FetchAPOD(ctx context.Context, date string) (*APODPayload, error) {
	q := url.Values{}
	q.Set("api_key", c.apiKey)
	if date != "" {
		if _, err := time.Parse(dateLayout, date); err != nil {
			return nil, rejected(fmt.Sprintf("invalid date %q, want YYYY-MM-DD", date))
		}
		q.Set("date", date)
	}

	body, err := c.get(ctx, c.apiBase+"/planetary/apod?"+q.Encode())
	if err != nil {
		return nil, err
	}

	var payload APODPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, Malformed("decode apod body: %v", err)
	}
	return &payload, nil
}

// ImageSearchParams are the typed image-search parameters of the gateway.
type ImageSearchParams struct {
	Query     string
	MediaType string
	Page      int
}

// SearchImages queries the image-search provider. Unset parameters take the
// documented defaults; the query string is percent-encoded by url.Values.
func (c *Client) SearchImages(ctx context.Context, p ImageSearchParams) (*ImageSearchPayload, error) {
	if p.Query == "" {
		p.Query = DefaultSearchQuery
	}
	if p.MediaType == "" {
		p.MediaType = DefaultSearchMediaType
	}
	if p.Page < 1 {
		p.Page = 1
	}

	q := url.Values{}
	q.Set("q", p.Query)
	q.Set("media_type", p.MediaType)
	q.Set("page", fmt.Sprintf("%d", p.Page))

	body, err := c.get(ctx, c.imagesBase+"/search?"+q.Encode())
	if err != nil {
		return nil, err
	}

	var payload ImageSearchPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, Malformed("decode image search body: %v", err)
	}
	return &payload, nil
}

// FetchNeoFeed fetches near-Earth objects for the requested window. Empty
// bounds take the documented defaults (today UTC, start + 7 days).
func (c *Client) FetchNeoFeed(ctx context.Context, startDate, endDate string) (*NEOFeedPayload, error) {
	start, end, err := NeoWindow(startDate, endDate, c.now())
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("start_date", start)
	q.Set("end_date", end)
	q.Set("api_key", c.apiKey)

	body, err := c.get(ctx, c.apiBase+"/neo/rest/v1/feed?"+q.Encode())
	if err != nil {
		return nil, err
	}

	var payload NEOFeedPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, Malformed("decode neo feed body: %v", err)
	}
	if payload.NearEarthObjects == nil {
		return nil, Malformed("neo feed body lacks near_earth_objects")
	}
	return &payload, nil
}

// NeoWindow resolves the requested date range against the current time.
// Spans over the upstream's 7-day maximum are rejected here rather than
// burning a call the upstream would 400 anyway.
func NeoWindow(startDate, endDate string, now time.Time) (start, end string, err error) {
	if startDate == "" {
		startDate = now.UTC().Format(dateLayout)
	}
	sd, perr := time.Parse(dateLayout, startDate)
	if perr != nil {
		return "", "", rejected(fmt.Sprintf("invalid startDate %q, want YYYY-MM-DD", startDate))
	}

	if endDate == "" {
		endDate = sd.AddDate(0, 0, maxNeoRangeDays).Format(dateLayout)
	}
	ed, perr := time.Parse(dateLayout, endDate)
	if perr != nil {
		return "", "", rejected(fmt.Sprintf("invalid endDate %q, want YYYY-MM-DD", endDate))
	}

	if ed.Before(sd) {
		return "", "", rejected("endDate must not precede startDate")
	}
	if ed.Sub(sd) > maxNeoRangeDays*24*time.Hour {
		return "", "", rejected(fmt.Sprintf("date range exceeds the %d-day maximum", maxNeoRangeDays))
	}

	return sd.Format(dateLayout), ed.Format(dateLayout), nil
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, unavailable("build request", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, unavailable("upstream call failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, unavailable("read upstream body", err)
	}

	c.log.Debug("upstream call",
		slog.String("url", req.URL.Scheme+"://"+req.URL.Host+req.URL.Path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("took", time.Since(started)),
	)

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, statusError(resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}
