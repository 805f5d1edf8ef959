// Package googlemaps talks to the Google Maps web services (Geocoding, Places
// Text Search, Place Details) over fasthttp.
package googlemaps

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/samirrijal/placescout/internal/pkg/metrics"
)

const (
	geocodePath    = "/maps/api/geocode/json"
	textSearchPath = "/maps/api/place/textsearch/json"
	detailsPath    = "/maps/api/place/details/json"

	defaultBaseURL = "https://maps.googleapis.com"
	defaultTimeout = 10 * time.Second
)

// Client implements ports.Geocoder, ports.PlaceSearcher and
// ports.PlaceDetailer.
type Client struct {
	apiKey  string
	baseURL string
	timeout time.Duration
	http    *fasthttp.Client
}

// New creates a Maps client. baseURL is overridable for tests.
func New(apiKey, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		http: &fasthttp.Client{
			Name:                "placescout",
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxIdleConnDuration: time.Minute,
		},
	}
}

// getJSON issues a GET against path with params plus the API key and decodes
// the JSON body into out. The call is bounded by the context deadline when
// one is set, otherwise by the client timeout.
func (c *Client) getJSON(ctx context.Context, api, path string, params map[string]string, out interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + path)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")
	args := req.URI().QueryArgs()
	for k, v := range params {
		args.Add(k, v)
	}
	args.Add("key", c.apiKey)

	start := time.Now()
	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = c.http.DoDeadline(req, resp, deadline)
	} else {
		err = c.http.DoTimeout(req, resp, c.timeout)
	}
	metrics.ExternalCallDuration.WithLabelValues(api).Observe(time.Since(start).Seconds())
	if err != nil {
		return fmt.Errorf("%s request: %w", api, err)
	}

	if status := resp.StatusCode(); status != fasthttp.StatusOK {
		return fmt.Errorf("%s: unexpected status %d: %s", api, status, truncate(resp.Body(), 256))
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("%s: decode response: %w", api, err)
	}
	return nil
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n]) + "..."
	}
	return string(b)
}
