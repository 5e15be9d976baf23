package tle

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Default CelesTrak endpoints. The plain stations.txt listing has been known
// to start answering 403 after deprecations, so access denial from it is
// retried against the gp.php group query instead.
const (
	DefaultStationsURL = "https://celestrak.org/NORAD/elements/stations.txt"
	DefaultGroupURL    = "https://celestrak.org/NORAD/elements/gp.php?GROUP=stations&FORMAT=tle"
)

const (
	defaultTimeout   = 15 * time.Second
	defaultUserAgent = "iss-horizon/0.1 (+https://github.com/iss-horizon/horizon)"
)

//go:embed iss_tle.txt
var bundledText string

// statusError is a non-success HTTP response from a TLE source. It is kept
// as a distinct type so the fallback chain can recognize access denial.
type statusError struct {
	url  string
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("GET %s: HTTP %d", e.url, e.code)
}

func (e *statusError) Unwrap() error { return ErrFetch }

// Options configures a Client. The zero value is usable; every field has a
// default.
type Options struct {
	// HTTPClient overrides the default 15-second-timeout client.
	HTTPClient *http.Client

	// StationsURL is the legacy listing whose 403 responses trigger a retry
	// against AlternateURL.
	StationsURL string

	// AlternateURL is the single-group query used for that retry.
	AlternateURL string

	// Bundled is the static element set returned, by name match only, when
	// every network source fails. Defaults to the ISS set baked into the
	// binary.
	Bundled Elements

	// UserAgent is sent with every request.
	UserAgent string

	// Observe, if set, is called with the source that served each request:
	// "cache", "primary", "alternate", or "bundled".
	Observe func(source string)
}

// Client retrieves element sets with caching and the cascading fallback
// policy. It is safe for concurrent use; concurrent requests for the same
// (name, url) key serialize around first-populate so a key is fetched once.
type Client struct {
	httpClient *http.Client
	stations   string
	alternate  string
	bundled    Elements
	userAgent  string
	observe    func(string)

	mu    sync.Mutex
	cache map[cacheKey]Elements
}

type cacheKey struct {
	name string
	url  string
}

// NewClient builds a Client, applying defaults for unset options.
func NewClient(opts Options) *Client {
	c := &Client{
		httpClient: opts.HTTPClient,
		stations:   opts.StationsURL,
		alternate:  opts.AlternateURL,
		bundled:    opts.Bundled,
		userAgent:  opts.UserAgent,
		observe:    opts.Observe,
		cache:      make(map[cacheKey]Elements),
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: defaultTimeout}
	}
	if c.stations == "" {
		c.stations = DefaultStationsURL
	}
	if c.alternate == "" {
		c.alternate = DefaultGroupURL
	}
	if c.userAgent == "" {
		c.userAgent = defaultUserAgent
	}
	if c.bundled == (Elements{}) {
		bundled, err := Parse("ISS (ZARYA)", bundledText, "embedded")
		if err != nil {
			panic("tle: embedded element set is malformed: " + err.Error())
		}
		c.bundled = bundled
	}
	if c.observe == nil {
		c.observe = func(string) {}
	}
	return c
}

// attempt is one rung of the fallback ladder. applies gates the rung on the
// failure that ended the previous one; run produces the element set.
type attempt struct {
	source  string
	applies func(prev error) bool
	run     func(ctx context.Context) (Elements, error)
}

// Fetch returns the element set for name from url, walking the fallback
// chain on failure. Results, bundled fallback included, are cached under
// (name, url) and served from cache on repeat requests. A satellite missing
// from a successfully fetched document is an ErrNotFound and stops the
// chain; nothing recovers it.
func (c *Client) Fetch(ctx context.Context, name, url string) (Elements, error) {
	key := cacheKey{name: name, url: url}

	c.mu.Lock()
	if cached, ok := c.cache[key]; ok {
		c.mu.Unlock()
		c.observe("cache")
		return cached, nil
	}
	c.mu.Unlock()

	chain := []attempt{
		{
			source:  "primary",
			applies: func(prev error) bool { return prev == nil },
			run: func(ctx context.Context) (Elements, error) {
				return c.fetchAndParse(ctx, name, url)
			},
		},
		{
			source: "alternate",
			applies: func(prev error) bool {
				return url == c.stations && isAccessDenied(prev, c.stations)
			},
			run: func(ctx context.Context) (Elements, error) {
				return c.fetchAndParse(ctx, name, c.alternate)
			},
		},
		{
			source: "bundled",
			applies: func(prev error) bool {
				return c.bundledMatches(name) && isTransportFailure(prev)
			},
			run: func(context.Context) (Elements, error) {
				return c.bundled, nil
			},
		},
	}

	var prev error
	for _, a := range chain {
		if !a.applies(prev) {
			continue
		}
		elems, err := a.run(ctx)
		if err == nil {
			c.store(key, elems)
			c.observe(a.source)
			return elems, nil
		}
		if errors.Is(err, ErrNotFound) {
			return Elements{}, err
		}
		prev = err
	}

	return Elements{}, prev
}

func (c *Client) store(key cacheKey, elems Elements) {
	c.mu.Lock()
	c.cache[key] = elems
	c.mu.Unlock()
}

func (c *Client) bundledMatches(name string) bool {
	return strings.EqualFold(strings.TrimSpace(name), c.bundled.Name)
}

func (c *Client) fetchAndParse(ctx context.Context, name, url string) (Elements, error) {
	text, err := c.fetchText(ctx, url)
	if err != nil {
		return Elements{}, err
	}
	return Parse(name, text, url)
}

func (c *Client) fetchText(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: build request for %s: %v", ErrFetch, url, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/plain,*/*;q=0.8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: GET %s: %v", ErrFetch, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &statusError{url: url, code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read %s: %v", ErrFetch, url, err)
	}
	return string(body), nil
}

// isAccessDenied reports whether err is a 403 response from url.
func isAccessDenied(err error, url string) bool {
	var se *statusError
	return errors.As(err, &se) && se.code == http.StatusForbidden && se.url == url
}

// isTransportFailure reports whether err is a transport-level fetch failure,
// as opposed to an HTTP status response or a not-found. Only transport
// failures reach the bundled fallback; a server that answered is trusted
// over stale baked-in data.
func isTransportFailure(err error) bool {
	if err == nil || errors.Is(err, ErrNotFound) {
		return false
	}
	var se *statusError
	return !errors.As(err, &se)
}
