package bring

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	// APIBaseURL is the REST endpoint of the shopping-list service.
	APIBaseURL = "https://api.getbring.com/rest/"
	// LocalesBaseURL is the static file host serving the per-locale
	// article dictionaries as articles.<locale>.json.
	LocalesBaseURL = "https://web.getbring.com/locale/"
)

const (
	contentTypeForm = "application/x-www-form-urlencoded"
	contentTypeJSON = "application/json"
)

// Client talks to the shopping-list HTTP API on behalf of one user session.
//
// A Client carries mutable session state (tokens, caches, per-list settings)
// and assumes one in-flight call sequence at a time; concurrent callers must
// coordinate externally or use separate clients.
type Client struct {
	mail     string
	password string

	baseURL    *url.URL
	localesURL *url.URL
	localeDir  string

	http *http.Client
	log  *logrus.Logger

	session *session

	// translations maps locale -> catalog name -> local name. catalog is
	// the precomputed inverse, local name -> catalog name. Both are
	// replaced wholesale on reload and never partially invalidated.
	translations map[string]map[string]string
	catalog      map[string]map[string]string
}

// Option customizes a Client at construction time.
type Option func(*Client)

// WithBaseURL overrides the API endpoint, e.g. to point at a test server.
func WithBaseURL(raw string) Option {
	return func(c *Client) {
		if u, err := url.Parse(raw); err == nil {
			c.baseURL = normalizeBaseURL(u)
		}
	}
}

// WithLocalesURL overrides the static host serving article dictionaries.
func WithLocalesURL(raw string) Option {
	return func(c *Client) {
		if u, err := url.Parse(raw); err == nil {
			c.localesURL = normalizeBaseURL(u)
		}
	}
}

// WithLocaleDir points the dictionary loader at a directory of
// articles.<locale>.json resource files tried before the remote download.
func WithLocaleDir(dir string) Option {
	return func(c *Client) { c.localeDir = dir }
}

// WithLogger replaces the default logger.
func WithLogger(log *logrus.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// NewClient builds a Client for the given credentials. The http.Client is
// required; the library sets no timeout of its own, so any deadline the
// caller wants enforced belongs on httpClient or on the per-call context.
func NewClient(httpClient *http.Client, mail, password string, opts ...Option) (*Client, error) {
	if httpClient == nil {
		return nil, errors.New("http client is nil")
	}
	base, err := url.Parse(APIBaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	locales, err := url.Parse(LocalesBaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse locales base url: %w", err)
	}
	c := &Client{
		mail:         mail,
		password:     password,
		baseURL:      base,
		localesURL:   locales,
		http:         httpClient,
		log:          logrus.StandardLogger(),
		session:      newSession(),
		translations: map[string]map[string]string{},
		catalog:      map[string]map[string]string{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// UUID returns the authenticated user's UUID, empty before login.
func (c *Client) UUID() string { return c.session.uuid }

// PublicUUID returns the authenticated user's public UUID, empty before login.
func (c *Client) PublicUUID() string { return c.session.publicUUID }

// UserLocale returns the catalog locale resolved from the account settings.
func (c *Client) UserLocale() string { return c.session.userLocale }

// Headers returns a copy of the current session headers, suitable for
// persisting with HeadersSerialize.
func (c *Client) Headers() map[string]string {
	headers := make(map[string]string, len(c.session.headers))
	for k, v := range c.session.headers {
		headers[k] = v
	}
	return headers
}

// RestoreHeaders resumes a previous login session from persisted headers.
// The restored access token has no known expiry, so the first authenticated
// call either succeeds with the old token or fails with ErrAuth, in which
// case a fresh Login is required.
func (c *Client) RestoreHeaders(headers map[string]string) {
	for k, v := range headers {
		c.session.headers[k] = v
	}
	c.session.uuid = c.session.headers[headerUserUUID]
	c.session.publicUUID = c.session.headers[headerPublicUserUUID]
}

// do issues one API request with the session headers and returns the response
// body. It proactively refreshes an expired access token, attaches a
// conditional ETag header to first-attempt GETs, and retries at most once:
// either after force-expiring the token on a 401, or after dropping a stale
// ETag mapping on a 304 cache miss. The bounded loop replaces recursive
// retry flags so no call can loop.
func (c *Client) do(ctx context.Context, method string, rel *url.URL, payload []byte, contentType string) (string, error) {
	reqURL := c.baseURL.ResolveReference(rel)

	for attempt := 0; attempt <= 1; attempt++ {
		retry := attempt > 0

		if c.session.tokenExpired() && c.session.refreshToken != "" {
			if _, err := c.RetrieveNewAccessToken(ctx, ""); err != nil {
				return "", err
			}
		}

		var body io.Reader
		if payload != nil {
			body = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), body)
		if err != nil {
			return "", fmt.Errorf("create request: %w", err)
		}
		for k, v := range c.session.headers {
			req.Header.Set(k, v)
		}
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}

		etag := ""
		if method == http.MethodGet && !retry {
			if cached, ok := c.session.etags[reqURL.String()]; ok {
				etag = cached
				req.Header.Set("If-None-Match", cached)
			}
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return "", transportError(err)
		}
		text, err := readBody(resp)
		if err != nil {
			return "", transportError(err)
		}
		c.log.Debugf("response from %s [%d]", reqURL, resp.StatusCode)

		switch {
		case resp.StatusCode == http.StatusUnauthorized:
			var errResp errorResponse
			if jsonErr := json.Unmarshal([]byte(text), &errResp); jsonErr != nil {
				c.log.Debugf("cannot parse error response: %v", jsonErr)
			} else {
				c.log.Debugf("authentication failed: %s", errResp.Message)
			}
			if !retry {
				c.log.Debug("access token invalidated, retrying request")
				c.session.expireToken()
				continue
			}
			return "", fmt.Errorf("request failed due to authorization failure, the authorization token is invalid or expired: %w", ErrAuth)

		case resp.StatusCode == http.StatusNotModified && etag != "":
			if cached, ok := c.session.cache[etag]; ok {
				c.log.Debugf("etag %s returned status 304, serving %s from cache", etag, reqURL)
				return cached, nil
			}
			// Stale validator without a cached body: forget it and
			// re-request unconditionally.
			delete(c.session.etags, reqURL.String())
			continue

		case resp.StatusCode >= http.StatusBadRequest:
			return "", fmt.Errorf("request to %s returned status %d: %w", rel, resp.StatusCode, ErrRequest)
		}

		if tag := resp.Header.Get("ETag"); tag != "" {
			c.session.etags[reqURL.String()] = tag
			c.session.cache[tag] = text
		}
		return text, nil
	}

	return "", fmt.Errorf("request to %s exhausted its retry: %w", rel, ErrRequest)
}

func readBody(resp *http.Response) (string, error) {
	defer func() { _ = resp.Body.Close() }()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// transportError folds transport-level failures into ErrRequest, keeping
// timeouts distinguishable by message as a separate failure flavor.
func transportError(err error) error {
	if isTimeout(err) {
		return fmt.Errorf("request failed due to connection timeout: %w", ErrRequest)
	}
	return fmt.Errorf("request failed due to request exception (%v): %w", err, ErrRequest)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func normalizeBaseURL(u *url.URL) *url.URL {
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u
}
