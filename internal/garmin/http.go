package garmin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/garmin2obsidian/internal/timex"
	"golang.org/x/net/publicsuffix"
)

const (
	defaultUserAgent = "GCM-iOS-5.7.2.1"

	ssoEmbedPath      = "/sso/embed"
	ssoSigninPath     = "/sso/signin"
	exchangePath      = "/oauth-service/oauth/exchange/user/2.0"
	profilePath       = "/userprofile-service/socialProfile"
	sleepPathFmt      = "/wellness-service/wellness/dailySleepData/%s"
	activitiesPathFmt = "/mobile-gateway/heartRate/forDate/%s"
)

// Options configures an HTTPClient. Zero values fall back to defaults,
// except the base URLs which are required.
type Options struct {
	SSOURL    string
	APIURL    string
	Timeout   time.Duration
	UserAgent string
	Transport http.RoundTripper
	Now       func() time.Time

	// Consumer signs the ticket exchange. When its key is empty the
	// credentials are fetched from ConsumerURL at login.
	Consumer    Consumer
	ConsumerURL string
}

// HTTPClient talks to Garmin SSO and the Connect API over HTTPS. It keeps a
// cookie jar for the SSO flow and is meant for one login per process.
type HTTPClient struct {
	ssoURL        string
	apiURL        string
	userAgent     string
	oauthConsumer Consumer
	consumerURL   string
	http          *http.Client
	now           func() time.Time
}

func NewHTTPClient(opts Options) (*HTTPClient, error) {
	if opts.SSOURL == "" || opts.APIURL == "" {
		return nil, errors.New("garmin: SSO and API base URLs are required")
	}
	if (opts.Consumer.Key == "") != (opts.Consumer.Secret == "") {
		return nil, errors.New("garmin: consumer key and secret must be set together")
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, err
	}

	c := &HTTPClient{
		ssoURL:        strings.TrimRight(opts.SSOURL, "/"),
		apiURL:        strings.TrimRight(opts.APIURL, "/"),
		userAgent:     opts.UserAgent,
		oauthConsumer: opts.Consumer,
		consumerURL:   opts.ConsumerURL,
		http:          &http.Client{Jar: jar, Timeout: opts.Timeout, Transport: opts.Transport},
		now:           opts.Now,
	}
	if c.userAgent == "" {
		c.userAgent = defaultUserAgent
	}
	if c.consumerURL == "" {
		c.consumerURL = DefaultConsumerURL
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c, nil
}

// Login runs the SSO flow and returns a session ready for data queries.
func (c *HTTPClient) Login(ctx context.Context, email string, password []byte) (*Session, error) {
	embedURL := c.ssoURL + ssoEmbedPath
	signinURL := c.ssoURL + ssoSigninPath

	embedParams := url.Values{
		"id":          {"gauth-widget"},
		"embedWidget": {"true"},
		"gauthHost":   {c.ssoURL + "/sso"},
	}
	if _, err := c.ssoPage(ctx, http.MethodGet, embedURL+"?"+embedParams.Encode(), nil, ""); err != nil {
		return nil, fmt.Errorf("sso embed: %w", err)
	}

	signinParams := url.Values{
		"id":                              {"gauth-widget"},
		"embedWidget":                     {"true"},
		"gauthHost":                       {embedURL},
		"service":                         {embedURL},
		"source":                          {embedURL},
		"redirectAfterAccountLoginUrl":    {embedURL},
		"redirectAfterAccountCreationUrl": {embedURL},
	}
	signinPageURL := signinURL + "?" + signinParams.Encode()

	page, err := c.ssoPage(ctx, http.MethodGet, signinPageURL, nil, embedURL)
	if err != nil {
		return nil, fmt.Errorf("sso sign-in page: %w", err)
	}
	if page.csrf == "" {
		return nil, fmt.Errorf("sso sign-in page: %w: no csrf token", ErrMalformedResponse)
	}

	form := url.Values{
		"username": {email},
		"password": {string(password)},
		"embed":    {"true"},
		"_csrf":    {page.csrf},
	}
	page, err = c.ssoPage(ctx, http.MethodPost, signinPageURL, form, signinPageURL)
	if err != nil {
		return nil, fmt.Errorf("sso sign-in: %w", err)
	}

	switch {
	case strings.Contains(page.title, "MFA"):
		return nil, ErrMFARequired
	case page.title != "Success":
		return nil, fmt.Errorf("sso sign-in: %w: page title %q", ErrUnauthorized, page.title)
	}

	ticket, err := page.ticket()
	if err != nil {
		return nil, fmt.Errorf("sso sign-in: %w", err)
	}

	cons, err := c.consumer(ctx)
	if err != nil {
		return nil, fmt.Errorf("oauth consumer: %w", err)
	}
	pre, err := c.preauthorize(ctx, cons, ticket, embedURL)
	if err != nil {
		return nil, fmt.Errorf("ticket preauthorization: %w", err)
	}
	tok, err := c.exchange(ctx, cons, pre)
	if err != nil {
		return nil, fmt.Errorf("token exchange: %w", err)
	}

	// bearer only authorizes the profile call and is never returned.
	bearer := &Session{accessToken: tok.AccessToken, tokenType: tok.TokenType}

	var profile profileResponse
	found, err := c.getJSON(ctx, bearer, profilePath, nil, &profile)
	if err != nil {
		return nil, fmt.Errorf("profile: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("profile: %w: not found", ErrMalformedResponse)
	}

	return newSession(tok, profile.DisplayName, c.now())
}

// DailySleep returns the sleep summary for date, or nil when Garmin has no
// sleep recorded for that day.
func (c *HTTPClient) DailySleep(ctx context.Context, s *Session, date time.Time) (*SleepDTO, error) {
	if !s.Valid(c.now()) {
		return nil, fmt.Errorf("%w: session expired", ErrUnauthorized)
	}

	path := fmt.Sprintf(sleepPathFmt, url.PathEscape(s.DisplayName()))
	query := url.Values{
		"date":                  {date.Format(timex.DateLayout)},
		"nonSleepBufferMinutes": {"60"},
	}

	var resp sleepResponse
	found, err := c.getJSON(ctx, s, path, query, &resp)
	if err != nil || !found {
		return nil, err
	}
	return resp.DailySleepDTO, nil
}

// ActivitiesForDate returns the activities recorded on date in the order
// Garmin lists them.
func (c *HTTPClient) ActivitiesForDate(ctx context.Context, s *Session, date time.Time) ([]ActivityDTO, error) {
	if !s.Valid(c.now()) {
		return nil, fmt.Errorf("%w: session expired", ErrUnauthorized)
	}

	path := fmt.Sprintf(activitiesPathFmt, date.Format(timex.DateLayout))

	var resp activitiesResponse
	found, err := c.getJSON(ctx, s, path, nil, &resp)
	if err != nil {
		return nil, err
	}
	if !found {
		return []ActivityDTO{}, nil
	}
	if resp.ActivitiesForDay == nil {
		return nil, fmt.Errorf("%w: missing ActivitiesForDay", ErrMalformedResponse)
	}
	if resp.ActivitiesForDay.Payload == nil {
		return []ActivityDTO{}, nil
	}
	return resp.ActivitiesForDay.Payload, nil
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) ssoPage(ctx context.Context, method, target string, form url.Values, referer string) (*ssoPage, error) {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if referer != "" {
		req.Header.Set("Referer", referer)
	}

	resp, err := c.do(c.http, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := statusError(resp); err != nil {
		return nil, err
	}
	return parseSSOPage(resp.Body)
}

// getJSON performs an authorized GET and decodes the body into dst. found is
// false when the API reports no content for the query.
func (c *HTTPClient) getJSON(ctx context.Context, s *Session, path string, query url.Values, dst any) (found bool, err error) {
	target := c.apiURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	s.authorize(req)

	resp, err := c.do(c.http, req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent || resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if err := statusError(resp); err != nil {
		return false, err
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %s: %w", ErrMalformedResponse, path, err)
	}
	return true, nil
}

func (c *HTTPClient) do(cl *http.Client, req *http.Request) (*http.Response, error) {
	resp, err := cl.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", ErrUnavailable, req.Method, req.URL.Path, err)
	}
	return resp, nil
}

func statusError(resp *http.Response) error {
	code := resp.StatusCode
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return fmt.Errorf("%w: %s %s: %s", ErrUnauthorized, resp.Request.Method, resp.Request.URL.Path, resp.Status)
	case code == http.StatusTooManyRequests || code >= 500:
		return fmt.Errorf("%w: %s %s: %s", ErrUnavailable, resp.Request.Method, resp.Request.URL.Path, resp.Status)
	default:
		return fmt.Errorf("unexpected status: %s %s: %s", resp.Request.Method, resp.Request.URL.Path, resp.Status)
	}
}
