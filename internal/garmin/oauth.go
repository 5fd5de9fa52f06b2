package garmin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/dghubble/oauth1"
)

const (
	// DefaultConsumerURL serves the consumer credentials of the Garmin
	// Connect mobile app, as published by the garth project.
	DefaultConsumerURL = "https://thegarth.s3.amazonaws.com/oauth_consumer.json"

	preauthorizedPath = "/oauth-service/oauth/preauthorized"
	oauthUserAgent    = "com.garmin.android.apps.connectmobile"

	maxFormResponse = 64 << 10
)

// Consumer is the OAuth1 consumer the Connect API expects ticket exchanges
// to be signed with.
type Consumer struct {
	Key    string `json:"consumer_key"`
	Secret string `json:"consumer_secret"`
}

// preauthToken is the OAuth1 token Garmin issues for an SSO ticket.
type preauthToken struct {
	token    string
	secret   string
	mfaToken string
}

// consumer returns the configured consumer, fetching it from consumerURL
// when none was given.
func (c *HTTPClient) consumer(ctx context.Context) (Consumer, error) {
	if c.oauthConsumer.Key != "" {
		return c.oauthConsumer, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.consumerURL, nil)
	if err != nil {
		return Consumer{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.do(c.http, req)
	if err != nil {
		return Consumer{}, err
	}
	defer resp.Body.Close()

	if err := statusError(resp); err != nil {
		return Consumer{}, err
	}

	var cons Consumer
	if err := json.NewDecoder(resp.Body).Decode(&cons); err != nil {
		return Consumer{}, fmt.Errorf("%w: consumer: %w", ErrMalformedResponse, err)
	}
	if cons.Key == "" || cons.Secret == "" {
		return Consumer{}, fmt.Errorf("%w: consumer: empty key or secret", ErrMalformedResponse)
	}
	return cons, nil
}

// signedClient returns an http.Client whose requests carry an OAuth1
// HMAC-SHA1 Authorization header for cons and tok. It shares the transport
// and timeout of the plain client.
func (c *HTTPClient) signedClient(ctx context.Context, cons Consumer, tok *oauth1.Token) *http.Client {
	ctx = context.WithValue(ctx, oauth1.HTTPClient, c.http)
	cl := oauth1.NewConfig(cons.Key, cons.Secret).Client(ctx, tok)
	cl.Timeout = c.http.Timeout
	return cl
}

// preauthorize trades an SSO ticket for an OAuth1 token. The request is
// signed with the consumer alone.
func (c *HTTPClient) preauthorize(ctx context.Context, cons Consumer, ticket, loginURL string) (preauthToken, error) {
	query := url.Values{
		"ticket":             {ticket},
		"login-url":          {loginURL},
		"accepts-mfa-tokens": {"true"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+preauthorizedPath+"?"+query.Encode(), nil)
	if err != nil {
		return preauthToken{}, err
	}
	req.Header.Set("User-Agent", oauthUserAgent)

	resp, err := c.do(c.signedClient(ctx, cons, oauth1.NewToken("", "")), req)
	if err != nil {
		return preauthToken{}, err
	}
	defer resp.Body.Close()

	if err := statusError(resp); err != nil {
		return preauthToken{}, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFormResponse))
	if err != nil {
		return preauthToken{}, fmt.Errorf("%w: %s: %w", ErrUnavailable, preauthorizedPath, err)
	}
	values, err := url.ParseQuery(strings.TrimSpace(string(body)))
	if err != nil {
		return preauthToken{}, fmt.Errorf("%w: %s: %w", ErrMalformedResponse, preauthorizedPath, err)
	}

	tok := preauthToken{
		token:    values.Get("oauth_token"),
		secret:   values.Get("oauth_token_secret"),
		mfaToken: values.Get("mfa_token"),
	}
	if tok.token == "" || tok.secret == "" {
		return preauthToken{}, fmt.Errorf("%w: %s: no oauth token", ErrMalformedResponse, preauthorizedPath)
	}
	return tok, nil
}

// exchange trades the OAuth1 token for an OAuth2 bearer token. The request
// is signed with the consumer and the OAuth1 token.
func (c *HTTPClient) exchange(ctx context.Context, cons Consumer, pre preauthToken) (tokenResponse, error) {
	form := url.Values{}
	if pre.mfaToken != "" {
		form.Set("mfa_token", pre.mfaToken)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+exchangePath, strings.NewReader(form.Encode()))
	if err != nil {
		return tokenResponse{}, err
	}
	req.Header.Set("User-Agent", oauthUserAgent)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.do(c.signedClient(ctx, cons, oauth1.NewToken(pre.token, pre.secret)), req)
	if err != nil {
		return tokenResponse{}, err
	}
	defer resp.Body.Close()

	if err := statusError(resp); err != nil {
		return tokenResponse{}, err
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return tokenResponse{}, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return tok, nil
}
