package garmin

import (
	"context"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// verifyOAuth1 checks the HMAC-SHA1 signature of r as a Garmin server
// would and returns the oauth_* header parameters.
func verifyOAuth1(t *testing.T, r *http.Request, consumerSecret, tokenSecret string) (map[string]string, bool) {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "OAuth ") {
		return nil, false
	}

	oauth := map[string]string{}
	for _, part := range strings.Split(strings.TrimPrefix(auth, "OAuth "), ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			return nil, false
		}
		uv, err := url.QueryUnescape(strings.Trim(v, `"`))
		if err != nil {
			return nil, false
		}
		oauth[k] = uv
	}
	if oauth["oauth_consumer_key"] != testConsumerKey || oauth["oauth_signature_method"] != "HMAC-SHA1" {
		return oauth, false
	}
	if !assert.NoError(t, r.ParseForm()) {
		return oauth, false
	}

	type pair struct{ k, v string }
	var pairs []pair
	for k, v := range oauth {
		if k != "oauth_signature" {
			pairs = append(pairs, pair{percentEncode(k), percentEncode(v)})
		}
	}
	for k, vs := range r.Form {
		for _, v := range vs {
			pairs = append(pairs, pair{percentEncode(k), percentEncode(v)})
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].k != pairs[j].k {
			return pairs[i].k < pairs[j].k
		}
		return pairs[i].v < pairs[j].v
	})
	encoded := make([]string, len(pairs))
	for i, p := range pairs {
		encoded[i] = p.k + "=" + p.v
	}

	base := r.Method + "&" +
		percentEncode("http://"+strings.ToLower(r.Host)+r.URL.EscapedPath()) + "&" +
		percentEncode(strings.Join(encoded, "&"))

	mac := hmac.New(sha1.New, []byte(percentEncode(consumerSecret)+"&"+percentEncode(tokenSecret)))
	mac.Write([]byte(base))
	want := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	return oauth, hmac.Equal([]byte(want), []byte(oauth["oauth_signature"]))
}

func percentEncode(s string) string {
	var b strings.Builder
	for _, c := range []byte(s) {
		switch {
		case 'A' <= c && c <= 'Z', 'a' <= c && c <= 'z', '0' <= c && c <= '9',
			c == '-', c == '.', c == '_', c == '~':
			b.WriteByte(c)
		default:
			fmt.Fprintf(&b, "%%%02X", c)
		}
	}
	return b.String()
}

func TestNewHTTPClient_ConsumerNeedsBothParts(t *testing.T) {
	_, err := NewHTTPClient(Options{
		SSOURL:   "https://sso.garmin.com",
		APIURL:   "https://connectapi.garmin.com",
		Consumer: Consumer{Key: "only-key"},
	})
	require.Error(t, err)
}

func TestLogin_UnsignedExchangeIsRejected(t *testing.T) {
	f := newFakeGarmin(t)

	resp, err := http.Post(f.srv.URL+exchangePath, "application/x-www-form-urlencoded",
		strings.NewReader(url.Values{"ticket": {testTicket}}.Encode()))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, err = http.Get(f.srv.URL + preauthorizedPath + "?ticket=" + testTicket)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogin_WrongConsumerSecret(t *testing.T) {
	f := newFakeGarmin(t)
	c, err := NewHTTPClient(Options{
		SSOURL:   f.srv.URL,
		APIURL:   f.srv.URL,
		Now:      func() time.Time { return testNow },
		Consumer: Consumer{Key: testConsumerKey, Secret: "not-the-secret"},
	})
	require.NoError(t, err)

	s, err := c.Login(context.Background(), testEmail, []byte(testPassword))
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Nil(t, s)
}

func TestLogin_FetchesConsumerWhenNotConfigured(t *testing.T) {
	f := newFakeGarmin(t)
	c, err := NewHTTPClient(Options{
		SSOURL:      f.srv.URL,
		APIURL:      f.srv.URL,
		Now:         func() time.Time { return testNow },
		ConsumerURL: f.srv.URL + "/oauth_consumer.json",
	})
	require.NoError(t, err)

	s, err := c.Login(context.Background(), testEmail, []byte(testPassword))
	require.NoError(t, err)
	assert.Equal(t, testDisplayName, s.DisplayName())
	assert.Equal(t, 1, f.consumerFetches)
}

func TestLogin_ForwardsMFAToken(t *testing.T) {
	f := newFakeGarmin(t)
	f.mfaToken = "mfa-abc"

	f.login(t)

	assert.Equal(t, "mfa-abc", f.exchangeMFA)
}

func TestLogin_PreauthorizationWithoutToken(t *testing.T) {
	f := newFakeGarmin(t)
	f.preauthBody = "oauth_token=&oauth_token_secret="

	s, err := f.client(t).Login(context.Background(), testEmail, []byte(testPassword))
	require.ErrorIs(t, err, ErrMalformedResponse)
	assert.Nil(t, s)
}
