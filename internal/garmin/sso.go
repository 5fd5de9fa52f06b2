package garmin

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var ticketPattern = regexp.MustCompile(`embed\?ticket=([^"&\\]+)`)

// ssoPage holds what the login flow needs from an SSO HTML page.
type ssoPage struct {
	title string
	csrf  string
	body  string
}

func parseSSOPage(r io.Reader) (*ssoPage, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	doc, err := html.Parse(strings.NewReader(string(raw)))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	page := &ssoPage{body: string(raw)}
	walk(doc, func(n *html.Node) {
		if n.Type != html.ElementNode {
			return
		}
		switch n.Data {
		case "title":
			if page.title == "" && n.FirstChild != nil {
				page.title = strings.TrimSpace(n.FirstChild.Data)
			}
		case "input":
			if attr(n, "name") == "_csrf" && page.csrf == "" {
				page.csrf = attr(n, "value")
			}
		}
	})
	return page, nil
}

// ticket extracts the service ticket from the sign-in success page.
func (p *ssoPage) ticket() (string, error) {
	m := ticketPattern.FindStringSubmatch(p.body)
	if m == nil {
		return "", fmt.Errorf("%w: no service ticket on sign-in page", ErrMalformedResponse)
	}
	return m[1], nil
}

func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
