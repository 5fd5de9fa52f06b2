package garmin

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSSOPage(t *testing.T) {
	page, err := parseSSOPage(strings.NewReader(`<!DOCTYPE html><html><head><title> Success </title></head>
<body><input type="hidden" name="_csrf" value="tok-1"><input name="_csrf" value="tok-2">
<script>var response_url = "https:\/\/sso.garmin.com\/sso\/embed?ticket=ST-99-x-cas";</script></body></html>`))
	require.NoError(t, err)

	assert.Equal(t, "Success", page.title)
	assert.Equal(t, "tok-1", page.csrf, "first csrf input wins")

	ticket, err := page.ticket()
	require.NoError(t, err)
	assert.Equal(t, "ST-99-x-cas", ticket)
}

func TestParseSSOPage_NoTicket(t *testing.T) {
	page, err := parseSSOPage(strings.NewReader(`<html><head><title>Success</title></head></html>`))
	require.NoError(t, err)

	_, err = page.ticket()
	require.ErrorIs(t, err, ErrMalformedResponse)
	assert.Empty(t, page.csrf)
}
