package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<html><head><title>News</title><style>p { color: red }</style></head>
<body>
<script>var tracking = 1;</script>
<h1>Strzok fired</h1>
<p>The FBI fired
	Peter Strzok.</p>
<aside>Related: other stories</aside>
</body></html>`

func TestText(t *testing.T) {
	text, err := Text([]byte(page))
	require.NoError(t, err)

	assert.NotContains(t, text, "tracking")
	assert.NotContains(t, text, "color")
	assert.NotContains(t, text, "Related")
	assert.NotContains(t, text, "\n")
	assert.NotContains(t, text, "\t")
	assert.Contains(t, text, "Strzok fired The FBI fired Peter Strzok.")
}

func TestPageText(t *testing.T) {
	var agent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	f := New(Config{Timeout: 5 * time.Second, UserAgent: "lemmix-test"})
	text, err := f.PageText(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, "lemmix-test", agent)
	assert.Contains(t, text, "Peter Strzok.")
}

func TestPageTextStatus(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := New(DefaultConfig()).PageText(context.Background(), srv.URL)

	var ferr *FetchError
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, http.StatusNotFound, ferr.StatusCode)
	assert.Equal(t, srv.URL, ferr.URL)
}

func TestPageTextTransport(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(DefaultConfig()).PageText(context.Background(), url)

	var ferr *FetchError
	require.ErrorAs(t, err, &ferr)
	assert.Zero(t, ferr.StatusCode)
}
