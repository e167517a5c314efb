package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const plain = "Alpha School, Town, direct via K1AAA\n"

func TestIsURL(t *testing.T) {
	assert.True(t, IsURL(DefaultURL))
	assert.True(t, IsURL("http://localhost:8080/news.txt"))
	assert.False(t, IsURL("arissnews.txt"))
	assert.False(t, IsURL("/tmp/arissnews.txt"))
	assert.False(t, IsURL("ftp://example.org/news.txt"))
}

func TestFetch_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arissnews.txt")
	require.NoError(t, os.WriteFile(path, []byte(plain), 0644))

	text, err := NewFetcher(time.Second).Fetch(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, plain, text)
}

func TestFetch_MissingFile(t *testing.T) {
	_, err := NewFetcher(time.Second).Fetch(context.Background(), filepath.Join(t.TempDir(), "missing.txt"))

	assert.ErrorIs(t, err, ErrSourceUnavailable)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFetch_PlainText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(plain))
	}))
	defer srv.Close()

	text, err := NewFetcher(time.Second).Fetch(context.Background(), srv.URL+"/arissnews.txt")

	require.NoError(t, err)
	assert.Equal(t, plain, text)
}

func TestFetch_MailmanArchivePage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<html><body><h1>[ARISS-I] News</h1><pre>" + plain + "</pre></body></html>"))
	}))
	defer srv.Close()

	text, err := NewFetcher(time.Second).Fetch(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Equal(t, plain, text)
}

func TestFetch_ArticlePage(t *testing.T) {
	page := `<html><head><title>ARISS News</title></head><body>
<nav><a href="/">Home</a> <a href="/news">News</a></nav>
<article>
<h1>Upcoming ARISS contacts</h1>
<p>Alpha School, Town, direct via K1AAA. The school has prepared questions for the crew, and the
students will talk with the astronaut during a short pass of the International Space Station.</p>
<p>Contact is go for: 25 March 2024 18:30 UTC. Amateur radio operators in range of the pass are
welcome to listen on the downlink frequency, and reports of reception are always appreciated.</p>
<p>The ARISS mentor is Jane Doe. Further details, including the list of proposed questions, will be
published in the next edition of the newsletter, together with the livestream address.</p>
</article>
<footer>Copyright ARISS</footer>
</body></html>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(page))
	}))
	defer srv.Close()

	text, err := NewFetcher(time.Second).Fetch(context.Background(), srv.URL+"/news/upcoming")

	require.NoError(t, err)
	assert.Contains(t, text, "Alpha School, Town, direct via K1AAA.")
	assert.Contains(t, text, "Contact is go for: 25 March 2024 18:30 UTC.")
	assert.NotContains(t, text, "<p>")
}

func TestFetch_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := NewFetcher(time.Second).Fetch(context.Background(), srv.URL)

	assert.ErrorIs(t, err, ErrSourceUnavailable)
	assert.Contains(t, err.Error(), "404")
}

func TestFetch_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	_, err := NewFetcher(time.Second).Fetch(context.Background(), addr)

	assert.ErrorIs(t, err, ErrSourceUnavailable)
}
