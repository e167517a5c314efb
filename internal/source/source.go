// Package source reads the newsletter text from a local file or a URL.
package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
)

// DefaultURL is the public copy of the ARISS newsletter.
const DefaultURL = "https://www.amsat.org/amsat/ariss/news/arissnews.txt"

var ErrSourceUnavailable = errors.New("newsletter source unavailable")

// Fetcher returns the newsletter text for a source.
type Fetcher interface {
	Fetch(ctx context.Context, source string) (string, error)
}

// DefaultFetcher reads file paths from disk and downloads http(s) URLs.
type DefaultFetcher struct {
	client *http.Client
}

func NewFetcher(timeout time.Duration) *DefaultFetcher {
	return &DefaultFetcher{
		client: &http.Client{Timeout: timeout},
	}
}

// IsURL reports whether source should be downloaded rather than read.
func IsURL(source string) bool {
	u, err := url.Parse(source)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func (f *DefaultFetcher) Fetch(ctx context.Context, source string) (string, error) {
	if IsURL(source) {
		return f.download(ctx, source)
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	return string(data), nil
}

func (f *DefaultFetcher) download(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: creating request: %w", ErrSourceUnavailable, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: fetching URL: %w", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %s returned %s", ErrSourceUnavailable, rawURL, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %w", ErrSourceUnavailable, err)
	}

	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if mediaType != "text/html" {
		return string(body), nil
	}
	return htmlToText(body, resp.Request.URL)
}

// htmlToText handles mailing-list archive pages. Mailman keeps the message
// body in a <pre> element; other pages go through readability.
func htmlToText(body []byte, pageURL *url.URL) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: parsing HTML: %w", ErrSourceUnavailable, err)
	}

	var pre []string
	doc.Find("pre").Each(func(_ int, s *goquery.Selection) {
		pre = append(pre, s.Text())
	})
	if len(pre) > 0 {
		return strings.Join(pre, "\n"), nil
	}

	article, err := readability.FromReader(bytes.NewReader(body), pageURL)
	if err != nil {
		return "", fmt.Errorf("%w: extracting article: %w", ErrSourceUnavailable, err)
	}

	content, err := goquery.NewDocumentFromReader(strings.NewReader(article.Content))
	if err != nil {
		return "", fmt.Errorf("%w: parsing article: %w", ErrSourceUnavailable, err)
	}
	return content.Text(), nil
}
