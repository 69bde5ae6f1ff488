// Package extract fetches web pages and reduces them to readable text.
package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/go-shiori/go-readability"
	"github.com/hashicorp/go-hclog"
)

// MaxBodySize caps downloaded HTML.
const MaxBodySize = 10 * 1024 * 1024

var (
	ErrInvalidURL   = errors.New("url must be an absolute http or https url")
	ErrBodyTooLarge = errors.New("response body exceeds size limit")
	ErrNoContent    = errors.New("page has no readable text")
)

// Page is the readable part of a fetched web page.
type Page struct {
	URL      string `json:"url"`
	Title    string `json:"title"`
	Byline   string `json:"byline,omitempty"`
	SiteName string `json:"siteName,omitempty"`
	Text     string `json:"-"`
	// Truncated is set when Text was cut to fit the analysis limit.
	Truncated bool `json:"truncated,omitempty"`
}

// Extractor downloads pages and runs readability over them.
type Extractor struct {
	client  *resty.Client
	maxBody int64
	logger  hclog.Logger
}

// NewExtractor fetches through client. Pass a client built with
// httpclient.Options.PublicOnly when URLs come from untrusted callers.
func NewExtractor(client *resty.Client, logger hclog.Logger) *Extractor {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Extractor{client: client, maxBody: MaxBodySize, logger: logger}
}

// browserHeaders keep sites behind bot filters from answering 403.
var browserHeaders = map[string]string{
	"User-Agent":                "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
	"Accept-Language":           "en-US,en;q=0.9",
	"Sec-Fetch-Dest":            "document",
	"Sec-Fetch-Mode":            "navigate",
	"Upgrade-Insecure-Requests": "1",
}

// Fetch downloads rawURL and extracts its main article text.
func (e *Extractor) Fetch(ctx context.Context, rawURL string) (*Page, error) {
	parsedURL, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (parsedURL.Scheme != "http" && parsedURL.Scheme != "https") || parsedURL.Host == "" {
		return nil, ErrInvalidURL
	}

	resp, err := e.client.R().
		SetContext(ctx).
		SetHeaders(browserHeaders).
		SetDoNotParseResponse(true).
		Get(parsedURL.String())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", parsedURL.Host, err)
	}
	body := resp.RawBody()
	defer body.Close()

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("fetching %s returned status %d", parsedURL.Host, resp.StatusCode())
	}
	if resp.RawResponse.ContentLength > e.maxBody {
		return nil, ErrBodyTooLarge
	}

	// one extra byte tells a body at the limit from one past it
	bodyBytes, err := io.ReadAll(io.LimitReader(body, e.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(bodyBytes)) > e.maxBody {
		return nil, ErrBodyTooLarge
	}

	article, err := readability.FromReader(bytes.NewReader(bodyBytes), parsedURL)
	if err != nil {
		return nil, fmt.Errorf("failed to extract article: %w", err)
	}

	text := strings.TrimSpace(article.TextContent)
	if text == "" {
		return nil, ErrNoContent
	}

	e.logger.Debug("extracted page", "host", parsedURL.Host, "title", article.Title, "chars", len(text))
	return &Page{
		URL:      parsedURL.String(),
		Title:    article.Title,
		Byline:   article.Byline,
		SiteName: article.SiteName,
		Text:     text,
	}, nil
}
