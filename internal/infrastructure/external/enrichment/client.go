package enrichment

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/johnquangdev/briefing-assistant/pkg/config"
)

const (
	homepageByteLimit   = 100 * 1024
	homepageSnippetSize = 500
)

var (
	scriptStyleRe = regexp.MustCompile(`(?is)<(script|style)[^>]*>.*?</(script|style)>`)
	tagRe         = regexp.MustCompile(`<[^>]+>`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
)

// Client performs best-effort public lookups for company enrichment. Every
// failure degrades to an empty result, never an error: the pipeline must not
// retry a job because a marketing site was down.
type Client struct {
	logoBaseURL    string
	logoClient     *http.Client
	homepageClient *http.Client
	logger         *zap.Logger
}

// NewClient creates an enrichment lookup client
func NewClient(cfg *config.EnrichmentConfig, logger *zap.Logger) *Client {
	logoTimeout := 5 * time.Second
	homepageTimeout := 10 * time.Second
	logoBase := "https://logo.clearbit.com"
	if cfg != nil {
		if cfg.LogoTimeout > 0 {
			logoTimeout = cfg.LogoTimeout
		}
		if cfg.HomepageTimeout > 0 {
			homepageTimeout = cfg.HomepageTimeout
		}
		if cfg.LogoBaseURL != "" {
			logoBase = strings.TrimRight(cfg.LogoBaseURL, "/")
		}
	}

	return &Client{
		logoBaseURL:    logoBase,
		logoClient:     &http.Client{Timeout: logoTimeout},
		homepageClient: &http.Client{Timeout: homepageTimeout},
		logger:         logger,
	}
}

// LookupLogoURL probes the logo provider with a HEAD request and returns the
// logo URL when the provider has one for the domain, otherwise ""
func (c *Client) LookupLogoURL(ctx context.Context, domain string) string {
	logoURL := fmt.Sprintf("%s/%s", c.logoBaseURL, domain)

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, logoURL, nil)
	if err != nil {
		return ""
	}

	resp, err := c.logoClient.Do(req)
	if err != nil {
		c.logger.Debug("Logo probe failed", zap.String("domain", domain), zap.Error(err))
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ""
	}
	return logoURL
}

// FetchHomepageSnippet fetches https://<domain>, strips the markup and
// returns the first 500 characters of visible text. Returns "" on any
// failure.
func (c *Client) FetchHomepageSnippet(ctx context.Context, domain string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://"+domain, nil)
	if err != nil {
		return ""
	}
	req.Header.Set("User-Agent", "briefing-assistant/1.0")

	resp, err := c.homepageClient.Do(req)
	if err != nil {
		c.logger.Debug("Homepage fetch failed", zap.String("domain", domain), zap.Error(err))
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ""
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, homepageByteLimit))
	if err != nil {
		c.logger.Debug("Homepage read failed", zap.String("domain", domain), zap.Error(err))
		return ""
	}

	return ExtractText(string(body))
}

// ExtractText strips script/style blocks and tags from HTML, collapses
// whitespace and truncates to the snippet size
func ExtractText(html string) string {
	text := scriptStyleRe.ReplaceAllString(html, " ")
	text = tagRe.ReplaceAllString(text, " ")
	text = whitespaceRe.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)

	if len(text) > homepageSnippetSize {
		// back off to a rune boundary so the cut never leaves invalid UTF-8
		cut := homepageSnippetSize
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}
	return text
}
