// Package fetch holds the marketplace adapters and the synthetic
// fallback generator. Adapters never fail their caller: network,
// timeout and parse problems are logged and reduce to an empty result.
package fetch

import (
	"context"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"pricesmart/internal/domain"
	applog "pricesmart/internal/log"
)

// Fetcher retrieves and normalizes quotes from one external source.
type Fetcher interface {
	Platform() string
	// Fetch returns at most five quotes. It never returns an error;
	// failures are absorbed and logged.
	Fetch(ctx context.Context, query string) []domain.Quote
}

const maxResultsPerSource = 5

var browserHeaders = map[string]string{
	"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
	"Accept-Language": "en-US,en;q=0.9",
	"Connection":      "keep-alive",
}

// fetchDocument downloads and parses one search results page. The
// caller's context carries the per-source timeout.
func fetchDocument(ctx context.Context, client *http.Client, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range browserHeaders {
		req.Header.Set(k, v)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &statusError{code: resp.StatusCode}
	}
	return goquery.NewDocumentFromReader(resp.Body)
}

type statusError struct{ code int }

func (e *statusError) Error() string { return "unexpected status " + strconv.Itoa(e.code) }

var rePriceJunk = regexp.MustCompile(`[^0-9]`)

// parsePrice normalizes a marketplace price string ("₹1,29,999",
// "1.299") to integer currency units. ok is false when no digits
// survive; the record is then skipped, not the whole page.
func parsePrice(text string) (int, bool) {
	digits := rePriceJunk.ReplaceAllString(strings.TrimSpace(text), "")
	if digits == "" {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

var reRating = regexp.MustCompile(`([0-9]+(?:\.[0-9]+)?)`)

// parseRating pulls the leading number out of strings like
// "4.3 out of 5 stars". ok is false when nothing numeric is present.
func parseRating(text string) (float64, bool) {
	m := reRating.FindString(text)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil || v < 0 || v > 5 {
		return 0, false
	}
	return v, true
}

// firstText walks an ordered selector chain and returns the first
// non-empty text match. Upstream page structure is not stable, so one
// selector failing just falls through to the next.
func firstText(s *goquery.Selection, selectors ...string) string {
	for _, sel := range selectors {
		if t := strings.TrimSpace(s.Find(sel).First().Text()); t != "" {
			return t
		}
	}
	return ""
}

func firstAttr(s *goquery.Selection, attr string, selectors ...string) string {
	for _, sel := range selectors {
		if v, ok := s.Find(sel).First().Attr(attr); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// categoryFor mirrors the coarse classification the rest of the system
// uses: anything phone/laptop/tablet/camera-ish is electronics.
func categoryFor(query string) string {
	q := strings.ToLower(query)
	for _, w := range []string{"phone", "laptop", "tablet", "camera"} {
		if strings.Contains(q, w) {
			return "electronics"
		}
	}
	return "fashion"
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func logFetchError(platform string, err error) {
	applog.BgWarn("fetch.source.fail", map[string]any{
		"platform": platform,
		"reason":   err.Error(),
	})
}
