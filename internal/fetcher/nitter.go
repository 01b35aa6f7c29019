// Package fetcher retrieves recent tweets for a monitored account by
// scraping a Nitter instance's search timeline.
package fetcher

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/rizkyfauzi/alpha-airdrop-bot/internal/models"
	"github.com/rizkyfauzi/alpha-airdrop-bot/internal/util"
)

// nitterDateLayout matches the title attribute on timeline date links,
// e.g. "May 31, 2025 · 11:30 AM UTC".
const nitterDateLayout = "Jan 2, 2006 · 3:04 PM MST"

const detailConcurrencyLimit = 5

var statusIDRegex = regexp.MustCompile(`/status/(\d+)`)

type NitterClient struct {
	httpClient  *http.Client
	baseURL     string
	extraSearch string
	limiter     *rate.Limiter
	maxRetries  int
}

// NewNitter builds a client against the given Nitter instance. extraSearch
// is appended to the from: query to pre-filter the timeline server-side.
func NewNitter(baseURL, extraSearch string) (*NitterClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid nitter base URL %q: %w", baseURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("invalid nitter base URL scheme %q: only http and https allowed", parsed.Scheme)
	}
	return &NitterClient{
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		baseURL:     strings.TrimRight(baseURL, "/"),
		extraSearch: extraSearch,
		// Public instances throttle aggressively; stay well under.
		limiter:    rate.NewLimiter(rate.Every(2*time.Second), 1),
		maxRetries: 3,
	}, nil
}

// FetchRecent returns up to count recent tweets from the account, newest
// first, with truncated bodies expanded from their status pages.
func (c *NitterClient) FetchRecent(ctx context.Context, handle string, count int) ([]models.Tweet, error) {
	query := fmt.Sprintf("(from:%s) %s", handle, c.extraSearch)
	searchURL := fmt.Sprintf("%s/search?f=tweets&q=%s", c.baseURL, url.QueryEscape(strings.TrimSpace(query)))

	var tweets []models.Tweet
	err := util.RetryWithBackoff(ctx, c.maxRetries, func(attempt int) error {
		if attempt > 0 {
			slog.Warn("Retrying timeline fetch", "attempt", attempt, "handle", handle)
		}
		doc, err := c.fetchDocument(ctx, searchURL)
		if err != nil {
			return err
		}
		tweets, err = c.parseTimeline(doc, count)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch timeline for @%s: %w", handle, err)
	}

	c.expandTruncated(ctx, tweets)
	return tweets, nil
}

func (c *NitterClient) parseTimeline(doc *goquery.Document, count int) ([]models.Tweet, error) {
	items := doc.Find(".timeline-item")
	if items.Length() == 0 && doc.Find(".timeline-none").Length() == 0 {
		return nil, fmt.Errorf("no timeline items found: potential block or markup change")
	}

	var tweets []models.Tweet
	items.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if len(tweets) >= count {
			return false
		}
		if s.HasClass("show-more") || s.HasClass("unavailable") {
			return true
		}

		tweet, ok := c.parseTimelineItem(s)
		if !ok {
			return true
		}
		tweets = append(tweets, tweet)
		return true
	})
	return tweets, nil
}

func (c *NitterClient) parseTimelineItem(s *goquery.Selection) (models.Tweet, bool) {
	var tweet models.Tweet

	href, exists := s.Find("a.tweet-link").Attr("href")
	if !exists {
		return tweet, false
	}
	idMatch := statusIDRegex.FindStringSubmatch(href)
	if idMatch == nil {
		return tweet, false
	}
	tweet.ID = idMatch[1]

	tweet.Text = strings.TrimSpace(s.Find(".tweet-content").First().Text())
	if tweet.Text == "" {
		return tweet, false
	}

	tweet.ScreenName = strings.TrimPrefix(strings.TrimSpace(s.Find(".username").First().Text()), "@")
	tweet.URL = fmt.Sprintf("https://x.com/%s/status/%s", tweet.ScreenName, tweet.ID)

	if title, ok := s.Find(".tweet-date a").Attr("title"); ok {
		if parsed, err := time.Parse(nitterDateLayout, title); err == nil {
			tweet.CreatedAt = parsed
		} else {
			slog.Warn("Failed to parse tweet date", "id", tweet.ID, "title", title, "error", err)
		}
	}

	s.Find(".tweet-stats .icon-container").Each(func(_ int, stat *goquery.Selection) {
		value := util.SafeAtoi(util.CleanNumericString(stat.Text()))
		switch {
		case stat.Find(".icon-retweet").Length() > 0:
			tweet.RetweetCount = value
		case stat.Find(".icon-heart").Length() > 0:
			tweet.FavoriteCount = value
		}
	})

	return tweet, true
}

// expandTruncated replaces elided timeline bodies with the full text from
// each tweet's status page. Fetches run in parallel with a concurrency cap;
// a failed detail fetch keeps the truncated body rather than failing the
// batch.
func (c *NitterClient) expandTruncated(ctx context.Context, tweets []models.Tweet) {
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(detailConcurrencyLimit)

	for i := range tweets {
		if !strings.HasSuffix(tweets[i].Text, "…") {
			continue
		}
		i := i
		group.Go(func() error {
			fullText, err := c.fetchFullText(groupCtx, tweets[i].ScreenName, tweets[i].ID)
			if err != nil {
				slog.Warn("Failed to expand truncated tweet", "id", tweets[i].ID, "error", err)
				return nil
			}
			if len(fullText) > len(tweets[i].Text) {
				tweets[i].Text = fullText
			}
			return nil
		})
	}
	_ = group.Wait()
}

func (c *NitterClient) fetchFullText(ctx context.Context, screenName, id string) (string, error) {
	statusURL := fmt.Sprintf("%s/%s/status/%s", c.baseURL, url.PathEscape(screenName), id)
	doc, err := c.fetchDocument(ctx, statusURL)
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(doc.Find(".main-tweet .tweet-content").First().Text())
	if text == "" {
		return "", fmt.Errorf("no tweet content on status page %s", statusURL)
	}
	return text, nil
}

func (c *NitterClient) fetchDocument(ctx context.Context, urlStr string) (*goquery.Document, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "GET", urlStr, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for URL %s: %w", urlStr, err)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL %s: %w", urlStr, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch URL %s: status code %d", urlStr, res.StatusCode)
	}

	return goquery.NewDocumentFromReader(res.Body)
}
