package repository

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"financial-news-classifier/internal/entity"
	"financial-news-classifier/pkg/logger"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/mauidude/go-readability"
	"github.com/mmcdole/gofeed"
)

// FeedRepository fetches news articles from an RSS feed and extracts their
// readable body text, producing rows for the input table.
type FeedRepository interface {
	FetchArticles(ctx context.Context, feedURL string, maxItems int) ([]entity.NewsArticle, error)
}

type feedRepository struct {
	parser *gofeed.Parser
	client *http.Client
	logger *logger.Logger
}

// NewFeedRepository creates a new instance of feedRepository.
func NewFeedRepository(log *logger.Logger) FeedRepository {
	return &feedRepository{
		parser: gofeed.NewParser(),
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: log,
	}
}

// FetchArticles parses the feed and extracts up to maxItems article bodies.
// Items whose pages cannot be fetched or extracted are skipped.
func (r *feedRepository) FetchArticles(ctx context.Context, feedURL string, maxItems int) ([]entity.NewsArticle, error) {
	feed, err := r.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	var articles []entity.NewsArticle
	for _, item := range feed.Items {
		if maxItems > 0 && len(articles) >= maxItems {
			break
		}

		body, err := r.extractArticleText(ctx, item.Link)
		if err != nil {
			r.logger.Warn("Failed to extract article",
				logger.StringField("link", item.Link),
				logger.ErrorField(err),
			)
			continue
		}

		date := time.Now()
		if item.PublishedParsed != nil {
			date = *item.PublishedParsed
		}

		articles = append(articles, entity.NewsArticle{
			Headline: strings.TrimSpace(item.Title),
			Date:     date.Format("2006-01-02"),
			Article:  body,
		})
	}

	r.logger.Info("Fetched articles from feed",
		logger.StringField("feed_url", feedURL),
		logger.IntField("count", len(articles)),
	)

	return articles, nil
}

func (r *feedRepository) extractArticleText(ctx context.Context, link string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("received non-OK response from %s: %d", link, resp.StatusCode)
	}

	html, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read page body: %w", err)
	}

	doc, err := readability.NewDocument(string(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse page: %w", err)
	}

	content, err := goquery.NewDocumentFromReader(strings.NewReader(doc.Content()))
	if err != nil {
		return "", fmt.Errorf("failed to strip markup: %w", err)
	}

	text := strings.Join(strings.Fields(content.Text()), " ")
	if text == "" {
		return "", fmt.Errorf("no readable content at %s", link)
	}

	return text, nil
}
