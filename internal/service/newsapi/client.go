package newsapi

import (
	"context"
	"net/url"
	"sort"
	"strconv"
	"time"

	"StockScout/internal/domain/models"
	drepo "StockScout/internal/domain/repository"
	xhttp "StockScout/pkg/http"
)

// Client implements NewsSource backed by a NewsAPI-shaped endpoint.
type Client struct {
	baseURL string
	apiKey  string
	http    *xhttp.Client
}

// New creates a new news client. baseURL is the full search endpoint
// (e.g. https://newsapi.org/v2/everything).
func New(baseURL, apiKey string, timeout time.Duration) drepo.NewsSource {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

type article struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
	Source      struct {
		Name string `json:"name"`
	} `json:"source"`
}

type everythingResponse struct {
	Articles []article `json:"articles"`
}

// RecentArticles returns up to limit articles for symbol, most recent first.
// Zero matches is a legitimate empty result.
func (c *Client) RecentArticles(ctx context.Context, symbol string, limit int) ([]models.NewsArticle, error) {
	q := url.Values{
		"q":        {symbol},
		"pageSize": {strconv.Itoa(limit)},
		"sortBy":   {"publishedAt"},
		"apiKey":   {c.apiKey},
	}

	var resp everythingResponse
	if err := c.http.GetJSON(ctx, c.baseURL, q, &resp); err != nil {
		return nil, &drepo.TransportError{Provider: "newsapi", Err: err}
	}

	articles := make([]models.NewsArticle, 0, len(resp.Articles))
	for _, a := range resp.Articles {
		// Keep articles with unparseable timestamps; they just sort last.
		publishedAt, _ := time.Parse(time.RFC3339, a.PublishedAt)
		articles = append(articles, models.NewsArticle{
			Title:       a.Title,
			Description: a.Description,
			Source:      a.Source.Name,
			URL:         a.URL,
			PublishedAt: publishedAt,
		})
	}

	// Provider already sorts by publishedAt, but the ordering is part of our
	// contract, so enforce it.
	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].PublishedAt.After(articles[j].PublishedAt)
	})

	if len(articles) > limit {
		articles = articles[:limit]
	}
	return articles, nil
}
