package newsapi

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"newsdesk/internal/fetcher"
	"newsdesk/internal/logger"
	"newsdesk/internal/models"
)

const (
	DefaultBaseURL = "https://newsapi.org/v2"
	DefaultCountry = "us"
	UpstreamName   = "newsapi"
	PageSize       = 4
)

// Topics - категории, которые принимает /top-headlines.
var Topics = []string{"business", "entertainment", "general", "health", "science", "sports", "technology"}

type apiResponse struct {
	Status   string       `json:"status"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Articles []apiArticle `json:"articles"`
}

// Поля со значением null декодируются в пустую строку.
type apiArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	PublishedAt string `json:"publishedAt"`
}

// Client обращается к /top-headlines. Ключ и страна передаются явно при
// создании и не читаются из окружения.
type Client struct {
	baseURL string
	apiKey  string
	country string
	fetcher *fetcher.Client
}

func NewClient(baseURL, apiKey, country string, f *fetcher.Client) *Client {
	if country == "" {
		country = DefaultCountry
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		country: country,
		fetcher: f,
	}
}

// TopHeadlines возвращает страницу page (не больше PageSize статей) по
// теме topic; пустая тема означает все категории.
func (c *Client) TopHeadlines(ctx context.Context, page int, topic string) ([]models.NewsArticle, error) {
	if page < 1 {
		page = 1
	}

	q := url.Values{}
	q.Set("apiKey", c.apiKey)
	q.Set("country", c.country)
	q.Set("pageSize", strconv.Itoa(PageSize))
	q.Set("page", strconv.Itoa(page))
	if topic != "" {
		q.Set("category", topic)
	}

	log := logger.Log.WithFields(logger.Fields{
		"upstream": UpstreamName,
		"page":     page,
		"topic":    topic,
	})

	var resp apiResponse
	if err := c.fetcher.GetJSON(ctx, c.baseURL+"/top-headlines?"+q.Encode(), &resp); err != nil {
		var fe *fetcher.Error
		if errors.As(err, &fe) && fe.Kind == fetcher.KindStatus && resp.Message != "" {
			log.Errorf("API returned an error: %s", resp.Message)
		}
		return []models.NewsArticle{}, err
	}

	if resp.Status != "ok" {
		reason := resp.Message
		if reason == "" {
			reason = "Unknown error"
		}
		if resp.Code != "" {
			reason = fmt.Sprintf("%s: %s", resp.Code, reason)
		}
		return []models.NewsArticle{}, fetcher.Upstream(UpstreamName, reason)
	}

	articles := shape(resp.Articles)
	log.Debugf("Kept %d of %d articles", len(articles), len(resp.Articles))
	return articles, nil
}

func shape(in []apiArticle) []models.NewsArticle {
	articles := make([]models.NewsArticle, 0, len(in))
	for _, a := range in {
		if a.URLToImage == "" || a.Description == "" {
			continue
		}
		articles = append(articles, models.NewsArticle{
			Title:       orDefault(a.Title, "No Title"),
			ImageURL:    a.URLToImage,
			Description: a.Description,
			URL:         orDefault(a.URL, "#"),
			PublishedAt: orDefault(a.PublishedAt, "No date available"),
		})
	}
	return articles
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
