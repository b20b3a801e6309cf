package hackernews

import (
	"context"
	"fmt"
	"strings"

	"newsdesk/internal/fetcher"
	"newsdesk/internal/logger"
	"newsdesk/internal/models"
	"newsdesk/internal/worker"
)

const (
	DefaultBaseURL = "https://hacker-news.firebaseio.com/v0"
	UpstreamName   = "hackernews"

	DefaultLimit = 10
	MaxLimit     = 100
)

// Feed задаёт список идентификаторов Hacker News.
type Feed string

const (
	FeedNews Feed = "newstories"
	FeedJobs Feed = "jobstories"
)

// FeedFor сопоставляет категорию из запроса списку: для "jobs" это
// вакансии, для остальных значений новые истории.
func FeedFor(category string) Feed {
	if category == "jobs" {
		return FeedJobs
	}
	return FeedNews
}

type item struct {
	ID    int64   `json:"id"`
	Title *string `json:"title"`
	URL   *string `json:"url"`
	Time  *int64  `json:"time"`
	By    *string `json:"by"`
	Type  *string `json:"type"`
}

type Client struct {
	baseURL string
	fetcher *fetcher.Client
	pool    *worker.Pool
}

// NewClient создаёт клиента; pool ограничивает число параллельных
// запросов деталей.
func NewClient(baseURL string, f *fetcher.Client, pool *worker.Pool) *Client {
	if pool == nil {
		pool = worker.NewPool(1)
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), fetcher: f, pool: pool}
}

// Stories загружает список feed, берёт окно [offset, offset+limit) и
// запрашивает детали каждого элемента. Порядок результата совпадает с
// порядком идентификаторов; элементы, которые не удалось загрузить,
// пропускаются. Ошибка возвращается только при сбое загрузки списка.
func (c *Client) Stories(ctx context.Context, feed Feed, limit, offset int) ([]models.StoryItem, error) {
	var ids []int64
	if err := c.fetcher.GetJSON(ctx, fmt.Sprintf("%s/%s.json", c.baseURL, feed), &ids); err != nil {
		return []models.StoryItem{}, err
	}

	window := Window(ids, limit, offset)
	log := logger.Log.WithFields(logger.Fields{
		"upstream": UpstreamName,
		"feed":     string(feed),
		"limit":    limit,
		"offset":   offset,
		"total":    len(ids),
	})
	log.Debugf("Fetching %d items", len(window))

	stories := worker.Map(ctx, c.pool, window, func(ctx context.Context, id int64) (models.StoryItem, bool) {
		return c.story(ctx, log, id)
	})
	return stories, nil
}

func (c *Client) story(ctx context.Context, log *logger.Entry, id int64) (models.StoryItem, bool) {
	var it *item
	if err := c.fetcher.GetJSON(ctx, fmt.Sprintf("%s/item/%d.json", c.baseURL, id), &it); err != nil {
		log.WithField("id", id).WithField("kind", fetcher.KindOf(err).String()).Warnf("Failed to fetch item: %v", err)
		return models.StoryItem{}, false
	}
	if it == nil {
		log.WithField("id", id).Warn("Item not found")
		return models.StoryItem{}, false
	}
	return shape(id, it), true
}

// Window возвращает окно ids[offset:offset+limit], ограниченное границами
// среза. Отрицательные значения трактуются как 0.
func Window(ids []int64, limit, offset int) []int64 {
	if limit < 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= len(ids) {
		return []int64{}
	}
	end := offset + limit
	if end > len(ids) || end < offset {
		end = len(ids)
	}
	return ids[offset:end]
}

func shape(id int64, it *item) models.StoryItem {
	return models.StoryItem{
		ID:     id,
		Title:  orDefault(it.Title, "No title"),
		URL:    orDefault(it.URL, "#"),
		Time:   orDefault(it.Time, 0),
		Author: orDefault(it.By, "Unknown"),
		Type:   orDefault(it.Type, "story"),
	}
}

func orDefault[T any](v *T, def T) T {
	if v == nil {
		return def
	}
	return *v
}
