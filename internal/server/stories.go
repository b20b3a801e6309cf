package server

import (
	"context"
	"net/http"

	"newsdesk/internal/hackernews"
	"newsdesk/internal/models"
)

// StorySource выдаёт окно [offset, offset+limit) списка Hacker News.
type StorySource interface {
	Stories(ctx context.Context, feed hackernews.Feed, limit, offset int) ([]models.StoryItem, error)
}

type storiesHandlers struct {
	*Server
	source StorySource
}

type storiesPage struct {
	Category   string
	Limit      int
	Offset     int
	Stories    []models.StoryItem
	Start      int
	HasPrev    bool
	PrevOffset int
	NextOffset int
}

// NewStoriesServer собирает приложение новостей и вакансий Hacker News.
func NewStoriesServer(source StorySource, opts ...Option) *Server {
	s := newServer(opts...)
	h := &storiesHandlers{Server: s, source: source}

	s.mux.HandleFunc("GET /{$}", h.Index)
	return s
}

func (h *storiesHandlers) Index(w http.ResponseWriter, r *http.Request) {
	limit := intParam(r, "limit", hackernews.DefaultLimit)
	if limit < 1 {
		limit = hackernews.DefaultLimit
	}
	if limit > hackernews.MaxLimit {
		limit = hackernews.MaxLimit
	}
	offset := intParam(r, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	category := "news"
	if r.URL.Query().Get("category") == "jobs" {
		category = "jobs"
	}

	stories, err := h.source.Stories(r.Context(), hackernews.FeedFor(category), limit, offset)
	h.logFetchError(r, err)

	h.render(w, r, "stories.html", storiesPage{
		Category:   category,
		Limit:      limit,
		Offset:     offset,
		Stories:    stories,
		Start:      offset + 1,
		HasPrev:    offset > 0,
		PrevOffset: max(offset-limit, 0),
		NextOffset: offset + limit,
	})
}
