package server

import (
	"context"
	"net/http"

	"newsdesk/internal/models"
	"newsdesk/internal/newsapi"
)

type HeadlineSource interface {
	TopHeadlines(ctx context.Context, page int, topic string) ([]models.NewsArticle, error)
}

type headlinesHandlers struct {
	*Server
	source HeadlineSource
}

type headlinesPage struct {
	Page     int
	Topic    string
	Topics   []string
	Articles []models.NewsArticle
	HasPrev  bool
	PrevPage int
	NextPage int
}

func NewHeadlinesServer(source HeadlineSource, opts ...Option) *Server {
	s := newServer(opts...)
	h := &headlinesHandlers{Server: s, source: source}

	s.mux.HandleFunc("GET /{$}", h.Index)
	return s
}

func (h *headlinesHandlers) Index(w http.ResponseWriter, r *http.Request) {
	page := intParam(r, "page", 1)
	if page < 1 {
		page = 1
	}
	topic := r.URL.Query().Get("topic")

	articles, err := h.source.TopHeadlines(r.Context(), page, topic)
	h.logFetchError(r, err)

	h.render(w, r, "headlines.html", headlinesPage{
		Page:     page,
		Topic:    topic,
		Topics:   newsapi.Topics,
		Articles: articles,
		HasPrev:  page > 1,
		PrevPage: page - 1,
		NextPage: page + 1,
	})
}
