package server

import (
	"context"
	"net/http"

	"newsdesk/internal/models"
	"newsdesk/internal/trivia"
)

// QuestionSource выдаёт пачку вопросов выбранной категории.
type QuestionSource interface {
	Questions(ctx context.Context, categoryID int) ([]models.QuizQuestion, error)
}

type quizHandlers struct {
	*Server
	source QuestionSource
}

// NewQuizServer собирает приложение викторины: выбор категории,
// страница вопросов и подсчёт результата.
func NewQuizServer(source QuestionSource, opts ...Option) *Server {
	s := newServer(opts...)
	h := &quizHandlers{Server: s, source: source}

	s.mux.HandleFunc("GET /{$}", h.Index)
	s.mux.HandleFunc("GET /quiz", h.Quiz)
	s.mux.HandleFunc("POST /result", h.Result)
	return s
}

func (h *quizHandlers) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "quiz_index.html", struct {
		Categories []models.Category
		Default    int
	}{
		Categories: trivia.Categories(),
		Default:    trivia.DefaultCategory,
	})
}

func (h *quizHandlers) Quiz(w http.ResponseWriter, r *http.Request) {
	category := intParam(r, "category", trivia.DefaultCategory)

	questions, err := h.source.Questions(r.Context(), category)
	h.logFetchError(r, err)

	h.render(w, r, "quiz.html", struct {
		Category  int
		Questions []models.QuizQuestion
	}{
		Category:  category,
		Questions: questions,
	})
}

func (h *quizHandlers) Result(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	score := trivia.Score(r.PostForm)
	h.log(r).WithField("score", score.Score).WithField("total", score.Total).Debug("Quiz scored")
	h.render(w, r, "result.html", score)
}
