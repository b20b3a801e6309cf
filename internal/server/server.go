package server

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"

	"newsdesk/internal/fetcher"
	"newsdesk/internal/logger"
	"newsdesk/internal/metrics"
	"newsdesk/internal/middleware"
)

//go:embed web
var webFS embed.FS

var pages = template.Must(template.ParseFS(webFS, "web/templates/*.html"))

// Server хранит маршруты одного приложения и его зависимости.
type Server struct {
	mux     *http.ServeMux
	metrics *metrics.Metrics
}

type Option func(*Server)

// WithMetrics включает учёт запросов и публикует метрики по пути path.
func WithMetrics(m *metrics.Metrics, path string) Option {
	return func(s *Server) {
		s.metrics = m
		if m != nil && path != "" {
			s.mux.Handle("GET "+path, m.Handler())
		}
	}
}

func newServer(opts ...Option) *Server {
	s := &Server{mux: http.NewServeMux()}

	static, err := fs.Sub(webFS, "web/static")
	if err != nil {
		panic(err)
	}
	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(static)))
	s.mux.HandleFunc("GET /health", s.HealthCheck)

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler возвращает маршрутизатор, обёрнутый в request-id и логирование.
func (s *Server) Handler() http.Handler {
	return middleware.Chain(s.mux, s.metrics)
}

// HealthCheck отвечает 200 OK, пока процесс обслуживает запросы.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("OK"))
}

// render выполняет шаблон в буфер, чтобы при ошибке отдать 500, а не
// обрезанную страницу.
func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		s.log(r).WithField("template", name).Errorf("Failed to render page: %v", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

func (s *Server) log(r *http.Request) *logger.Entry {
	return logger.Log.WithFields(logger.Fields{
		"request_id": middleware.RequestID(r.Context()),
		"path":       r.URL.Path,
	})
}

// logFetchError фиксирует сбой внешнего API; страница всё равно
// отрисовывается с пустым списком.
func (s *Server) logFetchError(r *http.Request, err error) {
	if err == nil {
		return
	}
	s.log(r).WithField("kind", fetcher.KindOf(err).String()).Errorf("Upstream fetch failed: %v", err)
}

// intParam читает целый параметр запроса; при отсутствии или ошибке
// разбора возвращает def.
func intParam(r *http.Request, name string, def int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return def
	}
	return v
}
