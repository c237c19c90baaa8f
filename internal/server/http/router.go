package httpserver

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Server 把 /api/* 和静态页面挂到同一个 mux 上，外面再包一层请求日志。
type Server struct {
	h      http.Handler
	logger zerolog.Logger
}

func NewServer(api *Handler, webDir string, logger zerolog.Logger) *Server {
	mux := http.NewServeMux()
	mux.Handle("/api/", api)
	RegisterStaticRoutes(mux, webDir)
	return &Server{h: mux, logger: logger}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	s.h.ServeHTTP(rec, r)

	ev := s.logger.Info()
	if rec.status >= http.StatusInternalServerError {
		ev = s.logger.Error()
	}
	ev.Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", rec.status).
		Dur("elapsed", time.Since(start)).
		Msg("request")
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
