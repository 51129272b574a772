package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/abhisek/quizgen/internal/quiz"
	"github.com/abhisek/quizgen/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

// Options configures the web server.
type Options struct {
	Session   *session.Session
	Generator session.Generator

	// Credential is used when the form leaves the API key blank.
	Credential string

	// CORSOrigins lists origins allowed to call the server from a browser.
	// Empty disables CORS handling.
	CORSOrigins []string

	// Status is shown in the page header.
	Status string
}

// Server serves the quiz over HTTP. It holds one session for the whole
// process.
type Server struct {
	opts   Options
	sess   *session.Session
	tmpl   *template.Template
	logger *slog.Logger
}

// New creates a Server.
func New(opts Options) (*Server, error) {
	if opts.Generator == nil {
		return nil, errors.New("web: generator is required")
	}
	if opts.Session == nil {
		opts.Session = session.New()
	}

	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	return &Server{
		opts:   opts,
		sess:   opts.Session,
		tmpl:   tmpl,
		logger: slog.Default().With("component", "web"),
	}, nil
}

var templateFuncs = template.FuncMap{
	"letter":  quiz.IndexLetter,
	"inc":     func(i int) int { return i + 1 },
	"verdict": quiz.Verdict,
	"answer": func(q quiz.Question) string {
		return quiz.DisplayAnswer(q, q.UserAnswer)
	},
	"correct": func(q quiz.Question) string {
		c := q.CorrectAnswer
		return quiz.DisplayAnswer(q, &c)
	},
}

// Handler returns the HTTP handler with all routes and middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, s.requestLogger, middleware.Recoverer)

	if len(s.opts.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.opts.CORSOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
	}

	r.Get("/", s.index)
	r.Post("/generate", s.generate)
	r.Post("/answers", s.answers)
	r.Post("/restart", s.restart)
	r.Get("/healthz", s.healthz)

	r.Route("/api", func(ar chi.Router) {
		ar.Get("/state", s.state)
	})

	return r
}

// requestLogger logs one record per request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
