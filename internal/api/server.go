package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"littlex/internal/assistant"
	"littlex/internal/config"
	"littlex/internal/dispatch"
	"littlex/internal/media"
)

type contextKey string

const loggerContextKey = contextKey("logger")

// Server is the transport layer: it decodes requests into commands,
// delegates to the dispatcher or the assistant, and serves media files.
type Server struct {
	Logger     *slog.Logger
	Config     *config.Config
	Dispatcher *dispatch.Dispatcher
	Assistant  *assistant.Assistant
	Media      *media.Store

	server *http.Server
	router chi.Router
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (s *Server) Run(ctx context.Context) error {
	s.Logger.Info("Starting API server", "addr", s.server.Addr)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.server.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Init(_ context.Context) error {
	s.Logger = s.Logger.With("component", "api.Server")

	r := chi.NewMux()

	logger := func(ctx context.Context) *slog.Logger {
		return ctx.Value(loggerContextKey).(*slog.Logger)
	}

	r.Use(
		// Logger in context
		func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				logger := s.Logger.With("method", r.Method, "path", r.URL.Path)
				ctx := context.WithValue(r.Context(), loggerContextKey, logger)
				next.ServeHTTP(w, r.WithContext(ctx))
			})
		},

		// Request logging
		func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				start := time.Now()
				sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

				next.ServeHTTP(sw, r)

				duration := time.Since(start)
				logger(r.Context()).Info("request", "duration", duration, "status", sw.status)
			})
		},

		// Recovering panics and logging
		func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				defer func() {
					if err := recover(); err != nil {
						logger(r.Context()).Error("panic recovered", "error", err)
						http.Error(w, `{"error": "Internal Server Error"}`, http.StatusInternalServerError)
					}
				}()
				next.ServeHTTP(w, r)
			})
		},
	)

	r.Route("/walker", func(r chi.Router) {
		r.Post("/create_tweet", s.createTweet)
		r.Post("/load_feed", s.loadFeed)
		r.Post("/get_profile", s.getProfile)
		r.Post("/like_tweet/{tweet_id}", s.likeTweet)
		r.Post("/remove_like/{tweet_id}", s.removeLike)
		r.Post("/comment_tweet/{tweet_id}", s.commentTweet)
		r.Post("/remove_comment/{comment_id}", s.removeComment)
	})

	r.Route("/user", func(r chi.Router) {
		r.Post("/register", s.registerDisabled)
		r.Post("/login", s.loginDisabled)
	})

	r.Route("/assistant", func(r chi.Router) {
		r.Post("/analyze_tweet", s.analyzeTweet)
		r.Post("/explain", s.explain)
		r.Post("/recommend", s.recommend)
		r.Post("/image-info", s.imageInfo)
	})

	r.Get("/health", s.health)

	r.Handle("/media/*", http.StripPrefix("/media/",
		http.FileServer(http.Dir(s.Media.Dir()))))

	s.router = r
	s.server = &http.Server{
		Handler:           r,
		Addr:              s.Config.Addr,
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       time.Minute,
	}
	return nil
}
