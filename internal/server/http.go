package server

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/question"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

// Pinger reports whether a backing dependency is reachable.
type Pinger func(ctx context.Context) error

// NewHTTPServer wires the trivia routes plus health and metrics for the API service.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, pool *pgxpool.Pool, redis *redis.Client, questions *question.HTTPHandler) *http.Server {
	ping := func(ctx context.Context) error {
		if err := pool.Ping(ctx); err != nil {
			return err
		}
		return redis.Ping(ctx).Err()
	}
	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: NewRouter(cfg.CORS, logger, ping, questions),
	}
}

// NewRouter builds the mux and wraps it in the middleware chain.
func NewRouter(cors config.CORS, logger zerolog.Logger, ping Pinger, questions *question.HTTPHandler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /ping", func(w http.ResponseWriter, r *http.Request) {
		if ping != nil {
			if err := ping(r.Context()); err != nil {
				logger.Error().Err(err).Msg("dependency ping failed")
				httperrors.RespondError(w, http.StatusBadGateway)
				return
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pong":true}`))
	})

	if questions != nil {
		questions.Register(mux)
	}

	mux.Handle("/", fallback(mux))

	var handler http.Handler = mux
	handler = withMetrics(handler)
	handler = withCORS(cors, handler)
	handler = withRequestLogging(logger, handler)
	handler = withRecover(logger, handler)
	return handler
}

var probeMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete}

// fallback answers unmatched requests with a JSON 404, or 405 when the path
// exists under another method. OPTIONS on an existing path gets 200 with Allow.
func fallback(mux *http.ServeMux) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var allowed []string
		for _, method := range probeMethods {
			if method == r.Method {
				continue
			}
			probe := r.Clone(r.Context())
			probe.Method = method
			if _, pattern := mux.Handler(probe); pattern != "" && pattern != "/" {
				allowed = append(allowed, method)
			}
		}
		if len(allowed) > 0 {
			for _, method := range allowed {
				w.Header().Add("Allow", method)
			}
			if r.Method == http.MethodOptions {
				w.Header().Add("Allow", http.MethodOptions)
				w.WriteHeader(http.StatusOK)
				return
			}
			httperrors.RespondMethodNotAllowed(w)
			return
		}
		httperrors.RespondNotFound(w)
	}
}
