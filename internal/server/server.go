package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/BoltzExchange/broadcaster/internal/logger"
	"github.com/BoltzExchange/broadcaster/pkg/api"
	"github.com/BoltzExchange/broadcaster/pkg/broadcaster"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/rs/cors"
)

const (
	requestTimeout = 2 * time.Minute
	// waitTimeout bounds how long a request waits for the full report
	waitTimeout = time.Minute
)

type Options struct {
	Address     string
	CorsOrigins []string
}

type Server struct {
	aggregator *broadcaster.Aggregator
	options    Options
	validate   *validator.Validate
	http       *http.Server
}

func NewServer(aggregator *broadcaster.Aggregator, options Options) *Server {
	server := &Server{
		aggregator: aggregator,
		options:    options,
		validate:   validator.New(),
	}
	server.http = &http.Server{
		Addr:              options.Address,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return server
}

func (server *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get(api.HealthPath, server.health)
	r.Get(api.VersionPath, server.version)
	r.Get(api.ProvidersPath, server.providers)
	r.Post(api.BroadcastPath, server.broadcast)
	r.Get(api.StatusPath+"/{txid}", server.status)
	r.Get(api.FeePath, server.fee)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "endpoint not found")
	})

	var c *cors.Cors
	if len(server.options.CorsOrigins) == 0 {
		c = cors.AllowAll()
	} else {
		c = cors.New(cors.Options{
			AllowedOrigins: server.options.CorsOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost},
			AllowedHeaders: []string{"Content-Type"},
		})
	}
	return c.Handler(r)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			logger.Debugf("%s %s: %d in %s", r.Method, r.URL.Path, ww.Status(), time.Since(start))
		}()
		next.ServeHTTP(ww, r)
	})
}

// Start serves the API in the background. The returned channel receives an error if serving fails
// and is closed once the server stopped.
func (server *Server) Start() <-chan error {
	errChannel := make(chan error, 1)
	go func() {
		defer close(errChannel)
		logger.Infof("REST API listening on %s", server.options.Address)
		if err := server.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChannel <- err
		}
	}()
	return errChannel
}

func (server *Server) Stop(ctx context.Context) error {
	logger.Info("Shutting down REST API")
	return server.http.Shutdown(ctx)
}
