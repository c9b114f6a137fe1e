// Package httpapi serves city suggestions over HTTP.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/bastiangx/geoserve/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	suggester suggest.ISuggester
	opts      suggest.Options
}

// NewServer keeps the prefix length cap and capitalization of opts. An empty q
// lists every city, and results are cut only when the request sets limit.
func NewServer(suggester suggest.ISuggester, opts suggest.Options) *Server {
	opts.MinPrefix = 0
	opts.MaxLimit = 0
	opts.DefaultLimit = 0
	return &Server{suggester: suggester, opts: opts}
}

// Router registers the API routes on a fresh gin engine.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	r.GET("/suggestions", s.suggestions)
	r.GET("/health", s.health)
	return r
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("HTTP API listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Debug("Shutting down HTTP API")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) suggestions(ctx *gin.Context) {
	q, ok := ctx.GetQuery("q")
	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "q query parameter is required"})

		return
	}

	lat, err := optionalFloat(ctx, "latitude")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "latitude must be a number"})

		return
	}
	lon, err := optionalFloat(ctx, "longitude")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "longitude must be a number"})

		return
	}

	limit := 0
	if raw := ctx.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})

			return
		}
	}

	suggestions, err := s.opts.Run(s.suggester, suggest.Query{
		Prefix:    q,
		Latitude:  lat,
		Longitude: lon,
		Limit:     limit,
	})
	if err != nil {
		var reqErr *suggest.RequestError
		if errors.As(err, &reqErr) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": reqErr.Error()})

			return
		}
		log.Errorf("Suggest failed for %q: %v", q, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})

		return
	}

	if suggestions == nil {
		suggestions = []suggest.Suggestion{}
	}
	ctx.JSON(http.StatusOK, suggestions)
}

func (s *Server) health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok", "records": s.suggester.Stats()["records"]})
}

// optionalFloat returns nil when the parameter is absent.
func optionalFloat(ctx *gin.Context, name string) (*float64, error) {
	raw, ok := ctx.GetQuery(name)
	if !ok || raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func requestLogger() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()
		log.Debug("HTTP request",
			"method", ctx.Request.Method,
			"path", ctx.Request.URL.Path,
			"status", ctx.Writer.Status(),
			"took", time.Since(start))
	}
}
