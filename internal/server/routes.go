package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tagdiff/internal/logger"
)

// RegisterRoutes registers the API under rg (typically /v1).
//
//	POST /v1/filter      - filter a tree and return the projection
//	POST /v1/predicates  - validate a predicate and return its chip label
//	GET  /v1/health      - liveness
func RegisterRoutes(rg *gin.RouterGroup, h *Handlers) {
	rg.POST("/filter", h.HandleFilter)
	rg.POST("/predicates", h.HandlePredicate)
	rg.GET("/health", h.HandleHealth)
}

// NewRouter builds the gin engine with recovery and the v1 group.
func NewRouter(version string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	RegisterRoutes(router.Group("/v1"), NewHandlers(version))
	return router
}

// Serve runs the API on addr until ctx is cancelled, then shuts down with a
// short grace period.
func Serve(ctx context.Context, addr, version string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(version),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "addr", addr)
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	logger.Info("HTTP server shutting down", "addr", addr)
	return srv.Shutdown(shutdownCtx)
}
