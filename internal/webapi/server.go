// Package webapi serves the leaderboards over HTTP.
package webapi

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/huangsam/benchboard/internal/contract"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

// NewRouter builds the HTTP routes over the store manager.
func NewRouter(cfg *contract.Config, mgr contract.StoreManager, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &handler{baseCfg: cfg, mgr: mgr, logger: logger}
	limiter := NewSubmitLimiter(cfg.SubmitRate, cfg.SubmitBurst)

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger))
	if c, ok := corsConfig(cfg.CORSOrigins); ok {
		r.Use(cors.New(c))
	}

	r.GET("/health", h.health)

	api := r.Group("/api")
	api.GET("/variants", h.listVariants)
	api.GET("/summary", h.getSummary)
	api.GET("/leaderboards/:variant", h.getLeaderboard)
	api.POST("/leaderboards/:variant/scores", limiter.Middleware(), h.submitScore)
	return r
}

// corsConfig returns the CORS policy for the configured origins.
// No origins disables CORS; "*" allows every origin.
func corsConfig(origins []string) (cors.Config, bool) {
	if len(origins) == 0 {
		return cors.Config{}, false
	}
	c := cors.Config{
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       12 * time.Hour,
	}
	if slices.Contains(origins, "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return c, true
}

// Serve runs the HTTP server until the context is canceled, then shuts down gracefully.
func Serve(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           NewRouter(cfg, mgr, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.Addr))
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

	logger.Info("http server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
