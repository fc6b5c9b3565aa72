// Package server exposes lookups over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rotisserie/eris"
	iiConfig "github.com/voxtmault/ifsc-integration/config"
	iiInterfaces "github.com/voxtmault/ifsc-integration/interfaces"
	iiModels "github.com/voxtmault/ifsc-integration/models"
	"github.com/voxtmault/ifsc-integration/render"
)

type Api struct {
	lookup   iiInterfaces.Lookup
	gatherer prometheus.Gatherer
	router   *gin.Engine
}

type failureResponse struct {
	Status  string             `json:"status"`
	Kind    iiModels.ErrorKind `json:"kind"`
	Message *string            `json:"message"`
	Display string             `json:"display"`
}

func NewAPI(lookup iiInterfaces.Lookup, gatherer prometheus.Gatherer) *Api {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(slog.Default()))

	return &Api{lookup: lookup, gatherer: gatherer, router: r}
}

func (a *Api) Router() *gin.Engine {
	router := a.router
	router.GET("/ifsc/:code", a.Lookup)
	router.GET("/healthz", a.Health)

	if a.gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(a.gatherer, promhttp.HandlerOpts{})))
	}

	return router
}

func (a *Api) Lookup(c *gin.Context) {
	outcome := a.lookup.Lookup(c.Request.Context(), c.Param("code"))

	kind, message, failed := outcome.Failure()
	if !failed {
		c.JSON(http.StatusOK, outcome)
		return
	}

	c.JSON(StatusFor(kind), failureResponse{
		Status:  "failure",
		Kind:    kind,
		Message: message,
		Display: render.ErrorMessage(outcome),
	})
}

func (a *Api) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// StatusFor maps a failure kind to the HTTP status returned to API clients.
func StatusFor(kind iiModels.ErrorKind) int {
	switch kind {
	case iiModels.NetworkIssue:
		return http.StatusServiceUnavailable
	case iiModels.ServerIssue:
		return http.StatusBadGateway
	default:
		return http.StatusUnprocessableEntity
	}
}

// RequestLogger logs every served request, raising the level for client and server errors.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	log := logger.With("component", "http")

	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		if status >= 400 && status < 500 {
			level = slog.LevelWarn
		} else if status >= 500 {
			level = slog.LevelError
		}

		log.LogAttrs(c.Request.Context(), level, "request",
			slog.String("method", c.Request.Method),
			slog.String("path", path),
			slog.Int("status", status),
			slog.Duration("latency", time.Since(start)),
			slog.String("client_ip", c.ClientIP()),
			slog.Int("body_size", c.Writer.Size()),
		)
	}
}

// Serve runs the API until ctx is done, then shuts down within cfg.ShutdownTimeout.
func Serve(ctx context.Context, cfg *iiConfig.HTTPConfig, handler http.Handler) error {
	addr := fmt.Sprintf("%s:%d", cfg.AppHost, cfg.AppPort)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err := <-errChan:
		if err != nil {
			return eris.Wrap(err, "serving http")
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return eris.Wrap(err, "shutting down http server")
	}

	slog.Info("Server stopped gracefully")
	return nil
}
