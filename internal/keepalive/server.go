// Package keepalive serves the health endpoint that keeps the bot's
// hosting platform from idling the process, plus Prometheus metrics.
package keepalive

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Server is the keep-alive HTTP server.
type Server struct {
	echo *echo.Echo
	addr string
	log  zerolog.Logger
}

// New builds the server with /healthz and /metrics routes.
func New(addr string, log zerolog.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	return &Server{echo: e, addr: addr, log: log.With().Str("component", "keepalive").Logger()}
}

// Start serves in the background.
func (s *Server) Start() {
	s.log.Info().Str("addr", s.addr).Msg("keep-alive server listening")
	go func() {
		if err := s.echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error().Err(err).Msg("keep-alive server failed")
		}
	}()
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
