package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/andrescamacho/travian-go/internal/application/common"
)

// Server exposes the registry over HTTP.
type Server struct {
	httpServer *http.Server
}

// NewServer creates the exposition server for the given listen address
// and endpoint path, e.g. ":9190" and "/metrics".
func NewServer(addr, path string) *Server {
	mux := http.NewServeMux()
	mux.Handle(path, promhttp.HandlerFor(Registry, promhttp.HandlerOpts{}))

	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Start serves in a background goroutine until Shutdown.
func (s *Server) Start(ctx context.Context) {
	logger := common.LoggerFromContext(ctx)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log(common.LevelError, "metrics server stopped", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()
}

// Shutdown stops the exposition server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
