// internal/monitoring/server.go
package monitoring

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/valpere/ProductHarvester/internal/utils"
)

// Server serves the Prometheus scrape endpoint and liveness/readiness
// probes while a batch run is in progress.
type Server struct {
	httpServer *http.Server
	metrics    *Metrics
	log        utils.Logger
	ready      atomic.Bool
}

// NewServer creates the monitoring HTTP server listening on addr.
func NewServer(addr string, metrics *Metrics, log utils.Logger) *Server {
	s := &Server{
		metrics: metrics,
		log:     log,
	}

	router := mux.NewRouter()
	router.Handle("/metrics", promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{})).Methods(http.MethodGet)
	router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/readyz", s.handleReady).Methods(http.MethodGet)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	return s
}

// Start begins serving in a background goroutine. Listen errors other than
// a clean shutdown are logged, not returned: a broken monitoring port must
// not abort a scraping run.
func (s *Server) Start() {
	go func() {
		s.log.Infof("monitoring server listening on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Errorf("monitoring server failed: %v", err)
		}
	}()
}

// SetReady marks the pipeline as ready to be scraped.
func (s *Server) SetReady(ready bool) {
	s.ready.Store(ready)
}

// Shutdown stops the server, waiting up to the context deadline for
// in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.ready.Store(false)
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("monitoring server shutdown failed: %w", err)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if !s.ready.Load() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
