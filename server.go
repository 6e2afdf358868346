package gpstracker

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/santanu-atta03/gps-tracker/fleet"
	"github.com/santanu-atta03/gps-tracker/metrics"
	"github.com/santanu-atta03/gps-tracker/search"
)

// Server wires the fleet store and search engine into the HTTP API.
type Server struct {
	store   *fleet.Store
	orch    *search.Orchestrator
	metrics *metrics.Collector

	httpServer *http.Server
}

// NewServer builds the API server. metrics may be nil, which disables
// instrumentation and the /metrics endpoint.
func NewServer(port int, store *fleet.Store, orch *search.Orchestrator, m *metrics.Collector) *Server {
	s := &Server{store: store, orch: orch, metrics: m}

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/tracker/search", s.handlePointSearch)
	mux.HandleFunc("/api/tracker/route", s.handleRouteSearch)
	mux.HandleFunc("/api/tracker/location", s.handleIngest)
	if s.metrics != nil {
		mux.Handle("/metrics", s.metrics.Handler())
	}
	return chain(mux, recovery, requestLogging, cors)
}

// Handler exposes the full middleware-wrapped handler, for tests.
func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

// Start begins serving in the background.
func (s *Server) Start() {
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()
	log.Printf("server listening on %s", s.httpServer.Addr)
}

// HandleGracefulShutdown blocks until SIGINT or SIGTERM, then drains the
// server with a bounded deadline.
func (s *Server) HandleGracefulShutdown() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Printf("shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	} else {
		log.Printf("server shut down successfully")
	}
}
