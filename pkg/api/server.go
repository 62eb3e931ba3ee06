// Package api serves the computed validator summary over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/NYTimes/gziphandler"
	"github.com/gorilla/mux"
	"github.com/nodeset-org/validator-summary/pkg/analysis"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	uberatomic "go.uber.org/atomic"
	"go.uber.org/zap"
)

var ErrServerAlreadyStarted = errors.New("server was already started")

type Config struct {
	Host string `yaml:"host"`
	Port uint16 `yaml:"port"`
}

type Server struct {
	config *Config
	logger *zap.Logger

	srv        *http.Server
	srvStarted uberatomic.Bool

	summary uberatomic.Pointer[analysis.Summary]
}

func New(config *Config, logger *zap.Logger) *Server {
	return &Server{
		config: config,
		logger: logger,
	}
}

// Publish makes `summary` the one served by the summary endpoint.
func (s *Server) Publish(summary *analysis.Summary) {
	s.summary.Store(summary)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	summary := s.summary.Load()
	if summary == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "summary not yet available"})
		return
	}

	if err := json.NewEncoder(w).Encode(summary); err != nil {
		s.logger.Sugar().Warnf("could not encode summary response: %v", err)
	}
}

func (s *Server) getRouter() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/summary", s.handleSummary).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	return gziphandler.GzipHandler(r)
}

func (s *Server) Run() error {
	if s.srvStarted.Swap(true) {
		return ErrServerAlreadyStarted
	}

	logger := s.logger.Sugar()

	s.srv = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", s.config.Host, s.config.Port),
		Handler: s.getRouter(),
	}

	logger.Infof("API server listening on %s", s.srv.Addr)
	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown() error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(context.Background())
}
