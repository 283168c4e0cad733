// internal/infra/httpapi/server.go
package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"rentlite/internal/app"
	"rentlite/internal/domain/rentcheck"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Server exposes the trigger surface: a batch endpoint for the external
// scheduled job and a per-property manual trigger. Both are guarded by
// the shared bearer secret; all other auth lives in the external app.
type Server struct {
	httpServer   *http.Server
	checkService app.RentCheckService
	secret       string
	logger       *logrus.Entry
}

func NewServer(addr, secret string, checkService app.RentCheckService, logger *logrus.Entry) *Server {
	s := &Server{
		checkService: checkService,
		secret:       secret,
		logger:       logger,
	}
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler builds the route table. Exposed for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/cron/check-rent", s.handleBatchCheck)
	mux.HandleFunc("POST /api/cron/check-rent", s.handleBatchCheck)
	mux.HandleFunc("POST /api/properties/{id}/check-rent", s.handlePropertyCheck)
	return mux
}

func (s *Server) Start() error {
	s.logger.WithField("addr", s.httpServer.Addr).Info("HTTP trigger API listening")
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

type batchResponse struct {
	Success bool               `json:"success"`
	Message string             `json:"message"`
	Results []rentcheck.Result `json:"results"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleBatchCheck(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		s.logger.Warn("Unauthorized batch trigger attempt")
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Unauthorized"})
		return
	}

	s.logger.Info("Starting rent check batch via HTTP trigger")
	results := s.checkService.CheckAllProperties(r.Context())

	writeJSON(w, http.StatusOK, batchResponse{
		Success: true,
		Message: fmt.Sprintf("Checked %d properties", len(results)),
		Results: results,
	})
}

func (s *Server) handlePropertyCheck(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		s.logger.Warn("Unauthorized manual trigger attempt")
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Unauthorized"})
		return
	}

	propertyID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid property ID"})
		return
	}

	result := s.checkService.CheckProperty(r.Context(), propertyID)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) authorized(r *http.Request) bool {
	return r.Header.Get("Authorization") == "Bearer "+s.secret
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
