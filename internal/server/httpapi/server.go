// Package httpapi exposes the backend over HTTP/JSON: password
// authentication with refresh-token rotation, listing row queries, and
// presigned photo uploads.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/wintakam/wintakam/internal/logging"
	"github.com/wintakam/wintakam/internal/server/services"
)

// Server is the public HTTP endpoint.
type Server struct {
	addr            string
	apiKey          string
	secretKey       []byte
	logger          logging.Logger
	userService     *services.UserService
	propertyService *services.PropertyService
	httpServer      *http.Server
}

// NewServer wires the services into a router and returns a runnable Server.
func NewServer(addr, apiKey, secretKey string, logger logging.Logger,
	us *services.UserService, ps *services.PropertyService) *Server {

	s := &Server{
		addr:            addr,
		apiKey:          apiKey,
		secretKey:       []byte(secretKey),
		logger:          logger.With("module", "httpapi"),
		userService:     us,
		propertyService: ps,
	}
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *Server) router() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.Use(s.apiKeyMiddleware)

	r.HandleFunc("/auth/register", s.handleRegister).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/auth/refresh", s.handleRefresh).Methods(http.MethodPost)
	r.HandleFunc("/auth/logout", s.handleLogout).Methods(http.MethodPost)
	r.Handle("/auth/user", s.requireAuth(http.HandlerFunc(s.handleCurrentUser))).Methods(http.MethodGet)

	r.HandleFunc("/rest/properties", s.handleListProperties).Methods(http.MethodGet)
	r.HandleFunc("/rest/properties/{id}", s.handleGetProperty).Methods(http.MethodGet)
	r.Handle("/rest/properties", s.requireAuth(http.HandlerFunc(s.handleCreateProperty))).Methods(http.MethodPost)
	r.Handle("/rest/properties/{id}/images", s.requireAuth(http.HandlerFunc(s.handlePresignImage))).Methods(http.MethodPost)
	r.Handle("/rest/properties/{id}/images/complete", s.requireAuth(http.HandlerFunc(s.handleAttachImage))).Methods(http.MethodPost)

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "http server listening", "addr", s.addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}

// Handler exposes the routed handler for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
