// Package server exposes the judgment engine over plain HTTP+JSON: one
// judge endpoint, a health check, CORS, and request logging.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/cors"

	"github.com/sabaa/horary/chartbuilder"
	"github.com/sabaa/horary/log"
)

var logger = log.WithComponent("server")

// Judger is the engine contract the server depends on.
type Judger interface {
	Judge(ctx context.Context, question string, settings chartbuilder.Settings) chartbuilder.Output
}

// Server is the HTTP front for one Engine.
type Server struct {
	httpPort string
	engine   Judger
	server   *http.Server
}

// New builds a Server for the given engine and port.
func New(engine Judger, httpPort string) *Server {
	return &Server{httpPort: httpPort, engine: engine}
}

// Start blocks serving HTTP until Stop is called or the listener fails.
func (s *Server) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/judge", s.handleJudge)

	handler := addHealthCheck(mux)
	handler = loggingMiddleware(handler)

	allowedOrigins := getCORSOrigins()
	logger.Info("CORS configuration", "allowed_origins", allowedOrigins)

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{
			"X-Request-Id",
			"X-Response-Time",
		},
		AllowCredentials: false,
		MaxAge:           300,
	})
	handler = c.Handler(handler)

	s.server = &http.Server{
		Addr:              ":" + s.httpPort,
		Handler:           handler,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("HTTP server starting", "port", s.httpPort)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}
	return nil
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// Handler returns the judge handler wired with middleware, for tests and
// embedding.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/judge", s.handleJudge)
	return loggingMiddleware(addHealthCheck(mux))
}

// judgeRequest is the POST body: the question plus the caller's settings,
// flattened into one object.
type judgeRequest struct {
	Question string `json:"question"`
	chartbuilder.Settings
}

func (s *Server) handleJudge(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req judgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_BODY", "request body is not valid JSON", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	output := s.engine.Judge(ctx, req.Question, req.Settings)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(output); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string, details map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	body := map[string]interface{}{
		"error": map[string]interface{}{
			"code":    code,
			"message": message,
			"details": details,
		},
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Failed to encode error response", "error", err)
	}
}

var requestCounter uint64

func generateRequestID() string {
	return fmt.Sprintf("req-%d-%d", time.Now().UnixNano(), atomic.AddUint64(&requestCounter, 1))
}

// loggingMiddleware tags every request with an ID and logs method, path,
// status, and duration.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get("X-Request-Id")
		if requestID == "" {
			requestID = generateRequestID()
		}
		w.Header().Set("X-Request-Id", requestID)

		wrapper := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapper, r)

		duration := time.Since(start)

		logger.Info("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapper.statusCode,
			"duration", duration,
			"request_id", requestID,
			"remote_addr", r.RemoteAddr,
		)
	})
}

// addHealthCheck serves the health endpoint ahead of the router.
func addHealthCheck(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/health" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			fmt.Fprintf(w, `{"status":"healthy","timestamp":%q,"service":"horary-engine"}`,
				time.Now().UTC().Format(time.RFC3339))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func getCORSOrigins() []string {
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		parts := strings.Split(origins, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return []string{"http://localhost:3000", "http://localhost:5173"}
}
