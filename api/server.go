package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"weather-skill/intent"
	"weather-skill/models"
	"weather-skill/skill"
)

const (
	// maxIntentSize bounds the body of an intent request
	maxIntentSize = 1 << 20

	// answerTimeout must stay below writeTimeout so that a slow or rate
	// limited fetch still ends in a spoken error instead of a dropped connection.
	answerTimeout = 15 * time.Second
	writeTimeout  = 20 * time.Second
)

// Server represents the API server
type Server struct {
	skill  *skill.Skill
	server *http.Server
}

// answerResponse is the body of every successful query
type answerResponse struct {
	Response string `json:"response"`
	Mode     string `json:"mode"`
	Location string `json:"location,omitempty"`
}

// NewServer creates a new API server
func NewServer(sk *skill.Skill, port int) *Server {
	mux := http.NewServeMux()

	server := &Server{
		skill: sk,
		server: &http.Server{
			Addr:         fmt.Sprintf(":%d", port),
			Handler:      withRequestID(mux),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: writeTimeout,
		},
	}

	// Plain queries, one per answer kind
	mux.HandleFunc("GET /api/forecast", server.handleQuery(models.ModeFull))
	mux.HandleFunc("GET /api/forecast/condition", server.handleQuery(models.ModeCondition))
	mux.HandleFunc("GET /api/forecast/temperature", server.handleQuery(models.ModeTemperature))

	// Intents from the voice assistant
	mux.HandleFunc("POST /api/intent", server.handleIntent)

	// Health check
	mux.HandleFunc("GET /api/health", server.handleHealthCheck)

	return server
}

// Handler returns the HTTP handler of the server
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start begins the API server
func (s *Server) Start() error {
	slog.Info("starting API server", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown stops the server, waiting for active requests until ctx is done
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// handleQuery answers ?location=<place> for a fixed mode
func (s *Server) handleQuery(mode models.Mode) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		location := skill.Location(r.URL.Query().Get("location"))
		name, _ := location.ResolvedLocation()

		ctx, cancel := context.WithTimeout(r.Context(), answerTimeout)
		defer cancel()

		writeJSON(w, http.StatusOK, answerResponse{
			Response: s.skill.Answer(ctx, location, mode),
			Mode:     mode.String(),
			Location: name,
		})
	}
}

// handleIntent answers an NLU intent message
func (s *Server) handleIntent(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxIntentSize))
	if err != nil {
		writeJSONError(w, "failed to read request body", http.StatusBadRequest)
		return
	}

	msg, err := intent.Parse(body)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	mode, err := msg.Mode()
	if errors.Is(err, intent.ErrUnknownIntent) {
		writeJSONError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	name, _ := msg.ResolvedLocation()

	ctx, cancel := context.WithTimeout(r.Context(), answerTimeout)
	defer cancel()

	writeJSON(w, http.StatusOK, answerResponse{
		Response: s.skill.Answer(ctx, msg, mode),
		Mode:     mode.String(),
		Location: name,
	})
}

// handleHealthCheck provides a simple health check endpoint
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "err", err)
	}
}

func writeJSONError(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, status, map[string]string{"error": msg})
}
