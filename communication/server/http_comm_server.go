package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"othello/communication"
	"othello/searcher/agent"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

// MaxRequestBytes caps a /findmove body. A request is a board of 64 small ints and a player.
const MaxRequestBytes = 16 << 10

// AgentServer exposes an agent over HTTP.
type AgentServer struct {
	agent  agent.Agent
	router chi.Router
}

// NewAgentServer initializes the routes for the given agent.
func NewAgentServer(a agent.Agent) *AgentServer {
	s := &AgentServer{agent: a}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	r.Post("/findmove", s.handleFindMove)

	s.router = r
	return s
}

func (s *AgentServer) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *AgentServer) ListenAndServe(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Msgf("agent server listening on %s", addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *AgentServer) handleFindMove(w http.ResponseWriter, r *http.Request) {
	var payload communication.FindMoveRequest
	body := http.MaxBytesReader(w, r.Body, MaxRequestBytes)
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, communication.ErrorResponse{Error: "bad request: " + err.Error()})
		return
	}
	if err := payload.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, communication.ErrorResponse{Error: err.Error()})
		return
	}

	move, metric := s.agent.FindMove(payload.State())
	writeJSON(w, http.StatusOK, communication.NewFindMoveResponse(move, metric))
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("handled request")
	})
}
