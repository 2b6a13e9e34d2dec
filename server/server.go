// Package server exposes the dispatcher over HTTP: POST /chat runs one turn,
// POST /clear resets a session. Replies carry the last five user/agent
// exchanges so thin front ends can render recent history without their own
// state.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/hupe1980/matchday/core"
	"github.com/hupe1980/matchday/logging"
	"github.com/hupe1980/matchday/router"
)

const historyDepth = 5

// Dispatcher is the router-side contract the server needs; satisfied by
// *router.Router.
type Dispatcher interface {
	Dispatch(ctx context.Context, sessionID, utterance string) router.Turn
}

// Exchange is one user/agent pair in the recent history.
type Exchange struct {
	User  string `json:"user"`
	Agent string `json:"agent"`
}

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// ChatResponse is the reply of POST /chat.
type ChatResponse struct {
	Reply     string     `json:"reply"`
	SessionID string     `json:"session_id"`
	History   []Exchange `json:"recent_history"`
}

// ClearRequest is the body of POST /clear.
type ClearRequest struct {
	SessionID string `json:"session_id"`
}

// ClearResponse is the reply of POST /clear.
type ClearResponse struct {
	Status    string `json:"status"`
	SessionID string `json:"session_id"`
}

// Server handles the turn protocol over HTTP.
type Server struct {
	dispatcher Dispatcher
	store      core.Store
	logger     logging.Logger

	mu      sync.Mutex
	history map[string][]Exchange
}

// Options configure a Server.
type Options struct {
	Logger logging.Logger
}

// New constructs a Server over a dispatcher and the session store used for
// /clear.
func New(dispatcher Dispatcher, store core.Store, optFns ...func(o *Options)) *Server {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Server{
		dispatcher: dispatcher,
		store:      store,
		logger:     opts.Logger,
		history:    make(map[string][]Exchange),
	}
}

// Handler returns the HTTP handler serving the turn protocol.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /chat", s.handleChat)
	mux.HandleFunc("POST /clear", s.handleClear)
	return mux
}

// ListenAndServe runs the server on addr until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("http server listening", "addr", addr)
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		httpError(w, http.StatusBadRequest, "empty message")
		return
	}
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	s.logger.Info("chat turn", "session_id", sessionID)
	turn := s.dispatcher.Dispatch(r.Context(), sessionID, message)
	reply := turn.Result.Summary

	writeJSON(w, http.StatusOK, ChatResponse{
		Reply:     reply,
		SessionID: sessionID,
		History:   s.appendHistory(sessionID, message, reply),
	})
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	var req ClearRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SessionID == "" {
		httpError(w, http.StatusBadRequest, "session_id required")
		return
	}

	if err := s.store.Clear(req.SessionID); err != nil {
		s.logger.Error("clearing session failed", "session_id", req.SessionID, "error", err)
		httpError(w, http.StatusInternalServerError, "failed to clear session")
		return
	}

	s.mu.Lock()
	delete(s.history, req.SessionID)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, ClearResponse{Status: "cleared", SessionID: req.SessionID})
}

// appendHistory records the exchange and returns the trailing window.
func (s *Server) appendHistory(sessionID, user, agent string) []Exchange {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := append(s.history[sessionID], Exchange{User: user, Agent: agent})
	if len(h) > historyDepth {
		h = h[len(h)-historyDepth:]
	}
	s.history[sessionID] = h

	out := make([]Exchange, len(h))
	copy(out, h)
	return out
}

func httpError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
