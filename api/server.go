// Package api is the HTTP boundary of the message board. It maps routes to
// service calls and service errors to status codes; no business rule lives
// here.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	errs "message-board/errors"
	"message-board/services"
)

type Server struct {
	accounts services.IAccountService
	messages services.IMessageService
	log      *slog.Logger
}

func NewServer(accounts services.IAccountService, messages services.IMessageService, log *slog.Logger) *Server {
	return &Server{accounts: accounts, messages: messages, log: log}
}

// Router wires the original API surface: registration, login, and message
// CRUD plus the per-account listing.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.requestLogger)

	r.HandleFunc("/register", s.handleRegister).Methods(http.MethodPost)
	r.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/messages", s.handleCreateMessage).Methods(http.MethodPost)
	r.HandleFunc("/messages", s.handleGetAllMessages).Methods(http.MethodGet)
	r.HandleFunc("/messages/{message_id}", s.handleGetMessageByID).Methods(http.MethodGet)
	r.HandleFunc("/messages/{message_id}", s.handleDeleteMessageByID).Methods(http.MethodDelete)
	r.HandleFunc("/messages/{message_id}", s.handleUpdateMessageByID).Methods(http.MethodPatch)
	r.HandleFunc("/accounts/{account_id}/messages", s.handleGetMessagesByAccountID).Methods(http.MethodGet)

	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		next.ServeHTTP(w, r)
		s.log.Debug("request handled",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start),
		)
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON reads a bounded request body into v, answering 400 itself when
// the payload is unreadable.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	defer r.Body.Close()
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return false
	}
	if err := json.Unmarshal(body, v); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return false
	}
	return true
}

// pathID extracts an integer path variable, answering 400 itself when the
// value is malformed.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// statusFor maps a service error class to an outward status code. Storage
// failures become an opaque 500; everything else the services raise is a
// client-side problem. Bodies stay empty so no internal detail leaks.
func statusFor(err error) int {
	if errors.Is(err, errs.ErrStorage) {
		return http.StatusInternalServerError
	}
	return http.StatusBadRequest
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		s.log.Error("request failed", "error", err)
	}
	w.WriteHeader(code)
}
