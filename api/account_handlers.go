package api

import (
	"net/http"

	"message-board/domain"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var acct domain.Account
	if !decodeJSON(w, r, &acct) {
		return
	}

	created, err := s.accounts.CreateAccount(r.Context(), acct)
	if err != nil {
		s.fail(w, err)
		return
	}

	writeJSON(w, http.StatusOK, created)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds domain.Credentials
	if !decodeJSON(w, r, &creds) {
		return
	}

	acct, err := s.accounts.ValidateLogin(r.Context(), creds)
	if err != nil {
		s.fail(w, err)
		return
	}
	if acct == nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	writeJSON(w, http.StatusOK, acct)
}
