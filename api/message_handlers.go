package api

import (
	"errors"
	"net/http"

	"message-board/domain"
	errs "message-board/errors"
)

// handleCreateMessage resolves the posting account first; the message service
// requires the owner to be handed in and re-checks it against the declared
// posted_by.
func (s *Server) handleCreateMessage(w http.ResponseWriter, r *http.Request) {
	var msg domain.Message
	if !decodeJSON(w, r, &msg) {
		return
	}

	owner, err := s.accounts.GetAccountByID(r.Context(), msg.PostedBy)
	if err != nil {
		s.fail(w, err)
		return
	}

	created, err := s.messages.CreateMessage(r.Context(), msg, owner)
	if err != nil {
		s.fail(w, err)
		return
	}

	writeJSON(w, http.StatusOK, created)
}

func (s *Server) handleGetAllMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := s.messages.GetAllMessages(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

// handleGetMessageByID keeps the original contract: an unknown id answers
// 200 with an empty body, not 404.
func (s *Server) handleGetMessageByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "message_id")
	if !ok {
		return
	}

	msg, err := s.messages.GetMessageByID(r.Context(), id)
	if errors.Is(err, errs.ErrMessageNotFound) {
		w.WriteHeader(http.StatusOK)
		return
	}
	if err != nil {
		s.fail(w, err)
		return
	}

	writeJSON(w, http.StatusOK, msg)
}

// handleDeleteMessageByID answers 200 with the deleted record, or 200 with an
// empty body when there was nothing to delete (original contract).
func (s *Server) handleDeleteMessageByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "message_id")
	if !ok {
		return
	}

	msg, err := s.messages.GetMessageByID(r.Context(), id)
	if errors.Is(err, errs.ErrMessageNotFound) {
		w.WriteHeader(http.StatusOK)
		return
	}
	if err != nil {
		s.fail(w, err)
		return
	}

	err = s.messages.DeleteMessage(r.Context(), msg)
	if errors.Is(err, errs.ErrMessageNotFound) {
		// Raced away between fetch and delete; same outward no-op.
		w.WriteHeader(http.StatusOK)
		return
	}
	if err != nil {
		s.fail(w, err)
		return
	}

	writeJSON(w, http.StatusOK, msg)
}

func (s *Server) handleUpdateMessageByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "message_id")
	if !ok {
		return
	}

	var msg domain.Message
	if !decodeJSON(w, r, &msg) {
		return
	}
	msg.ID = id

	updated, err := s.messages.UpdateMessage(r.Context(), msg)
	if err != nil {
		s.fail(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleGetMessagesByAccountID(w http.ResponseWriter, r *http.Request) {
	accountID, ok := pathID(w, r, "account_id")
	if !ok {
		return
	}

	messages, err := s.messages.GetMessagesByAccountID(r.Context(), accountID)
	if err != nil {
		s.fail(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messages)
}
