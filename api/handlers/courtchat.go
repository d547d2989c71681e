package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Kavin-Antony/Smart-Contract-Based-Legal-Consensus-System/api"
	"github.com/Kavin-Antony/Smart-Contract-Based-Legal-Consensus-System/config"
	"github.com/Kavin-Antony/Smart-Contract-Based-Legal-Consensus-System/court"
)

// CourtChat exported for testing purposes
type CourtChat struct {
	Court *court.Court
}

// SendMessageRequest is the body of a debate message
type SendMessageRequest struct {
	Text         string `json:"text" validate:"max=10000"`
	EvidenceHash string `json:"evidenceHash" validate:"max=512"`
}

// MessagesHandler returns the whole debate of a case in index order
func (c CourtChat) MessagesHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := caseID(w, r)
	if !ok {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	msgs, err := c.Court.GetMessages(ctx, id)
	if err != nil {
		courtErrorStatus("failed to get messages", w, err)
		return
	}
	writeJSON(w, http.StatusOK, msgs)
}

// MessageHandler returns a single message by its index
func (c CourtChat) MessageHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := caseID(w, r)
	if !ok {
		return
	}
	index, err := strconv.ParseUint(mux.Vars(r)["index"], 10, 64)
	if err != nil {
		config.ErrorStatus("invalid message index", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	msg, err := c.Court.GetMessage(ctx, id, index)
	if err != nil {
		courtErrorStatus("failed to get message", w, err)
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

// SendMessageHandler appends a message from one of the case's participants
func (c CourtChat) SendMessageHandler(w http.ResponseWriter, r *http.Request) {
	from, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := caseID(w, r)
	if !ok {
		return
	}
	var req SendMessageRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	msg, err := c.Court.SendMessage(ctx, from, id, req.Text, req.EvidenceHash)
	if err != nil {
		courtErrorStatus("failed to send message", w, err)
		return
	}
	writeJSON(w, http.StatusCreated, msg)
}
