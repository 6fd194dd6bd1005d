package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"licitaciones-backend/internal/models"
	"licitaciones-backend/internal/services"
)

type ChatHandler struct {
	chatService  *services.ChatService
	maxBodyBytes int64
}

func NewChatHandler(chatService *services.ChatService, maxBodyBytes int64) *ChatHandler {
	return &ChatHandler{
		chatService:  chatService,
		maxBodyBytes: maxBodyBytes,
	}
}

// Chat proxies one prompt to the chat-completion API and relays the reply.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	if !h.chatService.Configured() {
		writeError(w, http.StatusInternalServerError, services.MissingAPIKeyMessage)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			log.Ctx(r.Context()).Warn().Int64("limit", maxErr.Limit).Msg("request body too large, aborting connection")
			panic(http.ErrAbortHandler)
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	req, err := decodeChatRequest(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	reply, err := h.chatService.Ask(r.Context(), req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.ChatResponse{Reply: reply})
}

// decodeChatRequest parses the request body; an empty body counts as {}.
func decodeChatRequest(body []byte) (models.ChatRequest, error) {
	var req models.ChatRequest
	if len(bytes.TrimSpace(body)) == 0 {
		return req, nil
	}
	err := json.Unmarshal(body, &req)
	return req, err
}
