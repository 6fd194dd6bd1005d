package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"licitaciones-backend/internal/models"
	"licitaciones-backend/internal/services"
)

// Shared helpers

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, models.ErrorResponse{Error: message})
}

func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch e := err.(type) {
	case *services.ValidationError:
		writeError(w, http.StatusBadRequest, e.Message)
	case *services.UpstreamError:
		log.Ctx(r.Context()).Warn().Int("upstream_status", e.StatusCode).Msg("OpenRouter rejected request")
		writeError(w, e.StatusCode, e.Error())
	case *services.UnsupportedFileError:
		writeError(w, http.StatusUnsupportedMediaType, e.Error())
	default:
		log.Ctx(r.Context()).Error().Err(err).Msg("request failed")
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
