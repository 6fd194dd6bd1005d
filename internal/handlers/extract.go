package handlers

import (
	"errors"
	"net/http"
	"unicode/utf8"

	"licitaciones-backend/internal/models"
	"licitaciones-backend/internal/services"
)

type ExtractHandler struct {
	extractService *services.FileExtractService
	maxBodyBytes   int64
}

func NewExtractHandler(extractService *services.FileExtractService, maxBodyBytes int64) *ExtractHandler {
	return &ExtractHandler{
		extractService: extractService,
		maxBodyBytes:   maxBodyBytes,
	}
}

// Extract turns an uploaded attachment into plain text for the prompt's
// fileContent field.
func (h *ExtractHandler) Extract(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > h.maxBodyBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "El archivo supera el tamaño máximo permitido.")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "El archivo supera el tamaño máximo permitido.")
			return
		}
		writeError(w, http.StatusBadRequest, "No se recibió ningún archivo.")
		return
	}
	defer file.Close()

	text, err := h.extractService.ExtractText(header.Filename, file, header.Size)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.ExtractResponse{
		Filename:   header.Filename,
		Text:       text,
		Characters: utf8.RuneCountInString(text),
	})
}

func (h *ExtractHandler) SupportedFormats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"formats": services.SupportedFormats,
	})
}
