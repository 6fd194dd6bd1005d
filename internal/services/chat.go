package services

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"licitaciones-backend/internal/config"
	"licitaciones-backend/internal/models"
)

const (
	SystemPrompt = "Eres un analista de licitaciones de software. Dado un pliego o solicitud, extrae requerimientos funcionales, requerimientos no funcionales y ambigüedades. Responde en español con listas claras."

	AttachmentHeader     = "\n\nContenido del archivo adjunto (si aplica):\n"
	NoAttachmentText     = "Sin archivo adjunto."
	NoReplyText          = "Sin respuesta del modelo."
	MissingFieldsMessage = "El modelo y el prompt son obligatorios."
	MissingAPIKeyMessage = "Configura OPENROUTER_API_KEY en las variables de entorno o en un archivo .env junto al servidor."
)

// ChatCompleter sends one payload to a chat-completion API and returns the
// raw body of a successful response. Non-2xx answers come back as *UpstreamError.
type ChatCompleter interface {
	Complete(ctx context.Context, payload models.ChatCompletionPayload) ([]byte, error)
}

type ChatService struct {
	upstream   ChatCompleter
	configured bool
}

func NewChatService(cfg *config.Config, upstream ChatCompleter) *ChatService {
	return &ChatService{
		upstream:   upstream,
		configured: cfg.HasCredential(),
	}
}

// Configured reports whether requests can be forwarded at all.
func (s *ChatService) Configured() bool {
	return s.configured
}

// Ask validates req, forwards it upstream and returns the model's reply.
func (s *ChatService) Ask(ctx context.Context, req models.ChatRequest) (string, error) {
	if req.Model == "" || req.Prompt == "" {
		return "", &ValidationError{Message: MissingFieldsMessage}
	}

	body, err := s.upstream.Complete(ctx, BuildPayload(req))
	if err != nil {
		return "", err
	}

	reply, err := extractReply(body)
	if err != nil {
		return "", err
	}

	log.Ctx(ctx).Debug().
		Str("model", req.Model).
		Int("reply_chars", len(reply)).
		Msg("chat completed")

	return reply, nil
}

// BuildPayload composes the two-message conversation sent upstream.
func BuildPayload(req models.ChatRequest) models.ChatCompletionPayload {
	attachment := req.FileContent
	if attachment == "" {
		attachment = NoAttachmentText
	}

	return models.ChatCompletionPayload{
		Model: req.Model,
		Messages: []models.ChatMessage{
			{Role: "system", Content: SystemPrompt},
			{Role: "user", Content: req.Prompt + AttachmentHeader + attachment},
		},
	}
}

// extractReply pulls choices[0].message.content out of a completion body.
// Any other shape yields NoReplyText; only non-JSON bodies are errors.
func extractReply(body []byte) (string, error) {
	var data interface{}
	if err := json.Unmarshal(body, &data); err != nil {
		return "", &UpstreamParseError{Cause: err}
	}

	root, ok := data.(map[string]interface{})
	if !ok {
		return NoReplyText, nil
	}
	choices, ok := root["choices"].([]interface{})
	if !ok || len(choices) == 0 {
		return NoReplyText, nil
	}
	first, ok := choices[0].(map[string]interface{})
	if !ok {
		return NoReplyText, nil
	}
	message, ok := first["message"].(map[string]interface{})
	if !ok {
		return NoReplyText, nil
	}
	content, ok := message["content"].(string)
	if !ok || content == "" {
		return NoReplyText, nil
	}

	return content, nil
}
