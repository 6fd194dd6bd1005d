package models

// ChatMessage is a single entry of the upstream conversation.
type ChatMessage struct {
	Role    string `json:"role"` // "system" or "user"
	Content string `json:"content"`
}

// ChatRequest is the body the page posts to /api/chat.
type ChatRequest struct {
	Model       string `json:"model"`
	Prompt      string `json:"prompt"`
	FileContent string `json:"fileContent,omitempty"`
}

// ChatCompletionPayload is what gets sent to the chat-completion API.
type ChatCompletionPayload struct {
	Model    string        `json:"model"`
	Messages []ChatMessage `json:"messages"`
}

// ChatResponse is the reply relayed back to the page.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// ErrorResponse is the only failure shape the API emits.
type ErrorResponse struct {
	Error string `json:"error"`
}
