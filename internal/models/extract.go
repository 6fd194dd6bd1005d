package models

// ExtractResponse carries the plain text pulled out of an uploaded attachment.
type ExtractResponse struct {
	Filename   string `json:"filename"`
	Text       string `json:"text"`
	Characters int    `json:"characters"`
}

// SupportedFormat describes one attachment type /api/extract accepts.
type SupportedFormat struct {
	Extension   string `json:"extension"`
	MimeType    string `json:"mime_type"`
	Description string `json:"description"`
}
