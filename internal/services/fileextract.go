package services

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"

	"licitaciones-backend/internal/models"
)

// SupportedFormats lists the attachment types ExtractText understands.
var SupportedFormats = []models.SupportedFormat{
	{Extension: ".pdf", MimeType: "application/pdf", Description: "Documento PDF"},
	{Extension: ".docx", MimeType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document", Description: "Documento Word"},
	{Extension: ".txt", MimeType: "text/plain", Description: "Texto plano"},
	{Extension: ".md", MimeType: "text/markdown", Description: "Markdown"},
}

type FileExtractService struct{}

func NewFileExtractService() *FileExtractService {
	return &FileExtractService{}
}

// ExtractText returns the plain text of an uploaded file. The format is picked
// from the file name's extension.
func (s *FileExtractService) ExtractText(filename string, r io.ReaderAt, size int64) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	var (
		text string
		err  error
	)
	switch ext {
	case ".txt", ".md":
		text, err = s.extractTXT(r, size)
	case ".pdf":
		text, err = s.extractPDF(r, size)
	case ".docx":
		text, err = s.extractDOCX(r, size)
	default:
		return "", &UnsupportedFileError{Extension: ext}
	}
	if err != nil {
		return "", err
	}

	text = normalizeExtractedText(text)
	if text == "" {
		return "", &ValidationError{Message: fmt.Sprintf("No se encontró texto extraíble en %s", filename)}
	}
	return text, nil
}

func (s *FileExtractService) extractTXT(r io.ReaderAt, size int64) (string, error) {
	b, err := io.ReadAll(io.NewSectionReader(r, 0, size))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (s *FileExtractService) extractPDF(r io.ReaderAt, size int64) (text string, err error) {
	// The pdf package panics on some malformed documents.
	defer func() {
		if rvr := recover(); rvr != nil {
			text, err = "", &ValidationError{Message: fmt.Sprintf("No se pudo leer el PDF: %v", rvr)}
		}
	}()

	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return "", &ValidationError{Message: fmt.Sprintf("No se pudo leer el PDF: %v", err)}
	}

	var b strings.Builder
	totalPage := reader.NumPage()
	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(content)
		b.WriteString("\n")
	}

	return b.String(), nil
}

func (s *FileExtractService) extractDOCX(r io.ReaderAt, size int64) (string, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return "", &ValidationError{Message: fmt.Sprintf("No se pudo leer el documento Word: %v", err)}
	}

	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return "", &ValidationError{Message: fmt.Sprintf("No se pudo leer el documento Word: %v", err)}
		}
		defer rc.Close()

		documentXML, err := io.ReadAll(rc)
		if err != nil {
			return "", &ValidationError{Message: fmt.Sprintf("No se pudo leer el documento Word: %v", err)}
		}
		return stripDOCXML(documentXML), nil
	}

	return "", &ValidationError{Message: "El documento Word no contiene word/document.xml."}
}

var xmlTagPattern = regexp.MustCompile(`<[^>]+>`)

func stripDOCXML(src []byte) string {
	s := string(src)

	// Paragraphs, line breaks and tabs
	s = strings.ReplaceAll(s, "</w:p>", "\n")
	s = strings.ReplaceAll(s, "<w:br/>", "\n")
	s = strings.ReplaceAll(s, "<w:br />", "\n")
	s = strings.ReplaceAll(s, "<w:tab/>", "\t")

	s = xmlTagPattern.ReplaceAllString(s, "")

	replacer := strings.NewReplacer(
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&apos;", "'",
	)
	return replacer.Replace(s)
}

// normalizeExtractedText converts line endings, trims every line and
// collapses runs of blank lines into one.
func normalizeExtractedText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	lines := strings.Split(s, "\n")
	buf := bytes.Buffer{}

	emptyCount := 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			emptyCount++
			if emptyCount > 1 {
				continue
			}
			buf.WriteString("\n")
			continue
		}
		emptyCount = 0
		buf.WriteString(trimmed)
		buf.WriteString("\n")
	}

	return strings.TrimSpace(buf.String())
}
