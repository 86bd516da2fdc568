// Package extract converts uploaded document files into plain text.
// Each supported format has its own extractor; everything downstream
// (chunking, embedding) only ever sees the extracted text.
package extract

import (
	"strings"

	"github.com/fauxlabs/faux-rag/internal/apperrors"
)

// Supported maps allowed file extensions (lowercase, with dot) to true.
var Supported = map[string]bool{
	".pdf":  true,
	".docx": true,
	".txt":  true,
	".md":   true,
}

// Text extracts plain text from the file at path based on its extension.
// The extension is the declared one, not sniffed from content.
func Text(path, ext string) (string, error) {
	switch strings.ToLower(ext) {
	case ".pdf":
		return pdfText(path)
	case ".docx":
		return docxText(path)
	case ".txt", ".md":
		return plainText(path)
	default:
		return "", apperrors.Validationf("unsupported file type: %s", ext)
	}
}
