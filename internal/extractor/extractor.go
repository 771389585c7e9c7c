// Package extractor converts uploaded document bytes into the ordered
// content unit stream the grouper consumes. One unit per source
// paragraph; embedded images ride on units of their own so document
// order survives extraction.
package extractor

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/FaisalAwa/examforge/internal/exam"
)

// Extractor converts raw document bytes into ordered content units.
type Extractor interface {
	Extract(r io.Reader, filename string) ([]exam.ContentUnit, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".odt":  true,
	".docx": true,
	".pdf":  true,
	".html": true,
	".htm":  true,
	".md":   true,
	".txt":  true,
}

// ForFile returns the appropriate extractor for a filename.
func ForFile(filename string) (Extractor, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".odt":
		return &ODTExtractor{}, nil
	case ".docx":
		return &DOCXExtractor{}, nil
	case ".pdf":
		return &PDFExtractor{}, nil
	case ".html", ".htm":
		return &HTMLExtractor{}, nil
	case ".md", ".markdown":
		return &MarkdownExtractor{}, nil
	case ".txt":
		return &TextExtractor{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext] || ext == ".markdown"
}

// imageFormat derives the canonical image format from a container path.
func imageFormat(path string) string {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if format == "jpg" {
		format = "jpeg"
	}
	if format == "" {
		format = "png"
	}
	return format
}

func textUnit(text string) exam.ContentUnit {
	return exam.ContentUnit{Kind: exam.UnitText, Text: text}
}

func imageUnit(images ...exam.Image) exam.ContentUnit {
	return exam.ContentUnit{Kind: exam.UnitImage, Images: images}
}
