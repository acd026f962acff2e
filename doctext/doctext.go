// CLAUDE:SUMMARY Extraction engine dispatching by format (pdf, html, txt) to yield plain bulletin text.
// Package doctext extracts plain text from basket-price bulletins.
//
// Supported formats:
//   - .pdf   — PDF content-stream text extraction (pure Go, via pdfcpu)
//   - .html  — saved HTML excerpts (paragraphs, lists, table rows)
//   - .txt   — plain text passthrough
//
// Unlike generic document extractors, line structure is preserved: the
// tabular extraction rule downstream anchors on line starts, so table rows
// must come out one per line.
//
// Usage:
//
//	pipe := doctext.New(doctext.Config{})
//	text, err := pipe.Extract(ctx, "/path/to/cesta_202303.pdf")
package doctext

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Format identifies a bulletin document type.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatHTML Format = "html"
	FormatTXT  Format = "txt"
)

// Config configures the extraction pipeline.
type Config struct {
	// MaxFileSize is the maximum file size to process (default: 50 MB).
	MaxFileSize int64 `json:"max_file_size" yaml:"max_file_size"`

	// Logger for debug/error messages.
	Logger *slog.Logger `json:"-" yaml:"-"`
}

func (c *Config) defaults() {
	if c.MaxFileSize <= 0 {
		c.MaxFileSize = 50 * 1024 * 1024
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Pipeline is the bulletin text extraction engine.
type Pipeline struct {
	cfg    Config
	logger *slog.Logger
}

// New creates a Pipeline with the given configuration.
func New(cfg Config) *Pipeline {
	cfg.defaults()
	return &Pipeline{cfg: cfg, logger: cfg.Logger}
}

// Detect returns the document format based on file extension.
func Detect(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return FormatPDF, nil
	case ".html", ".htm":
		return FormatHTML, nil
	case ".txt", ".text":
		return FormatTXT, nil
	default:
		return "", fmt.Errorf("unsupported format: %q", filepath.Ext(path))
	}
}

// Extract reads a document and returns its plain text, lines preserved.
// A document that cannot be read or yields no text is an error; callers
// processing a batch should skip the document and continue.
func (p *Pipeline) Extract(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Size() > p.cfg.MaxFileSize {
		return "", fmt.Errorf("file too large: %d bytes (max %d)", info.Size(), p.cfg.MaxFileSize)
	}

	format, err := Detect(path)
	if err != nil {
		return "", err
	}

	p.logger.Debug("extracting document", "path", path, "format", format)

	var text string
	switch format {
	case FormatPDF:
		text, err = extractPDF(path)
	case FormatHTML:
		text, err = extractHTML(path)
	case FormatTXT:
		text, err = extractText(path)
	}
	if err != nil {
		return "", fmt.Errorf("extract %s (%s): %w", path, format, err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("no text content in %s", path)
	}
	return text, nil
}

// SupportedFormats returns all supported format extensions.
func SupportedFormats() []string {
	return []string{"pdf", "html", "txt"}
}
