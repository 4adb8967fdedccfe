// Package report renders consistency results for people: the plain-text
// report, plus markdown, HTML, and DOCX variants of the same content.
package report

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/muvva-krishna/AI-PPT-Inspector/internal/models"
)

// Supported output formats.
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
	FormatDOCX     = "docx"
)

// Formats lists every format WriteFile accepts.
var Formats = []string{FormatText, FormatMarkdown, FormatHTML, FormatDOCX}

// ValidFormat reports whether WriteFile accepts format. Empty means text.
func ValidFormat(format string) bool {
	return format == "" || slices.Contains(Formats, format)
}

// DefaultFilename returns the report file name used when no output path is given.
func DefaultFilename(format string) string {
	switch format {
	case FormatMarkdown:
		return "report.md"
	case FormatHTML:
		return "report.html"
	case FormatDOCX:
		return "report.docx"
	default:
		return "reports.txt"
	}
}

// WriteText writes the plain-text report. A nil result is treated as having
// neither issues nor suggestions.
func WriteText(w io.Writer, result *models.ConsistencyResult, totalSlides int) error {
	bw := bufio.NewWriter(w)

	if result == nil || len(result.Issues) == 0 {
		fmt.Fprintf(bw, "No issues found across %d/%d slides.\n\n", totalSlides, totalSlides)
	} else {
		bw.WriteString("Detected Issues:\n")
		for _, issue := range result.Issues {
			fmt.Fprintf(bw, "- Slides %s: %s\n", joinSlides(issue.Slides), issue.Description)
			fmt.Fprintf(bw, "  Suggestion: %s\n\n", issue.Suggestion)
		}
	}

	bw.WriteString("\nSuggestions:\n")
	if result != nil {
		for _, s := range result.Suggestions {
			fmt.Fprintf(bw, "- %s\n", s)
		}
	}

	return bw.Flush()
}

// Text returns the plain-text report as a string.
func Text(result *models.ConsistencyResult, totalSlides int) string {
	var buf bytes.Buffer
	_ = WriteText(&buf, result, totalSlides)
	return buf.String()
}

// WriteFile renders result in format and writes it to path.
func WriteFile(path, format string, result *models.ConsistencyResult, totalSlides int) error {
	switch format {
	case "", FormatText:
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create report: %w", err)
		}
		if err := WriteText(f, result, totalSlides); err != nil {
			f.Close()
			return fmt.Errorf("failed to write report: %w", err)
		}
		return f.Close()
	case FormatMarkdown:
		return writeBytes(path, []byte(Markdown(result, totalSlides)))
	case FormatHTML:
		return writeBytes(path, HTML(result, totalSlides))
	case FormatDOCX:
		return WriteDOCX(path, result, totalSlides)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func writeBytes(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func joinSlides(slides []int) string {
	parts := make([]string, len(slides))
	for i, n := range slides {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}
