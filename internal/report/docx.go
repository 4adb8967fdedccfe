package report

import (
	"fmt"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
	"github.com/muvva-krishna/AI-PPT-Inspector/internal/models"
)

const (
	fontName = "Calibri"
	fontSize = 11
)

// WriteDOCX saves the report as a Word document.
func WriteDOCX(path string, result *models.ConsistencyResult, totalSlides int) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}

	addRun(doc.AddParagraph(""), title, true, 16)

	if result == nil || len(result.Issues) == 0 {
		addRun(doc.AddParagraph(""), fmt.Sprintf("No issues found across %d/%d slides.", totalSlides, totalSlides), false, fontSize)
	} else {
		addRun(doc.AddParagraph(""), "Detected Issues", true, 14)
		for _, issue := range result.Issues {
			p := doc.AddParagraph("")
			addRun(p, "Slides "+joinSlides(issue.Slides)+": ", true, fontSize)
			addRun(p, issue.Description, false, fontSize)
			addRun(doc.AddParagraph(""), "Suggestion: "+issue.Suggestion, false, fontSize)
		}
	}

	addRun(doc.AddParagraph(""), "Suggestions", true, 14)
	if result != nil {
		for _, s := range result.Suggestions {
			addRun(doc.AddParagraph(""), "• "+s, false, fontSize)
		}
	}

	if err := doc.SaveTo(path); err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}
	return nil
}

func addRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}
