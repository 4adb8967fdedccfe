package report

import (
	"fmt"
	"html"
	"strings"

	"github.com/muvva-krishna/AI-PPT-Inspector/internal/models"
	"github.com/russross/blackfriday/v2"
)

const title = "Deck Consistency Report"

// Markdown renders the report with headings and bullet lists.
func Markdown(result *models.ConsistencyResult, totalSlides int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)

	if result == nil || len(result.Issues) == 0 {
		fmt.Fprintf(&b, "No issues found across %d/%d slides.\n\n", totalSlides, totalSlides)
	} else {
		fmt.Fprintf(&b, "## Detected Issues (%d)\n\n", len(result.Issues))
		for _, issue := range result.Issues {
			fmt.Fprintf(&b, "- **Slides %s:** %s\n", joinSlides(issue.Slides), escapeMarkdown(issue.Description))
			fmt.Fprintf(&b, "  - *Suggestion:* %s\n", escapeMarkdown(issue.Suggestion))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Suggestions\n\n")
	if result != nil {
		for _, s := range result.Suggestions {
			fmt.Fprintf(&b, "- %s\n", escapeMarkdown(s))
		}
	}

	return b.String()
}

// HTML renders the markdown report as a standalone HTML page.
func HTML(result *models.ConsistencyResult, totalSlides int) []byte {
	body := blackfriday.Run([]byte(Markdown(result, totalSlides)))

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(title))
	b.WriteString("</head>\n<body>\n")
	b.Write(body)
	b.WriteString("</body>\n</html>\n")
	return []byte(b.String())
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"<", "&lt;",
)

// escapeMarkdown keeps model text from being read as emphasis or raw HTML.
func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
