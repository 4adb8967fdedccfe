package models

import (
	"encoding/base64"
	"net/http"
	"strings"
	"time"
)

// Row is one table row; each cell holds the space-joined text runs of that cell.
type Row []string

// Table is an ordered list of rows as they appear in the slide markup.
type Table []Row

// EncodedImage is the standard base64 text of one embedded media part.
type EncodedImage string

// MIMEType sniffs the decoded header bytes and falls back to image/png.
func (e EncodedImage) MIMEType() string {
	head := string(e)
	if len(head) > 64 {
		head = head[:64]
	}
	data, err := base64.StdEncoding.DecodeString(head)
	if err != nil || len(data) == 0 {
		return "image/png"
	}
	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return "image/png"
	}
	return mime
}

// Bytes returns the decoded image content.
func (e EncodedImage) Bytes() ([]byte, error) {
	return base64.StdEncoding.DecodeString(string(e))
}

// SlideRecord holds everything extracted from a single slide part
type SlideRecord struct {
	SlideNumber  int            `json:"slide_number"`
	RawTextLines []string       `json:"texts"`
	CombinedText string         `json:"slide_text"`
	Tables       []Table        `json:"tables"`
	Images       []EncodedImage `json:"images_b64"`
}

// DeckExtraction is the per-deck result, ordered ascending by slide number
type DeckExtraction struct {
	Slides []SlideRecord `json:"slides"`
}

// Transcript is the normalized text the model produced for one slide
type Transcript struct {
	SlideNumber int    `json:"slide_number"`
	SlideText   string `json:"slide_text"`
}

// Issue is one problem reported by the consistency check
type Issue struct {
	Slides      []int  `json:"slides"`
	Description string `json:"description"`
	Suggestion  string `json:"suggestion"`
}

// ConsistencyResult is the structured output of the cross-slide check
type ConsistencyResult struct {
	Issues      []Issue  `json:"issues"`
	Suggestions []string `json:"suggestions"`
}

// Run records one end-to-end check of a deck
type Run struct {
	ID          string             `json:"id"`
	DeckPath    string             `json:"deck_path"`
	Provider    string             `json:"provider,omitempty"`
	Model       string             `json:"model,omitempty"`
	TotalSlides int                `json:"total_slides"`
	Transcripts []Transcript       `json:"transcripts"`
	Result      *ConsistencyResult `json:"result,omitempty"`
	ReportPath  string             `json:"report_path,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

// IssueCount returns the number of detected issues, zero when the check has not run.
func (r *Run) IssueCount() int {
	if r == nil || r.Result == nil {
		return 0
	}
	return len(r.Result.Issues)
}
