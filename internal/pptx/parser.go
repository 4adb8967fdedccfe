package pptx

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"github.com/muvva-krishna/AI-PPT-Inspector/internal/models"
	"golang.org/x/net/html/charset"
)

// XML namespaces used in slide parts and their relationship manifests.
const (
	NSDrawingML      = "http://schemas.openxmlformats.org/drawingml/2006/main"
	NSPresentationML = "http://schemas.openxmlformats.org/presentationml/2006/main"
	NSRelationships  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
)

var errNoRootElement = errors.New("no root element found")

// Namespaces maps markup prefixes to namespace URIs. The parser reads "a" for
// text runs and tables and "r" for relationship attributes.
type Namespaces map[string]string

// DefaultNamespaces returns a fresh copy of the standard PresentationML prefixes.
func DefaultNamespaces() Namespaces {
	return Namespaces{
		"a": NSDrawingML,
		"p": NSPresentationML,
		"r": NSRelationships,
	}
}

// SlideContent is the text and table content of one slide.
type SlideContent struct {
	Lines  []string
	Tables []models.Table
}

// ParseResult carries the parsed content and whether it was degraded to
// empty because the markup could not be parsed. Err holds the
// *MalformedSlideError for degraded results.
type ParseResult struct {
	Value    SlideContent
	Degraded bool
	Err      error
}

// ParseSlide extracts text runs and tables from slide markup. It never fails:
// unparseable markup yields an empty, degraded result.
func ParseSlide(data []byte, ns Namespaces) ParseResult {
	content, err := parseSlide(data, ns)
	if err != nil {
		return ParseResult{Degraded: true, Err: &MalformedSlideError{Err: err}}
	}
	return ParseResult{Value: content}
}

type tableBuilder struct {
	rows      []models.Row
	row       models.Row
	inRow     bool
	cell      []string
	cellDepth int
}

func newDecoder(data []byte) *xml.Decoder {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = charset.NewReaderLabel
	return dec
}

func parseSlide(data []byte, ns Namespaces) (SlideContent, error) {
	dml := ns["a"]
	dec := newDecoder(data)

	var (
		content SlideContent
		all     []*tableBuilder
		open    []*tableBuilder
		doc     docState
	)

	top := func() *tableBuilder {
		if len(open) == 0 {
			return nil
		}
		return open[len(open)-1]
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return SlideContent{}, err
		}

		switch el := tok.(type) {
		case xml.StartElement:
			if err := doc.start(el); err != nil {
				return SlideContent{}, err
			}
			if el.Name.Space != dml {
				continue
			}

			switch el.Name.Local {
			case "t":
				var text string
				if err := dec.DecodeElement(&text, &el); err != nil {
					return SlideContent{}, err
				}
				doc.end()
				if trimmed := strings.TrimSpace(text); trimmed != "" {
					content.Lines = append(content.Lines, trimmed)
				}
				if text == "" {
					continue
				}
				for _, tb := range open {
					if tb.cellDepth > 0 {
						tb.cell = append(tb.cell, strings.TrimSpace(text))
					}
				}

			case "tbl":
				tb := &tableBuilder{}
				all = append(all, tb)
				open = append(open, tb)

			case "tr":
				if tb := top(); tb != nil {
					tb.row = models.Row{}
					tb.inRow = true
				}

			case "tc":
				if tb := top(); tb != nil && tb.inRow {
					if tb.cellDepth == 0 {
						tb.cell = nil
					}
					tb.cellDepth++
				}
			}

		case xml.CharData:
			if err := doc.charData(el); err != nil {
				return SlideContent{}, err
			}

		case xml.EndElement:
			doc.end()
			if el.Name.Space != dml {
				continue
			}

			switch el.Name.Local {
			case "tc":
				if tb := top(); tb != nil && tb.cellDepth > 0 {
					tb.cellDepth--
					if tb.cellDepth == 0 && tb.inRow {
						tb.row = append(tb.row, strings.Join(tb.cell, " "))
					}
				}

			case "tr":
				if tb := top(); tb != nil && tb.inRow {
					tb.rows = append(tb.rows, tb.row)
					tb.inRow = false
				}

			case "tbl":
				if len(open) > 0 {
					open = open[:len(open)-1]
				}
			}
		}
	}

	if !doc.sawRoot() {
		return SlideContent{}, errNoRootElement
	}

	for _, tb := range all {
		if len(tb.rows) > 0 {
			content.Tables = append(content.Tables, models.Table(tb.rows))
		}
	}

	return content, nil
}
