package pptx

import (
	"errors"
	"reflect"
	"testing"

	"github.com/muvva-krishna/AI-PPT-Inspector/internal/models"
)

func TestParseSlideText(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		expected []string
	}{
		{
			name:     "runs in document order",
			data:     slideXML(textShape("Revenue", "Q1 growth 10%")),
			expected: []string{"Revenue", "Q1 growth 10%"},
		},
		{
			name:     "trims and drops blank runs",
			data:     slideXML(textShape("  padded  ", "   ", "")),
			expected: []string{"padded"},
		},
		{
			name:     "entities are decoded",
			data:     slideXML(textShape("R&amp;D &lt;2025&gt;")),
			expected: []string{"R&D <2025>"},
		},
		{
			name: "prefix is irrelevant when the URI matches",
			data: `<p:sld xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" xmlns:d="http://schemas.openxmlformats.org/drawingml/2006/main">
<p:cSld><p:spTree><p:sp><p:txBody><d:p><d:r><d:t>Other prefix</d:t></d:r></d:p></p:txBody></p:sp></p:spTree></p:cSld></p:sld>`,
			expected: []string{"Other prefix"},
		},
		{
			name: "runs outside the drawing namespace are ignored",
			data: `<p:sld xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" xmlns:a="urn:example:other">
<p:cSld><a:t>not a text run</a:t></p:cSld></p:sld>`,
			expected: nil,
		},
		{
			name:     "comments after the root are allowed",
			data:     slideXML(textShape("x")) + "\n<!-- saved by an editor -->\n",
			expected: []string{"x"},
		},
		{
			name:     "slide without text",
			data:     slideXML(""),
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseSlide([]byte(tt.data), DefaultNamespaces())
			if result.Degraded {
				t.Fatalf("Unexpected degraded result: %v", result.Err)
			}
			if !reflect.DeepEqual(result.Value.Lines, tt.expected) {
				t.Errorf("Lines = %q, want %q", result.Value.Lines, tt.expected)
			}
		})
	}
}

func TestParseSlideTables(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		expected []models.Table
	}{
		{
			name: "simple table",
			data: slideXML(tableFrame([]string{"A", "B"}, []string{"1", "2"})),
			expected: []models.Table{
				{{"A", "B"}, {"1", "2"}},
			},
		},
		{
			name: "two tables in order",
			data: slideXML(tableFrame([]string{"first"}) + textShape("between") + tableFrame([]string{"second"})),
			expected: []models.Table{
				{{"first"}},
				{{"second"}},
			},
		},
		{
			name:     "table with zero rows is discarded",
			data:     slideXML("<p:graphicFrame><a:graphic><a:graphicData><a:tbl><a:tblGrid/></a:tbl></a:graphicData></a:graphic></p:graphicFrame>"),
			expected: nil,
		},
		{
			name: "cell runs are space joined and empty cells kept",
			data: slideXML(`<p:graphicFrame><a:graphic><a:graphicData><a:tbl>
<a:tr>
  <a:tc><a:txBody><a:p><a:r><a:t> Net </a:t></a:r><a:r><a:t>income</a:t></a:r></a:p></a:txBody></a:tc>
  <a:tc><a:txBody><a:p/></a:txBody></a:tc>
</a:tr>
</a:tbl></a:graphicData></a:graphic></p:graphicFrame>`),
			expected: []models.Table{
				{{"Net income", ""}},
			},
		},
		{
			name: "row without cells is kept",
			data: slideXML(`<p:graphicFrame><a:graphic><a:graphicData><a:tbl><a:tr></a:tr></a:tbl></a:graphicData></a:graphic></p:graphicFrame>`),
			expected: []models.Table{
				{{}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseSlide([]byte(tt.data), DefaultNamespaces())
			if result.Degraded {
				t.Fatalf("Unexpected degraded result: %v", result.Err)
			}
			if !reflect.DeepEqual(result.Value.Tables, tt.expected) {
				t.Errorf("Tables = %q, want %q", result.Value.Tables, tt.expected)
			}
		})
	}
}

func TestParseSlideTableTextInLines(t *testing.T) {
	result := ParseSlide([]byte(slideXML(tableFrame([]string{"A", "B"}, []string{"1", "2"}))), DefaultNamespaces())

	expected := []string{"A", "B", "1", "2"}
	if !reflect.DeepEqual(result.Value.Lines, expected) {
		t.Errorf("Lines = %q, want %q", result.Value.Lines, expected)
	}
}

func TestParseSlideDegraded(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty input", ""},
		{"whitespace only", "   \n"},
		{"truncated markup", `<p:sld xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"><p:cSld>`},
		{"mismatched tags", `<a><b></a>`},
		{"not xml", "this is not markup at all <<<"},
		{"second root element", slideXML(textShape("x")) + "<p:extra/>"},
		{"text after the root", slideXML(textShape("x")) + "trailing"},
		{"text before the root", "stray " + slideXML(textShape("x"))},
		{"undeclared element prefix", `<p:sld xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"><q:t>x</q:t></p:sld>`},
		{"undeclared attribute prefix", `<p:sld xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" q:id="1"/>`},
		{"undeclared prefix on a text run", `<p:sld xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"><a:t>x</a:t></p:sld>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseSlide([]byte(tt.data), DefaultNamespaces())
			if !result.Degraded {
				t.Fatal("Expected degraded result")
			}
			if len(result.Value.Lines) != 0 || len(result.Value.Tables) != 0 {
				t.Errorf("Expected empty content, got %+v", result.Value)
			}

			var malformed *MalformedSlideError
			if !errors.As(result.Err, &malformed) {
				t.Errorf("Expected MalformedSlideError, got %T", result.Err)
			}
		})
	}
}

func TestParseSlideCharset(t *testing.T) {
	data := []byte("<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n" +
		"<p:sld xmlns:p=\"http://schemas.openxmlformats.org/presentationml/2006/main\" xmlns:a=\"http://schemas.openxmlformats.org/drawingml/2006/main\">" +
		"<a:t>Caf\xe9</a:t></p:sld>")

	result := ParseSlide(data, DefaultNamespaces())
	if result.Degraded {
		t.Fatalf("Unexpected degraded result: %v", result.Err)
	}
	if len(result.Value.Lines) != 1 || result.Value.Lines[0] != "Café" {
		t.Errorf("Lines = %q, want [Café]", result.Value.Lines)
	}
}

func TestDefaultNamespacesIsACopy(t *testing.T) {
	ns := DefaultNamespaces()
	ns["a"] = "urn:changed"

	if DefaultNamespaces()["a"] != NSDrawingML {
		t.Error("Mutating a returned map must not affect later calls")
	}
}
