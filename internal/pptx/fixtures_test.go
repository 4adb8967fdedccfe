package pptx

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type zipEntry struct {
	name    string
	content string
}

// writeZipFile writes a file into a zip archive.
func writeZipFile(t *testing.T, zw *zip.Writer, name, content string) {
	t.Helper()
	w, err := zw.Create(name)
	if err != nil {
		t.Fatalf("Failed to create %s in zip: %v", name, err)
	}
	if _, err := w.Write([]byte(content)); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
}

// writeDeck writes the entries, in order, to a .pptx file in a temp dir.
func writeDeck(t *testing.T, entries ...zipEntry) string {
	t.Helper()

	filename := filepath.Join(t.TempDir(), "deck.pptx")
	f, err := os.Create(filename)
	if err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, e := range entries {
		writeZipFile(t, zw, e.name, e.content)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Failed to close zip writer: %v", err)
	}

	return filename
}

// slideXML wraps shape markup in a p:sld root with the standard prefixes.
func slideXML(body string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sld xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
  <p:cSld><p:spTree>` + body + `</p:spTree></p:cSld>
</p:sld>`
}

// textShape returns a shape with one paragraph per run.
func textShape(runs ...string) string {
	var b strings.Builder
	b.WriteString("<p:sp><p:txBody><a:bodyPr/>")
	for _, r := range runs {
		fmt.Fprintf(&b, "<a:p><a:r><a:t>%s</a:t></a:r></a:p>", r)
	}
	b.WriteString("</p:txBody></p:sp>")
	return b.String()
}

// tableFrame returns a graphic frame holding one table of the given cells.
func tableFrame(rows ...[]string) string {
	var b strings.Builder
	b.WriteString("<p:graphicFrame><a:graphic><a:graphicData><a:tbl><a:tblGrid/>")
	for _, row := range rows {
		b.WriteString("<a:tr>")
		for _, cell := range row {
			fmt.Fprintf(&b, "<a:tc><a:txBody><a:p><a:r><a:t>%s</a:t></a:r></a:p></a:txBody></a:tc>", cell)
		}
		b.WriteString("</a:tr>")
	}
	b.WriteString("</a:tbl></a:graphicData></a:graphic></p:graphicFrame>")
	return b.String()
}

// relsXML returns a relationship manifest with one entry per target.
func relsXML(targets ...string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	for i, target := range targets {
		fmt.Fprintf(&b, `<Relationship Id="rId%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="%s"/>`, i+1, target)
	}
	b.WriteString("</Relationships>")
	return b.String()
}
