package pptx

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strings"
)

const xmlNamespace = "http://www.w3.org/XML/1998/namespace"

var (
	errMarkupAfterRoot = errors.New("markup after the root element")
	errTextOutsideRoot = errors.New("text outside the root element")
)

// docState enforces the document rules encoding/xml leaves to the caller:
// exactly one root element, no text outside it, and every prefix bound.
type docState struct {
	depth      int
	rootClosed bool
	scopes     [][]string
}

func (d *docState) start(el xml.StartElement) error {
	if d.rootClosed {
		return errMarkupAfterRoot
	}

	var declared []string
	for _, attr := range el.Attr {
		if attr.Name.Space == "xmlns" || (attr.Name.Space == "" && attr.Name.Local == "xmlns") {
			declared = append(declared, attr.Value)
		}
	}
	d.scopes = append(d.scopes, declared)
	d.depth++

	if !d.bound(el.Name.Space) {
		return fmt.Errorf("unbound prefix %q on element %s", el.Name.Space, el.Name.Local)
	}
	for _, attr := range el.Attr {
		if attr.Name.Space == "xmlns" {
			continue
		}
		if !d.bound(attr.Name.Space) {
			return fmt.Errorf("unbound prefix %q on attribute %s", attr.Name.Space, attr.Name.Local)
		}
	}
	return nil
}

func (d *docState) end() {
	if d.depth == 0 {
		return
	}
	d.depth--
	d.scopes = d.scopes[:len(d.scopes)-1]
	if d.depth == 0 {
		d.rootClosed = true
	}
}

func (d *docState) charData(c xml.CharData) error {
	if d.depth == 0 && strings.TrimSpace(string(c)) != "" {
		return errTextOutsideRoot
	}
	return nil
}

func (d *docState) sawRoot() bool {
	return d.depth > 0 || d.rootClosed
}

// bound reports whether space is empty or a URI declared by an open element.
// The decoder leaves an undeclared prefix untranslated, so it never matches.
func (d *docState) bound(space string) bool {
	if space == "" || space == xmlNamespace {
		return true
	}
	for _, declared := range d.scopes {
		for _, uri := range declared {
			if uri == space {
				return true
			}
		}
	}
	return false
}
