package pptx

import (
	"encoding/base64"
	"errors"
	"reflect"
	"testing"

	"github.com/muvva-krishna/AI-PPT-Inspector/internal/models"
)

func encoded(s string) models.EncodedImage {
	return models.EncodedImage(base64.StdEncoding.EncodeToString([]byte(s)))
}

func TestResolveMedia(t *testing.T) {
	tests := []struct {
		name     string
		entries  []zipEntry
		expected []models.EncodedImage
	}{
		{
			name: "images in manifest order",
			entries: []zipEntry{
				{"ppt/slides/_rels/slide1.xml.rels", relsXML("../media/image2.png", "../media/image1.jpeg")},
				{"ppt/media/image1.jpeg", "jpeg-bytes"},
				{"ppt/media/image2.png", "png-bytes"},
			},
			expected: []models.EncodedImage{encoded("png-bytes"), encoded("jpeg-bytes")},
		},
		{
			name: "non-media targets are ignored",
			entries: []zipEntry{
				{"ppt/slides/_rels/slide1.xml.rels", relsXML("../slideLayouts/slideLayout1.xml", "../notesSlides/notesSlide1.xml", "../media/image1.png")},
				{"ppt/media/image1.png", "png-bytes"},
			},
			expected: []models.EncodedImage{encoded("png-bytes")},
		},
		{
			name: "missing media parts are skipped",
			entries: []zipEntry{
				{"ppt/slides/_rels/slide1.xml.rels", relsXML("../media/missing.png", "../media/image1.png")},
				{"ppt/media/image1.png", "png-bytes"},
			},
			expected: []models.EncodedImage{encoded("png-bytes")},
		},
		{
			name: "manifest pointing only to missing media",
			entries: []zipEntry{
				{"ppt/slides/_rels/slide1.xml.rels", relsXML("../media/image9.png")},
			},
			expected: nil,
		},
		{
			name: "namespaced target attribute",
			entries: []zipEntry{
				{"ppt/slides/_rels/slide1.xml.rels", `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
<Relationship Id="rId1" r:Target="../media/image1.png"/></Relationships>`},
				{"ppt/media/image1.png", "png-bytes"},
			},
			expected: []models.EncodedImage{encoded("png-bytes")},
		},
		{
			name: "nested media path resolves by base name",
			entries: []zipEntry{
				{"ppt/slides/_rels/slide1.xml.rels", relsXML("../media/sub/image1.png")},
				{"ppt/media/image1.png", "png-bytes"},
			},
			expected: []models.EncodedImage{encoded("png-bytes")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := Open(writeDeck(t, tt.entries...))
			if err != nil {
				t.Fatalf("Open failed: %v", err)
			}
			defer a.Close()

			images, err := ResolveMedia(a, "slide1.xml", DefaultNamespaces())
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !reflect.DeepEqual(images, tt.expected) {
				t.Errorf("Images = %v, want %v", images, tt.expected)
			}
		})
	}
}

func TestResolveMediaMissingManifest(t *testing.T) {
	a, err := Open(writeDeck(t, zipEntry{"ppt/media/image1.png", "png-bytes"}))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer a.Close()

	images, err := ResolveMedia(a, "slide1.xml", DefaultNamespaces())
	if len(images) != 0 {
		t.Errorf("Expected no images, got %d", len(images))
	}

	var missing *MissingManifestError
	if !errors.As(err, &missing) {
		t.Fatalf("Expected MissingManifestError, got %v", err)
	}
	if missing.Manifest != "ppt/slides/_rels/slide1.xml.rels" {
		t.Errorf("Unexpected manifest path %s", missing.Manifest)
	}
}

func TestResolveMediaMalformedManifest(t *testing.T) {
	a, err := Open(writeDeck(t,
		zipEntry{"ppt/slides/_rels/slide1.xml.rels", `<Relationships><Relationship Target="../media/image1.png"/>`},
		zipEntry{"ppt/media/image1.png", "png-bytes"},
	))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer a.Close()

	images, err := ResolveMedia(a, "slide1.xml", DefaultNamespaces())
	if err == nil {
		t.Error("Expected error for malformed manifest")
	}
	if len(images) != 0 {
		t.Errorf("Expected no images from a malformed manifest, got %d", len(images))
	}
}

func TestResolveMediaRejectsTrailingMarkup(t *testing.T) {
	a, err := Open(writeDeck(t,
		zipEntry{"ppt/slides/_rels/slide1.xml.rels", relsXML("../media/image1.png") + "<Relationships/>"},
		zipEntry{"ppt/media/image1.png", "png-bytes"},
	))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer a.Close()

	images, err := ResolveMedia(a, "slide1.xml", DefaultNamespaces())
	if err == nil {
		t.Error("Expected error for a manifest with two root elements")
	}
	if len(images) != 0 {
		t.Errorf("Expected no images, got %d", len(images))
	}
}
