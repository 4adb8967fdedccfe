package pptx

import (
	"encoding/base64"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/muvva-krishna/AI-PPT-Inspector/internal/models"
)

// ResolveMedia returns the base64 text of every media part referenced by the
// slide's relationship manifest, in manifest order. A missing manifest yields
// a *MissingManifestError and a malformed one a wrapped parse error; both mean
// zero images. Unreadable or absent media parts are skipped one by one.
func ResolveMedia(a *Archive, slideBase string, ns Namespaces) ([]models.EncodedImage, error) {
	return resolveMedia(a, slideBase, ns, slog.Default())
}

func resolveMedia(a *Archive, slideBase string, ns Namespaces, logger *slog.Logger) ([]models.EncodedImage, error) {
	manifest := manifestPath(slideBase)
	if !a.Has(manifest) {
		return nil, &MissingManifestError{Manifest: manifest}
	}

	data, err := a.ReadFile(manifest)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", manifest, err)
	}

	targets, err := relationshipTargets(data, ns)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", manifest, err)
	}

	var images []models.EncodedImage
	for _, target := range targets {
		if !strings.HasPrefix(target, mediaTargetPrefix) {
			continue
		}

		part := mediaDir + path.Base(target)
		img, err := readMedia(a, part)
		if err != nil {
			logger.Debug("Skipping media part", "slide", slideBase, "error", err)
			continue
		}
		images = append(images, img)
	}

	return images, nil
}

func readMedia(a *Archive, part string) (models.EncodedImage, error) {
	if !a.Has(part) {
		return "", &MissingMediaError{Part: part}
	}
	data, err := a.ReadFile(part)
	if err != nil {
		return "", &MissingMediaError{Part: part, Err: err}
	}
	return models.EncodedImage(base64.StdEncoding.EncodeToString(data)), nil
}

// relationshipTargets walks every element of the manifest and collects its
// Target attribute, namespaced or not. The whole document must parse before
// any target is returned.
func relationshipTargets(data []byte, ns Namespaces) ([]string, error) {
	dec := newDecoder(data)
	rel := ns["r"]

	var (
		targets []string
		doc     docState
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch el := tok.(type) {
		case xml.StartElement:
			if err := doc.start(el); err != nil {
				return nil, err
			}
			if target, found := targetAttr(el, rel); found {
				targets = append(targets, target)
			}
		case xml.EndElement:
			doc.end()
		case xml.CharData:
			if err := doc.charData(el); err != nil {
				return nil, err
			}
		}
	}

	if !doc.sawRoot() {
		return nil, errNoRootElement
	}
	return targets, nil
}

func targetAttr(el xml.StartElement, rel string) (string, bool) {
	for _, attr := range el.Attr {
		if attr.Name.Local == "Target" && attr.Name.Space == rel && rel != "" {
			return attr.Value, true
		}
	}
	for _, attr := range el.Attr {
		if attr.Name.Local == "Target" && attr.Name.Space == "" {
			return attr.Value, true
		}
	}
	return "", false
}
