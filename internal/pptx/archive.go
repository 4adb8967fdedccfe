// Package pptx extracts slide text, tables, and embedded images from
// Office Open XML presentation packages without rendering them.
package pptx

import (
	"archive/zip"
	"fmt"
	"io"
	"math"
	"os"
	"path"
	"sort"
	"strconv"
	"strings"
)

const (
	slidesDir         = "ppt/slides/"
	slidePrefix       = "ppt/slides/slide"
	relsDir           = "ppt/slides/_rels/"
	mediaDir          = "ppt/media/"
	mediaTargetPrefix = "../media/"
)

// Archive is an open presentation package.
type Archive struct {
	zr    *zip.ReadCloser
	files map[string]*zip.File
}

// Open opens the package at filename. A missing path yields ErrNotFound;
// any other failure means the container itself is unusable.
func Open(filename string) (*Archive, error) {
	if _, err := os.Stat(filename); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, filename)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", filename, err)
	}

	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArchive, err)
	}

	files := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		// first entry wins when a broken archive repeats a name
		if _, exists := files[f.Name]; !exists {
			files[f.Name] = f
		}
	}

	return &Archive{zr: zr, files: files}, nil
}

// Close releases the underlying file handle. It is safe to call more than once.
func (a *Archive) Close() error {
	if a.zr != nil {
		err := a.zr.Close()
		a.zr = nil
		return err
	}
	return nil
}

// Has reports whether the archive contains an entry with the exact name.
func (a *Archive) Has(name string) bool {
	_, ok := a.files[name]
	return ok
}

// ReadFile returns the content of one archive entry.
func (a *Archive) ReadFile(name string) ([]byte, error) {
	f, ok := a.files[name]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// SlideParts lists the slide parts in ascending slide-number order.
func (a *Archive) SlideParts() []string {
	var parts []string
	for _, f := range a.zr.File {
		if isSlidePart(f.Name) {
			parts = append(parts, f.Name)
		}
	}

	sort.SliceStable(parts, func(i, j int) bool {
		return SlideNumber(parts[i]) < SlideNumber(parts[j])
	})
	return parts
}

// isSlidePart matches ppt/slides/slide*.xml directly inside the slides directory.
func isSlidePart(name string) bool {
	if !strings.HasPrefix(name, slidePrefix) || !strings.HasSuffix(name, ".xml") {
		return false
	}
	return !strings.Contains(strings.TrimPrefix(name, slidesDir), "/")
}

// SlideNumber concatenates every digit of the base filename, so
// "slide10.xml" is 10 and "slide.xml" is 0. Digit runs too long for an int
// clamp to math.MaxInt.
func SlideNumber(name string) int {
	var digits strings.Builder
	for _, r := range path.Base(name) {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil {
		// only a range error is possible for a digits-only string
		return math.MaxInt
	}
	return n
}

// manifestPath returns the relationship manifest for a slide base name.
func manifestPath(slideBase string) string {
	return relsDir + slideBase + ".rels"
}
