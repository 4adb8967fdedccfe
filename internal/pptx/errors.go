package pptx

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by Open and Extract when the deck path does not exist.
var ErrNotFound = errors.New("pptx file not found")

// ErrInvalidArchive is returned when the file exists but is not a readable ZIP container.
var ErrInvalidArchive = errors.New("opening ZIP archive")

// MalformedSlideError reports a slide part whose markup could not be parsed.
// The pipeline recovers from it by treating the slide as empty.
type MalformedSlideError struct {
	Part string
	Err  error
}

func (e *MalformedSlideError) Error() string {
	if e.Part == "" {
		return fmt.Sprintf("malformed slide markup: %v", e.Err)
	}
	return fmt.Sprintf("malformed slide markup in %s: %v", e.Part, e.Err)
}

func (e *MalformedSlideError) Unwrap() error { return e.Err }

// MissingManifestError reports a slide without a relationship manifest.
type MissingManifestError struct {
	Manifest string
}

func (e *MissingManifestError) Error() string {
	return fmt.Sprintf("relationship manifest not found: %s", e.Manifest)
}

// MissingMediaError reports a relationship target that is absent from the archive
// or could not be read.
type MissingMediaError struct {
	Part string
	Err  error
}

func (e *MissingMediaError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("media part %s unreadable: %v", e.Part, e.Err)
	}
	return fmt.Sprintf("media part not found: %s", e.Part)
}

func (e *MissingMediaError) Unwrap() error { return e.Err }
