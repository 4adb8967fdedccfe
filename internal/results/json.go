// Package results persists extraction output, transcripts, and
// consistency results so runs can be inspected or re-reported later.
package results

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/muvva-krishna/AI-PPT-Inspector/internal/models"
)

// Default file names written next to the deck.
const (
	TranscriptsFile = "extracted_slides.json"
	ConsistencyFile = "consistency.json"
)

type transcriptsFile struct {
	Slides []models.Transcript `json:"slides"`
}

// SaveTranscripts writes {"slides": [...]} as indented JSON.
func SaveTranscripts(path string, transcripts []models.Transcript) error {
	if transcripts == nil {
		transcripts = []models.Transcript{}
	}
	return writeJSON(path, transcriptsFile{Slides: transcripts})
}

// LoadTranscripts reads a file written by SaveTranscripts.
func LoadTranscripts(path string) ([]models.Transcript, error) {
	var f transcriptsFile
	if err := readJSON(path, &f); err != nil {
		return nil, err
	}
	return f.Slides, nil
}

// SaveDeck writes the full extraction, including base64 images, as indented JSON.
func SaveDeck(path string, deck *models.DeckExtraction) error {
	return writeJSON(path, deck)
}

// LoadDeck reads a file written by SaveDeck.
func LoadDeck(path string) (*models.DeckExtraction, error) {
	var deck models.DeckExtraction
	if err := readJSON(path, &deck); err != nil {
		return nil, err
	}
	return &deck, nil
}

// SaveConsistency writes the consistency result as indented JSON.
func SaveConsistency(path string, result *models.ConsistencyResult) error {
	return writeJSON(path, result)
}

// LoadConsistency reads a file written by SaveConsistency.
func LoadConsistency(path string) (*models.ConsistencyResult, error) {
	var result models.ConsistencyResult
	if err := readJSON(path, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}
