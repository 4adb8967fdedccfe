package cmd

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/muvva-krishna/AI-PPT-Inspector/internal/models"
	"github.com/muvva-krishna/AI-PPT-Inspector/internal/results"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())

	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeTestDeck(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "deck.pptx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create deck: %v", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	w, err := zw.Create("ppt/slides/slide1.xml")
	if err != nil {
		t.Fatalf("Failed to add slide: %v", err)
	}
	_, _ = w.Write([]byte(`<p:sld xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"><a:t>Revenue 2024: $4M</a:t></p:sld>`))
	if err := zw.Close(); err != nil {
		t.Fatalf("Failed to close zip: %v", err)
	}
	return path
}

func TestExtractCommand(t *testing.T) {
	deckPath := writeTestDeck(t)

	out, err := execute(t, "extract", deckPath, "--no-images")
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}

	var deck models.DeckExtraction
	if err := json.Unmarshal([]byte(out), &deck); err != nil {
		t.Fatalf("Output is not JSON: %v\n%s", err, out)
	}
	if len(deck.Slides) != 1 || deck.Slides[0].CombinedText != "Revenue 2024: $4M" {
		t.Errorf("Unexpected extraction: %+v", deck.Slides)
	}
}

func TestReportCommand(t *testing.T) {
	dir := t.TempDir()
	resultsPath := filepath.Join(dir, results.ConsistencyFile)
	result := &models.ConsistencyResult{
		Issues: []models.Issue{
			{Slides: []int{1, 2}, Description: "Revenue differs", Suggestion: "Align the figures"},
		},
		Suggestions: []string{"Add sources"},
	}
	if err := results.SaveConsistency(resultsPath, result); err != nil {
		t.Fatalf("SaveConsistency failed: %v", err)
	}
	transcripts := []models.Transcript{{SlideNumber: 1}, {SlideNumber: 2}}
	if err := results.SaveTranscripts(filepath.Join(dir, results.TranscriptsFile), transcripts); err != nil {
		t.Fatalf("SaveTranscripts failed: %v", err)
	}

	out, err := execute(t, "report", "--results", resultsPath)
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}

	expected := "Detected Issues:\n- Slides 1, 2: Revenue differs\n  Suggestion: Align the figures\n\n\nSuggestions:\n- Add sources\n"
	if out != expected {
		t.Errorf("Report = %q, want %q", out, expected)
	}
}

func TestReportCommandRequiresInput(t *testing.T) {
	if _, err := execute(t, "report"); err == nil {
		t.Error("Expected error without --results or --run")
	}
}

func TestCheckCommandRequiresDeck(t *testing.T) {
	_, err := execute(t, "check")
	if err == nil || !strings.Contains(err.Error(), "--pick") {
		t.Errorf("Expected missing deck error, got %v", err)
	}
}

func TestCheckCommandRejectsFormat(t *testing.T) {
	_, err := execute(t, "check", writeTestDeck(t), "--format", "pdf")
	if err == nil || !strings.Contains(err.Error(), "unknown format") {
		t.Errorf("Expected unknown format error, got %v", err)
	}
}

func TestWatchCommandRejectsFormat(t *testing.T) {
	_, err := execute(t, "watch", "--dir", t.TempDir(), "--format", "pdf")
	if err == nil || !strings.Contains(err.Error(), "unknown format") {
		t.Errorf("Expected unknown format error, got %v", err)
	}
}

func TestHistoryRequiresDatabase(t *testing.T) {
	t.Setenv("DB_URL", "")
	if _, err := execute(t, "history"); err == nil {
		t.Error("Expected error without a database URL")
	}
}
