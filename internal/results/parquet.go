package results

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/muvva-krishna/AI-PPT-Inspector/internal/models"
	"github.com/parquet-go/parquet-go"
)

// SlideRow is one slide in the parquet export
type SlideRow struct {
	SlideNumber int      `json:"slide_number" parquet:"slide_number"`
	Texts       []string `json:"texts" parquet:"texts,list"`
	SlideText   string   `json:"slide_text" parquet:"slide_text"`
	Transcript  string   `json:"transcript" parquet:"transcript"`
	TableCount  int      `json:"table_count" parquet:"table_count"`
	ImageCount  int      `json:"image_count" parquet:"image_count"`
}

// SlideRows joins each extracted slide with its transcript by slide number.
func SlideRows(deck *models.DeckExtraction, transcripts []models.Transcript) []SlideRow {
	byNumber := make(map[int]string, len(transcripts))
	for _, t := range transcripts {
		byNumber[t.SlideNumber] = t.SlideText
	}

	rows := make([]SlideRow, 0, len(deck.Slides))
	for _, s := range deck.Slides {
		texts := s.RawTextLines
		if texts == nil {
			texts = []string{}
		}
		rows = append(rows, SlideRow{
			SlideNumber: s.SlideNumber,
			Texts:       texts,
			SlideText:   s.CombinedText,
			Transcript:  byNumber[s.SlideNumber],
			TableCount:  len(s.Tables),
			ImageCount:  len(s.Images),
		})
	}
	return rows
}

// SaveParquet writes one row per slide to path.
func SaveParquet(path string, deck *models.DeckExtraction, transcripts []models.Transcript) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create parquet file: %w", err)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[SlideRow](file)
	if _, err := writer.Write(SlideRows(deck, transcripts)); err != nil {
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}

	return file.Close()
}

// LoadParquet reads every row of a file written by SaveParquet.
func LoadParquet(path string) ([]SlideRow, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	slog.Debug("Parquet file opened successfully", "num_rows", pf.NumRows(), "num_row_groups", len(pf.RowGroups()))

	reader := parquet.NewGenericReader[SlideRow](pf)
	defer reader.Close()

	var records []SlideRow
	for {
		// fresh batch each time so list columns are not overwritten
		rows := make([]SlideRow, 128)
		n, err := reader.Read(rows)
		records = append(records, rows[:n]...)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read parquet rows: %w", err)
		}
	}

	return records, nil
}
