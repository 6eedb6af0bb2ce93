package repository

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/fadilmartias/cold-mailer/internal/model"
)

const (
	ColumnTechstack = "Techstack"
	ColumnLinks     = "Links"
)

// PortfolioCSVRepository persists the portfolio backing table as a delimited
// file with the columns Techstack and Links.
type PortfolioCSVRepository struct {
	path string
}

func NewPortfolioCSVRepository(path string) *PortfolioCSVRepository {
	return &PortfolioCSVRepository{path: path}
}

func (r *PortfolioCSVRepository) Path() string {
	return r.path
}

// Load returns an empty table when the file does not exist yet.
func (r *PortfolioCSVRepository) Load() ([]model.PortfolioEntry, error) {
	f, err := os.Open(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Printf("Portfolio file %s not found, starting with an empty portfolio", r.path)
			return []model.PortfolioEntry{}, nil
		}
		return nil, fmt.Errorf("open portfolio: %w", err)
	}
	defer f.Close()

	return ParsePortfolioCSV(f)
}

// Save writes the whole table through a temp file so readers never see a partial file.
func (r *PortfolioCSVRepository) Save(entries []model.PortfolioEntry) error {
	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, ".portfolio-*.csv")
	if err != nil {
		return fmt.Errorf("create temp portfolio: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := WritePortfolioCSV(tmp, entries); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp portfolio: %w", err)
	}
	if err := os.Rename(tmpPath, r.path); err != nil {
		return fmt.Errorf("replace portfolio: %w", err)
	}
	return nil
}

// ParsePortfolioCSV reads a table with a header row naming Techstack and Links.
// Column order does not matter; rows without a link are skipped.
func ParsePortfolioCSV(in io.Reader) ([]model.PortfolioEntry, error) {
	reader := csv.NewReader(in)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return []model.PortfolioEntry{}, nil
		}
		return nil, fmt.Errorf("read portfolio header: %w", err)
	}

	techIdx, linkIdx := -1, -1
	for i, col := range header {
		switch strings.TrimSpace(strings.TrimPrefix(col, "\ufeff")) {
		case ColumnTechstack:
			techIdx = i
		case ColumnLinks:
			linkIdx = i
		}
	}
	if techIdx < 0 || linkIdx < 0 {
		return nil, fmt.Errorf("portfolio must have %q and %q columns, got %v", ColumnTechstack, ColumnLinks, header)
	}

	entries := []model.PortfolioEntry{}
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read portfolio line %d: %w", line, err)
		}

		entry := model.PortfolioEntry{
			Techstack: field(record, techIdx),
			Link:      field(record, linkIdx),
		}
		if err := entry.Validate(); err != nil {
			log.Printf("Skipping portfolio line %d: %v", line, err)
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func WritePortfolioCSV(out io.Writer, entries []model.PortfolioEntry) error {
	w := csv.NewWriter(out)
	if err := w.Write([]string{ColumnTechstack, ColumnLinks}); err != nil {
		return fmt.Errorf("write portfolio header: %w", err)
	}
	for _, e := range entries {
		if err := w.Write([]string{e.Techstack, e.Link}); err != nil {
			return fmt.Errorf("write portfolio row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

func field(record []string, idx int) string {
	if idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}
