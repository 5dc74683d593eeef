package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// CSVSource reads the two input tables from CSV files with header rows.
type CSVSource struct {
	caseStudyPath string
	referencePath string
	logger        *slog.Logger
}

// NewCSVSource creates a source reading case studies from caseStudyPath
// and reference material from referencePath.
func NewCSVSource(caseStudyPath, referencePath string) *CSVSource {
	return &CSVSource{
		caseStudyPath: caseStudyPath,
		referencePath: referencePath,
		logger:        slog.Default().With("component", "source"),
	}
}

// CaseStudyRows returns the rows of the case-study table.
func (s *CSVSource) CaseStudyRows(ctx context.Context) ([]Row, error) {
	return s.readFile(ctx, s.caseStudyPath)
}

// ReferenceRows returns the rows of the reference-material table.
func (s *CSVSource) ReferenceRows(ctx context.Context) ([]Row, error) {
	return s.readFile(ctx, s.referencePath)
}

func (s *CSVSource) readFile(ctx context.Context, path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // ragged rows tolerated; short rows read as empty

	header, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%s: %w", path, ErrNoHeader)
	}
	if err != nil {
		return nil, fmt.Errorf("read header %s: %w", path, err)
	}

	var rows []Row
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		row := make(Row, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		rows = append(rows, row)
	}

	s.logger.Debug("loaded table", "path", path, "rows", len(rows))
	return rows, nil
}
