// Package loader reads raw tabular input files for the analysis engine.
// All file and format concerns live here; the engine only sees RawTables.
package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/wellcrafted/reawaken/internal/model"
)

// SalesPreambleRows is the number of non-data banner lines at the top of the
// sales export before the real header row.
const SalesPreambleRows = 2

// CSVLoader implements service.RowLoader for CSV files.
type CSVLoader struct{}

// NewCSVLoader creates a CSV loader.
func NewCSVLoader() *CSVLoader {
	return &CSVLoader{}
}

// LoadSales reads a sales export CSV, skipping the report preamble.
func (l *CSVLoader) LoadSales(path string) (model.RawTable, error) {
	return loadFile(path, SalesPreambleRows)
}

// LoadPlanning reads a planning table CSV. The first line is the header.
func (l *CSVLoader) LoadPlanning(path string) (model.RawTable, error) {
	return loadFile(path, 0)
}

func loadFile(path string, skip int) (model.RawTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.RawTable{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	table, err := ReadTable(f, skip)
	if err != nil {
		return model.RawTable{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return table, nil
}

// ReadTable parses CSV data into a RawTable, skipping the given number of
// leading lines before treating the next line as the header. Ragged rows are
// tolerated; the engine treats missing cells as empty.
func ReadTable(r io.Reader, skip int) (model.RawTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	for i := 0; i < skip; i++ {
		if _, err := reader.Read(); err != nil {
			if err == io.EOF {
				return model.RawTable{}, nil
			}
			return model.RawTable{}, fmt.Errorf("failed to skip preamble: %w", err)
		}
	}

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return model.RawTable{}, nil
		}
		return model.RawTable{}, fmt.Errorf("failed to read header: %w", err)
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return model.RawTable{}, fmt.Errorf("failed to read row: %w", err)
		}
		rows = append(rows, row)
	}

	return model.RawTable{Columns: header, Rows: rows}, nil
}
