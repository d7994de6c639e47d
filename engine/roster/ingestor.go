package roster

import (
	"context"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/greetly/greetly/engine/core"
	"github.com/greetly/greetly/engine/dateparse"
)

const (
	nameColumn = 0
	dobColumn  = 1
)

// Config carries the ingestion settings. Passed explicitly so multiple
// ingestors with different sources can coexist in one process.
type Config struct {
	Path string
}

// Ingestor reads the roster spreadsheet and produces validated records.
type Ingestor struct {
	cfg Config
}

func New(cfg Config) *Ingestor {
	return &Ingestor{cfg: cfg}
}

// Ingest opens the configured source and applies the per-row policy.
// Whole-source failures (missing file, unrecognized container, no sheet)
// return an error wrapping core.ErrSourceUnreadable and no partial record
// list. Row-level problems never surface as errors; they come back as
// diagnostics alongside the records that did validate.
func (i *Ingestor) Ingest(ctx context.Context) ([]core.Record, []core.RowDiagnostic, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, core.SourceError("ingestion canceled: %v", err)
	}
	rows, err := readRows(i.cfg.Path)
	if err != nil {
		return nil, nil, err
	}
	records, skipped := buildRecords(rows)
	return records, skipped, nil
}

// readRows dispatches on the container format. The first sheet is the only
// one consumed regardless of how many the workbook holds.
func readRows(path string) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return readXLSX(path)
	case ".xls":
		return readXLS(path)
	default:
		return nil, core.SourceError("unsupported container %q", filepath.Ext(path))
	}
}

// buildRecords walks the sheet top to bottom. Row numbers are 1-based sheet
// positions; a header row is not special-cased, it simply fails validation
// and is skipped like any other malformed row.
func buildRecords(rows [][]string) ([]core.Record, []core.RowDiagnostic) {
	records := make([]core.Record, 0, len(rows))
	var skipped []core.RowDiagnostic
	for idx, row := range rows {
		rowNum := idx + 1
		// A truly empty leading cell models a blank formatting row and is
		// skipped without a diagnostic.
		if len(row) == 0 || row[nameColumn] == "" {
			continue
		}
		name := strings.TrimSpace(row[nameColumn])
		if name == "" {
			skipped = append(skipped, core.RowDiagnostic{Row: rowNum, Reason: core.ReasonMissingName})
			continue
		}
		birthDate, err := dateparse.Normalize(dobCell(row))
		if err != nil {
			skipped = append(skipped, core.RowDiagnostic{Row: rowNum, Name: name, Reason: core.ReasonInvalidDate})
			continue
		}
		records = append(records, core.Record{Name: name, BirthDate: birthDate, Row: rowNum})
	}
	return records, skipped
}

func dobCell(row []string) dateparse.Cell {
	if len(row) <= dobColumn {
		return dateparse.EmptyCell()
	}
	return cellFromString(row[dobColumn])
}

// cellFromString classifies a raw cell string. Raw reads surface
// date-formatted cells as serial numbers, so numeric strings become
// NumberCells and everything else stays text.
func cellFromString(s string) dateparse.Cell {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return dateparse.EmptyCell()
	}
	if n, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return dateparse.NumberCell(n)
	}
	return dateparse.TextCell(trimmed)
}
