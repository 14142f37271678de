package sheets

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Workbook is the first worksheet of a local .xlsx file. Every UpdateRange saves the
// file, so a run that fails partway leaves the earlier rows on disk.
type Workbook struct {
	file  *excelize.File
	sheet string
}

// OpenWorkbook opens an existing .xlsx file
func OpenWorkbook(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}

	names := f.GetSheetList()
	if len(names) == 0 {
		f.Close()
		return nil, fmt.Errorf("%w: %s", ErrNoWorksheet, path)
	}

	return &Workbook{file: f, sheet: names[0]}, nil
}

func (w *Workbook) Records(ctx context.Context) ([]map[string]string, error) {
	rows, err := w.file.GetRows(w.sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read worksheet %q: %w", w.sheet, err)
	}
	records, err := recordsFromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("worksheet %q: %w", w.sheet, err)
	}
	return records, nil
}

func (w *Workbook) UpdateRange(ctx context.Context, a1Range string, values []interface{}) error {
	start, _, _ := strings.Cut(a1Range, ":")
	if _, _, err := excelize.CellNameToCoordinates(start); err != nil {
		return fmt.Errorf("invalid range %q: %w", a1Range, err)
	}

	if err := w.file.SetSheetRow(w.sheet, start, &values); err != nil {
		return fmt.Errorf("failed to update %s: %w", a1Range, err)
	}
	if err := w.file.Save(); err != nil {
		return fmt.Errorf("failed to save workbook after %s: %w", a1Range, err)
	}
	return nil
}

func (w *Workbook) Close() error {
	return w.file.Close()
}
