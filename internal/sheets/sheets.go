// Package sheets reads and writes the first worksheet of a spreadsheet, either a
// Google Sheets document or a local .xlsx workbook.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"
	sheetsapi "google.golang.org/api/sheets/v4"
)

var (
	ErrNoWorksheet      = errors.New("spreadsheet has no worksheets")
	ErrInvalidReference = errors.New("invalid spreadsheet reference")
	ErrDuplicateHeader  = errors.New("worksheet has duplicate header")
)

// Worksheet is the first worksheet of an opened spreadsheet
type Worksheet interface {
	// Records returns every row below the header row keyed by header name
	Records(ctx context.Context) ([]map[string]string, error)
	// UpdateRange writes one row of values into an A1 range such as "A2:D2"
	UpdateRange(ctx context.Context, a1Range string, values []interface{}) error
	Close() error
}

var spreadsheetIDPattern = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9_-]+)`)

// SpreadsheetID extracts the document ID from a Google Sheets URL. A reference with
// no slashes is taken to be an ID already.
func SpreadsheetID(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if m := spreadsheetIDPattern.FindStringSubmatch(ref); m != nil {
		return m[1], nil
	}
	if ref != "" && !strings.Contains(ref, "/") {
		return ref, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidReference, ref)
}

// IsLocalWorkbook reports whether ref names a local .xlsx file
func IsLocalWorkbook(ref string) bool {
	return strings.HasSuffix(strings.ToLower(strings.TrimSpace(ref)), ".xlsx")
}

// RowRange returns the A1 range covering columns 1..columns of one row, e.g. "A2:D2"
func RowRange(row, columns int) (string, error) {
	start, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return "", err
	}
	end, err := excelize.CoordinatesToCellName(columns, row)
	if err != nil {
		return "", err
	}
	return start + ":" + end, nil
}

// recordsFromRows turns a header row plus data rows into header-keyed records.
// Rows shorter than the header are padded with "", and columns with an empty header
// are dropped. Two columns with the same non-empty header are an error.
func recordsFromRows(rows [][]string) ([]map[string]string, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	headers := rows[0]
	seen := make(map[string]bool, len(headers))
	for _, header := range headers {
		if header == "" {
			continue
		}
		if seen[header] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateHeader, header)
		}
		seen[header] = true
	}

	records := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := make(map[string]string, len(headers))
		for i, header := range headers {
			if header == "" {
				continue
			}
			if i < len(row) {
				record[header] = row[i]
			} else {
				record[header] = ""
			}
		}
		records = append(records, record)
	}
	return records, nil
}

// Opener opens spreadsheets by reference. The Google Sheets service is created on
// first use from the service-account credential file.
type Opener struct {
	credentialsFile string
	service         *sheetsapi.Service
}

func NewOpener(credentialsFile string) *Opener {
	return &Opener{credentialsFile: credentialsFile}
}

// NewOpenerWithService uses an already configured Sheets service
func NewOpenerWithService(service *sheetsapi.Service) *Opener {
	return &Opener{service: service}
}

// Open returns the first worksheet of the spreadsheet ref points at
func (o *Opener) Open(ctx context.Context, ref string) (Worksheet, error) {
	if IsLocalWorkbook(ref) {
		workbook, err := OpenWorkbook(strings.TrimSpace(ref))
		if err != nil {
			return nil, err
		}
		return workbook, nil
	}

	id, err := SpreadsheetID(ref)
	if err != nil {
		return nil, err
	}

	if o.service == nil {
		service, err := NewGoogleService(ctx, o.credentialsFile)
		if err != nil {
			return nil, err
		}
		o.service = service
	}

	worksheet, err := OpenGoogleWorksheet(ctx, o.service, id)
	if err != nil {
		return nil, err
	}
	return worksheet, nil
}
