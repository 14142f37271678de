package sheets

import (
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// NewGoogleService creates a Sheets client authorized as the service account in the
// given JSON key file
func NewGoogleService(ctx context.Context, credentialsFile string) (*sheetsapi.Service, error) {
	key, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	jwtConfig, err := google.JWTConfigFromJSON(key, sheetsapi.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse credentials file: %w", err)
	}

	service, err := sheetsapi.NewService(ctx, option.WithHTTPClient(jwtConfig.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return service, nil
}

// GoogleWorksheet is the first worksheet of a Google Sheets document
type GoogleWorksheet struct {
	service       *sheetsapi.Service
	spreadsheetID string
	title         string
}

// OpenGoogleWorksheet looks up the title of the document's first worksheet
func OpenGoogleWorksheet(ctx context.Context, service *sheetsapi.Service, spreadsheetID string) (*GoogleWorksheet, error) {
	doc, err := service.Spreadsheets.Get(spreadsheetID).
		Fields("sheets.properties").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet %s: %w", spreadsheetID, err)
	}
	if len(doc.Sheets) == 0 || doc.Sheets[0].Properties == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoWorksheet, spreadsheetID)
	}

	return &GoogleWorksheet{
		service:       service,
		spreadsheetID: spreadsheetID,
		title:         doc.Sheets[0].Properties.Title,
	}, nil
}

func (w *GoogleWorksheet) Records(ctx context.Context) ([]map[string]string, error) {
	resp, err := w.service.Spreadsheets.Values.Get(w.spreadsheetID, w.qualify("")).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read worksheet %q: %w", w.title, err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, values := range resp.Values {
		row := make([]string, len(values))
		for i, v := range values {
			row[i] = fmt.Sprint(v)
		}
		rows = append(rows, row)
	}

	records, err := recordsFromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("worksheet %q: %w", w.title, err)
	}
	return records, nil
}

func (w *GoogleWorksheet) UpdateRange(ctx context.Context, a1Range string, values []interface{}) error {
	body := &sheetsapi.ValueRange{
		Values: [][]interface{}{values},
	}

	_, err := w.service.Spreadsheets.Values.Update(w.spreadsheetID, w.qualify(a1Range), body).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", a1Range, err)
	}
	return nil
}

func (w *GoogleWorksheet) Close() error {
	return nil
}

// qualify prefixes a range with the quoted worksheet title; an empty range means the
// whole worksheet
func (w *GoogleWorksheet) qualify(a1Range string) string {
	sheet := "'" + strings.ReplaceAll(w.title, "'", "''") + "'"
	if a1Range == "" {
		return sheet
	}
	return sheet + "!" + a1Range
}
