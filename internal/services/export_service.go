package services

import (
	"context"
	"fmt"

	"github.com/alimgiray/prpoints/internal/models"
	"github.com/alimgiray/prpoints/internal/sheets"
	"github.com/alimgiray/prpoints/pkg/logger"
)

// firstDataRow is the first row below the header row of the results sheet
const firstDataRow = 2

// RangeWriter writes one row of values into an A1 range of the first worksheet
type RangeWriter interface {
	UpdateRange(ctx context.Context, a1Range string, values []interface{}) error
}

// ContributorLookup resolves a normalized identity to its contact details
type ContributorLookup interface {
	Lookup(identity string) models.ContributorDetail
}

// ExportedRow is an output row together with where it was written
type ExportedRow struct {
	RowNumber int
	Identity  string
	Row       models.OutputRow
}

type ExportService struct {
	profileBaseURL string
}

func NewExportService(profileBaseURL string) *ExportService {
	return &ExportService{profileBaseURL: profileBaseURL}
}

// BuildRows joins the totals with the directory, in the aggregation's identity order
func (s *ExportService) BuildRows(agg *models.AggregatedPoints, contributors ContributorLookup) []ExportedRow {
	identities := agg.Identities()
	rows := make([]ExportedRow, 0, len(identities))

	for i, identity := range identities {
		detail := contributors.Lookup(identity)
		rows = append(rows, ExportedRow{
			RowNumber: firstDataRow + i,
			Identity:  identity,
			Row: models.OutputRow{
				FullName:    detail.FullName,
				Email:       detail.Email,
				ProfileLink: ProfileLink(s.profileBaseURL, identity),
				TotalPoints: agg.Total(identity),
			},
		})
	}

	return rows
}

// Export writes every row with its own call, starting at row 2. It stops at the first
// failed write; the rows written before it are returned along with the error and are
// not rolled back.
func (s *ExportService) Export(ctx context.Context, writer RangeWriter, agg *models.AggregatedPoints, contributors ContributorLookup) ([]ExportedRow, error) {
	rows := s.BuildRows(agg, contributors)
	written := make([]ExportedRow, 0, len(rows))

	for _, row := range rows {
		values := row.Row.Values()
		a1Range, err := sheets.RowRange(row.RowNumber, len(values))
		if err != nil {
			return written, err
		}

		if err := writer.UpdateRange(ctx, a1Range, values); err != nil {
			return written, fmt.Errorf("failed to write row %d (%s): %w", row.RowNumber, row.Identity, err)
		}
		written = append(written, row)

		logger.Debugf("Wrote %s for %q with %d points", a1Range, row.Identity, row.Row.TotalPoints)
	}

	return written, nil
}
