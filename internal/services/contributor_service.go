package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/alimgiray/prpoints/internal/models"
	"github.com/alimgiray/prpoints/pkg/logger"
	"github.com/sirupsen/logrus"
)

// RecordReader reads header-keyed rows from the first worksheet of a spreadsheet
type RecordReader interface {
	Records(ctx context.Context) ([]map[string]string, error)
}

// ContributorColumns names the detail sheet headers the directory reads
type ContributorColumns struct {
	Identity string
	FullName string
	Email    string
}

type ContributorService struct {
	columns ContributorColumns
	details map[string]models.ContributorDetail
}

func NewContributorService(columns ContributorColumns) *ContributorService {
	return &ContributorService{
		columns: columns,
		details: make(map[string]models.ContributorDetail),
	}
}

// Load reads every row of the details sheet into the directory. Rows whose identity
// does not normalize to a username are skipped; a later row for the same identity
// replaces an earlier one.
func (s *ContributorService) Load(ctx context.Context, reader RecordReader) error {
	records, err := reader.Records(ctx)
	if err != nil {
		return fmt.Errorf("failed to read contributor details: %w", err)
	}

	skipped := 0
	for _, record := range records {
		identity := NormalizeIdentity(record[s.columns.Identity])
		if identity == "" {
			skipped++
			continue
		}
		s.details[identity] = models.ContributorDetail{
			FullName: strings.TrimSpace(record[s.columns.FullName]),
			Email:    strings.TrimSpace(record[s.columns.Email]),
		}
	}

	logger.WithFields(logrus.Fields{
		"rows":         len(records),
		"contributors": len(s.details),
		"skipped":      skipped,
	}).Info("Loaded contributor details")

	return nil
}

// Lookup returns the contributor's details, or blanks when the identity is unknown
func (s *ContributorService) Lookup(identity string) models.ContributorDetail {
	return s.details[identity]
}

// Len returns the number of distinct identities in the directory
func (s *ContributorService) Len() int {
	return len(s.details)
}
