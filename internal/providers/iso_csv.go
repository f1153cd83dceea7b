package providers

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jszwec/csvutil"

	"flight-footprint/atlas/internal/constants"
	"flight-footprint/atlas/internal/logging"
	"flight-footprint/atlas/internal/models"
)

// ReadCountryCodes decodes an iso.csv snapshot with a name,alpha-2 header.
func ReadCountryCodes(r io.Reader) ([]models.CountryCode, error) {
	var codes []models.CountryCode

	decoder, err := csvutil.NewDecoder(csv.NewReader(r))
	if err != nil {
		return nil, newSourceError(constants.SourceISOCSV, constants.ErrCodeInvalidDataFormat, err)
	}
	if err := decoder.Decode(&codes); err != nil {
		return nil, newSourceError(constants.SourceISOCSV, constants.ErrCodeDecodeFailed, err)
	}
	return codes, nil
}

// WriteCountryCodes encodes codes as an iso.csv snapshot, header included.
func WriteCountryCodes(w io.Writer, codes []models.CountryCode) error {
	data, err := csvutil.Marshal(codes)
	if err != nil {
		return fmt.Errorf("failed to encode country codes: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write country codes: %w", err)
	}
	return nil
}

// LoadCountryCodes reads the iso.csv snapshot at isoPath when it exists and
// otherwise scrapes factbookURL. It reports which source was used.
func LoadCountryCodes(ctx context.Context, src ReferenceSource, isoPath, factbookURL string) ([]models.CountryCode, constants.SourceName, error) {
	if isoPath != "" {
		file, err := os.Open(isoPath)
		switch {
		case err == nil:
			defer file.Close()
			codes, err := ReadCountryCodes(file)
			if err != nil {
				return nil, constants.SourceISOCSV, err
			}
			logging.Info("Loaded country codes from snapshot", "path", isoPath, "count", len(codes))
			return codes, constants.SourceISOCSV, nil
		case !errors.Is(err, os.ErrNotExist):
			return nil, constants.SourceISOCSV, newSourceError(constants.SourceISOCSV, constants.ErrCodeFileUnreadable, err)
		}
	}

	codes, err := FetchFactbookCodes(ctx, src, factbookURL)
	if err != nil {
		return nil, constants.SourceFactbook, err
	}
	logging.Info("Scraped country codes", "url", factbookURL, "count", len(codes))
	return codes, constants.SourceFactbook, nil
}
