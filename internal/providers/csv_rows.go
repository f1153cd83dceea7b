package providers

import (
	"context"
	"encoding/csv"
	"errors"
	"io"

	"github.com/jszwec/csvutil"

	"flight-footprint/atlas/internal/constants"
	"flight-footprint/atlas/internal/models"
)

// FetchOpenFlights downloads and decodes airports.dat.
func FetchOpenFlights(ctx context.Context, src ReferenceSource, location string, onRowError RowErrorFunc) ([]models.OpenFlightsRow, error) {
	body, err := openSource(ctx, src, constants.SourceOpenFlights, location)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return DecodeOpenFlights(body, onRowError)
}

// FetchOurAirports downloads and decodes the OurAirports airports.csv export.
func FetchOurAirports(ctx context.Context, src ReferenceSource, location string, onRowError RowErrorFunc) ([]models.OurAirportsRow, error) {
	body, err := openSource(ctx, src, constants.SourceOurAirports, location)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return DecodeOurAirports(body, onRowError)
}

// DecodeOpenFlights reads headerless airports.dat content.
func DecodeOpenFlights(r io.Reader, onRowError RowErrorFunc) ([]models.OpenFlightsRow, error) {
	in := &stickyReader{r: r}
	dec, err := csvutil.NewDecoder(newCSVReader(in), models.OpenFlightsHeader...)
	if err != nil {
		return nil, newSourceError(constants.SourceOpenFlights, constants.ErrCodeDecodeFailed, err)
	}
	return decodeRows[models.OpenFlightsRow](dec, in, constants.SourceOpenFlights, onRowError)
}

// DecodeOurAirports reads airports.csv content; the first line is the header.
func DecodeOurAirports(r io.Reader, onRowError RowErrorFunc) ([]models.OurAirportsRow, error) {
	in := &stickyReader{r: r}
	dec, err := csvutil.NewDecoder(newCSVReader(in))
	if err != nil {
		if in.err != nil {
			return nil, newSourceError(constants.SourceOurAirports, constants.ErrCodeDecodeFailed, in.err)
		}
		if errors.Is(err, io.EOF) {
			return nil, newSourceError(constants.SourceOurAirports, constants.ErrCodeInvalidDataFormat, errors.New("missing header"))
		}
		return nil, newSourceError(constants.SourceOurAirports, constants.ErrCodeDecodeFailed, err)
	}
	return decodeRows[models.OurAirportsRow](dec, in, constants.SourceOurAirports, onRowError)
}

func newCSVReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return cr
}

// stickyReader remembers the first failed read so a broken stream aborts
// decoding instead of surfacing as malformed rows.
type stickyReader struct {
	r   io.Reader
	err error
}

func (s *stickyReader) Read(p []byte) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	n, err := s.r.Read(p)
	if err != nil && err != io.EOF {
		s.err = err
	}
	return n, err
}

// decodeRows decodes until EOF. Malformed rows go to onRowError and are
// skipped; a read failure aborts the source.
func decodeRows[T any](dec *csvutil.Decoder, in *stickyReader, source constants.SourceName, onRowError RowErrorFunc) ([]T, error) {
	var rows []T
	for row := 1; ; row++ {
		var v T
		err := dec.Decode(&v)
		if in.err != nil {
			return nil, newSourceError(source, constants.ErrCodeDecodeFailed, in.err)
		}
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			if !isRowError(err) {
				return nil, newSourceError(source, constants.ErrCodeDecodeFailed, err)
			}
			if onRowError != nil {
				onRowError(source, row, err)
			}
			continue
		}
		rows = append(rows, v)
	}
}

func isRowError(err error) bool {
	var parseErr *csv.ParseError
	var typeErr *csvutil.UnmarshalTypeError
	return errors.Is(err, csvutil.ErrFieldCount) || errors.As(err, &parseErr) || errors.As(err, &typeErr)
}
