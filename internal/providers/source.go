package providers

import (
	"context"
	"fmt"
	"io"

	"flight-footprint/atlas/internal/constants"
)

// ReferenceSource opens one raw reference dataset, either a URL or a local path.
type ReferenceSource interface {
	Open(ctx context.Context, location string) (io.ReadCloser, error)
}

// RowErrorFunc receives rows that could not be decoded. row is 1-based.
type RowErrorFunc func(source constants.SourceName, row int, err error)

// SourceError represents a failure to fetch or decode a whole source.
type SourceError struct {
	Source  constants.SourceName
	Code    string
	Message string
	Details string
	Err     error
}

func newSourceError(source constants.SourceName, code string, err error) *SourceError {
	return &SourceError{
		Source:  source,
		Code:    code,
		Message: constants.GetErrorMessage(code),
		Err:     err,
	}
}

func (e *SourceError) Error() string {
	msg := e.Message
	if e.Source != "" {
		msg = fmt.Sprintf("%s: %s", e.Source, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Details != "" {
		return fmt.Sprintf("%s (%s)", msg, e.Details)
	}
	return msg
}

func (e *SourceError) Unwrap() error {
	return e.Err
}
