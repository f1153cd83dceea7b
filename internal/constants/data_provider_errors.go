package constants

// Source error codes describe why fetching or decoding a reference source failed.
const (
	ErrCodeNetworkError        = "NETWORK_ERROR"
	ErrCodeUnexpectedStatus    = "UNEXPECTED_STATUS"
	ErrCodeDecodeFailed        = "DECODE_FAILED"
	ErrCodeInvalidDataFormat   = "INVALID_DATA_FORMAT"
	ErrCodeTableNotFound       = "TABLE_NOT_FOUND"
	ErrCodeTableEmpty          = "TABLE_EMPTY"
	ErrCodeSourceNotConfigured = "SOURCE_NOT_CONFIGURED"
	ErrCodeFileUnreadable      = "FILE_UNREADABLE"
)

// Row skip reasons, used as metric labels.
const (
	SkipReasonMalformedIATA  = "malformed_iata"
	SkipReasonFilteredType   = "filtered_type"
	SkipReasonBadCoordinates = "bad_coordinates"
	SkipReasonUnknownCountry = "unknown_country"
	SkipReasonDecodeError    = "decode_error"
)

var SourceErrorMessages = map[string]string{
	ErrCodeNetworkError:        "Unable to reach the reference data source",
	ErrCodeUnexpectedStatus:    "The reference data source answered with an unexpected status",
	ErrCodeDecodeFailed:        "The reference data could not be decoded",
	ErrCodeInvalidDataFormat:   "The data format is invalid",
	ErrCodeTableNotFound:       "The country code table was not found on the page",
	ErrCodeTableEmpty:          "The country code table contains no usable rows",
	ErrCodeSourceNotConfigured: "No location is configured for this source",
	ErrCodeFileUnreadable:      "The local reference file could not be read",
}

// GetErrorMessage returns the human-readable message for an error code
func GetErrorMessage(code string) string {
	if msg, exists := SourceErrorMessages[code]; exists {
		return msg
	}
	return "An unknown error occurred"
}
