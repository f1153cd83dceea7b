package constants

const (
	MsgMissingQuery       = "missing 'q' query parameter"
	MsgAirportNotFound    = "airport not found"
	MsgDatasetUnavailable = "airport dataset unavailable"
	MsgInvalidPassengers  = "passengers must be a positive integer"
	MsgInvalidRoundTrip   = "round_trip must be a boolean"
	MsgMissingEndpoints   = "origin and destination IATA codes are required"
	MsgRegenerationFailed = "dataset regeneration failed"
	MsgUnauthorized       = "Unauthorized: missing or invalid admin token"
	MsgTooManyRequests    = "Too many requests"
	MsgInvalidLimit       = "limit must be an integer between 1 and 500"
)
