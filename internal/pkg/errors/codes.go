package errors

import "net/http"

var (
	ErrEmptyCity = New(
		"EMPTY_CITY",
		"City must not be empty",
		http.StatusBadRequest,
	)

	ErrInvalidDuration = New(
		"INVALID_DURATION",
		"Invalid duration class: must be quick, half_day or full_day",
		http.StatusBadRequest,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrTooFewCandidates = New(
		"TOO_FEW_CANDIDATES",
		"Candidate pool below the viable minimum",
		http.StatusUnprocessableEntity,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrGeocodingError = New(
		"GEOCODING_ERROR",
		"Geocoding collaborator failed",
		http.StatusBadGateway,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
