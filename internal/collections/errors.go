// Copyright (c) 2026 Arkiva. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package collections

import (
	"net/http"

	"github.com/taibuivan/arkiva/internal/platform/apperr"
)

// # Error Taxonomy
//
// Four classes, never conflated:
//
//   - Transport: the store could not be reached or did not answer — retried
//     per retry.go, then surfaced as [ErrCatalogueUnavailable].
//   - NotFound: a zero-result search where exactly one result was required,
//     surfaced as a domain-specific kind so callers can tell a missing title
//     from a missing item.
//   - Validation: malformed caller input, rejected before any network call
//     (built with the validate package in the core services).
//   - Conflict: a store-reported uniqueness violation.
//
// The sentinels are [apperr.AppError] values so the HTTP layer maps each
// kind to a distinct, stable machine-readable code and status without any
// translation step.

var (
	// ErrCatalogueUnavailable covers transport failures and non-2xx answers
	// that survived the retry policy.
	ErrCatalogueUnavailable = &apperr.AppError{
		Code:       "CATALOGUE_UNAVAILABLE",
		Message:    "The Collections catalogue is not responding",
		HTTPStatus: http.StatusServiceUnavailable,
	}

	// ErrTitleNotFound: a required serial title lookup returned zero records.
	ErrTitleNotFound = &apperr.AppError{
		Code:       "TITLE_NOT_FOUND",
		Message:    "Title not found in the catalogue",
		HTTPStatus: http.StatusNotFound,
	}

	// ErrItemNotFound: a required item lookup returned zero records.
	ErrItemNotFound = &apperr.AppError{
		Code:       "ITEM_NOT_FOUND",
		Message:    "Item not found in the catalogue",
		HTTPStatus: http.StatusNotFound,
	}

	// ErrManifestationNotFound: a required manifestation lookup returned
	// zero records.
	ErrManifestationNotFound = &apperr.AppError{
		Code:       "MANIFESTATION_NOT_FOUND",
		Message:    "Manifestation not found in the catalogue",
		HTTPStatus: http.StatusNotFound,
	}

	// ErrYearWorkNotFound: the per-year collector work was required but
	// missing.
	ErrYearWorkNotFound = &apperr.AppError{
		Code:       "YEAR_WORK_NOT_FOUND",
		Message:    "Year work not found in the catalogue",
		HTTPStatus: http.StatusNotFound,
	}

	// ErrLocationNotFound: a required container lookup returned zero records.
	ErrLocationNotFound = &apperr.AppError{
		Code:       "LOCATION_NOT_FOUND",
		Message:    "Location not found in the catalogue",
		HTTPStatus: http.StatusNotFound,
	}

	// ErrRecordEchoMissing: a create or update command answered 2xx but
	// echoed zero records. The store is expected to echo the written record;
	// an empty echo is a failure, not a silent success.
	ErrRecordEchoMissing = &apperr.AppError{
		Code:       "RECORD_ECHO_MISSING",
		Message:    "The catalogue did not echo the written record",
		HTTPStatus: http.StatusNotFound,
	}

	// ErrRecordExists: the store reported a uniqueness violation the
	// orchestration is supposed to prevent.
	ErrRecordExists = &apperr.AppError{
		Code:       "RECORD_ALREADY_EXISTS",
		Message:    "The record already exists in the catalogue",
		HTTPStatus: http.StatusConflict,
	}
)

// Unavailable wraps a transport-level cause in the catalogue-unavailable
// kind. The cause is kept for server-side logging only.
func Unavailable(cause error) *apperr.AppError {
	return &apperr.AppError{
		Code:       ErrCatalogueUnavailable.Code,
		Message:    ErrCatalogueUnavailable.Message,
		HTTPStatus: ErrCatalogueUnavailable.HTTPStatus,
		Cause:      cause,
	}
}
