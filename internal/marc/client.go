// Copyright (c) 2026 Arkiva. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package marc

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/taibuivan/arkiva/internal/platform/apperr"
)

// ErrBibliographyNotFound is returned when the SRU endpoint has no record for
// the requested identifier.
var ErrBibliographyNotFound = &apperr.AppError{
	Code:       "BIBLIOGRAPHY_NOT_FOUND",
	Message:    "No bibliographic record found for the given identifier",
	HTTPStatus: http.StatusNotFound,
}

// Client fetches MARCXML records from an SRU endpoint.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// NewClient constructs an SRU [Client] for the given endpoint.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		logger:  logger,
	}
}

/*
Lookup fetches the bibliographic record with the given system number.

Parameters:
  - context: context.Context
  - id: string (The national bibliography system number)

Returns:
  - *Record: The decoded MARCXML record
  - error: ErrBibliographyNotFound, or apperr.ServiceUnavailable on transport failure
*/
func (client *Client) Lookup(context context.Context, id string) (*Record, error) {

	// 1. Build the SRU searchRetrieve request
	params := url.Values{}
	params.Set("version", "1.2")
	params.Set("operation", "searchRetrieve")
	params.Set("query", fmt.Sprintf("rec.identifier=%q", id))
	params.Set("recordSchema", "marcxml")
	params.Set("maximumRecords", "1")

	request, err := http.NewRequestWithContext(context, http.MethodGet, client.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	// 2. Execute and guard the transport layer
	response, err := client.http.Do(request)
	if err != nil {
		client.logger.Warn("bibliography_lookup_failed", slog.String("id", id), slog.Any("error", err))
		return nil, apperr.ServiceUnavailable("Bibliography service is unreachable")
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, apperr.ServiceUnavailable(
			fmt.Sprintf("Bibliography service returned status %d", response.StatusCode),
		)
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, apperr.ServiceUnavailable("Bibliography response could not be read")
	}

	// 3. Decode the SRU envelope
	var envelope sruResponse
	if err := xml.Unmarshal(body, &envelope); err != nil {
		return nil, apperr.Internal(fmt.Errorf("marc: decoding SRU response: %w", err))
	}

	if envelope.NumberOfRecords == 0 || len(envelope.Records) == 0 {
		return nil, ErrBibliographyNotFound
	}

	record := envelope.Records[0].RecordData.Record
	return &record, nil
}
