// Copyright (c) 2026 Arkiva. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package collections

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/taibuivan/arkiva/internal/platform/apperr"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// # HTTP Client

// Opinionated timeouts for the Collections endpoint. The per-request timeout
// is what the retry policy classifies on, so it must stay well below the
// global request deadline of our own API.
const (
	requestTimeout = 20 * time.Second
)

// outputJSON asks the store for its JSON rendering instead of adlib XML.
const outputJSON = "json"

// ClientConfig carries the connection settings for the Collections API.
type ClientConfig struct {
	// BaseURL is the single generic endpoint; the logical database travels
	// as a query parameter.
	BaseURL string

	// TokenURL, ClientID, ClientSecret drive the OAuth2 client-credentials
	// flow. Token refresh is handled by the oauth2 transport.
	TokenURL     string
	ClientID     string
	ClientSecret string
}

// Client talks to the Collections search/insert/update API.
//
// Every method is a single request/response unit; the client holds no state
// beyond the connection pool and the cached access token, so it is safe for
// concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
	retry      *retryPolicy
}

// NewClient builds a Collections client with an OAuth2 client-credentials
// token source layered over a timeout-bounded HTTP client.
func NewClient(ctx context.Context, cfg ClientConfig, log *slog.Logger) *Client {
	credentials := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
	}

	// The oauth2 transport reuses this client for both token fetches and
	// API calls, so the timeout bounds every outbound request.
	base := &http.Client{Timeout: requestTimeout}
	authorized := credentials.Client(context.WithValue(ctx, oauth2.HTTPClient, base))
	authorized.Timeout = requestTimeout

	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: authorized,
		log:        log,
		retry:      &retryPolicy{log: log},
	}
}

// ResultSet is one page of search results plus the store's total hit count.
type ResultSet struct {
	Records []*Record
	Hits    int
}

// First returns the first record of the page, or nil for an empty result.
func (resultSet *ResultSet) First() *Record {
	if resultSet == nil || len(resultSet.Records) == 0 {
		return nil
	}
	return resultSet.Records[0]
}

// adlibEnvelope is the store's self-describing response wrapper.
type adlibEnvelope struct {
	AdlibJSON struct {
		RecordList struct {
			Record []*Record `json:"record"`
		} `json:"recordList"`
		Diagnostic struct {
			Hits int `json:"hits"`
		} `json:"diagnostic"`
	} `json:"adlibJSON"`
}

// Search runs a boolean query against a logical database.
//
// limit and startFrom are independent numeric parameters — they are never
// folded into the boolean query string. Zero values omit the parameter.
func (client *Client) Search(ctx context.Context, database, query string, limit, startFrom int) (*ResultSet, error) {
	params := url.Values{}
	params.Set("database", database)
	params.Set("search", query)
	params.Set("output", outputJSON)
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	if startFrom > 0 {
		params.Set("startfrom", strconv.Itoa(startFrom))
	}

	body, err := client.send(ctx, "search", query, func() (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, client.baseURL+"?"+params.Encode(), nil)
	})
	if err != nil {
		return nil, err
	}

	envelope, err := decodeEnvelope(body)
	if err != nil {
		return nil, err
	}
	return &ResultSet{
		Records: envelope.AdlibJSON.RecordList.Record,
		Hits:    envelope.AdlibJSON.Diagnostic.Hits,
	}, nil
}

// Ping issues a minimal search to verify the catalogue is reachable and the
// credentials still work. Used by the readiness probe.
func (client *Client) Ping(ctx context.Context) error {
	_, err := client.Search(ctx, DatabaseTexts, "all", 1, 0)
	return err
}

// Insert creates a record and returns the store's echo of it.
//
// The store is expected to echo the created record including its assigned
// priref; an empty echo is a failure ([ErrRecordEchoMissing]), never a
// silent success.
func (client *Client) Insert(ctx context.Context, database string, payload *Payload) (*Record, error) {
	return client.submit(ctx, "insertrecord", database, payload)
}

// Update rewrites an existing record (selected by its priref field in the
// payload) and returns the store's echo of it.
func (client *Client) Update(ctx context.Context, database string, payload *Payload) (*Record, error) {
	return client.submit(ctx, "updaterecord", database, payload)
}

func (client *Client) submit(ctx context.Context, command, database string, payload *Payload) (*Record, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("collections: encode %s payload: %w", command, err))
	}

	params := url.Values{}
	params.Set("command", command)
	params.Set("database", database)
	params.Set("output", outputJSON)

	externalID, _ := payload.Get(FieldPriref)
	body, err := client.send(ctx, command, fmt.Sprint(externalID), func() (*http.Request, error) {
		request, err := http.NewRequestWithContext(ctx, http.MethodPost, client.baseURL+"?"+params.Encode(), bytes.NewReader(encoded))
		if err != nil {
			return nil, err
		}
		request.Header.Set("Content-Type", "application/json")
		return request, nil
	})
	if err != nil {
		return nil, err
	}

	envelope, err := decodeEnvelope(body)
	if err != nil {
		return nil, err
	}
	records := envelope.AdlibJSON.RecordList.Record
	if len(records) == 0 {
		return nil, ErrRecordEchoMissing
	}
	return records[0], nil
}

// send executes one request under the retry policy and returns the response
// body. The request is rebuilt per attempt because a body reader cannot be
// replayed.
func (client *Client) send(ctx context.Context, operationName, externalID string, build func() (*http.Request, error)) ([]byte, error) {
	var body []byte

	attempt := func() error {
		request, err := build()
		if err != nil {
			return apperr.Internal(err)
		}

		response, err := client.httpClient.Do(request)
		if err != nil {
			return err
		}
		defer response.Body.Close()

		payload, err := io.ReadAll(response.Body)
		if err != nil {
			return err
		}

		switch {
		case response.StatusCode == http.StatusConflict:
			return ErrRecordExists
		case response.StatusCode < 200 || response.StatusCode > 299:
			return Unavailable(fmt.Errorf("collections: %s answered %d: %s",
				operationName, response.StatusCode, truncate(payload, 256)))
		}

		body = payload
		return nil
	}

	if err := client.retry.run(ctx, operationName, externalID, attempt); err != nil {
		if apperr.IsAppError(err) {
			return nil, err
		}
		// Timeouts that exhausted the retry budget, DNS failures, broken
		// connections: all surface as catalogue-unavailable.
		return nil, Unavailable(err)
	}
	return body, nil
}

func decodeEnvelope(body []byte) (*adlibEnvelope, error) {
	envelope := &adlibEnvelope{}
	if err := json.Unmarshal(body, envelope); err != nil {
		return nil, Unavailable(fmt.Errorf("collections: malformed response body: %w", err))
	}
	return envelope, nil
}

func truncate(body []byte, max int) string {
	if len(body) <= max {
		return string(body)
	}
	return string(body[:max]) + "…"
}
