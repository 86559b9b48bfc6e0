// Copyright (c) 2026 Arkiva. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package collections_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/arkiva/internal/collections"
)

// newTestClient starts an httptest server that serves both the OAuth2 token
// endpoint and the catalogue API, and returns a client wired against it.
func newTestClient(t *testing.T, apiHandler http.HandlerFunc) *collections.Client {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{"access_token": "test-token", "token_type": "Bearer", "expires_in": 3600}`))
	})
	mux.HandleFunc("/api", apiHandler)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return collections.NewClient(context.Background(), collections.ClientConfig{
		BaseURL:      server.URL + "/api",
		TokenURL:     server.URL + "/oauth/token",
		ClientID:     "arkiva",
		ClientSecret: "secret",
	}, logger)
}

func envelope(records ...string) string {
	joined := ""
	for i, record := range records {
		if i > 0 {
			joined += ","
		}
		joined += record
	}
	return `{"adlibJSON": {"recordList": {"record": [` + joined + `]}, "diagnostic": {"hits": ` +
		jsonInt(len(records)) + `}}}`
}

func jsonInt(n int) string {
	encoded, _ := json.Marshal(n)
	return string(encoded)
}

/*
TestClient_Search verifies the search wire format: bearer token, database and
query parameters, numeric pagination outside the boolean string, and the
envelope decoding.
*/
func TestClient_Search(t *testing.T) {
	var captured *http.Request
	client := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		captured = request.Clone(context.Background())
		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(envelope(`{"priref": "1001", "title": ["Hallingdølen"]}`)))
	})

	results, err := client.Search(context.Background(), collections.DatabaseTexts,
		collections.TitleByName("Hallingdølen"), 50, 0)
	require.NoError(t, err)

	require.NotNil(t, captured)
	assert.Equal(t, http.MethodGet, captured.Method)
	assert.Equal(t, "Bearer test-token", captured.Header.Get("Authorization"))

	query := captured.URL.Query()
	assert.Equal(t, "texts", query.Get("database"))
	assert.Equal(t, `record_type=WORK and work.description_type=SERIAL and title="Hallingdølen"`, query.Get("search"))
	assert.Equal(t, "json", query.Get("output"))
	assert.Equal(t, "50", query.Get("limit"))
	assert.Empty(t, query.Get("startfrom"))

	assert.Equal(t, 1, results.Hits)
	require.NotNil(t, results.First())
	assert.Equal(t, "1001", results.First().Priref)
	assert.Equal(t, "Hallingdølen", results.First().Name())
}

/*
TestClient_Search_EmptyResult verifies a zero-hit search is a success with an
empty page, never an error.
*/
func TestClient_Search_EmptyResult(t *testing.T) {
	client := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		_, _ = writer.Write([]byte(`{"adlibJSON": {"recordList": {"record": []}, "diagnostic": {"hits": 0}}}`))
	})

	results, err := client.Search(context.Background(), collections.DatabaseTexts, collections.ByPriref("404"), 1, 0)
	require.NoError(t, err)
	assert.Nil(t, results.First())
	assert.Equal(t, 0, results.Hits)
}

/*
TestClient_Insert verifies the create wire format and the echo contract.
*/
func TestClient_Insert(t *testing.T) {
	var capturedBody []byte
	var capturedQuery map[string][]string
	client := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		capturedBody, _ = io.ReadAll(request.Body)
		capturedQuery = request.URL.Query()
		_, _ = writer.Write([]byte(envelope(`{"priref": "2001"}`)))
	})

	payload := collections.NewPayload().
		Set(collections.FieldRecordType, "MANIFESTATION").
		Set(collections.FieldPartOfReference, "1500")

	echo, err := client.Insert(context.Background(), collections.DatabaseTexts, payload)
	require.NoError(t, err)
	assert.Equal(t, "2001", echo.Priref)

	assert.Equal(t, []string{"insertrecord"}, capturedQuery["command"])
	assert.Equal(t, []string{"texts"}, capturedQuery["database"])
	assert.JSONEq(t, `{"record_type": "MANIFESTATION", "part_of_reference.lref": "1500"}`, string(capturedBody))
}

/*
TestClient_Insert_EmptyEcho verifies an empty 2xx echo is a failure, never a
silent success.
*/
func TestClient_Insert_EmptyEcho(t *testing.T) {
	client := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		_, _ = writer.Write([]byte(`{"adlibJSON": {"recordList": {"record": []}}}`))
	})

	_, err := client.Insert(context.Background(), collections.DatabaseTexts, collections.NewPayload())
	assert.ErrorIs(t, err, collections.ErrRecordEchoMissing)
}

/*
TestClient_Insert_Conflict verifies a store-reported 409 maps to the
already-exists sentinel without any retry.
*/
func TestClient_Insert_Conflict(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		calls++
		writer.WriteHeader(http.StatusConflict)
	})

	_, err := client.Insert(context.Background(), collections.DatabaseTexts, collections.NewPayload())
	assert.ErrorIs(t, err, collections.ErrRecordExists)
	assert.Equal(t, 1, calls)
}

/*
TestClient_ServerError verifies non-2xx answers surface as
catalogue-unavailable — never as a not-found kind — and are not retried.
*/
func TestClient_ServerError(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		calls++
		writer.WriteHeader(http.StatusInternalServerError)
		_, _ = writer.Write([]byte("upstream exploded"))
	})

	_, err := client.Search(context.Background(), collections.DatabaseTexts, "priref=1", 1, 0)
	assert.ErrorIs(t, err, collections.ErrCatalogueUnavailable)
	assert.NotErrorIs(t, err, collections.ErrTitleNotFound)
	assert.Equal(t, 1, calls)
}

/*
TestClient_MalformedBody verifies an undecodable 2xx body is classified as
catalogue-unavailable.
*/
func TestClient_MalformedBody(t *testing.T) {
	client := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		_, _ = writer.Write([]byte("<html>not json</html>"))
	})

	_, err := client.Search(context.Background(), collections.DatabaseTexts, "priref=1", 1, 0)
	assert.ErrorIs(t, err, collections.ErrCatalogueUnavailable)
}
