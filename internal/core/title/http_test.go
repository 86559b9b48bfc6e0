// Copyright (c) 2026 Arkiva. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/arkiva/internal/collections"
)

/*
TestHandler_CreateTitle_GatewayUsername verifies the audit identity falls
back from the request body to the gateway header, and then to the service
account.
*/
func TestHandler_CreateTitle_GatewayUsername(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		header   string
		expected string
	}{
		{"body_wins", `{"name":"Hallingdølen","username":"registrar"}`, "kari", "registrar"},
		{"header_fallback", `{"name":"Hallingdølen"}`, "kari", "kari"},
		{"service_account", `{"name":"Hallingdølen"}`, "", "arkiva"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalogue := &fakeCatalogue{
				insertFn: func(database string, payload *collections.Payload) (*collections.Record, error) {
					return &collections.Record{Priref: "1001", Titles: []string{"Hallingdølen"}}, nil
				},
			}
			handler := NewHandler(newTestService(catalogue))

			request := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			if tt.header != "" {
				request.Header.Set("X-Forwarded-User", tt.header)
			}
			recorder := httptest.NewRecorder()
			handler.Routes().ServeHTTP(recorder, request)

			require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

			require.Len(t, catalogue.inserts, 1)
			username, ok := catalogue.inserts[0].Get(collections.FieldInputName)
			require.True(t, ok)
			assert.Equal(t, tt.expected, username)
		})
	}
}
