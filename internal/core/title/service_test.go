// Copyright (c) 2026 Arkiva. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/arkiva/internal/collections"
	"github.com/taibuivan/arkiva/internal/platform/apperr"
)

// fakeCatalogue scripts search and insert responses and records every call.
type fakeCatalogue struct {
	searchFn func(database, query string) (*collections.ResultSet, error)
	insertFn func(database string, payload *collections.Payload) (*collections.Record, error)

	searchCalls []string
	inserts     []*collections.Payload
}

func (fake *fakeCatalogue) Search(_ context.Context, database, query string, limit, startFrom int) (*collections.ResultSet, error) {
	fake.searchCalls = append(fake.searchCalls, database+"|"+query)
	if fake.searchFn == nil {
		return &collections.ResultSet{}, nil
	}
	return fake.searchFn(database, query)
}

func (fake *fakeCatalogue) Insert(_ context.Context, database string, payload *collections.Payload) (*collections.Record, error) {
	fake.inserts = append(fake.inserts, payload)
	return fake.insertFn(database, payload)
}

func (fake *fakeCatalogue) Update(_ context.Context, database string, payload *collections.Payload) (*collections.Record, error) {
	return nil, nil
}

func newTestService(catalogue *fakeCatalogue) *Service {
	service := NewService(catalogue, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	service.now = func() time.Time {
		return time.Date(2020, time.January, 9, 13, 37, 5, 0, time.UTC)
	}
	return service
}

func resultSet(records ...*collections.Record) *collections.ResultSet {
	return &collections.ResultSet{Records: records, Hits: len(records)}
}

/*
TestService_SearchTitles verifies the query shape and the record mapping.
*/
func TestService_SearchTitles(t *testing.T) {
	catalogue := &fakeCatalogue{
		searchFn: func(database, query string) (*collections.ResultSet, error) {
			return resultSet(
				&collections.Record{Priref: "1001", Titles: []string{"Hallingdølen"}},
				&collections.Record{Priref: "1002", Titles: []string{"Hallingdølen gamle"}},
			), nil
		},
	}

	titles, err := newTestService(catalogue).SearchTitles(context.Background(), "Hallingdølen")
	require.NoError(t, err)

	require.Len(t, titles, 2)
	assert.Equal(t, "1001", titles[0].ID)
	assert.Equal(t, "Hallingdølen gamle", titles[1].Name)

	require.Len(t, catalogue.searchCalls, 1)
	assert.Equal(t,
		`texts|record_type=WORK and work.description_type=SERIAL and title="Hallingdølen"`,
		catalogue.searchCalls[0])
}

/*
TestService_SearchTitles_RequiresName verifies validation happens before any
catalogue call.
*/
func TestService_SearchTitles_RequiresName(t *testing.T) {
	catalogue := &fakeCatalogue{}

	_, err := newTestService(catalogue).SearchTitles(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	assert.Empty(t, catalogue.searchCalls)
}

/*
TestService_GetTitle_NotFound verifies a zero-result lookup maps to the
title-specific not-found kind.
*/
func TestService_GetTitle_NotFound(t *testing.T) {
	catalogue := &fakeCatalogue{}

	_, err := newTestService(catalogue).GetTitle(context.Background(), "404")
	assert.ErrorIs(t, err, collections.ErrTitleNotFound)
}

/*
TestService_GetTitle_UnavailableIsNotNotFound verifies transport failures
keep their own kind and never degrade into not-found.
*/
func TestService_GetTitle_UnavailableIsNotNotFound(t *testing.T) {
	catalogue := &fakeCatalogue{
		searchFn: func(database, query string) (*collections.ResultSet, error) {
			return nil, collections.Unavailable(context.DeadlineExceeded)
		},
	}

	_, err := newTestService(catalogue).GetTitle(context.Background(), "1001")
	assert.ErrorIs(t, err, collections.ErrCatalogueUnavailable)
	assert.NotErrorIs(t, err, collections.ErrTitleNotFound)
}

/*
TestService_CreateTitle verifies the ensure-reference-then-create workflow:
existing references are reused, missing ones are created, and the title
payload carries resolved ids plus the audit stamp.
*/
func TestService_CreateTitle(t *testing.T) {
	catalogue := &fakeCatalogue{
		searchFn: func(database, query string) (*collections.ResultSet, error) {
			// Publisher exists; language and place do not.
			if database == collections.DatabasePeople {
				return resultSet(&collections.Record{Priref: "501"}), nil
			}
			return resultSet(), nil
		},
		insertFn: func(database string, payload *collections.Payload) (*collections.Record, error) {
			switch database {
			case collections.DatabaseLanguages:
				return &collections.Record{Priref: "601"}, nil
			case collections.DatabaseLocations:
				return &collections.Record{Priref: "701"}, nil
			default:
				return &collections.Record{Priref: "1001", Titles: []string{"Hallingdølen"}}, nil
			}
		},
	}

	input := Input{
		Name:           "Hallingdølen",
		StartDate:      "1936",
		Publisher:      "Hallingdølen AS",
		PublisherPlace: "Ål",
		Language:       "Norsk",
		MaterialType:   string(collections.MaterialTypeNewspaper),
		Username:       "registrar",
	}

	created, err := newTestService(catalogue).CreateTitle(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "1001", created.ID)

	// Three inserts: language term, place term, then the title itself.
	require.Len(t, catalogue.inserts, 3)
	titlePayload := catalogue.inserts[2]

	get := func(key string) any {
		value, ok := titlePayload.Get(key)
		require.True(t, ok, "missing payload key %q", key)
		return value
	}
	assert.Equal(t, "WORK", get(collections.FieldRecordType))
	assert.Equal(t, "SERIAL", get(collections.FieldWorkType))
	assert.Equal(t, "Hallingdølen", get(collections.FieldTitle))
	assert.Equal(t, "Avis", get(collections.FieldSubmedium))
	assert.Equal(t, "1936", get(collections.FieldDatingStart))
	assert.Equal(t, "501", get(collections.FieldPublisherReference))
	assert.Equal(t, "601", get(collections.FieldLanguageReference))
	assert.Equal(t, "701", get(collections.FieldPlaceReference))
	assert.Equal(t, "registrar", get(collections.FieldInputName))
	assert.Equal(t, "2020-01-09", get(collections.FieldInputDate))

	// End date was never supplied: it must be absent, not null.
	assert.False(t, titlePayload.Has(collections.FieldDatingEnd))

	// The language term payload is a term record, not a name record.
	termPayload := catalogue.inserts[0]
	term, _ := termPayload.Get(collections.FieldTerm)
	assert.Equal(t, "Norsk", term)
}

/*
TestService_CreateTitle_ReferenceConflictPropagates verifies a concurrent
reference creation surfacing as already-exists is passed through unchanged.
*/
func TestService_CreateTitle_ReferenceConflictPropagates(t *testing.T) {
	catalogue := &fakeCatalogue{
		insertFn: func(database string, payload *collections.Payload) (*collections.Record, error) {
			return nil, collections.ErrRecordExists
		},
	}

	_, err := newTestService(catalogue).CreateTitle(context.Background(), Input{
		Name:      "Hallingdølen",
		Publisher: "Hallingdølen AS",
		Username:  "registrar",
	})
	assert.ErrorIs(t, err, collections.ErrRecordExists)
}

/*
TestService_CreateTitle_Validation covers the rejected inputs.
*/
func TestService_CreateTitle_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input Input
		field string
	}{
		{"missing_name", Input{Username: "u"}, FieldName},
		{"missing_username", Input{Name: "Hallingdølen"}, FieldUsername},
		{"bad_material_type", Input{Name: "x", Username: "u", MaterialType: "VINYL"}, FieldMaterialType},
		{"bad_start_date", Input{Name: "x", Username: "u", StartDate: "09.01.2020"}, FieldStartDate},
		{"oversized_name", Input{Name: strings.Repeat("a", 501), Username: "u"}, FieldName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalogue := &fakeCatalogue{}
			_, err := newTestService(catalogue).CreateTitle(context.Background(), tt.input)
			require.Error(t, err)

			details := apperr.As(err).Details
			require.NotEmpty(t, details)
			assert.Equal(t, tt.field, details[0].Field)
			assert.Empty(t, catalogue.inserts)
		})
	}
}
