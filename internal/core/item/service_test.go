// Copyright (c) 2026 Arkiva. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package item

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
)

// fakeCatalogue routes searches through a scripted query→result table and
// records every write.
type fakeCatalogue struct {
	results  map[string]*collections.ResultSet
	insertFn func(database string, payload *collections.Payload) (*collections.Record, error)
	updateFn func(database string, payload *collections.Payload) (*collections.Record, error)

	searchCalls []string
	inserts     []insertCall
	updates     []*collections.Payload
}

type insertCall struct {
	database string
	payload  *collections.Payload
}

func (fake *fakeCatalogue) Search(_ context.Context, database, query string, limit, startFrom int) (*collections.ResultSet, error) {
	fake.searchCalls = append(fake.searchCalls, database+"|"+query)
	if results, ok := fake.results[query]; ok {
		return results, nil
	}
	return &collections.ResultSet{}, nil
}

func (fake *fakeCatalogue) Insert(_ context.Context, database string, payload *collections.Payload) (*collections.Record, error) {
	fake.inserts = append(fake.inserts, insertCall{database: database, payload: payload})
	return fake.insertFn(database, payload)
}

func (fake *fakeCatalogue) Update(_ context.Context, database string, payload *collections.Payload) (*collections.Record, error) {
	fake.updates = append(fake.updates, payload)
	return fake.updateFn(database, payload)
}

func newTestService(catalogue *fakeCatalogue) *Service {
	service := NewService(catalogue, slog.New(slog.NewTextHandler(io.Discard, nil)))
	service.now = func() time.Time {
		return time.Date(2020, time.January, 9, 13, 37, 5, 0, time.UTC)
	}
	return service
}

func neutral(text string) []collections.LanguageList {
	return []collections.LanguageList{{
		{Lang: "neutral", Text: text},
	}}
}

// serialTitleRecord is a WORK/SERIAL record the way a search returns it.
func serialTitleRecord() *collections.Record {
	return &collections.Record{
		Priref:      "1001",
		Titles:      []string{"Hallingdølen"},
		RecordTypes: neutral("WORK"),
		WorkTypes:   neutral("SERIAL"),
		Submedium:   []string{"Avis"},
	}
}

// manifestationWithChain is a MANIFESTATION whose back-reference chain climbs
// through the per-year collector to the serial title.
func manifestationWithChain() *collections.Record {
	yearWork := &collections.Record{
		Priref:      "1501",
		Titles:      []string{"Hallingdølen 2020"},
		RecordTypes: neutral("WORK"),
		WorkTypes:   neutral("YEAR"),
		PartOf:      []collections.PartOfRef{{Parent: serialTitleRecord()}},
	}
	return &collections.Record{
		Priref:      "2001",
		Titles:      []string{"Hallingdølen 2020.01.09"},
		RecordTypes: neutral("MANIFESTATION"),
		PartOf:      []collections.PartOfRef{{Parent: yearWork}},
	}
}

func single(record *collections.Record) *collections.ResultSet {
	return &collections.ResultSet{Records: []*collections.Record{record}, Hits: 1}
}

func TestService_GetItem_NotFound(t *testing.T) {
	catalogue := &fakeCatalogue{}

	_, err := newTestService(catalogue).GetItem(context.Background(), "404")
	assert.ErrorIs(t, err, collections.ErrItemNotFound)
}

/*
TestService_CreateManifestation_TitleMissing verifies the workflow stops at
the title fetch and never writes anything.
*/
func TestService_CreateManifestation_TitleMissing(t *testing.T) {
	catalogue := &fakeCatalogue{}

	_, err := newTestService(catalogue).CreateManifestation(context.Background(), ManifestationInput{
		TitleID:  "404",
		Date:     "2020-01-09",
		Username: "registrar",
	})
	assert.ErrorIs(t, err, collections.ErrTitleNotFound)
	assert.Empty(t, catalogue.inserts)
}

/*
TestService_CreateManifestation_ExistingIsReturned verifies the ensure
semantics: when the duplicate-check search hits, the existing record is
mapped and returned without any insert.
*/
func TestService_CreateManifestation_ExistingIsReturned(t *testing.T) {
	date := time.Date(2020, time.January, 9, 0, 0, 0, 0, time.UTC)
	existing := &collections.Record{
		Priref: "2001",
		Titles: []string{"Hallingdølen 2020.01.09"},
	}
	catalogue := &fakeCatalogue{
		results: map[string]*collections.ResultSet{
			collections.ByPriref("1001"):               single(serialTitleRecord()),
			collections.YearWorkByParent("1001", 2020): single(&collections.Record{Priref: "1501"}),
			collections.ManifestationByEdition("1501", date, "U-12-U"): single(existing),
		},
	}

	item, err := newTestService(catalogue).CreateManifestation(context.Background(), ManifestationInput{
		TitleID:  "1001",
		Date:     "2020-01-09",
		Number:   "12",
		Username: "registrar",
	})
	require.NoError(t, err)

	assert.Equal(t, "2001", item.ID)
	assert.Equal(t, "1001", item.TitleID)
	assert.Equal(t, "Hallingdølen", item.TitleName)
	assert.Equal(t, collections.MaterialTypeNewspaper, item.MaterialType)
	require.NotNil(t, item.Date)
	assert.Equal(t, date, *item.Date)
	assert.Empty(t, catalogue.inserts)
}

/*
TestService_CreateManifestation_UnknownEdition verifies the create path for a
fully unknown edition: the year work is created on the way, the duplicate
check searches with the no-edition clause, and the stored payload carries no
edition field at all.
*/
func TestService_CreateManifestation_UnknownEdition(t *testing.T) {
	catalogue := &fakeCatalogue{
		results: map[string]*collections.ResultSet{
			collections.ByPriref("1001"): single(serialTitleRecord()),
		},
		insertFn: func(database string, payload *collections.Payload) (*collections.Record, error) {
			if workType, _ := payload.Get(collections.FieldWorkType); workType == string(collections.WorkTypeYear) {
				return &collections.Record{Priref: "1501"}, nil
			}
			return &collections.Record{Priref: "2001", Titles: []string{"Hallingdølen 2020.01.09"}}, nil
		},
	}

	item, err := newTestService(catalogue).CreateManifestation(context.Background(), ManifestationInput{
		TitleID:  "1001",
		Date:     "2020-01-09",
		Username: "registrar",
	})
	require.NoError(t, err)
	assert.Equal(t, "2001", item.ID)

	require.Len(t, catalogue.inserts, 2)

	yearWork := catalogue.inserts[0].payload
	title, _ := yearWork.Get(collections.FieldTitle)
	assert.Equal(t, "Hallingdølen 2020", title)
	parent, _ := yearWork.Get(collections.FieldPartOfReference)
	assert.Equal(t, "1001", parent)
	start, _ := yearWork.Get(collections.FieldDatingStart)
	assert.Equal(t, "2020", start)

	manifestation := catalogue.inserts[1].payload
	assert.False(t, manifestation.Has(collections.FieldEdition))
	editionDate, _ := manifestation.Get(collections.FieldEditionDate)
	assert.Equal(t, "2020-01-09", editionDate)
	name, _ := manifestation.Get(collections.FieldTitle)
	assert.Equal(t, "Hallingdølen 2020.01.09", name)
	manifestationParent, _ := manifestation.Get(collections.FieldPartOfReference)
	assert.Equal(t, "1501", manifestationParent)

	// The duplicate check must have used the no-edition clause.
	var editionSearch string
	for _, call := range catalogue.searchCalls {
		if strings.Contains(call, "record_type=MANIFESTATION") {
			editionSearch = call
		}
	}
	assert.Contains(t, editionSearch, `not edition='*'`)
	assert.NotContains(t, editionSearch, "U-U-U")
}

/*
TestService_CreateManifestation_KnownEdition verifies a partially known
edition key is both searched and stored, with each known part doubled as a
typed alternative number.
*/
func TestService_CreateManifestation_KnownEdition(t *testing.T) {
	catalogue := &fakeCatalogue{
		results: map[string]*collections.ResultSet{
			collections.ByPriref("1001"):               single(serialTitleRecord()),
			collections.YearWorkByParent("1001", 2020): single(&collections.Record{Priref: "1501"}),
		},
		insertFn: func(database string, payload *collections.Payload) (*collections.Record, error) {
			return &collections.Record{Priref: "2001", Titles: []string{"Hallingdølen 2020.01.09"}}, nil
		},
	}

	_, err := newTestService(catalogue).CreateManifestation(context.Background(), ManifestationInput{
		TitleID:  "1001",
		Date:     "2020-01-09",
		Volume:   "84",
		Number:   "12",
		Username: "registrar",
	})
	require.NoError(t, err)

	require.Len(t, catalogue.inserts, 1)
	payload := catalogue.inserts[0].payload

	edition, _ := payload.Get(collections.FieldEdition)
	assert.Equal(t, "84-12-U", edition)

	numbers, _ := payload.Get(collections.FieldAlternativeNumbers)
	assert.Equal(t, []collections.AlternativeNumber{
		{Type: collections.AlternativeNumberTypeVolume, Value: "84"},
		{Type: collections.AlternativeNumberTypeNumber, Value: "12"},
	}, numbers)
}

func TestService_CreateManifestation_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input ManifestationInput
	}{
		{"missing_title", ManifestationInput{Date: "2020-01-09", Username: "u"}},
		{"missing_date", ManifestationInput{TitleID: "1001", Username: "u"}},
		{"bad_date", ManifestationInput{TitleID: "1001", Date: "09.01.2020", Username: "u"}},
		{"missing_username", ManifestationInput{TitleID: "1001", Date: "2020-01-09"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalogue := &fakeCatalogue{}
			_, err := newTestService(catalogue).CreateManifestation(context.Background(), tt.input)
			require.Error(t, err)
			assert.Empty(t, catalogue.searchCalls)
		})
	}
}

/*
TestService_CreateItem_Digital verifies the digital copy payload: DIGITAL
format, the URN written both as a typed alternative number and as the PID
field, and title identity pulled from the manifestation's parent chain.
*/
func TestService_CreateItem_Digital(t *testing.T) {
	catalogue := &fakeCatalogue{
		results: map[string]*collections.ResultSet{
			collections.ByPriref("2001"): single(manifestationWithChain()),
		},
		insertFn: func(database string, payload *collections.Payload) (*collections.Record, error) {
			return &collections.Record{Priref: "3001", Titles: []string{"Hallingdølen 2020.01.09"}}, nil
		},
	}

	item, err := newTestService(catalogue).CreateItem(context.Background(), Input{
		ManifestationID: "2001",
		Digital:         true,
		URN:             "URN:NBN:no-nb_avis_2020_01_09",
		Username:        "harvester",
	})
	require.NoError(t, err)

	require.Len(t, catalogue.inserts, 1)
	payload := catalogue.inserts[0].payload

	recordType, _ := payload.Get(collections.FieldRecordType)
	assert.Equal(t, "ITEM", recordType)
	format, _ := payload.Get(collections.FieldFormat)
	assert.Equal(t, "DIGITAL", format)
	urn, _ := payload.Get(collections.FieldPIDURN)
	assert.Equal(t, "URN:NBN:no-nb_avis_2020_01_09", urn)
	numbers, _ := payload.Get(collections.FieldAlternativeNumbers)
	assert.Equal(t, []collections.AlternativeNumber{
		{Type: collections.AlternativeNumberTypeURN, Value: "URN:NBN:no-nb_avis_2020_01_09"},
	}, numbers)
	assert.False(t, payload.Has(collections.FieldCurrentLocation))

	// The item inherits its name from the manifestation when none is given.
	name, _ := payload.Get(collections.FieldTitle)
	assert.Equal(t, "Hallingdølen 2020.01.09", name)

	assert.Equal(t, "3001", item.ID)
	assert.Equal(t, "2001", item.ParentID)
	assert.Equal(t, "1001", item.TitleID)
	assert.Equal(t, "Hallingdølen", item.TitleName)
	assert.Equal(t, collections.MaterialTypeNewspaper, item.MaterialType)
}

/*
TestService_CreateItem_PhysicalWithContainer verifies the container is
resolved in the locations database — created here, since it does not exist —
and referenced by id in the item payload.
*/
func TestService_CreateItem_PhysicalWithContainer(t *testing.T) {
	catalogue := &fakeCatalogue{
		results: map[string]*collections.ResultSet{
			collections.ByPriref("2001"): single(manifestationWithChain()),
		},
		insertFn: func(database string, payload *collections.Payload) (*collections.Record, error) {
			if database == collections.DatabaseLocations {
				return &collections.Record{Priref: "9001"}, nil
			}
			return &collections.Record{Priref: "3001"}, nil
		},
	}

	_, err := newTestService(catalogue).CreateItem(context.Background(), Input{
		ManifestationID:  "2001",
		ContainerBarcode: "BOX-0042",
		Username:         "registrar",
	})
	require.NoError(t, err)

	require.Len(t, catalogue.inserts, 2)
	assert.Equal(t, collections.DatabaseLocations, catalogue.inserts[0].database)
	barcode, _ := catalogue.inserts[0].payload.Get(collections.FieldBarcode)
	assert.Equal(t, "BOX-0042", barcode)

	itemPayload := catalogue.inserts[1].payload
	format, _ := itemPayload.Get(collections.FieldFormat)
	assert.Equal(t, "PHYSICAL", format)
	location, _ := itemPayload.Get(collections.FieldCurrentLocation)
	assert.Equal(t, "9001", location)
}

func TestService_CreateItem_DigitalInContainerRejected(t *testing.T) {
	catalogue := &fakeCatalogue{}

	_, err := newTestService(catalogue).CreateItem(context.Background(), Input{
		ManifestationID:  "2001",
		Digital:          true,
		ContainerBarcode: "BOX-0042",
		Username:         "registrar",
	})
	require.Error(t, err)
	assert.Empty(t, catalogue.searchCalls)
}

/*
TestService_UpdateItem_TriState verifies the three pointer states: an absent
name stays out of the payload, an empty URN serializes as explicit null, and
a container barcode resolves to a location reference.
*/
func TestService_UpdateItem_TriState(t *testing.T) {
	emptyURN := ""
	barcode := "BOX-0042"
	catalogue := &fakeCatalogue{
		results: map[string]*collections.ResultSet{
			collections.ByPriref("3001"):              single(manifestationWithChain()),
			collections.LocationByBarcode("BOX-0042"): single(&collections.Record{Priref: "9001"}),
		},
		updateFn: func(database string, payload *collections.Payload) (*collections.Record, error) {
			return &collections.Record{Priref: "3001", Titles: []string{"Hallingdølen 2020.01.09"}}, nil
		},
	}

	_, err := newTestService(catalogue).UpdateItem(context.Background(), Update{
		ID:               "3001",
		URN:              &emptyURN,
		ContainerBarcode: &barcode,
		Username:         "registrar",
	})
	require.NoError(t, err)

	require.Len(t, catalogue.updates, 1)
	payload := catalogue.updates[0]

	priref, _ := payload.Get(collections.FieldPriref)
	assert.Equal(t, "3001", priref)

	assert.False(t, payload.Has(collections.FieldTitle))

	urn, present := payload.Get(collections.FieldPIDURN)
	assert.True(t, present)
	assert.Nil(t, urn)

	location, _ := payload.Get(collections.FieldCurrentLocation)
	assert.Equal(t, "9001", location)

	// The existing container was found, never created.
	assert.Empty(t, catalogue.inserts)
}

/*
TestService_EnsureContainer_Existing verifies the found path returns the
stored id without writing.
*/
func TestService_EnsureContainer_Existing(t *testing.T) {
	catalogue := &fakeCatalogue{
		results: map[string]*collections.ResultSet{
			collections.LocationByBarcode("BOX-0042"): single(&collections.Record{Priref: "9001"}),
		},
	}

	container, err := newTestService(catalogue).EnsureContainer(context.Background(), "BOX-0042", "registrar")
	require.NoError(t, err)
	assert.Equal(t, "9001", container.ID)
	assert.Equal(t, "BOX-0042", container.Barcode)
	assert.Empty(t, catalogue.inserts)
}
