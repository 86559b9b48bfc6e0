// Copyright (c) 2026 Arkiva. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package collections_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/arkiva/internal/collections"
)

/*
TestEditionKey verifies the canonical volume-number-version derivation.
*/
func TestEditionKey(t *testing.T) {
	tests := []struct {
		name     string
		volume   string
		number   string
		version  string
		expected string
	}{
		{"all_present", "113", "4", "2", "113-4-2"},
		{"missing_volume", "", "12", "3", "U-12-3"},
		{"missing_number", "113", "", "3", "113-U-3"},
		{"whitespace_is_missing", " ", "\t", "", collections.EditionKeyUnknown},
		{"all_missing", "", "", "", "U-U-U"},
		{"parts_are_trimmed", " 113 ", " 4 ", " 2 ", "113-4-2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, collections.EditionKey(tt.volume, tt.number, tt.version))
		})
	}
}

/*
TestManifestationByEdition verifies the boolean query, including the
mandatory substitution of a no-edition clause for the all-unknown key.
*/
func TestManifestationByEdition(t *testing.T) {
	date := time.Date(2020, time.January, 9, 0, 0, 0, 0, time.UTC)

	t.Run("known_edition", func(t *testing.T) {
		query := collections.ManifestationByEdition("1001", date, "113-4-2")
		assert.Equal(t,
			`record_type=MANIFESTATION and part_of_reference.lref=1001 and edition.date='2020-01-09' and edition='113-4-2'`,
			query)
	})

	t.Run("unknown_edition_substitutes_not_clause", func(t *testing.T) {
		query := collections.ManifestationByEdition("1001", date, collections.EditionKeyUnknown)
		assert.Equal(t,
			`record_type=MANIFESTATION and part_of_reference.lref=1001 and edition.date='2020-01-09' and not edition='*'`,
			query)
		assert.NotContains(t, query, "U-U-U")
	})
}

/*
TestQueryBuilders covers the remaining boolean query constructors.
*/
func TestQueryBuilders(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected string
	}{
		{"by_priref", collections.ByPriref("42"), `priref=42`},
		{"title_by_name", collections.TitleByName("Hallingdølen"),
			`record_type=WORK and work.description_type=SERIAL and title="Hallingdølen"`},
		{"title_with_wildcard", collections.TitleByName("Halling*"),
			`record_type=WORK and work.description_type=SERIAL and title="Halling*"`},
		{"embedded_quote_dropped", collections.TitleByName(`Har "sitat"`),
			`record_type=WORK and work.description_type=SERIAL and title="Har sitat"`},
		{"year_work_by_parent", collections.YearWorkByParent("1001", 2020),
			`record_type=WORK and work.description_type=YEAR and part_of_reference.lref=1001 and dating.date.start='2020'`},
		{"publisher_by_name", collections.PublisherByName("Hallingdølen AS"),
			`name.type=PUBL and name="Hallingdølen AS"`},
		{"language_by_name", collections.LanguageByName("Norsk"),
			`term.type=LANGUAGE and term="Norsk"`},
		{"place_by_name", collections.PlaceByName("Ål"),
			`term="Ål" and term.type="place"`},
		{"location_by_barcode", collections.LocationByBarcode("lb123"),
			`barcode="lb123"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.query)
		})
	}
}
