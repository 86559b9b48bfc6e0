// Copyright (c) 2026 Arkiva. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package collections

import (
	"fmt"
	"strings"
	"time"
)

// # Query Builder
//
// Collections consumes a single boolean query string with the grammar
//
//	field op value [and field op value ...]
//
// String literals are double-quoted and may contain the * wildcard.
// Pagination (limit, startfrom) travels as separate numeric parameters on
// the request, never inside the boolean string. These functions are the wire
// contract with the store and must be reproduced exactly.

// ByPriref matches a single record by its store-assigned identifier.
func ByPriref(id string) string {
	return "priref=" + id
}

// TitleByName matches serial WORK records with an exact title.
func TitleByName(name string) string {
	return fmt.Sprintf(`record_type=WORK and work.description_type=SERIAL and title=%s`, quote(name))
}

// YearWorkByParent matches the per-year WORK collector under a serial title.
func YearWorkByParent(titleID string, year int) string {
	return fmt.Sprintf(`record_type=WORK and work.description_type=YEAR and part_of_reference.lref=%s and dating.date.start='%d'`, titleID, year)
}

// ManifestationByEdition matches the manifestation of a parent work on a
// given day carrying a given edition key.
//
// The store's grammar has no literal-null comparison, and manifestations
// whose volume, number, and version are all unknown carry no edition field
// at all. For the [EditionKeyUnknown] key the edition clause is therefore
// substituted with `not edition='*'` — matching exactly the records that
// have no edition. This substitution is a required workaround, not an
// optimization; without it un-edited records are never found and duplicates
// get created.
func ManifestationByEdition(parentID string, date time.Time, editionKey string) string {
	editionClause := fmt.Sprintf(`edition='%s'`, editionKey)
	if editionKey == EditionKeyUnknown {
		editionClause = `not edition='*'`
	}
	return fmt.Sprintf(`record_type=MANIFESTATION and part_of_reference.lref=%s and edition.date='%s' and %s`,
		parentID, date.Format(dateLayoutISO), editionClause)
}

// PublisherByName matches a publisher name record in the people database.
func PublisherByName(name string) string {
	return fmt.Sprintf(`name.type=PUBL and name=%s`, quote(name))
}

// LanguageByName matches a language term record in the languages database.
func LanguageByName(name string) string {
	return fmt.Sprintf(`term.type=LANGUAGE and term=%s`, quote(name))
}

// PlaceByName matches a publication-place term record.
func PlaceByName(name string) string {
	return fmt.Sprintf(`term=%s and term.type="place"`, quote(name))
}

// LocationByBarcode matches a storage container in the locations database.
func LocationByBarcode(barcode string) string {
	return fmt.Sprintf(`barcode=%s`, quote(barcode))
}

// dateLayoutISO is the yyyy-MM-dd layout used by edition.date clauses and
// audit fields.
const dateLayoutISO = "2006-01-02"

// quote wraps a literal in double quotes. Embedded double quotes are dropped
// rather than escaped — the grammar has no escape sequence, and a stray
// quote would otherwise truncate the clause. The * wildcard passes through.
func quote(literal string) string {
	return `"` + strings.ReplaceAll(literal, `"`, "") + `"`
}
