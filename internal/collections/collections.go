// Copyright (c) 2026 Arkiva. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package collections implements the record model, mapping engine, and client
for the external "Collections" bibliographic store.

Collections stores every bibliographic entity — serial Title (WORK), dated
edition (MANIFESTATION), physical or digital copy (ITEM), plus the reference
entities they point to — as the same generic, self-describing record type.
The packages in internal/core never see that raw shape: this package walks
the record graph, applies parent-chain fallback rules, and hands out flat
domain values.

Layout:

  - record.go:  the generic record graph node and its fail-closed accessors.
  - mapper.go:  record graph → domain entity conversion.
  - query.go:   boolean search-string construction (the wire contract).
  - edition.go: the canonical "volume-number-version" edition key.
  - payload.go: flat dotted-key create/update bodies with tri-state fields.
  - client.go:  the HTTP transport with OAuth2 client credentials.
  - retry.go:   timeout classification and bounded backoff.
  - errors.go:  the not-found / unavailable / conflict taxonomy.
*/
package collections

import "strings"

// # Logical Databases

// Collections partitions its record space into named databases selected per
// request. All four share the same API and record format.
const (
	DatabaseTexts     = "texts"
	DatabasePeople    = "people"
	DatabaseLanguages = "languages"
	DatabaseLocations = "locations"
)

// # Record Type Enumeration

// RecordType is the level of a record in the bibliographic hierarchy.
type RecordType string

const (
	RecordTypeWork          RecordType = "WORK"
	RecordTypeManifestation RecordType = "MANIFESTATION"
	RecordTypeItem          RecordType = "ITEM"
)

// ParseRecordType maps free text onto a [RecordType].
// Unrecognized text yields the empty value — never an error.
func ParseRecordType(text string) RecordType {
	switch {
	case strings.EqualFold(text, string(RecordTypeWork)):
		return RecordTypeWork
	case strings.EqualFold(text, string(RecordTypeManifestation)):
		return RecordTypeManifestation
	case strings.EqualFold(text, string(RecordTypeItem)):
		return RecordTypeItem
	}
	return ""
}

// # Work Description Type Enumeration

// WorkType distinguishes the kinds of WORK-level records.
//
// A SERIAL work is the publication title itself; a YEAR work is the per-year
// collector inserted between a newspaper title and its manifestations.
type WorkType string

const (
	WorkTypeSerial      WorkType = "SERIAL"
	WorkTypeYear        WorkType = "YEAR"
	WorkTypeMonographic WorkType = "MONOGRAPHIC"
)

// ParseWorkType maps free text onto a [WorkType]; unrecognized text yields "".
func ParseWorkType(text string) WorkType {
	switch {
	case strings.EqualFold(text, string(WorkTypeSerial)):
		return WorkTypeSerial
	case strings.EqualFold(text, string(WorkTypeYear)):
		return WorkTypeYear
	case strings.EqualFold(text, string(WorkTypeMonographic)):
		return WorkTypeMonographic
	}
	return ""
}

// # Format Enumeration

// Format is the carrier of an ITEM-level record.
type Format string

const (
	FormatDigital  Format = "DIGITAL"
	FormatPhysical Format = "PHYSICAL"
)

// ParseFormat maps free text onto a [Format]; unrecognized text yields "".
func ParseFormat(text string) Format {
	switch {
	case strings.EqualFold(text, string(FormatDigital)):
		return FormatDigital
	case strings.EqualFold(text, string(FormatPhysical)):
		return FormatPhysical
	}
	return ""
}

// # Material Type Enumeration

// MaterialType classifies what kind of publication a record describes.
type MaterialType string

const (
	MaterialTypeNewspaper  MaterialType = "NEWSPAPER"
	MaterialTypePeriodical MaterialType = "PERIODICAL"
	MaterialTypeMonograph  MaterialType = "MONOGRAPH"
)

// submediumLabels maps the Norwegian free-text "submedium" values that
// catalogers enter in Collections onto the closed [MaterialType] enumeration.
var submediumLabels = map[MaterialType][]string{
	MaterialTypeNewspaper:  {"Avis"},
	MaterialTypePeriodical: {"Tidsskrift", "Periodika"},
	MaterialTypeMonograph:  {"Monografi", "Bok"},
}

// SubmediumLabel returns the canonical Norwegian submedium label written to
// the store for this material type, or "" for the zero value.
func (materialType MaterialType) SubmediumLabel() string {
	labels := submediumLabels[materialType]
	if len(labels) == 0 {
		return ""
	}
	return labels[0]
}

// ParseMaterialType resolves a free-text submedium label against the known
// Norwegian labels with an exact, case-insensitive match.
// Unmatched text yields the empty value — never an error, because the store
// is shared with catalogers who enter free text.
func ParseMaterialType(text string) MaterialType {
	trimmed := strings.TrimSpace(text)
	for materialType, labels := range submediumLabels {
		for _, label := range labels {
			if strings.EqualFold(trimmed, label) {
				return materialType
			}
		}
	}
	return ""
}
