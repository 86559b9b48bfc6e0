// Copyright (c) 2026 Arkiva. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package collections

import (
	"log/slog"
	"strings"
	"time"
)

// # Wire Model

// LanguageValue is one entry of a multi-language value list. Collections
// returns every enumerated field as parallel entries tagged "neutral",
// "english", and so on; only the neutral entry is semantically authoritative.
type LanguageValue struct {
	Lang string `json:"lang"`
	Text string `json:"value"`
}

// LanguageList is one language-tagged value list.
type LanguageList []LanguageValue

// Dating is a record's dating range. Start and end are free text: either a
// bare 4-digit year or a full date, in whatever notation the cataloger used.
type Dating struct {
	Start string `json:"dating.date.start"`
	End   string `json:"dating.date.end"`
}

// AlternativeNumber is a typed secondary identifier (URN, Årgang, Avisnr, …).
type AlternativeNumber struct {
	Type  string `json:"alternative_number.type"`
	Value string `json:"alternative_number"`
}

// PartOfRef is the back-reference to a record's parent. The wrapped record is
// a full sub-graph and may carry its own Part_of chain; it is populated only
// on search results, never on create/update payloads.
type PartOfRef struct {
	Parent *Record `json:"part_of_reference"`
}

// PartsRef is a forward reference to a child record. The wrapped record has
// the same shape as a search result but carries no onward Part_of link.
type PartsRef struct {
	Child *Record `json:"parts_reference"`
}

// Record is the generic Collections record: every entity in the store —
// Work/Title, Manifestation, Item, Location, Name, Term — is this one shape,
// distinguished only by its record_type tag.
//
// The type permits arbitrary nesting; the accessors below only ever descend
// the bounded Title→Manifestation→Item depth the newspaper domain uses.
type Record struct {
	Priref              string              `json:"priref"`
	ObjectNumber        string              `json:"object_number"`
	Titles              []string            `json:"title"`
	RecordTypes         []LanguageList      `json:"record_type"`
	WorkTypes           []LanguageList      `json:"work.description_type"`
	Formats             []LanguageList      `json:"format"`
	Submedium           []string            `json:"submedium"`
	Dating              []Dating            `json:"Dating"`
	Publishers          []string            `json:"publisher"`
	PlacesOfPublication []string            `json:"place_of_publication"`
	Languages           []string            `json:"language"`
	Barcodes            []string            `json:"barcode"`
	AlternativeNumbers  []AlternativeNumber `json:"Alternative_number"`
	PartOf              []PartOfRef         `json:"Part_of"`
	Parts               []PartsRef          `json:"Parts"`
}

// # Neutral-Tag Selection

const languageTagNeutral = "neutral"

// neutralText unwraps a language-tagged field: it selects the first value
// list, then the entry tagged neutral. Absence at any layer yields "".
func neutralText(lists []LanguageList) string {
	if len(lists) == 0 {
		return ""
	}
	for _, value := range lists[0] {
		if value.Lang == languageTagNeutral {
			return strings.TrimSpace(value.Text)
		}
	}
	return ""
}

// neutralEnum selects the neutral-tagged text and runs it through the target
// enumeration's parse function. This is the one shared unwrap-then-parse
// path for every enumerated record field.
func neutralEnum[T ~string](lists []LanguageList, parse func(string) T) T {
	return parse(neutralText(lists))
}

// # Accessors
//
// All accessors fail closed: a missing list layer, an unknown enum value, or
// unparseable free text yields the zero value, never a panic or an error.

// Name returns the record's first title string, or "".
func (record *Record) Name() string {
	if len(record.Titles) == 0 {
		return ""
	}
	return strings.TrimSpace(record.Titles[0])
}

// RecordType returns the record's hierarchy level, or "" when absent.
func (record *Record) RecordType() RecordType {
	return neutralEnum(record.RecordTypes, ParseRecordType)
}

// WorkType returns the work description type, or "" when absent.
func (record *Record) WorkType() WorkType {
	return neutralEnum(record.WorkTypes, ParseWorkType)
}

// Format returns the item carrier format, or "" when absent.
// Only ITEM-level records carry a format.
func (record *Record) Format() Format {
	return neutralEnum(record.Formats, ParseFormat)
}

// MaterialType resolves the record's own submedium text, or "" when the
// record carries none (Items usually do not; Titles always do).
func (record *Record) MaterialType() MaterialType {
	if len(record.Submedium) == 0 {
		return ""
	}
	return ParseMaterialType(record.Submedium[0])
}

// StartDate parses the first dating entry's start text, or nil.
func (record *Record) StartDate() *time.Time {
	if len(record.Dating) == 0 {
		return nil
	}
	return record.parseDating(record.Dating[0].Start)
}

// EndDate parses the first dating entry's end text, or nil.
func (record *Record) EndDate() *time.Time {
	if len(record.Dating) == 0 {
		return nil
	}
	return record.parseDating(record.Dating[0].End)
}

// Date is the record's single date: the start of its first dating range.
func (record *Record) Date() *time.Time {
	return record.StartDate()
}

// Publisher returns the record's first publisher name, or "".
func (record *Record) Publisher() string {
	return firstString(record.Publishers)
}

// PlaceOfPublication returns the record's first publication place, or "".
func (record *Record) PlaceOfPublication() string {
	return firstString(record.PlacesOfPublication)
}

// Language returns the record's first language name, or "".
func (record *Record) Language() string {
	return firstString(record.Languages)
}

// Barcode returns the record's first barcode, or "" (location records only).
func (record *Record) Barcode() string {
	return firstString(record.Barcodes)
}

// URN returns the value of the first alternative number typed "URN", or "".
func (record *Record) URN() string {
	for _, number := range record.AlternativeNumbers {
		if number.Type == AlternativeNumberTypeURN {
			return number.Value
		}
	}
	return ""
}

// FirstParent descends the back-reference list to the record's parent node.
// Returns nil when the record has no intact parent chain (creation echoes
// omit it; only search results carry it).
func (record *Record) FirstParent() *Record {
	for _, ref := range record.PartOf {
		if ref.Parent != nil {
			return ref.Parent
		}
	}
	return nil
}

// ChildRefs returns the record's forward "Parts" references, skipping empty
// wrappers.
func (record *Record) ChildRefs() []*Record {
	var children []*Record
	for _, ref := range record.Parts {
		if ref.Child != nil {
			children = append(children, ref.Child)
		}
	}
	return children
}

// # Dating Parsing

// datingLayouts are the notations catalogers actually use, tried in order.
// The list is ordered longest-first so a full date never half-matches a
// shorter layout.
var datingLayouts = []string{
	"2006-01-02",
	"2006.01.02",
	"2006-01",
	"2006",
}

// ParseDating parses a dating text permissively: bare year, yyyy-MM,
// yyyy-MM-dd, or yyyy.MM.dd. It reports false for anything else.
func ParseDating(text string) (time.Time, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return time.Time{}, false
	}
	for _, layout := range datingLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// parseDating applies [ParseDating] and logs a warning on failure. Upstream
// data is not schema-guaranteed — the store is shared with non-automated
// catalogers — so a bad date is an operational signal, not an error.
func (record *Record) parseDating(text string) *time.Time {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	parsed, ok := ParseDating(text)
	if !ok {
		slog.Warn("collections_unparseable_dating",
			slog.String("value", text),
			slog.String("priref", record.Priref),
		)
		return nil
	}
	return &parsed
}

func firstString(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(values[0])
}
