// Copyright (c) 2026 Arkiva. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package collections

import (
	"strings"
	"time"
)

// # Domain Mapper
//
// Pure conversion from record graph nodes to flat domain entities. Mapping
// functions are total: they never return an error and absorb every "missing
// optional field" case as a zero value in the output. Only the structurally
// required identifier is assumed present, because the store guarantees
// identifier assignment.

// maxParentDepth bounds every parent-chain walk. The newspaper hierarchy is
// Title→Year→Manifestation→Item, so three hops reach the serial work from
// any item.
const maxParentDepth = 3

// MapRecordToTitle copies a WORK-level record into a [Title].
//
// Titles carry their submedium directly (unlike items), so material type
// resolution never consults the parent chain here.
func MapRecordToTitle(record *Record) *Title {
	return &Title{
		ID:             record.Priref,
		Name:           record.Name(),
		StartDate:      record.StartDate(),
		EndDate:        record.EndDate(),
		Publisher:      record.Publisher(),
		PublisherPlace: record.PlaceOfPublication(),
		Language:       record.Language(),
		MaterialType:   record.MaterialType(),
	}
}

// MapRecordToItem converts an ITEM-level search result — with its intact
// parent chain — into an [Item].
//
// Fallback rules, in order:
//   - date: the record's own dating, then a date suffix embedded in its
//     name text, then the immediate parent's date.
//   - material type: the record's own submedium, then the parent chain up
//     to the serial title, skipping the per-year collector (items usually
//     carry none; manifestations rarely do; the title is authoritative).
//   - title identity: the nearest ancestor whose record type is WORK.
func MapRecordToItem(record *Record) *Item {
	parent := record.FirstParent()

	item := &Item{
		ID:           record.Priref,
		Name:         record.Name(),
		Date:         resolveItemDate(record, parent),
		MaterialType: resolveMaterialType(record),
		Digital:      record.Format() == FormatDigital,
		URN:          record.URN(),
	}

	if parent != nil {
		item.ParentID = parent.Priref
	}
	if titleRecord := findTitleAncestor(record); titleRecord != nil {
		item.TitleID = titleRecord.Priref
		item.TitleName = titleRecord.Name()
	}
	return item
}

// MapPartsRefToItem converts a forward "Parts" reference — a child record
// without an onward parent chain — into an [Item], using title identity and
// material type the caller already resolved from an ancestor search result.
//
// A non-blank explicitDateText takes priority over the child's own embedded
// date; otherwise the child's parsed date is used.
func MapPartsRefToItem(child *Record, titleID, titleName string, materialType MaterialType, explicitDateText string) *Item {
	item := &Item{
		ID:           child.Priref,
		Name:         child.Name(),
		MaterialType: materialType,
		TitleID:      titleID,
		TitleName:    titleName,
		Digital:      child.Format() == FormatDigital,
		URN:          child.URN(),
	}

	if strings.TrimSpace(explicitDateText) != "" {
		if parsed, ok := ParseDating(explicitDateText); ok {
			item.Date = &parsed
		}
	}
	if item.Date == nil {
		item.Date = resolveItemDate(child, nil)
	}
	return item
}

// resolveItemDate applies the item date fallback chain.
func resolveItemDate(record *Record, parent *Record) *time.Time {
	if date := record.Date(); date != nil {
		return date
	}
	if date := embeddedNameDate(record.Name()); date != nil {
		return date
	}
	if parent != nil {
		return parent.Date()
	}
	return nil
}

// embeddedNameDate extracts a date from the trailing token of a record name.
// Item names conventionally end in the edition date ("Hallingdølen 2020.01.09").
func embeddedNameDate(name string) *time.Time {
	fields := strings.Fields(name)
	if len(fields) < 2 {
		return nil
	}
	if parsed, ok := ParseDating(fields[len(fields)-1]); ok {
		return &parsed
	}
	return nil
}

// resolveMaterialType walks the parent chain looking for a submedium. A
// per-year collector WORK carries none and sits between every manifestation
// and its serial title, so it is skipped without consuming a fallback level —
// otherwise an item's chain would end one hop short of the authoritative
// title submedium.
func resolveMaterialType(record *Record) MaterialType {
	current := record
	for depth := 0; current != nil && depth <= 2; {
		if materialType := current.MaterialType(); materialType != "" {
			return materialType
		}
		if current.WorkType() != WorkTypeYear {
			depth++
		}
		current = current.FirstParent()
	}
	return ""
}

// findTitleAncestor walks the back-reference chain until it meets a WORK.
// A per-year collector WORK is skipped in favor of the serial title above it
// when that parent is intact.
func findTitleAncestor(record *Record) *Record {
	current := record.FirstParent()
	for depth := 0; current != nil && depth < maxParentDepth; depth++ {
		if current.RecordType() == RecordTypeWork {
			if current.WorkType() == WorkTypeYear {
				if serial := current.FirstParent(); serial != nil && serial.RecordType() == RecordTypeWork {
					return serial
				}
			}
			return current
		}
		current = current.FirstParent()
	}
	return nil
}
