// Copyright (c) 2026 Arkiva. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package collections

import "strings"

// EditionKeyUnknown is the key of a manifestation whose volume, number, and
// version are all unknown. Records matching it carry no edition field at all
// in the store (see [ManifestationByEdition] for the search-side workaround).
const EditionKeyUnknown = "U-U-U"

// editionPartUnknown is the placeholder for a missing edition key part.
const editionPartUnknown = "U"

// EditionKey derives the canonical "volume-number-version" string that
// distinguishes same-day editions of a title. Blank parts become "U".
//
// The search path and the creation path MUST both derive their key through
// this function: the key filters the duplicate-check search and is stored on
// the created manifestation, and any divergence between the two silently
// produces duplicate records.
//
//	EditionKey("", "12", "3") == "U-12-3"
func EditionKey(volume, number, version string) string {
	return strings.Join([]string{
		editionPart(volume),
		editionPart(number),
		editionPart(version),
	}, "-")
}

func editionPart(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return editionPartUnknown
	}
	return trimmed
}
