// Copyright (c) 2026 Arkiva. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package collections

import "time"

// # Domain Entities
//
// These are the flat value objects the mapper produces and the only shapes
// exposed to callers outside this package. They carry resolved values only:
// no nested references, no back-links, no further mutation after mapping.

// Title is the serial-level bibliographic entity for a publication.
type Title struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	StartDate      *time.Time   `json:"start_date"`
	EndDate        *time.Time   `json:"end_date"`
	Publisher      string       `json:"publisher,omitempty"`
	PublisherPlace string       `json:"publisher_place,omitempty"`
	Language       string       `json:"language,omitempty"`
	MaterialType   MaterialType `json:"material_type,omitempty"`
}

// Item is one physical or digital copy of a manifestation. The same shape is
// used for manifestation-level results on the creation path.
type Item struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Date         *time.Time   `json:"date"`
	MaterialType MaterialType `json:"material_type,omitempty"`
	TitleID      string       `json:"title_id,omitempty"`
	TitleName    string       `json:"title_name,omitempty"`
	Digital      bool         `json:"digital"`
	URN          string       `json:"urn,omitempty"`
	ParentID     string       `json:"parent_id,omitempty"`
}

// Publisher is a name record in the people database.
type Publisher struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Language is a term record in the languages database.
type Language struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PublisherPlace is a place term record.
type PublisherPlace struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// LocationRef identifies a storage container in the locations database.
type LocationRef struct {
	ID      string `json:"id"`
	Barcode string `json:"barcode"`
}
