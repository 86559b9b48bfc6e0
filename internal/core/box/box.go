/*
Package box manages the physical-box bookkeeping for newspaper circulation.

Incoming legal-deposit copies of a newspaper are collected in a box per
title; when a box fills up it is closed and shipped to the depot, and a new
active box takes its place. This is plain relational bookkeeping on the
admin database — the catalogue knows the boxes only once their items are
registered with a container barcode.
*/
package box

import "time"

// Box is one physical collection box for a newspaper title.
type Box struct {
	ID        string    `json:"id"`
	TitleID   string    `json:"title_id"`
	TitleName string    `json:"title_name"`
	Year      int       `json:"year"`
	Barcode   string    `json:"barcode"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Filter holds the parameters for a paginated box listing. Zero values mean
// "no constraint".
type Filter struct {
	TitleID string
	Year    int
	Active  *bool
}

// # Field Identifiers

const (
	FieldTitleID   = "title_id"
	FieldTitleName = "title_name"
	FieldYear      = "year"
	FieldBarcode   = "barcode"
)
