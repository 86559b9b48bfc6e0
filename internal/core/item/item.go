/*
Package item exposes the copy-level side of the Collections catalogue:
item lookup, item creation and update under a manifestation, the
ensure-or-create manifestation workflow for a title plus date plus edition,
and container resolution by barcode.
*/
package item

// ManifestationInput requests one dated edition under a serial title.
//
// Volume, number, and version together form the edition key; any of them may
// be blank. The same key derivation filters the duplicate-check search and
// is written to the created record — see the collections package.
type ManifestationInput struct {
	TitleID  string `json:"title_id"`
	Date     string `json:"date"`
	Volume   string `json:"volume"`
	Number   string `json:"number"`
	Version  string `json:"version"`
	Username string `json:"username"`
}

// Input is the caller-supplied shape for creating an item.
type Input struct {
	ManifestationID  string `json:"manifestation_id"`
	Name             string `json:"name"`
	Digital          bool   `json:"digital"`
	URN              string `json:"urn"`
	ContainerBarcode string `json:"container_barcode"`
	Username         string `json:"username"`
}

// Update is the caller-supplied shape for updating an item.
//
// Pointer fields are tri-state: nil leaves the stored value untouched, an
// empty string clears it in the store (serialized as explicit null), and a
// value replaces it.
type Update struct {
	ID               string  `json:"id"`
	Name             *string `json:"name"`
	URN              *string `json:"urn"`
	ContainerBarcode *string `json:"container_barcode"`
	Username         string  `json:"username"`
}

// # Field Identifiers

const (
	FieldID              = "id"
	FieldTitleID         = "title_id"
	FieldManifestationID = "manifestation_id"
	FieldDate            = "date"
	FieldBarcode         = "barcode"
	FieldUsername        = "username"
)
