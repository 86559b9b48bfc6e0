/*
Package title exposes the serial-title side of the Collections catalogue:
exact-name search, single-title lookup, and the multi-step title creation
workflow that first ensures the referenced publisher, language, and
publication-place records exist.
*/
package title

import "github.com/taibuivan/arkiva/internal/collections"

// Input is the caller-supplied shape for creating a serial title.
//
// Dates are free text in the store's permissive notation (bare year,
// yyyy-MM, yyyy-MM-dd, yyyy.MM.dd); reference entities are named, never
// identified — the service resolves or creates them and wires ids into the
// payload.
type Input struct {
	Name           string `json:"name"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	Publisher      string `json:"publisher"`
	PublisherPlace string `json:"publisher_place"`
	Language       string `json:"language"`
	MaterialType   string `json:"material_type"`
	Username       string `json:"username"`
}

// # Field Identifiers

// Field names for validation details and dynamic payload mapping.
const (
	FieldName         = "name"
	FieldStartDate    = "start_date"
	FieldEndDate      = "end_date"
	FieldMaterialType = "material_type"
	FieldUsername     = "username"
)

// materialTypes are the accepted values for [Input.MaterialType].
var materialTypes = []string{
	string(collections.MaterialTypeNewspaper),
	string(collections.MaterialTypePeriodical),
	string(collections.MaterialTypeMonograph),
}
