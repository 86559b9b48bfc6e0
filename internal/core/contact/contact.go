// Package contact manages the production contacts registered per newspaper
// title: who to call when a legal-deposit delivery stops arriving.
package contact

import "time"

// Contact is one production contact for a newspaper title.
type Contact struct {
	ID        string    `json:"id"`
	TitleID   string    `json:"title_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// # Field Identifiers

const (
	FieldTitleID = "title_id"
	FieldName    = "name"
	FieldEmail   = "email"
	FieldPhone   = "phone"
	FieldNote    = "note"
)
