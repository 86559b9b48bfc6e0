package contact

import "context"

// Repository defines the data access contract.
type Repository interface {
	ListContacts(context context.Context, titleID string) ([]*Contact, error)
	GetContact(context context.Context, id string) (*Contact, error)
	CreateContact(context context.Context, contact *Contact) error
	UpdateContact(context context.Context, contact *Contact) error
	DeleteContact(context context.Context, id string) error
}
