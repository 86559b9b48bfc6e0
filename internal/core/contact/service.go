// Copyright (c) 2026 Arkiva. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package contact

import (
	"context"

	"github.com/taibuivan/arkiva/internal/platform/validate"
	"github.com/taibuivan/arkiva/pkg/uuid"
)

// # Service Layer

// Service orchestrates the contact bookkeeping rules.
type Service struct {
	repo Repository
}

// NewService constructs a contact [Service].
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListContacts returns every contact registered for a title.
func (service *Service) ListContacts(context context.Context, titleID string) ([]*Contact, error) {
	validator := &validate.Validator{}
	if validator.Required(FieldTitleID, titleID); validator.HasErrors() {
		return nil, validator.Err()
	}
	return service.repo.ListContacts(context, titleID)
}

// GetContact fetches one contact by identifier.
func (service *Service) GetContact(context context.Context, id string) (*Contact, error) {
	return service.repo.GetContact(context, id)
}

// CreateContact registers a new contact for a title.
func (service *Service) CreateContact(context context.Context, contact *Contact) (*Contact, error) {
	if err := validateContact(contact, true); err != nil {
		return nil, err
	}

	if contact.ID == "" {
		contact.ID = uuid.New()
	}
	if err := service.repo.CreateContact(context, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// UpdateContact replaces the mutable fields of an existing contact.
func (service *Service) UpdateContact(context context.Context, contact *Contact) (*Contact, error) {
	if err := validateContact(contact, false); err != nil {
		return nil, err
	}

	if err := service.repo.UpdateContact(context, contact); err != nil {
		return nil, err
	}
	return service.repo.GetContact(context, contact.ID)
}

// DeleteContact removes a contact.
func (service *Service) DeleteContact(context context.Context, id string) error {
	return service.repo.DeleteContact(context, id)
}

func validateContact(contact *Contact, requireTitle bool) error {
	validator := &validate.Validator{}
	if requireTitle {
		validator.Required(FieldTitleID, contact.TitleID)
	}
	validator.Required(FieldName, contact.Name).MaxLen(FieldName, contact.Name, 200)
	if contact.Email != "" {
		validator.Email(FieldEmail, contact.Email)
	}
	validator.MaxLen(FieldPhone, contact.Phone, 50)
	validator.MaxLen(FieldNote, contact.Note, 2000)
	if validator.HasErrors() {
		return validator.Err()
	}
	return nil
}
