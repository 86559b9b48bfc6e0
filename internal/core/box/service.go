// Copyright (c) 2026 Arkiva. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package box

import (
	"context"
	"time"

	"github.com/taibuivan/arkiva/internal/platform/validate"
	"github.com/taibuivan/arkiva/pkg/uuid"
)

// # Service Layer

// Service orchestrates the box bookkeeping rules.
type Service struct {
	repo Repository
}

// NewService constructs a box [Service].
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListBoxes returns a paginated box listing.
func (service *Service) ListBoxes(context context.Context, filter Filter, limit, offset int) ([]*Box, int, error) {
	return service.repo.ListBoxes(context, filter, limit, offset)
}

// GetBox fetches one box by identifier.
func (service *Service) GetBox(context context.Context, id string) (*Box, error) {
	return service.repo.GetBox(context, id)
}

// GetActiveBox fetches the currently active box for a title.
func (service *Service) GetActiveBox(context context.Context, titleID string) (*Box, error) {
	return service.repo.GetActiveBox(context, titleID)
}

/*
CreateBox registers a new box for a title and makes it the active one.

Description: The previous active box for the title is closed in the same
transaction, preserving the one-active-box-per-title invariant.

Returns:
  - *Box: The created box with its assigned identity
  - error: Validation or storage errors
*/
func (service *Service) CreateBox(context context.Context, box *Box) (*Box, error) {
	validator := &validate.Validator{}
	validator.Required(FieldTitleID, box.TitleID)
	validator.Required(FieldTitleName, box.TitleName).MaxLen(FieldTitleName, box.TitleName, 500)
	validator.Required(FieldBarcode, box.Barcode).MaxLen(FieldBarcode, box.Barcode, 100)
	validator.Range(FieldYear, box.Year, 1700, time.Now().Year()+1)
	if validator.HasErrors() {
		return nil, validator.Err()
	}

	if box.ID == "" {
		box.ID = uuid.New()
	}
	if err := service.repo.CreateBox(context, box); err != nil {
		return nil, err
	}
	return box, nil
}

// ActivateBox re-opens a previously closed box, closing the title's current
// active box.
func (service *Service) ActivateBox(context context.Context, id string) (*Box, error) {
	validator := &validate.Validator{}
	if validator.Required("id", id); validator.HasErrors() {
		return nil, validator.Err()
	}
	return service.repo.ActivateBox(context, id)
}
