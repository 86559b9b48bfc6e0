// Copyright (c) 2026 Arkiva. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package item

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/arkiva/internal/collections"
	"github.com/taibuivan/arkiva/internal/platform/validate"
)

// # Service Layer

// Service orchestrates item and manifestation operations against the
// Collections catalogue.
//
// Each operation is an independent request-scoped workflow: resolve the
// records the payload must reference, build the payload with ids only,
// submit, and map the store's echo back to a flat entity. The service holds
// no state between calls and may run operations concurrently.
type Service struct {
	catalogue Catalogue
	logger    *slog.Logger

	// now is swapped in tests to pin audit timestamps.
	now func() time.Time
}

// NewService constructs an item [Service].
func NewService(catalogue Catalogue, logger *slog.Logger) *Service {
	return &Service{
		catalogue: catalogue,
		logger:    logger,
		now:       time.Now,
	}
}

/*
GetItem fetches one item by its store identifier.

Returns:
  - *collections.Item: The mapped entity with parent-chain fallbacks applied
  - error: collections.ErrItemNotFound on a zero-result lookup
*/
func (service *Service) GetItem(context context.Context, id string) (*collections.Item, error) {
	validator := &validate.Validator{}
	if validator.Required(FieldID, id); validator.HasErrors() {
		return nil, validator.Err()
	}

	results, err := service.catalogue.Search(context, collections.DatabaseTexts, collections.ByPriref(id), 1, 0)
	if err != nil {
		return nil, err
	}
	record := results.First()
	if record == nil {
		return nil, collections.ErrItemNotFound
	}
	return collections.MapRecordToItem(record), nil
}

/*
CreateManifestation ensures one dated edition exists under a serial title.

Description: The newspaper hierarchy interposes a per-year WORK between the
serial title and its manifestations, so the workflow is: fetch the title,
ensure the year work for the edition date's year, then search for an
existing manifestation by parent and edition key. When one exists it is
returned as-is — the operation is an ensure, not a blind insert. Otherwise
the manifestation is created carrying the edition key and its parts as
separately searchable alternative numbers.

Returns:
  - *collections.Item: The existing or created manifestation, mapped
  - error: Validation errors, collections.ErrTitleNotFound, or transport errors
*/
func (service *Service) CreateManifestation(context context.Context, input ManifestationInput) (*collections.Item, error) {
	date, err := service.validateManifestation(input)
	if err != nil {
		return nil, err
	}

	titleRecord, err := service.fetchRecord(context, input.TitleID, collections.ErrTitleNotFound)
	if err != nil {
		return nil, err
	}
	titleName := titleRecord.Name()

	yearWorkID, err := service.ensureYearWork(context, titleRecord, date, input.Username)
	if err != nil {
		return nil, err
	}

	// Search and create must use the identical key derivation, or same-day
	// editions silently duplicate.
	editionKey := collections.EditionKey(input.Volume, input.Number, input.Version)

	existing, err := service.catalogue.Search(context, collections.DatabaseTexts,
		collections.ManifestationByEdition(yearWorkID, date, editionKey), 1, 0)
	if err != nil {
		return nil, err
	}
	if record := existing.First(); record != nil {
		return collections.MapPartsRefToItem(record, titleRecord.Priref, titleName, titleRecord.MaterialType(), input.Date), nil
	}

	payload := collections.NewPayload().
		Set(collections.FieldRecordType, string(collections.RecordTypeManifestation)).
		Set(collections.FieldTitle, fmt.Sprintf("%s %s", titleName, date.Format("2006.01.02"))).
		Set(collections.FieldPartOfReference, yearWorkID).
		Set(collections.FieldEditionDate, date.Format("2006-01-02"))

	// A fully unknown edition stores no edition field at all; that is what
	// the `not edition='*'` search clause matches against.
	if editionKey != collections.EditionKeyUnknown {
		payload.Set(collections.FieldEdition, editionKey)
	}
	if input.Volume != "" {
		payload.AddAlternativeNumber(collections.AlternativeNumberTypeVolume, input.Volume)
	}
	if input.Number != "" {
		payload.AddAlternativeNumber(collections.AlternativeNumberTypeNumber, input.Number)
	}
	if input.Version != "" {
		payload.AddAlternativeNumber(collections.AlternativeNumberTypeVersion, input.Version)
	}
	payload.WithAudit(input.Username, service.now())

	record, err := service.catalogue.Insert(context, collections.DatabaseTexts, payload)
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "manifestation_created",
		slog.String("priref", record.Priref),
		slog.String("title_id", titleRecord.Priref),
		slog.String("edition", editionKey),
	)
	return collections.MapPartsRefToItem(record, titleRecord.Priref, titleName, titleRecord.MaterialType(), input.Date), nil
}

/*
CreateItem creates one physical or digital copy under a manifestation.

Description: The parent manifestation must already exist; its parent chain
supplies the title identity and material type the flat result carries. A
physical copy with a container barcode first resolves (or creates) the
container in the locations database and references it by id.

Returns:
  - *collections.Item: The created copy, mapped
  - error: Validation errors, collections.ErrManifestationNotFound, or
    transport errors
*/
func (service *Service) CreateItem(context context.Context, input Input) (*collections.Item, error) {
	validator := &validate.Validator{}
	validator.Required(FieldManifestationID, input.ManifestationID)
	validator.Required(FieldUsername, input.Username)
	validator.Custom(FieldBarcode, input.Digital && input.ContainerBarcode != "",
		"A digital item cannot be placed in a container")
	if validator.HasErrors() {
		return nil, validator.Err()
	}

	manifestation, err := service.fetchRecord(context, input.ManifestationID, collections.ErrManifestationNotFound)
	if err != nil {
		return nil, err
	}
	// The manifestation's own mapping resolves title identity and material
	// type through its intact parent chain.
	parentView := collections.MapRecordToItem(manifestation)

	name := input.Name
	if name == "" {
		name = manifestation.Name()
	}

	format := collections.FormatPhysical
	if input.Digital {
		format = collections.FormatDigital
	}

	payload := collections.NewPayload().
		Set(collections.FieldRecordType, string(collections.RecordTypeItem)).
		Set(collections.FieldTitle, name).
		Set(collections.FieldPartOfReference, input.ManifestationID).
		Set(collections.FieldFormat, string(format))

	if input.URN != "" {
		payload.AddAlternativeNumber(collections.AlternativeNumberTypeURN, input.URN)
		payload.Set(collections.FieldPIDURN, input.URN)
	}
	if input.ContainerBarcode != "" {
		container, err := service.EnsureContainer(context, input.ContainerBarcode, input.Username)
		if err != nil {
			return nil, err
		}
		payload.Set(collections.FieldCurrentLocation, container.ID)
	}
	payload.WithAudit(input.Username, service.now())

	record, err := service.catalogue.Insert(context, collections.DatabaseTexts, payload)
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "item_created",
		slog.String("priref", record.Priref),
		slog.String("manifestation_id", input.ManifestationID),
		slog.Bool("digital", input.Digital),
	)

	created := collections.MapPartsRefToItem(record, parentView.TitleID, parentView.TitleName, parentView.MaterialType, "")
	created.ParentID = input.ManifestationID
	if created.Date == nil {
		created.Date = parentView.Date
	}
	return created, nil
}

/*
UpdateItem rewrites selected fields of an existing item.

Description: nil pointer fields stay absent from the payload and keep their
stored value; empty strings serialize as explicit null, which the store
treats as "clear this field".

Returns:
  - *collections.Item: The updated copy, mapped
  - error: Validation errors, collections.ErrItemNotFound, or transport errors
*/
func (service *Service) UpdateItem(context context.Context, input Update) (*collections.Item, error) {
	validator := &validate.Validator{}
	validator.Required(FieldID, input.ID)
	validator.Required(FieldUsername, input.Username)
	if validator.HasErrors() {
		return nil, validator.Err()
	}

	existing, err := service.fetchRecord(context, input.ID, collections.ErrItemNotFound)
	if err != nil {
		return nil, err
	}
	parentView := collections.MapRecordToItem(existing)

	payload := collections.NewPayload().
		Set(collections.FieldPriref, input.ID)

	if input.Name != nil {
		if *input.Name == "" {
			payload.Null(collections.FieldTitle)
		} else {
			payload.Set(collections.FieldTitle, *input.Name)
		}
	}
	if input.URN != nil {
		if *input.URN == "" {
			payload.Null(collections.FieldPIDURN)
		} else {
			payload.Set(collections.FieldPIDURN, *input.URN)
			payload.AddAlternativeNumber(collections.AlternativeNumberTypeURN, *input.URN)
		}
	}
	if input.ContainerBarcode != nil {
		if *input.ContainerBarcode == "" {
			payload.Null(collections.FieldCurrentLocation)
		} else {
			container, err := service.EnsureContainer(context, *input.ContainerBarcode, input.Username)
			if err != nil {
				return nil, err
			}
			payload.Set(collections.FieldCurrentLocation, container.ID)
		}
	}
	payload.WithAudit(input.Username, service.now())

	record, err := service.catalogue.Update(context, collections.DatabaseTexts, payload)
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "item_updated", slog.String("priref", input.ID))

	updated := collections.MapPartsRefToItem(record, parentView.TitleID, parentView.TitleName, parentView.MaterialType, "")
	if updated.ParentID == "" {
		updated.ParentID = parentView.ParentID
	}
	if updated.Date == nil {
		updated.Date = parentView.Date
	}
	return updated, nil
}

/*
EnsureContainer resolves a storage container by barcode, creating it when it
does not exist yet.

Description: This is the same unlocked check-then-act sequence as the
reference entities on the title path — two concurrent callers with the same
barcode can race and create a duplicate container, which catalogers merge.

Returns:
  - *collections.LocationRef: The container's id and barcode
  - error: Validation errors or transport errors
*/
func (service *Service) EnsureContainer(context context.Context, barcode, username string) (*collections.LocationRef, error) {
	validator := &validate.Validator{}
	validator.Required(FieldBarcode, barcode)
	validator.Required(FieldUsername, username)
	if validator.HasErrors() {
		return nil, validator.Err()
	}

	results, err := service.catalogue.Search(context, collections.DatabaseLocations,
		collections.LocationByBarcode(barcode), 1, 0)
	if err != nil {
		return nil, err
	}
	if record := results.First(); record != nil {
		return &collections.LocationRef{ID: record.Priref, Barcode: barcode}, nil
	}

	payload := collections.NewPayload().
		Set(collections.FieldName, barcode).
		Set(collections.FieldBarcode, barcode).
		WithAudit(username, service.now())

	created, err := service.catalogue.Insert(context, collections.DatabaseLocations, payload)
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "container_created",
		slog.String("priref", created.Priref),
		slog.String("barcode", barcode),
	)
	return &collections.LocationRef{ID: created.Priref, Barcode: barcode}, nil
}

// ensureYearWork resolves the per-year collector WORK under a serial title,
// creating it on a zero-result search. Same unlocked check-then-act as every
// other ensure step.
func (service *Service) ensureYearWork(context context.Context, titleRecord *collections.Record, date time.Time, username string) (string, error) {
	year := date.Year()

	results, err := service.catalogue.Search(context, collections.DatabaseTexts,
		collections.YearWorkByParent(titleRecord.Priref, year), 1, 0)
	if err != nil {
		return "", err
	}
	if record := results.First(); record != nil {
		return record.Priref, nil
	}

	payload := collections.NewPayload().
		Set(collections.FieldRecordType, string(collections.RecordTypeWork)).
		Set(collections.FieldWorkType, string(collections.WorkTypeYear)).
		Set(collections.FieldTitle, fmt.Sprintf("%s %d", titleRecord.Name(), year)).
		Set(collections.FieldPartOfReference, titleRecord.Priref).
		Set(collections.FieldDatingStart, fmt.Sprintf("%d", year)).
		Set(collections.FieldDatingEnd, fmt.Sprintf("%d", year)).
		WithAudit(username, service.now())

	created, err := service.catalogue.Insert(context, collections.DatabaseTexts, payload)
	if err != nil {
		return "", err
	}

	service.logger.InfoContext(context, "year_work_created",
		slog.String("priref", created.Priref),
		slog.String("title_id", titleRecord.Priref),
		slog.Int("year", year),
	)
	return created.Priref, nil
}

// fetchRecord looks up one record by priref, translating a zero-result
// search into the caller's not-found kind.
func (service *Service) fetchRecord(context context.Context, id string, notFound error) (*collections.Record, error) {
	results, err := service.catalogue.Search(context, collections.DatabaseTexts, collections.ByPriref(id), 1, 0)
	if err != nil {
		return nil, err
	}
	record := results.First()
	if record == nil {
		return nil, notFound
	}
	return record, nil
}

func (service *Service) validateManifestation(input ManifestationInput) (time.Time, error) {
	validator := &validate.Validator{}
	validator.Required(FieldTitleID, input.TitleID)
	validator.Required(FieldDate, input.Date)
	validator.Required(FieldUsername, input.Username)

	date, parseErr := time.Parse("2006-01-02", input.Date)
	validator.Custom(FieldDate, input.Date != "" && parseErr != nil, "Must be a yyyy-MM-dd date")

	if validator.HasErrors() {
		return time.Time{}, validator.Err()
	}
	return date, nil
}
