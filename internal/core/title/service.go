// Copyright (c) 2026 Arkiva. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/arkiva/internal/collections"
	"github.com/taibuivan/arkiva/internal/platform/validate"
	"github.com/taibuivan/arkiva/pkg/slice"
)

// # Service Layer

const (
	// searchLimit caps one page of name-search results.
	searchLimit = 50

	// cacheTTL bounds staleness of cached title lookups. The store is edited
	// by human catalogers, so short is correct.
	cacheTTL = 5 * time.Minute
)

// Service orchestrates serial-title operations against the Collections
// catalogue.
type Service struct {
	catalogue Catalogue
	cache     Cache
	logger    *slog.Logger

	// now is swapped in tests to pin audit timestamps.
	now func() time.Time
}

// NewService constructs a title [Service]. cache may be nil.
func NewService(catalogue Catalogue, cache Cache, logger *slog.Logger) *Service {
	return &Service{
		catalogue: catalogue,
		cache:     cache,
		logger:    logger,
		now:       time.Now,
	}
}

/*
SearchTitles finds serial titles by exact name.

Parameters:
  - context: context.Context
  - name: string (exact title, may contain the * wildcard)

Returns:
  - []*collections.Title: Flat title entities, empty when nothing matches
  - error: Validation or catalogue transport errors
*/
func (service *Service) SearchTitles(context context.Context, name string) ([]*collections.Title, error) {
	validator := &validate.Validator{}
	if validator.Required(FieldName, name); validator.HasErrors() {
		return nil, validator.Err()
	}

	if service.cache != nil {
		if titles, ok := service.cache.GetSearch(context, name); ok {
			return titles, nil
		}
	}

	results, err := service.catalogue.Search(context, collections.DatabaseTexts, collections.TitleByName(name), searchLimit, 0)
	if err != nil {
		return nil, err
	}

	titles := slice.Map(results.Records, collections.MapRecordToTitle)
	if titles == nil {
		titles = []*collections.Title{}
	}

	if service.cache != nil {
		service.cache.SetSearch(context, name, titles, cacheTTL)
	}
	return titles, nil
}

/*
GetTitle fetches one serial title by its store identifier.

Returns:
  - *collections.Title: The mapped entity
  - error: collections.ErrTitleNotFound on a zero-result lookup
*/
func (service *Service) GetTitle(context context.Context, id string) (*collections.Title, error) {
	validator := &validate.Validator{}
	if validator.Required("id", id); validator.HasErrors() {
		return nil, validator.Err()
	}

	if service.cache != nil {
		if title, ok := service.cache.GetTitle(context, id); ok {
			return title, nil
		}
	}

	results, err := service.catalogue.Search(context, collections.DatabaseTexts, collections.ByPriref(id), 1, 0)
	if err != nil {
		return nil, err
	}
	record := results.First()
	if record == nil {
		return nil, collections.ErrTitleNotFound
	}

	title := collections.MapRecordToTitle(record)
	if service.cache != nil {
		service.cache.SetTitle(context, title, cacheTTL)
	}
	return title, nil
}

/*
CreateTitle creates a serial title after ensuring its reference entities.

Description: The workflow resolves publisher, language, and publication
place by exact name — searching first, creating on a zero-result — then
assembles the title payload referencing the resolved ids (never names) and
submits it. The store's echo of the created record is mapped and returned.

Returns:
  - *collections.Title: The created, mapped title
  - error: Validation errors, catalogue transport errors, or
    collections.ErrRecordEchoMissing when the store echoes nothing
*/
func (service *Service) CreateTitle(context context.Context, input Input) (*collections.Title, error) {
	if err := service.validateInput(input); err != nil {
		return nil, err
	}

	payload := collections.NewPayload().
		Set(collections.FieldRecordType, string(collections.RecordTypeWork)).
		Set(collections.FieldWorkType, string(collections.WorkTypeSerial)).
		Set(collections.FieldTitle, input.Name).
		SetText(collections.FieldDatingStart, input.StartDate).
		SetText(collections.FieldDatingEnd, input.EndDate)

	if materialType := collections.MaterialType(input.MaterialType); materialType != "" {
		payload.SetText(collections.FieldSubmedium, materialType.SubmediumLabel())
	}

	// Reference entities are resolved before the dependent record is built:
	// the payload carries their store-assigned ids, never their names.
	if input.Publisher != "" {
		publisherID, err := service.ensureReference(context, collections.DatabasePeople,
			collections.PublisherByName(input.Publisher), service.publisherPayload(input))
		if err != nil {
			return nil, err
		}
		payload.Set(collections.FieldPublisherReference, publisherID)
	}
	if input.Language != "" {
		languageID, err := service.ensureReference(context, collections.DatabaseLanguages,
			collections.LanguageByName(input.Language), service.languagePayload(input))
		if err != nil {
			return nil, err
		}
		payload.Set(collections.FieldLanguageReference, languageID)
	}
	if input.PublisherPlace != "" {
		placeID, err := service.ensureReference(context, collections.DatabaseLocations,
			collections.PlaceByName(input.PublisherPlace), service.placePayload(input))
		if err != nil {
			return nil, err
		}
		payload.Set(collections.FieldPlaceReference, placeID)
	}

	payload.WithAudit(input.Username, service.now())

	record, err := service.catalogue.Insert(context, collections.DatabaseTexts, payload)
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "title_created",
		slog.String("priref", record.Priref),
		slog.String("name", input.Name),
	)

	if service.cache != nil {
		service.cache.InvalidateSearch(context, input.Name)
	}

	// The echo omits the reference chains, so the mapped entity carries the
	// caller's resolved names only where the store echoes them back.
	return collections.MapRecordToTitle(record), nil
}

// ensureReference is the search-or-create step for one reference entity.
//
// This is a check-then-act sequence with no locking: two concurrent callers
// creating the same publisher name can both observe zero results and both
// insert, yielding a rare duplicate. The store tolerates duplicates and
// catalogers merge them, so the race is accepted rather than serialized.
func (service *Service) ensureReference(context context.Context, database, query string, payload *collections.Payload) (string, error) {
	results, err := service.catalogue.Search(context, database, query, 1, 0)
	if err != nil {
		return "", err
	}
	if record := results.First(); record != nil {
		return record.Priref, nil
	}

	created, err := service.catalogue.Insert(context, database, payload)
	if err != nil {
		// A store-reported uniqueness violation (concurrent create) comes
		// back as collections.ErrRecordExists and passes through unchanged.
		return "", err
	}

	service.logger.InfoContext(context, "reference_entity_created",
		slog.String("database", database),
		slog.String("priref", created.Priref),
	)
	return created.Priref, nil
}

func (service *Service) publisherPayload(input Input) *collections.Payload {
	return collections.NewPayload().
		Set(collections.FieldName, input.Publisher).
		Set(collections.FieldNameType, "PUBL").
		WithAudit(input.Username, service.now())
}

func (service *Service) languagePayload(input Input) *collections.Payload {
	return collections.NewPayload().
		Set(collections.FieldTerm, input.Language).
		Set(collections.FieldTermType, "LANGUAGE").
		WithAudit(input.Username, service.now())
}

func (service *Service) placePayload(input Input) *collections.Payload {
	return collections.NewPayload().
		Set(collections.FieldTerm, input.PublisherPlace).
		Set(collections.FieldTermType, "place").
		WithAudit(input.Username, service.now())
}

func (service *Service) validateInput(input Input) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).MaxLen(FieldName, input.Name, 500)
	validator.Required(FieldUsername, input.Username)

	if input.MaterialType != "" {
		validator.OneOf(FieldMaterialType, input.MaterialType, materialTypes...)
	}
	if input.StartDate != "" {
		_, ok := collections.ParseDating(input.StartDate)
		validator.Custom(FieldStartDate, !ok, "Must be a year or a yyyy-MM-dd date")
	}
	if input.EndDate != "" {
		_, ok := collections.ParseDating(input.EndDate)
		validator.Custom(FieldEndDate, !ok, "Must be a year or a yyyy-MM-dd date")
	}
	return validator.Err()
}
