// Copyright (c) 2026 Arkiva. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package collections

import (
	"bytes"
	"encoding/json"
	"time"
)

// # Payload Field Paths

// Create/update bodies are flat JSON objects keyed by dotted field paths.
const (
	FieldPriref             = "priref"
	FieldRecordType         = "record_type"
	FieldWorkType           = "work.description_type"
	FieldTitle              = "title"
	FieldSubmedium          = "submedium"
	FieldFormat             = "format"
	FieldDatingStart        = "dating.date.start"
	FieldDatingEnd          = "dating.date.end"
	FieldEdition            = "edition"
	FieldEditionDate        = "edition.date"
	FieldPartOfReference    = "part_of_reference.lref"
	FieldPublisherReference = "publisher.lref"
	FieldLanguageReference  = "language.lref"
	FieldPlaceReference     = "place_of_publication.lref"
	FieldCurrentLocation    = "current_location.lref"
	FieldAlternativeNumbers = "Alternative_number"
	FieldPIDURN             = "PID_data_URN"
	FieldName               = "name"
	FieldNameType           = "name.type"
	FieldTerm               = "term"
	FieldTermType           = "term.type"
	FieldBarcode            = "barcode"
	FieldInputName          = "input.name"
	FieldInputDate          = "input.date"
	FieldInputTime          = "input.time"
	FieldInputSource        = "input.source"
)

// # Alternative Number Types

const (
	AlternativeNumberTypeURN     = "URN"
	AlternativeNumberTypeVolume  = "Årgang"
	AlternativeNumberTypeNumber  = "Avisnr"
	AlternativeNumberTypeVersion = "Versjon"
)

// explicitNull marks a field that must serialize as a literal null.
type explicitNull struct{}

// Payload is a create/update body under construction.
//
// # Null vs Absent
//
// The store treats an explicit null as "clear this field", while an absent
// key leaves the stored value untouched. Every field is therefore tri-state:
// absent ([Payload.Set] never called), explicit null ([Payload.Null]), or
// present with a value. A naive optional-with-default would round-trip
// incorrectly, so omitted optionals must stay truly absent from the
// serialized body.
//
// Keys serialize in insertion order, which keeps bodies byte-stable for
// logging diffs and tests.
type Payload struct {
	keys   []string
	values map[string]any
}

// NewPayload returns an empty payload.
func NewPayload() *Payload {
	return &Payload{values: make(map[string]any)}
}

// Set stores a present value for key, replacing any earlier state.
func (payload *Payload) Set(key string, value any) *Payload {
	payload.put(key, value)
	return payload
}

// SetText stores value for key, leaving the key absent when value is blank.
func (payload *Payload) SetText(key, value string) *Payload {
	if value == "" {
		return payload
	}
	return payload.Set(key, value)
}

// Null marks key for an explicit null — the store clears the field.
func (payload *Payload) Null(key string) *Payload {
	payload.put(key, explicitNull{})
	return payload
}

// AddAlternativeNumber appends one typed entry to the Alternative_number
// array field.
func (payload *Payload) AddAlternativeNumber(numberType, value string) *Payload {
	existing, _ := payload.values[FieldAlternativeNumbers].([]AlternativeNumber)
	payload.put(FieldAlternativeNumbers, append(existing, AlternativeNumber{
		Type:  numberType,
		Value: value,
	}))
	return payload
}

// Has reports whether key is present (with a value or an explicit null).
func (payload *Payload) Has(key string) bool {
	_, ok := payload.values[key]
	return ok
}

// Get returns the stored value for key; explicit nulls return nil, true.
func (payload *Payload) Get(key string) (any, bool) {
	value, ok := payload.values[key]
	if !ok {
		return nil, false
	}
	if _, isNull := value.(explicitNull); isNull {
		return nil, true
	}
	return value, true
}

// MarshalJSON serializes the payload as a flat JSON object in insertion
// order. Absent keys do not appear; explicit nulls appear as literal null.
func (payload *Payload) MarshalJSON() ([]byte, error) {
	var buffer bytes.Buffer
	buffer.WriteByte('{')
	for i, key := range payload.keys {
		if i > 0 {
			buffer.WriteByte(',')
		}
		encodedKey, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buffer.Write(encodedKey)
		buffer.WriteByte(':')

		value := payload.values[key]
		if _, isNull := value.(explicitNull); isNull {
			buffer.WriteString("null")
			continue
		}
		encodedValue, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		buffer.Write(encodedValue)
	}
	buffer.WriteByte('}')
	return buffer.Bytes(), nil
}

// WithAudit stamps the payload with the store's audit fields: who wrote the
// record, when, and through which system.
func (payload *Payload) WithAudit(username string, now time.Time) *Payload {
	return payload.
		Set(FieldInputName, username).
		Set(FieldInputDate, now.Format("2006-01-02")).
		Set(FieldInputTime, now.Format("15:04:05")).
		Set(FieldInputSource, "arkiva")
}

func (payload *Payload) put(key string, value any) {
	if _, exists := payload.values[key]; !exists {
		payload.keys = append(payload.keys, key)
	}
	payload.values[key] = value
}
