// Copyright (c) 2026 Arkiva. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package collections_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/arkiva/internal/collections"
)

/*
TestPayload_TriState verifies the absent / null / value distinction on the
serialized body.
*/
func TestPayload_TriState(t *testing.T) {
	payload := collections.NewPayload().
		Set(collections.FieldTitle, "Hallingdølen").
		Null(collections.FieldDatingEnd)

	encoded, err := json.Marshal(payload)
	require.NoError(t, err)

	assert.JSONEq(t, `{"title": "Hallingdølen", "dating.date.end": null}`, string(encoded))

	// Absent keys must not appear at all — "dating.date.start" was never set.
	assert.NotContains(t, string(encoded), collections.FieldDatingStart)

	// Null and absent are distinguishable through the accessor too.
	value, present := payload.Get(collections.FieldDatingEnd)
	assert.True(t, present)
	assert.Nil(t, value)

	_, present = payload.Get(collections.FieldDatingStart)
	assert.False(t, present)
}

/*
TestPayload_SetText verifies blank optional strings stay absent.
*/
func TestPayload_SetText(t *testing.T) {
	payload := collections.NewPayload().
		SetText(collections.FieldTitle, "Hallingdølen").
		SetText(collections.FieldEdition, "")

	assert.True(t, payload.Has(collections.FieldTitle))
	assert.False(t, payload.Has(collections.FieldEdition))
}

/*
TestPayload_InsertionOrder verifies keys serialize in the order they were
first set, with later overwrites keeping the original position.
*/
func TestPayload_InsertionOrder(t *testing.T) {
	payload := collections.NewPayload().
		Set(collections.FieldRecordType, "WORK").
		Set(collections.FieldTitle, "first").
		Set(collections.FieldWorkType, "SERIAL").
		Set(collections.FieldTitle, "second")

	encoded, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.Equal(t,
		`{"record_type":"WORK","title":"second","work.description_type":"SERIAL"}`,
		string(encoded))
}

/*
TestPayload_AlternativeNumbers verifies the typed array shape on the wire.
*/
func TestPayload_AlternativeNumbers(t *testing.T) {
	payload := collections.NewPayload().
		AddAlternativeNumber(collections.AlternativeNumberTypeVolume, "113").
		AddAlternativeNumber(collections.AlternativeNumberTypeNumber, "4")

	encoded, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"Alternative_number": [
			{"alternative_number.type": "Årgang", "alternative_number": "113"},
			{"alternative_number.type": "Avisnr", "alternative_number": "4"}
		]
	}`, string(encoded))
}

/*
TestPayload_WithAudit verifies the audit stamp fields.
*/
func TestPayload_WithAudit(t *testing.T) {
	now := time.Date(2020, time.January, 9, 13, 37, 5, 0, time.UTC)
	payload := collections.NewPayload().WithAudit("registrar", now)

	encoded, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"input.name": "registrar",
		"input.date": "2020-01-09",
		"input.time": "13:37:05",
		"input.source": "arkiva"
	}`, string(encoded))
}
