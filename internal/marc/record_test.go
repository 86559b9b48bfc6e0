package marc_test

import (
	"encoding/xml"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/arkiva/internal/marc"
)

const newspaperMARCXML = `<record xmlns="http://www.loc.gov/MARC21/slim">
  <leader>01471cas a2200349 c 4500</leader>
  <controlfield tag="001">998110734</controlfield>
  <controlfield tag="008">970401c18879999no wr p       0   a0nob d</controlfield>
  <datafield tag="022" ind1=" " ind2=" ">
    <subfield code="a">0805-3561</subfield>
  </datafield>
  <datafield tag="245" ind1="0" ind2="0">
    <subfield code="a">Hallingdølen :</subfield>
    <subfield code="b">organ for Hallingdal og Numedal</subfield>
  </datafield>
  <datafield tag="260" ind1=" " ind2=" ">
    <subfield code="a">Ål :</subfield>
    <subfield code="b">Hallingdølen AS,</subfield>
    <subfield code="c">1887-</subfield>
  </datafield>
</record>`

func decode(t *testing.T, document string) *marc.Record {
	t.Helper()
	var record marc.Record
	require.NoError(t, xml.Unmarshal([]byte(document), &record))
	return &record
}

/*
TestRecord_Accessors verifies the flattened fields of a typical serial
record, including the trailing ISBD punctuation trim.
*/
func TestRecord_Accessors(t *testing.T) {
	record := decode(t, newspaperMARCXML)

	assert.Equal(t, "Hallingdølen", record.Title())
	assert.Equal(t, "Hallingdølen AS", record.Publisher())
	assert.Equal(t, "Ål", record.PlaceOfPublication())
	assert.Equal(t, "0805-3561", record.ISSN())
	assert.Equal(t, "nob", record.Language())

	start, end := record.Dates()
	assert.Equal(t, "1887", start)
	assert.Equal(t, "", end, "a still-running serial has the open 9999 end year")
}

/*
TestRecord_Publisher264Fallback verifies RDA-catalogued records, which carry
publication data in 264 instead of 260.
*/
func TestRecord_Publisher264Fallback(t *testing.T) {
	record := decode(t, `<record>
	  <datafield tag="264" ind1=" " ind2="1">
	    <subfield code="a">Oslo :</subfield>
	    <subfield code="b">Aftenposten AS ;</subfield>
	  </datafield>
	</record>`)

	assert.Equal(t, "Aftenposten AS", record.Publisher())
	assert.Equal(t, "Oslo", record.PlaceOfPublication())
}

func TestRecord_Dates(t *testing.T) {
	tests := []struct {
		name  string
		fixed string
		start string
		end   string
	}{
		{"closed_run", "970401d19141940no wr p       0   a0nob d", "1914", "1940"},
		{"unknown_start", "970401cuuuu9999no wr p       0   a0nob d", "", ""},
		{"partly_unknown", "970401c189u1940no wr p       0   a0nob d", "", "1940"},
		{"too_short", "970401", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := decode(t,
				`<record><controlfield tag="008">`+tt.fixed+`</controlfield></record>`)
			start, end := record.Dates()
			assert.Equal(t, tt.start, start)
			assert.Equal(t, tt.end, end)
		})
	}
}

func TestRecord_Language_Unknown(t *testing.T) {
	record := decode(t,
		`<record><controlfield tag="008">970401c18879999no wr p       0   a0||| d</controlfield></record>`)
	assert.Equal(t, "", record.Language())
}

/*
TestRecord_EmptyRecord verifies every accessor fails closed on a record with
no fields at all.
*/
func TestRecord_EmptyRecord(t *testing.T) {
	record := decode(t, `<record></record>`)

	assert.Equal(t, "", record.Title())
	assert.Equal(t, "", record.Publisher())
	assert.Equal(t, "", record.ISSN())
	assert.Equal(t, "", record.Language())
	start, end := record.Dates()
	assert.Equal(t, "", start)
	assert.Equal(t, "", end)
}
