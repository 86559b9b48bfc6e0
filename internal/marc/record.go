/*
Package marc looks up bibliographic records from the national bibliography
over SRU and maps the MARC21 fields a newspaper registrar cares about.

It is read-only: records are fetched, decoded and flattened into a small
suggestion struct the frontend can use to prefill a title form.
*/
package marc

import (
	"encoding/xml"
	"strings"
)

// # MARCXML Model

// subfield is one coded value inside a data field.
type subfield struct {
	Code string `xml:"code,attr"`
	Text string `xml:",chardata"`
}

// dataField is a tagged MARC field with its subfields.
type dataField struct {
	Tag       string     `xml:"tag,attr"`
	Ind1      string     `xml:"ind1,attr"`
	Ind2      string     `xml:"ind2,attr"`
	Subfields []subfield `xml:"subfield"`
}

// controlField is a fixed-position MARC field (no subfields).
type controlField struct {
	Tag  string `xml:"tag,attr"`
	Text string `xml:",chardata"`
}

// Record is a decoded MARCXML bibliographic record.
type Record struct {
	XMLName       xml.Name       `xml:"record"`
	Leader        string         `xml:"leader"`
	ControlFields []controlField `xml:"controlfield"`
	DataFields    []dataField    `xml:"datafield"`
}

// sruResponse is the envelope of an SRU searchRetrieve operation.
type sruResponse struct {
	XMLName         xml.Name `xml:"searchRetrieveResponse"`
	NumberOfRecords int      `xml:"numberOfRecords"`
	Records         []struct {
		RecordData struct {
			Record Record `xml:"record"`
		} `xml:"recordData"`
	} `xml:"records>record"`
}

// # Field Accessors

// subfieldValue returns the first value of the given subfield code under the
// given tag, or "" when the field or code is absent.
func (record *Record) subfieldValue(tag, code string) string {
	for _, field := range record.DataFields {
		if field.Tag != tag {
			continue
		}
		for _, sub := range field.Subfields {
			if sub.Code == code {
				return strings.TrimSpace(sub.Text)
			}
		}
	}
	return ""
}

// controlValue returns the value of the first control field with the given tag.
func (record *Record) controlValue(tag string) string {
	for _, field := range record.ControlFields {
		if field.Tag == tag {
			return field.Text
		}
	}
	return ""
}

// Title returns the main title (245 $a) with trailing ISBD punctuation removed.
func (record *Record) Title() string {
	return strings.TrimRight(record.subfieldValue("245", "a"), " /:;,.")
}

// Publisher returns the publisher name from 260 $b, falling back to 264 $b.
func (record *Record) Publisher() string {
	if publisher := record.subfieldValue("260", "b"); publisher != "" {
		return strings.TrimRight(publisher, " /:;,.")
	}
	return strings.TrimRight(record.subfieldValue("264", "b"), " /:;,.")
}

// PlaceOfPublication returns the publication place from 260 $a or 264 $a.
func (record *Record) PlaceOfPublication() string {
	if place := record.subfieldValue("260", "a"); place != "" {
		return strings.TrimRight(place, " /:;,.")
	}
	return strings.TrimRight(record.subfieldValue("264", "a"), " /:;,.")
}

// ISSN returns the serial's ISSN (022 $a), if catalogued.
func (record *Record) ISSN() string {
	return record.subfieldValue("022", "a")
}

// Language returns the three-letter language code from 008 positions 35-37.
func (record *Record) Language() string {
	fixed := record.controlValue("008")
	if len(fixed) < 38 {
		return ""
	}
	code := strings.TrimSpace(fixed[35:38])
	if code == "|||" {
		return ""
	}
	return code
}

// Dates returns the start and end publication years from 008 positions 07-14.
// Unknown positions ("uuuu", "9999" or spaces) yield "".
func (record *Record) Dates() (start, end string) {
	fixed := record.controlValue("008")
	if len(fixed) < 15 {
		return "", ""
	}
	start = cleanYear(fixed[7:11])
	end = cleanYear(fixed[11:15])
	return start, end
}

func cleanYear(raw string) string {
	year := strings.TrimSpace(raw)
	if year == "" || year == "uuuu" || year == "9999" || strings.Contains(year, "u") {
		return ""
	}
	return year
}
