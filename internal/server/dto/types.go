// Defines the column types exchanged over the API.

package dto

import (
	"encoding/json"
	"fmt"
)

// DataType is a column type name as sent by clients, e.g. "integer" or
// "dateInterval". Names are normalized by the handlers.
type DataType string

// legacyTypes maps the numeric enum encoding some clients send to names.
var legacyTypes = [...]DataType{"integer", "real", "char", "string", "date", "dateInterval"}

// UnmarshalJSON accepts a type name or its legacy numeric index.
func (t *DataType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = DataType(s)
		return nil
	}
	var i int
	if err := json.Unmarshal(data, &i); err != nil {
		return fmt.Errorf("column type must be a name or an index: %s", data)
	}
	if i < 0 || i >= len(legacyTypes) {
		return fmt.Errorf("unknown column type index %d", i)
	}
	*t = legacyTypes[i]
	return nil
}

// Column is a named, typed table column.
type Column struct {
	Name string   `json:"name"`
	Type DataType `json:"type"`
}

// Row is a table row keyed by column name, in plain JSON form. Numbers are
// kept as json.Number when decoded from a request.
type Row map[string]any

// UnmarshalJSON decodes the object preserving number literals.
func (r *Row) UnmarshalJSON(data []byte) error {
	var m map[string]any
	if err := decodeNumbers(data, &m); err != nil {
		return err
	}
	if m == nil {
		return fmt.Errorf("row must be a JSON object")
	}
	*r = m
	return nil
}
