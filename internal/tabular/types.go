// Package tabular defines the table model, row validation and the
// difference engine.
//
// A Database is an ordered list of Tables. Each Table declares typed Columns
// and holds Rows, which map column names to tagged Values. Rows only enter a
// Table through ValidateRow, which coerces loosely typed JSON input into the
// column's declared DataType.
package tabular

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CurrentVersion is the version of the persisted database document.
const CurrentVersion = "1.0"

// DataType is the kind of value a column accepts.
type DataType string

const (
	// TypeInteger holds 32-bit signed integers.
	TypeInteger DataType = "integer"
	// TypeReal holds 64-bit floating point numbers.
	TypeReal DataType = "real"
	// TypeChar holds a single character.
	TypeChar DataType = "char"
	// TypeString holds text of any length.
	TypeString DataType = "string"
	// TypeDate holds a calendar date.
	TypeDate DataType = "date"
	// TypeDateInterval holds two calendar dates.
	TypeDateInterval DataType = "dateInterval"
)

// dataTypes is in declaration order; the index is the legacy numeric encoding.
var dataTypes = []DataType{TypeInteger, TypeReal, TypeChar, TypeString, TypeDate, TypeDateInterval}

// Valid returns true if t is one of the known data types.
func (t DataType) Valid() bool {
	for _, dt := range dataTypes {
		if t == dt {
			return true
		}
	}
	return false
}

// ParseDataType parses a data type name case-insensitively.
func ParseDataType(s string) (DataType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "integer", "int":
		return TypeInteger, nil
	case "real", "float", "double":
		return TypeReal, nil
	case "char":
		return TypeChar, nil
	case "string", "text":
		return TypeString, nil
	case "date":
		return TypeDate, nil
	case "dateinterval", "datainterval", "date_interval":
		return TypeDateInterval, nil
	}
	return "", fmt.Errorf("unknown data type %q", s)
}

// UnmarshalJSON accepts the type name or its legacy numeric index.
func (t *DataType) UnmarshalJSON(data []byte) error {
	var idx int
	if err := json.Unmarshal(data, &idx); err == nil {
		if idx < 0 || idx >= len(dataTypes) {
			return fmt.Errorf("unknown data type %d", idx)
		}
		*t = dataTypes[idx]
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("data type must be a string: %w", err)
	}
	dt, err := ParseDataType(s)
	if err != nil {
		return err
	}
	*t = dt
	return nil
}

// UnmarshalText accepts the same names as UnmarshalJSON. It is used by YAML
// seed manifests.
func (t *DataType) UnmarshalText(text []byte) error {
	dt, err := ParseDataType(string(text))
	if err != nil {
		return err
	}
	*t = dt
	return nil
}

// Column is a named, typed column of a table.
type Column struct {
	Name string   `json:"name" yaml:"name"`
	Type DataType `json:"type" yaml:"type"`
}

// Table is a named collection of columns and rows.
//
// Rows are kept in insertion order and addressed by position.
type Table struct {
	Name    string   `json:"name"`
	Columns []Column `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	if t == nil {
		return nil
	}
	c := &Table{
		Name:    t.Name,
		Columns: make([]Column, len(t.Columns)),
		Rows:    make([]Row, len(t.Rows)),
	}
	copy(c.Columns, t.Columns)
	for i, r := range t.Rows {
		c.Rows[i] = r.Clone()
	}
	return c
}

// Database is the root aggregate persisted as a single document.
type Database struct {
	Version string   `json:"version"`
	Tables  []*Table `json:"tables"`
}

// NewDatabase returns an empty database.
func NewDatabase() *Database {
	return &Database{Version: CurrentVersion, Tables: []*Table{}}
}

// Find returns the index and table matching name case-insensitively, or
// -1 and nil.
func (db *Database) Find(name string) (int, *Table) {
	for i, t := range db.Tables {
		if strings.EqualFold(t.Name, name) {
			return i, t
		}
	}
	return -1, nil
}

// Validate checks the document after loading it from disk.
func (db *Database) Validate() error {
	if db.Version == "" {
		return fmt.Errorf("database version is required")
	}
	if db.Version != CurrentVersion {
		return fmt.Errorf("unsupported database version %q", db.Version)
	}
	seen := make(map[string]string, len(db.Tables))
	for i, t := range db.Tables {
		if t == nil {
			return fmt.Errorf("table %d: is null", i)
		}
		key := strings.ToLower(t.Name)
		if prev, ok := seen[key]; ok {
			return fmt.Errorf("table %q collides with %q", t.Name, prev)
		}
		seen[key] = t.Name
		if err := ValidateColumns(t.Columns); err != nil {
			return fmt.Errorf("table %q: %w", t.Name, err)
		}
		for j, r := range t.Rows {
			if err := r.Conforms(t.Columns); err != nil {
				return fmt.Errorf("table %q row %d: %w", t.Name, j, err)
			}
		}
	}
	return nil
}
