package dto

import (
	"bytes"
	"encoding/json"
	"strings"
)

// --- Health ---

// HealthRequest is a request to check server health.
type HealthRequest struct{}

// Validate is a no-op for health requests.
func (r *HealthRequest) Validate() error {
	return nil
}

// --- Tables ---

// ListTablesRequest is a request to list all tables.
type ListTablesRequest struct{}

// Validate is a no-op.
func (r *ListTablesRequest) Validate() error {
	return nil
}

// GetTableRequest is a request to get one table.
type GetTableRequest struct {
	Name string `path:"name" json:"-"`
}

// Validate validates the get table request fields.
func (r *GetTableRequest) Validate() error {
	return requireName(r.Name)
}

// CreateTableRequest is a request to create a table.
type CreateTableRequest struct {
	Name    string   `json:"name"`
	Columns []Column `json:"columns"`
	Rows    []Row    `json:"rows,omitempty"`
}

// Validate validates the create table request fields.
func (r *CreateTableRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return MissingField("name")
	}
	if r.Columns == nil {
		return MissingField("columns")
	}
	for _, c := range r.Columns {
		if strings.TrimSpace(c.Name) == "" {
			return MissingField("columns.name")
		}
		if c.Type == "" {
			return MissingField("columns.type")
		}
	}
	return nil
}

// DeleteTableRequest is a request to delete a table.
type DeleteTableRequest struct {
	Name string `path:"name" json:"-"`
}

// Validate validates the delete table request fields.
func (r *DeleteTableRequest) Validate() error {
	return requireName(r.Name)
}

// GetSchemaRequest is a request for the JSON Schema of a table's rows.
type GetSchemaRequest struct {
	Name string `path:"name" json:"-"`
}

// Validate validates the schema request fields.
func (r *GetSchemaRequest) Validate() error {
	return requireName(r.Name)
}

// DifferenceRequest is a request to store the rows of one table absent from
// another as a new table.
type DifferenceRequest struct {
	TableName1      string `json:"tableName1"`
	TableName2      string `json:"tableName2"`
	ResultTableName string `json:"resultTableName"`
}

// Validate validates the difference request fields.
func (r *DifferenceRequest) Validate() error {
	if r.TableName1 == "" {
		return MissingField("tableName1")
	}
	if r.TableName2 == "" {
		return MissingField("tableName2")
	}
	if strings.TrimSpace(r.ResultTableName) == "" {
		return MissingField("resultTableName")
	}
	return nil
}

// --- Rows ---

// ListRowsRequest is a request to list the rows of a table.
type ListRowsRequest struct {
	Name string `path:"name" json:"-"`
}

// Validate validates the list rows request fields.
func (r *ListRowsRequest) Validate() error {
	return requireName(r.Name)
}

// AddRowRequest is a request to append a row. The body is the row object
// itself.
type AddRowRequest struct {
	Name string `path:"name" json:"-"`
	Row  Row    `json:"-"`
}

// UnmarshalJSON decodes the body as the row.
func (r *AddRowRequest) UnmarshalJSON(data []byte) error {
	return r.Row.UnmarshalJSON(data)
}

// Validate validates the add row request fields.
func (r *AddRowRequest) Validate() error {
	if err := requireName(r.Name); err != nil {
		return err
	}
	if r.Row == nil {
		return MissingField("row")
	}
	return nil
}

// UpdateRowRequest is a request to replace the row at an index. The body is
// the row object itself.
type UpdateRowRequest struct {
	Name  string `path:"name" json:"-"`
	Index int    `path:"index" json:"-"`
	Row   Row    `json:"-"`
}

// UnmarshalJSON decodes the body as the row.
func (r *UpdateRowRequest) UnmarshalJSON(data []byte) error {
	return r.Row.UnmarshalJSON(data)
}

// Validate validates the update row request fields.
func (r *UpdateRowRequest) Validate() error {
	if err := requireName(r.Name); err != nil {
		return err
	}
	if r.Row == nil {
		return MissingField("row")
	}
	return nil
}

// DeleteRowRequest is a request to delete the row at an index.
type DeleteRowRequest struct {
	Name  string `path:"name" json:"-"`
	Index int    `path:"index" json:"-"`
}

// Validate validates the delete row request fields.
func (r *DeleteRowRequest) Validate() error {
	return requireName(r.Name)
}

// --- History ---

// HistoryRequest is a request for recent database commits.
type HistoryRequest struct {
	Limit int `query:"limit" json:"-"`
}

// Validate validates the history request fields.
func (r *HistoryRequest) Validate() error {
	if r.Limit < 0 {
		return InvalidField("limit", "must be non-negative")
	}
	return nil
}

func requireName(name string) error {
	if name == "" {
		return MissingField("name")
	}
	return nil
}

// decodeNumbers decodes data into v keeping number literals as json.Number.
func decodeNumbers(data []byte, v any) error {
	d := json.NewDecoder(bytes.NewReader(data))
	d.UseNumber()
	return d.Decode(v)
}
