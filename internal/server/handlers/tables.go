// Handles table-related HTTP requests.

package handlers

import (
	"context"

	"github.com/invopop/jsonschema"
	"github.com/maruel/tabdb/internal/server/dto"
)

// TableHandler handles table-related HTTP requests.
type TableHandler struct {
	svc *Services
}

// NewTableHandler creates a new table handler.
func NewTableHandler(svc *Services) *TableHandler {
	return &TableHandler{svc: svc}
}

// ListTables returns every table in creation order.
func (h *TableHandler) ListTables(ctx context.Context, _ *dto.ListTablesRequest) (*dto.ListTablesResponse, error) {
	tables := h.svc.Tables.ListTables()
	resp := &dto.ListTablesResponse{Tables: make([]dto.TableResponse, len(tables))}
	for i, t := range tables {
		resp.Tables[i] = tableToDTO(t)
	}
	return resp, nil
}

// GetTable returns one table.
func (h *TableHandler) GetTable(ctx context.Context, req *dto.GetTableRequest) (*dto.TableResponse, error) {
	t, err := h.svc.Tables.GetTable(req.Name)
	if err != nil {
		return nil, toAPIError(err)
	}
	resp := tableToDTO(t)
	return &resp, nil
}

// CreateTable creates a table, with optional initial rows.
func (h *TableHandler) CreateTable(ctx context.Context, req *dto.CreateTableRequest) (*dto.TableResponse, error) {
	cols, err := columnsFromDTO(req.Columns)
	if err != nil {
		return nil, err
	}
	t, err := h.svc.Tables.CreateTable(ctx, req.Name, cols, rowsFromDTO(req.Rows))
	if err != nil {
		return nil, toAPIError(err)
	}
	resp := tableToDTO(t)
	return &resp, nil
}

// DeleteTable deletes a table.
func (h *TableHandler) DeleteTable(ctx context.Context, req *dto.DeleteTableRequest) (*dto.EmptyResponse, error) {
	if err := h.svc.Tables.DeleteTable(ctx, req.Name); err != nil {
		return nil, toAPIError(err)
	}
	return &dto.EmptyResponse{}, nil
}

// Difference stores the rows of the first table absent from the second as a
// new table and returns it.
func (h *TableHandler) Difference(ctx context.Context, req *dto.DifferenceRequest) (*dto.TableResponse, error) {
	t, err := h.svc.Tables.Difference(ctx, req.TableName1, req.TableName2, req.ResultTableName)
	if err != nil {
		return nil, toAPIError(err)
	}
	resp := tableToDTO(t)
	return &resp, nil
}

// Schema returns the JSON Schema a row of the table must satisfy.
func (h *TableHandler) Schema(ctx context.Context, req *dto.GetSchemaRequest) (*jsonschema.Schema, error) {
	s, err := h.svc.Tables.Schema(req.Name)
	if err != nil {
		return nil, toAPIError(err)
	}
	return s, nil
}
