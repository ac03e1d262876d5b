// Handles row-related HTTP requests.

package handlers

import (
	"context"

	"github.com/maruel/tabdb/internal/server/dto"
)

// RowHandler handles row-related HTTP requests. Rows are addressed by their
// position in the table.
type RowHandler struct {
	svc *Services
}

// NewRowHandler creates a new row handler.
func NewRowHandler(svc *Services) *RowHandler {
	return &RowHandler{svc: svc}
}

// ListRows returns the rows of a table in insertion order.
func (h *RowHandler) ListRows(ctx context.Context, req *dto.ListRowsRequest) (*dto.ListRowsResponse, error) {
	rows, err := h.svc.Tables.ListRows(req.Name)
	if err != nil {
		return nil, toAPIError(err)
	}
	return &dto.ListRowsResponse{Rows: rowsToDTO(rows)}, nil
}

// AddRow appends a row.
func (h *RowHandler) AddRow(ctx context.Context, req *dto.AddRowRequest) (*dto.RowResponse, error) {
	index, row, err := h.svc.Tables.AddRow(ctx, req.Name, req.Row)
	if err != nil {
		return nil, toAPIError(err)
	}
	return &dto.RowResponse{Index: index, Row: row.Plain()}, nil
}

// UpdateRow replaces the row at an index.
func (h *RowHandler) UpdateRow(ctx context.Context, req *dto.UpdateRowRequest) (*dto.RowResponse, error) {
	row, err := h.svc.Tables.UpdateRow(ctx, req.Name, req.Index, req.Row)
	if err != nil {
		return nil, toAPIError(err)
	}
	return &dto.RowResponse{Index: req.Index, Row: row.Plain()}, nil
}

// DeleteRow deletes the row at an index.
func (h *RowHandler) DeleteRow(ctx context.Context, req *dto.DeleteRowRequest) (*dto.EmptyResponse, error) {
	if err := h.svc.Tables.DeleteRow(ctx, req.Name, req.Index); err != nil {
		return nil, toAPIError(err)
	}
	return &dto.EmptyResponse{}, nil
}
