// Handles database history requests.

package handlers

import (
	"context"

	"github.com/maruel/tabdb/internal/server/dto"
)

// HistoryHandler exposes the audit trail of the database file.
type HistoryHandler struct {
	svc *Services
}

// NewHistoryHandler creates a new history handler.
func NewHistoryHandler(svc *Services) *HistoryHandler {
	return &HistoryHandler{svc: svc}
}

// History returns recent commits, newest first.
func (h *HistoryHandler) History(ctx context.Context, req *dto.HistoryRequest) (*dto.HistoryResponse, error) {
	if !h.svc.Tables.HistoryEnabled() {
		return &dto.HistoryResponse{Commits: []dto.CommitResponse{}}, nil
	}
	limit := req.Limit
	if limit == 0 {
		limit = 100
	}
	commits, err := h.svc.Tables.History(ctx, limit)
	if err != nil {
		return nil, dto.InternalWithError("failed to read history", err)
	}
	return &dto.HistoryResponse{Enabled: true, Commits: commitsToDTO(commits)}, nil
}
