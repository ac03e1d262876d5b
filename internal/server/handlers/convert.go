// Converts between tabular types and API types.

package handlers

import (
	"github.com/maruel/tabdb/internal/server/dto"
	"github.com/maruel/tabdb/internal/storage/history"
	"github.com/maruel/tabdb/internal/tabular"
)

func tableToDTO(t *tabular.Table) dto.TableResponse {
	return dto.TableResponse{
		Name:    t.Name,
		Columns: columnsToDTO(t.Columns),
		Rows:    rowsToDTO(t.Rows),
	}
}

func columnsToDTO(cols []tabular.Column) []dto.Column {
	out := make([]dto.Column, len(cols))
	for i, c := range cols {
		out[i] = dto.Column{Name: c.Name, Type: dto.DataType(c.Type)}
	}
	return out
}

func rowsToDTO(rows []tabular.Row) []dto.Row {
	out := make([]dto.Row, len(rows))
	for i, r := range rows {
		out[i] = r.Plain()
	}
	return out
}

// columnsFromDTO normalizes column type names.
func columnsFromDTO(cols []dto.Column) ([]tabular.Column, error) {
	out := make([]tabular.Column, len(cols))
	for i, c := range cols {
		dt, err := tabular.ParseDataType(string(c.Type))
		if err != nil {
			return nil, dto.InvalidField("columns.type", err.Error()).WithDetail("column", c.Name)
		}
		out[i] = tabular.Column{Name: c.Name, Type: dt}
	}
	return out, nil
}

func rowsFromDTO(rows []dto.Row) []map[string]any {
	out := make([]map[string]any, len(rows))
	for i, r := range rows {
		out[i] = r
	}
	return out
}

func commitsToDTO(commits []*history.Commit) []dto.CommitResponse {
	out := make([]dto.CommitResponse, len(commits))
	for i, c := range commits {
		out[i] = dto.CommitResponse{
			Hash:        c.Hash,
			Message:     c.Message,
			Author:      c.Author,
			AuthorEmail: c.AuthorEmail,
			Date:        c.Date,
		}
	}
	return out
}
