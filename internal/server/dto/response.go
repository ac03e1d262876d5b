package dto

import "time"

// HealthResponse is the response to a health check.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Tables  int    `json:"tables"`
	History bool   `json:"history"`
}

// TableResponse is a table with its rows in plain JSON form.
type TableResponse struct {
	Name    string   `json:"name"`
	Columns []Column `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// ListTablesResponse is the response to a list tables request.
type ListTablesResponse struct {
	Tables []TableResponse `json:"tables"`
}

// ListRowsResponse is the response to a list rows request.
type ListRowsResponse struct {
	Rows []Row `json:"rows"`
}

// RowResponse is the response to a row mutation.
type RowResponse struct {
	Index int `json:"index"`
	Row   Row `json:"row"`
}

// EmptyResponse is returned by deletions.
type EmptyResponse struct{}

// CommitResponse is one entry of the database history.
type CommitResponse struct {
	Hash        string    `json:"hash"`
	Message     string    `json:"message"`
	Author      string    `json:"author"`
	AuthorEmail string    `json:"authorEmail"`
	Date        time.Time `json:"date"`
}

// HistoryResponse is the response to a history request.
type HistoryResponse struct {
	Enabled bool             `json:"enabled"`
	Commits []CommitResponse `json:"commits"`
}
