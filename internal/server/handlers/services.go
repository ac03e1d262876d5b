// Defines the dependencies shared by the HTTP handlers.

package handlers

import (
	"github.com/maruel/tabdb/internal/storage"
)

// Services holds the storage services used by handlers.
type Services struct {
	Tables *storage.TableService
}

// Config holds configuration values needed by handlers.
type Config struct {
	Version string
	Quotas  storage.Quotas
}
