// Parses seed manifest YAML files and creates the tables they list.

package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/maruel/tabdb/internal/tabular"
	"gopkg.in/yaml.v3"
)

// SeedManifest lists tables to create at startup.
type SeedManifest struct {
	Tables []SeedTable `yaml:"tables"`
}

// SeedTable is one table of a seed manifest.
type SeedTable struct {
	Name    string           `yaml:"name"`
	Columns []tabular.Column `yaml:"columns"`
	Rows    []map[string]any `yaml:"rows,omitempty"`
}

// ParseSeedManifest reads and parses a seed manifest from a file.
// The path is provided by the CLI user, so file inclusion is expected.
func ParseSeedManifest(path string) (*SeedManifest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-specified manifest path
	if err != nil {
		return nil, fmt.Errorf("failed to read seed manifest: %w", err)
	}
	var m SeedManifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse seed manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid seed manifest: %w", err)
	}
	return &m, nil
}

// Validate checks the manifest structure. Rows are checked when the tables
// are created.
func (m *SeedManifest) Validate() error {
	seen := make(map[string]struct{}, len(m.Tables))
	for i, t := range m.Tables {
		if strings.TrimSpace(t.Name) == "" {
			return fmt.Errorf("table %d: name is required", i)
		}
		key := strings.ToLower(t.Name)
		if _, ok := seen[key]; ok {
			return fmt.Errorf("table %q is listed twice", t.Name)
		}
		seen[key] = struct{}{}
		if err := tabular.ValidateColumns(t.Columns); err != nil {
			return fmt.Errorf("table %q: %w", t.Name, err)
		}
	}
	return nil
}

// Seed creates the manifest's tables that do not exist yet. It returns the
// number of tables created.
func (s *TableService) Seed(ctx context.Context, m *SeedManifest) (int, error) {
	created := 0
	for _, t := range m.Tables {
		if _, err := s.CreateTable(ctx, t.Name, t.Columns, t.Rows); err != nil {
			if errors.Is(err, tabular.ErrDuplicateName) {
				slog.DebugContext(ctx, "Seed table already exists", "table", t.Name)
				continue
			}
			return created, fmt.Errorf("seed table %q: %w", t.Name, err)
		}
		created++
	}
	return created, nil
}
