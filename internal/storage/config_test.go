package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestServerConfig(t *testing.T) {
	t.Run("CreatesDefaults", func(t *testing.T) {
		dir := t.TempDir()
		cfg, err := LoadServerConfig(dir)
		if err != nil {
			t.Fatal(err)
		}
		if *cfg != DefaultServerConfig() {
			t.Errorf("expected defaults, got %+v", cfg)
		}
		if _, err := os.Stat(filepath.Join(dir, ConfigFile)); err != nil {
			t.Errorf("config file not written: %v", err)
		}
	})

	t.Run("PartialFileKeepsDefaults", func(t *testing.T) {
		dir := t.TempDir()
		data := `{"rate_limits":{"write_rate_per_min":5}}`
		if err := os.WriteFile(filepath.Join(dir, ConfigFile), []byte(data), 0o600); err != nil {
			t.Fatal(err)
		}
		cfg, err := LoadServerConfig(dir)
		if err != nil {
			t.Fatal(err)
		}
		if cfg.RateLimits.WriteRatePerMin != 5 {
			t.Errorf("write rate = %d", cfg.RateLimits.WriteRatePerMin)
		}
		if cfg.RateLimits.ReadRatePerMin != DefaultRateLimits().ReadRatePerMin {
			t.Errorf("read rate = %d", cfg.RateLimits.ReadRatePerMin)
		}
		if cfg.Quotas != DefaultQuotas() || cfg.History != DefaultAuthor() {
			t.Errorf("defaults lost: %+v", cfg)
		}
	})

	t.Run("Invalid", func(t *testing.T) {
		tests := []struct {
			name string
			data string
			want string
		}{
			{"negative rate", `{"rate_limits":{"read_rate_per_min":-1}}`, "read_rate_per_min"},
			{"zero body", `{"quotas":{"max_request_body_bytes":0}}`, "max_request_body_bytes"},
			{"bad email", `{"history":{"name":"x","email":"nope"}}`, "email"},
			{"syntax", `{`, "parse"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				dir := t.TempDir()
				if err := os.WriteFile(filepath.Join(dir, ConfigFile), []byte(tt.data), 0o600); err != nil {
					t.Fatal(err)
				}
				_, err := LoadServerConfig(dir)
				if err == nil || !strings.Contains(err.Error(), tt.want) {
					t.Errorf("expected error containing %q, got %v", tt.want, err)
				}
			})
		}
	})

	t.Run("SaveRejectsInvalid", func(t *testing.T) {
		cfg := DefaultServerConfig()
		cfg.RateLimits.WriteRatePerMin = -3
		if err := cfg.Save(t.TempDir()); err == nil {
			t.Fatal("expected an error")
		}
	})
}
