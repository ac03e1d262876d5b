package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDotEnv(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		env, err := loadDotEnv(t.TempDir())
		if err != nil {
			t.Fatal(err)
		}
		if len(env) != 0 {
			t.Errorf("expected empty env, got %v", env)
		}
	})

	tests := []struct {
		name    string
		content string
		want    map[string]string
		wantErr bool
	}{
		{
			name:    "basic",
			content: "HTTP=:9090\n# comment\n\nLOG_LEVEL = debug\nnoequals\n",
			want:    map[string]string{"HTTP": ":9090", "LOG_LEVEL": "debug"},
		},
		{
			name:    "double quoted",
			content: `DB_FILE="my db.json"` + "\n",
			want:    map[string]string{"DB_FILE": "my db.json"},
		},
		{
			name:    "value with equals",
			content: "SEED=a=b.yaml\n",
			want:    map[string]string{"SEED": "a=b.yaml"},
		},
		{
			name:    "single quoted",
			content: "HTTP=':8080'\n",
			wantErr: true,
		},
		{
			name:    "unbalanced single quote",
			content: "HTTP=':8080\n",
			wantErr: true,
		},
		{
			name:    "bad double quote",
			content: "HTTP=\"abc\n",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(tt.content), 0o600); err != nil {
				t.Fatal(err)
			}
			env, err := loadDotEnv(dir)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", env)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if len(env) != len(tt.want) {
				t.Fatalf("got %v, want %v", env, tt.want)
			}
			for k, v := range tt.want {
				if env[k] != v {
					t.Errorf("%s = %q, want %q", k, env[k], v)
				}
			}
		})
	}
}
