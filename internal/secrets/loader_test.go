package secrets

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	tokenFile := filepath.Join(dir, "token")
	if err := os.WriteFile(tokenFile, []byte("  file-secret \n"), 0o600); err != nil {
		t.Fatalf("writing token file: %v", err)
	}

	emptyFile := filepath.Join(dir, "empty")
	if err := os.WriteFile(emptyFile, []byte("   \n"), 0o600); err != nil {
		t.Fatalf("writing empty file: %v", err)
	}

	t.Setenv("SECRETS_TEST_TOKEN", " env-secret ")

	tests := []struct {
		name    string
		source  Source
		expect  string
		wantErr bool
	}{
		{
			name:   "file wins over env and value",
			source: Source{Name: "token", File: tokenFile, Env: "SECRETS_TEST_TOKEN", Value: "inline"},
			expect: "file-secret",
		},
		{
			name:   "env wins over value",
			source: Source{Name: "token", Env: "SECRETS_TEST_TOKEN", Value: "inline"},
			expect: "env-secret",
		},
		{
			name:   "inline value",
			source: Source{Name: "token", Value: " inline "},
			expect: "inline",
		},
		{
			name:    "empty file is an error",
			source:  Source{Name: "token", File: emptyFile, Value: "inline"},
			wantErr: true,
		},
		{
			name:    "missing file is an error",
			source:  Source{Name: "token", File: filepath.Join(dir, "missing")},
			wantErr: true,
		},
		{
			name:    "nothing configured",
			source:  Source{Name: "token"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			secret, err := Load(tt.source)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected an error, got %q", secret)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if secret != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, secret)
			}
		})
	}
}
