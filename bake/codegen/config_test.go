package codegen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFile)
	writeFile(t, path, `
dir: models
recursive: true
output: baked.go
filter: Name != "Skip"
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	want := &Config{
		Dir:       filepath.Join(dir, "models"),
		Recursive: true,
		Output:    "baked.go",
		Filter:    `Name != "Skip"`,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFile)
	writeFile(t, path, "")
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Dir != dir || cfg.Output != DefaultOutput || cfg.Recursive {
		t.Errorf("got %+v, want defaults in %s", cfg, dir)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown key", "outptu: x.go\n", "outptu"},
		{"nested output", "output: sub/x.go\n", "must be a file name"},
		{"not go", "output: x.txt\n", "non-test .go file"},
		{"test file", "output: x_test.go\n", "non-test .go file"},
		{"bad filter", "filter: Name ==\n", "invalid filter"},
		{"bad yaml", "dir: [\n", "parse config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ConfigFile)
			writeFile(t, path, tt.content)
			_, err := LoadConfig(path)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestFindConfig(t *testing.T) {
	dir := t.TempDir()
	if _, ok := FindConfig(dir); ok {
		t.Fatal("found a config in an empty directory")
	}
	writeFile(t, filepath.Join(dir, ConfigFile), "recursive: true\n")
	path, ok := FindConfig(dir)
	if !ok || path != filepath.Join(dir, ConfigFile) {
		t.Errorf("FindConfig = %q, %v", path, ok)
	}
}

func TestValidateDefaultsOutput(t *testing.T) {
	cfg := &Config{Dir: "."}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if cfg.Output != DefaultOutput {
		t.Errorf("Output = %q, want %q", cfg.Output, DefaultOutput)
	}
}
