package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/jsonbake/bake/codegen"
)

func TestGenConfig(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, codegen.ConfigFile), []byte("recursive: true\nfilter: Fields > 0\n"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		cfg  MainConfig
		want codegen.Config
	}{
		{
			name: "file",
			cfg:  MainConfig{Dir: dir},
			want: codegen.Config{Dir: dir, Recursive: true, Output: codegen.DefaultOutput, Filter: "Fields > 0"},
		},
		{
			name: "flags override",
			cfg:  MainConfig{Dir: dir, Output: "baked.go", Filter: `Name == "A"`},
			want: codegen.Config{Dir: dir, Recursive: true, Output: "baked.go", Filter: `Name == "A"`},
		},
		{
			name: "explicit file",
			cfg:  MainConfig{ConfigFile: filepath.Join(dir, codegen.ConfigFile)},
			want: codegen.Config{Dir: dir, Recursive: true, Output: codegen.DefaultOutput, Filter: "Fields > 0"},
		},
		{
			name: "no file",
			cfg:  MainConfig{Dir: filepath.Join(dir, "missing"), Recursive: true},
			want: codegen.Config{Dir: filepath.Join(dir, "missing"), Recursive: true, Output: codegen.DefaultOutput},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.cfg.genConfig()
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(&tt.want, got); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGenConfigBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("unknown: 1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg := &MainConfig{ConfigFile: path}
	if _, err := cfg.genConfig(); err == nil {
		t.Error("expected an error for an unknown key")
	}
}
