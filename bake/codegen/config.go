package codegen

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultOutput is the name of generated files.
	DefaultOutput = "jsonbake_gen.go"
	// ConfigFile is the name of the optional generator configuration file.
	ConfigFile = "jsonbake.yaml"
)

// Config configures a Generator.
type Config struct {
	// Dir is the directory to scan.
	Dir string `yaml:"dir"`
	// Recursive scans the subdirectories of Dir too.
	Recursive bool `yaml:"recursive"`
	// Output is the name of the generated file in each package directory.
	Output string `yaml:"output"`
	// Filter is an expression selecting the types to generate.
	Filter string `yaml:"filter"`
}

// DefaultConfig returns the configuration used without a config file.
func DefaultConfig() *Config {
	return &Config{
		Dir:    ".",
		Output: DefaultOutput,
	}
}

// LoadConfig reads a YAML config file. Unknown keys are an error. A relative
// dir is taken relative to the file.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg := DefaultConfig()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if !filepath.IsAbs(cfg.Dir) {
		cfg.Dir = filepath.Join(filepath.Dir(path), cfg.Dir)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// FindConfig returns the path of the config file in dir, if there is one.
func FindConfig(dir string) (string, bool) {
	path := filepath.Join(dir, ConfigFile)
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	if filepath.Base(c.Output) != c.Output {
		return fmt.Errorf("output %q must be a file name", c.Output)
	}
	if filepath.Ext(c.Output) != ".go" || strings.HasSuffix(c.Output, "_test.go") {
		return fmt.Errorf("output %q must be a non-test .go file", c.Output)
	}
	if _, err := CompileFilter(c.Filter); err != nil {
		return err
	}
	return nil
}
