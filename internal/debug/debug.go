// Package debug reads debugging switches from the environment.
package debug

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
)

type debug struct {
	Registry bool
	Gen      bool
	Schema   bool
}

var d *debug

func init() {
	d = load()
}

func load() *debug {
	return &debug{
		Registry: boolEnv("JSONBAKE_DEBUG_REGISTRY"),
		Gen:      boolEnv("JSONBAKE_DEBUG_GEN"),
		Schema:   boolEnv("JSONBAKE_DEBUG_SCHEMA"),
	}
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

// Registry reports whether registry module loads are logged to stderr.
func Registry() bool {
	return d.Registry
}

// Gen reports whether the generator logs to stderr when given no logger.
func Gen() bool {
	return d.Gen
}

// Schema reports whether extracted schemas are dumped to stderr.
func Schema() bool {
	return d.Schema
}

// Logger returns a debug level logger writing to stderr.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// LogAny writes v to stderr as JSON, or with %v if it cannot be marshalled.
func LogAny(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", v)
		return
	}
	os.Stderr.Write(append(data, '\n'))
}
