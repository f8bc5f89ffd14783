package debug

import "testing"

func TestLoad(t *testing.T) {
	t.Setenv("JSONBAKE_DEBUG_REGISTRY", "true")
	t.Setenv("JSONBAKE_DEBUG_GEN", "nope")
	t.Setenv("JSONBAKE_DEBUG_SCHEMA", "")
	got := load()
	if !got.Registry || got.Gen || got.Schema {
		t.Errorf("got %+v", got)
	}
}

func TestLogAny(t *testing.T) {
	// unsupported values fall back to %v
	LogAny(map[string]any{"f": func() {}})
	LogAny([]int{1, 2})
}
