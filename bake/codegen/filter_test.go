package codegen

import "testing"

func TestFilter(t *testing.T) {
	env := FilterEnv{Name: "Point", Package: "geo", Path: "example.com/geo", Fields: 2}
	tests := []struct {
		src  string
		want bool
	}{
		{"", true},
		{`Name == "Point"`, true},
		{`Package != "geo"`, false},
		{`Fields > 1 && Path startsWith "example.com/"`, true},
		{`Name in ["Line", "Polygon"]`, false},
		{`!(Name startsWith "Test")`, true},
	}
	for _, tt := range tests {
		f, err := CompileFilter(tt.src)
		if err != nil {
			t.Fatalf("%q: %v", tt.src, err)
		}
		got, err := f.Match(env)
		if err != nil {
			t.Fatalf("%q: %v", tt.src, err)
		}
		if got != tt.want {
			t.Errorf("%q matched %v, want %v", tt.src, got, tt.want)
		}
	}
}

func TestCompileFilterErrors(t *testing.T) {
	for _, src := range []string{
		`Name +`,
		`Fields`,
		`Unknown == 1`,
	} {
		if _, err := CompileFilter(src); err == nil {
			t.Errorf("%q compiled", src)
		}
	}
}

func TestFilterString(t *testing.T) {
	var f *Filter
	if f.String() != "true" {
		t.Errorf("nil filter = %q", f.String())
	}
	f, err := CompileFilter(`Fields > 0`)
	if err != nil {
		t.Fatal(err)
	}
	if f.String() != `Fields > 0` {
		t.Errorf("String() = %q", f.String())
	}
}
