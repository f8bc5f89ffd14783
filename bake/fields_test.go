package bake

import (
	"errors"
	"slices"
	"testing"
)

func TestFieldTableMatch(t *testing.T) {
	ft := NewFieldTable("id", "Name", "NAME", "url")
	tests := []struct {
		name string
		want int
	}{
		{"id", 0},
		{"ID", 0},
		{"Name", 1},
		{"NAME", 2},
		{"name", 1},
		{"Url", 3},
		{"missing", -1},
		{"", -1},
	}
	for _, tt := range tests {
		if got := ft.Match(tt.name); got != tt.want {
			t.Errorf("Match(%q) = %d, want %d", tt.name, got, tt.want)
		}
	}
}

type point struct{ X, Y int }

func TestValue(t *testing.T) {
	p := &point{1, 2}
	if got, err := Value[point](p); err != nil || got != p {
		t.Errorf("Value(*T) = %v, %v", got, err)
	}
	if got, err := Value[point](point{3, 4}); err != nil || *got != (point{3, 4}) {
		t.Errorf("Value(T) = %v, %v", got, err)
	}
	if got, err := Value[point]((*point)(nil)); err != nil || got != nil {
		t.Errorf("Value(nil) = %v, %v", got, err)
	}
	var me *MarshalError
	if _, err := Value[point]("nope"); !errors.As(err, &me) {
		t.Errorf("Value(string) error = %v", err)
	}
}

func TestTarget(t *testing.T) {
	p := &point{}
	if got, err := Target[point](p); err != nil || got != p {
		t.Errorf("Target = %v, %v", got, err)
	}
	var ue *UnmarshalError
	for _, v := range []any{point{}, (*point)(nil), nil} {
		if _, err := Target[point](v); !errors.As(err, &ue) {
			t.Errorf("Target(%#v) error = %v", v, err)
		}
	}
}

func TestSortedKeys(t *testing.T) {
	type level int
	got := SortedKeys(map[level]string{3: "c", -1: "a", 2: "b"})
	if !slices.Equal(got, []level{-1, 2, 3}) {
		t.Errorf("SortedKeys = %v", got)
	}
}
