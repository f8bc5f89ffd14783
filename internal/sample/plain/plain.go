// Package plain has no generated converters. Its values are encoded by the
// json package alone.
package plain

type Note struct {
	Text   string   `json:"text"`
	Labels []string `json:"labels,omitempty"`
}

type Pair struct {
	Left, Right Note
}
