package basic

import "time"

// Point is a position on a grid.
//
//jsonbake:generate
type Point struct {
	X int `jsonbake:"name=x"`
	Y int `jsonbake:"name=y"`
}

//jsonbake:generate
type Track struct {
	Name    string    `jsonbake:"name=name"`
	Points  []Point   `jsonbake:"name=points"`
	Start   *Point    `jsonbake:"name=start,null=ignore"`
	Started time.Time `jsonbake:"name=started"`
	Labels  map[string]string
	hidden  int
}

type (
	//jsonbake:generate
	Grouped struct {
		On bool
	}

	Unmarked struct {
		N int
	}
)

// Internal is filtered out in tests.
//
//jsonbake:generate
type Internal struct {
	N int
}
