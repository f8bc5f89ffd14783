// Package geo holds plane geometry types with generated JSON converters.
package geo

//go:generate go run github.com/signadot/jsonbake/cmd/jsonbake-gen -dir .. gen

// Point is a position on an integer grid.
//
//jsonbake:generate
type Point struct {
	X int `jsonbake:"name=x"`
	Y int `jsonbake:"name=y"`
}

// Flag is written only when enabled.
//
//jsonbake:generate
type Flag struct {
	Enabled bool `jsonbake:"name=enabled,default=ignore"`
}

// Polygon is a closed path through its vertices.
//
//jsonbake:generate
type Polygon struct {
	Name     string  `jsonbake:"name=name"`
	Vertices []Point `jsonbake:"name=vertices"`
	Center   *Point  `jsonbake:"name=center,null=ignore"`
	Scale    float32 `jsonbake:"name=scale,default=populate,value=1"`
}
