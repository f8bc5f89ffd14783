package broken

//jsonbake:generate
type Good struct {
	A int
}

//jsonbake:generate
type Bad struct {
	A int `jsonbake:"nmae=a"`
}

//jsonbake:generate
type NotStruct int
