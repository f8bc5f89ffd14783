package bake

import (
	"encoding/base64"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-json-experiment/json/jsontext"
)

// Reader reads JSON tokens for generated converters. Like Writer, it keeps
// the first error and turns every later call into a no-op returning a zero
// value.
//
// Scalar reads coerce between JSON kinds: numbers may be given as strings,
// booleans as numbers and so on, and null always reads as the zero value.
type Reader struct {
	dec  *jsontext.Decoder
	name string
	err  error
}

func NewReader(dec *jsontext.Decoder) *Reader {
	return &Reader{dec: dec}
}

// Err returns the first error encountered.
func (r *Reader) Err() error { return r.err }

func (r *Reader) fail(msg string, err error) {
	if r.err == nil {
		r.err = &UnmarshalError{FieldPath: r.name, Message: msg, Err: err}
	}
}

func (r *Reader) read() (jsontext.Token, bool) {
	if r.err != nil {
		return jsontext.Token{}, false
	}
	tok, err := r.dec.ReadToken()
	if err != nil {
		r.fail(err.Error(), err)
		return jsontext.Token{}, false
	}
	return tok, true
}

// scalar reads the next token, refusing objects and arrays.
func (r *Reader) scalar(want string) (jsontext.Token, bool) {
	if r.err != nil {
		return jsontext.Token{}, false
	}
	switch k := r.dec.PeekKind(); k {
	case '{', '[':
		r.fail(fmt.Sprintf("cannot read %s from JSON %v", want, k), nil)
		return jsontext.Token{}, false
	}
	return r.read()
}

func (r *Reader) expect(k jsontext.Kind) {
	tok, ok := r.read()
	if !ok {
		return
	}
	if tok.Kind() != k {
		r.fail(fmt.Sprintf("expected %v, found %v", k, tok.Kind()), nil)
	}
}

// Null consumes the next value and reports true if it is null. Otherwise
// nothing is consumed.
func (r *Reader) Null() bool {
	if r.err != nil || r.dec.PeekKind() != 'n' {
		return false
	}
	_, ok := r.read()
	return ok
}

func (r *Reader) BeginObject() { r.expect('{') }
func (r *Reader) EndObject()   { r.expect('}') }
func (r *Reader) BeginArray()  { r.expect('[') }
func (r *Reader) EndArray()    { r.expect(']') }

// More reports whether the current object or array has another member.
func (r *Reader) More() bool {
	if r.err != nil {
		return false
	}
	switch r.dec.PeekKind() {
	case '}', ']':
		return false
	case 0:
		// Surface the underlying syntax or I/O error.
		r.read()
		return false
	}
	return true
}

// Name reads an object property name.
func (r *Reader) Name() string {
	tok, ok := r.read()
	if !ok {
		return ""
	}
	if tok.Kind() != '"' {
		r.fail(fmt.Sprintf("expected property name, found %v", tok.Kind()), nil)
		return ""
	}
	r.name = tok.String()
	return r.name
}

// IntName reads a property name holding an integer map key.
func (r *Reader) IntName(bits int) int64 {
	name := r.Name()
	if r.err != nil {
		return 0
	}
	n, err := parseInt(name, bits)
	if err != nil {
		r.fail(fmt.Sprintf("invalid integer key %q", name), err)
	}
	return n
}

// UintName reads a property name holding an unsigned integer map key.
func (r *Reader) UintName(bits int) uint64 {
	name := r.Name()
	if r.err != nil {
		return 0
	}
	n, err := parseUint(name, bits)
	if err != nil {
		r.fail(fmt.Sprintf("invalid unsigned integer key %q", name), err)
	}
	return n
}

// Skip discards the next value.
func (r *Reader) Skip() {
	if r.err != nil {
		return
	}
	if err := r.dec.SkipValue(); err != nil {
		r.fail(err.Error(), err)
	}
}

func (r *Reader) Bool() bool {
	tok, ok := r.scalar("bool")
	if !ok {
		return false
	}
	switch tok.Kind() {
	case 'n', 'f':
		return false
	case 't':
		return true
	case '0':
		f, err := strconv.ParseFloat(tok.String(), 64)
		if err != nil {
			r.fail(fmt.Sprintf("invalid number %s", tok.String()), err)
		}
		return f != 0
	case '"':
		b, err := strconv.ParseBool(strings.TrimSpace(tok.String()))
		if err != nil {
			r.fail(fmt.Sprintf("cannot convert %q to bool", tok.String()), err)
		}
		return b
	}
	return false
}

// Int reads a signed integer that fits in bits (0 means int).
func (r *Reader) Int(bits int) int64 {
	tok, ok := r.scalar("integer")
	if !ok {
		return 0
	}
	switch tok.Kind() {
	case 'n', 'f':
		return 0
	case 't':
		return 1
	case '0', '"':
		n, err := parseInt(strings.TrimSpace(tok.String()), bits)
		if err != nil {
			r.fail(fmt.Sprintf("cannot convert %s to int%s", tok.String(), bitsSuffix(bits)), err)
		}
		return n
	}
	return 0
}

// Uint reads an unsigned integer that fits in bits (0 means uint).
func (r *Reader) Uint(bits int) uint64 {
	tok, ok := r.scalar("unsigned integer")
	if !ok {
		return 0
	}
	switch tok.Kind() {
	case 'n', 'f':
		return 0
	case 't':
		return 1
	case '0', '"':
		n, err := parseUint(strings.TrimSpace(tok.String()), bits)
		if err != nil {
			r.fail(fmt.Sprintf("cannot convert %s to uint%s", tok.String(), bitsSuffix(bits)), err)
		}
		return n
	}
	return 0
}

// Float reads a number with the precision of bits (32 or 64).
func (r *Reader) Float(bits int) float64 {
	tok, ok := r.scalar("number")
	if !ok {
		return 0
	}
	switch tok.Kind() {
	case 'n', 'f':
		return 0
	case 't':
		return 1
	case '0', '"':
		f, err := strconv.ParseFloat(strings.TrimSpace(tok.String()), bits)
		if err != nil {
			r.fail(fmt.Sprintf("cannot convert %s to float%d", tok.String(), bits), err)
		}
		return f
	}
	return 0
}

// String reads a string. Numbers and booleans read as their JSON text.
func (r *Reader) String() string {
	tok, ok := r.scalar("string")
	if !ok {
		return ""
	}
	if tok.Kind() == 'n' {
		return ""
	}
	return tok.String()
}

// Time reads an RFC 3339 string or a number of seconds since the Unix epoch.
func (r *Reader) Time() time.Time {
	tok, ok := r.scalar("time")
	if !ok {
		return time.Time{}
	}
	switch tok.Kind() {
	case 'n':
		return time.Time{}
	case '"':
		t, err := time.Parse(time.RFC3339Nano, tok.String())
		if err != nil {
			r.fail(fmt.Sprintf("cannot convert %q to time", tok.String()), err)
		}
		return t
	case '0':
		f, err := strconv.ParseFloat(tok.String(), 64)
		if err != nil {
			r.fail(fmt.Sprintf("invalid number %s", tok.String()), err)
			return time.Time{}
		}
		sec, frac := math.Modf(f)
		return time.Unix(int64(sec), int64(frac*1e9)).UTC()
	}
	r.fail(fmt.Sprintf("cannot convert %v to time", tok.Kind()), nil)
	return time.Time{}
}

// Bytes reads a base64 string.
func (r *Reader) Bytes() []byte {
	tok, ok := r.scalar("bytes")
	if !ok {
		return nil
	}
	switch tok.Kind() {
	case 'n':
		return nil
	case '"':
		b, err := base64.StdEncoding.DecodeString(tok.String())
		if err != nil {
			r.fail("invalid base64 data", err)
		}
		return b
	}
	r.fail(fmt.Sprintf("cannot convert %v to bytes", tok.Kind()), nil)
	return nil
}

// Convert decodes into v with conv, or with fb when conv is nil.
func (r *Reader) Convert(conv Converter, v any, fb Fallback) {
	if r.err != nil {
		return
	}
	if conv == nil {
		r.Fallback(v, fb)
		return
	}
	if err := conv.Decode(r.dec, v, fb); err != nil {
		r.err = nestPath(r.name, err)
	}
}

// Fallback decodes into v with the host library.
func (r *Reader) Fallback(v any, fb Fallback) {
	if r.err != nil {
		return
	}
	if fb == nil {
		r.fail(fmt.Sprintf("no fallback to decode %T", v), nil)
		return
	}
	if err := fb.DecodeValue(r.dec, v); err != nil {
		if _, ok := err.(*UnmarshalError); ok {
			r.err = nestPath(r.name, err)
			return
		}
		r.fail(err.Error(), err)
	}
}

func parseInt(s string, bits int) (int64, error) {
	n, err := strconv.ParseInt(s, 10, bits)
	if err == nil {
		return n, nil
	}
	f, ferr := strconv.ParseFloat(s, 64)
	if ferr != nil || f != math.Trunc(f) {
		return 0, err
	}
	// integral values written with a fraction or exponent, like 3.0 or 1e3
	return strconv.ParseInt(strconv.FormatFloat(f, 'f', 0, 64), 10, bits)
}

func parseUint(s string, bits int) (uint64, error) {
	n, err := strconv.ParseUint(s, 10, bits)
	if err == nil {
		return n, nil
	}
	f, ferr := strconv.ParseFloat(s, 64)
	if ferr != nil || f != math.Trunc(f) {
		return 0, err
	}
	return strconv.ParseUint(strconv.FormatFloat(f, 'f', 0, 64), 10, bits)
}

func bitsSuffix(bits int) string {
	if bits == 0 {
		return ""
	}
	return strconv.Itoa(bits)
}
