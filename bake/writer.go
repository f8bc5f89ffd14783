package bake

import (
	"encoding/base64"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/go-json-experiment/json/jsontext"
)

// Writer writes JSON tokens for generated converters. The first error is
// kept and every later call is a no-op, so generated code checks Err once.
type Writer struct {
	enc  *jsontext.Encoder
	name string
	err  error
}

func NewWriter(enc *jsontext.Encoder) *Writer {
	return &Writer{enc: enc}
}

// Err returns the first error encountered.
func (w *Writer) Err() error { return w.err }

func (w *Writer) token(t jsontext.Token) {
	if w.err != nil {
		return
	}
	if err := w.enc.WriteToken(t); err != nil {
		w.fail(err.Error(), err)
	}
}

func (w *Writer) fail(msg string, err error) {
	if w.err == nil {
		w.err = &MarshalError{FieldPath: w.name, Message: msg, Err: err}
	}
}

func (w *Writer) BeginObject() { w.token(jsontext.BeginObject) }
func (w *Writer) EndObject()   { w.token(jsontext.EndObject) }
func (w *Writer) BeginArray()  { w.token(jsontext.BeginArray) }
func (w *Writer) EndArray()    { w.token(jsontext.EndArray) }
func (w *Writer) Null()        { w.token(jsontext.Null) }

// Name writes an object property name.
func (w *Writer) Name(name string) {
	w.name = name
	w.token(jsontext.String(name))
}

// IntName writes an integer map key as a property name.
func (w *Writer) IntName(k int64) { w.Name(strconv.FormatInt(k, 10)) }

// UintName writes an unsigned integer map key as a property name.
func (w *Writer) UintName(k uint64) { w.Name(strconv.FormatUint(k, 10)) }

func (w *Writer) Bool(b bool)     { w.token(jsontext.Bool(b)) }
func (w *Writer) Int(n int64)     { w.token(jsontext.Int(n)) }
func (w *Writer) Uint(n uint64)   { w.token(jsontext.Uint(n)) }
func (w *Writer) String(s string) { w.token(jsontext.String(s)) }

// Float writes f, formatted with the shortest representation for the given
// bit size (32 or 64).
func (w *Writer) Float(f float64, bits int) {
	if w.err != nil {
		return
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		w.fail(fmt.Sprintf("unsupported value %v", f), nil)
		return
	}
	if bits == 32 {
		if err := w.enc.WriteValue(strconv.AppendFloat(nil, f, 'g', -1, 32)); err != nil {
			w.fail(err.Error(), err)
		}
		return
	}
	w.token(jsontext.Float(f))
}

// Time writes t as an RFC 3339 string.
func (w *Writer) Time(t time.Time) {
	w.token(jsontext.String(t.Format(time.RFC3339Nano)))
}

// Bytes writes b as a base64 string, or null when b is nil.
func (w *Writer) Bytes(b []byte) {
	if b == nil {
		w.Null()
		return
	}
	w.token(jsontext.String(base64.StdEncoding.EncodeToString(b)))
}

// Convert encodes v with conv, or with fb when conv is nil.
func (w *Writer) Convert(conv Converter, v any, fb Fallback) {
	if w.err != nil {
		return
	}
	if conv == nil {
		w.Fallback(v, fb)
		return
	}
	if err := conv.Encode(w.enc, v, fb); err != nil {
		w.err = nestPath(w.name, err)
	}
}

// Fallback encodes v with the host library.
func (w *Writer) Fallback(v any, fb Fallback) {
	if w.err != nil {
		return
	}
	if fb == nil {
		w.fail(fmt.Sprintf("no fallback to encode %T", v), nil)
		return
	}
	if err := fb.EncodeValue(w.enc, v); err != nil {
		if _, ok := err.(*MarshalError); ok {
			w.err = nestPath(w.name, err)
			return
		}
		w.fail(err.Error(), err)
	}
}
