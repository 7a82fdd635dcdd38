// Package validate lee payloads JSON de forma uniforme para todos los recursos:
// campos requeridos presentes, fechas YYYY-MM-DD, horas HH:MM e ids numéricos.
//
// Uso típico:
//
//	f := p.Fields()
//	name := f.String("name")
//	dob := f.Date("dob")
//	if err := f.Err(); err != nil { ... }
package validate

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"vet-records/internal/platform/apperr"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

var (
	ErrInvalidJSON = apperr.Invalid("Invalid JSON body")
	ErrDateFormat  = apperr.Invalid("Invalid date format.")
	ErrTimeFormat  = apperr.Invalid("Invalid time format.")
)

// Payload es el cuerpo JSON como mapa de valores crudos; permite distinguir
// "no enviado" de "enviado vacío".
type Payload map[string]json.RawMessage

func Decode(r io.Reader) (Payload, error) {
	var p Payload
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&p); err != nil {
		return nil, ErrInvalidJSON
	}
	if p == nil {
		return nil, ErrInvalidJSON
	}
	return p, nil
}

// Present: la clave vino, no es null y no es "".
func (p Payload) Present(key string) bool {
	raw, ok := p[key]
	if !ok {
		return false
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return false
	}
	var s string
	if json.Unmarshal(raw, &s) == nil && strings.TrimSpace(s) == "" {
		return false
	}
	return true
}

// lookup devuelve la primera clave presente entre key y sus alias.
func (p Payload) lookup(keys ...string) (string, json.RawMessage, bool) {
	for _, k := range keys {
		if p.Present(k) {
			return k, p[k], true
		}
	}
	return "", nil, false
}

func (p Payload) Fields() *Fields {
	return &Fields{p: p}
}

// Fields acumula faltantes y errores de formato mientras se leen los campos.
// Los métodos sin prefijo Opt exigen presencia; los Opt devuelven nil si falta.
type Fields struct {
	p       Payload
	missing []string
	err     error
}

// Err devuelve primero los faltantes (todos juntos) y si no, el primer error de formato.
func (f *Fields) Err() error {
	if len(f.missing) > 0 {
		return apperr.Invalid("Missing required fields: " + strings.Join(f.missing, ", "))
	}
	return f.err
}

func (f *Fields) fail(err error) {
	if f.err == nil {
		f.err = err
	}
}

func (f *Fields) require(keys []string) (json.RawMessage, bool) {
	_, raw, ok := f.p.lookup(keys...)
	if !ok {
		f.missing = append(f.missing, keys[0])
	}
	return raw, ok
}

func (f *Fields) String(key string, aliases ...string) string {
	raw, ok := f.require(append([]string{key}, aliases...))
	if !ok {
		return ""
	}
	s, err := asString(raw)
	if err != nil {
		f.fail(apperr.Invalidf("%s must be a string", key))
		return ""
	}
	return s
}

// RawString es String sin recortar espacios (contraseñas). Solo falta si no
// vino, es null o es "".
func (f *Fields) RawString(key string) string {
	raw, ok := f.p[key]
	var s string
	if !ok || json.Unmarshal(raw, &s) != nil {
		if !ok || string(bytes.TrimSpace(raw)) == "null" {
			f.missing = append(f.missing, key)
			return ""
		}
		f.fail(apperr.Invalidf("%s must be a string", key))
		return ""
	}
	if s == "" {
		f.missing = append(f.missing, key)
	}
	return s
}

func (f *Fields) OptString(key string, aliases ...string) *string {
	_, raw, ok := f.p.lookup(append([]string{key}, aliases...)...)
	if !ok {
		return nil
	}
	s, err := asString(raw)
	if err != nil {
		f.fail(apperr.Invalidf("%s must be a string", key))
		return nil
	}
	return &s
}

func (f *Fields) ID(key string) int64 {
	raw, ok := f.require([]string{key})
	if !ok {
		return 0
	}
	id, err := asID(raw)
	if err != nil {
		f.fail(apperr.Invalidf("%s must be a positive integer", key))
		return 0
	}
	return id
}

func (f *Fields) OptID(key string) *int64 {
	_, raw, ok := f.p.lookup(key)
	if !ok {
		return nil
	}
	id, err := asID(raw)
	if err != nil {
		f.fail(apperr.Invalidf("%s must be a positive integer", key))
		return nil
	}
	return &id
}

func (f *Fields) Float(key string) float64 {
	raw, ok := f.require([]string{key})
	if !ok {
		return 0
	}
	v, err := asFloat(raw)
	if err != nil {
		f.fail(apperr.Invalidf("%s must be a number", key))
		return 0
	}
	return v
}

func (f *Fields) OptFloat(key string) *float64 {
	_, raw, ok := f.p.lookup(key)
	if !ok {
		return nil
	}
	v, err := asFloat(raw)
	if err != nil {
		f.fail(apperr.Invalidf("%s must be a number", key))
		return nil
	}
	return &v
}

func (f *Fields) Bool(key string) bool {
	raw, ok := f.require([]string{key})
	if !ok {
		return false
	}
	return f.parseBool(key, raw)
}

// OptBool devuelve def si el campo no vino.
func (f *Fields) OptBool(key string, def bool) bool {
	_, raw, ok := f.p.lookup(key)
	if !ok {
		return def
	}
	return f.parseBool(key, raw)
}

func (f *Fields) parseBool(key string, raw json.RawMessage) bool {
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b
	}
	if s, err := asString(raw); err == nil {
		if v, err := strconv.ParseBool(s); err == nil {
			return v
		}
	}
	f.fail(apperr.Invalidf("%s must be a boolean", key))
	return false
}

func (f *Fields) Date(key string) time.Time {
	raw, ok := f.require([]string{key})
	if !ok {
		return time.Time{}
	}
	t, err := asLayout(raw, DateLayout)
	if err != nil {
		f.fail(ErrDateFormat)
		return time.Time{}
	}
	return t
}

func (f *Fields) OptDate(key string) *time.Time {
	_, raw, ok := f.p.lookup(key)
	if !ok {
		return nil
	}
	t, err := asLayout(raw, DateLayout)
	if err != nil {
		f.fail(ErrDateFormat)
		return nil
	}
	return &t
}

// Clock valida HH:MM y devuelve la hora normalizada.
func (f *Fields) Clock(key string) string {
	raw, ok := f.require([]string{key})
	if !ok {
		return ""
	}
	t, err := asLayout(raw, ClockLayout)
	if err != nil {
		f.fail(ErrTimeFormat)
		return ""
	}
	return t.Format(ClockLayout)
}

func (f *Fields) OptClock(key string) *string {
	_, raw, ok := f.p.lookup(key)
	if !ok {
		return nil
	}
	t, err := asLayout(raw, ClockLayout)
	if err != nil {
		f.fail(ErrTimeFormat)
		return nil
	}
	s := t.Format(ClockLayout)
	return &s
}

// ParseDate es el parser compartido por query params y tests.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ErrDateFormat
	}
	return t, nil
}

func asString(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", err
	}
	return strings.TrimSpace(s), nil
}

// asID acepta 3 o "3": el frontend manda ids leídos de localStorage como texto.
func asID(raw json.RawMessage) (int64, error) {
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		s, serr := asString(raw)
		if serr != nil {
			return 0, err
		}
		n = json.Number(s)
	}
	id, err := strconv.ParseInt(n.String(), 10, 32)
	if err != nil || id <= 0 {
		return 0, apperr.Invalid("not a positive integer")
	}
	return id, nil
}

func asFloat(raw json.RawMessage) (float64, error) {
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		s, serr := asString(raw)
		if serr != nil {
			return 0, err
		}
		n = json.Number(s)
	}
	v, err := strconv.ParseFloat(n.String(), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, apperr.Invalid("not a number")
	}
	return v, nil
}

func asLayout(raw json.RawMessage, layout string) (time.Time, error) {
	s, err := asString(raw)
	if err != nil {
		return time.Time{}, err
	}
	if len(s) != len(layout) {
		return time.Time{}, apperr.Invalid("bad layout")
	}
	return time.Parse(layout, s)
}
