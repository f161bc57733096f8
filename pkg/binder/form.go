package binder

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
)

// Form binds url-encoded or multipart form values (query included) into the
// `form` tagged fields of v. Supported field kinds are string, bool, the
// integer kinds and pointers to those.
func Form(r *http.Request, v any) error {
	if r.Body != nil && r.Body != http.NoBody {
		r.Body = http.MaxBytesReader(nil, r.Body, MaxBodySize)
	}
	if err := r.ParseMultipartForm(MaxBodySize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return fmt.Errorf("%w: %w", ErrInvalidForm, err)
	}
	return bindValues(v, "form", r.Form)
}

func bindValues(v any, tag string, values map[string][]string) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return ErrInvalidTarget
	}
	rv = rv.Elem()
	rt := rv.Type()

	for i := range rt.NumField() {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(sf.Tag.Get(tag), ",")
		switch name {
		case "-":
			continue
		case "":
			name = strings.ToLower(sf.Name)
		}
		vals := values[name]
		if len(vals) == 0 {
			continue
		}
		if err := setValue(rv.Field(i), vals[0]); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidForm, name, err)
		}
	}
	return nil
}

func setValue(f reflect.Value, raw string) error {
	if f.Kind() == reflect.Pointer {
		if f.IsNil() {
			f.Set(reflect.New(f.Type().Elem()))
		}
		return setValue(f.Elem(), raw)
	}

	switch f.Kind() {
	case reflect.String:
		f.SetString(raw)
	case reflect.Bool:
		switch strings.ToLower(raw) {
		case "on", "yes":
			f.SetBool(true)
			return nil
		case "off", "no", "":
			f.SetBool(false)
			return nil
		}
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		f.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, f.Type().Bits())
		if err != nil {
			return err
		}
		f.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, f.Type().Bits())
		if err != nil {
			return err
		}
		f.SetUint(n)
	default:
		return fmt.Errorf("unsupported kind %s", f.Kind())
	}
	return nil
}
