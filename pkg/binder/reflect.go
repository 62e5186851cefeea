package binder

import (
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
)

var fileHeaderType = reflect.TypeFor[*multipart.FileHeader]()

func mediaType(r *http.Request) string {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return ""
	}
	return mt
}

func structTarget(v any) (reflect.Value, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return reflect.Value{}, ErrInvalidTarget
	}
	return rv.Elem(), nil
}

// tagName returns the parameter name from a struct tag, or "" when the field is skipped.
func tagName(f reflect.StructField, tag string) string {
	raw, ok := f.Tag.Lookup(tag)
	if !ok || raw == "-" {
		return ""
	}
	name, _, _ := strings.Cut(raw, ",")
	return name
}

func bindValues(v any, tag string, values map[string][]string, kind error) error {
	rv, err := structTarget(v)
	if err != nil {
		return err
	}
	rt := rv.Type()
	for i := range rt.NumField() {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := tagName(sf, tag)
		if name == "" {
			continue
		}
		vals, ok := values[name]
		if !ok || len(vals) == 0 {
			continue
		}
		if err := setValue(rv.Field(i), vals); err != nil {
			return fmt.Errorf("%w: field %s: %v", kind, name, err)
		}
	}
	return nil
}

func bindFiles(v any, files map[string][]*multipart.FileHeader) error {
	rv, err := structTarget(v)
	if err != nil {
		return err
	}
	rt := rv.Type()
	for i := range rt.NumField() {
		sf := rt.Field(i)
		name := tagName(sf, "file")
		if name == "" || !sf.IsExported() {
			continue
		}
		headers := files[name]
		if len(headers) == 0 {
			continue
		}
		for _, h := range headers {
			h.Filename = cleanFilename(h.Filename)
		}
		field := rv.Field(i)
		switch {
		case sf.Type == fileHeaderType:
			field.Set(reflect.ValueOf(headers[0]))
		case sf.Type.Kind() == reflect.Slice && sf.Type.Elem() == fileHeaderType:
			field.Set(reflect.ValueOf(headers))
		default:
			return fmt.Errorf("%w: field %s: unsupported file field type %s", ErrInvalidForm, name, sf.Type)
		}
	}
	return nil
}

func setValue(field reflect.Value, vals []string) error {
	switch field.Kind() {
	case reflect.Pointer:
		if field.IsNil() {
			field.Set(reflect.New(field.Type().Elem()))
		}
		return setValue(field.Elem(), vals)
	case reflect.Slice:
		out := reflect.MakeSlice(field.Type(), len(vals), len(vals))
		for i, s := range vals {
			if err := setScalar(out.Index(i), s); err != nil {
				return err
			}
		}
		field.Set(out)
		return nil
	default:
		return setScalar(field, vals[0])
	}
}

func setScalar(field reflect.Value, s string) error {
	s = strings.TrimSpace(s)
	switch field.Kind() {
	case reflect.String:
		field.SetString(s)
	case reflect.Bool:
		b, err := parseBool(s)
		if err != nil {
			return err
		}
		field.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid integer %q", s)
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid unsigned integer %q", s)
		}
		field.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid number %q", s)
		}
		field.SetFloat(f)
	default:
		return fmt.Errorf("unsupported field type %s", field.Type())
	}
	return nil
}

// parseBool accepts checkbox values besides the strconv forms.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "yes":
		return true, nil
	case "off", "no", "":
		return false, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid boolean %q", s)
	}
	return b, nil
}

func cleanFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.ReplaceAll(name, "\x00", "")
	if name == "." || name == ".." || name == "/" || name == "" {
		return "unnamed"
	}
	return name
}
