package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

var (
	optionalType    = reflect.TypeFor[optional]()
	unmarshalerType = reflect.TypeFor[json.Unmarshaler]()
)

// Decode strictly decodes data into T.
//
// Every field of T is required unless its type is Optional. A required key
// that is missing or null, a value of the wrong JSON kind, or a number that
// overflows the declared width is reported as a *DecodeError naming the field
// path. Keys the types do not declare are ignored.
func Decode[T any](data []byte) (T, error) {
	var out T

	raw, err := parseRaw(data)
	if err != nil {
		return out, err
	}

	if err := check(reflect.TypeFor[T](), raw, ""); err != nil {
		return out, err
	}

	if err := json.Unmarshal(data, &out); err != nil {
		return out, wrapUnmarshalError(err)
	}

	return out, nil
}

// DecodePage strictly decodes a list envelope.
func DecodePage[T any](data []byte) (*Page[T], error) {
	page, err := Decode[Page[T]](data)
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// DecodeSingle decodes an envelope and returns its first record.
// An empty envelope yields ErrEmptyData.
func DecodeSingle[T any](data []byte) (T, error) {
	page, err := DecodePage[T](data)
	if err != nil {
		var zero T
		return zero, err
	}

	first, ok := page.First()
	if !ok {
		return first, ErrEmptyData
	}
	return first, nil
}

// OptionalFields returns the optional-field allowlist of v's type as sorted,
// dotted JSON paths. Slice elements are written as "[]".
func OptionalFields(v any) []string {
	seen := make(map[string]struct{})
	collectOptional(reflect.TypeOf(v), "", seen)

	paths := make([]string, 0, len(seen))
	for p := range seen {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func parseRaw(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, &DecodeError{Reason: "malformed JSON", Err: err}
	}
	return raw, nil
}

func check(t reflect.Type, v any, path string) error {
	if t.Implements(optionalType) {
		if v == nil {
			return nil
		}
		return check(reflect.Zero(t).Interface().(optional).valueType(), v, path)
	}

	if v == nil {
		return &DecodeError{Path: path, Reason: "required field is null"}
	}

	if t.Implements(unmarshalerType) || reflect.PointerTo(t).Implements(unmarshalerType) {
		return checkUnmarshaler(t, v, path)
	}

	switch t.Kind() {
	case reflect.Pointer:
		return check(t.Elem(), v, path)

	case reflect.Struct:
		obj, ok := v.(map[string]any)
		if !ok {
			return mismatch(path, "object", v)
		}
		for i := range t.NumField() {
			f := t.Field(i)
			name, ok := jsonName(f)
			if !ok {
				continue
			}
			child := joinPath(path, name)
			fv, present := obj[name]
			if !present {
				if f.Type.Implements(optionalType) {
					continue
				}
				return &DecodeError{Path: child, Reason: "missing required field"}
			}
			if err := check(f.Type, fv, child); err != nil {
				return err
			}
		}

	case reflect.Slice, reflect.Array:
		arr, ok := v.([]any)
		if !ok {
			return mismatch(path, "array", v)
		}
		for i, elem := range arr {
			if err := check(t.Elem(), elem, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}

	case reflect.Map:
		obj, ok := v.(map[string]any)
		if !ok {
			return mismatch(path, "object", v)
		}
		for k, elem := range obj {
			if err := check(t.Elem(), elem, joinPath(path, k)); err != nil {
				return err
			}
		}

	case reflect.String:
		if _, ok := v.(string); !ok {
			return mismatch(path, "string", v)
		}

	case reflect.Bool:
		if _, ok := v.(bool); !ok {
			return mismatch(path, "boolean", v)
		}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, ok := v.(json.Number)
		if !ok {
			return mismatch(path, "number", v)
		}
		if _, err := strconv.ParseInt(n.String(), 10, t.Bits()); err != nil {
			return &DecodeError{Path: path, Reason: fmt.Sprintf("%s does not fit %s", n, t), Err: err}
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, ok := v.(json.Number)
		if !ok {
			return mismatch(path, "number", v)
		}
		if _, err := strconv.ParseUint(n.String(), 10, t.Bits()); err != nil {
			return &DecodeError{Path: path, Reason: fmt.Sprintf("%s does not fit %s", n, t), Err: err}
		}

	case reflect.Float32, reflect.Float64:
		n, ok := v.(json.Number)
		if !ok {
			return mismatch(path, "number", v)
		}
		if _, err := strconv.ParseFloat(n.String(), t.Bits()); err != nil {
			return &DecodeError{Path: path, Reason: fmt.Sprintf("%s does not fit %s", n, t), Err: err}
		}
	}

	return nil
}

// checkUnmarshaler runs leaf types such as time.Time through their own
// decoder so their failures carry a field path too.
func checkUnmarshaler(t reflect.Type, v any, path string) error {
	b, err := json.Marshal(v)
	if err != nil {
		return &DecodeError{Path: path, Reason: "unencodable value", Err: err}
	}

	target := reflect.New(t).Interface().(json.Unmarshaler)
	if err := target.UnmarshalJSON(b); err != nil {
		return &DecodeError{Path: path, Reason: fmt.Sprintf("invalid %s", t), Err: err}
	}
	return nil
}

func collectOptional(t reflect.Type, path string, seen map[string]struct{}) {
	if t == nil {
		return
	}

	if t.Implements(optionalType) {
		seen[path] = struct{}{}
		collectOptional(reflect.Zero(t).Interface().(optional).valueType(), path, seen)
		return
	}

	if t.Implements(unmarshalerType) || reflect.PointerTo(t).Implements(unmarshalerType) {
		return
	}

	switch t.Kind() {
	case reflect.Pointer:
		collectOptional(t.Elem(), path, seen)
	case reflect.Slice, reflect.Array:
		collectOptional(t.Elem(), path+"[]", seen)
	case reflect.Struct:
		for i := range t.NumField() {
			f := t.Field(i)
			if name, ok := jsonName(f); ok {
				collectOptional(f.Type, joinPath(path, name), seen)
			}
		}
	}
}

func jsonName(f reflect.StructField) (string, bool) {
	if !f.IsExported() {
		return "", false
	}
	tag := f.Tag.Get("json")
	if tag == "-" {
		return "", false
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		name = f.Name
	}
	return name, true
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

func mismatch(path, want string, got any) error {
	return &DecodeError{Path: path, Reason: fmt.Sprintf("expected %s, got %s", want, jsonKind(got))}
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func wrapUnmarshalError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return &DecodeError{
			Path:   typeErr.Field,
			Reason: fmt.Sprintf("cannot decode %s into %s", typeErr.Value, typeErr.Type),
			Err:    err,
		}
	}
	return &DecodeError{Reason: "unmarshal failed", Err: err}
}
