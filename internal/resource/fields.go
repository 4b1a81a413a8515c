package resource

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/hilthontt/powersite/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

var alwaysReadOnly = []string{"id", "created_at", "updated_at"}

// field is one JSON-visible struct field and its column, if stored.
type field struct {
	name     string
	column   string
	schema   *schema.Field
	readOnly bool
	server   bool
}

type fieldSet struct {
	byName map[string]*field
	order  []string
}

func parseFields(db *gorm.DB, model any, readOnly, serverControlled []string) (*fieldSet, error) {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(model); err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}

	ro := toSet(slices.Concat(alwaysReadOnly, readOnly))
	sc := toSet(serverControlled)

	set := &fieldSet{byName: make(map[string]*field)}
	for _, f := range stmt.Schema.Fields {
		name := jsonName(f.Tag)
		if name == "" {
			continue
		}
		fd := &field{
			name:     name,
			column:   f.DBName,
			schema:   f,
			readOnly: ro[name] || f.DBName == "",
			server:   sc[name],
		}
		set.byName[name] = fd
		set.order = append(set.order, name)
	}

	for _, name := range slices.Concat(readOnly, serverControlled) {
		if _, ok := set.byName[name]; !ok {
			return nil, fmt.Errorf("unknown field %q in definition", name)
		}
	}

	return set, nil
}

func (s *fieldSet) column(name string) (string, bool) {
	f, ok := s.byName[name]
	if !ok || f.column == "" {
		return "", false
	}
	return f.column, true
}

func (s *fieldSet) names(pred func(*field) bool) []string {
	var out []string
	for _, name := range s.order {
		if pred(s.byName[name]) {
			out = append(out, name)
		}
	}
	return out
}

// checkWritable rejects keys the caller may not set.
func (s *fieldSet) checkWritable(payload map[string]json.RawMessage, caller domain.Caller) error {
	verr := domain.NewValidationError()
	for key := range payload {
		f, ok := s.byName[key]
		switch {
		case !ok:
			verr.Add(key, "Unknown field.")
		case f.readOnly:
			verr.Add(key, "This field is read-only.")
		case f.server && !caller.Privileged:
			verr.Add(key, "This field is set by the server.")
		}
	}
	return verr.OrNil()
}

// apply decodes every payload value into its field of rec.
func (s *fieldSet) apply(ctx context.Context, rec any, payload map[string]json.RawMessage) error {
	rv := reflect.ValueOf(rec).Elem()
	verr := domain.NewValidationError()

	for key, raw := range payload {
		f := s.byName[key]
		target := f.schema.ReflectValueOf(ctx, rv)

		if isNull(raw) {
			if target.Kind() != reflect.Pointer {
				verr.Add(key, "This field may not be null.")
				continue
			}
			target.Set(reflect.Zero(target.Type()))
			continue
		}

		if err := json.Unmarshal(raw, target.Addr().Interface()); err != nil {
			verr.Add(key, decodeMessage(target.Type(), err))
		}
	}

	return verr.OrNil()
}

// columns maps payload keys to their columns.
func (s *fieldSet) columns(payload map[string]json.RawMessage) []string {
	cols := make([]string, 0, len(payload))
	for key := range payload {
		if col, ok := s.column(key); ok {
			cols = append(cols, col)
		}
	}
	return cols
}

func (s *fieldSet) value(ctx context.Context, rec any, name string) any {
	v, _ := s.byName[name].schema.ValueOf(ctx, reflect.ValueOf(rec).Elem())
	return v
}

// filterValue converts a query string value to the column's Go type.
func (s *fieldSet) filterValue(name, raw string) (any, error) {
	f := s.byName[name]
	switch f.schema.DataType {
	case schema.Bool:
		return strconv.ParseBool(raw)
	case schema.Int:
		return strconv.ParseInt(raw, 10, 64)
	case schema.Uint:
		return strconv.ParseUint(raw, 10, 64)
	case schema.Float:
		return strconv.ParseFloat(raw, 64)
	default:
		return raw, nil
	}
}

// decodePayload splits a JSON object into its top-level keys.
func decodePayload(payload []byte) (map[string]json.RawMessage, error) {
	out := make(map[string]json.RawMessage)
	if len(bytes.TrimSpace(payload)) == 0 {
		return out, nil
	}

	if err := json.Unmarshal(payload, &out); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, domain.FieldError("non_field_errors", "Invalid data. Expected a dictionary, but got %s.", typeErr.Value)
		}
		return nil, domain.FieldError("non_field_errors", "JSON parse error - %s", err.Error())
	}
	return out, nil
}

func decodeMessage(t reflect.Type, err error) string {
	if errors.Is(err, domain.ErrDateFormat) {
		return err.Error()
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	switch {
	case t == reflect.TypeOf(time.Time{}):
		return "Datetime has wrong format. Use one of these formats instead: YYYY-MM-DDThh:mm[:ss[.uuuuuu]][+HH:MM|-HH:MM|Z]."
	case t.Kind() == reflect.Bool:
		return "Must be a valid boolean."
	case t.Kind() >= reflect.Int && t.Kind() <= reflect.Uint64:
		return "A valid integer is required."
	case t.Kind() == reflect.Float32 || t.Kind() == reflect.Float64:
		return "A valid number is required."
	case t.Kind() == reflect.String:
		return "Not a valid string."
	}
	return "Invalid value."
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

func jsonName(tag reflect.StructTag) string {
	name := strings.SplitN(tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

func toSet(items []string) map[string]bool {
	out := make(map[string]bool, len(items))
	for _, item := range items {
		out[item] = true
	}
	return out
}
