package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
)

// InsertModel renders an INSERT from the exported db-tagged fields of model.
// A field tagged `db:"col,omitnil"` is left out while it holds a nil pointer,
// so the column default applies.
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	cols, err := modelColumns(model)
	if err != nil {
		return "", nil, fmt.Errorf("insert %s: %w", table, err)
	}

	names := make([]string, len(cols))
	values := make([]any, len(cols))
	for i, c := range cols {
		names[i] = c.name
		values[i] = c.value
	}
	return InsertInto(table).Columns(names...).Values(values...).Suffix(suffix).ToSQL()
}

type modelColumn struct {
	name  string
	value any
}

func modelColumns(model any) ([]modelColumn, error) {
	rv := reflect.ValueOf(model)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, fmt.Errorf("model cannot be nil")
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("model must be a struct, got %s", rv.Kind())
	}

	rt := rv.Type()
	var cols []modelColumn
	for i := range rt.NumField() {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		name, opts, _ := strings.Cut(sf.Tag.Get("db"), ",")
		name = strings.TrimSpace(name)
		if name == "" || name == "-" {
			continue
		}

		fv := rv.Field(i)
		if strings.TrimSpace(opts) == "omitnil" && fv.Kind() == reflect.Pointer && fv.IsNil() {
			continue
		}
		cols = append(cols, modelColumn{name: name, value: fv.Interface()})
	}

	if len(cols) == 0 {
		return nil, fmt.Errorf("model %s has no db columns", rt.Name())
	}
	return cols, nil
}
