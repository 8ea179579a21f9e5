package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// rowPlan is the column layout of a db-tagged struct type, resolved once per
// type.
type rowPlan struct {
	columns []string
	fields  [][]int
}

var rowPlans sync.Map // reflect.Type -> *rowPlan

// Row appends one VALUES tuple taken from the db-tagged exported fields of
// model, promoting fields of embedded structs. The first row fixes the
// column list; later rows must have the same type. Errors surface from ToSQL.
func (b *InsertBuilder) Row(model any) *InsertBuilder {
	if b.err != nil {
		return b
	}
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			b.err = fmt.Errorf("insert row %d: model cannot be nil", len(b.rows))
			return b
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		b.err = fmt.Errorf("insert row %d: model must be a struct, got %s", len(b.rows), value.Kind())
		return b
	}

	plan, err := planFor(value.Type())
	if err != nil {
		b.err = err
		return b
	}
	switch {
	case b.rowType == nil:
		b.rowType = value.Type()
		b.columns = plan.columns
	case b.rowType != value.Type():
		b.err = fmt.Errorf("insert row %d: %s does not match %s", len(b.rows), value.Type(), b.rowType)
		return b
	}

	values := make([]any, len(plan.fields))
	for i, index := range plan.fields {
		values[i] = value.FieldByIndex(index).Interface()
	}
	b.rows = append(b.rows, values)
	return b
}

func planFor(typ reflect.Type) (*rowPlan, error) {
	if cached, ok := rowPlans.Load(typ); ok {
		return cached.(*rowPlan), nil
	}

	plan := &rowPlan{}
	collectColumns(typ, nil, plan)
	if len(plan.columns) == 0 {
		return nil, fmt.Errorf("%s has no db columns", typ)
	}
	actual, _ := rowPlans.LoadOrStore(typ, plan)
	return actual.(*rowPlan), nil
}

func collectColumns(typ reflect.Type, parent []int, plan *rowPlan) {
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		index := append(append([]int(nil), parent...), i)
		col, _, _ := strings.Cut(field.Tag.Get("db"), ",")
		col = strings.TrimSpace(col)

		if field.Anonymous && col == "" && field.Type.Kind() == reflect.Struct {
			collectColumns(field.Type, index, plan)
			continue
		}
		if !field.IsExported() || col == "" || col == "-" {
			continue
		}
		plan.columns = append(plan.columns, Ident(col))
		plan.fields = append(plan.fields, index)
	}
}
