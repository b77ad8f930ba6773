// Package sqlutil builds parameterized SQL fragments for PostgreSQL statements.
package sqlutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
)

// ErrMissingData is returned when a partial update is requested with no fields.
var ErrMissingData = errors.New("no data")

// Field is a single logical field name paired with its new value.
type Field struct {
	Name  string
	Value any
}

// Fields is an ordered set of field assignments. The order determines
// placeholder numbering in the generated fragment.
type Fields []Field

// Set assigns value to name. A name that is already present keeps its
// original position and only has its value replaced.
func (f *Fields) Set(name string, value any) {
	for i := range *f {
		if (*f)[i].Name == name {
			(*f)[i].Value = value
			return
		}
	}
	*f = append(*f, Field{Name: name, Value: value})
}

// Names returns the field names in order.
func (f Fields) Names() []string {
	names := make([]string, len(f))
	for i, field := range f {
		names[i] = field.Name
	}
	return names
}

// UnknownFieldError indicates a field outside the allowed set.
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("field not allowed: %s", e.Field)
}

// Restrict checks every field name against allowed. Column names are
// interpolated into the statement text, so only application-defined names
// may reach PartialUpdate.
func (f Fields) Restrict(allowed ...string) error {
	for _, field := range f {
		ok := false
		for _, name := range allowed {
			if field.Name == name {
				ok = true
				break
			}
		}
		if !ok {
			return &UnknownFieldError{Field: field.Name}
		}
	}
	return nil
}

// ColumnMap maps logical field names to physical column names. Fields with
// no entry use their logical name as the column name.
type ColumnMap map[string]string

// Column resolves the physical column for a logical field name.
func (m ColumnMap) Column(name string) string {
	if col, ok := m[name]; ok && col != "" {
		return col
	}
	return name
}

// Fragment is a rendered SQL fragment and its positional arguments.
type Fragment struct {
	Clause string
	Values []any
}

// NextPlaceholder returns the placeholder that follows the fragment's
// arguments, e.g. "$3" for a fragment holding two values.
func (f Fragment) NextPlaceholder() string {
	return "$" + strconv.Itoa(len(f.Values)+1)
}

// PartialUpdate renders the SET clause for an UPDATE statement.
//
//	{firstName: "Aliya", age: 32} + {firstName: "first_name"}
//	=> `"first_name"=$1, "age"=$2`, ["Aliya", 32]
func PartialUpdate(data Fields, columns ColumnMap) (Fragment, error) {
	if len(data) == 0 {
		return Fragment{}, ErrMissingData
	}

	cols := make([]string, len(data))
	values := make([]any, len(data))
	for i, field := range data {
		ident := pgx.Identifier{columns.Column(field.Name)}.Sanitize()
		cols[i] = ident + "=$" + strconv.Itoa(i+1)
		values[i] = field.Value
	}

	return Fragment{
		Clause: strings.Join(cols, ", "),
		Values: values,
	}, nil
}
