package repository

import (
	"fmt"
	"strings"
)

// updateBuilder accumulates "column = $n" assignments for a single-row
// UPDATE. Values are always bound as parameters.
type updateBuilder struct {
	table string
	sets  []string
	args  []any
}

func newUpdateBuilder(table string) *updateBuilder {
	return &updateBuilder{table: table}
}

// Set binds value to column.
func (b *updateBuilder) Set(column string, value any) {
	b.args = append(b.args, value)
	b.sets = append(b.sets, fmt.Sprintf("%s = $%d", column, len(b.args)))
}

// SetString binds value only when it is supplied and non-empty.
func (b *updateBuilder) SetString(column string, value *string) {
	if value != nil && *value != "" {
		b.Set(column, *value)
	}
}

// SetInt binds value only when it is supplied.
func (b *updateBuilder) SetInt(column string, value *int) {
	if value != nil {
		b.Set(column, *value)
	}
}

// Empty reports whether no assignment has been added.
func (b *updateBuilder) Empty() bool {
	return len(b.sets) == 0
}

// Build restricts the statement to the row with the given id and returns the
// SQL and its arguments. Callers must check Empty first.
func (b *updateBuilder) Build(id int, returning string) (string, []any) {
	args := append(append([]any{}, b.args...), id)
	var sb strings.Builder
	sb.WriteString("UPDATE ")
	sb.WriteString(b.table)
	sb.WriteString(" SET ")
	sb.WriteString(strings.Join(b.sets, ", "))
	sb.WriteString(fmt.Sprintf(" WHERE id = $%d", len(args)))
	if returning != "" {
		sb.WriteString(" RETURNING ")
		sb.WriteString(returning)
	}
	return sb.String(), args
}
