package store

import (
	"fmt"
	"strings"
)

// Assignment is one "column = ?" term of an UPDATE.
type Assignment struct {
	Column string
	Value  any
}

// InsertStatement builds a single-row INSERT with one '?' per column.
func InsertStatement(table string, columns string) string {
	n := len(strings.Split(columns, ","))
	placeholders := strings.Repeat("?, ", n-1) + "?"
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, columns, placeholders)
}

// UpdateStatement builds an UPDATE of the assigned columns for the row with id
// and returns its arguments in placeholder order.
func UpdateStatement(table string, as []Assignment, id string) (string, []any) {
	sets := make([]string, 0, len(as))
	args := make([]any, 0, len(as)+1)
	for _, a := range as {
		sets = append(sets, a.Column+" = ?")
		args = append(args, a.Value)
	}
	args = append(args, id)
	return fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", table, strings.Join(sets, ", ")), args
}
