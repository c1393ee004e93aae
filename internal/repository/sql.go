package repository

import (
	"errors"
	"sort"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// isConstraintErr reports whether err is a MySQL data-integrity rejection.
func isConstraintErr(err error) bool {
	var me *mysql.MySQLError
	if !errors.As(err, &me) {
		return false
	}
	switch me.Number {
	case 1048, // column cannot be null
		1062, // duplicate entry
		1364, // field doesn't have a default value
		1451, // row is referenced by a foreign key
		1452, // referenced row does not exist
		3819: // check constraint violated
		return true
	}
	return false
}

// buildSet assembles the SET clause of a partial UPDATE from submitted JSON
// fields. columns maps JSON field names to column names and doubles as the
// whitelist: unknown fields are dropped silently, matching the pass-through
// update contract. Keys are sorted so the generated SQL is stable.
func buildSet(fields map[string]any, columns map[string]string) (string, []any) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		if _, ok := columns[k]; ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	args := make([]any, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, columns[k]+" = ?")
		args = append(args, fields[k])
	}
	return strings.Join(parts, ", "), args
}
