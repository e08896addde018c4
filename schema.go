package main

import (
	"strings"

	"github.com/jackc/pgx/v5"
)

// quoteIdent returns name as a double-quoted PostgreSQL identifier. Every
// identifier in the generated script is quoted so MySQL's case and
// reserved-word tolerance survive the trip.
func quoteIdent(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

// quoteQualifiedIdent quotes a possibly schema-qualified name ("app.users").
func quoteQualifiedIdent(name string) string {
	return pgx.Identifier(strings.Split(name, ".")).Sanitize()
}

// quoteIdentList quotes and comma-joins column names.
func quoteIdentList(cols []string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = quoteIdent(c)
	}
	return strings.Join(quoted, ",")
}
