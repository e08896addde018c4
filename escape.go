package main

import "strings"

// escapeLiteral makes s safe inside a standard-conforming PostgreSQL string
// literal. Backslashes are literal under standard_conforming_strings, which
// the script header turns on. NUL bytes cannot be stored in text columns and
// are dropped.
func escapeLiteral(s string) string {
	if strings.IndexByte(s, 0) >= 0 {
		s = strings.ReplaceAll(s, "\x00", "")
	}
	return strings.ReplaceAll(s, "'", "''")
}

// quoteLiteral returns s as a single-quoted PostgreSQL string literal.
func quoteLiteral(s string) string {
	return "'" + escapeLiteral(s) + "'"
}

// renderValue renders one raw dump value. Only an empty value in a nullable
// column becomes NULL; everything else is a quoted literal and type coercion
// is left to PostgreSQL.
func renderValue(raw string, nullable bool) string {
	if raw == "" && nullable {
		return "NULL"
	}
	return quoteLiteral(raw)
}
