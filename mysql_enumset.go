package main

import (
	"fmt"
	"strings"
)

// parseMySQLEnumSetValues extracts the member list of an enum(...) or set(...)
// column type, undoing MySQL's backslash and doubled-quote escapes.
func parseMySQLEnumSetValues(columnType string) ([]string, error) {
	open := strings.IndexByte(columnType, '(')
	close := strings.LastIndexByte(columnType, ')')
	if open < 0 || close <= open {
		return nil, fmt.Errorf("invalid enum/set column_type %q", columnType)
	}

	inside := columnType[open+1 : close]
	var values []string
	i := 0
	for i < len(inside) {
		for i < len(inside) && (inside[i] == ' ' || inside[i] == ',') {
			i++
		}
		if i >= len(inside) {
			break
		}
		if inside[i] != '\'' {
			return nil, fmt.Errorf("invalid enum/set value list in %q", columnType)
		}
		i++

		var b strings.Builder
		for i < len(inside) {
			c := inside[i]
			if c == '\\' {
				if i+1 >= len(inside) {
					return nil, fmt.Errorf("invalid escape in %q", columnType)
				}
				b.WriteByte(inside[i+1])
				i += 2
				continue
			}
			if c == '\'' {
				if i+1 < len(inside) && inside[i+1] == '\'' {
					b.WriteByte('\'')
					i += 2
					continue
				}
				i++
				break
			}
			b.WriteByte(c)
			i++
		}

		values = append(values, b.String())
	}

	return values, nil
}

// enumTypeDefinition renders the CREATE TYPE body for a MySQL enum column
// type. Values are re-quoted with PostgreSQL rules; a type string that does
// not parse is carried over as written.
func enumTypeDefinition(typeName, columnType string) string {
	values, err := parseMySQLEnumSetValues(columnType)
	if err != nil {
		return fmt.Sprintf("%s AS %s", quoteIdent(typeName), columnType)
	}
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = quoteLiteral(v)
	}
	return fmt.Sprintf("%s AS ENUM (%s)", quoteIdent(typeName), strings.Join(quoted, ", "))
}
