package main

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	parenLengthRe  = regexp.MustCompile(`\(([0-9]+)\)`)
	numericLiteral = regexp.MustCompile(`^[+-]?([0-9]+(\.[0-9]*)?|\.[0-9]+)([eE][+-]?[0-9]+)?$`)
)

// builtinDefaultKeywords are DEFAULT values emitted without quotes.
var builtinDefaultKeywords = []string{"CURRENT_TIMESTAMP"}

// fieldSpec is the outcome of mapping one table_structure field descriptor.
type fieldSpec struct {
	Column     ColumnDef
	Nullable   bool
	Primary    bool
	CustomType *CustomType

	// Passthrough is set when no rule matched and the MySQL type was copied.
	Passthrough bool
	// OnUpdate is set for ON UPDATE CURRENT_TIMESTAMP columns.
	OnUpdate bool
}

// mapType returns the PostgreSQL type for a MySQL column type. Enum columns
// also return the custom type they depend on. ok is false when no rule
// matched and the result is the fallback.
func mapType(table, field, mysqlType, extra string, timestampType string, tm TypeMappingConfig) (pgType string, custom *CustomType, ok bool) {
	t := strings.TrimSpace(mysqlType)
	lower := strings.ToLower(t)

	switch {
	case strings.TrimSpace(extra) == "auto_increment":
		if tm.Bigserial && strings.HasPrefix(lower, "bigint") {
			return "bigserial", nil, true
		}
		return "serial", nil, true
	case strings.HasPrefix(lower, "int"):
		return "integer", nil, true
	case strings.HasPrefix(lower, "bigint"):
		return "bigint", nil, true
	case strings.HasPrefix(lower, "double"):
		return "money", nil, true
	case strings.HasPrefix(lower, "tinyint"), strings.HasPrefix(lower, "smallint"):
		return "smallint", nil, true
	case strings.HasPrefix(lower, "float"):
		return "real", nil, true
	case strings.HasPrefix(lower, "decimal"):
		return "decimal", nil, true
	case strings.HasPrefix(lower, "blob"):
		return "bytea", nil, true
	case strings.HasPrefix(lower, "varchar"):
		if m := parenLengthRe.FindStringSubmatch(t); m != nil {
			return fmt.Sprintf("varchar(%s)", m[1]), nil, true
		}
		return "text", nil, true
	case lower == "datetime", lower == "timestamp":
		return timestampType, nil, true
	case lower == "mediumtext", lower == "tinytext", lower == "longtext":
		return "text", nil, true
	case strings.HasPrefix(lower, "enum"):
		name := table + "_enum_" + field
		return quoteIdent(name), &CustomType{Name: name, Definition: enumTypeDefinition(name, t)}, true
	}

	if tm.ExtendedTypes {
		// Fractional-second precision: datetime(6), timestamp(3).
		if strings.HasPrefix(lower, "datetime(") || strings.HasPrefix(lower, "timestamp(") {
			return timestampType, nil, true
		}
		if pg, ok := mapExtendedType(t, lower); ok {
			return pg, nil, true
		}
	}
	if tm.UnknownAsText {
		return "text", nil, false
	}
	return t, nil, false
}

// mapExtendedType covers MySQL types the base rules leave to the fallback
// although PostgreSQL has a direct equivalent.
func mapExtendedType(t, lower string) (string, bool) {
	switch {
	case strings.HasPrefix(lower, "mediumint"):
		return "integer", true
	case strings.HasPrefix(lower, "char"):
		if m := parenLengthRe.FindStringSubmatch(t); m != nil {
			return fmt.Sprintf("char(%s)", m[1]), true
		}
		return "char(1)", true
	case lower == "text":
		return "text", true
	case lower == "date":
		return "date", true
	case lower == "time", strings.HasPrefix(lower, "time("):
		return "time", true
	case strings.HasPrefix(lower, "year"):
		return "smallint", true
	case lower == "json":
		return "json", true
	case strings.HasPrefix(lower, "binary"), strings.HasPrefix(lower, "varbinary"),
		lower == "tinyblob", lower == "mediumblob", lower == "longblob":
		return "bytea", true
	case strings.HasPrefix(lower, "set"):
		return "text", true
	}
	return "", false
}

// isUnsignedNumeric reports whether a MySQL column is an unsigned numeric
// type whose PostgreSQL counterpart accepts negatives and compares with an
// integer literal. money only compares with money and gets no CHECK.
func isUnsignedNumeric(mysqlType, pgType string) bool {
	if !strings.Contains(strings.ToLower(mysqlType), "unsigned") {
		return false
	}
	switch pgType {
	case "integer", "bigint", "smallint", "real", "decimal", "serial", "bigserial":
		return true
	}
	return false
}

// renderDefault renders the DEFAULT clause body. Numeric literals and known
// keywords stay unquoted; anything else becomes a string literal.
func renderDefault(v string, keywords []string) string {
	if numericLiteral.MatchString(v) {
		return v
	}
	kw := strings.TrimSuffix(v, "()")
	for _, k := range builtinDefaultKeywords {
		if strings.EqualFold(kw, k) {
			return k
		}
	}
	for _, k := range keywords {
		if strings.EqualFold(v, k) {
			return k
		}
	}
	return quoteLiteral(v)
}

// buildField maps a table_structure field descriptor to its column clause.
// ok is false when the descriptor has no Field attribute and must be skipped.
func buildField(table string, attrs Attrs, cfg *ConvertConfig) (fs fieldSpec, ok bool) {
	name, present := attrs["Field"]
	if !present || name == "" {
		return fieldSpec{}, false
	}

	pgType, custom, known := mapType(table, name, attrs["Type"], attrs["Extra"], cfg.TimestampType, cfg.TypeMapping)

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", quoteIdent(name), pgType)

	fs.Nullable = true
	if attrs["Null"] == "NO" {
		b.WriteString(" NOT NULL")
		fs.Nullable = false
	}
	if def := attrs["Default"]; def != "" {
		fmt.Fprintf(&b, " DEFAULT %s", renderDefault(def, cfg.DefaultKeywords))
	}
	if cfg.AddUnsignedChecks && isUnsignedNumeric(attrs["Type"], pgType) {
		fmt.Fprintf(&b, " CHECK (%s >= 0)", quoteIdent(name))
	}

	fs.Column = ColumnDef{Name: name, Clause: b.String()}
	fs.Primary = attrs["Key"] == "PRI"
	fs.CustomType = custom
	fs.Passthrough = !known
	fs.OnUpdate = isOnUpdateCurrentTimestamp(attrs["Extra"])
	return fs, true
}
