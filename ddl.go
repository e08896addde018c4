package main

import (
	"fmt"
	"strings"
)

// generateTableDDL renders the DDL block of one table in a fixed order:
// DROP TABLE, custom types, CREATE TABLE with its primary key, secondary
// indexes, then on-update triggers. The pending sequence reset, if any, is
// appended by the caller.
func generateTableDDL(s *TableSchema) string {
	var b strings.Builder
	table := quoteIdent(s.Name)

	fmt.Fprintf(&b, "\nDROP TABLE IF EXISTS %s;\n", table)

	for _, ct := range s.CustomTypes {
		fmt.Fprintf(&b, "DROP TYPE IF EXISTS %s;\n", quoteIdent(ct.Name))
		fmt.Fprintf(&b, "CREATE TYPE %s;\n", ct.Definition)
	}

	parts := make([]string, 0, len(s.Fields)+1)
	for _, f := range s.Fields {
		parts = append(parts, f.Clause)
	}
	if len(s.PrimaryKey) > 0 {
		parts = append(parts, fmt.Sprintf("PRIMARY KEY (%s)", quoteIdentList(s.PrimaryKey)))
	}
	fmt.Fprintf(&b, "\nCREATE TABLE %s (\n\t%s\n);\n", table, strings.Join(parts, ",\n\t"))

	for _, idx := range s.Indexes {
		if isPrimaryIndex(idx.Name) || idx.SkipReason != "" || len(idx.Columns) == 0 {
			continue
		}
		idxName := quoteIdent(s.Name + "_" + idx.Name)
		unique := ""
		if idx.Unique {
			unique = "UNIQUE "
		}
		fmt.Fprintf(&b, "DROP INDEX IF EXISTS %s;\n", idxName)
		fmt.Fprintf(&b, "CREATE %sINDEX %s ON %s (%s);\n", unique, idxName, table, strings.Join(idx.Columns, ","))
	}

	for _, col := range s.OnUpdateColumns {
		for _, stmt := range onUpdateTriggerStatements(s.Name, col) {
			b.WriteString(stmt)
			b.WriteString(";\n")
		}
	}

	return b.String()
}
