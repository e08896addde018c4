package main

import (
	"fmt"
	"io"
	"slices"
	"strings"
)

// rowBatch tracks the open INSERT statement of one table_data element.
type rowBatch struct {
	table   string
	max     int
	columns []string
	count   int
}

func (b *rowBatch) reset(table string, max int) {
	b.table = table
	b.max = max
	b.columns = b.columns[:0]
	b.count = 0
}

// open reports whether an INSERT statement is waiting for its terminator.
func (b *rowBatch) open() bool {
	return b.count > 0
}

// add renders one VALUES tuple. A new statement header is started when none
// is open, when the open one holds max rows, or when the row's field set
// differs from the header's column list. nullable decides, per column,
// whether an empty value renders as NULL.
func (b *rowBatch) add(w io.Writer, row *RowBuffer, nullable func(col string) bool) error {
	cols := row.Columns()

	var sb strings.Builder
	if b.count == 0 || b.count >= b.max || !slices.Equal(b.columns, cols) {
		if b.count > 0 {
			sb.WriteString(";\n")
		}
		b.columns = append(b.columns[:0], cols...)
		b.count = 0
		fmt.Fprintf(&sb, "INSERT INTO %s (%s) VALUES \n", quoteIdent(b.table), quoteIdentList(cols))
	} else {
		sb.WriteString(",\n")
	}

	sb.WriteByte('(')
	for i, col := range cols {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(renderValue(row.Value(col), nullable(col)))
	}
	sb.WriteByte(')')
	b.count++

	_, err := io.WriteString(w, sb.String())
	return err
}

// close terminates the open statement, if any.
func (b *rowBatch) close(w io.Writer) error {
	if b.count == 0 {
		return nil
	}
	b.count = 0
	b.columns = b.columns[:0]
	_, err := io.WriteString(w, ";\n")
	return err
}
