package main

import (
	"fmt"
	"strconv"
)

// pendingSequence holds a sequence reset captured from an options element
// until the owning table's DDL has been written.
type pendingSequence struct {
	stmt string
	set  bool
}

// sequenceResetStatement aligns the serial sequence of table.column with the
// dump's recorded auto-increment watermark.
func sequenceResetStatement(table, column string, value uint64) string {
	seqName := quoteIdent(table + "_" + column + "_seq")
	return fmt.Sprintf("SELECT setval(%s, %d, true);\n", quoteLiteral(seqName), value)
}

// capture records the reset for an options element. It returns a warning
// when the element carries an auto-increment value that cannot be applied.
func (p *pendingSequence) capture(s *TableSchema, attrs Attrs) string {
	raw, ok := attrs["Auto_increment"]
	if !ok {
		return ""
	}
	table := attrs["Name"]
	if table == "" {
		table = s.Name
	}
	if len(s.PrimaryKey) == 0 {
		return fmt.Sprintf("table %s has Auto_increment=%s but no primary key; sequence reset skipped", table, raw)
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return fmt.Sprintf("table %s: invalid Auto_increment value %q; sequence reset skipped", table, raw)
	}
	p.stmt = sequenceResetStatement(table, s.PrimaryKey[0], value)
	p.set = true
	return ""
}

// take returns the pending statement and clears it, so it can be written at
// most once.
func (p *pendingSequence) take() (string, bool) {
	if !p.set {
		return "", false
	}
	stmt := p.stmt
	p.stmt, p.set = "", false
	return stmt, true
}
