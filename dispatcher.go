package main

import (
	"fmt"
	"io"
	"log"
)

// parseState is the nesting context the dispatcher is in.
type parseState int

const (
	stateIdle parseState = iota
	stateInStructure
	stateInData
	stateInRow
	stateInRowField
)

func (s parseState) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateInStructure:
		return "table_structure"
	case stateInData:
		return "table_data"
	case stateInRow:
		return "row"
	case stateInRowField:
		return "row field"
	default:
		return fmt.Sprintf("parseState(%d)", int(s))
	}
}

const zeroDateTime = "0000-00-00 00:00:00"

// converter is the per-run context of one dump conversion. It implements
// EventHandler and writes the PostgreSQL script to out as structural
// boundaries close.
type converter struct {
	cfg *ConvertConfig
	out io.Writer

	state parseState

	// schema is non-nil only inside a table_structure element.
	schema *TableSchema
	// nullability outlives schema so table_data elements placed after all
	// structures still know which columns accept NULL.
	nullability map[string]map[string]bool

	batch       rowBatch
	row         *RowBuffer
	rowField    string
	fieldParent parseState

	seq pendingSequence

	tables   int
	rows     int64
	warnings []string
}

func newConverter(cfg *ConvertConfig, out io.Writer) *converter {
	return &converter{
		cfg:         cfg,
		out:         out,
		nullability: make(map[string]map[string]bool),
		row:         newRowBuffer(),
	}
}

func (c *converter) warn(msg string) {
	if msg == "" {
		return
	}
	log.Printf("  WARN: %s", msg)
	c.warnings = append(c.warnings, msg)
}

func (c *converter) OnStart(name string, attrs Attrs) error {
	switch name {
	case "table_structure":
		c.schema = newTableSchema(attrs["name"])
		c.state = stateInStructure
	case "field":
		switch c.state {
		case stateInData, stateInRow:
			c.fieldParent = c.state
			c.rowField = attrs["name"]
			c.row.begin(c.rowField, attrs["xsi:nil"] == "true")
			c.state = stateInRowField
		case stateInStructure:
			c.addSchemaField(attrs)
		}
	case "key":
		if c.schema != nil {
			if kp, ok := parseKeyPart(attrs); ok {
				for _, w := range c.schema.addKeyPart(kp) {
					c.warn(w)
				}
			}
		}
	case "table_data":
		c.batch.reset(attrs["name"], c.cfg.MaxBatchCount)
		c.state = stateInData
	case "row":
		if c.state == stateInData {
			c.row.reset()
			c.state = stateInRow
		}
	case "options":
		if c.schema != nil {
			c.warn(c.seq.capture(c.schema, attrs))
		}
	}
	return nil
}

func (c *converter) OnText(data []byte) error {
	if c.state == stateInRowField {
		c.row.appendText(c.rowField, string(data))
	}
	return nil
}

func (c *converter) OnEnd(name string) error {
	switch name {
	case "field":
		if c.state == stateInRowField {
			if c.row.Value(c.rowField) == zeroDateTime {
				c.row.set(c.rowField, c.cfg.ZeroDateReplacement)
			}
			c.state = c.fieldParent
		}
	case "row":
		if c.state == stateInRow {
			c.state = stateInData
			return c.writeRow()
		}
	case "table_data":
		if c.state != stateIdle && c.state != stateInStructure {
			c.state = stateIdle
			if err := c.batch.close(c.out); err != nil {
				return fmt.Errorf("write %s data: %w", c.batch.table, err)
			}
		}
	case "table_structure":
		if c.schema != nil {
			err := c.writeStructure()
			c.nullability[c.schema.Name] = c.schema.Nullable
			c.schema = nil
			c.state = stateIdle
			return err
		}
	}
	return nil
}

// addSchemaField maps a table_structure field descriptor into the schema.
func (c *converter) addSchemaField(attrs Attrs) {
	fs, ok := buildField(c.schema.Name, attrs, c.cfg)
	if !ok {
		return
	}
	s := c.schema
	s.Fields = append(s.Fields, fs.Column)
	s.Nullable[fs.Column.Name] = fs.Nullable
	if fs.Primary {
		s.PrimaryKey = append(s.PrimaryKey, fs.Column.Name)
	}
	if fs.CustomType != nil {
		s.addCustomType(*fs.CustomType)
	}
	if fs.OnUpdate && c.cfg.ReplicateOnUpdateCurrentTimestamp {
		s.OnUpdateColumns = append(s.OnUpdateColumns, fs.Column.Name)
	}
	if fs.Passthrough {
		target := "passed through unchanged"
		if c.cfg.TypeMapping.UnknownAsText {
			target = "mapped to text"
		}
		c.warn(fmt.Sprintf("%s.%s: unmapped MySQL type %q %s", s.Name, fs.Column.Name, attrs["Type"], target))
	}
	for _, w := range fieldCaveats(s.Name, attrs, c.cfg.ReplicateOnUpdateCurrentTimestamp) {
		c.warn(w)
	}
}

// writeStructure emits the table's DDL block in structure mode, then the
// pending sequence reset in either mode.
func (c *converter) writeStructure() error {
	s := c.schema
	c.tables++
	if c.cfg.ExportStructure {
		log.Printf("  table %s (%d cols, %d indexes, %d types)", s.Name, len(s.Fields), len(s.Indexes), len(s.CustomTypes))
		if _, err := io.WriteString(c.out, generateTableDDL(s)); err != nil {
			return fmt.Errorf("write %s DDL: %w", s.Name, err)
		}
	}
	if stmt, ok := c.seq.take(); ok {
		if _, err := io.WriteString(c.out, stmt); err != nil {
			return fmt.Errorf("write %s sequence reset: %w", s.Name, err)
		}
	}
	return nil
}

// writeRow renders the buffered row into the open INSERT batch.
func (c *converter) writeRow() error {
	if c.row.Len() == 0 {
		return nil
	}
	cols, known := c.nullability[c.batch.table]
	nullable := func(col string) bool {
		if known {
			return cols[col]
		}
		return c.row.IsNil(col)
	}
	if err := c.batch.add(c.out, c.row, nullable); err != nil {
		return fmt.Errorf("write %s row: %w", c.batch.table, err)
	}
	c.rows++
	return nil
}
