package main

// Attrs holds the attributes of one XML element. mysqldump never repeats an
// attribute, so order carries no meaning here.
type Attrs map[string]string

// ColumnDef is one rendered column clause of a CREATE TABLE statement, e.g.
// `"name" varchar(50) NOT NULL DEFAULT 'x'`. It is built once per field.
type ColumnDef struct {
	Name   string
	Clause string
}

// CustomType is a synthesized PostgreSQL type backing a MySQL enum column.
type CustomType struct {
	Name       string
	Definition string // everything after CREATE TYPE
}

// Index accumulates the key-parts of one secondary index.
type Index struct {
	Name    string
	Columns []string // rendered key-parts, e.g. `"a"`, `"b" DESC`
	Unique  bool

	// SkipReason is set when PostgreSQL cannot recreate the index as a plain
	// btree over columns.
	SkipReason string
}

// TableSchema holds the in-progress definition of one table between the
// open and close of its table_structure element.
type TableSchema struct {
	Name        string
	Fields      []ColumnDef
	Nullable    map[string]bool
	PrimaryKey  []string
	CustomTypes []CustomType
	Indexes     []*Index

	// OnUpdateColumns lists columns declared ON UPDATE CURRENT_TIMESTAMP
	// that get a replicating trigger.
	OnUpdateColumns []string

	customTypeIdx map[string]int
	indexByName   map[string]*Index
}

func newTableSchema(name string) *TableSchema {
	return &TableSchema{
		Name:          name,
		Nullable:      make(map[string]bool),
		customTypeIdx: make(map[string]int),
		indexByName:   make(map[string]*Index),
	}
}

// addCustomType registers a custom type. Re-registering a name replaces its
// definition but keeps its original position.
func (s *TableSchema) addCustomType(ct CustomType) {
	if i, ok := s.customTypeIdx[ct.Name]; ok {
		s.CustomTypes[i] = ct
		return
	}
	s.customTypeIdx[ct.Name] = len(s.CustomTypes)
	s.CustomTypes = append(s.CustomTypes, ct)
}

// index returns the named index, creating it on first use.
func (s *TableSchema) index(name string) *Index {
	if idx, ok := s.indexByName[name]; ok {
		return idx
	}
	idx := &Index{Name: name}
	s.indexByName[name] = idx
	s.Indexes = append(s.Indexes, idx)
	return idx
}

// RowBuffer collects the raw field values of one row element in encounter
// order.
type RowBuffer struct {
	columns []string
	values  map[string]string
	nils    map[string]bool
}

func newRowBuffer() *RowBuffer {
	return &RowBuffer{
		values: make(map[string]string),
		nils:   make(map[string]bool),
	}
}

func (r *RowBuffer) reset() {
	r.columns = r.columns[:0]
	clear(r.values)
	clear(r.nils)
}

// begin registers a field; a repeated field name keeps its first position.
func (r *RowBuffer) begin(col string, xsiNil bool) {
	if _, ok := r.values[col]; !ok {
		r.columns = append(r.columns, col)
		r.values[col] = ""
	}
	r.nils[col] = xsiNil
}

// appendText concatenates a character data chunk to a field's value.
func (r *RowBuffer) appendText(col, chunk string) {
	if _, ok := r.values[col]; !ok {
		r.columns = append(r.columns, col)
	}
	r.values[col] += chunk
}

func (r *RowBuffer) set(col, value string) {
	if _, ok := r.values[col]; ok {
		r.values[col] = value
	}
}

func (r *RowBuffer) Columns() []string { return r.columns }

func (r *RowBuffer) Value(col string) string { return r.values[col] }

func (r *RowBuffer) IsNil(col string) bool { return r.nils[col] }

func (r *RowBuffer) Len() int { return len(r.columns) }
