package ingest

// schemaSampleRows bounds how many rows the materializer hands to type
// inference on first upload.
const schemaSampleRows = 200

// ColumnDef is one column of a materialized result table.
type ColumnDef struct {
	Name string
	Type ColumnType
}

// TableSchema describes the shape of a per-year result table, excluding the
// surrogate id column. Once a table exists its schema is immutable until the
// table is dropped; later uploads insert under this shape regardless of
// their own column set.
type TableSchema struct {
	Table   string
	Columns []ColumnDef
}

// BuildSchema infers a schema descriptor for a first upload: one ColumnDef
// per normalized column, in header order, typed from up to schemaSampleRows
// sample rows.
func BuildSchema(table string, columns []string, rows []map[string]string) TableSchema {
	sample := rows
	if len(sample) > schemaSampleRows {
		sample = sample[:schemaSampleRows]
	}

	defs := make([]ColumnDef, 0, len(columns))
	for _, c := range columns {
		values := make([]string, 0, len(sample))
		for _, r := range sample {
			values = append(values, r[c])
		}
		defs = append(defs, ColumnDef{Name: c, Type: InferColumnType(values)})
	}
	return TableSchema{Table: table, Columns: defs}
}

// ColumnNames returns the column names in table order.
func (s TableSchema) ColumnNames() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}
