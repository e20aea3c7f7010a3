package ingest

import (
	"fmt"
	"reflect"
	"testing"
)

func TestBuildSchema(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		columns []string
		rows    []map[string]string
		want    map[string]ColumnType
	}{
		{
			name:    "marks columns numeric, headers textual",
			columns: []string{"roll_no", "name", "DMS", "CN"},
			rows: []map[string]string{
				{"roll_no": "101", "name": "Aarav", "DMS": "88", "CN": "74"},
				{"roll_no": "102", "name": "Diya", "DMS": "79", "CN": "85"},
			},
			want: map[string]ColumnType{
				"roll_no": TypeNumeric,
				"name":    TypeText,
				"DMS":     TypeNumeric,
				"CN":      TypeNumeric,
			},
		},
		{
			name:    "alphanumeric rolls make the roll column text",
			columns: []string{"roll_no", "name", "DMS", "CN"},
			rows: []map[string]string{
				{"roll_no": "A1001", "name": "Aarav", "DMS": "88", "CN": "74"},
				{"roll_no": "A1002", "name": "Diya", "DMS": "79", "CN": "85"},
			},
			want: map[string]ColumnType{
				"roll_no": TypeText,
				"name":    TypeText,
				"DMS":     TypeNumeric,
				"CN":      TypeNumeric,
			},
		},
		{
			name:    "column absent from every row stays text",
			columns: []string{"roll_no", "remarks"},
			rows: []map[string]string{
				{"roll_no": "101"},
			},
			want: map[string]ColumnType{
				"roll_no": TypeNumeric,
				"remarks": TypeText,
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			schema := BuildSchema("first_year_results", tt.columns, tt.rows)

			if schema.Table != "first_year_results" {
				t.Errorf("Table = %q", schema.Table)
			}
			if got := schema.ColumnNames(); !reflect.DeepEqual(got, tt.columns) {
				t.Errorf("ColumnNames() = %v, want header order %v", got, tt.columns)
			}
			for _, def := range schema.Columns {
				if def.Type != tt.want[def.Name] {
					t.Errorf("column %q inferred as %v, want %v", def.Name, def.Type, tt.want[def.Name])
				}
			}
		})
	}
}

func TestBuildSchemaSampleCap(t *testing.T) {
	t.Parallel()

	rows := make([]map[string]string, 0, schemaSampleRows+1)
	for i := 0; i < schemaSampleRows; i++ {
		rows = append(rows, map[string]string{"marks": fmt.Sprintf("%d", i)})
	}
	// Beyond the sample window this value must not influence the verdict.
	rows = append(rows, map[string]string{"marks": "absent"})

	schema := BuildSchema("first_year_results", []string{"marks"}, rows)

	if got := schema.Columns[0].Type; got != TypeNumeric {
		t.Errorf("marks inferred as %v, want TypeNumeric from the first %d rows only", got, schemaSampleRows)
	}
}
