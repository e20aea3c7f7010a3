package ingest

import "testing"

func TestInferColumnType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		samples []string
		want    ColumnType
	}{
		{"all integers", []string{"1", "42", "-7"}, TypeNumeric},
		{"padded integers are not trimmed here", []string{" 10 ", "20"}, TypeText},
		{"single non-integer poisons the column", []string{"1", "2", "3.5"}, TypeText},
		{"plain text", []string{"Aarav", "Diya"}, TypeText},
		{"empty samples are skipped", []string{"", "", "12"}, TypeNumeric},
		{"all empty defaults to text", []string{"", "", ""}, TypeText},
		{"no samples defaults to text", nil, TypeText},
		{"hex is not numeric", []string{"0x1F"}, TypeText},
		{"leading zeros still numeric", []string{"007"}, TypeNumeric},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := InferColumnType(tt.samples); got != tt.want {
				t.Errorf("InferColumnType(%v) = %v, want %v", tt.samples, got, tt.want)
			}
		})
	}
}

func TestInferColumnTypeSampleLimit(t *testing.T) {
	t.Parallel()

	// Non-integer values beyond the sample window must not change the verdict.
	samples := make([]string, typeSampleLimit+1)
	for i := 0; i < typeSampleLimit; i++ {
		samples[i] = "1"
	}
	samples[typeSampleLimit] = "not a number"

	if got := InferColumnType(samples); got != TypeNumeric {
		t.Errorf("InferColumnType beyond sample limit = %v, want %v", got, TypeNumeric)
	}
}

func TestColumnTypeSQLType(t *testing.T) {
	t.Parallel()

	if got := TypeNumeric.SQLType(); got != "BIGINT" {
		t.Errorf("TypeNumeric.SQLType() = %q, want BIGINT", got)
	}
	if got := TypeText.SQLType(); got != "TEXT" {
		t.Errorf("TypeText.SQLType() = %q, want TEXT", got)
	}
}
