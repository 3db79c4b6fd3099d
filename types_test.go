package sboxeval

import (
	"encoding/json"
	"testing"
)

func TestSBoxMax(t *testing.T) {
	if got := (SBox{}).Max(); got != 0 {
		t.Errorf("empty Max() = %d, want 0", got)
	}
	if got := (SBox{3, 9, 1}).Max(); got != 9 {
		t.Errorf("Max() = %d, want 9", got)
	}
}

func TestParseIndexing(t *testing.T) {
	tests := []struct {
		name    string
		want    Indexing
		wantErr bool
	}{
		{"", RowMajor, false},
		{"row-major", RowMajor, false},
		{"ROW", RowMajor, false},
		{"nibble", NibbleInterleaved, false},
		{" interleaved ", NibbleInterleaved, false},
		{"column-major", RowMajor, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseIndexing(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseIndexing(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseIndexing(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestIndexingText(t *testing.T) {
	data, err := json.Marshal(Params{InputBits: 8, OutputBits: 8, Indexing: NibbleInterleaved})
	if err != nil {
		t.Fatal(err)
	}
	var p Params
	if err := json.Unmarshal(data, &p); err != nil {
		t.Fatal(err)
	}
	if p.Indexing != NibbleInterleaved {
		t.Errorf("round trip indexing = %v", p.Indexing)
	}

	if _, err := Indexing(7).MarshalText(); err == nil {
		t.Error("expected error for unknown indexing")
	}
	if Indexing(7).Valid() {
		t.Error("Indexing(7) must not be valid")
	}
	if got := Indexing(7).String(); got != "indexing(7)" {
		t.Errorf("String() = %q", got)
	}
}

func TestReportAbsentMetrics(t *testing.T) {
	var r Report
	if _, ok := r.DifferentialUniformity(); ok {
		t.Error("zero Report must have no differential uniformity")
	}
	if _, ok := r.LinearCorrelation(); ok {
		t.Error("zero Report must have no correlation")
	}

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"max_ddt_entry", "max_linear_correlation", "max_walsh_magnitude", "nonlinearity"} {
		v, ok := decoded[key]
		if !ok || v != nil {
			t.Errorf("%s = %v (present %t), want null", key, v, ok)
		}
	}

	du, corr := 4, 0.125
	r.MaxDDTEntry, r.MaxLinearCorrelation = &du, &corr
	if got, ok := r.DifferentialUniformity(); !ok || got != 4 {
		t.Errorf("DifferentialUniformity() = %d, %t", got, ok)
	}
	if got, ok := r.LinearCorrelation(); !ok || got != 0.125 {
		t.Errorf("LinearCorrelation() = %f, %t", got, ok)
	}
}
