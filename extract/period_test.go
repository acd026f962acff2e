package extract

import (
	"testing"
	"time"
)

func TestResolvePeriod(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month time.Month
	}{
		{"relatorio_202303", 2023, time.March},
		{"2023-03-report", 2023, time.March},
		{"cesta201912", 2019, time.December},
		{"analiseCestaBasica202101", 2021, time.January},
	}
	for _, tt := range tests {
		got, ok := ResolvePeriod(tt.name)
		if !ok {
			t.Errorf("ResolvePeriod(%q): expected a period", tt.name)
			continue
		}
		want := time.Date(tt.year, tt.month, 1, 0, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Errorf("ResolvePeriod(%q) = %v, want %v", tt.name, got, want)
		}
	}
}

func TestResolvePeriod_Absent(t *testing.T) {
	// WHAT: names without a YYYYMM pattern resolve to "no date", not an error.
	// WHY: rows from undated documents are persisted with a NULL period.
	for _, name := range []string{"sem_data", "relatorio", ""} {
		if _, ok := ResolvePeriod(name); ok {
			t.Errorf("ResolvePeriod(%q): expected no period", name)
		}
	}
}

func TestResolvePeriod_InvalidMonthSkipped(t *testing.T) {
	// A 6-digit run whose month part is out of range must not produce a
	// bogus period; scanning continues to the next match.
	if _, ok := ResolvePeriod("doc_202399"); ok {
		t.Fatal("expected no period for month 99")
	}
	got, ok := ResolvePeriod("doc_202399_202304")
	if !ok {
		t.Fatal("expected the later valid pattern to resolve")
	}
	want := time.Date(2023, time.April, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
