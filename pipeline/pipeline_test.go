package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cestalab/cesta/store"
)

func testRunner(t *testing.T, cfg Config) (*Runner, *store.Store) {
	t.Helper()
	st := store.New(store.OpenMemory(t))
	return New(cfg, st, nil), st
}

func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun_EndToEnd(t *testing.T) {
	// WHAT: a batch of two documents, one yielding 3 valid rows and one
	// unreadable, persists exactly 3 rows and reports 1 skipped document.
	dir := t.TempDir()
	writeDoc(t, dir, "cesta_202303.txt",
		"Goiânia (R$ 467,65)\nAnápolis 455,10\nRio Verde 470,00\n")
	// A .pdf that is not a PDF: extraction fails, batch continues.
	writeDoc(t, dir, "cesta_202304.pdf", "not a pdf at all")

	r, st := testRunner(t, Config{Sources: []SourceConfig{
		{Name: "dieese", Dir: dir},
	}})

	report, err := r.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if report.Documents != 1 {
		t.Errorf("documents = %d, want 1", report.Documents)
	}
	if report.Persisted != 3 {
		t.Errorf("persisted = %d, want 3", report.Persisted)
	}
	if len(report.Skipped) != 1 || !strings.HasSuffix(report.Skipped[0].Path, "cesta_202304.pdf") {
		t.Errorf("skipped = %+v, want the unreadable pdf", report.Skipped)
	}

	rows, err := st.ListPrices(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 persisted rows, got %d", len(rows))
	}
	want := time.Date(2023, time.March, 1, 0, 0, 0, 0, time.UTC)
	for _, row := range rows {
		if !row.Date.Equal(want) {
			t.Errorf("row period = %v, want %v (from filename)", row.Date, want)
		}
		if row.Source != "dieese" {
			t.Errorf("row source = %q", row.Source)
		}
	}
}

func TestRun_FixedLocationAndFilters(t *testing.T) {
	dir := t.TempDir()
	// Inline Goiânia suppresses its tabular duplicate; the 90000,00 row is
	// a digit-concatenation artifact outside the median band.
	writeDoc(t, dir, "procon_202301.txt",
		"Goiânia (R$ 467,65)\nGoiânia 467,65\nAnápolis 455,10\nTrindade 90000,00\n")

	r, st := testRunner(t, Config{Sources: []SourceConfig{
		{Name: "procon", Dir: dir, Location: "GO"},
	}})

	report, err := r.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if report.Candidates != 4 {
		t.Errorf("raw candidates = %d, want 4", report.Candidates)
	}
	if report.Persisted != 2 {
		t.Errorf("persisted = %d, want 2 after dedup and outlier filter", report.Persisted)
	}

	rows, err := st.ListPrices(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	for _, row := range rows {
		if row.Location != "GO" {
			t.Errorf("fixed-region source must persist location GO, got %q", row.Location)
		}
	}
}

func TestRun_MatchFilterAndUndated(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "dieese_sem_data.txt", "Goiânia (R$ 467,65)\n")
	writeDoc(t, dir, "outro_202303.txt", "Goiânia (R$ 999,99)\n")

	r, st := testRunner(t, Config{Sources: []SourceConfig{
		{Name: "dieese", Dir: dir, Match: "dieese"},
	}})

	report, err := r.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if report.Documents != 1 || report.Persisted != 1 {
		t.Fatalf("report = %+v, want only the matching document", report)
	}

	rows, err := st.ListPrices(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || !rows[0].Date.IsZero() {
		t.Fatalf("expected one undated row, got %+v", rows)
	}
	if rows[0].Price != 467.65 {
		t.Errorf("price = %v", rows[0].Price)
	}
}

func TestRun_MissingSourceDir(t *testing.T) {
	// An unavailable source degrades to zero documents, not a run failure.
	r, _ := testRunner(t, Config{Sources: []SourceConfig{
		{Name: "dieese", Dir: filepath.Join(t.TempDir(), "nao_existe")},
	}})

	report, err := r.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if report.Documents != 0 || len(report.Skipped) != 1 {
		t.Fatalf("report = %+v", report)
	}
}

func TestRunWage(t *testing.T) {
	page := `<table>
<tr class="subtitulo"><td colspan="3"><a name="2023">2023</a></td></tr>
<tr><td>Março</td><td>R$ 1.320,00</td><td>R$ 3.200,00</td></tr>
</table>`
	r, st := testRunner(t, Config{})

	n, err := r.RunWage(context.Background(), strings.NewReader(page))
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("rows = %d, want 1", n)
	}

	wages, err := st.ListWages(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(wages) != 1 || wages[0].Nominal != 1320.00 {
		t.Fatalf("wages = %+v", wages)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cesta.yaml")
	os.WriteFile(path, []byte(`
db_path: /tmp/prices.db
sources:
  - name: procon
    dir: raw/relatorios_procon
    location: GO
  - name: dieese
    dir: raw
    match: dieese
`), 0644)

	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DBPath != "/tmp/prices.db" {
		t.Errorf("db_path = %q", cfg.DBPath)
	}
	if cfg.Product != "Cesta Básica" {
		t.Errorf("product default not applied: %q", cfg.Product)
	}
	if len(cfg.Sources) != 2 || cfg.Sources[1].Match != "dieese" {
		t.Errorf("sources = %+v", cfg.Sources)
	}
}
