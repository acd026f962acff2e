package extract

import "testing"

func TestExtract_InlineRule(t *testing.T) {
	text := "Cesta básica, valores por capital:\nGoiânia (R$ 467,65) subiu no mês."
	cands := Extract(text, "procon", "Cesta Básica", "GO", nil)
	if len(cands) != 1 {
		t.Fatalf("expected 1 candidate, got %d: %+v", len(cands), cands)
	}
	c := cands[0]
	if c.Entity != "Goiânia" {
		t.Errorf("entity = %q, want %q", c.Entity, "Goiânia")
	}
	if c.Location != "GO" {
		t.Errorf("location = %q, want fixed override %q", c.Location, "GO")
	}
	if c.Price != 467.65 {
		t.Errorf("price = %v, want 467.65", c.Price)
	}
	if !c.Inline {
		t.Error("expected inline candidate")
	}
}

func TestExtract_TabularRule(t *testing.T) {
	text := "Capital Valor Variação\nGoiânia 467,65 1,2%\nAnápolis 455,10 0,8%\n"
	cands := Extract(text, "dieese", "Cesta Básica", "", nil)
	if len(cands) != 2 {
		t.Fatalf("expected 2 candidates, got %d: %+v", len(cands), cands)
	}
	// Multi-city source: the matched entity becomes the row location.
	if cands[0].Location != "Goiânia" || cands[1].Location != "Anápolis" {
		t.Errorf("locations = %q, %q", cands[0].Location, cands[1].Location)
	}
	if cands[0].Price != 467.65 || cands[1].Price != 455.10 {
		t.Errorf("prices = %v, %v", cands[0].Price, cands[1].Price)
	}
	if cands[0].Inline || cands[1].Inline {
		t.Error("tabular candidates must not be flagged inline")
	}
}

func TestExtract_ThousandsAndCaseInsensitive(t *testing.T) {
	text := "SÃO PAULO (r$ 1.234,56)"
	cands := Extract(text, "dieese", "Cesta Básica", "", nil)
	if len(cands) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(cands))
	}
	if cands[0].Price != 1234.56 {
		t.Errorf("price = %v, want 1234.56", cands[0].Price)
	}
}

func TestExtract_NoMatches(t *testing.T) {
	// WHAT: a document matching neither rule yields an empty set.
	// WHY: zero candidates is a valid outcome, not a document failure.
	cands := Extract("nada a declarar neste boletim", "procon", "Cesta Básica", "GO", nil)
	if len(cands) != 0 {
		t.Fatalf("expected no candidates, got %d", len(cands))
	}
}

func TestDedupe_InlineSuppressesTabular(t *testing.T) {
	text := "Goiânia (R$ 467,65)\nGoiânia 467,65\nAnápolis 455,10\n"
	cands := Dedupe(Extract(text, "dieese", "Cesta Básica", "", nil))
	if len(cands) != 2 {
		t.Fatalf("expected 2 candidates after dedup, got %d: %+v", len(cands), cands)
	}
	var goiania *Candidate
	for i := range cands {
		if cands[i].Entity == "Goiânia" {
			goiania = &cands[i]
		}
	}
	if goiania == nil {
		t.Fatal("Goiânia candidate missing after dedup")
	}
	if !goiania.Inline {
		t.Error("the surviving Goiânia candidate must be the inline one")
	}
}

func TestDedupe_TabularOnlySurvives(t *testing.T) {
	text := "Goiânia 467,65\nAnápolis (R$ 455,10)\n"
	cands := Dedupe(Extract(text, "dieese", "Cesta Básica", "", nil))
	if len(cands) != 2 {
		t.Fatalf("expected 2 candidates, got %d: %+v", len(cands), cands)
	}
}
