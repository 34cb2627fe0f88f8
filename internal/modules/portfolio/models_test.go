package portfolio

import (
	"encoding/json"
	"math"
	"testing"
)

func TestParseAssetClass(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    AssetClass
		wantErr bool
	}{
		{name: "canonical name", input: "Equities", want: Equities},
		{name: "underscored name", input: "Fixed_Income", want: FixedIncome},
		{name: "space normalized", input: "Fixed Income", want: FixedIncome},
		{name: "real estate with space", input: "Real Estate", want: RealEstate},
		{name: "surrounding whitespace", input: "  Cash ", want: Cash},
		{name: "unknown class", input: "Gold", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAssetClass(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %q, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestPortfolio_Total(t *testing.T) {
	p := Portfolio{}
	p[Equities] = 1000
	p[Cash] = 500

	if total := p.Total(); total != 1500 {
		t.Errorf("expected 1500, got %.2f", total)
	}

	if total := New().Total(); total != 0 {
		t.Errorf("expected empty portfolio total 0, got %.2f", total)
	}
}

func TestPortfolio_Validate(t *testing.T) {
	p := Portfolio{}
	p[Equities] = 100
	if err := p.Validate(); err != nil {
		t.Errorf("expected valid portfolio, got %v", err)
	}

	p[Crypto] = -1
	if err := p.Validate(); err == nil {
		t.Error("expected error for negative value")
	}
}

func TestPortfolio_Add(t *testing.T) {
	p := New()
	p[Equities] = 1000

	additions := Portfolio{}
	additions[Equities] = 500
	additions[Cash] = 200

	updated, err := p.Add(additions)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated[Equities] != 1500 || updated[Cash] != 200 {
		t.Errorf("unexpected result: %+v", updated)
	}

	// Caller's portfolio is untouched
	if p[Equities] != 1000 || p[Cash] != 0 {
		t.Errorf("input portfolio was mutated: %+v", p)
	}

	// Subtracting below zero is rejected
	negative := Portfolio{}
	negative[Equities] = -2000
	if _, err := p.Add(negative); err == nil {
		t.Error("expected error when addition would go negative")
	}
}

func TestPortfolio_AddWithAllocation(t *testing.T) {
	updated, err := New().AddWithAllocation(400000, map[string]float64{
		"Equities":     0.7,
		"Fixed_Income": 0.2,
		"Real_Estate":  0.1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated[Equities] != 280000 {
		t.Errorf("expected 280000 equities, got %.2f", updated[Equities])
	}
	if updated[FixedIncome] != 80000 {
		t.Errorf("expected 80000 fixed income, got %.2f", updated[FixedIncome])
	}
	if updated[RealEstate] != 40000 {
		t.Errorf("expected 40000 real estate, got %.2f", updated[RealEstate])
	}
	if updated[Cash] != 0 {
		t.Errorf("expected 0 cash, got %.2f", updated[Cash])
	}

	if _, err := New().AddWithAllocation(1000, map[string]float64{"Gold": 1.0}); err == nil {
		t.Error("expected error for unknown allocation key")
	}
}

func TestPortfolio_JSONRoundTrip(t *testing.T) {
	p := New()
	p[Equities] = 2700000
	p[FixedIncome] = 100000.50

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	// All six keys are present in the encoded object
	var m map[string]float64
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal to map failed: %v", err)
	}
	if len(m) != NumAssetClasses {
		t.Errorf("expected %d keys, got %d", NumAssetClasses, len(m))
	}

	var decoded Portfolio
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if math.Abs(decoded.Total()-p.Total()) > 1e-9 {
		t.Errorf("round trip changed total: %.2f vs %.2f", decoded.Total(), p.Total())
	}
}

func TestPortfolio_UnmarshalJSON(t *testing.T) {
	// Absent keys default to zero
	var p Portfolio
	if err := json.Unmarshal([]byte(`{"Equities": 1000}`), &p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p[Equities] != 1000 || p.Total() != 1000 {
		t.Errorf("unexpected portfolio: %+v", p)
	}

	// Keys with spaces are normalized
	if err := json.Unmarshal([]byte(`{"Fixed Income": 500}`), &p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p[FixedIncome] != 500 {
		t.Errorf("expected normalized key, got %+v", p)
	}

	// Unknown keys are rejected
	if err := json.Unmarshal([]byte(`{"Gold": 42}`), &p); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestPortfolio_Summarize(t *testing.T) {
	p := New()
	p[Equities] = 60000
	p[FixedIncome] = 30000
	p[Cash] = 10000

	s := p.Summarize()
	if s.TotalValue != 100000 {
		t.Errorf("expected total 100000, got %.2f", s.TotalValue)
	}
	if s.AssetCount != 3 {
		t.Errorf("expected 3 funded classes, got %d", s.AssetCount)
	}
	if s.AssetValues != p {
		t.Errorf("expected values %+v, got %+v", p, s.AssetValues)
	}

	want := Portfolio{}
	want[Equities] = 60
	want[FixedIncome] = 30
	want[Cash] = 10
	for i, pct := range s.Percentages {
		if math.Abs(pct-want[i]) > 1e-9 {
			t.Errorf("class %s: expected %.2f%%, got %.2f%%", AssetClass(i), want[i], pct)
		}
	}
}

func TestPortfolio_SummarizeEmpty(t *testing.T) {
	s := New().Summarize()
	if s.TotalValue != 0 {
		t.Errorf("expected zero total, got %.2f", s.TotalValue)
	}
	if s.AssetCount != 0 {
		t.Errorf("expected zero funded classes, got %d", s.AssetCount)
	}
	for i, pct := range s.Percentages {
		if pct != 0 {
			t.Errorf("class %s: expected 0%%, got %.2f%%", AssetClass(i), pct)
		}
	}
}
