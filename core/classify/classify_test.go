package classify

import (
	"testing"

	"github.com/leofalp/firmscout/core/roster"
)

func newTestClassifier() *Classifier {
	return New(DefaultLexicons())
}

func TestClassify(t *testing.T) {
	c := newTestClassifier()

	tests := []struct {
		name     string
		text     string
		expected roster.Category
	}{
		{
			name:     "empty text falls back to generic",
			text:     "",
			expected: roster.CategoryGenericIT,
		},
		{
			name:     "no signal falls back to generic",
			text:     "we make delicious artisanal sandwiches",
			expected: roster.CategoryGenericIT,
		},
		{
			name:     "finance plus msp",
			text:     "managed services and help desk for hedge fund and private equity clients",
			expected: roster.CategoryFinancialMSP,
		},
		{
			name:     "finance without msp",
			text:     "we advise hedge fund managers",
			expected: roster.CategoryFinancialMSP,
		},
		{
			// MSP hits without finance language still score into Financial
			// MSP as a weak signal and outrank the Generic IT floor.
			name:     "plain msp scores as weak financial",
			text:     "managed services with a 24/7 support help desk for local businesses",
			expected: roster.CategoryFinancialMSP,
		},
		{
			name:     "trading infrastructure",
			text:     "low latency colocation and exchange connectivity",
			expected: roster.CategoryTradingInfra,
		},
		{
			name:     "market data ops",
			text:     "market data entitlements and exchange reporting with vendor management",
			expected: roster.CategoryMarketData,
		},
		{
			name:     "regops",
			text:     "trade surveillance and regulatory reporting for finra members",
			expected: roster.CategoryRegOps,
		},
		{
			name:     "two oms hits qualify",
			text:     "order management system and execution management system integrations",
			expected: roster.CategoryOMSEMS,
		},
		{
			name:     "single oms hit with fx corroboration",
			text:     "fix onboarding for fx desks",
			expected: roster.CategoryOMSEMS,
		},
		{
			name:     "finance plus msp beats stray niche hit",
			text:     "managed services and help desk teams for hedge fund and broker dealer clients with fix onboarding and low latency networks",
			expected: roster.CategoryFinancialMSP,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Classify(tt.text); got != tt.expected {
				t.Errorf("Classify(%q) = %v, want %v", tt.text, got, tt.expected)
			}
		})
	}
}

func TestClassifySingleOMSHitWithoutCorroboration(t *testing.T) {
	c := newTestClassifier()
	// One OMS phrase alone must not reach the OMS/EMS lane. The phrase is
	// chosen so no other lexicon, and no stray "fx" substring, matches.
	got := c.Classify("we resell an order management system to retailers")
	if got == roster.CategoryOMSEMS {
		t.Errorf("single uncorroborated OMS hit classified as %v", got)
	}
}

func TestClassifyCountsEachPhraseOnce(t *testing.T) {
	c := newTestClassifier()
	// Repeating one phrase must not inflate its lexicon's hit count: a
	// single market-data phrase repeated three times still scores 3 and
	// loses to two distinct trading phrases scoring 6.
	got := c.Classify("market data market data market data plus low latency colocation")
	if got != roster.CategoryTradingInfra {
		t.Errorf("Classify() = %v, want %v", got, roster.CategoryTradingInfra)
	}
}

func TestClassifyRepeatedFinanceMSPDominates(t *testing.T) {
	c := newTestClassifier()
	got := c.Classify("hedge fund hedge fund managed services managed services outsourced broker dealer support")
	if got != roster.CategoryFinancialMSP {
		t.Errorf("Classify() = %v, want %v", got, roster.CategoryFinancialMSP)
	}
}

func TestClassifyTieBreak(t *testing.T) {
	c := newTestClassifier()
	// One trading hit and one reg hit score 3 each; the earlier lane in the
	// category order must win.
	got := c.Classify("colocation experts who also offer best execution reviews")
	if got != roster.CategoryTradingInfra {
		t.Errorf("Classify() tie = %v, want %v", got, roster.CategoryTradingInfra)
	}
}

func TestClassifyIsTotal(t *testing.T) {
	c := newTestClassifier()
	valid := make(map[roster.Category]bool, len(roster.Categories))
	for _, cat := range roster.Categories {
		valid[cat] = true
	}
	inputs := []string{"", " ", "xyz", "fix", "fx", "managed", "market data market data"}
	for _, in := range inputs {
		if got := c.Classify(in); !valid[got] {
			t.Errorf("Classify(%q) = %q, not a known category", in, got)
		}
	}
}

func TestFitFor(t *testing.T) {
	for _, cat := range roster.Categories {
		want := roster.FitCore
		if cat == roster.CategoryGenericIT {
			want = roster.FitStretch
		}
		if got := FitFor(cat); got != want {
			t.Errorf("FitFor(%v) = %v, want %v", cat, got, want)
		}
	}
}

func TestClassificationFor(t *testing.T) {
	tests := []struct {
		fit      roster.Fit
		cat      roster.Category
		expected roster.Classification
	}{
		{roster.FitCore, roster.CategoryFinancialMSP, roster.ClassificationTarget},
		{roster.FitCore, roster.CategoryMarketData, roster.ClassificationTarget},
		{roster.FitStretch, roster.CategoryGenericIT, roster.ClassificationPattern},
		{roster.FitStretch, roster.CategoryFinancialMSP, roster.ClassificationPattern},
	}
	for _, tt := range tests {
		if got := ClassificationFor(tt.fit, tt.cat); got != tt.expected {
			t.Errorf("ClassificationFor(%v, %v) = %v, want %v", tt.fit, tt.cat, got, tt.expected)
		}
	}
}

func TestOverrides(t *testing.T) {
	o := DefaultOverrides()

	t.Run("financial msp domains", func(t *testing.T) {
		if !o.ForcesFinancialMSP("eze-castle.com") {
			t.Error("eze-castle.com should force Financial MSP")
		}
		if !o.ForcesFinancialMSP("  EZE-CASTLE.COM ") {
			t.Error("domain matching should be case and space insensitive")
		}
		if o.ForcesFinancialMSP("example.com") {
			t.Error("example.com should not force Financial MSP")
		}
	})

	t.Run("comp names", func(t *testing.T) {
		if !o.ForcesComp("Bloomberg") {
			t.Error("Bloomberg should be a known comp")
		}
		if !o.ForcesComp("CME Group") {
			t.Error("CME Group should be a known comp")
		}
		if o.ForcesComp("Acme") {
			t.Error("Acme should not be a known comp")
		}
	})

	t.Run("from lists", func(t *testing.T) {
		o := OverridesFromLists([]string{"Custom.com"}, nil)
		if !o.ForcesFinancialMSP("custom.com") {
			t.Error("custom domain list not applied")
		}
		if o.ForcesFinancialMSP("eze-castle.com") {
			t.Error("explicit domain list should replace the default")
		}
		if !o.ForcesComp("bloomberg") {
			t.Error("empty name list should keep the default comps")
		}
	})
}
