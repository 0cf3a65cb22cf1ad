package classify

import (
	"strings"

	"github.com/leofalp/firmscout/core/roster"
)

// Classifier assigns exactly one category to a piece of page text by
// counting lexicon hits and scoring them with per-lane weights.
type Classifier struct {
	lex Lexicons
}

// New constructs a Classifier over the given lexicons.
func New(lex Lexicons) *Classifier {
	return &Classifier{lex: lex}
}

// Classify maps text to one of the fixed categories. It is pure and total:
// every input, including the empty string, yields exactly one category.
//
// Hit counts per lexicon feed a score map. Finance and MSP signals together
// form the classic financial-MSP pattern and score highest; finance alone is
// a medium signal, MSP alone a weak one. The niche lanes (trading
// infrastructure, market data, OMS/EMS, reg-ops) each score triple their
// hits, with OMS/EMS requiring either two hits or one hit plus corroborating
// trading, market-data, or FX language. Generic IT only applies to a plain
// MSP with no niche signal at all. Ties resolve to the earlier category in
// [roster.Categories]; an all-zero score falls back to Generic IT.
func (c *Classifier) Classify(text string) roster.Category {
	t := strings.ToLower(text)

	financeHits := countHits(t, c.lex.Finance)
	mspHits := countHits(t, c.lex.MSP)
	tradingHits := countHits(t, c.lex.TradingInfra)
	mdHits := countHits(t, c.lex.MarketData)
	omsHits := countHits(t, c.lex.OMS)
	regHits := countHits(t, c.lex.RegOps)

	score := map[roster.Category]int{}

	switch {
	case financeHits > 0 && mspHits > 0:
		score[roster.CategoryFinancialMSP] = financeHits*3 + mspHits*2
	case financeHits > 0:
		score[roster.CategoryFinancialMSP] = financeHits * 2
	case mspHits > 0:
		// MSP with no finance language is a weak signal; it may still lose
		// to Generic IT below.
		score[roster.CategoryFinancialMSP] = mspHits
	}

	score[roster.CategoryTradingInfra] = tradingHits * 3
	score[roster.CategoryMarketData] = mdHits * 3

	if omsHits >= 2 {
		score[roster.CategoryOMSEMS] = omsHits * 3
	} else if omsHits == 1 && (tradingHits > 0 || mdHits > 0 || strings.Contains(t, "fx")) {
		score[roster.CategoryOMSEMS] = 3
	}

	score[roster.CategoryRegOps] = regHits * 3

	if mspHits > 0 && financeHits == 0 && tradingHits == 0 && mdHits == 0 && omsHits == 0 && regHits == 0 {
		score[roster.CategoryGenericIT] = 1
	}

	// Highest score wins; the scan order of roster.Categories breaks ties.
	best := roster.Categories[0]
	for _, cat := range roster.Categories[1:] {
		if score[cat] > score[best] {
			best = cat
		}
	}
	if score[best] == 0 {
		best = roster.CategoryGenericIT
	}

	// Strong finance+MSP language must not be displaced by an incidental
	// niche hit scoring the same or less.
	if financeHits > 0 && mspHits > 0 && score[roster.CategoryFinancialMSP] >= score[best] {
		best = roster.CategoryFinancialMSP
	}

	return best
}

// countHits counts how many phrases occur in text, each at most once.
func countHits(text string, phrases []string) int {
	n := 0
	for _, p := range phrases {
		if strings.Contains(text, p) {
			n++
		}
	}
	return n
}
