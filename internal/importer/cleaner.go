package importer

import (
	"math"
	"regexp"
	"strings"

	"steam-import-service/internal/utils"
)

// CleanStats counts what the pre-cleaner removed from an export.
type CleanStats struct {
	Market      int `json:"market"`
	Gifts       int `json:"gifts"`
	Wallet      int `json:"wallet"`
	Conversions int `json:"conversions"`
	Refunds     int `json:"refunds"`
	RefundPairs int `json:"refundPairs"`
}

func (s CleanStats) Total() int {
	return s.Market + s.Gifts + s.Wallet + s.Conversions + s.Refunds + s.RefundPairs
}

// CleanRows strips non-purchase noise from a raw export before bundle
// parsing: market transactions, gifts (with their continuation rows),
// wallet top-ups and credits, currency conversions, empty refund rows,
// and purchase+refund pairs that cancel out.
func CleanRows(rows []map[string]string) ([]map[string]string, CleanStats) {
	cols := resolveColumns(rows)
	var stats CleanStats

	drop := make([]bool, len(rows))

	// Pass 1: self-contained noise. Gift rows also poison their
	// continuation block (bundle rows carry no date of their own).
	inGiftBlock := false
	for i, rec := range rows {
		items := strings.ToLower(strings.TrimSpace(rec[cols.items]))
		typ := strings.ToLower(strings.TrimSpace(rec[cols.typ]))
		date := strings.TrimSpace(rec[cols.date])

		if date != "" {
			inGiftBlock = false
		}

		switch {
		case items == marketLabel:
			drop[i] = true
			stats.Market++
		case strings.Contains(items, "wallet credit") || strings.Contains(items, "purchased wallet funds") || strings.Contains(typ, "wallet"):
			drop[i] = true
			stats.Wallet++
		case strings.Contains(items, "currency conversion") || strings.Contains(typ, "conversion"):
			drop[i] = true
			stats.Conversions++
		case strings.Contains(items, "gift") || strings.Contains(typ, "gift"):
			drop[i] = true
			stats.Gifts++
			if date != "" {
				inGiftBlock = true
			}
		case inGiftBlock && date == "":
			drop[i] = true
			stats.Gifts++
		}
	}

	// Pass 2: refunds. A refund without an amount is dropped alone; a
	// refund with an amount takes its matching purchase with it.
	for i, rec := range rows {
		if drop[i] || !strings.Contains(strings.ToLower(rec[cols.typ]), "refund") {
			continue
		}
		amount, ok := utils.ParseMoney(rec[cols.total])
		if !ok || amount == 0 {
			drop[i] = true
			stats.Refunds++
			continue
		}
		refundName := rec[cols.items]
		refundAmt := math.Abs(amount)
		for j, cand := range rows {
			if j == i || drop[j] {
				continue
			}
			if !strings.Contains(strings.ToLower(cand[cols.typ]), "purchase") {
				continue
			}
			// A pair needs matching names AND matching amounts; a partial
			// refund must never cancel a full-price purchase.
			purchaseAmt, pok := utils.ParseMoney(cand[cols.total])
			if !pok || math.Abs(refundAmt-purchaseAmt) >= 0.01 {
				continue
			}
			if gameNamesMatch(refundName, cand[cols.items]) {
				drop[i] = true
				drop[j] = true
				stats.RefundPairs++
				break
			}
		}
		if !drop[i] {
			drop[i] = true
			stats.Refunds++
		}
	}

	out := make([]map[string]string, 0, len(rows))
	for i, rec := range rows {
		if !drop[i] {
			out = append(out, rec)
		}
	}
	return out, stats
}

var reWordOnly = regexp.MustCompile(`[^\w\s]`)

// gameNamesMatch pairs a refund row with its purchase: substring match
// for names longer than 3 chars, else ≥ 0.7 word overlap.
func gameNamesMatch(refund, purchase string) bool {
	a := strings.TrimSpace(reWordOnly.ReplaceAllString(strings.ReplaceAll(strings.ToLower(refund), "refund", ""), ""))
	b := strings.TrimSpace(reWordOnly.ReplaceAllString(strings.ToLower(purchase), ""))

	if len(a) > 3 && strings.Contains(b, a) {
		return true
	}
	if len(b) > 3 && strings.Contains(a, b) {
		return true
	}

	aw := strings.Fields(a)
	bw := strings.Fields(b)
	if len(aw) == 0 || len(bw) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(aw))
	for _, w := range aw {
		set[w] = struct{}{}
	}
	common := 0
	for _, w := range bw {
		if _, ok := set[w]; ok {
			common++
		}
	}
	den := len(aw)
	if len(bw) > den {
		den = len(bw)
	}
	return float64(common)/float64(den) >= 0.7
}
