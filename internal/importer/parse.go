package importer

import (
	"regexp"
	"strings"

	"steam-import-service/internal/utils"
)

// columns holds the resolved header names of a purchase export.
type columns struct {
	date, items, typ, total string
}

var reHeaderNoise = regexp.MustCompile(`[^\p{L}\p{N}]+`)

func normHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = reHeaderNoise.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

// resolveColumn finds the actual key in a record for one of the wanted
// names ("a|b|c" alternatives, normalized contains-match fallback).
func resolveColumn(rec map[string]string, want string) string {
	alts := strings.Split(want, "|")
	for i := range alts {
		alts[i] = strings.TrimSpace(alts[i])
	}
	for _, a := range alts {
		if _, ok := rec[a]; ok {
			return a
		}
	}
	var nAlts []string
	for _, a := range alts {
		nAlts = append(nAlts, normHeader(a))
	}
	bestKey, bestScore := "", 0
	for k := range rec {
		nk := normHeader(k)
		for _, n := range nAlts {
			if nk == n {
				return k
			}
			if strings.Contains(nk, n) || strings.Contains(n, nk) {
				if len(n) > bestScore {
					bestScore, bestKey = len(n), k
				}
			}
		}
	}
	return bestKey
}

func resolveColumns(rows []map[string]string) columns {
	if len(rows) == 0 {
		return columns{}
	}
	rec := rows[0]
	return columns{
		date:  resolveColumn(rec, "Date|Purchase Date"),
		items: resolveColumn(rec, "Items|Item|Game|Game Name"),
		typ:   resolveColumn(rec, "Type|Purchase Type"),
		total: resolveColumn(rec, "Total|Total Spent|Cost|Price"),
	}
}

// marketLabel rows carry community-market noise, never game purchases.
const marketLabel = "steam community market"

// ParsePurchases folds export rows into purchase records. A row with a
// date and a positive cost opens a new purchase; following rows with
// neither belong to it as bundle titles.
func ParsePurchases(rows []map[string]string) []PurchaseRecord {
	cols := resolveColumns(rows)

	var out []PurchaseRecord
	var current *PurchaseRecord

	for _, rec := range rows {
		name := strings.TrimSpace(rec[cols.items])
		if name == "" || strings.EqualFold(name, marketLabel) {
			continue
		}
		date := strings.TrimSpace(rec[cols.date])
		cost, _ := utils.ParseMoney(rec[cols.total])

		switch {
		case date != "" && cost > 0:
			if current != nil {
				out = append(out, *current)
			}
			method := strings.TrimSpace(rec[cols.typ])
			if method == "" {
				method = "Purchase"
			}
			current = &PurchaseRecord{
				Date:   date,
				Titles: []string{name},
				Cost:   cost,
				Method: method,
			}
		case current != nil && date == "" && cost <= 0:
			current.Titles = append(current.Titles, name)
		}
	}
	if current != nil {
		out = append(out, *current)
	}
	return out
}
