// Package importer reconciles a purchase-history export against the
// library: every title is resolved to an app id, bundle costs are split,
// and results are upserted through the library.Store contract.
package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"steam-import-service/internal/bundle"
	"steam-import-service/internal/library"
	"steam-import-service/internal/match"
	"steam-import-service/internal/prompt"
	"steam-import-service/internal/steam"
	"steam-import-service/internal/utils"
)

// Importer drives the per-purchase state machine. Purchases are
// processed strictly in order; a context cancellation aborts the current
// purchase and keeps everything already applied.
type Importer struct {
	store    library.Store
	resolver *match.Resolver
	prices   steam.PriceSource // nil disables the weighted strategy
	ask      prompt.Prompter
	kindOf   func(name string) library.Kind
	method   string
	log      zerolog.Logger
}

// Option configures an Importer.
type Option func(*Importer)

// WithPrices enables the weighted bundle strategy.
func WithPrices(src steam.PriceSource) Option {
	return func(i *Importer) { i.prices = src }
}

// WithKindDetector replaces the name-based Game/DLC heuristic. Resolved
// once at construction; pass a function that always returns KindGame to
// disable DLC handling entirely.
func WithKindDetector(f func(string) library.Kind) Option {
	return func(i *Importer) { i.kindOf = f }
}

// WithMethod sets the acquisition-method label written to the store.
func WithMethod(m string) Option {
	return func(i *Importer) { i.method = m }
}

func New(store library.Store, resolver *match.Resolver, ask prompt.Prompter, log zerolog.Logger, opts ...Option) *Importer {
	i := &Importer{
		store:    store,
		resolver: resolver,
		ask:      ask,
		method:   "Steam",
		log:      log,
		kindOf: func(name string) library.Kind {
			if match.LooksLikeDLC(name) {
				return library.KindDLC
			}
			return library.KindGame
		},
	}
	for _, o := range opts {
		o(i)
	}
	return i
}

func (i *Importer) candidates() ([]match.Candidate, error) {
	entries, err := i.store.ListEntries()
	if err != nil {
		return nil, err
	}
	out := make([]match.Candidate, 0, len(entries))
	for _, e := range entries {
		out = append(out, match.Candidate{ID: e.ID, Name: e.Name})
	}
	return out, nil
}

// Run processes the whole batch. The returned report covers everything
// processed before any context cancellation.
func (i *Importer) Run(ctx context.Context, purchases []PurchaseRecord) (*Report, error) {
	report := &Report{}
	for _, p := range purchases {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Stats.Purchases++

		var err error
		if p.Bundle() {
			err = i.handleBundle(ctx, p, report)
		} else {
			err = i.handleSingle(ctx, p, p.Titles[0], p.Cost, report)
		}
		if err != nil {
			// Context death aborts the batch; anything else was already
			// folded into the report per title.
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return report, err
			}
			i.log.Error().Err(err).Strs("titles", p.Titles).Msg("purchase failed")
		}
	}
	return report, nil
}

// resolveID maps one title to an app id without prompting for ids:
// resolver only. The bool reports whether an id was found.
func (i *Importer) resolveID(ctx context.Context, title string) (string, bool, error) {
	cands, err := i.candidates()
	if err != nil {
		return "", false, err
	}
	return i.resolver.Resolve(ctx, title, cands)
}

// applyCost writes one resolved title into the store.
func (i *Importer) applyCost(title, id string, cost float64, p PurchaseRecord) (Status, error) {
	entry, err := i.store.GetEntry(id)
	if errors.Is(err, library.ErrNotFound) {
		entry = library.Entry{ID: id, Name: title, Kind: i.kindOf(title)}
		err = nil
	}
	if err != nil {
		return "", err
	}
	entry.Cost = cost
	entry.HasCost = true
	entry.Date = p.Date
	entry.Method = i.method
	if entry.Kind == "" {
		entry.Kind = i.kindOf(title)
	}
	status := StatusUpdated
	if entry.Name == "" {
		entry.Name = title
	}
	if err := i.store.UpsertEntry(entry); err != nil {
		return "", err
	}
	return status, nil
}

// handleSingle resolves one title, falling back to a manual app-id
// prompt when the library has no match.
func (i *Importer) handleSingle(ctx context.Context, p PurchaseRecord, title string, cost float64, report *Report) error {
	id, ok, err := i.resolveID(ctx, title)
	if err != nil {
		return i.promptOutcome(err, title, report)
	}
	if ok {
		status, err := i.applyCost(title, id, cost, p)
		if err != nil {
			return err
		}
		report.add(TitleResult{Title: title, AppID: id, Cost: cost, Status: status})
		return nil
	}

	// Unmatched add-on content: offer to fold the cost into a base game.
	if i.kindOf(title) == library.KindDLC {
		done, err := i.offerCostMerge(ctx, p, title, cost, report)
		if err != nil || done {
			return err
		}
	}

	ids, err := i.ask.InputAppIDs(ctx, fmt.Sprintf("Game not found in library: %q. Enter the app id(s) for it", title))
	if err != nil {
		return i.promptOutcome(err, title, report)
	}
	if len(ids) == 0 {
		report.add(TitleResult{Title: title, Status: StatusSkipped})
		return nil
	}

	// Several ids for one line item: the cost is split evenly.
	per := cost / float64(len(ids))
	for _, id := range ids {
		_, getErr := i.store.GetEntry(id)
		status := StatusCreated
		if getErr == nil {
			status = StatusUpdated
		}
		if _, err := i.applyCost(title, id, per, p); err != nil {
			return err
		}
		report.add(TitleResult{Title: title, AppID: id, Cost: per, Status: status})
	}
	return nil
}

// offerCostMerge asks whether a DLC-looking title's cost belongs to a
// base game already in the library. done=true when the title was fully
// handled (merged or the human cancelled).
func (i *Importer) offerCostMerge(ctx context.Context, p PurchaseRecord, title string, cost float64, report *Report) (bool, error) {
	yes, err := i.ask.Confirm(ctx, fmt.Sprintf("%q looks like add-on content. Add its cost to a base game?", title))
	if errors.Is(err, prompt.ErrUnattended) {
		return false, nil // headless: fall through to the app-id path
	}
	if err != nil {
		return true, i.promptOutcome(err, title, report)
	}
	if !yes {
		return false, nil
	}

	entries, err := i.store.ListEntries()
	if err != nil {
		return true, err
	}
	var bases []library.Entry
	var names []string
	for _, e := range entries {
		if e.Kind == library.KindGame {
			bases = append(bases, e)
			names = append(names, e.Name)
		}
	}
	if len(bases) == 0 {
		return false, nil
	}
	idx, err := i.ask.ChooseOne(ctx, fmt.Sprintf("Select the base game for %q:", title), names)
	if err != nil {
		return true, i.promptOutcome(err, title, report)
	}
	base := bases[idx]
	base.Cost += cost
	base.HasCost = true
	if err := i.store.UpsertEntry(base); err != nil {
		return true, err
	}
	report.add(TitleResult{Title: title, AppID: base.ID, Cost: cost, Status: StatusMerged,
		Note: "cost added to " + base.Name})
	i.log.Info().Str("title", title).Str("base", base.Name).Float64("cost", cost).Msg("dlc cost merged")
	return true, nil
}

// Bundle strategies, in the order offered to the human.
var bundleModes = []string{
	"Equal split",
	"Weighted by store price",
	"Enter individual prices",
	"Base game + DLC (combine cost)",
}

func (i *Importer) handleBundle(ctx context.Context, p PurchaseRecord, report *Report) error {
	q := fmt.Sprintf("Bundle detected: %d titles for %.2f (%s). How should the cost be split?",
		len(p.Titles), p.Cost, strings.Join(firstN(p.Titles, 3), ", "))
	mode, err := i.ask.ChooseOne(ctx, q, bundleModes)
	if err != nil {
		return i.promptOutcomeAll(err, p.Titles, report)
	}

	switch mode {
	case 0:
		return i.applySplit(ctx, p, bundle.EqualSplit(p.Titles, p.Cost), nil, report)
	case 1:
		return i.weightedBundle(ctx, p, report)
	case 2:
		return i.manualBundle(ctx, p, report)
	case 3:
		return i.baseGameBundle(ctx, p, report)
	}
	return nil
}

// applySplit writes one allocation map. knownIDs carries ids already
// resolved by a previous step (weighted split) to avoid double prompts.
// Both maps are title-keyed, so titles within one purchase are assumed
// distinct.
func (i *Importer) applySplit(ctx context.Context, p PurchaseRecord, parts map[string]float64, knownIDs map[string]string, report *Report) error {
	for _, title := range p.Titles {
		cost := parts[title]
		if id, ok := knownIDs[title]; ok {
			status, err := i.applyCost(title, id, cost, p)
			if err != nil {
				return err
			}
			report.add(TitleResult{Title: title, AppID: id, Cost: cost, Status: status})
			continue
		}
		if err := i.handleSingle(ctx, p, title, cost, report); err != nil {
			return err
		}
	}
	return nil
}

// weightedBundle needs an id and a store price for every title; any gap
// abandons the strategy and offers the equal-split fallback.
func (i *Importer) weightedBundle(ctx context.Context, p PurchaseRecord, report *Report) error {
	ids, reason := i.resolveBundleIDs(ctx, p.Titles)
	var parts map[string]float64
	if reason == "" && i.prices == nil {
		reason = "no pricing source configured"
	}
	if reason == "" {
		appIDs := make([]string, 0, len(p.Titles))
		for _, t := range p.Titles {
			appIDs = append(appIDs, ids[t])
		}
		prices, total, err := steam.BundlePrices(ctx, i.prices, appIDs)
		switch {
		case err != nil:
			reason = "price lookup failed: " + err.Error()
		case total <= 0:
			reason = "store prices sum to zero"
		default:
			byTitle := make(map[string]float64, len(p.Titles))
			for _, t := range p.Titles {
				byTitle[t] = prices[ids[t]]
			}
			parts, err = bundle.WeightedSplit(p.Titles, p.Cost, byTitle)
			if err != nil {
				reason = err.Error()
			}
		}
	}

	if reason != "" {
		i.log.Warn().Str("reason", reason).Strs("titles", p.Titles).Msg("weighted split unavailable")
		yes, err := i.ask.Confirm(ctx, "Weighted split unavailable ("+reason+"). Fall back to an equal split?")
		if err != nil {
			return i.promptOutcomeAll(err, p.Titles, report)
		}
		if !yes {
			for _, t := range p.Titles {
				report.add(TitleResult{Title: t, Status: StatusCancelled, Note: reason})
			}
			return nil
		}
		return i.applySplit(ctx, p, bundle.EqualSplit(p.Titles, p.Cost), ids, report)
	}
	return i.applySplit(ctx, p, parts, ids, report)
}

// resolveBundleIDs resolves every bundle title, prompting for ids where
// the resolver finds nothing. reason != "" means the set is incomplete.
func (i *Importer) resolveBundleIDs(ctx context.Context, titles []string) (map[string]string, string) {
	ids := make(map[string]string, len(titles))
	for _, t := range titles {
		id, ok, err := i.resolveID(ctx, t)
		if err != nil {
			return ids, "resolution aborted for " + t
		}
		if !ok {
			entered, err := i.ask.InputAppIDs(ctx, fmt.Sprintf("Game not found in library: %q. Enter its app id", t))
			if err != nil || len(entered) == 0 {
				return ids, "no app id for " + t
			}
			// Weighted math needs exactly one id per title.
			id = entered[0]
		}
		ids[t] = id
	}
	return ids, ""
}

func (i *Importer) manualBundle(ctx context.Context, p PurchaseRecord, report *Report) error {
	parts := make(map[string]float64, len(p.Titles))
	for _, t := range p.Titles {
		text, err := i.ask.InputText(ctx, fmt.Sprintf("Price paid for %q", t))
		if err != nil {
			return i.promptOutcomeAll(err, p.Titles, report)
		}
		v, ok := parseNonNegative(text)
		if !ok {
			report.add(TitleResult{Title: t, Status: StatusCancelled, Note: "invalid amount: " + text})
			return nil
		}
		parts[t] = v
	}

	diff, ok, err := bundle.CheckManualSplit(parts, p.Cost)
	if err != nil {
		return err
	}
	if !ok {
		yes, cErr := i.ask.Confirm(ctx, fmt.Sprintf("Entered prices differ from the bundle total by %.2f. Proceed anyway?", diff))
		if cErr != nil {
			return i.promptOutcomeAll(cErr, p.Titles, report)
		}
		if !yes {
			for _, t := range p.Titles {
				report.add(TitleResult{Title: t, Status: StatusCancelled, Note: "manual split rejected"})
			}
			return nil
		}
	}
	return i.applySplit(ctx, p, parts, nil, report)
}

// baseGameBundle attributes the whole cost to one designated base game;
// every other title becomes a zero-cost DLC entry parented to it.
func (i *Importer) baseGameBundle(ctx context.Context, p PurchaseRecord, report *Report) error {
	idx, err := i.ask.ChooseOne(ctx, "Select the base game for this bundle:", p.Titles)
	if err != nil {
		return i.promptOutcomeAll(err, p.Titles, report)
	}
	baseTitle := p.Titles[idx]

	baseID, ok, err := i.resolveID(ctx, baseTitle)
	if err != nil {
		return i.promptOutcomeAll(err, p.Titles, report)
	}
	if !ok {
		entered, err := i.ask.InputAppIDs(ctx, fmt.Sprintf("Base game %q not found in library. Enter its app id", baseTitle))
		if err != nil {
			return i.promptOutcomeAll(err, p.Titles, report)
		}
		if len(entered) == 0 {
			for _, t := range p.Titles {
				report.add(TitleResult{Title: t, Status: StatusSkipped, Note: "no base game id"})
			}
			return nil
		}
		baseID = entered[0]
	}

	base, err := i.store.GetEntry(baseID)
	if errors.Is(err, library.ErrNotFound) {
		base = library.Entry{ID: baseID, Name: baseTitle, Kind: library.KindGame}
		err = nil
	}
	if err != nil {
		return err
	}
	base.Cost += p.Cost
	base.HasCost = true
	base.Date = p.Date
	base.Method = i.method
	if err := i.store.UpsertEntry(base); err != nil {
		return err
	}
	report.add(TitleResult{Title: baseTitle, AppID: baseID, Cost: p.Cost, Status: StatusUpdated})

	for _, t := range p.Titles {
		if t == baseTitle {
			continue
		}
		id, ok, err := i.resolveID(ctx, t)
		if err != nil {
			return i.promptOutcomeAll(err, remaining(p.Titles, t, baseTitle), report)
		}
		if ok && id == baseID {
			// Fuzzy matching collapsed the add-on onto the base game
			// itself; it needs its own id.
			ok = false
		}
		if !ok {
			entered, err := i.ask.InputAppIDs(ctx, fmt.Sprintf("DLC %q not found in library. Enter its app id", t))
			if err != nil || len(entered) == 0 {
				report.add(TitleResult{Title: t, Status: StatusSkipped, Note: "no app id for dlc"})
				continue
			}
			id = entered[0]
		}
		child, err := i.store.GetEntry(id)
		if errors.Is(err, library.ErrNotFound) {
			child = library.Entry{ID: id, Name: t}
			err = nil
		}
		if err != nil {
			return err
		}
		child.Kind = library.KindDLC
		child.Cost = 0
		child.HasCost = true
		child.Date = p.Date
		child.Method = i.method
		if err := i.store.UpsertEntry(child); err != nil {
			return err
		}
		if err := i.store.SetParent(id, baseID); err != nil {
			return err
		}
		report.add(TitleResult{Title: t, AppID: id, Status: StatusMerged, Note: "dlc of " + baseTitle})
	}
	return nil
}

// promptOutcome converts a prompt error into a report entry for one
// title. Context errors pass through and abort the batch.
func (i *Importer) promptOutcome(err error, title string, report *Report) error {
	switch {
	case errors.Is(err, prompt.ErrCancelled):
		report.add(TitleResult{Title: title, Status: StatusCancelled})
		return nil
	case errors.Is(err, prompt.ErrUnattended):
		report.add(TitleResult{Title: title, Status: StatusNeedsReview})
		return nil
	default:
		return err
	}
}

func (i *Importer) promptOutcomeAll(err error, titles []string, report *Report) error {
	for _, t := range titles {
		if e := i.promptOutcome(err, t, report); e != nil {
			return e
		}
	}
	return nil
}

// RefreshPlaytime syncs names and hours from the account's owned games.
// Returns how many entries were written.
func (i *Importer) RefreshPlaytime(ctx context.Context, games []steam.OwnedGame) (int, error) {
	n := 0
	for _, g := range games {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		entry, err := i.store.GetEntry(g.AppID)
		if errors.Is(err, library.ErrNotFound) {
			entry = library.Entry{ID: g.AppID, Name: g.Name, Kind: i.kindOf(g.Name)}
			err = nil
		}
		if err != nil {
			return n, err
		}
		entry.Hours = g.Hours
		if entry.Name == "" {
			entry.Name = g.Name
		}
		if err := i.store.UpsertEntry(entry); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

func parseNonNegative(s string) (float64, bool) {
	v, ok := utils.ParseMoney(s)
	return v, ok && v >= 0
}

func firstN(s []string, n int) []string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func remaining(all []string, from, skip string) []string {
	var out []string
	seen := false
	for _, t := range all {
		if t == from {
			seen = true
		}
		if seen && t != skip {
			out = append(out, t)
		}
	}
	return out
}
