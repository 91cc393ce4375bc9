package match

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"steam-import-service/internal/prompt"
)

// Policy holds the resolver's acceptance thresholds. The zero value is
// not usable; start from DefaultPolicy.
type Policy struct {
	AdmitThreshold   float64 // minimum score to be considered at all
	AcceptThreshold  float64 // "good match" bar for ambiguous shortlists
	ClearLead        float64 // lead over the runner-up that auto-accepts
	EditionThreshold float64 // admission bar for the edition-match pass
	// AcceptBelowThreshold keeps the original behavior of accepting the
	// top candidate even below AcceptThreshold when the shortlist is
	// ambiguous. Set false to ask the human to pick instead.
	AcceptBelowThreshold bool
}

func DefaultPolicy() Policy {
	return Policy{
		AdmitThreshold:       50,
		AcceptThreshold:      200,
		ClearLead:            100,
		EditionThreshold:     200,
		AcceptBelowThreshold: true,
	}
}

type cachedMatch struct {
	id string
	ok bool
}

// Resolver maps free-text titles from an import source onto library
// entries. It owns a per-instance query cache so a given query string is
// scanned (and a human asked about it) at most once per run. Safe for
// concurrent use.
type Resolver struct {
	mu     sync.Mutex
	cache  map[string]cachedMatch
	ask    prompt.Prompter
	policy Policy
	log    zerolog.Logger
}

func NewResolver(ask prompt.Prompter, policy Policy, log zerolog.Logger) *Resolver {
	return &Resolver{
		cache:  make(map[string]cachedMatch),
		ask:    ask,
		policy: policy,
		log:    log,
	}
}

func (r *Resolver) lookup(query string) (cachedMatch, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.cache[query]
	return m, ok
}

func (r *Resolver) store(query, id string, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache[query] = cachedMatch{id: id, ok: ok}
}

// Resolve finds the library entry the query title refers to. Returns
// ("", false, nil) for a definitive no-match. An error is returned only
// for cancelled prompts or context cancellation; neither is cached.
func (r *Resolver) Resolve(ctx context.Context, query string, candidates []Candidate) (string, bool, error) {
	if m, ok := r.lookup(query); ok {
		return m.id, m.ok, nil
	}
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	clean := strings.ToLower(strings.TrimSpace(query))
	base, suffix := StripEditionSuffix(clean)

	queryVars := NumberVariants(clean)
	var baseVars []string
	if suffix != "" && base != clean {
		baseVars = NumberVariants(base)
	}

	// Exact pass over numeral variants, plus a guarded contains-match for
	// suffix-stripped base names.
	for _, c := range candidates {
		candVars := NumberVariants(strings.ToLower(strings.TrimSpace(c.Name)))
		for _, qv := range append(append([]string{}, queryVars...), baseVars...) {
			for _, cv := range candVars {
				if qv == cv {
					r.log.Debug().Str("query", query).Str("matched", c.Name).Msg("exact variant match")
					r.store(query, c.ID, true)
					return c.ID, true, nil
				}
			}
		}
		for _, bv := range baseVars {
			for _, cv := range candVars {
				if !strings.Contains(cv, bv) && !strings.Contains(bv, cv) {
					continue
				}
				// Short-substring collisions are cheap; demand real word
				// overlap before trusting a contains match.
				if sharedWords(bv, cv) >= 2 {
					r.log.Debug().Str("query", query).Str("matched", c.Name).Msg("base variant contains match")
					r.store(query, c.ID, true)
					return c.ID, true, nil
				}
			}
		}
	}

	// Edition-match pass: the suffix hid the base game; shortlist against
	// the base name and let the human confirm.
	if suffix != "" && base != clean {
		id, ok, err := r.resolveEdition(ctx, query, clean, base, suffix, candidates)
		if err != nil {
			return "", false, err
		}
		if ok {
			r.store(query, id, true)
			return id, true, nil
		}
	}

	return r.resolveGeneral(ctx, query, clean, candidates)
}

func (r *Resolver) resolveEdition(ctx context.Context, query, clean, base, suffix string, candidates []Candidate) (string, bool, error) {
	matches := FindBestMatches(base, candidates, r.policy.EditionThreshold, 3)
	if len(matches) == 0 {
		return "", false, nil
	}
	// An exact base-name hit within the shortlist must outrank everything.
	for i := range matches {
		if base == strings.ToLower(strings.TrimSpace(matches[i].Name)) {
			matches[i].Score += ExactScore
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })

	best := matches[0]
	q := fmt.Sprintf("Imported %q looks like an edition of %q (suffix %q). Same game?",
		clean, best.Name, strings.TrimSpace(suffix))
	yes, err := r.ask.Confirm(ctx, q)
	if errors.Is(err, prompt.ErrUnattended) {
		// Nobody to confirm; leave it to the general pass.
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	if !yes {
		return "", false, nil
	}
	r.log.Info().Str("query", query).Str("matched", best.Name).Str("suffix", suffix).Msg("edition match confirmed")
	return best.ID, true, nil
}

func (r *Resolver) resolveGeneral(ctx context.Context, query, clean string, candidates []Candidate) (string, bool, error) {
	matches := FindBestMatches(clean, candidates, r.policy.AdmitThreshold, 5)
	if len(matches) == 0 {
		r.store(query, "", false)
		return "", false, nil
	}

	best := matches[0]
	accept := false
	switch {
	case len(matches) == 1:
		accept = true
	case best.Score > matches[1].Score+r.policy.ClearLead:
		accept = true
	case best.Score >= r.policy.AcceptThreshold:
		accept = true
	case r.policy.AcceptBelowThreshold:
		accept = true
	}

	if !accept {
		// Ambiguous shortlist under a strict policy: let the human pick.
		options := make([]string, len(matches))
		for i, m := range matches {
			options[i] = fmt.Sprintf("%s (score %.0f)", m.Name, m.Score)
		}
		idx, err := r.ask.ChooseOne(ctx, fmt.Sprintf("Multiple library entries match %q:", query), options)
		if errors.Is(err, prompt.ErrUnattended) {
			r.store(query, "", false)
			return "", false, nil
		}
		if err != nil {
			return "", false, err
		}
		best = matches[idx]
	}

	r.log.Debug().Str("query", query).Str("matched", best.Name).Float64("score", best.Score).Msg("similarity match")
	r.store(query, best.ID, true)
	return best.ID, true, nil
}

func sharedWords(a, b string) int {
	aw := wordSet(a)
	n := 0
	for w := range wordSet(b) {
		if _, ok := aw[w]; ok {
			n++
		}
	}
	return n
}
