package importer

// PurchaseRecord is one purchase from the export: one title, or several
// sharing a single aggregate cost (a bundle).
type PurchaseRecord struct {
	Date   string   `json:"date"`
	Titles []string `json:"titles"`
	Cost   float64  `json:"cost"`
	Method string   `json:"method"`
}

// Bundle reports whether the record covers more than one title.
func (p PurchaseRecord) Bundle() bool { return len(p.Titles) > 1 }

type Status string

const (
	StatusUpdated     Status = "updated"      // matched an existing entry
	StatusCreated     Status = "created"      // new entry from a manual app id
	StatusMerged      Status = "merged"       // cost folded into a base game
	StatusSkipped     Status = "skipped"      // human chose to skip
	StatusCancelled   Status = "cancelled"    // human cancelled; no mutation
	StatusNeedsReview Status = "needs_review" // unattended run, human required
)

// TitleResult is the per-title outcome of one purchase.
type TitleResult struct {
	Title  string  `json:"title"`
	AppID  string  `json:"appId,omitempty"`
	Cost   float64 `json:"cost,omitempty"`
	Status Status  `json:"status"`
	Note   string  `json:"note,omitempty"`
}

type Stats struct {
	Purchases   int `json:"purchases"`
	Updated     int `json:"updated"`
	Created     int `json:"created"`
	Merged      int `json:"merged"`
	Skipped     int `json:"skipped"`
	Cancelled   int `json:"cancelled"`
	NeedsReview int `json:"needsReview"`
}

// Report is the outcome of one import batch.
type Report struct {
	Results []TitleResult `json:"results"`
	Stats   Stats         `json:"stats"`
	Cleaned CleanStats    `json:"cleaned"`
}

func (r *Report) add(t TitleResult) {
	r.Results = append(r.Results, t)
	switch t.Status {
	case StatusUpdated:
		r.Stats.Updated++
	case StatusCreated:
		r.Stats.Created++
	case StatusMerged:
		r.Stats.Merged++
	case StatusSkipped:
		r.Stats.Skipped++
	case StatusCancelled:
		r.Stats.Cancelled++
	case StatusNeedsReview:
		r.Stats.NeedsReview++
	}
}
