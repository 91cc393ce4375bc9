// Package handler exposes the importer over HTTP. Requests run
// unattended: anything the interactive flow would ask a human about is
// reported as needs_review instead of blocking.
package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"steam-import-service/internal/config"
	"steam-import-service/internal/fileio"
	"steam-import-service/internal/importer"
	"steam-import-service/internal/library"
	"steam-import-service/internal/match"
	"steam-import-service/internal/middleware"
	"steam-import-service/internal/prompt"
	"steam-import-service/internal/steam"
)

// Import handles POST /import: multipart "file" with a Steam purchase
// export. Form fields: clean (default true) runs the export pre-cleaner,
// apply (default false) writes results to the library workbook. The
// default is a dry run that parses and reports without mutating anything.
func Import(cfg config.Config, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := withReqID(logger, r)
		defer r.Body.Close()

		if err := r.ParseMultipartForm(int64(cfg.MaxUploadMB) << 20); err != nil {
			http.Error(w, "bad multipart form: "+err.Error(), http.StatusBadRequest)
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "missing file: "+err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()

		rows, err := fileio.ReadAnyMaps(file, header.Filename, atoi(r.FormValue("header_row"), 1))
		if err != nil {
			http.Error(w, "failed to read export: "+err.Error(), http.StatusBadRequest)
			return
		}

		var cleaned importer.CleanStats
		if toBool(r.FormValue("clean"), true) {
			rows, cleaned = importer.CleanRows(rows)
		}
		purchases := importer.ParsePurchases(rows)

		apply := toBool(r.FormValue("apply"), false)
		report := &importer.Report{Cleaned: cleaned}
		if apply {
			store, err := library.OpenXLSX(cfg.LibraryPath)
			if err != nil {
				http.Error(w, "failed to open library: "+err.Error(), http.StatusInternalServerError)
				return
			}
			defer store.Close()

			policy := match.DefaultPolicy()
			policy.AcceptThreshold = toFloat(r.FormValue("accept_threshold"), cfg.AcceptThreshold)
			resolver := match.NewResolver(prompt.Headless{}, policy, log)

			imp := importer.New(store, resolver, prompt.Headless{}, log,
				importer.WithPrices(steam.NewClient(cfg.SteamAPIKey, cfg.SteamID, cfg.CountryCode, log)))
			run, err := imp.Run(r.Context(), purchases)
			if err != nil {
				http.Error(w, "import aborted: "+err.Error(), http.StatusInternalServerError)
				return
			}
			run.Cleaned = cleaned
			report = run

			if err := store.Save(); err != nil {
				http.Error(w, "failed to save library: "+err.Error(), http.StatusInternalServerError)
				return
			}
		} else {
			report.Stats.Purchases = len(purchases)
			for _, p := range purchases {
				for _, t := range p.Titles {
					report.Results = append(report.Results, importer.TitleResult{
						Title: t, Status: importer.StatusNeedsReview, Note: "dry run",
					})
				}
			}
		}

		writeJSON(w, log, report)
		log.Info().
			Int("rows", len(rows)).
			Int("purchases", len(purchases)).
			Bool("apply", apply).
			Dur("elapsed", time.Since(start)).
			Msg("import done")
	}
}

// Library handles GET /library: every entry in the workbook.
func Library(cfg config.Config, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := withReqID(logger, r)
		store, err := library.OpenXLSX(cfg.LibraryPath)
		if err != nil {
			http.Error(w, "failed to open library: "+err.Error(), http.StatusInternalServerError)
			return
		}
		defer store.Close()

		entries, err := store.ListEntries()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, log, map[string]any{"entries": entries, "count": len(entries)})
	}
}

// Stats handles GET /stats: playtime totals across the library.
func Stats(cfg config.Config, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := withReqID(logger, r)
		store, err := library.OpenXLSX(cfg.LibraryPath)
		if err != nil {
			http.Error(w, "failed to open library: "+err.Error(), http.StatusInternalServerError)
			return
		}
		defer store.Close()

		st, err := library.ComputeStats(store)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, log, st)
	}
}

// Refresh handles POST /refresh: syncs playtime from GetOwnedGames.
// Requires STEAM_API_KEY and STEAM_ID.
func Refresh(cfg config.Config, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := withReqID(logger, r)
		client := steam.NewClient(cfg.SteamAPIKey, cfg.SteamID, cfg.CountryCode, log)
		games, err := client.OwnedGames(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}

		store, err := library.OpenXLSX(cfg.LibraryPath)
		if err != nil {
			http.Error(w, "failed to open library: "+err.Error(), http.StatusInternalServerError)
			return
		}
		defer store.Close()

		resolver := match.NewResolver(prompt.Headless{}, match.DefaultPolicy(), log)
		imp := importer.New(store, resolver, prompt.Headless{}, log)
		n, err := imp.RefreshPlaytime(r.Context(), games)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if err := store.Save(); err != nil {
			http.Error(w, "failed to save library: "+err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, log, map[string]any{"refreshed": n})
	}
}

func withReqID(logger zerolog.Logger, r *http.Request) zerolog.Logger {
	if reqID := r.Header.Get(middleware.HeaderRequestID); reqID != "" {
		return logger.With().Str("req_id", reqID).Logger()
	}
	return logger
}

func writeJSON(w http.ResponseWriter, log zerolog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Error().Err(err).Msg("write json")
	}
}

func atoi(s string, def int) int {
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func toBool(s string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func toFloat(s string, def float64) float64 {
	if s == "" {
		return def
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f <= 0 {
		return def
	}
	return f
}
