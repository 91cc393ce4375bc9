// Command importer runs an interactive import of a Steam purchase
// export against the playtime workbook, asking on the terminal whenever
// a title cannot be resolved automatically.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"steam-import-service/internal/config"
	"steam-import-service/internal/fileio"
	"steam-import-service/internal/importer"
	"steam-import-service/internal/library"
	"steam-import-service/internal/match"
	"steam-import-service/internal/prompt"
	"steam-import-service/internal/steam"
)

func main() {
	cfg := config.Load()

	exportPath := flag.String("file", "", "purchase export (csv, xls or xlsx)")
	libraryPath := flag.String("library", cfg.LibraryPath, "playtime workbook")
	clean := flag.Bool("clean", true, "strip market, wallet, gift and refund rows first")
	refresh := flag.Bool("refresh", false, "sync playtime from the Steam API before importing")
	flag.Parse()

	logger := config.SetupLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := library.OpenXLSX(*libraryPath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", *libraryPath).Msg("open library")
	}
	defer store.Close()

	ask := prompt.NewTerminal(os.Stdin, os.Stdout)
	policy := match.DefaultPolicy()
	policy.AcceptThreshold = cfg.AcceptThreshold
	resolver := match.NewResolver(ask, policy, logger)
	client := steam.NewClient(cfg.SteamAPIKey, cfg.SteamID, cfg.CountryCode, logger)
	imp := importer.New(store, resolver, ask, logger, importer.WithPrices(client))

	if *refresh {
		games, err := client.OwnedGames(ctx)
		if err != nil {
			logger.Fatal().Err(err).Msg("owned games")
		}
		n, err := imp.RefreshPlaytime(ctx, games)
		if err != nil {
			logger.Fatal().Err(err).Msg("refresh playtime")
		}
		fmt.Printf("Playtime refreshed for %d games.\n", n)
	}

	if *exportPath == "" {
		if !*refresh {
			flag.Usage()
			os.Exit(2)
		}
		if err := store.Save(); err != nil {
			logger.Fatal().Err(err).Msg("save library")
		}
		return
	}

	f, err := os.Open(*exportPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("open export")
	}
	rows, err := fileio.ReadAnyMaps(f, filepath.Base(*exportPath), 1)
	f.Close()
	if err != nil {
		logger.Fatal().Err(err).Msg("read export")
	}

	var cleaned importer.CleanStats
	if *clean {
		rows, cleaned = importer.CleanRows(rows)
		if n := cleaned.Total(); n > 0 {
			fmt.Printf("Pre-clean removed %d rows (market %d, gifts %d, wallet %d, conversions %d, refunds %d, refund pairs %d).\n",
				n, cleaned.Market, cleaned.Gifts, cleaned.Wallet, cleaned.Conversions, cleaned.Refunds, cleaned.RefundPairs)
		}
	}

	purchases := importer.ParsePurchases(rows)
	fmt.Printf("Found %d purchases.\n", len(purchases))

	report, err := imp.Run(ctx, purchases)
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal().Err(err).Msg("import")
	}
	report.Cleaned = cleaned

	fmt.Printf("\nImport finished: %d updated, %d created, %d merged, %d skipped, %d cancelled, %d need review.\n",
		report.Stats.Updated, report.Stats.Created, report.Stats.Merged,
		report.Stats.Skipped, report.Stats.Cancelled, report.Stats.NeedsReview)
	for _, res := range report.Results {
		if res.Note != "" {
			fmt.Printf("  %-12s %s (%s)\n", res.Status, res.Title, res.Note)
		}
	}

	if err := store.Save(); err != nil {
		logger.Fatal().Err(err).Msg("save library")
	}
	fmt.Println("Library saved to", *libraryPath)
}
