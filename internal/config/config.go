package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Host         string
	Port         int
	AllowOrigins []string
	LogLevel     string
	LogFile      string
	MaxUploadMB  int

	// LibraryPath is the playtime workbook the importer reads and writes.
	LibraryPath string

	// Steam Web API credentials. Empty values disable the owned-games
	// refresh and the weighted bundle strategy falls back to equal split.
	SteamAPIKey string
	SteamID     string
	CountryCode string

	// AcceptThreshold is the minimum score at which a fuzzy match is
	// taken without confirmation.
	AcceptThreshold float64
}

func Load() Config {
	// Missing .env is fine; the environment wins either way.
	_ = godotenv.Load()

	port, _ := strconv.Atoi(getenv("PORT", "8082"))
	mb, _ := strconv.Atoi(getenv("MAX_UPLOAD_MB", "64"))
	origins := strings.Split(getenv("ALLOW_ORIGINS", "*"), ",")
	accept, err := strconv.ParseFloat(getenv("ACCEPT_THRESHOLD", "200"), 64)
	if err != nil || accept <= 0 {
		accept = 200
	}
	return Config{
		Host:            getenv("HOST", "127.0.0.1"),
		Port:            port,
		AllowOrigins:    origins,
		LogLevel:        getenv("LOG_LEVEL", "info"),
		LogFile:         getenv("LOG_FILE", "logs/steam-import.log"),
		MaxUploadMB:     mb,
		LibraryPath:     getenv("LIBRARY_PATH", "steam_playtime.xlsx"),
		SteamAPIKey:     os.Getenv("STEAM_API_KEY"),
		SteamID:         os.Getenv("STEAM_ID"),
		CountryCode:     getenv("STEAM_CC", "us"),
		AcceptThreshold: accept,
	}
}

func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
