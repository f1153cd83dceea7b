package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"flight-footprint/atlas/internal/constants"
)

// Config is the process configuration, read from the environment.
type Config struct {
	AppEnv string
	Port   string

	// Dataset and sources
	DatasetPath       string
	OpenFlightsURL    string
	OurAirportsURL    string
	FactbookURL       string
	ISOCSVPath        string
	ScoringConfigPath string
	CSVSnapshotPath   string
	AirportTypes      []string
	FetchTimeout      time.Duration

	// Scheduled regeneration in the server, zero disables it
	RegenerateInterval time.Duration

	// Optional SQL mirror, empty disables it
	DatabaseDSN string

	// Optional Redis suggest cache, empty host keeps the in-memory cache
	RedisHost       string
	RedisPort       string
	RedisPassword   string
	SuggestCacheTTL time.Duration

	// HTTP
	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
	AdminJWTSecret string
}

// Load reads a .env file when present and then the environment.
func Load() Config {
	// a missing .env is normal outside development
	_ = godotenv.Load()

	return Config{
		AppEnv: getenv("APP_ENV", "development"),
		Port:   getenv("PORT", "8080"),

		DatasetPath:       getenv("DATASET_PATH", constants.DefaultDatasetPath),
		OpenFlightsURL:    getenv("OPENFLIGHTS_URL", constants.DefaultOpenFlightsURL),
		OurAirportsURL:    getenv("OURAIRPORTS_URL", constants.DefaultOurAirportsURL),
		FactbookURL:       getenv("FACTBOOK_URL", constants.DefaultFactbookURL),
		ISOCSVPath:        getenv("ISO_CSV_PATH", constants.DefaultISOCSVPath),
		ScoringConfigPath: os.Getenv("SCORING_CONFIG"),
		CSVSnapshotPath:   os.Getenv("CSV_SNAPSHOT_PATH"),
		AirportTypes:      getenvList("AIRPORT_TYPES", []string{"large_airport"}),
		FetchTimeout:      getenvDuration("FETCH_TIMEOUT", 60*time.Second),

		RegenerateInterval: getenvDuration("REGENERATE_INTERVAL", 0),

		DatabaseDSN: os.Getenv("DATABASE_DSN"),

		RedisHost:       os.Getenv("REDIS_HOST"),
		RedisPort:       getenv("REDIS_PORT", "6379"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		SuggestCacheTTL: getenvDuration("SUGGEST_CACHE_TTL", 10*time.Minute),

		CORSOrigins:    getenvList("CORS_ORIGINS", []string{"https://*", "http://localhost:5173"}),
		RateLimitRPS:   getenvFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst: getenvInt("RATE_LIMIT_BURST", 20),
		AdminJWTSecret: os.Getenv("ADMIN_JWT_SECRET"),
	}
}

func getenv(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func getenvInt(k string, def int) int {
	v, err := strconv.Atoi(os.Getenv(k))
	if err != nil {
		return def
	}
	return v
}

func getenvFloat(k string, def float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(k), 64)
	if err != nil {
		return def
	}
	return v
}

func getenvDuration(k string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(k))
	if err != nil {
		return def
	}
	return v
}

// getenvList splits a comma separated value, dropping empty items.
func getenvList(k string, def []string) []string {
	raw := os.Getenv(k)
	if raw == "" {
		return def
	}
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
