package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"flight-footprint/atlas/internal/airports"
	"flight-footprint/atlas/internal/api"
	"flight-footprint/atlas/internal/auth"
	"flight-footprint/atlas/internal/common"
	"flight-footprint/atlas/internal/config"
	"flight-footprint/atlas/internal/dataset"
	"flight-footprint/atlas/internal/db"
	"flight-footprint/atlas/internal/db/repositories"
	"flight-footprint/atlas/internal/jobs"
	"flight-footprint/atlas/internal/logging"
	"flight-footprint/atlas/internal/metrics"
	"flight-footprint/atlas/internal/providers"
	"flight-footprint/atlas/internal/routes"
	"flight-footprint/atlas/internal/services"
)

func main() {
	cfg := config.Load()

	if err := logging.Init(cfg.AppEnv); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	logging.Info("Atlas starting up",
		"environment", cfg.AppEnv,
		"timestamp", time.Now().Format(time.RFC3339),
		"dataset", cfg.DatasetPath,
	)

	metricsReg := metrics.NewMetricsRegistry(prometheus.DefaultRegisterer)

	scoring := airports.DefaultScoringConfig()
	if cfg.ScoringConfigPath != "" {
		loaded, err := config.LoadScoring(cfg.ScoringConfigPath)
		if err != nil {
			logging.Fatal("Failed to load scoring config", "path", cfg.ScoringConfigPath, "error", err)
		}
		scoring = loaded
	}

	store := dataset.NewStore(cfg.DatasetPath, metricsReg)
	if _, err := store.Current(); err != nil {
		// Served as 503 until a regeneration writes the file.
		logging.Warn("Dataset not available yet", "path", cfg.DatasetPath, "error", err)
	}

	deps := &api.Dependencies{
		DatasetPath: cfg.DatasetPath,
		CSVPath:     cfg.CSVSnapshotPath,
	}

	var cache common.CacheInterface
	if cfg.RedisHost != "" {
		redisCache, err := common.NewRedisCacheService(common.NewRedisClient(cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword))
		if err != nil {
			logging.Warn("Redis unavailable, using in-memory suggest cache", "error", err)
		} else {
			cache = redisCache
			deps.Redis = redisCache
		}
	}
	if cache == nil {
		ttl := int(cfg.SuggestCacheTTL.Seconds())
		cache = common.NewCacheService(ttl, ttl*2)
	}
	defer cache.Close()

	regen := services.NewRegenerationService(
		providers.NewFetcher(cfg.FetchTimeout),
		services.SourceLocations{
			OpenFlights: cfg.OpenFlightsURL,
			OurAirports: cfg.OurAirportsURL,
			Factbook:    cfg.FactbookURL,
			ISOCSVPath:  cfg.ISOCSVPath,
		},
		scoring,
		cfg.AirportTypes,
		metricsReg,
	).WithStore(store)

	deps.Services = &api.Services{
		Lookup:       services.NewLookupService(store, cache, cfg.SuggestCacheTTL, metricsReg),
		Regeneration: regen,
	}

	if cfg.DatabaseDSN != "" {
		gormDB := openMirror(cfg.DatabaseDSN)
		airportRepo := repositories.NewAirportRepository(gormDB)
		deps.DB = gormDB
		deps.Services.Mirror = services.NewMirrorService(airportRepo)
		regen.WithMirror(airportRepo)
	}

	opts := routes.Options{
		CORSOrigins:    cfg.CORSOrigins,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	}
	if cfg.AdminJWTSecret != "" {
		signer, err := auth.NewTokenSigner([]byte(cfg.AdminJWTSecret))
		if err != nil {
			logging.Fatal("Failed to create admin token signer", "error", err)
		}
		opts.AdminSigner = signer
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if job := jobs.InitializeJobs(ctx, regen, services.RegenerationOptions{
		OutputPath: cfg.DatasetPath,
		CSVPath:    cfg.CSVSnapshotPath,
	}, cfg.RegenerateInterval); job != nil {
		logging.Info("Scheduled regeneration enabled", "interval", cfg.RegenerateInterval.String())
	}

	upSince := time.Now()
	router := routes.RegisterRoutes(api.NewHandlers(deps), metricsReg, opts, upSince)

	// Setup metrics endpoint outside of Chi router
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", router) // Mount Chi router at root
	logging.Info("Prometheus metrics endpoint registered at /metrics")

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logging.Info("Server starting", "port", cfg.Port, "environment", cfg.AppEnv)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logging.Fatal("Server stopped", "error", err)
	}
}

func openMirror(dsn string) *gorm.DB {
	gormDB, err := db.Open(dsn)
	if err != nil {
		logging.Fatal("Failed to connect to SQL mirror", "error", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		logging.Fatal("Failed to migrate SQL mirror", "error", err)
	}
	return gormDB
}
