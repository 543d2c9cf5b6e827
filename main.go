package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/gurman-mavi/Project-Voyage-AI-sub001/config"
	"github.com/gurman-mavi/Project-Voyage-AI-sub001/database"
	"github.com/gurman-mavi/Project-Voyage-AI-sub001/handlers"
	"github.com/gurman-mavi/Project-Voyage-AI-sub001/hotels"
	"github.com/gurman-mavi/Project-Voyage-AI-sub001/logcolors"
	"github.com/gurman-mavi/Project-Voyage-AI-sub001/middleware"
	"github.com/gurman-mavi/Project-Voyage-AI-sub001/obs"
	"github.com/gurman-mavi/Project-Voyage-AI-sub001/services"
)

var conf = config.Get()

func init() {
	log.SetOutput(os.Stdout)
	if conf.Server.GinMode == gin.ReleaseMode {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	level, err := log.ParseLevel(conf.Server.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := obs.NewMetrics(registry)

	// Initialize trip store
	store, err := openStore(ctx)
	if err != nil {
		log.Fatalf("%s Failed to open trip store: %v", logcolors.LogTrips, err)
	}
	defer store.Close()

	// Initialize hotel directory
	amadeus := services.NewAmadeusClient(services.AmadeusConfig{
		ClientID:      conf.Amadeus.ClientID,
		ClientSecret:  conf.Amadeus.ClientSecret,
		BaseURL:       conf.AmadeusBaseURL(),
		Timeout:       conf.UpstreamTimeout(),
		Retries:       conf.Amadeus.Retries,
		RatePerSecond: conf.Amadeus.RatePerSecond,
		RateBurst:     conf.Amadeus.RateBurst,
	}, metrics)
	if amadeus.Configured() {
		warmCtx, cancel := context.WithTimeout(ctx, conf.UpstreamTimeout())
		if err := amadeus.Warm(warmCtx); err != nil {
			log.Warnf("%s Token warm-up failed, will retry on first search: %v", logcolors.LogToken, err)
		}
		cancel()
	}

	places := services.NewPlacesClient(services.PlacesConfig{
		APIKey:  conf.Places.APIKey,
		BaseURL: conf.Places.BaseURL,
		Timeout: conf.PhotoTimeout(),
		Retries: 1,
	}, metrics)

	caches := hotels.NewCaches(conf.CacheSweepInterval(), metrics)

	var photos *hotels.PhotoEnricher
	if conf.FeatureFlags.PhotoEnrichment && places.Configured() {
		photos = hotels.NewPhotoEnricher(places, caches.Photos, hotels.PhotoOptions{
			Limit:    conf.Places.EnrichLimit,
			Timeout:  conf.PhotoTimeout(),
			MaxWidth: conf.Places.PhotoMaxWidth,
		}, metrics)
	} else {
		log.Infof("%s Photo enrichment disabled", logcolors.LogPhotos)
	}

	search := hotels.NewService(amadeus, hotels.NewResolver(hotels.DefaultMarketTables()), caches, photos, metrics, hotels.Options{
		CityIDCap:      conf.Search.CityIDCap,
		GeoIDCap:       conf.Search.GeoIDCap,
		MarketIDCap:    conf.Search.MarketIDCap,
		OfferPageLimit: conf.Search.OfferPageLimit,
		MarketFallback: conf.FeatureFlags.MarketFallback,
		Coalesce:       conf.FeatureFlags.SearchCoalescing,
	})

	assistant := services.NewAssistant(services.AssistantConfig{
		APIKey:  conf.Assistant.HuggingFaceAPIKey,
		Model:   conf.Assistant.Model,
		Timeout: conf.UpstreamTimeout(),
	}, metrics)

	h := handlers.New(handlers.Deps{
		Hotels:              search,
		Photos:              places,
		Trips:               store,
		Assistant:           assistant,
		DirectoryConfigured: amadeus.Configured,
		PhotoMaxWidth:       conf.Places.PhotoMaxWidth,
	})

	// Set Gin mode
	if conf.Server.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger(), middleware.Metrics(metrics))

	// Trusted proxies (the platform sits behind a proxy)
	r.SetTrustedProxies([]string{"0.0.0.0/0"})

	r.Use(cors.New(cors.Config{
		AllowOrigins:     conf.AllowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	limiter := middleware.NewIPRateLimiter(rate.Limit(conf.Server.RateLimitPerSecond), conf.Server.RateLimitBurst)
	go limiter.RunSweeper(time.Minute, ctx.Done())

	// Routes
	api := r.Group("/api", middleware.RateLimit(limiter))
	h.Register(api)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	srv := &http.Server{
		Addr:              ":" + conf.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("%s Voyage AI backend starting on port %s", logcolors.LogServer, conf.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("%s Failed to start server: %v", logcolors.LogServer, err)
		}
	}()

	<-ctx.Done()
	log.Infof("%s Shutting down", logcolors.LogServer)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("%s Graceful shutdown failed: %v", logcolors.LogServer, err)
	}
}

// openStore picks Postgres when configured, else the embedded BoltDB file.
func openStore(ctx context.Context) (database.Store, error) {
	if conf.UsePostgres() {
		connectCtx, cancel := context.WithTimeout(ctx, time.Minute)
		defer cancel()
		pg, err := database.OpenPostgres(connectCtx, database.PostgresConfig{
			URL:      conf.Storage.DatabaseURL,
			Host:     conf.Storage.DBHost,
			Port:     conf.Storage.DBPort,
			User:     conf.Storage.DBUser,
			Password: conf.Storage.DBPassword,
			Name:     conf.Storage.DBName,
			SSLMode:  conf.Storage.DBSSLMode,
		})
		if err != nil {
			return nil, err
		}
		return pg, nil
	}

	log.Infof("%s DATABASE_URL and DB_HOST not set, using embedded store at %s", logcolors.LogTrips, conf.Storage.TripsDBPath)
	bolt, err := database.OpenBolt(conf.Storage.TripsDBPath)
	if err != nil {
		return nil, err
	}
	return bolt, nil
}
