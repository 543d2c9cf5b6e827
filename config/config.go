package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"
)

var conf = mustLoad()

type Config struct {
	Server struct {
		Port               string `envconfig:"PORT" default:"8080"`
		GinMode            string `envconfig:"GIN_MODE" default:"debug"`
		FrontendURL        string `envconfig:"FRONTEND_URL" default:""`
		LogLevel           string `envconfig:"LOG_LEVEL" default:"info"`
		RateLimitPerSecond int    `envconfig:"RATE_LIMIT_PER_SECOND" default:"5"`
		RateLimitBurst     int    `envconfig:"RATE_LIMIT_BURST" default:"10"`
	}

	Amadeus struct {
		ClientID       string  `envconfig:"AMADEUS_CLIENT_ID" default:""`
		ClientSecret   string  `envconfig:"AMADEUS_CLIENT_SECRET" default:""`
		Env            string  `envconfig:"AMADEUS_ENV" default:"test"`
		BaseURL        string  `envconfig:"AMADEUS_BASE_URL" default:""`
		TimeoutSeconds int     `envconfig:"UPSTREAM_TIMEOUT_SECONDS" default:"20"`
		Retries        int     `envconfig:"UPSTREAM_RETRIES" default:"2"`
		RatePerSecond  float64 `envconfig:"AMADEUS_RATE_PER_SECOND" default:"10"`
		RateBurst      int     `envconfig:"AMADEUS_RATE_BURST" default:"10"`
	}

	Places struct {
		APIKey         string `envconfig:"GOOGLE_MAPS_API_KEY" default:""`
		BaseURL        string `envconfig:"PLACES_BASE_URL" default:"https://maps.googleapis.com"`
		PhotoMaxWidth  int    `envconfig:"PHOTO_MAX_WIDTH" default:"800"`
		EnrichLimit    int    `envconfig:"PHOTO_ENRICH_LIMIT" default:"10"`
		TimeoutSeconds int    `envconfig:"PHOTO_TIMEOUT_SECONDS" default:"5"`
	}

	Search struct {
		CityIDCap                 int `envconfig:"CITY_ID_CAP" default:"20"`
		GeoIDCap                  int `envconfig:"GEO_ID_CAP" default:"50"`
		MarketIDCap               int `envconfig:"MARKET_ID_CAP" default:"20"`
		OfferPageLimit            int `envconfig:"OFFER_PAGE_LIMIT" default:"20"`
		CacheSweepIntervalSeconds int `envconfig:"CACHE_SWEEP_INTERVAL_SECONDS" default:"60"`
	}

	Storage struct {
		DatabaseURL string `envconfig:"DATABASE_URL" default:""`
		DBHost      string `envconfig:"DB_HOST" default:""`
		DBPort      string `envconfig:"DB_PORT" default:"5432"`
		DBUser      string `envconfig:"DB_USER" default:"postgres"`
		DBPassword  string `envconfig:"DB_PASSWORD" default:"postgres"`
		DBName      string `envconfig:"DB_NAME" default:"voyage"`
		DBSSLMode   string `envconfig:"DB_SSLMODE" default:"disable"`
		TripsDBPath string `envconfig:"TRIPS_DB_PATH" default:"./data/trips.db"`
	}

	Assistant struct {
		HuggingFaceAPIKey string `envconfig:"HUGGINGFACE_API_KEY" default:""`
		Model             string `envconfig:"HF_MODEL" default:"mistralai/Mistral-7B-Instruct-v0.3"`
	}

	FeatureFlags struct {
		PhotoEnrichment  bool `envconfig:"FF_PHOTO_ENRICHMENT" default:"true"`
		MarketFallback   bool `envconfig:"FF_MARKET_FALLBACK" default:"true"`
		SearchCoalescing bool `envconfig:"FF_SEARCH_COALESCING" default:"false"`
	}
}

// load loads the configuration from the environment.
func load() (Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Debugf("No .env file loaded: %v", err)
	}

	cfg := Config{}
	err = envconfig.Process("", &cfg)
	return cfg, err
}

func mustLoad() Config {
	c, err := load()
	if err != nil {
		log.WithError(err).Warnf("Unable to load configuration")
	}

	return c
}

func Get() Config {
	return conf
}

// AmadeusBaseURL picks the directory host: explicit override first, then the
// environment switch between the free test tier and production.
func (c Config) AmadeusBaseURL() string {
	if c.Amadeus.BaseURL != "" {
		return strings.TrimRight(c.Amadeus.BaseURL, "/")
	}
	if c.Amadeus.Env == "production" || c.Amadeus.Env == "prod" {
		return "https://api.amadeus.com"
	}
	return "https://test.api.amadeus.com"
}

func (c Config) UpstreamTimeout() time.Duration {
	return time.Duration(c.Amadeus.TimeoutSeconds) * time.Second
}

func (c Config) PhotoTimeout() time.Duration {
	return time.Duration(c.Places.TimeoutSeconds) * time.Second
}

func (c Config) CacheSweepInterval() time.Duration {
	return time.Duration(c.Search.CacheSweepIntervalSeconds) * time.Second
}

// UsePostgres reports whether a Postgres trip store is configured.
func (c Config) UsePostgres() bool {
	return c.Storage.DatabaseURL != "" || c.Storage.DBHost != ""
}

// AllowedOrigins returns the CORS origins: local dev servers plus FRONTEND_URL entries.
func (c Config) AllowedOrigins() []string {
	origins := []string{"http://localhost:5173", "http://localhost:3000"}
	for _, u := range strings.Split(c.Server.FrontendURL, ",") {
		u = strings.TrimSpace(u)
		if u != "" {
			origins = append(origins, u)
		}
	}
	return origins
}
