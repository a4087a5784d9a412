package cfg

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

type SkyScrapperConfig struct {
	BaseURL              string
	APIKey               string
	APIHost              string
	RequestsPerSecond    float64
	Burst                int
	ClientTimeoutSeconds int
}

type ObservabilityConfig struct {
	Enabled      bool
	OTLPEndpoint string
	ServiceName  string
	Environment  string
}

type Config struct {
	AppEnv             string
	AppPort            string
	Redis              RedisConfig
	SkyScrapper        SkyScrapperConfig
	Observability      ObservabilityConfig
	CacheTTLMinutes    int
	SnowflakeNodeID    int64
	CORSAllowedOrigins []string
}

func Load() (*Config, error) {
	var errs []error

	// a missing .env is fine, the process environment is used as is
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, errors.New("failed load cfg: " + err.Error())
	}

	appEnv := mustEnv("APP_ENV", &errs)
	appPort := mustEnv("APP_PORT", &errs)

	rapidAPIKey := mustEnv("RAPIDAPI_KEY", &errs)
	rapidAPIHost := mustEnv("RAPIDAPI_HOST", &errs)
	skyScrapperBaseURL := mustEnv("SKYSCRAPPER_BASE_URL", &errs)

	redisHost := mustEnv("REDIS_HOST", &errs)
	redisPort := mustEnv("REDIS_PORT", &errs)
	redisPassword := mustEnv("REDIS_PASSWORD", &errs)

	cacheTTLMinutes := mustInt("CACHE_TTL_MINUTES", &errs)

	rps := optionalFloat("RAPIDAPI_RPS", 0, &errs)
	burst := optionalInt("RAPIDAPI_BURST", 1, &errs)
	nodeID := optionalInt("SNOWFLAKE_NODE_ID", 1, &errs)
	clientTimeout := optionalInt("HTTP_CLIENT_TIMEOUT_SECONDS", 10, &errs)

	otelEnabled := optionalBool("OTEL_ENABLED", false, &errs)
	otlpEndpoint := optionalEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317")
	serviceName := optionalEnv("OTEL_SERVICE_NAME", "skytrip")

	origins := splitList(optionalEnv("CORS_ALLOWED_ORIGINS", "*"))

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return &Config{
		AppEnv:  appEnv,
		AppPort: appPort,
		Redis: RedisConfig{
			Host:     redisHost,
			Port:     redisPort,
			Password: redisPassword,
		},
		SkyScrapper: SkyScrapperConfig{
			BaseURL:              skyScrapperBaseURL,
			APIKey:               rapidAPIKey,
			APIHost:              rapidAPIHost,
			RequestsPerSecond:    rps,
			Burst:                burst,
			ClientTimeoutSeconds: clientTimeout,
		},
		Observability: ObservabilityConfig{
			Enabled:      otelEnabled,
			OTLPEndpoint: otlpEndpoint,
			ServiceName:  serviceName,
			Environment:  appEnv,
		},
		CacheTTLMinutes:    cacheTTLMinutes,
		SnowflakeNodeID:    int64(nodeID),
		CORSAllowedOrigins: origins,
	}, nil
}

func mustEnv(key string, errs *[]error) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		*errs = append(*errs, errors.New("missing env: "+key))
	}
	return value
}

func mustInt(key string, errs *[]error) int {
	value := mustEnv(key, errs)
	if value == "" {
		return 0
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		*errs = append(*errs, errors.New("conversion failed env: "+key))
	}
	return n
}

func optionalEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func optionalInt(key string, fallback int, errs *[]error) int {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		*errs = append(*errs, errors.New("conversion failed env: "+key))
		return fallback
	}
	return n
}

func optionalFloat(key string, fallback float64, errs *[]error) float64 {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		*errs = append(*errs, errors.New("conversion failed env: "+key))
		return fallback
	}
	return f
}

func optionalBool(key string, fallback bool, errs *[]error) bool {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		*errs = append(*errs, errors.New("conversion failed env: "+key))
		return fallback
	}
	return b
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
