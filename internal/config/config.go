package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"autoinspect/internal/analysis"
	"autoinspect/internal/imagesource"
	"autoinspect/internal/report"
	"autoinspect/internal/resultcache"
	"autoinspect/internal/sanitize"
)

// Config carries everything the analysis pipeline needs at construction
// time. All values come from the environment; a .env file is honored
// when present.
type Config struct {
	GeminiAPIKey string
	Model        string
	Temperature  float32

	// Rate limiting for the provider. RPS <= 0 disables it.
	RPS   float64
	Burst int

	// CallTimeout bounds one model invocation.
	CallTimeout time.Duration

	CacheCapacity int

	// RetryBudgets maps each analysis kind to its number of retries
	// after the first attempt.
	RetryBudgets map[analysis.Kind]int

	Heuristics sanitize.Heuristics

	// Optional persistence backends. Empty settings leave the pipeline
	// on its in-memory store.
	PostgresDSN string
	S3          report.S3Config

	// Image source settings. ImageS3 wins when its endpoint is set;
	// otherwise references resolve against ImagesDir.
	ImagesDir string
	ImageS3   imagesource.S3Config
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		GeminiAPIKey:  strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		Model:         envStr("ANALYSIS_MODEL", "gemini-2.5-flash"),
		Temperature:   float32(envFloat("ANALYSIS_TEMPERATURE", 0)),
		RPS:           envFloat("ANALYSIS_RPS", 0),
		Burst:         envInt("ANALYSIS_BURST", 1),
		CallTimeout:   time.Duration(envInt("ANALYSIS_CALL_TIMEOUT_SEC", 120)) * time.Second,
		CacheCapacity: envInt("ANALYSIS_CACHE_CAPACITY", resultcache.DefaultCapacity),
		RetryBudgets: map[analysis.Kind]int{
			analysis.KindDamage:    envInt("DAMAGE_RETRIES", 1),
			analysis.KindValuation: envInt("VALUATION_RETRIES", 1),
			analysis.KindReport:    envInt("REPORT_RETRIES", 1),
		},
		Heuristics:  loadHeuristics(),
		PostgresDSN: strings.TrimSpace(os.Getenv("RESULT_PG_DSN")),
		S3: report.S3Config{
			Endpoint:  strings.TrimSpace(os.Getenv("RESULT_S3_ENDPOINT")),
			Region:    envStr("RESULT_S3_REGION", "us-east-1"),
			AccessKey: strings.TrimSpace(os.Getenv("RESULT_S3_ACCESS_KEY")),
			SecretKey: strings.TrimSpace(os.Getenv("RESULT_S3_SECRET_KEY")),
			Bucket:    strings.TrimSpace(os.Getenv("RESULT_S3_BUCKET")),
			UseSSL:    envBool("RESULT_S3_USE_SSL", false),
		},
		ImagesDir: envStr("IMAGE_DIR", "."),
		ImageS3: imagesource.S3Config{
			Endpoint:  strings.TrimSpace(os.Getenv("IMAGE_S3_ENDPOINT")),
			Region:    envStr("IMAGE_S3_REGION", "us-east-1"),
			AccessKey: strings.TrimSpace(os.Getenv("IMAGE_S3_ACCESS_KEY")),
			SecretKey: strings.TrimSpace(os.Getenv("IMAGE_S3_SECRET_KEY")),
			Bucket:    strings.TrimSpace(os.Getenv("IMAGE_S3_BUCKET")),
			UseSSL:    envBool("IMAGE_S3_USE_SSL", false),
		},
	}
	return cfg, nil
}

// loadHeuristics starts from the defaults and applies env overrides.
// The constants are placeholder business rules, so they stay tunable
// without a rebuild.
func loadHeuristics() sanitize.Heuristics {
	h := sanitize.DefaultHeuristics()
	h.MarketImpactBase = envInt("MARKET_IMPACT_BASE", h.MarketImpactBase)
	h.MarketImpactPerArea = envInt("MARKET_IMPACT_PER_AREA", h.MarketImpactPerArea)
	h.MarketImpactCap = envInt("MARKET_IMPACT_CAP", h.MarketImpactCap)
	h.DefaultConfidence = envInt("DEFAULT_CONFIDENCE", h.DefaultConfidence)
	return h
}

func envStr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func envBool(key string, def bool) bool {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
