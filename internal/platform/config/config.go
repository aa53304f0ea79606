package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/Omniportal2025/omniportal-sub001/internal/core/domain"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	DatabaseURL     string
	Port            string
	IsProduction    bool
	EnableDBCheck   bool
	MigrationsPath  string
	JWTSecret       string
	JWTIssuer       string // Empty skips the issuer check
	CORSOrigins     []string
	UploadRateLimit string // ulule/limiter format, e.g. "20-M"

	// Receipt storage
	ReceiptStorageRoot string
	PayerReceiptBucket string
	AckReceiptBucket   string
	MaxReceiptBytes    int64

	PaymentPageSize int
	CommissionTiers domain.TierTable

	// Product analytics
	PosthogAPIKey   string
	PosthogEndpoint string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("JWT_SECRET", defaultJWTSecret)
	viper.SetDefault("JWT_ISSUER", "")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("UPLOAD_RATE_LIMIT", "20-M")
	viper.SetDefault("RECEIPT_STORAGE_ROOT", "./receipts")
	viper.SetDefault("PAYER_RECEIPT_BUCKET", "payment-receipts")
	viper.SetDefault("ACK_RECEIPT_BUCKET", "acknowledgment-receipts")
	viper.SetDefault("MAX_RECEIPT_BYTES", 10<<20)
	viper.SetDefault("PAYMENT_PAGE_SIZE", 10)
	viper.SetDefault("COMMISSION_TIERS", "")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("POSTHOG_ENDPOINT", "https://eu.i.posthog.com")

	// Environment variables override .env values and defaults.
	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:        viper.GetString("PGSQL_URL"),
		Port:               viper.GetString("PORT"),
		IsProduction:       viper.GetBool("IS_PRODUCTION"),
		EnableDBCheck:      viper.GetBool("ENABLE_DB_CHECK"),
		MigrationsPath:     viper.GetString("MIGRATIONS_PATH"),
		JWTSecret:          viper.GetString("JWT_SECRET"),
		JWTIssuer:          viper.GetString("JWT_ISSUER"),
		CORSOrigins:        splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
		UploadRateLimit:    viper.GetString("UPLOAD_RATE_LIMIT"),
		ReceiptStorageRoot: viper.GetString("RECEIPT_STORAGE_ROOT"),
		PayerReceiptBucket: viper.GetString("PAYER_RECEIPT_BUCKET"),
		AckReceiptBucket:   viper.GetString("ACK_RECEIPT_BUCKET"),
		MaxReceiptBytes:    viper.GetInt64("MAX_RECEIPT_BYTES"),
		PaymentPageSize:    viper.GetInt("PAYMENT_PAGE_SIZE"),
		PosthogAPIKey:      viper.GetString("POSTHOG_API_KEY"),
		PosthogEndpoint:    viper.GetString("POSTHOG_ENDPOINT"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	if cfg.PayerReceiptBucket == "" || cfg.AckReceiptBucket == "" {
		return nil, fmt.Errorf("PAYER_RECEIPT_BUCKET and ACK_RECEIPT_BUCKET must not be empty")
	}
	if cfg.PayerReceiptBucket == cfg.AckReceiptBucket {
		return nil, fmt.Errorf("PAYER_RECEIPT_BUCKET and ACK_RECEIPT_BUCKET must differ, both are %q", cfg.PayerReceiptBucket)
	}
	if cfg.PaymentPageSize <= 0 {
		return nil, fmt.Errorf("PAYMENT_PAGE_SIZE must be positive, got %d", cfg.PaymentPageSize)
	}
	if cfg.MaxReceiptBytes <= 0 {
		return nil, fmt.Errorf("MAX_RECEIPT_BYTES must be positive, got %d", cfg.MaxReceiptBytes)
	}

	tiers, err := ParseTierTable(viper.GetString("COMMISSION_TIERS"))
	if err != nil {
		return nil, fmt.Errorf("invalid COMMISSION_TIERS: %w", err)
	}
	cfg.CommissionTiers = tiers

	return cfg, nil
}

// ParseTierTable parses "threshold:allowance:label" entries separated by
// commas. An empty string yields the default tiers.
func ParseTierTable(raw string) (domain.TierTable, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.DefaultTierTable(), nil
	}

	var tiers []domain.Tier
	for _, entry := range strings.Split(raw, ",") {
		parts := strings.SplitN(strings.TrimSpace(entry), ":", 3)
		if len(parts) != 3 {
			return domain.TierTable{}, fmt.Errorf("tier %q must be threshold:allowance:label", entry)
		}
		threshold, err := decimal.NewFromString(strings.TrimSpace(parts[0]))
		if err != nil {
			return domain.TierTable{}, fmt.Errorf("tier %q has invalid threshold: %w", entry, err)
		}
		allowance, err := decimal.NewFromString(strings.TrimSpace(parts[1]))
		if err != nil {
			return domain.TierTable{}, fmt.Errorf("tier %q has invalid allowance: %w", entry, err)
		}
		tiers = append(tiers, domain.Tier{
			Threshold: threshold,
			Allowance: allowance,
			Label:     strings.TrimSpace(parts[2]),
		})
	}
	return domain.NewTierTable(tiers)
}

func splitList(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
