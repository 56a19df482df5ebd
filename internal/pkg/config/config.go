// Package config loads the register's settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Config is read once in main and passed down explicitly.
type Config struct {
	ServiceName string
	LogLevel    string

	HTTPAddr string
	GRPCAddr string

	// TaxRate is a fraction in [0,1], e.g. 0.08.
	TaxRate decimal.Decimal

	Business Business

	SQLitePath string

	// DirectoryAddr is the customer-directory gRPC address. Empty uses the
	// built-in reference directory.
	DirectoryAddr    string
	DirectoryTimeout time.Duration

	// RedisAddr enables the customer cache and the hold archive when set.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CustomerTTL   time.Duration
	HoldTTL       time.Duration

	// KafkaBrokers enables receipt publishing when non-empty.
	KafkaBrokers []string
	KafkaTopic   string

	// Customers seeds the customer-directory service on top of the reference
	// customer. CUSTOMER_SEED is "phone=name;phone=name".
	Customers map[string]string

	// PrintReceipts writes rendered receipts to stdout.
	PrintReceipts bool

	OTLP OTLP
}

// Business holds the header and footer printed on receipts.
type Business struct {
	Name    string
	Address string
	Phone   string
	Footer  string
}

type OTLP struct {
	Endpoint    string
	Environment string
	SampleRatio float64
}

// Load reads the pos-terminal settings from the environment.
func Load() (Config, error) {
	return LoadService("pos-terminal")
}

// LoadService is Load for the binary named service; OTEL_SERVICE_NAME
// overrides the name.
func LoadService(service string) (Config, error) {
	var errs []error

	taxRate, err := decimal.NewFromString(getEnv("TAX_RATE", "0.08"))
	if err != nil {
		errs = append(errs, fmt.Errorf("TAX_RATE: %w", err))
	}

	cfg := Config{
		ServiceName: getEnv("OTEL_SERVICE_NAME", service),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		HTTPAddr:    ":" + getEnv("PORT", "8080"),
		GRPCAddr:    ":" + getEnv("GRPC_PORT", "9095"),
		TaxRate:     taxRate,
		Business: Business{
			Name:    getEnv("BUSINESS_NAME", "POSFLOW"),
			Address: getEnv("BUSINESS_ADDRESS", "123 Business Street, City"),
			Phone:   getEnv("BUSINESS_PHONE", "(555) 123-4567"),
			Footer:  getEnv("RECEIPT_FOOTER", "Thank you for your purchase!"),
		},
		SQLitePath:    getEnv("SQLITE_PATH", "./data/pos.db"),
		DirectoryAddr: os.Getenv("CUSTOMER_DIRECTORY_ADDR"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		KafkaBrokers:  splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:    getEnv("KAFKA_RECEIPTS_TOPIC", "pos.receipts"),
		OTLP: OTLP{
			Endpoint:    os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
			Environment: getEnv("OTEL_RESOURCE_ATTRIBUTES_ENV", "local"),
		},
	}

	cfg.Customers, err = parsePairs(os.Getenv("CUSTOMER_SEED"))
	if err != nil {
		errs = append(errs, fmt.Errorf("CUSTOMER_SEED: %w", err))
	}
	cfg.RedisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		errs = append(errs, fmt.Errorf("REDIS_DB: %w", err))
	}
	cfg.PrintReceipts, err = strconv.ParseBool(getEnv("PRINT_RECEIPTS", "true"))
	if err != nil {
		errs = append(errs, fmt.Errorf("PRINT_RECEIPTS: %w", err))
	}
	cfg.OTLP.SampleRatio, err = strconv.ParseFloat(getEnv("OTEL_SAMPLE_RATIO", "1"), 64)
	if err != nil {
		errs = append(errs, fmt.Errorf("OTEL_SAMPLE_RATIO: %w", err))
	}
	for _, d := range []struct {
		key, fallback string
		dst           *time.Duration
	}{
		{"CUSTOMER_DIRECTORY_TIMEOUT", "2s", &cfg.DirectoryTimeout},
		{"CUSTOMER_CACHE_TTL", "10m", &cfg.CustomerTTL},
		{"HOLD_TTL", "24h", &cfg.HoldTTL},
	} {
		if *d.dst, err = time.ParseDuration(getEnv(d.key, d.fallback)); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", d.key, err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ranges that parsing alone does not catch.
func (c Config) Validate() error {
	var errs []error
	if c.TaxRate.IsNegative() || c.TaxRate.GreaterThan(decimal.NewFromInt(1)) {
		errs = append(errs, fmt.Errorf("TAX_RATE %s outside [0,1]", c.TaxRate))
	}
	if c.DirectoryTimeout <= 0 {
		errs = append(errs, errors.New("CUSTOMER_DIRECTORY_TIMEOUT must be positive"))
	}
	if c.CustomerTTL <= 0 || c.HoldTTL <= 0 {
		errs = append(errs, errors.New("cache TTLs must be positive"))
	}
	if len(c.KafkaBrokers) > 0 && c.KafkaTopic == "" {
		errs = append(errs, errors.New("KAFKA_RECEIPTS_TOPIC is required with KAFKA_BROKERS"))
	}
	if c.SQLitePath == "" {
		errs = append(errs, errors.New("SQLITE_PATH is required"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
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

func parsePairs(s string) (map[string]string, error) {
	out := make(map[string]string)
	for _, part := range strings.Split(s, ";") {
		if part = strings.TrimSpace(part); part == "" {
			continue
		}
		key, value, ok := strings.Cut(part, "=")
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		if !ok || key == "" || value == "" {
			return nil, fmt.Errorf("entry %q is not key=value", part)
		}
		out[key] = value
	}
	return out, nil
}
