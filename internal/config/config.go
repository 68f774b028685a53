// Package config provides runtime configuration values for a report run.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Rate sources.
const (
	RateSourceCoinGecko = "coingecko"
	RateSourceBinance   = "binance"
)

// Output formats.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Config holds all app configuration
type Config struct {
	// Marketplace
	MarketplaceURL string
	AuctionType    string
	BreedCounts    []int
	From           int
	Size           int

	// Exchange rate
	RateSource   string
	CoinGeckoURL string
	Asset        string
	VsCurrency   string
	BinanceWSURL string
	TickerSymbol string

	// Output
	Output       string
	FiatSymbol   string
	CryptoSymbol string

	// App settings
	HTTPTimeout time.Duration
	LogLevel    string
	LogFormat   string
}

// Load reads configuration from the environment, after loading the optional
// .env file named by AXIE_ENV_FILE.
func Load() (Config, error) {
	envFile := getEnv("AXIE_ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	breedCounts, err := getEnvAsInts("AXIE_BREED_COUNTS", []int{4, 5, 6, 7})
	if err != nil {
		return Config{}, err
	}
	from, err := getEnvAsInt("AXIE_FROM", 0)
	if err != nil {
		return Config{}, err
	}
	size, err := getEnvAsInt("AXIE_SIZE", 10)
	if err != nil {
		return Config{}, err
	}
	timeout, err := getEnvAsDuration("AXIE_HTTP_TIMEOUT", 0)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		// Marketplace
		MarketplaceURL: getEnv("AXIE_MARKETPLACE_URL", ""),
		AuctionType:    getEnv("AXIE_AUCTION_TYPE", "Sale"),
		BreedCounts:    breedCounts,
		From:           from,
		Size:           size,

		// Exchange rate
		RateSource:   getEnv("AXIE_RATE_SOURCE", RateSourceCoinGecko),
		CoinGeckoURL: getEnv("AXIE_COINGECKO_URL", ""),
		Asset:        getEnv("AXIE_ASSET", "ethereum"),
		VsCurrency:   getEnv("AXIE_VS_CURRENCY", "usd"),
		BinanceWSURL: getEnv("AXIE_BINANCE_WS_URL", ""),
		TickerSymbol: getEnv("AXIE_TICKER_SYMBOL", "ETHUSDT"),

		// Output
		Output:       getEnv("AXIE_OUTPUT", OutputText),
		FiatSymbol:   getEnv("AXIE_FIAT_SYMBOL", "USD"),
		CryptoSymbol: getEnv("AXIE_CRYPTO_SYMBOL", "ETH"),

		// App settings
		HTTPTimeout: timeout,
		LogLevel:    getEnv("AXIE_LOG_LEVEL", "info"),
		LogFormat:   getEnv("AXIE_LOG_FORMAT", "text"),
	}
	cfg.Normalize()

	return cfg, nil
}

// Normalize lower-cases the enumerated settings. It must run again after
// flags have overridden them.
func (c *Config) Normalize() {
	c.RateSource = strings.ToLower(strings.TrimSpace(c.RateSource))
	c.Output = strings.ToLower(strings.TrimSpace(c.Output))
}

// Validate reports settings a run cannot start with.
func (c Config) Validate() error {
	switch c.RateSource {
	case RateSourceCoinGecko, RateSourceBinance:
	default:
		return fmt.Errorf("unknown rate source %q", c.RateSource)
	}
	switch c.Output {
	case OutputText, OutputJSON:
	default:
		return fmt.Errorf("unknown output format %q", c.Output)
	}
	if c.Size <= 0 {
		return fmt.Errorf("size must be positive, got %d", c.Size)
	}
	if c.From < 0 {
		return fmt.Errorf("from must not be negative, got %d", c.From)
	}
	return nil
}

// Helper functions for parsing environment variables
func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) (int, error) {
	valueStr := strings.TrimSpace(getEnv(key, ""))
	if valueStr == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, valueStr, err)
	}
	return value, nil
}

// getEnvAsDuration requires a unit, e.g. "15s"; a bare "5" is rejected.
func getEnvAsDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	valueStr := strings.TrimSpace(getEnv(key, ""))
	if valueStr == "" {
		return defaultVal, nil
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, valueStr, err)
	}
	return value, nil
}

func getEnvAsInts(key string, defaultVal []int) ([]int, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultVal, nil
	}
	parts := strings.Split(valStr, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid %s entry %q: %w", key, p, err)
		}
		out = append(out, n)
	}
	return out, nil
}
