package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Log          Logger       `mapstructure:"logger"`
	API          API          `mapstructure:"api"`
	YahooFinance YahooFinance `mapstructure:"yahoo_finance"`
	Cache        Cache        `mapstructure:"cache"`
	Dashboard    Dashboard    `mapstructure:"dashboard"`
}

type Logger struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

type API struct {
	Port int `mapstructure:"port"`
}

type YahooFinance struct {
	ChartBaseURL string        `mapstructure:"chart_base_url"`
	QuoteBaseURL string        `mapstructure:"quote_base_url"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

type Cache struct {
	DefaultExpiration time.Duration `mapstructure:"default_expiration"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
	QuoteExpiration   time.Duration `mapstructure:"quote_expiration"`
	SeriesExpiration  time.Duration `mapstructure:"series_expiration"`
}

type Dashboard struct {
	Tickers             []string `mapstructure:"tickers"`
	MovingAverageWindow int      `mapstructure:"moving_average_window"`
	RawTableRows        int      `mapstructure:"raw_table_rows"`
}

func setDefaults() {
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.encoding", "json")
	viper.SetDefault("api.port", 8080)
	viper.SetDefault("yahoo_finance.chart_base_url", "https://query1.finance.yahoo.com/v8/finance/chart")
	viper.SetDefault("yahoo_finance.quote_base_url", "https://query1.finance.yahoo.com/v7/finance/quote")
	viper.SetDefault("yahoo_finance.timeout", 15*time.Second)
	viper.SetDefault("cache.default_expiration", 5*time.Minute)
	viper.SetDefault("cache.cleanup_interval", 10*time.Minute)
	viper.SetDefault("cache.quote_expiration", 30*time.Second)
	viper.SetDefault("cache.series_expiration", 5*time.Minute)
	viper.SetDefault("dashboard.tickers", []string{
		"AAPL", "MSFT", "GOOGL", "AMZN", "TSLA", "META", "NVDA",
		"JPM", "V", "JNJ", "WMT", "NFLX", "DIS", "T", "KO", "BAC",
	})
	viper.SetDefault("dashboard.moving_average_window", 50)
	viper.SetDefault("dashboard.raw_table_rows", 20)
}

func Load() (*Config, error) {
	// A missing .env file is fine, env vars may come from the environment itself.
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
