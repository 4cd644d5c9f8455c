package config

import (
	"os"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

type Config struct {
	CatalogURL           string `envconfig:"CATALOG_URL"            default:"https://dummyjson.com"`
	Port                 string `envconfig:"PORT"                   default:":8080"`
	LogLevel             string `envconfig:"LOG_LEVEL"              default:"info"`
	PageSize             int    `envconfig:"PAGE_SIZE"              default:"12"`
	ClientTimeoutSeconds int    `envconfig:"CLIENT_TIMEOUT_SECONDS" default:"5"`
	CartDatabaseURL      string `envconfig:"CART_DATABASE_URL"`
	CartStoreName        string `envconfig:"CART_STORE_NAME"        default:"cart-storage"`
}

var (
	config Config
	once   sync.Once
)

func LoadConfig(logger *logrus.Logger) *Config {
	once.Do(func() {
		err := godotenv.Load()
		if err != nil && !os.IsNotExist(err) {
			logger.Warnf("Error loading .env file (but continuing): %v", err)
		} else if err == nil {
			logger.Info("Loaded configuration from .env file")
		}

		err = envconfig.Process("", &config)
		if err != nil {
			logger.Fatalf("Failed to process configuration from environment variables: %v", err)
		}

		if config.PageSize <= 0 {
			logger.Warnf("Invalid PAGE_SIZE %d, using default 12", config.PageSize)
			config.PageSize = 12
		}

		logger.Infof("Configuration loaded: Port=%s, CatalogURL=%s, PageSize=%d, LogLevel=%s",
			config.Port, config.CatalogURL, config.PageSize, config.LogLevel)
		if config.CartDatabaseURL != "" {
			logger.Info("Configuration loaded: cart snapshot persistence enabled")
		}
	})
	return &config
}
