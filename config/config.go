package config

import (
	"os"
	"strings"
)

// ApplyEnv переопределяет значения из файла переменными окружения.
func (c *AppConfig) ApplyEnv() {
	c.Ozon.ClientID = getEnv("CLIENT_ID", c.Ozon.ClientID)
	c.Ozon.ApiKey = getEnv("SELLER_TOKEN", c.Ozon.ApiKey)
	c.Ozon.BaseURL = getEnv("OZON_API_URL", c.Ozon.BaseURL)
	c.Supplier.FeedURL = getEnv("SUPPLIER_FEED_URL", c.Supplier.FeedURL)
	c.MetricsAddr = getEnv("METRICS_ADDR", c.MetricsAddr)
	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)

	if strings.EqualFold(getEnv("APP_ENV", ""), "development") {
		c.Log.Development = true
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
