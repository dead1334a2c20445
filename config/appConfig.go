package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type OzonConfig struct {
	BaseURL  string `yaml:"base_url"`
	ClientID string `yaml:"client_id"`
	ApiKey   string `yaml:"api_key"`

	RequestTimeout    time.Duration `yaml:"request_timeout"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
	Burst             int           `yaml:"burst"`

	PageLimit       int `yaml:"page_limit"`
	PriceBatchSize  int `yaml:"price_batch_size"`
	MaxStalledPages int `yaml:"max_stalled_pages"`
}

type ColumnsConfig struct {
	Code     string `yaml:"code"`
	Quantity string `yaml:"quantity"`
	Price    string `yaml:"price"`
}

type SupplierConfig struct {
	FeedURL string `yaml:"feed_url"`
	// .xls читается как книга Excel, остальное как CSV
	ArchiveEntry string `yaml:"archive_entry"`
	// Encoding и Delimiter применяются только к CSV
	Encoding        string        `yaml:"encoding"`
	Delimiter       string        `yaml:"delimiter"`
	DownloadTimeout time.Duration `yaml:"download_timeout"`
	Columns         ColumnsConfig `yaml:"columns"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

type AppConfig struct {
	Ozon        OzonConfig     `yaml:"ozon"`
	Supplier    SupplierConfig `yaml:"supplier"`
	Log         LogConfig      `yaml:"log"`
	MetricsAddr string         `yaml:"metrics_addr"`
}

func Default() *AppConfig {
	return &AppConfig{
		Ozon: OzonConfig{
			BaseURL:           "https://api-seller.ozon.ru",
			RequestTimeout:    60 * time.Second,
			RequestsPerSecond: 10,
			Burst:             1,
			PageLimit:         1000,
			PriceBatchSize:    900,
			MaxStalledPages:   3,
		},
		Supplier: SupplierConfig{
			FeedURL:         "https://timeworld.ru/upload/files/ostatki.zip",
			ArchiveEntry:    "ostatki.xls",
			Encoding:        "windows-1251",
			Delimiter:       ";",
			DownloadTimeout: 2 * time.Minute,
			Columns: ColumnsConfig{
				Code:     "Код",
				Quantity: "Количество",
				Price:    "Цена",
			},
		},
		Log: LogConfig{Level: "info"},
	}
}

// LoadConfig читает YAML поверх значений по умолчанию. Пустое имя файла — только умолчания.
func LoadConfig(filename string) (*AppConfig, error) {
	config := Default()
	if filename == "" {
		return config, nil
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(config); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode %s: %w", filename, err)
	}
	return config, nil
}

// MaxPriceBatchSize — сколько цен Seller API принимает за один запрос.
const MaxPriceBatchSize = 1000

func CheckPriceBatchSize(n int) error {
	if n <= 0 || n > MaxPriceBatchSize {
		return fmt.Errorf("must be in [1, %d], got %d", MaxPriceBatchSize, n)
	}
	return nil
}

// Validate проверяет, что заданы учётные данные и размеры пакетов в пределах API.
func (c *AppConfig) Validate() error {
	var errs []error
	if c.Ozon.ClientID == "" {
		errs = append(errs, errors.New("CLIENT_ID is not set"))
	}
	if c.Ozon.ApiKey == "" {
		errs = append(errs, errors.New("SELLER_TOKEN is not set"))
	}
	if err := CheckPriceBatchSize(c.Ozon.PriceBatchSize); err != nil {
		errs = append(errs, fmt.Errorf("price_batch_size %w", err))
	}
	if c.Ozon.PageLimit <= 0 || c.Ozon.PageLimit > 1000 {
		errs = append(errs, fmt.Errorf("page_limit must be in [1, 1000], got %d", c.Ozon.PageLimit))
	}
	if len([]rune(c.Supplier.Delimiter)) != 1 {
		errs = append(errs, fmt.Errorf("delimiter must be a single character, got %q", c.Supplier.Delimiter))
	}
	return errors.Join(errs...)
}

// Load собирает конфигурацию: файл, затем переменные окружения, затем проверка.
func Load(filename string) (*AppConfig, error) {
	config, err := LoadConfig(filename)
	if err != nil {
		return nil, err
	}
	config.ApplyEnv()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}
