package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"discount_etl/internal/domain"
)

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Schedule ScheduleConfig `yaml:"schedule"`
	ETL      ETLConfig      `yaml:"etl"`
	HTTP     HTTPConfig     `yaml:"http"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq"`
	Tracing  TracingConfig  `yaml:"tracing"`
	LogLevel string         `yaml:"log_level"`
}

type DatabaseConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	DBName          string        `yaml:"dbname"`
	SSLMode         string        `yaml:"sslmode"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

type CatalogConfig struct {
	BaseURL     string        `yaml:"base_url"`
	Timeout     time.Duration `yaml:"timeout"`
	MaxPages    int           `yaml:"max_pages"`
	Retry       RetryConfig   `yaml:"retry"`
	Categories  []string      `yaml:"categories"`
	Shops       []string      `yaml:"shops"`
	FetchByShop bool          `yaml:"fetch_by_shop"`
}

// RetryConfig: a scope is attempted 1+MaxRetries times, Delay apart.
type RetryConfig struct {
	MaxRetries int           `yaml:"max_retries"`
	Delay      time.Duration `yaml:"delay"`
}

type ScheduleConfig struct {
	RunTimes     []string      `yaml:"run_times"`
	StartupDelay time.Duration `yaml:"startup_delay"`
	// DisableStartupRun turns off the one-shot run after start.
	DisableStartupRun bool `yaml:"disable_startup_run"`
}

type ETLConfig struct {
	Concurrency int    `yaml:"concurrency"`
	Timezone    string `yaml:"timezone"`
}

// Location resolves the configured time zone used for "today".
func (e ETLConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(e.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", e.Timezone, err)
	}
	return loc, nil
}

type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

// RabbitMQConfig is optional; an empty URL disables run notifications.
type RabbitMQConfig struct {
	URL        string `yaml:"url"`
	Exchange   string `yaml:"exchange"`
	RoutingKey string `yaml:"routing_key"`
	QueueName  string `yaml:"queue_name"`
}

type TracingConfig struct {
	Endpoint    string `yaml:"endpoint"`
	ServiceName string `yaml:"service_name"`
}

// DefaultCategories are the food categories of the catalog source.
var DefaultCategories = []string{
	"alkohol",
	"konzervy",
	"lahudky",
	"maso-drubez-a-ryby",
	"mlecne-vyrobky-a-vejce",
	"mrazene-a-instantni-potraviny",
	"nealko-napoje",
	"ovoce-a-zelenina",
	"pecivo",
	"sladkosti-a-slane-snacky",
	"vareni-a-peceni",
}

var DefaultShops = []string{"albert", "lidl", "kaufland", "billa", "penny", "globus"}

func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	cfg := defaultConfig()
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Scopes returns the fetch units of a full run.
func (c *Config) Scopes() []domain.Scope {
	if c.Catalog.FetchByShop {
		scopes := make([]domain.Scope, 0, len(c.Catalog.Shops))
		for _, shop := range c.Catalog.Shops {
			scopes = append(scopes, domain.Scope{Kind: domain.ScopeShop, ID: shop})
		}
		return scopes
	}

	scopes := make([]domain.Scope, 0, len(c.Catalog.Categories))
	for _, cat := range c.Catalog.Categories {
		scopes = append(scopes, domain.Scope{Kind: domain.ScopeCategory, ID: cat})
	}
	return scopes
}

// defaultConfig holds the numeric defaults. They are set before unmarshalling
// so that only missing keys fall back and an explicit 0 is kept.
func defaultConfig() Config {
	return Config{
		Database: DatabaseConfig{
			Port:            5432,
			MaxOpenConns:    10,
			MaxIdleConns:    2,
			ConnMaxLifetime: 30 * time.Minute,
		},
		Catalog: CatalogConfig{
			Timeout:  300 * time.Second,
			MaxPages: 5,
			Retry: RetryConfig{
				MaxRetries: 3,
				Delay:      60 * time.Second,
			},
		},
		Schedule: ScheduleConfig{
			StartupDelay: 30 * time.Second,
		},
		ETL: ETLConfig{
			Concurrency: 3,
		},
	}
}

// setDefaults fills empty strings and lists, which ${ENV} expansion of an
// unset variable also produces.
func (c *Config) setDefaults() {
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Catalog.BaseURL == "" {
		c.Catalog.BaseURL = "http://localhost:8000"
	}
	if len(c.Catalog.Categories) == 0 {
		c.Catalog.Categories = DefaultCategories
	}
	if len(c.Catalog.Shops) == 0 {
		c.Catalog.Shops = DefaultShops
	}
	if len(c.Schedule.RunTimes) == 0 {
		c.Schedule.RunTimes = []string{"00:00", "12:00"}
	}
	if c.ETL.Timezone == "" {
		c.ETL.Timezone = "Europe/Prague"
	}
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":8080"
	}
	if c.RabbitMQ.Exchange == "" {
		c.RabbitMQ.Exchange = "discount_etl"
	}
	if c.RabbitMQ.RoutingKey == "" {
		c.RabbitMQ.RoutingKey = "etl.runs"
	}
	if c.RabbitMQ.QueueName == "" {
		c.RabbitMQ.QueueName = "etl_run_reports"
	}
	if c.Tracing.ServiceName == "" {
		c.Tracing.ServiceName = "discount-etl"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

func (c *Config) validate() error {
	if c.Catalog.MaxPages < 0 || c.Catalog.MaxPages > 10 {
		return fmt.Errorf("catalog.max_pages must be between 0 and 10, got %d", c.Catalog.MaxPages)
	}
	if c.Catalog.Retry.MaxRetries < 0 {
		return fmt.Errorf("catalog.retry.max_retries must not be negative")
	}
	if c.Catalog.Timeout <= 0 {
		return fmt.Errorf("catalog.timeout must be positive, got %s", c.Catalog.Timeout)
	}
	if c.Schedule.StartupDelay < 0 {
		return fmt.Errorf("schedule.startup_delay must not be negative")
	}
	if c.ETL.Concurrency < 1 {
		return fmt.Errorf("etl.concurrency must be positive, got %d", c.ETL.Concurrency)
	}
	for _, rt := range c.Schedule.RunTimes {
		if _, err := time.Parse("15:04", rt); err != nil {
			return fmt.Errorf("schedule.run_times: invalid time %q", rt)
		}
	}
	if _, err := c.ETL.Location(); err != nil {
		return err
	}
	return nil
}
