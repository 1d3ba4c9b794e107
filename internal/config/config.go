package config

import (
	"crypto/tls"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/feebridge/feebridge/internal/types"
)

type Configuration struct {
	Deployment  DeploymentConfig  `validate:"required"`
	Server      ServerConfig      `validate:"required"`
	Logging     LoggingConfig     `validate:"required"`
	ClickHouse  ClickHouseConfig  `validate:"required"`
	RecordStore RecordStoreConfig `validate:"required"`
	Webhook     WebhookConfig
	Search      SearchConfig
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required"`
}

type ServerConfig struct {
	Address string `validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

type ClickHouseConfig struct {
	Address  string
	TLS      bool
	Username string
	Password string
	Database string
	Table    string
}

// RecordStoreConfig holds connection details for the external record store.
// All fields except Timeout are required: the service must not start with a
// partially configured store rather than fail every webhook at runtime.
type RecordStoreConfig struct {
	BaseURL  string `validate:"required"`
	Database string `validate:"required"`
	Username string `validate:"required"`
	Password string `validate:"required"`
	Timeout  time.Duration
}

// WebhookConfig holds the gateway shared secret. An empty secret is not a
// startup error; it makes every signature verification fail instead.
type WebhookConfig struct {
	Secret string
}

type SearchConfig struct {
	DefaultSchool  string
	MaxResults     int
	ReloadInterval time.Duration
}

func NewConfig() (*Configuration, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/feebridge")

	// Set up environment variables support
	v.SetEnvPrefix("FEEBRIDGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	v.SetDefault("deployment.mode", types.ModeAPI)
	v.SetDefault("server.address", ":8080")
	v.SetDefault("logging.level", types.LogLevelInfo)
	v.SetDefault("recordstore.timeout", 30*time.Second)
	v.SetDefault("search.defaultschool", "Janakpuri")
	v.SetDefault("search.maxresults", 50)
	v.SetDefault("search.reloadinterval", 15*time.Minute)

	// Read config file if exists
	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	} else {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// GetDefaultConfig returns a default configuration for local development
// and tests
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Server:     ServerConfig{Address: ":8080"},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		RecordStore: RecordStoreConfig{
			BaseURL:  "https://records.test",
			Database: "fees",
			Username: "local",
			Password: "local",
			Timeout:  30 * time.Second,
		},
		Webhook: WebhookConfig{Secret: "test_webhook_secret"},
		Search: SearchConfig{
			DefaultSchool:  "Janakpuri",
			MaxResults:     50,
			ReloadInterval: 15 * time.Minute,
		},
	}
}

func (c ClickHouseConfig) GetClientOptions() *clickhouse.Options {
	options := &clickhouse.Options{
		Addr: []string{c.Address},
		Auth: clickhouse.Auth{
			Database: c.Database,
			Username: c.Username,
			Password: c.Password,
		},
		ConnOpenStrategy: clickhouse.ConnOpenInOrder,
	}
	if c.TLS {
		options.TLS = &tls.Config{}
	}
	return options
}
