package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	DB       *DBconfig       `yaml:"db"`
	RabbitMq *RabbitMqconfig `yaml:"rabbitmq"`
	Srv      *Serviceconfig  `yaml:"services"`
	App      *Appconfig      `yaml:"app"`
	Log      *Loggerconfig   `yaml:"logger"`
}

type DBconfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

type RabbitMqconfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	VHost    string `yaml:"vhost"`
}

type Serviceconfig struct {
	AuthServicePort     string `yaml:"auth_service"`
	TripServicePort     string `yaml:"trip_service"`
	LocationServicePort string `yaml:"location_service"`
}

type Appconfig struct {
	JwtSecret    string `yaml:"jwt_secret"`
	AppURL       string `yaml:"app_url"`
	MapsAPIKey   string `yaml:"maps_api_key"`
	ResendAPIKey string `yaml:"resend_api_key"`
	EmailFrom    string `yaml:"email_from"`
	CORSOrigin   string `yaml:"cors_origin"`
}

type Loggerconfig struct {
	Level string `yaml:"level"`
}

// New reads configuration from environment variables, falling back to
// development defaults.
func New() (*Config, error) {
	getEnv := func(key, def string) string {
		val := os.Getenv(key)
		if val == "" {
			return def
		}
		return val
	}

	getEnvInt := func(key string, def int) int {
		valStr := os.Getenv(key)
		if valStr == "" {
			return def
		}
		val, err := strconv.Atoi(valStr)
		if err != nil {
			return def
		}
		return val
	}

	cnf := &Config{
		DB: &DBconfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "trackmate_user"),
			Password: getEnv("DB_PASSWORD", "trackmate_pass"),
			Database: getEnv("DB_NAME", "trackmate_db"),
		},
		RabbitMq: &RabbitMqconfig{
			Host:     getEnv("RABBITMQ_HOST", "localhost"),
			Port:     getEnvInt("RABBITMQ_PORT", 5672),
			User:     getEnv("RABBITMQ_USER", "guest"),
			Password: getEnv("RABBITMQ_PASSWORD", "guest"),
			VHost:    getEnv("RABBITMQ_VHOST", ""),
		},
		Srv: &Serviceconfig{
			AuthServicePort:     getEnv("AUTH_SERVICE_PORT", "3010"),
			TripServicePort:     getEnv("TRIP_SERVICE_PORT", "3000"),
			LocationServicePort: getEnv("LOCATION_SERVICE_PORT", "3001"),
		},
		App: &Appconfig{
			JwtSecret:    getEnv("JWT_SECRET", "supersecret"),
			AppURL:       getEnv("APP_URL", "http://localhost:3000"),
			MapsAPIKey:   getEnv("GOOGLE_MAPS_API_KEY", ""),
			ResendAPIKey: getEnv("RESEND_API_KEY", ""),
			EmailFrom:    getEnv("EMAIL_FROM", "trips@trackmate.dev"),
			CORSOrigin:   getEnv("CORS_ORIGIN", "*"),
		},
		Log: &Loggerconfig{
			Level: getEnv("LOG_LEVEL", "INFO"),
		},
	}

	return cnf, nil
}

// NewFromYAML loads configuration from a YAML file. Fields absent from the
// file keep the environment defaults from New.
func NewFromYAML(path string) (*Config, error) {
	cnf, err := New()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cnf); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return cnf, nil
}
