// Package config provides the structures and loader for the service
// configuration, read from a YAML file named by CONFIG_PATH with environment
// overrides.
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the top-level settings structure.
type Config struct {
	Env                     string `yaml:"env" env:"ENV" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING"`
	MigrationsPath          string `yaml:"migrations_path" env-default:"./migrations"`
	RedisConnection         `yaml:"redis_connection"`
	HTTPServer              `yaml:"http_server"`
	JWTToken                `yaml:"jwttoken"`
	SMTP                    `yaml:"smtp"`
	Blob                    `yaml:"blob"`
	SetupLink               `yaml:"setup_link"`
}

// HTTPServer holds the listener settings.
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"5s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection holds the cache connection settings.
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env-default:"localhost:6379"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env-default:"3s"`
}

// JWTToken holds the session token settings.
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"24h"`
}

// SMTP holds the outgoing mail settings.
type SMTP struct {
	Host     string `yaml:"host" env:"SMTP_HOST"`
	Port     string `yaml:"port" env:"SMTP_PORT" env-default:"587"`
	User     string `yaml:"user" env:"SMTP_USER"`
	Password string `yaml:"password" env:"SMTP_PASSWORD"`
}

// Blob holds the S3-compatible object store settings for thumbnail images.
type Blob struct {
	Endpoint  string `yaml:"endpoint" env:"BLOB_ENDPOINT"`
	Region    string `yaml:"region" env-default:"auto"`
	Bucket    string `yaml:"bucket" env-default:"thumbnails"`
	AccessKey string `yaml:"access_key" env:"BLOB_ACCESS_KEY"`
	SecretKey string `yaml:"secret_key" env:"BLOB_SECRET_KEY"`
	BaseURL   string `yaml:"base_url" env:"BLOB_BASE_URL"`
}

// SetupLink holds the values embedded in password setup emails. The defaults
// are the fallback literals used when nothing is configured.
type SetupLink struct {
	BaseURL string `yaml:"base_url" env:"SETUP_LINK_BASE_URL" env-default:"http://localhost:3000"`
	Subject string `yaml:"subject" env-default:"Set up your password - account created"`
}

// MustLoad loads the config from the file named by CONFIG_PATH and exits the
// process when it is missing or malformed.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}
