package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer `yaml:"http_server"`
	Database   Database `yaml:"database"`
	PayPay     PayPay   `yaml:"paypay"`
	Stripe     Stripe   `yaml:"stripe"`
	Line       Line     `yaml:"line"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env-default:"localhost:8080"`
	Timeout     time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

type Database struct {
	Host           string `yaml:"host" env-default:"localhost"`
	Port           int    `yaml:"port" env-default:"5432"`
	User           string `yaml:"user" env-default:"postgres"`
	Password       string `yaml:"password" env:"DB_PASSWORD"`
	DBName         string `yaml:"dbname" env-default:"tablebooker"`
	SSLMode        string `yaml:"sslmode" env-default:"disable"`
	MigrationsPath string `yaml:"migrations_path" env-default:"migrations"`
}

type PayPay struct {
	APIKey     string        `env:"PAYPAY_API_KEY" env-required:"true"`
	APISecret  string        `env:"PAYPAY_API_SECRET" env-required:"true"`
	MerchantID string        `env:"PAYPAY_MERCHANT_ID" env-required:"true"`
	BaseURL    string        `yaml:"base_url" env-default:"https://stg-api.paypay.ne.jp"`
	Timeout    time.Duration `yaml:"timeout" env-default:"10s"`
}

type Stripe struct {
	SecretKey string `env:"STRIPE_SECRET_KEY" env-required:"true"`
}

type Line struct {
	ChannelSecret string        `env:"LINE_SECRET" env-required:"true"`
	ChannelToken  string        `env:"LINE_TOKEN" env-required:"true"`
	ReplyURL      string        `yaml:"reply_url" env-default:"https://api.line.me/v2/bot/message/reply"`
	Timeout       time.Duration `yaml:"timeout" env-default:"10s"`
}

func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	return &cfg
}
