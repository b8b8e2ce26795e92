package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/crestline/financing-service/internal/security"
)

type FinancingConfig struct {
	Env           string `yaml:"env"`
	MetricsServer `yaml:"metrics_server"`
	FinancingDB   `yaml:"financing_db"`
	LogConfig     `yaml:"log_config"`
	Gateway       `yaml:"gateway"`
	KeyService    `yaml:"key_service"`
	Security      security.Config `yaml:"security"`
	RedisService  `yaml:"redis-service"`
	KafkaService  `yaml:"kafka-service"`
	LedgerService `yaml:"ledger-service"`
	AuthService   `yaml:"auth-service"`
	Fraud         `yaml:"fraud"`
	Payment       `yaml:"payment"`
}

type MetricsServer struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type FinancingDB struct {
	Dsn            string `yaml:"dsn"`
	MigrationsPath string `yaml:"migrations_path"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	LogOutput string `yaml:"log_output"`
}

type Gateway struct {
	Host           string        `yaml:"host"`
	CompanyID      string        `yaml:"company_id"`
	EntityID       string        `yaml:"entity_id"`
	ConsumerKey    string        `yaml:"consumer_key" env:"GATEWAY_CONSUMER_KEY"`
	ConsumerSecret string        `yaml:"consumer_secret" env:"GATEWAY_CONSUMER_SECRET"`
	ClientCertPath string        `yaml:"client_cert_path"`
	ClientKeyPath  string        `yaml:"client_key_path"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

type KeyService struct {
	Host  string `yaml:"host"`
	Token string `yaml:"token" env:"KEY_SERVICE_TOKEN"`
}

type RedisService struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db"`
}

type KafkaService struct {
	Host          string `yaml:"host"`
	Port          string `yaml:"port"`
	ApprovedTopic string `yaml:"approved_topic"`
}

type Fraud struct {
	Strategy  string  `yaml:"strategy"`
	Host      string  `yaml:"host"`
	Threshold float64 `yaml:"threshold"`
}

type LedgerService struct {
	Host string `yaml:"host"`
}

type AuthService struct {
	Host string `yaml:"host"`
}

type Payment struct {
	MaxAttempts int          `yaml:"max_attempts"`
	Plans       []PlanConfig `yaml:"plans"`
}

type PlanConfig struct {
	PlanNumber string  `yaml:"plan_number"`
	Name       string  `yaml:"name"`
	Months     int     `yaml:"months"`
	AnnualRate float64 `yaml:"annual_rate"`
}

func MustLoad() *FinancingConfig {

	// Processing env config variable and file
	configPath := os.Getenv("FINANCING_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("FINANCING_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	// YAML to struct object
	var cfg FinancingConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
