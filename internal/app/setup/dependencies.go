package setup

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/crestline/financing-service/internal/config"
	"github.com/crestline/financing-service/internal/domain"
	"github.com/crestline/financing-service/internal/infrastructure/fraud"
	"github.com/crestline/financing-service/internal/infrastructure/gateway"
	"github.com/crestline/financing-service/internal/infrastructure/kafka"
	"github.com/crestline/financing-service/internal/infrastructure/keysvc"
	"github.com/crestline/financing-service/internal/infrastructure/metrics"
	"github.com/crestline/financing-service/internal/infrastructure/postgres"
	"github.com/crestline/financing-service/internal/infrastructure/postgres/repository"
	"github.com/crestline/financing-service/internal/infrastructure/rediscache"
	"github.com/crestline/financing-service/internal/security"
)

type Dependencies struct {
	Config            *config.FinancingConfig
	DB                *gorm.DB
	Encryptor         domain.Encryptor
	TokenCache        *rediscache.TokenCache
	Gateway           *gateway.Client
	ApprovedPublisher *kafka.ApplicationEventPublisher
	FraudScreen       domain.FraudScreen
	Metrics           *metrics.FinancingMetrics
	Repositories      *Repositories
}

type Repositories struct {
	TransferRepo    domain.TransferRepository
	ApplicationRepo domain.CreditApplicationRepository
	InquiryRepo     domain.AccountInquiryRepository
	PrequalRepo     domain.PreQualificationRepository
	CredentialsRepo domain.MerchantCredentialsRepository
}

func InitializeDependencies() (*Dependencies, error) {
	cfg := config.MustLoad()

	db := postgres.MustInitDB(cfg)

	keys := keysvc.NewClient(cfg.KeyService.Host, cfg.KeyService.Token)
	encryptor, err := security.New(cfg.Security, keys)
	if err != nil {
		return nil, fmt.Errorf("encryptor: %w", err)
	}

	tokenCache := rediscache.NewTokenCache(cfg.RedisService.Addr, cfg.RedisService.Password, cfg.RedisService.DB)

	financingMetrics := metrics.NewFinancingMetrics()

	gatewayClient, err := gateway.NewClient(gateway.Config{
		Host:           cfg.Gateway.Host,
		CompanyID:      cfg.Gateway.CompanyID,
		EntityID:       cfg.Gateway.EntityID,
		ConsumerKey:    cfg.Gateway.ConsumerKey,
		ConsumerSecret: cfg.Gateway.ConsumerSecret,
		ClientCertPath: cfg.Gateway.ClientCertPath,
		ClientKeyPath:  cfg.Gateway.ClientKeyPath,
		RequestTimeout: cfg.Gateway.RequestTimeout,
	}, tokenCache, encryptor)
	if err != nil {
		return nil, fmt.Errorf("gateway client: %w", err)
	}
	gatewayClient.Metrics = financingMetrics

	approvedPublisher := kafka.NewApplicationEventPublisher(
		[]string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)},
		cfg.KafkaService.ApprovedTopic,
	)

	fraudScreen, err := fraud.New(cfg.Fraud)
	if err != nil {
		return nil, fmt.Errorf("fraud screen: %w", err)
	}

	repos := &Repositories{
		TransferRepo:    repository.NewTransferRepository(db),
		ApplicationRepo: repository.NewCreditApplicationRepository(db),
		InquiryRepo:     repository.NewAccountInquiryRepository(db),
		PrequalRepo:     repository.NewPreQualificationRepository(db),
		CredentialsRepo: repository.NewMerchantCredentialsRepository(db),
	}

	return &Dependencies{
		Config:            cfg,
		DB:                db,
		Encryptor:         encryptor,
		TokenCache:        tokenCache,
		Gateway:           gatewayClient,
		ApprovedPublisher: approvedPublisher,
		FraudScreen:       fraudScreen,
		Metrics:           financingMetrics,
		Repositories:      repos,
	}, nil
}
