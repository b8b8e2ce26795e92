package postgres

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/crestline/financing-service/internal/config"
	"github.com/crestline/financing-service/internal/infrastructure/postgres/models"
)

func MustInitDB(cfg *config.FinancingConfig) *gorm.DB {
	dsn := cfg.FinancingDB.Dsn
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	db.AutoMigrate(
		&models.AddressModel{},
		&models.TransferModel{},
		&models.ApplicantModel{},
		&models.CreditApplicationModel{},
		&models.AccountInquiryModel{},
		&models.PrequalRequestModel{},
		&models.PrequalResponseModel{},
		&models.PrequalSDKResultModel{},
		&models.MerchantCredentialsModel{},
	)

	return db
}
