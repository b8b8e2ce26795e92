package repository

import (
	"gorm.io/gorm"

	"github.com/crestline/financing-service/internal/domain"
	"github.com/crestline/financing-service/internal/infrastructure/postgres/mappers"
)

type AccountInquiryRepository struct {
	db *gorm.DB
}

func NewAccountInquiryRepository(db *gorm.DB) *AccountInquiryRepository {
	return &AccountInquiryRepository{db: db}
}

func (r *AccountInquiryRepository) CreateAddress(address *domain.Address) error {
	return r.db.Create(mappers.ToGORMAddress(address)).Error
}

func (r *AccountInquiryRepository) Create(result *domain.AccountInquiryResult) error {
	return r.db.Create(mappers.ToGORMInquiry(result)).Error
}
