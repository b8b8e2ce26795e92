package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/crestline/financing-service/internal/domain"
	"github.com/crestline/financing-service/internal/infrastructure/postgres/mappers"
	"github.com/crestline/financing-service/internal/infrastructure/postgres/models"
)

type CreditApplicationRepository struct {
	db *gorm.DB
}

func NewCreditApplicationRepository(db *gorm.DB) *CreditApplicationRepository {
	return &CreditApplicationRepository{db: db}
}

// Create inserts the application with its applicants and their addresses in
// one transaction; gorm materializes the associations in dependency order.
func (r *CreditApplicationRepository) Create(application *domain.CreditApplication) error {
	model := mappers.ToGORMApplication(application)
	return r.db.Create(model).Error
}

func (r *CreditApplicationRepository) GetByID(applicationID string) (*domain.CreditApplication, error) {
	var model models.CreditApplicationModel
	err := r.db.
		Preload("Applicants").
		Preload("Applicants.Address").
		First(&model, "id = ?", applicationID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, err
	}
	return mappers.ToDomainApplication(&model), nil
}
