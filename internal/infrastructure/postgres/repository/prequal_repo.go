package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/crestline/financing-service/internal/domain"
	"github.com/crestline/financing-service/internal/infrastructure/postgres/mappers"
	"github.com/crestline/financing-service/internal/infrastructure/postgres/models"
)

type PreQualificationRepository struct {
	db *gorm.DB
}

func NewPreQualificationRepository(db *gorm.DB) *PreQualificationRepository {
	return &PreQualificationRepository{db: db}
}

func (r *PreQualificationRepository) CreateRequest(request *domain.PreQualificationRequest) error {
	return r.db.Create(mappers.ToGORMPrequalRequest(request)).Error
}

func (r *PreQualificationRepository) CreateResponse(response *domain.PreQualificationResponse) error {
	return r.db.Create(mappers.ToGORMPrequalResponse(response)).Error
}

func (r *PreQualificationRepository) GetResponseByID(responseID string) (*domain.PreQualificationResponse, error) {
	var model models.PrequalResponseModel
	if err := r.db.First(&model, "id = ?", responseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPrequalResponseNotFound
		}
		return nil, err
	}
	return mappers.ToDomainPrequalResponse(&model), nil
}

func (r *PreQualificationRepository) RecordCustomerResponse(responseID string, customerResponse domain.CustomerResponse) error {
	return r.db.Model(&models.PrequalResponseModel{}).
		Where("id = ?", responseID).
		Update("customer_response", customerResponse).Error
}

func (r *PreQualificationRepository) LinkCustomerOrder(responseID, orderID string, reportedAt time.Time) error {
	return r.db.Model(&models.PrequalResponseModel{}).
		Where("id = ?", responseID).
		Updates(map[string]any{
			"customer_order_id": orderID,
			"reported_at":       reportedAt,
		}).Error
}

func (r *PreQualificationRepository) CreateSDKResult(result *domain.PreQualificationSDKApplicationResult) error {
	return r.db.Create(mappers.ToGORMPrequalSDKResult(result)).Error
}
