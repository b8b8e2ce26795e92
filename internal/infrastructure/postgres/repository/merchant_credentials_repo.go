package repository

import (
	"gorm.io/gorm"

	"github.com/crestline/financing-service/internal/domain"
	"github.com/crestline/financing-service/internal/infrastructure/postgres/models"
)

type MerchantCredentialsRepository struct {
	db *gorm.DB
}

func NewMerchantCredentialsRepository(db *gorm.DB) *MerchantCredentialsRepository {
	return &MerchantCredentialsRepository{db: db}
}

func (r *MerchantCredentialsRepository) ListByKind(kind domain.CredentialsKind) ([]*domain.MerchantCredentials, error) {
	var credentialModels []*models.MerchantCredentialsModel
	err := r.db.
		Where("kind = ?", kind).
		Order("priority DESC").
		Find(&credentialModels).Error
	if err != nil {
		return nil, err
	}

	credentials := make([]*domain.MerchantCredentials, len(credentialModels))
	for i, model := range credentialModels {
		credentials[i] = &domain.MerchantCredentials{
			ID:             model.ID,
			Kind:           model.Kind,
			Name:           model.Name,
			UserGroupID:    model.UserGroupID,
			Priority:       model.Priority,
			MerchantNumber: model.MerchantNumber,
		}
	}
	return credentials, nil
}
