package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/crestline/financing-service/internal/domain"
	"github.com/crestline/financing-service/internal/infrastructure/postgres/mappers"
	"github.com/crestline/financing-service/internal/infrastructure/postgres/models"
)

type TransferRepository struct {
	db *gorm.DB
}

func NewTransferRepository(db *gorm.DB) *TransferRepository {
	return &TransferRepository{db: db}
}

func (r *TransferRepository) Create(transfer *domain.Transfer) error {
	return r.db.Create(mappers.ToGORMTransfer(transfer)).Error
}

// GetByMerchantReference returns the most recent transfer for the reference
// and type. Duplicate references can exist when a submit is repeated after a
// transport failure; the latest row is the authoritative one.
func (r *TransferRepository) GetByMerchantReference(reference string, transactionType domain.TransactionType) (*domain.Transfer, error) {
	var model models.TransferModel
	err := r.db.
		Where("merchant_reference = ? AND type = ?", reference, transactionType).
		Order("created_at DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTransferNotFound
		}
		return nil, err
	}
	return mappers.ToDomainTransfer(&model), nil
}

// PurgeAccountNumber nulls the ciphertext column only. The last-4 column
// stays, so the masked display form survives the purge.
func (r *TransferRepository) PurgeAccountNumber(transferID string) error {
	return r.db.Model(&models.TransferModel{}).
		Where("id = ?", transferID).
		Update("encrypted_account_number", nil).Error
}
