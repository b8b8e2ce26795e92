package mappers

import (
	"github.com/crestline/financing-service/internal/domain"
	"github.com/crestline/financing-service/internal/infrastructure/postgres/models"
)

func ToDomainTransfer(model *models.TransferModel) *domain.Transfer {
	return &domain.Transfer{
		ID:                     model.ID,
		UserID:                 model.UserID,
		MerchantNumber:         model.MerchantNumber,
		MerchantReference:      model.MerchantReference,
		Last4AccountNumber:     model.Last4AccountNumber,
		EncryptedAccountNumber: model.EncryptedAccountNumber,
		Amount:                 model.Amount,
		Type:                   model.Type,
		TicketNumber:           model.TicketNumber,
		PlanNumber:             model.PlanNumber,
		AuthorizationNumber:    model.AuthorizationNumber,
		Status:                 model.Status,
		Message:                model.Message,
		Disclosure:             model.Disclosure,
		CreatedAt:              model.CreatedAt,
		UpdatedAt:              model.UpdatedAt,
	}
}

func ToGORMTransfer(transfer *domain.Transfer) *models.TransferModel {
	return &models.TransferModel{
		ID:                     transfer.ID,
		UserID:                 transfer.UserID,
		MerchantNumber:         transfer.MerchantNumber,
		MerchantReference:      transfer.MerchantReference,
		Last4AccountNumber:     transfer.Last4AccountNumber,
		EncryptedAccountNumber: transfer.EncryptedAccountNumber,
		Amount:                 transfer.Amount,
		Type:                   transfer.Type,
		TicketNumber:           transfer.TicketNumber,
		PlanNumber:             transfer.PlanNumber,
		AuthorizationNumber:    transfer.AuthorizationNumber,
		Status:                 transfer.Status,
		Message:                transfer.Message,
		Disclosure:             transfer.Disclosure,
		CreatedAt:              transfer.CreatedAt,
		UpdatedAt:              transfer.UpdatedAt,
	}
}
