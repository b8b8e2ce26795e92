package mappers

import (
	"github.com/crestline/financing-service/internal/domain"
	"github.com/crestline/financing-service/internal/infrastructure/postgres/models"
)

func ToDomainInquiry(model *models.AccountInquiryModel) *domain.AccountInquiryResult {
	result := &domain.AccountInquiryResult{
		ID:                     model.ID,
		Last4AccountNumber:     model.Last4AccountNumber,
		EncryptedAccountNumber: model.EncryptedAccountNumber,
		MainApplicantFullName:  model.MainApplicantFullName,
		JointApplicantFullName: model.JointApplicantFullName,
		CreditLimit:            model.CreditLimit,
		AvailableCredit:        model.AvailableCredit,
		CreditApplicationID:    model.CreditApplicationID,
		PrequalResponseID:      model.PrequalResponseID,
		CreatedAt:              model.CreatedAt,
	}
	if model.MainAddress != nil {
		result.MainAddress = ToDomainAddress(model.MainAddress)
	}
	if model.JointAddress != nil {
		result.JointAddress = ToDomainAddress(model.JointAddress)
	}
	return result
}

func ToGORMInquiry(result *domain.AccountInquiryResult) *models.AccountInquiryModel {
	model := &models.AccountInquiryModel{
		ID:                     result.ID,
		Last4AccountNumber:     result.Last4AccountNumber,
		EncryptedAccountNumber: result.EncryptedAccountNumber,
		MainApplicantFullName:  result.MainApplicantFullName,
		JointApplicantFullName: result.JointApplicantFullName,
		CreditLimit:            result.CreditLimit,
		AvailableCredit:        result.AvailableCredit,
		CreditApplicationID:    result.CreditApplicationID,
		PrequalResponseID:      result.PrequalResponseID,
		CreatedAt:              result.CreatedAt,
	}
	if result.MainAddress != nil {
		model.MainAddressID = &result.MainAddress.ID
	}
	if result.JointAddress != nil {
		model.JointAddressID = &result.JointAddress.ID
	}
	return model
}
