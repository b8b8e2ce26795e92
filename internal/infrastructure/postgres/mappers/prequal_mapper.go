package mappers

import (
	"github.com/google/uuid"

	"github.com/crestline/financing-service/internal/domain"
	"github.com/crestline/financing-service/internal/infrastructure/postgres/models"
)

func ToDomainPrequalRequest(model *models.PrequalRequestModel) *domain.PreQualificationRequest {
	return &domain.PreQualificationRequest{
		ID:             model.ID,
		EntryPoint:     model.EntryPoint,
		FirstName:      model.FirstName,
		MiddleInitial:  model.MiddleInitial,
		LastName:       model.LastName,
		Address:        *ToDomainAddress(&model.Address),
		MerchantNumber: model.MerchantNumber,
		CreatedAt:      model.CreatedAt,
	}
}

func ToGORMPrequalRequest(request *domain.PreQualificationRequest) *models.PrequalRequestModel {
	addressID := request.Address.ID
	if addressID == "" {
		addressID = uuid.NewString()
	}
	model := &models.PrequalRequestModel{
		ID:             request.ID,
		EntryPoint:     request.EntryPoint,
		FirstName:      request.FirstName,
		MiddleInitial:  request.MiddleInitial,
		LastName:       request.LastName,
		AddressID:      addressID,
		MerchantNumber: request.MerchantNumber,
		CreatedAt:      request.CreatedAt,
	}
	model.Address = *ToGORMAddress(&request.Address)
	model.Address.ID = addressID
	return model
}

func ToDomainPrequalResponse(model *models.PrequalResponseModel) *domain.PreQualificationResponse {
	return &domain.PreQualificationResponse{
		ID:               model.ID,
		RequestID:        model.RequestID,
		Status:           model.Status,
		CreditLimit:      model.CreditLimit,
		ResponseID:       model.ResponseID,
		ApplicationURL:   model.ApplicationURL,
		CustomerResponse: model.CustomerResponse,
		CustomerOrderID:  model.CustomerOrderID,
		ReportedAt:       model.ReportedAt,
		CreatedAt:        model.CreatedAt,
	}
}

func ToGORMPrequalResponse(response *domain.PreQualificationResponse) *models.PrequalResponseModel {
	return &models.PrequalResponseModel{
		ID:               response.ID,
		RequestID:        response.RequestID,
		Status:           response.Status,
		CreditLimit:      response.CreditLimit,
		ResponseID:       response.ResponseID,
		ApplicationURL:   response.ApplicationURL,
		CustomerResponse: response.CustomerResponse,
		CustomerOrderID:  response.CustomerOrderID,
		ReportedAt:       response.ReportedAt,
		CreatedAt:        response.CreatedAt,
	}
}

func ToGORMPrequalSDKResult(result *domain.PreQualificationSDKApplicationResult) *models.PrequalSDKResultModel {
	return &models.PrequalSDKResultModel{
		ID:                result.ID,
		PrequalResponseID: result.PrequalResponseID,
		ApplicationID:     result.ApplicationID,
		FirstName:         result.FirstName,
		LastName:          result.LastName,
		ApplicationStatus: result.ApplicationStatus,
		CreatedAt:         result.CreatedAt,
	}
}
