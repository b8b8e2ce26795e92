package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/crestline/financing-service/internal/domain"
)

type PrequalUsecase interface {
	GetResponse(responseID string) (*domain.PreQualificationResponse, error)
	// RecordCustomerResponse stores what the shopper did with the offer.
	RecordCustomerResponse(responseID string, customerResponse domain.CustomerResponse) error
	// LinkCustomerOrder ties the offer to the order it materialized into.
	LinkCustomerOrder(responseID, orderID string) error
	// RecordSDKResult stores the outcome of an application completed through
	// the provider SDK after the offer was shown.
	RecordSDKResult(responseID, applicationID, firstName, lastName string, status domain.ApplicationStatus) error
}

type DefaultPrequalUsecase struct {
	Prequals domain.PreQualificationRepository
}

func NewDefaultPrequalUsecase(prequals domain.PreQualificationRepository) *DefaultPrequalUsecase {
	return &DefaultPrequalUsecase{Prequals: prequals}
}

func (uc *DefaultPrequalUsecase) GetResponse(responseID string) (*domain.PreQualificationResponse, error) {
	return uc.Prequals.GetResponseByID(responseID)
}

func (uc *DefaultPrequalUsecase) RecordCustomerResponse(responseID string, customerResponse domain.CustomerResponse) error {
	if !domain.ValidCustomerResponse(customerResponse) {
		return fmt.Errorf("invalid customer response %q", customerResponse)
	}
	if _, err := uc.Prequals.GetResponseByID(responseID); err != nil {
		return err
	}
	return uc.Prequals.RecordCustomerResponse(responseID, customerResponse)
}

func (uc *DefaultPrequalUsecase) LinkCustomerOrder(responseID, orderID string) error {
	if _, err := uc.Prequals.GetResponseByID(responseID); err != nil {
		return err
	}
	return uc.Prequals.LinkCustomerOrder(responseID, orderID, time.Now())
}

func (uc *DefaultPrequalUsecase) RecordSDKResult(responseID, applicationID, firstName, lastName string, status domain.ApplicationStatus) error {
	if _, err := uc.Prequals.GetResponseByID(responseID); err != nil {
		return err
	}
	return uc.Prequals.CreateSDKResult(&domain.PreQualificationSDKApplicationResult{
		ID:                uuid.NewString(),
		PrequalResponseID: responseID,
		ApplicationID:     applicationID,
		FirstName:         firstName,
		LastName:          lastName,
		ApplicationStatus: status,
		CreatedAt:         time.Now(),
	})
}
