package mappers

import (
	"github.com/crestline/financing-service/internal/domain"
	"github.com/crestline/financing-service/internal/infrastructure/postgres/models"
)

func ToDomainAddress(model *models.AddressModel) *domain.Address {
	return &domain.Address{
		ID:       model.ID,
		Line1:    model.Line1,
		Line2:    model.Line2,
		City:     model.City,
		Region:   model.Region,
		PostCode: model.PostCode,
		Country:  model.Country,
	}
}

func ToGORMAddress(address *domain.Address) *models.AddressModel {
	return &models.AddressModel{
		ID:       address.ID,
		Line1:    address.Line1,
		Line2:    address.Line2,
		City:     address.City,
		Region:   address.Region,
		PostCode: address.PostCode,
		Country:  address.Country,
	}
}
