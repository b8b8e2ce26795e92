package mappers

import (
	"github.com/google/uuid"

	"github.com/crestline/financing-service/internal/domain"
	"github.com/crestline/financing-service/internal/infrastructure/postgres/models"
)

const (
	applicantRoleMain  = "main"
	applicantRoleJoint = "joint"
)

func ToDomainApplication(model *models.CreditApplicationModel) *domain.CreditApplication {
	app := &domain.CreditApplication{
		ID:                   model.ID,
		Variant:              model.Variant,
		TransactionCode:      model.TransactionCode,
		RequestedCreditLimit: model.RequestedCreditLimit,
		Language:             model.Language,
		Salesperson:          model.Salesperson,
		Status:               model.Status,
		SubmittingUserID:     model.SubmittingUserID,
		OwnerUserID:          model.OwnerUserID,
		SourceIP:             model.SourceIP,
		CreatedAt:            model.CreatedAt,
		UpdatedAt:            model.UpdatedAt,
	}
	for i := range model.Applicants {
		applicant := toDomainApplicant(&model.Applicants[i])
		switch model.Applicants[i].Role {
		case applicantRoleJoint:
			app.JointApplicant = &applicant
		default:
			app.MainApplicant = applicant
		}
	}
	return app
}

func ToGORMApplication(app *domain.CreditApplication) *models.CreditApplicationModel {
	model := &models.CreditApplicationModel{
		ID:                   app.ID,
		Variant:              app.Variant,
		TransactionCode:      app.TransactionCode,
		RequestedCreditLimit: app.RequestedCreditLimit,
		Language:             app.Language,
		Salesperson:          app.Salesperson,
		Status:               app.Status,
		SubmittingUserID:     app.SubmittingUserID,
		OwnerUserID:          app.OwnerUserID,
		SourceIP:             app.SourceIP,
		CreatedAt:            app.CreatedAt,
		UpdatedAt:            app.UpdatedAt,
	}
	model.Applicants = append(model.Applicants, toGORMApplicant(&app.MainApplicant, app.ID, applicantRoleMain))
	if app.JointApplicant != nil {
		model.Applicants = append(model.Applicants, toGORMApplicant(app.JointApplicant, app.ID, applicantRoleJoint))
	}
	return model
}

func toDomainApplicant(model *models.ApplicantModel) domain.Applicant {
	return domain.Applicant{
		FirstName:     model.FirstName,
		MiddleInitial: model.MiddleInitial,
		LastName:      model.LastName,
		MaskedSSN:     model.MaskedSSN,
		AnnualIncome:  model.AnnualIncome,
		Email:         model.Email,
		HomePhone:     model.HomePhone,
		MobilePhone:   model.MobilePhone,
		EmployerName:  model.EmployerName,
		EmployerPhone: model.EmployerPhone,
		Address:       *ToDomainAddress(&model.Address),
	}
}

func toGORMApplicant(applicant *domain.Applicant, applicationID, role string) models.ApplicantModel {
	addressID := applicant.Address.ID
	if addressID == "" {
		addressID = uuid.NewString()
	}
	model := models.ApplicantModel{
		ID:            uuid.NewString(),
		ApplicationID: applicationID,
		Role:          role,
		FirstName:     applicant.FirstName,
		MiddleInitial: applicant.MiddleInitial,
		LastName:      applicant.LastName,
		MaskedSSN:     applicant.MaskedSSN,
		AnnualIncome:  applicant.AnnualIncome,
		Email:         applicant.Email,
		HomePhone:     applicant.HomePhone,
		MobilePhone:   applicant.MobilePhone,
		EmployerName:  applicant.EmployerName,
		EmployerPhone: applicant.EmployerPhone,
		AddressID:     addressID,
	}
	model.Address = *ToGORMAddress(&applicant.Address)
	model.Address.ID = addressID
	return model
}
