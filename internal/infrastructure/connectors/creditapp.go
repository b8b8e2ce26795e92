package connectors

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/crestline/financing-service/internal/domain"
	"github.com/crestline/financing-service/internal/infrastructure/gateway"
	"github.com/crestline/financing-service/internal/infrastructure/metrics"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const applicationPath = "/credit/applications"

// Provider application status codes.
var applicationStatusCodes = map[string]domain.ApplicationStatus{
	"E0": domain.ApplicationStatusApproved,
	"E1": domain.ApplicationStatusPending,
	"E2": domain.ApplicationStatusFormatError,
	"E3": domain.ApplicationStatusDenied,
	"E4": domain.ApplicationStatusProviderError,
}

type CreditApplicationConnector struct {
	gateway      Gateway
	applications domain.CreditApplicationRepository
	inquiries    domain.AccountInquiryRepository
	credentials  domain.CredentialsSelector
	encryptor    domain.Encryptor
	events       domain.EventPublisher
	validate     *validator.Validate

	// Metrics is optional; a nil value disables instrumentation.
	Metrics *metrics.FinancingMetrics
}

func NewCreditApplicationConnector(
	gw Gateway,
	applications domain.CreditApplicationRepository,
	inquiries domain.AccountInquiryRepository,
	credentials domain.CredentialsSelector,
	encryptor domain.Encryptor,
	events domain.EventPublisher) *CreditApplicationConnector {

	return &CreditApplicationConnector{
		gateway:      gw,
		applications: applications,
		inquiries:    inquiries,
		credentials:  credentials,
		encryptor:    encryptor,
		events:       events,
		validate:     validator.New(),
	}
}

type applicationPayload struct {
	TransactionCode      string            `json:"transaction_code"`
	Region               string            `json:"region"`
	ApplicationType      string            `json:"application_type"`
	RequestedCreditLimit string            `json:"requested_credit_limit,omitempty"`
	LanguagePreference   string            `json:"language_preference,omitempty"`
	Salesperson          string            `json:"salesperson,omitempty"`
	MainApplicant        applicantPayload  `json:"main_applicant"`
	JointApplicant       *applicantPayload `json:"joint_applicant,omitempty"`
}

type applicantPayload struct {
	FirstName     string         `json:"first_name"`
	MiddleInitial string         `json:"middle_initial,omitempty"`
	LastName      string         `json:"last_name"`
	SSN           string         `json:"ssn"`
	DateOfBirth   string         `json:"date_of_birth"`
	AnnualIncome  string         `json:"annual_income"`
	Email         string         `json:"email,omitempty"`
	HomePhone     string         `json:"home_phone"`
	MobilePhone   string         `json:"mobile_phone,omitempty"`
	EmployerName  string         `json:"employer_name,omitempty"`
	EmployerPhone string         `json:"employer_phone,omitempty"`
	Address       addressPayload `json:"address"`
}

type addressPayload struct {
	Line1    string `json:"address_line_1"`
	Line2    string `json:"address_line_2,omitempty"`
	City     string `json:"city"`
	Region   string `json:"region"`
	PostCode string `json:"postal_code"`
	Country  string `json:"country"`
}

type applicationResponse struct {
	Status          string `json:"status"`
	AccountNumber   string `json:"account_number"`
	CreditLimit     string `json:"credit_limit"`
	AvailableCredit string `json:"available_credit"`
	Message         string `json:"message"`
}

// ApplicationResult bundles the persisted application with the account
// snapshot recorded for an approved outcome.
type ApplicationResult struct {
	Application *domain.CreditApplication
	Inquiry     *domain.AccountInquiryResult
}

// Submit sends one credit-line application. The application row is persisted
// on every attempt with its status set exactly once. Approved outcomes
// record an account inquiry snapshot and publish an approval event; Pending
// comes back as *domain.CreditApplicationPendingError carrying the partial
// snapshot; everything else as *domain.CreditApplicationDeniedError.
func (c *CreditApplicationConnector) Submit(ctx context.Context, input *domain.CreditApplicationSubmission) (*ApplicationResult, error) {
	if err := c.validateSubmission(input); err != nil {
		return nil, err
	}

	creds, err := c.credentials.Select(domain.CredentialsAPI, input.SubmittingUserID)
	if err != nil {
		return nil, err
	}

	payload := buildApplicationPayload(input)
	app := applicationFromSubmission(input)

	var out applicationResponse
	callErr := c.gateway.Do(ctx, http.MethodPost, applicationPath,
		gateway.RequestOptions{MerchantNumber: creds.MerchantNumber},
		payload, &out)
	if callErr != nil {
		app.Status = applicationFailureStatus(callErr)
		c.observeApplication(app)
		if err := c.applications.Create(app); err != nil {
			slog.Error("failed to record failed application", "application_id", app.ID, "error", err.Error())
		}
		return nil, callErr
	}

	app.Status = mapApplicationStatus(out.Status)
	c.observeApplication(app)
	if err := c.applications.Create(app); err != nil {
		return nil, fmt.Errorf("record application: %w", err)
	}

	switch app.Status {
	case domain.ApplicationStatusApproved:
		inquiry, err := c.recordApprovedSnapshot(app, &out)
		if err != nil {
			return nil, err
		}
		c.publishApproved(app, inquiry)
		return &ApplicationResult{Application: app, Inquiry: inquiry}, nil

	case domain.ApplicationStatusPending:
		return nil, &domain.CreditApplicationPendingError{
			Application: app,
			Inquiry:     partialSnapshot(app, &out),
		}

	default:
		return nil, &domain.CreditApplicationDeniedError{Status: app.Status, Message: out.Message}
	}
}

func (c *CreditApplicationConnector) validateSubmission(input *domain.CreditApplicationSubmission) error {
	if err := c.validate.Struct(input); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			out := make([]domain.FieldError, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				out = append(out, domain.FieldError{
					Field:   fe.Namespace(),
					Message: "failed validation rule " + fe.Tag(),
				})
			}
			return &domain.ValidationError{Errors: out}
		}
		return err
	}

	if input.Variant.HasJoint() && input.JointApplicant == nil {
		return &domain.ValidationError{Errors: []domain.FieldError{
			{Field: "JointApplicant", Message: "required for joint application variants"},
		}}
	}
	if !input.Variant.HasJoint() && input.JointApplicant != nil {
		return &domain.ValidationError{Errors: []domain.FieldError{
			{Field: "JointApplicant", Message: "not allowed for individual application variants"},
		}}
	}
	return nil
}

func buildApplicationPayload(input *domain.CreditApplicationSubmission) *applicationPayload {
	payload := &applicationPayload{
		TransactionCode:    input.TransactionCode,
		Region:             variantRegion(input.Variant),
		ApplicationType:    variantType(input.Variant),
		LanguagePreference: input.Language,
		Salesperson:        input.Salesperson,
		MainApplicant:      buildApplicantPayload(&input.MainApplicant),
	}
	if !input.RequestedCreditLimit.IsZero() {
		payload.RequestedCreditLimit = input.RequestedCreditLimit.StringFixed(2)
	}
	if input.JointApplicant != nil {
		joint := buildApplicantPayload(input.JointApplicant)
		payload.JointApplicant = &joint
	}
	return payload
}

func buildApplicantPayload(a *domain.ApplicantInput) applicantPayload {
	return applicantPayload{
		FirstName:     a.FirstName,
		MiddleInitial: a.MiddleInitial,
		LastName:      a.LastName,
		SSN:           domain.DigitsOnly(a.SSN),
		DateOfBirth:   a.DateOfBirth,
		AnnualIncome:  a.AnnualIncome.StringFixed(2),
		Email:         a.Email,
		HomePhone:     domain.DigitsOnly(a.HomePhone),
		MobilePhone:   domain.DigitsOnly(a.MobilePhone),
		EmployerName:  a.EmployerName,
		EmployerPhone: domain.DigitsOnly(a.EmployerPhone),
		Address: addressPayload{
			Line1:    a.Address.Line1,
			Line2:    a.Address.Line2,
			City:     a.Address.City,
			Region:   a.Address.Region,
			PostCode: a.Address.PostCode,
			Country:  a.Address.Country,
		},
	}
}

// applicationFromSubmission builds the persisted record: SSN masked, date of
// birth deliberately discarded after the one-time provider call.
func applicationFromSubmission(input *domain.CreditApplicationSubmission) *domain.CreditApplication {
	app := &domain.CreditApplication{
		ID:                   uuid.NewString(),
		Variant:              input.Variant,
		TransactionCode:      input.TransactionCode,
		RequestedCreditLimit: input.RequestedCreditLimit,
		Language:             input.Language,
		Salesperson:          input.Salesperson,
		MainApplicant:        applicantFromInput(&input.MainApplicant),
		SubmittingUserID:     input.SubmittingUserID,
		OwnerUserID:          input.OwnerUserID,
		SourceIP:             input.SourceIP,
		CreatedAt:            time.Now(),
	}
	if input.JointApplicant != nil {
		joint := applicantFromInput(input.JointApplicant)
		app.JointApplicant = &joint
	}
	return app
}

func applicantFromInput(a *domain.ApplicantInput) domain.Applicant {
	return domain.Applicant{
		FirstName:     a.FirstName,
		MiddleInitial: a.MiddleInitial,
		LastName:      a.LastName,
		MaskedSSN:     domain.MaskSSN(a.SSN),
		AnnualIncome:  a.AnnualIncome,
		Email:         a.Email,
		HomePhone:     domain.DigitsOnly(a.HomePhone),
		MobilePhone:   domain.DigitsOnly(a.MobilePhone),
		EmployerName:  a.EmployerName,
		EmployerPhone: domain.DigitsOnly(a.EmployerPhone),
		Address: domain.Address{
			ID:       uuid.NewString(),
			Line1:    a.Address.Line1,
			Line2:    a.Address.Line2,
			City:     a.Address.City,
			Region:   a.Address.Region,
			PostCode: a.Address.PostCode,
			Country:  a.Address.Country,
		},
	}
}

func (c *CreditApplicationConnector) observeApplication(app *domain.CreditApplication) {
	if c.Metrics != nil {
		c.Metrics.RecordApplication(string(app.Variant), string(app.Status))
	}
}

func (c *CreditApplicationConnector) recordApprovedSnapshot(app *domain.CreditApplication, out *applicationResponse) (*domain.AccountInquiryResult, error) {
	encryptedAccount, err := c.encryptor.Encrypt(out.AccountNumber)
	if err != nil {
		return nil, fmt.Errorf("encrypt account number: %w", err)
	}
	inquiry := partialSnapshot(app, out)
	inquiry.Last4AccountNumber = domain.Last4(out.AccountNumber)
	inquiry.EncryptedAccountNumber = encryptedAccount
	if err := c.inquiries.Create(inquiry); err != nil {
		return nil, fmt.Errorf("record inquiry snapshot: %w", err)
	}
	return inquiry, nil
}

func partialSnapshot(app *domain.CreditApplication, out *applicationResponse) *domain.AccountInquiryResult {
	inquiry := &domain.AccountInquiryResult{
		ID:                    uuid.NewString(),
		MainApplicantFullName: fullName(app.MainApplicant),
		CreditLimit:           parseDecimal(out.CreditLimit),
		AvailableCredit:       parseDecimal(out.AvailableCredit),
		CreditApplicationID:   app.ID,
		CreatedAt:             time.Now(),
	}
	if app.JointApplicant != nil {
		inquiry.JointApplicantFullName = fullName(*app.JointApplicant)
	}
	return inquiry
}

func (c *CreditApplicationConnector) publishApproved(app *domain.CreditApplication, inquiry *domain.AccountInquiryResult) {
	event := domain.ApplicationApprovedEvent{
		ApplicationID:      app.ID,
		OwnerUserID:        app.OwnerUserID,
		Last4AccountNumber: inquiry.Last4AccountNumber,
		CreditLimit:        inquiry.CreditLimit,
		ApprovedAt:         time.Now(),
	}
	if err := c.events.PublishApplicationApproved(event); err != nil {
		slog.Error("failed to publish application approved event",
			"application_id", app.ID, "error", err.Error())
	}
}

func mapApplicationStatus(code string) domain.ApplicationStatus {
	if status, ok := applicationStatusCodes[code]; ok {
		return status
	}
	return domain.ApplicationStatusProviderError
}

func applicationFailureStatus(err error) domain.ApplicationStatus {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		return domain.ApplicationStatusFormatError
	}
	return domain.ApplicationStatusProviderError
}

func variantRegion(v domain.ApplicationVariant) string {
	switch v {
	case domain.VariantCAIndividual, domain.VariantCAJoint:
		return "CA"
	default:
		return "US"
	}
}

func variantType(v domain.ApplicationVariant) string {
	if v.HasJoint() {
		return "JOINT"
	}
	return "INDIVIDUAL"
}

func fullName(a domain.Applicant) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{a.FirstName, a.MiddleInitial, a.LastName} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}
