package setup

import (
	"github.com/shopspring/decimal"

	"github.com/crestline/financing-service/internal/infrastructure/authsvc"
	"github.com/crestline/financing-service/internal/infrastructure/connectors"
	"github.com/crestline/financing-service/internal/infrastructure/ledger"
	"github.com/crestline/financing-service/internal/usecase"
)

type UseCases struct {
	PaymentUsecase  usecase.PaymentUsecase
	EstimateUsecase usecase.EstimateUsecase
	TransferUsecase usecase.TransferUsecase
	PrequalUsecase  usecase.PrequalUsecase

	Transactions *connectors.TransactionConnector
	Applications *connectors.CreditApplicationConnector
	Accounts     *connectors.AccountConnector
	Prequals     *connectors.PrequalConnector
}

func InitializeUseCases(deps *Dependencies) (*UseCases, error) {
	groups := authsvc.NewHTTPGroupResolver(deps.Config.AuthService.Host)
	credentialsSelector := usecase.NewDefaultCredentialsSelector(deps.Repositories.CredentialsRepo, groups)

	transactions := connectors.NewTransactionConnector(
		deps.Gateway,
		deps.Repositories.TransferRepo,
		credentialsSelector,
		deps.Encryptor,
	)
	applications := connectors.NewCreditApplicationConnector(
		deps.Gateway,
		deps.Repositories.ApplicationRepo,
		deps.Repositories.InquiryRepo,
		credentialsSelector,
		deps.Encryptor,
		deps.ApprovedPublisher,
	)
	accounts := connectors.NewAccountConnector(
		deps.Gateway,
		deps.Repositories.InquiryRepo,
		credentialsSelector,
		deps.Encryptor,
	)
	prequals := connectors.NewPrequalConnector(
		deps.Gateway,
		deps.Repositories.PrequalRepo,
		credentialsSelector,
	)
	transactions.Metrics = deps.Metrics
	applications.Metrics = deps.Metrics
	prequals.Metrics = deps.Metrics

	ledgerClient := ledger.NewHTTPLedgerClient(deps.Config.LedgerService.Host)

	paymentUsecase := usecase.NewDefaultPaymentUsecase(
		transactions,
		deps.FraudScreen,
		ledgerClient,
		deps.Metrics,
		deps.Config.Payment.MaxAttempts,
	)

	plans := make([]usecase.FinancingPlan, 0, len(deps.Config.Payment.Plans))
	for _, p := range deps.Config.Payment.Plans {
		plans = append(plans, usecase.FinancingPlan{
			PlanNumber: p.PlanNumber,
			Name:       p.Name,
			Months:     p.Months,
			AnnualRate: decimal.NewFromFloat(p.AnnualRate),
		})
	}

	return &UseCases{
		PaymentUsecase:  paymentUsecase,
		EstimateUsecase: usecase.NewDefaultEstimateUsecase(plans),
		TransferUsecase: usecase.NewDefaultTransferUsecase(deps.Repositories.TransferRepo, deps.Encryptor),
		PrequalUsecase:  usecase.NewDefaultPrequalUsecase(deps.Repositories.PrequalRepo),

		Transactions: transactions,
		Applications: applications,
		Accounts:     accounts,
		Prequals:     prequals,
	}, nil
}
