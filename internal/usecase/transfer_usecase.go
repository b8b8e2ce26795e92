package usecase

import (
	"fmt"

	"github.com/crestline/financing-service/internal/domain"
)

type TransferUsecase interface {
	// GetByMerchantReference serves reconciliation lookups: the most recent
	// transfer for a reference and transaction type.
	GetByMerchantReference(reference string, transactionType domain.TransactionType) (*domain.Transfer, error)
	// RevealAccountNumber decrypts the stored account number; ok=false after
	// a purge or under a rotated-away key, in which case the masked form is
	// all that remains.
	RevealAccountNumber(transfer *domain.Transfer) (string, bool)
	// PurgeAccountNumber is the right-to-forget operation: the ciphertext is
	// nulled, the masked display form survives.
	PurgeAccountNumber(transferID string) error
}

type DefaultTransferUsecase struct {
	Transfers domain.TransferRepository
	Encryptor domain.Encryptor
}

func NewDefaultTransferUsecase(transfers domain.TransferRepository, encryptor domain.Encryptor) *DefaultTransferUsecase {
	return &DefaultTransferUsecase{
		Transfers: transfers,
		Encryptor: encryptor,
	}
}

func (uc *DefaultTransferUsecase) GetByMerchantReference(reference string, transactionType domain.TransactionType) (*domain.Transfer, error) {
	transfer, err := uc.Transfers.GetByMerchantReference(reference, transactionType)
	if err != nil {
		return nil, fmt.Errorf("lookup transfer %s/%s: %w", reference, transactionType, err)
	}
	return transfer, nil
}

func (uc *DefaultTransferUsecase) RevealAccountNumber(transfer *domain.Transfer) (string, bool) {
	if len(transfer.EncryptedAccountNumber) == 0 {
		return "", false
	}
	return uc.Encryptor.Decrypt(transfer.EncryptedAccountNumber)
}

func (uc *DefaultTransferUsecase) PurgeAccountNumber(transferID string) error {
	return uc.Transfers.PurgeAccountNumber(transferID)
}
