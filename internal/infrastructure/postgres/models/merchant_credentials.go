package models

import (
	"time"

	"github.com/crestline/financing-service/internal/domain"
)

type MerchantCredentialsModel struct {
	ID             string                 `gorm:"primaryKey;type:uuid"`
	Kind           domain.CredentialsKind `gorm:"index:idx_credentials_kind"`
	Name           string
	UserGroupID    string
	Priority       int
	MerchantNumber string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
