package models

import (
	"time"

	"github.com/crestline/financing-service/internal/domain"
	"github.com/shopspring/decimal"
)

type PrequalRequestModel struct {
	ID             string `gorm:"primaryKey"`
	EntryPoint     string
	FirstName      string
	MiddleInitial  string
	LastName       string
	AddressID      string       `gorm:"type:uuid"`
	Address        AddressModel `gorm:"foreignKey:AddressID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	MerchantNumber string
	CreatedAt      time.Time
}

type PrequalResponseModel struct {
	ID               string `gorm:"primaryKey"`
	RequestID        string `gorm:"index:idx_prequal_response_request"`
	Status           domain.PrequalStatus
	CreditLimit      decimal.Decimal `gorm:"type:numeric(12,2)"`
	ResponseID       string          `gorm:"index:idx_prequal_provider_response"`
	ApplicationURL   string
	CustomerResponse domain.CustomerResponse
	CustomerOrderID  string
	ReportedAt       *time.Time
	CreatedAt        time.Time
}

type PrequalSDKResultModel struct {
	ID                string `gorm:"primaryKey;type:uuid"`
	PrequalResponseID string `gorm:"uniqueIndex:idx_sdk_result_response"`
	ApplicationID     string
	FirstName         string
	LastName          string
	ApplicationStatus domain.ApplicationStatus
	CreatedAt         time.Time
}
