package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ObjectStatus string

const (
	ObjectStatusActive    ObjectStatus = "active"
	ObjectStatusCompleted ObjectStatus = "completed"
)

// Scan normalizes legacy rows that stored enum values in mixed case.
func (s *ObjectStatus) Scan(value interface{}) error {
	raw, err := enumString(value)
	if err != nil {
		return fmt.Errorf("object status: %w", err)
	}
	switch ObjectStatus(strings.ToLower(raw)) {
	case ObjectStatusActive:
		*s = ObjectStatusActive
	case ObjectStatusCompleted:
		*s = ObjectStatusCompleted
	default:
		return fmt.Errorf("object status: unknown value %q", raw)
	}
	return nil
}

func (s ObjectStatus) Value() (driver.Value, error) {
	return string(s), nil
}

// ConstructionObject is one construction project with its fixed estimate and
// received payments. Estimate fields are the budget; actual spend accumulates
// in the child Expense rows, except the S3 cladding line whose real negotiated
// cost is entered manually into ActualS3Discount.
type ConstructionObject struct {
	ID          uuid.UUID
	Name        string
	Address     *string
	ForemanName *string
	StartDate   *time.Time
	EndDate     *time.Time
	Status      ObjectStatus

	Prepayment   decimal.Decimal
	FinalPayment decimal.Decimal

	EstimateS3        decimal.Decimal
	EstimateWorks     decimal.Decimal
	EstimateSupplies  decimal.Decimal
	EstimateOverhead  decimal.Decimal
	EstimateTransport decimal.Decimal

	ActualS3Discount decimal.Decimal

	CreatedBy   uuid.UUID
	CreatedAt   time.Time
	CompletedAt *time.Time

	Expenses []Expense `gorm:"-"`
	Advances []Advance `gorm:"-"`
}

func (ConstructionObject) TableName() string { return "objects" }

func enumString(value interface{}) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case nil:
		return "", fmt.Errorf("null value")
	default:
		return "", fmt.Errorf("unsupported type %T", value)
	}
}
