package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ExpenseType string

const (
	ExpenseTypeSupplies  ExpenseType = "supplies"
	ExpenseTypeTransport ExpenseType = "transport"
	ExpenseTypeOverhead  ExpenseType = "overhead"
)

func ParseExpenseType(raw string) (ExpenseType, error) {
	switch ExpenseType(strings.ToLower(strings.TrimSpace(raw))) {
	case ExpenseTypeSupplies:
		return ExpenseTypeSupplies, nil
	case ExpenseTypeTransport:
		return ExpenseTypeTransport, nil
	case ExpenseTypeOverhead:
		return ExpenseTypeOverhead, nil
	default:
		return "", fmt.Errorf("expense type: unknown value %q", raw)
	}
}

func (t *ExpenseType) Scan(value interface{}) error {
	raw, err := enumString(value)
	if err != nil {
		return fmt.Errorf("expense type: %w", err)
	}
	parsed, err := ParseExpenseType(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t ExpenseType) Value() (driver.Value, error) {
	return string(t), nil
}

type PaymentSource string

const (
	PaymentSourceCompany  PaymentSource = "company"
	PaymentSourcePersonal PaymentSource = "personal"
)

func (p *PaymentSource) Scan(value interface{}) error {
	raw, err := enumString(value)
	if err != nil {
		return fmt.Errorf("payment source: %w", err)
	}
	switch PaymentSource(strings.ToLower(raw)) {
	case PaymentSourceCompany:
		*p = PaymentSourceCompany
	case PaymentSourcePersonal:
		*p = PaymentSourcePersonal
	default:
		return fmt.Errorf("payment source: unknown value %q", raw)
	}
	return nil
}

func (p PaymentSource) Value() (driver.Value, error) {
	return string(p), nil
}

type CompensationStatus string

const (
	CompensationPending     CompensationStatus = "pending"
	CompensationCompensated CompensationStatus = "compensated"
)

func (c *CompensationStatus) Scan(value interface{}) error {
	raw, err := enumString(value)
	if err != nil {
		return fmt.Errorf("compensation status: %w", err)
	}
	switch CompensationStatus(strings.ToLower(raw)) {
	case CompensationPending:
		*c = CompensationPending
	case CompensationCompensated:
		*c = CompensationCompensated
	default:
		return fmt.Errorf("compensation status: unknown value %q", raw)
	}
	return nil
}

func (c CompensationStatus) Value() (driver.Value, error) {
	return string(c), nil
}

// Expense is one actual expenditure against an object. CompensationStatus is
// set only for personal-source expenses: pending until the foreman is paid
// back, compensated afterwards, never back.
type Expense struct {
	ID                 uuid.UUID
	ObjectID           uuid.UUID
	Type               ExpenseType
	Amount             decimal.Decimal
	Description        string
	Date               time.Time
	PaymentSource      PaymentSource
	CompensationStatus *CompensationStatus
	ReceiptURL         *string
	AddedBy            uuid.UUID
	CreatedAt          time.Time
}

func (Expense) TableName() string { return "expenses" }

// Advance is a cash draw paid to a named worker against the works budget.
// Advances are tracked for visibility only and never enter the profit formula.
type Advance struct {
	ID         uuid.UUID
	ObjectID   uuid.UUID
	WorkerName string
	WorkType   string
	Amount     decimal.Decimal
	Date       time.Time
	AddedBy    uuid.UUID
	CreatedAt  time.Time
}

func (Advance) TableName() string { return "advances" }

// WorkTypeOrDefault buckets empty work types for grouping.
func (a Advance) WorkTypeOrDefault() string {
	if strings.TrimSpace(a.WorkType) == "" {
		return "не указано"
	}
	return a.WorkType
}
