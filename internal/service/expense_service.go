package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/vxtzo/telegram-construction-bot/internal/finance"
	"github.com/vxtzo/telegram-construction-bot/internal/model"
	"github.com/vxtzo/telegram-construction-bot/internal/repository"
)

type ExpenseService struct {
	objects  *repository.ObjectRepository
	expenses *repository.ExpenseRepository
}

func NewExpenseService(objects *repository.ObjectRepository, expenses *repository.ExpenseRepository) *ExpenseService {
	return &ExpenseService{objects: objects, expenses: expenses}
}

type AddExpenseInput struct {
	ObjectID      uuid.UUID
	Type          model.ExpenseType
	Amount        decimal.Decimal
	Description   string
	Date          time.Time
	PaymentSource model.PaymentSource
	ReceiptURL    *string
	AddedBy       uuid.UUID
}

// AddExpense records one expenditure. A personal-source expense starts in the
// pending compensation state; a company-source expense carries no state.
func (s *ExpenseService) AddExpense(ctx context.Context, input AddExpenseInput) (*model.Expense, error) {
	if input.ObjectID == uuid.Nil {
		return nil, fmt.Errorf("%w: object id is required", ErrInvalidInput)
	}
	if !input.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, fmt.Errorf("%w: description is required", ErrInvalidInput)
	}
	if input.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if _, err := s.objects.GetByID(ctx, input.ObjectID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	expense := &model.Expense{
		ID:            uuid.New(),
		ObjectID:      input.ObjectID,
		Type:          input.Type,
		Amount:        input.Amount,
		Description:   input.Description,
		Date:          dateOnly(input.Date),
		PaymentSource: input.PaymentSource,
		ReceiptURL:    input.ReceiptURL,
		AddedBy:       input.AddedBy,
	}
	if input.PaymentSource == model.PaymentSourcePersonal {
		pending := model.CompensationPending
		expense.CompensationStatus = &pending
	}

	if err := s.expenses.Create(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// MarkCompensated moves a pending personal expense to compensated. The
// transition is validated against the loaded row and applied as a conditional
// update, so a concurrent duplicate call fails instead of double-applying.
func (s *ExpenseService) MarkCompensated(ctx context.Context, expenseID uuid.UUID) (*model.Expense, error) {
	expense, err := s.expenses.GetByID(ctx, expenseID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := finance.ValidateCompensation(*expense); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	updated, err := s.expenses.MarkCompensated(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if !updated {
		// Lost the race to another caller.
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, finance.ErrAlreadyCompensated)
	}

	compensated := model.CompensationCompensated
	expense.CompensationStatus = &compensated
	return expense, nil
}

type AddAdvanceInput struct {
	ObjectID   uuid.UUID
	WorkerName string
	WorkType   string
	Amount     decimal.Decimal
	Date       time.Time
	AddedBy    uuid.UUID
}

func (s *ExpenseService) AddAdvance(ctx context.Context, input AddAdvanceInput) (*model.Advance, error) {
	if input.ObjectID == uuid.Nil {
		return nil, fmt.Errorf("%w: object id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(input.WorkerName) == "" {
		return nil, fmt.Errorf("%w: worker name is required", ErrInvalidInput)
	}
	if !input.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	if input.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	advance := &model.Advance{
		ID:         uuid.New(),
		ObjectID:   input.ObjectID,
		WorkerName: strings.TrimSpace(input.WorkerName),
		WorkType:   strings.TrimSpace(input.WorkType),
		Amount:     input.Amount,
		Date:       dateOnly(input.Date),
		AddedBy:    input.AddedBy,
	}
	if err := s.expenses.CreateAdvance(ctx, advance); err != nil {
		return nil, err
	}
	return advance, nil
}
