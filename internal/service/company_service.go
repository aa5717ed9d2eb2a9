package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/vxtzo/telegram-construction-bot/internal/model"
	"github.com/vxtzo/telegram-construction-bot/internal/repository"
)

type CompanyService struct {
	company *repository.CompanyRepository
}

func NewCompanyService(company *repository.CompanyRepository) *CompanyService {
	return &CompanyService{company: company}
}

type AddCompanyExpenseInput struct {
	Category    string
	Amount      decimal.Decimal
	Description *string
	Date        time.Time
	AddedBy     *uuid.UUID
}

func (s *CompanyService) AddOneTime(ctx context.Context, input AddCompanyExpenseInput) (*model.CompanyExpense, error) {
	if strings.TrimSpace(input.Category) == "" {
		return nil, fmt.Errorf("%w: category is required", ErrInvalidInput)
	}
	if !input.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	if input.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	expense := &model.CompanyExpense{
		ID:          uuid.New(),
		Category:    strings.TrimSpace(input.Category),
		Amount:      input.Amount,
		Description: input.Description,
		Date:        dateOnly(input.Date),
		AddedBy:     input.AddedBy,
	}
	if err := s.company.CreateOneTime(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

type AddRecurringExpenseInput struct {
	Category    string
	Amount      decimal.Decimal
	DayOfMonth  int
	StartMonth  int
	StartYear   int
	EndMonth    *int
	EndYear     *int
	Description *string
}

func (s *CompanyService) AddRecurring(ctx context.Context, input AddRecurringExpenseInput) (*model.CompanyRecurringExpense, error) {
	if strings.TrimSpace(input.Category) == "" {
		return nil, fmt.Errorf("%w: category is required", ErrInvalidInput)
	}
	if !input.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	if input.DayOfMonth < 1 || input.DayOfMonth > 31 {
		return nil, fmt.Errorf("%w: day of month must be between 1 and 31", ErrInvalidInput)
	}
	if input.StartMonth < 1 || input.StartMonth > 12 {
		return nil, fmt.Errorf("%w: start month must be between 1 and 12", ErrInvalidInput)
	}
	if (input.EndMonth == nil) != (input.EndYear == nil) {
		return nil, fmt.Errorf("%w: end month and end year must be set together", ErrInvalidInput)
	}
	if input.EndMonth != nil {
		if *input.EndMonth < 1 || *input.EndMonth > 12 {
			return nil, fmt.Errorf("%w: end month must be between 1 and 12", ErrInvalidInput)
		}
		if *input.EndYear*12+*input.EndMonth < input.StartYear*12+input.StartMonth {
			return nil, fmt.Errorf("%w: end must not precede start", ErrInvalidInput)
		}
	}

	template := &model.CompanyRecurringExpense{
		ID:          uuid.New(),
		Category:    strings.TrimSpace(input.Category),
		Amount:      input.Amount,
		DayOfMonth:  input.DayOfMonth,
		StartMonth:  input.StartMonth,
		StartYear:   input.StartYear,
		EndMonth:    input.EndMonth,
		EndYear:     input.EndYear,
		Description: input.Description,
		IsActive:    true,
	}
	if err := s.company.CreateRecurring(ctx, template); err != nil {
		return nil, err
	}
	return template, nil
}

// RecurringExpenseView is a recurring template together with its next
// materialized payment date, nil when the schedule already ended.
type RecurringExpenseView struct {
	model.CompanyRecurringExpense
	NextDue *time.Time
}

func (s *CompanyService) ListRecurring(ctx context.Context, asOf time.Time) ([]RecurringExpenseView, error) {
	templates, err := s.company.ActiveRecurring(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]RecurringExpenseView, 0, len(templates))
	for _, tpl := range templates {
		view := RecurringExpenseView{CompanyRecurringExpense: tpl}
		if due, ok := tpl.NextOccurrence(asOf); ok {
			view.NextDue = &due
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *CompanyService) DeactivateRecurring(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return fmt.Errorf("%w: template id is required", ErrInvalidInput)
	}
	if err := s.company.DeactivateRecurring(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return err
	}
	return nil
}
