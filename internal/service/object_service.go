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

type ObjectService struct {
	objects *repository.ObjectRepository
}

func NewObjectService(objects *repository.ObjectRepository) *ObjectService {
	return &ObjectService{objects: objects}
}

type CreateObjectInput struct {
	Name        string
	Address     *string
	ForemanName *string
	StartDate   *time.Time
	EndDate     *time.Time

	Prepayment   decimal.Decimal
	FinalPayment decimal.Decimal

	EstimateS3        decimal.Decimal
	EstimateWorks     decimal.Decimal
	EstimateSupplies  decimal.Decimal
	EstimateOverhead  decimal.Decimal
	EstimateTransport decimal.Decimal
	ActualS3Discount  decimal.Decimal

	CreatedBy uuid.UUID
}

// CreateObject registers a new construction object with its estimate fixed.
// All monetary fields must be non-negative; later spend accumulates in the
// expense records, not here.
func (s *ObjectService) CreateObject(ctx context.Context, input CreateObjectInput) (*model.ConstructionObject, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	for _, amount := range []decimal.Decimal{
		input.Prepayment, input.FinalPayment,
		input.EstimateS3, input.EstimateWorks, input.EstimateSupplies,
		input.EstimateOverhead, input.EstimateTransport, input.ActualS3Discount,
	} {
		if amount.IsNegative() {
			return nil, fmt.Errorf("%w: monetary fields must be non-negative", ErrInvalidInput)
		}
	}

	obj := &model.ConstructionObject{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(input.Name),
		Address:     input.Address,
		ForemanName: input.ForemanName,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Status:      model.ObjectStatusActive,

		Prepayment:   input.Prepayment,
		FinalPayment: input.FinalPayment,

		EstimateS3:        input.EstimateS3,
		EstimateWorks:     input.EstimateWorks,
		EstimateSupplies:  input.EstimateSupplies,
		EstimateOverhead:  input.EstimateOverhead,
		EstimateTransport: input.EstimateTransport,
		ActualS3Discount:  input.ActualS3Discount,

		CreatedBy: input.CreatedBy,
	}
	if err := s.objects.Create(ctx, obj); err != nil {
		return nil, err
	}
	return obj, nil
}

func (s *ObjectService) ListByStatus(ctx context.Context, status model.ObjectStatus) ([]model.ConstructionObject, error) {
	return s.objects.ListByStatus(ctx, status)
}

func (s *ObjectService) Complete(ctx context.Context, id uuid.UUID) error {
	return s.setStatus(ctx, id, model.ObjectStatusCompleted)
}

func (s *ObjectService) Reopen(ctx context.Context, id uuid.UUID) error {
	return s.setStatus(ctx, id, model.ObjectStatusActive)
}

func (s *ObjectService) setStatus(ctx context.Context, id uuid.UUID, status model.ObjectStatus) error {
	if id == uuid.Nil {
		return fmt.Errorf("%w: object id is required", ErrInvalidInput)
	}
	if err := s.objects.SetStatus(ctx, id, status); err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// SetS3Discount updates the one estimate line whose actual figure is entered
// manually instead of being summed from expenses.
func (s *ObjectService) SetS3Discount(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error {
	if id == uuid.Nil {
		return fmt.Errorf("%w: object id is required", ErrInvalidInput)
	}
	if amount.IsNegative() {
		return fmt.Errorf("%w: amount must be non-negative", ErrInvalidInput)
	}
	if err := s.objects.UpdateS3Discount(ctx, id, amount); err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return err
	}
	return nil
}
