package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/vxtzo/telegram-construction-bot/internal/finance"
	"github.com/vxtzo/telegram-construction-bot/internal/model"
	"github.com/vxtzo/telegram-construction-bot/internal/repository"
)

type ReportService struct {
	objects *repository.ObjectRepository
	company *repository.CompanyRepository
}

func NewReportService(objects *repository.ObjectRepository, company *repository.CompanyRepository) *ReportService {
	return &ReportService{objects: objects, company: company}
}

// ObjectReport is the full per-object view handed to the presentation layer:
// the profitability breakdown plus the expense classification and worker
// advance totals.
type ObjectReport struct {
	Object        model.ConstructionObject
	Finance       finance.ObjectFinance
	Expenses      []finance.TypeTotals
	Advances      []finance.WorkerAdvances
	TotalAdvances decimal.Decimal
}

func (s *ReportService) GenerateObjectReport(ctx context.Context, objectID uuid.UUID) (*ObjectReport, error) {
	if objectID == uuid.Nil {
		return nil, fmt.Errorf("%w: object id is required", ErrInvalidInput)
	}

	obj, err := s.objects.GetByID(ctx, objectID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &ObjectReport{
		Object:        *obj,
		Finance:       finance.CalculateObject(*obj, obj.Expenses),
		Expenses:      finance.Classify(obj.Expenses),
		Advances:      finance.GroupAdvances(obj.Advances),
		TotalAdvances: finance.TotalAdvances(obj.Advances),
	}, nil
}

// GeneratePeriodReport rolls all objects started or completed in the
// inclusive [from, to] range up into one summary, minus company overhead for
// the same range.
func (s *ReportService) GeneratePeriodReport(ctx context.Context, from, to time.Time) (*finance.PeriodSummary, error) {
	if from.IsZero() || to.IsZero() {
		return nil, fmt.Errorf("%w: period dates are required", ErrInvalidInput)
	}

	from = dateOnly(from)
	to = dateOnly(to)
	if from.After(to) {
		return nil, fmt.Errorf("%w: period start must be before or equal to period end", ErrInvalidInput)
	}

	objects, err := s.objects.ListByPeriod(ctx, from, to)
	if err != nil {
		return nil, err
	}

	results := make([]finance.ObjectResult, 0, len(objects))
	for _, obj := range objects {
		results = append(results, finance.ObjectResult{
			ObjectID: obj.ID,
			Name:     obj.Name,
			Finance:  finance.CalculateObject(obj, obj.Expenses),
		})
	}

	oneTime, err := s.company.OneTimeInRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	recurring, err := s.company.ActiveRecurring(ctx)
	if err != nil {
		return nil, err
	}
	overhead := finance.CalculateOverhead(from, to, oneTime, recurring)

	summary := finance.SummarizePeriod(results, overhead)
	return &summary, nil
}

func dateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
