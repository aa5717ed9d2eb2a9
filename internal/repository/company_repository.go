package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vxtzo/telegram-construction-bot/internal/model"
)

type CompanyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

func (r *CompanyRepository) CreateOneTime(ctx context.Context, e *model.CompanyExpense) error {
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO company_expenses (id, category, amount, description, date, added_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, NOW())
	`, e.ID, e.Category, e.Amount, e.Description, e.Date, e.AddedBy).Error
}

func (r *CompanyRepository) OneTimeInRange(ctx context.Context, from, to time.Time) ([]model.CompanyExpense, error) {
	var expenses []model.CompanyExpense
	if err := r.db.WithContext(ctx).Raw(`
		SELECT *
		FROM company_expenses
		WHERE date >= ? AND date <= ?
		ORDER BY date DESC
	`, from, to).Scan(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

func (r *CompanyRepository) CreateRecurring(ctx context.Context, e *model.CompanyRecurringExpense) error {
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO company_recurring_expenses (
			id, category, amount, day_of_month,
			start_month, start_year, end_month, end_year,
			description, is_active, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())
	`,
		e.ID, e.Category, e.Amount, e.DayOfMonth,
		e.StartMonth, e.StartYear, e.EndMonth, e.EndYear,
		e.Description, e.IsActive,
	).Error
}

// ActiveRecurring returns all active templates. Overlap with the report range
// is computed in the finance package, not in SQL.
func (r *CompanyRepository) ActiveRecurring(ctx context.Context) ([]model.CompanyRecurringExpense, error) {
	var templates []model.CompanyRecurringExpense
	if err := r.db.WithContext(ctx).Raw(`
		SELECT *
		FROM company_recurring_expenses
		WHERE is_active = TRUE
		ORDER BY category ASC
	`).Scan(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

// DeactivateRecurring retires a template without deleting its history.
func (r *CompanyRepository) DeactivateRecurring(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE company_recurring_expenses
		SET is_active = FALSE
		WHERE id = ?
	`, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
