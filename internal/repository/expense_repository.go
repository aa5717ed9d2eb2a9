package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vxtzo/telegram-construction-bot/internal/model"
)

type ExpenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

func (r *ExpenseRepository) Create(ctx context.Context, e *model.Expense) error {
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO expenses (
			id, object_id, type, amount, description, date,
			payment_source, compensation_status, receipt_url, added_by, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())
	`,
		e.ID, e.ObjectID, e.Type, e.Amount, e.Description, e.Date,
		e.PaymentSource, e.CompensationStatus, e.ReceiptURL, e.AddedBy,
	).Error
}

func (r *ExpenseRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Expense, error) {
	var e model.Expense
	if err := r.db.WithContext(ctx).Raw(`
		SELECT *
		FROM expenses
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&e).Error; err != nil {
		return nil, err
	}
	if e.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &e, nil
}

func (r *ExpenseRepository) ListByObject(ctx context.Context, objectID uuid.UUID) ([]model.Expense, error) {
	var expenses []model.Expense
	if err := r.db.WithContext(ctx).Raw(`
		SELECT *
		FROM expenses
		WHERE object_id = ?
		ORDER BY date DESC
	`, objectID).Scan(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

// MarkCompensated is a compare-and-set: only a pending personal expense moves
// to compensated. Returns false when no row matched, so a concurrent second
// call cannot double-apply the transition.
func (r *ExpenseRepository) MarkCompensated(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE expenses
		SET compensation_status = 'compensated'
		WHERE id = ?
			AND payment_source = 'personal'
			AND compensation_status = 'pending'
	`, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *ExpenseRepository) CreateAdvance(ctx context.Context, a *model.Advance) error {
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO advances (
			id, object_id, worker_name, work_type, amount, date, added_by, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, NOW())
	`,
		a.ID, a.ObjectID, a.WorkerName, a.WorkType, a.Amount, a.Date, a.AddedBy,
	).Error
}

func (r *ExpenseRepository) ListAdvancesByObject(ctx context.Context, objectID uuid.UUID) ([]model.Advance, error) {
	var advances []model.Advance
	if err := r.db.WithContext(ctx).Raw(`
		SELECT *
		FROM advances
		WHERE object_id = ?
		ORDER BY date DESC
	`, objectID).Scan(&advances).Error; err != nil {
		return nil, err
	}
	return advances, nil
}
