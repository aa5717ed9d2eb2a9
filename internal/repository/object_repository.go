package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/vxtzo/telegram-construction-bot/internal/model"
)

type ObjectRepository struct {
	db *gorm.DB
}

func NewObjectRepository(db *gorm.DB) *ObjectRepository {
	return &ObjectRepository{db: db}
}

func (r *ObjectRepository) Create(ctx context.Context, obj *model.ConstructionObject) error {
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO objects (
			id, name, address, foreman_name, start_date, end_date, status,
			prepayment, final_payment,
			estimate_s3, estimate_works, estimate_supplies, estimate_overhead, estimate_transport,
			actual_s3_discount, created_by, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())
	`,
		obj.ID, obj.Name, obj.Address, obj.ForemanName, obj.StartDate, obj.EndDate, obj.Status,
		obj.Prepayment, obj.FinalPayment,
		obj.EstimateS3, obj.EstimateWorks, obj.EstimateSupplies, obj.EstimateOverhead, obj.EstimateTransport,
		obj.ActualS3Discount, obj.CreatedBy,
	).Error
}

// GetByID loads one object with its expense and advance children.
func (r *ObjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.ConstructionObject, error) {
	var obj model.ConstructionObject
	if err := r.db.WithContext(ctx).Raw(`
		SELECT *
		FROM objects
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&obj).Error; err != nil {
		return nil, err
	}
	if obj.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}

	if err := r.loadChildren(ctx, []*model.ConstructionObject{&obj}); err != nil {
		return nil, err
	}
	return &obj, nil
}

func (r *ObjectRepository) ListByStatus(ctx context.Context, status model.ObjectStatus) ([]model.ConstructionObject, error) {
	var objects []model.ConstructionObject
	if err := r.db.WithContext(ctx).Raw(`
		SELECT *
		FROM objects
		WHERE status = ?
		ORDER BY created_at DESC
	`, status).Scan(&objects).Error; err != nil {
		return nil, err
	}
	return objects, nil
}

// ListByPeriod returns objects whose start date or completion date falls
// inside the inclusive range, with children loaded. An object started in one
// period and completed in another appears in both reports.
func (r *ObjectRepository) ListByPeriod(ctx context.Context, from, to time.Time) ([]model.ConstructionObject, error) {
	var objects []model.ConstructionObject
	if err := r.db.WithContext(ctx).Raw(`
		SELECT *
		FROM objects
		WHERE (start_date >= ? AND start_date <= ?)
			OR (completed_at >= ? AND completed_at <= ?)
		ORDER BY created_at DESC
	`, from, to, from, to).Scan(&objects).Error; err != nil {
		return nil, err
	}

	refs := make([]*model.ConstructionObject, len(objects))
	for i := range objects {
		refs[i] = &objects[i]
	}
	if err := r.loadChildren(ctx, refs); err != nil {
		return nil, err
	}
	return objects, nil
}

// SetStatus moves an object between active and completed, stamping or
// clearing completed_at. Reopening a completed object is allowed.
func (r *ObjectRepository) SetStatus(ctx context.Context, id uuid.UUID, status model.ObjectStatus) error {
	var completedAt interface{}
	if status == model.ObjectStatusCompleted {
		completedAt = time.Now().UTC()
	}
	result := r.db.WithContext(ctx).Exec(`
		UPDATE objects
		SET status = ?, completed_at = ?
		WHERE id = ?
	`, status, completedAt, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateS3Discount sets the manually negotiated S3 material cost.
func (r *ObjectRepository) UpdateS3Discount(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE objects
		SET actual_s3_discount = ?
		WHERE id = ?
	`, amount, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ObjectRepository) loadChildren(ctx context.Context, objects []*model.ConstructionObject) error {
	if len(objects) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(objects))
	index := make(map[uuid.UUID]*model.ConstructionObject, len(objects))
	for i, obj := range objects {
		ids[i] = obj.ID
		index[obj.ID] = obj
	}

	var expenses []model.Expense
	if err := r.db.WithContext(ctx).Raw(`
		SELECT *
		FROM expenses
		WHERE object_id IN ?
		ORDER BY date DESC
	`, ids).Scan(&expenses).Error; err != nil {
		return err
	}
	for _, e := range expenses {
		if obj, ok := index[e.ObjectID]; ok {
			obj.Expenses = append(obj.Expenses, e)
		}
	}

	var advances []model.Advance
	if err := r.db.WithContext(ctx).Raw(`
		SELECT *
		FROM advances
		WHERE object_id IN ?
		ORDER BY date DESC
	`, ids).Scan(&advances).Error; err != nil {
		return err
	}
	for _, a := range advances {
		if obj, ok := index[a.ObjectID]; ok {
			obj.Advances = append(obj.Advances, a)
		}
	}

	return nil
}
