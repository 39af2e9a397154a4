package repository

import (
	"context"

	"clinicore/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BillRepository is the data access contract for persisted bills.
type BillRepository interface {
	CreateTx(tx *gorm.DB, b *model.Bill) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Bill, error)
	FindByBillNo(ctx context.Context, billNo string) (*model.Bill, error)
	List(ctx context.Context) ([]model.Bill, error)
	// ReplaceItemsTx swaps a bill's line items and updates the discount inside
	// the caller's transaction. Type and fee columns are never touched.
	ReplaceItemsTx(tx *gorm.DB, b *model.Bill, items []model.BillItem) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type billRepo struct{ db *gorm.DB }

func NewBillRepository(db *gorm.DB) BillRepository { return &billRepo{db: db} }

func (r *billRepo) CreateTx(tx *gorm.DB, b *model.Bill) error {
	return tx.Create(b).Error
}

func (r *billRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Bill, error) {
	var b model.Bill
	err := r.db.WithContext(ctx).Preload("Items").First(&b, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *billRepo) FindByBillNo(ctx context.Context, billNo string) (*model.Bill, error) {
	var b model.Bill
	err := r.db.WithContext(ctx).Preload("Items").Where("bill_no = ?", billNo).First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *billRepo) List(ctx context.Context) ([]model.Bill, error) {
	var bills []model.Bill
	err := r.db.WithContext(ctx).Preload("Items").Order("created_at DESC").Find(&bills).Error
	return bills, err
}

func (r *billRepo) ReplaceItemsTx(tx *gorm.DB, b *model.Bill, items []model.BillItem) error {
	if err := tx.Where("bill_id = ?", b.ID).Delete(&model.BillItem{}).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].BillID = b.ID
	}
	if len(items) > 0 {
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
	}
	return tx.Model(&model.Bill{}).Where("id = ?", b.ID).
		Update("discount_pct", b.DiscountPct).Error
}

func (r *billRepo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Select("Items").Delete(&model.Bill{ID: id})
	return res.RowsAffected, res.Error
}

func (r *billRepo) DeleteAll(ctx context.Context) (int64, error) {
	if err := r.db.WithContext(ctx).Where("1 = 1").Delete(&model.BillItem{}).Error; err != nil {
		return 0, err
	}
	res := r.db.WithContext(ctx).Where("1 = 1").Delete(&model.Bill{})
	return res.RowsAffected, res.Error
}

func (r *billRepo) DB() *gorm.DB { return r.db }
