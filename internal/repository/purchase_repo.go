package repository

import (
	"context"

	"clinicore/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PurchaseRepository is the data access contract for vendor invoices.
type PurchaseRepository interface {
	CreateTx(tx *gorm.DB, p *model.Purchase) error
	List(ctx context.Context) ([]model.Purchase, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type purchaseRepo struct{ db *gorm.DB }

func NewPurchaseRepository(db *gorm.DB) PurchaseRepository { return &purchaseRepo{db: db} }

func (r *purchaseRepo) CreateTx(tx *gorm.DB, p *model.Purchase) error {
	return tx.Create(p).Error
}

func (r *purchaseRepo) List(ctx context.Context) ([]model.Purchase, error) {
	var purchases []model.Purchase
	err := r.db.WithContext(ctx).Preload("Items").Order("created_at DESC").Find(&purchases).Error
	return purchases, err
}

func (r *purchaseRepo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Select("Items").Delete(&model.Purchase{ID: id})
	return res.RowsAffected, res.Error
}

func (r *purchaseRepo) DB() *gorm.DB { return r.db }
