package repository

import (
	"context"

	"clinicore/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StockRepository is the data access contract for inventory items.
//
// The only decrement path exposed to callers is the conditional
// DecrementIfAvailableTx: check-and-decrement happens in a single UPDATE so
// concurrent bill creation can never oversell.
type StockRepository interface {
	Create(ctx context.Context, s *model.StockItem) error
	FindByStockID(ctx context.Context, stockID string) (*model.StockItem, error)
	FindByProductName(ctx context.Context, name string) (*model.StockItem, error)
	List(ctx context.Context) ([]model.StockItem, error)
	Update(ctx context.Context, s *model.StockItem) error
	Delete(ctx context.Context, stockID string) (int64, error)

	// AddQuantity applies a delta to the stored quantity ("add" mode).
	AddQuantity(ctx context.Context, stockID string, delta int) (int64, error)

	// Used inside transactions; callers must pass the tx instance.
	CreateTx(tx *gorm.DB, s *model.StockItem) error
	AddQuantityByProductNameTx(tx *gorm.DB, name string, delta int) (int64, error)
	UpdatePriceByProductNameTx(tx *gorm.DB, name string, price decimal.Decimal) error
	// DecrementIfAvailableTx decrements quantity only when the result stays
	// non-negative. Returns the number of rows affected: 0 means either the
	// item is missing or stock is insufficient.
	DecrementIfAvailableTx(tx *gorm.DB, name string, qty int) (int64, error)
	FindByProductNameTx(tx *gorm.DB, name string) (*model.StockItem, error)
	FindByStockIDTx(tx *gorm.DB, stockID string) (*model.StockItem, error)
	CountByStockIDPrefixTx(tx *gorm.DB, prefix string) (int64, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type stockRepo struct{ db *gorm.DB }

func NewStockRepository(db *gorm.DB) StockRepository { return &stockRepo{db: db} }

func (r *stockRepo) Create(ctx context.Context, s *model.StockItem) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *stockRepo) CreateTx(tx *gorm.DB, s *model.StockItem) error {
	return tx.Create(s).Error
}

func (r *stockRepo) FindByStockID(ctx context.Context, stockID string) (*model.StockItem, error) {
	var s model.StockItem
	err := r.db.WithContext(ctx).Where("stock_id = ?", stockID).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *stockRepo) FindByProductName(ctx context.Context, name string) (*model.StockItem, error) {
	var s model.StockItem
	err := r.db.WithContext(ctx).Where("LOWER(product_name) = LOWER(?)", name).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *stockRepo) FindByProductNameTx(tx *gorm.DB, name string) (*model.StockItem, error) {
	var s model.StockItem
	err := tx.Where("LOWER(product_name) = LOWER(?)", name).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *stockRepo) List(ctx context.Context) ([]model.StockItem, error) {
	var items []model.StockItem
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&items).Error
	return items, err
}

func (r *stockRepo) Update(ctx context.Context, s *model.StockItem) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *stockRepo) Delete(ctx context.Context, stockID string) (int64, error) {
	res := r.db.WithContext(ctx).Where("stock_id = ?", stockID).Delete(&model.StockItem{})
	return res.RowsAffected, res.Error
}

func (r *stockRepo) AddQuantity(ctx context.Context, stockID string, delta int) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.StockItem{}).
		Where("stock_id = ?", stockID).
		Update("quantity", gorm.Expr("quantity + ?", delta))
	return res.RowsAffected, res.Error
}

func (r *stockRepo) AddQuantityByProductNameTx(tx *gorm.DB, name string, delta int) (int64, error) {
	res := tx.Model(&model.StockItem{}).
		Where("LOWER(product_name) = LOWER(?)", name).
		Update("quantity", gorm.Expr("quantity + ?", delta))
	return res.RowsAffected, res.Error
}

func (r *stockRepo) UpdatePriceByProductNameTx(tx *gorm.DB, name string, price decimal.Decimal) error {
	return tx.Model(&model.StockItem{}).
		Where("LOWER(product_name) = LOWER(?)", name).
		Update("price", price).Error
}

func (r *stockRepo) DecrementIfAvailableTx(tx *gorm.DB, name string, qty int) (int64, error) {
	res := tx.Model(&model.StockItem{}).
		Where("LOWER(product_name) = LOWER(?) AND quantity >= ?", name, qty).
		Update("quantity", gorm.Expr("quantity - ?", qty))
	return res.RowsAffected, res.Error
}

func (r *stockRepo) FindByStockIDTx(tx *gorm.DB, stockID string) (*model.StockItem, error) {
	var s model.StockItem
	err := tx.Where("stock_id = ?", stockID).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *stockRepo) CountByStockIDPrefixTx(tx *gorm.DB, prefix string) (int64, error) {
	var n int64
	err := tx.Model(&model.StockItem{}).
		Where("stock_id LIKE ?", prefix+"%").Count(&n).Error
	return n, err
}

func (r *stockRepo) DB() *gorm.DB { return r.db }
