package service

import (
	"context"
	"strings"
	"sync"
	"testing"

	"clinicore/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func mustUUID(t *testing.T, s string) uuid.UUID {
	t.Helper()
	id, err := uuid.Parse(s)
	require.NoError(t, err)
	return id
}

// In-memory repository stubs. DB() returns nil so runTx executes the
// transaction body directly; the stubs themselves are mutex-guarded to
// keep concurrent tests honest.

type stubStockRepo struct {
	mu    sync.Mutex
	items map[string]*model.StockItem // keyed by lowercase product name
}

func newStubStockRepo(items ...*model.StockItem) *stubStockRepo {
	r := &stubStockRepo{items: make(map[string]*model.StockItem)}
	for _, it := range items {
		r.items[strings.ToLower(it.ProductName)] = it
	}
	return r
}

func (r *stubStockRepo) Create(ctx context.Context, s *model.StockItem) error {
	return r.CreateTx(nil, s)
}

func (r *stubStockRepo) CreateTx(_ *gorm.DB, s *model.StockItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.items[strings.ToLower(s.ProductName)] = s
	return nil
}

func (r *stubStockRepo) FindByStockID(ctx context.Context, stockID string) (*model.StockItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range r.items {
		if it.StockID == stockID {
			return it, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubStockRepo) FindByProductName(ctx context.Context, name string) (*model.StockItem, error) {
	return r.FindByProductNameTx(nil, name)
}

func (r *stubStockRepo) FindByProductNameTx(_ *gorm.DB, name string) (*model.StockItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if it, ok := r.items[strings.ToLower(name)]; ok {
		return it, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubStockRepo) List(ctx context.Context) ([]model.StockItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.StockItem, 0, len(r.items))
	for _, it := range r.items {
		out = append(out, *it)
	}
	return out, nil
}

func (r *stubStockRepo) Update(ctx context.Context, s *model.StockItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[strings.ToLower(s.ProductName)] = s
	return nil
}

func (r *stubStockRepo) Delete(ctx context.Context, stockID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, it := range r.items {
		if it.StockID == stockID {
			delete(r.items, key)
			return 1, nil
		}
	}
	return 0, nil
}

func (r *stubStockRepo) AddQuantity(ctx context.Context, stockID string, delta int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range r.items {
		if it.StockID == stockID {
			it.Quantity += delta
			return 1, nil
		}
	}
	return 0, nil
}

func (r *stubStockRepo) AddQuantityByProductNameTx(_ *gorm.DB, name string, delta int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if it, ok := r.items[strings.ToLower(name)]; ok {
		it.Quantity += delta
		return 1, nil
	}
	return 0, nil
}

func (r *stubStockRepo) UpdatePriceByProductNameTx(_ *gorm.DB, name string, price decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if it, ok := r.items[strings.ToLower(name)]; ok {
		it.Price = price
	}
	return nil
}

func (r *stubStockRepo) DecrementIfAvailableTx(_ *gorm.DB, name string, qty int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[strings.ToLower(name)]
	if !ok || it.Quantity < qty {
		return 0, nil
	}
	it.Quantity -= qty
	return 1, nil
}

func (r *stubStockRepo) FindByStockIDTx(_ *gorm.DB, stockID string) (*model.StockItem, error) {
	return r.FindByStockID(context.Background(), stockID)
}

func (r *stubStockRepo) CountByStockIDPrefixTx(_ *gorm.DB, prefix string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, it := range r.items {
		if strings.HasPrefix(it.StockID, prefix) {
			n++
		}
	}
	return n, nil
}

func (r *stubStockRepo) DB() *gorm.DB { return nil }

type stubBillRepo struct {
	mu    sync.Mutex
	bills map[uuid.UUID]*model.Bill
}

func newStubBillRepo() *stubBillRepo {
	return &stubBillRepo{bills: make(map[uuid.UUID]*model.Bill)}
}

func (r *stubBillRepo) CreateTx(_ *gorm.DB, b *model.Bill) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.bills {
		if existing.BillNo == b.BillNo {
			return gorm.ErrDuplicatedKey
		}
	}
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	r.bills[b.ID] = b
	return nil
}

func (r *stubBillRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Bill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.bills[id]; ok {
		return b, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubBillRepo) FindByBillNo(ctx context.Context, billNo string) (*model.Bill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bills {
		if b.BillNo == billNo {
			return b, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubBillRepo) List(ctx context.Context) ([]model.Bill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Bill, 0, len(r.bills))
	for _, b := range r.bills {
		out = append(out, *b)
	}
	return out, nil
}

func (r *stubBillRepo) ReplaceItemsTx(_ *gorm.DB, b *model.Bill, items []model.BillItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.bills[b.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Items = items
	stored.DiscountPct = b.DiscountPct
	return nil
}

func (r *stubBillRepo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bills[id]; !ok {
		return 0, nil
	}
	delete(r.bills, id)
	return 1, nil
}

func (r *stubBillRepo) DeleteAll(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := int64(len(r.bills))
	r.bills = make(map[uuid.UUID]*model.Bill)
	return n, nil
}

func (r *stubBillRepo) DB() *gorm.DB { return nil }

type stubPurchaseRepo struct {
	mu        sync.Mutex
	purchases map[uuid.UUID]*model.Purchase
}

func newStubPurchaseRepo() *stubPurchaseRepo {
	return &stubPurchaseRepo{purchases: make(map[uuid.UUID]*model.Purchase)}
}

func (r *stubPurchaseRepo) CreateTx(_ *gorm.DB, p *model.Purchase) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.purchases[p.ID] = p
	return nil
}

func (r *stubPurchaseRepo) List(ctx context.Context) ([]model.Purchase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Purchase, 0, len(r.purchases))
	for _, p := range r.purchases {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubPurchaseRepo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.purchases[id]; !ok {
		return 0, nil
	}
	delete(r.purchases, id)
	return 1, nil
}

func (r *stubPurchaseRepo) DB() *gorm.DB { return nil }

type stubUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*model.User)}
}

func (r *stubUserRepo) Create(ctx context.Context, u *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.Email = strings.ToLower(u.Email)
	r.users[u.Email] = u
	return nil
}

func (r *stubUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[strings.ToLower(email)]; ok && u.Active {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

type stubPatientRepo struct {
	mu       sync.Mutex
	patients map[string]*model.Patient
}

func newStubPatientRepo() *stubPatientRepo {
	return &stubPatientRepo{patients: make(map[string]*model.Patient)}
}

func (r *stubPatientRepo) Create(ctx context.Context, p *model.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.patients[p.PatientID] = p
	return nil
}

func (r *stubPatientRepo) FindByPatientID(ctx context.Context, patientID string) (*model.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.patients[patientID]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubPatientRepo) List(ctx context.Context) ([]model.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Patient, 0, len(r.patients))
	for _, p := range r.patients {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubPatientRepo) Update(ctx context.Context, p *model.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.patients[p.PatientID] = p
	return nil
}

func (r *stubPatientRepo) Delete(ctx context.Context, patientID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.patients[patientID]; !ok {
		return 0, nil
	}
	delete(r.patients, patientID)
	return 1, nil
}
