package service

import (
	"context"
	"testing"

	"clinicore/internal/apierror"
	"clinicore/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func TestInventoryCreateAndConflicts(t *testing.T) {
	svc := NewInventoryService(newStubStockRepo())
	ctx := context.Background()

	req := dto.CreateStockRequest{
		StockID:     "P-0001",
		ProductName: "Paracetamol",
		Quantity:    50,
		Price:       dec("5"),
		GST:         dec("12"),
	}
	resp, err := svc.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "P-0001", resp.StockID)
	assert.Equal(t, 50, resp.Quantity)

	_, err = svc.Create(ctx, req)
	assert.True(t, apierror.IsKind(err, apierror.KindConflict))

	req2 := req
	req2.StockID = "P-0002"
	_, err = svc.Create(ctx, req2)
	assert.True(t, apierror.IsKind(err, apierror.KindConflict), "duplicate product name must conflict")
}

func TestInventoryUpdateModes(t *testing.T) {
	svc := NewInventoryService(newStubStockRepo(paracetamolStock(50)))
	ctx := context.Background()

	resp, err := svc.Update(ctx, "P-0001", dto.UpdateStockRequest{
		UpdateMode: UpdateModeAdd,
		Quantity:   intPtr(10),
	})
	require.NoError(t, err)
	assert.Equal(t, 60, resp.Quantity)

	resp, err = svc.Update(ctx, "P-0001", dto.UpdateStockRequest{
		UpdateMode: UpdateModeSet,
		Quantity:   intPtr(5),
	})
	require.NoError(t, err)
	assert.Equal(t, 5, resp.Quantity)

	// Omitted mode behaves as "set".
	resp, err = svc.Update(ctx, "P-0001", dto.UpdateStockRequest{Quantity: intPtr(7)})
	require.NoError(t, err)
	assert.Equal(t, 7, resp.Quantity)

	// "add" accepts negative deltas below zero; sufficiency is enforced at
	// billing time, not here.
	resp, err = svc.Update(ctx, "P-0001", dto.UpdateStockRequest{
		UpdateMode: UpdateModeAdd,
		Quantity:   intPtr(-10),
	})
	require.NoError(t, err)
	assert.Equal(t, -3, resp.Quantity)
}

type countingStockRepo struct {
	*stubStockRepo
	addCalls int
}

func (r *countingStockRepo) AddQuantity(ctx context.Context, stockID string, delta int) (int64, error) {
	r.addCalls++
	return r.stubStockRepo.AddQuantity(ctx, stockID, delta)
}

func TestInventoryAddModeUsesDeltaUpdate(t *testing.T) {
	repo := &countingStockRepo{stubStockRepo: newStubStockRepo(paracetamolStock(50))}
	svc := NewInventoryService(repo)
	ctx := context.Background()

	resp, err := svc.Update(ctx, "P-0001", dto.UpdateStockRequest{
		UpdateMode: UpdateModeAdd,
		Quantity:   intPtr(10),
	})
	require.NoError(t, err)
	assert.Equal(t, 60, resp.Quantity)
	assert.Equal(t, 1, repo.addCalls, "add mode applies the quantity as a delta update")

	resp, err = svc.Update(ctx, "P-0001", dto.UpdateStockRequest{
		UpdateMode: UpdateModeSet,
		Quantity:   intPtr(5),
	})
	require.NoError(t, err)
	assert.Equal(t, 5, resp.Quantity)
	assert.Equal(t, 1, repo.addCalls, "set mode writes the value directly")
}

func TestInventoryUpdatePartialMerge(t *testing.T) {
	svc := NewInventoryService(newStubStockRepo(paracetamolStock(50)))

	price := dec("6.50")
	resp, err := svc.Update(context.Background(), "P-0001", dto.UpdateStockRequest{Price: &price})
	require.NoError(t, err)
	assert.True(t, resp.Price.Equal(dec("6.50")))
	assert.Equal(t, 50, resp.Quantity, "unspecified fields stay put")
	assert.Equal(t, "Paracetamol", resp.ProductName)
}

func TestInventoryGetAndDeleteNotFound(t *testing.T) {
	svc := NewInventoryService(newStubStockRepo())
	ctx := context.Background()

	_, err := svc.Get(ctx, "missing")
	assert.True(t, apierror.IsKind(err, apierror.KindNotFound))

	err = svc.Delete(ctx, "missing")
	assert.True(t, apierror.IsKind(err, apierror.KindNotFound))
}
