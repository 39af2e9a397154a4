package service

import (
	"context"
	"errors"

	"clinicore/internal/apierror"
	"clinicore/internal/dto"
	"clinicore/internal/model"
	"clinicore/internal/repository"

	"gorm.io/gorm"
)

// Quantity update modes. "add" applies the supplied quantity as a delta,
// "set" replaces the stored value outright.
const (
	UpdateModeAdd = "add"
	UpdateModeSet = "set"
)

// InventoryService manages stock items. It deliberately does not reject
// negative quantities: sufficiency is the billing engine's concern, enforced
// through the repository's conditional decrement.
type InventoryService interface {
	Create(ctx context.Context, req dto.CreateStockRequest) (*dto.StockResponse, error)
	List(ctx context.Context) ([]dto.StockResponse, error)
	Get(ctx context.Context, stockID string) (*dto.StockResponse, error)
	Update(ctx context.Context, stockID string, req dto.UpdateStockRequest) (*dto.StockResponse, error)
	Delete(ctx context.Context, stockID string) error
}

type inventoryService struct {
	repo repository.StockRepository
}

func NewInventoryService(repo repository.StockRepository) InventoryService {
	return &inventoryService{repo: repo}
}

func (s *inventoryService) Create(ctx context.Context, req dto.CreateStockRequest) (*dto.StockResponse, error) {
	if _, err := s.repo.FindByStockID(ctx, req.StockID); err == nil {
		return nil, apierror.Conflict("Stock id already exists.")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := s.repo.FindByProductName(ctx, req.ProductName); err == nil {
		return nil, apierror.Conflict("Product name already exists.")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	item := &model.StockItem{
		StockID:     req.StockID,
		ProductName: req.ProductName,
		Quantity:    req.Quantity,
		Price:       req.Price,
		HSNCode:     req.HSNCode,
		DiscountPct: req.Discount,
		GSTPct:      req.GST,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return stockToResponse(item), nil
}

func (s *inventoryService) List(ctx context.Context) ([]dto.StockResponse, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.StockResponse, len(items))
	for i := range items {
		resp[i] = *stockToResponse(&items[i])
	}
	return resp, nil
}

func (s *inventoryService) Get(ctx context.Context, stockID string) (*dto.StockResponse, error) {
	item, err := s.repo.FindByStockID(ctx, stockID)
	if err != nil {
		return nil, apierror.NotFound("Stock item not found.")
	}
	return stockToResponse(item), nil
}

func (s *inventoryService) Update(ctx context.Context, stockID string, req dto.UpdateStockRequest) (*dto.StockResponse, error) {
	item, err := s.repo.FindByStockID(ctx, stockID)
	if err != nil {
		return nil, apierror.NotFound("Stock item not found.")
	}

	mode := req.UpdateMode
	if mode == "" {
		mode = UpdateModeSet
	}

	if req.ProductName != nil {
		item.ProductName = *req.ProductName
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.HSNCode != nil {
		item.HSNCode = *req.HSNCode
	}
	if req.Discount != nil {
		item.DiscountPct = *req.Discount
	}
	if req.GST != nil {
		item.GSTPct = *req.GST
	}
	if req.Quantity != nil && mode != UpdateModeAdd {
		item.Quantity = *req.Quantity
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}

	// "add" applies the delta as a single UPDATE on the stored value, then
	// re-reads so the response reflects what was written.
	if req.Quantity != nil && mode == UpdateModeAdd {
		n, err := s.repo.AddQuantity(ctx, stockID, *req.Quantity)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, apierror.NotFound("Stock item not found.")
		}
		item, err = s.repo.FindByStockID(ctx, stockID)
		if err != nil {
			return nil, apierror.NotFound("Stock item not found.")
		}
	}
	return stockToResponse(item), nil
}

func (s *inventoryService) Delete(ctx context.Context, stockID string) error {
	n, err := s.repo.Delete(ctx, stockID)
	if err != nil {
		return err
	}
	if n == 0 {
		return apierror.NotFound("Stock item not found.")
	}
	return nil
}

func stockToResponse(item *model.StockItem) *dto.StockResponse {
	return &dto.StockResponse{
		StockID:     item.StockID,
		ProductName: item.ProductName,
		Quantity:    item.Quantity,
		Price:       item.Price,
		HSNCode:     item.HSNCode,
		Discount:    item.DiscountPct,
		GST:         item.GSTPct,
	}
}
