package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"clinicore/internal/apierror"
	"clinicore/internal/dto"
	"clinicore/internal/model"
	"clinicore/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PurchaseService records vendor invoices and applies their stock side
// effects. Recording is all-or-nothing: the purchase row and every stock
// mutation commit in one transaction or not at all.
type PurchaseService interface {
	Record(ctx context.Context, req dto.RecordPurchaseRequest) (*dto.PurchaseResponse, error)
	List(ctx context.Context) ([]dto.PurchaseResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type purchaseService struct {
	repo      repository.PurchaseRepository
	stockRepo repository.StockRepository
}

func NewPurchaseService(repo repository.PurchaseRepository, stockRepo repository.StockRepository) PurchaseService {
	return &purchaseService{repo: repo, stockRepo: stockRepo}
}

var oneHundred = decimal.NewFromInt(100)

func (s *purchaseService) Record(ctx context.Context, req dto.RecordPurchaseRequest) (*dto.PurchaseResponse, error) {
	if strings.TrimSpace(req.VendorName) == "" || strings.TrimSpace(req.InvoiceNo) == "" {
		return nil, apierror.Validation("vendorName and invoiceNo are required.")
	}

	// Compute line taxables and taxes before touching the database.
	items := make([]model.PurchaseItem, 0, len(req.Items))
	taxableSum := decimal.Zero
	taxSum := decimal.Zero
	for _, it := range req.Items {
		qty := decimal.NewFromInt(int64(it.Quantity))
		taxable := it.Rate.Mul(qty).Mul(decimal.NewFromInt(1).Sub(it.Discount.Div(oneHundred)))
		tax := taxable.Mul(it.GST).Div(oneHundred)
		taxableSum = taxableSum.Add(taxable)
		taxSum = taxSum.Add(tax)
		items = append(items, model.PurchaseItem{
			ProductName: it.ProductName,
			HSNCode:     it.HSNCode,
			Quantity:    it.Quantity,
			Rate:        it.Rate,
			DiscountPct: it.Discount,
			GSTPct:      it.GST,
			Taxable:     taxable.Round(2),
			TaxAmount:   tax.Round(2),
		})
	}

	exact := taxableSum.Add(taxSum)
	grandTotal := exact.Round(0)
	halfTax := taxSum.Div(decimal.NewFromInt(2))

	purchase := &model.Purchase{
		VendorName:    req.VendorName,
		InvoiceNo:     req.InvoiceNo,
		InvoiceDate:   req.InvoiceDate,
		GSTIN:         req.GSTIN,
		TaxableAmount: taxableSum.Round(2),
		CGST:          halfTax.Round(2),
		SGST:          halfTax.Round(2),
		RoundOff:      grandTotal.Sub(exact).Round(2),
		GrandTotal:    grandTotal,
		Items:         items,
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, purchase); err != nil {
			return err
		}
		for _, it := range req.Items {
			n, err := s.stockRepo.AddQuantityByProductNameTx(tx, it.ProductName, it.Quantity)
			if err != nil {
				return err
			}
			if n == 0 {
				// No matching stock item, create one under a generated id.
				stockID, err := s.generateStockID(tx, it.ProductName)
				if err != nil {
					return err
				}
				price := it.NewPrice
				if price.IsZero() {
					price = it.Rate
				}
				item := &model.StockItem{
					StockID:     stockID,
					ProductName: it.ProductName,
					Quantity:    it.Quantity,
					Price:       price,
					HSNCode:     it.HSNCode,
					DiscountPct: it.Discount,
					GSTPct:      it.GST,
				}
				if err := s.stockRepo.CreateTx(tx, item); err != nil {
					if errors.Is(err, gorm.ErrDuplicatedKey) {
						return apierror.Conflict("Generated stock id was taken concurrently, retry the purchase.")
					}
					return err
				}
				continue
			}
			if !it.NewPrice.IsZero() {
				if err := s.stockRepo.UpdatePriceByProductNameTx(tx, it.ProductName, it.NewPrice); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return purchaseToResponse(purchase), nil
}

// generateStockID derives a stock id from the product name's initials plus a
// sequence number, retrying past occupied slots so the result is unique
// rather than probabilistic. The scan runs on the purchase transaction so it
// sees items inserted earlier in the same transaction.
func (s *purchaseService) generateStockID(tx *gorm.DB, productName string) (string, error) {
	var b strings.Builder
	for _, word := range strings.Fields(productName) {
		r := []rune(word)[0]
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	prefix := b.String()
	if prefix == "" {
		prefix = "ITEM"
	}

	seq, err := s.stockRepo.CountByStockIDPrefixTx(tx, prefix+"-")
	if err != nil {
		return "", err
	}
	for {
		seq++
		candidate := fmt.Sprintf("%s-%04d", prefix, seq)
		_, err := s.stockRepo.FindByStockIDTx(tx, candidate)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", err
		}
	}
}

func (s *purchaseService) List(ctx context.Context) ([]dto.PurchaseResponse, error) {
	purchases, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.PurchaseResponse, len(purchases))
	for i := range purchases {
		resp[i] = *purchaseToResponse(&purchases[i])
	}
	return resp, nil
}

func (s *purchaseService) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return apierror.NotFound("Purchase not found.")
	}
	return nil
}

func purchaseToResponse(p *model.Purchase) *dto.PurchaseResponse {
	items := make([]dto.PurchaseItemResponse, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, dto.PurchaseItemResponse{
			ProductName: it.ProductName,
			HSNCode:     it.HSNCode,
			Quantity:    it.Quantity,
			Rate:        it.Rate,
			Discount:    it.DiscountPct,
			GST:         it.GSTPct,
			Taxable:     it.Taxable,
			TaxAmount:   it.TaxAmount,
		})
	}
	return &dto.PurchaseResponse{
		ID:          p.ID.String(),
		VendorName:  p.VendorName,
		InvoiceNo:   p.InvoiceNo,
		InvoiceDate: p.InvoiceDate,
		GSTIN:       p.GSTIN,
		Items:       items,
		Totals: dto.PurchaseTotals{
			TaxableAmount: p.TaxableAmount,
			CGST:          p.CGST,
			SGST:          p.SGST,
			RoundOff:      p.RoundOff,
			GrandTotal:    p.GrandTotal,
		},
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
	}
}
